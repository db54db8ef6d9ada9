package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartbookshop/bookshop-pos/internal/types"
)

// newLoadedStore returns a loaded store over a fresh inventory file.
func newLoadedStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(filepath.Join(t.TempDir(), "Inventory", "books.json"))
	require.NoError(t, s.Load())
	return s
}

func book(title, sku, category, price string) types.BookInput {
	return types.BookInput{Title: title, SKU: sku, Category: category, Price: price}
}

// breakStorage replaces the inventory directory with a plain file so the
// next write fails.
func breakStorage(t *testing.T, s *Store) {
	t.Helper()
	dir := filepath.Dir(s.Path())
	require.NoError(t, os.RemoveAll(dir))
	require.NoError(t, os.WriteFile(dir, []byte("not a directory"), 0o644))
}

func skus(s *Store) []string {
	var out []string
	for b := range s.List(Filter{}) {
		out = append(out, b.SKU)
	}
	return out
}

func TestLoad_MissingFileCreatesEmptyCatalog(t *testing.T) {
	s := newLoadedStore(t)

	assert.Equal(t, 0, s.Len())

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}

func TestLoad_ReadsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.json")
	content := `[
    {"title": "Algebra I", "sku": "BK-001", "category": "9", "price": 250.0},
    {"title": "Physics", "sku": "BK-007", "category": "11", "price": "150.5"}
]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s := NewStore(path)
	require.NoError(t, s.Load())

	assert.Equal(t, []string{"BK-001", "BK-007"}, skus(s))

	b, err := s.Get("BK-007")
	require.NoError(t, err)
	assert.Equal(t, types.Category11, b.Category)
	assert.Equal(t, "150.50", b.Price.StringFixed(2))
}

func TestLoad_ThreeDecimalPriceKeptExactly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.json")
	content := `[{"title": "Algebra I", "sku": "BK-001", "category": "9", "price": 99.999}]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s := NewStore(path)
	require.NoError(t, s.Load())

	got, err := s.Get("BK-001")
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("99.999")))

	// Rewriting the file for an unrelated change does not round the price.
	_, err = s.Add(book("Physics", "BK-007", "11", "150"))
	require.NoError(t, err)

	reloaded := NewStore(path)
	require.NoError(t, reloaded.Load())
	got, err = reloaded.Get("BK-001")
	require.NoError(t, err)
	assert.Equal(t, "99.999", got.Price.String())
}

func TestLoad_CorruptFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", `{{{`},
		{"object instead of list", `{"title": "x"}`},
		{"null", `null`},
		{"bad price", `[{"title": "A", "sku": "1", "category": "9", "price": "abc"}]`},
		{"invalid category", `[{"title": "A", "sku": "1", "category": "13", "price": 10}]`},
		{"missing title", `[{"sku": "1", "category": "9", "price": 10}]`},
		{"duplicate sku", `[
			{"title": "A", "sku": "1", "category": "9", "price": 10},
			{"title": "B", "sku": "1", "category": "10", "price": 20}
		]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "books.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			err := NewStore(path).Load()

			var corrupt *types.CorruptDataError
			require.True(t, errors.As(err, &corrupt), "expected CorruptDataError, got %v", err)
			assert.Equal(t, path, corrupt.Path)

			// The file is never repaired.
			data, readErr := os.ReadFile(path)
			require.NoError(t, readErr)
			assert.Equal(t, tt.content, string(data))
		})
	}
}

func TestAdd_PersistsAndRoundTrips(t *testing.T) {
	s := newLoadedStore(t)

	record, err := s.Add(book("Algebra I", "BK-001", "9", "250"))
	require.NoError(t, err)
	assert.Equal(t, "BK-001", record.SKU)

	_, err = s.Add(book("Physics", "BK-007", "11", "150.5"))
	require.NoError(t, err)

	reloaded := NewStore(s.Path())
	require.NoError(t, reloaded.Load())

	var original, loaded []types.BookRecord
	for b := range s.List(Filter{}) {
		original = append(original, b)
	}
	for b := range reloaded.List(Filter{}) {
		loaded = append(loaded, b)
	}
	require.Len(t, loaded, len(original))
	for i := range original {
		assert.Equal(t, original[i].Title, loaded[i].Title)
		assert.Equal(t, original[i].SKU, loaded[i].SKU)
		assert.Equal(t, original[i].Category, loaded[i].Category)
		assert.True(t, original[i].Price.Equal(loaded[i].Price))
	}
}

func TestAdd_FileFormat(t *testing.T) {
	s := newLoadedStore(t)
	_, err := s.Add(book("Algebra I", "BK-001", "9", "250"))
	require.NoError(t, err)

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.JSONEq(t, `[{"title": "Algebra I", "sku": "BK-001", "category": "9", "price": 250.00}]`, string(data))
	assert.Contains(t, string(data), "\n    {", "entries are indented by four spaces")
}

func TestAdd_DuplicateSKURejected(t *testing.T) {
	s := newLoadedStore(t)
	_, err := s.Add(book("Algebra I", "BK-001", "9", "250"))
	require.NoError(t, err)

	_, err = s.Add(book("Other", "BK-001", "10", "100"))

	var verr *types.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "unique", verr.Rule)
	assert.Equal(t, 1, s.Len())

	// Case matters.
	_, err = s.Add(book("Other", "bk-001", "10", "100"))
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())
}

func TestAdd_InvalidInputLeavesCatalogUnchanged(t *testing.T) {
	s := newLoadedStore(t)
	before, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	_, err = s.Add(book("Algebra I", "BK-001", "9", "0"))
	require.Error(t, err)

	assert.Equal(t, 0, s.Len())
	after, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestAdd_WriteFailureRollsBack(t *testing.T) {
	s := newLoadedStore(t)
	breakStorage(t, s)

	_, err := s.Add(book("Algebra I", "BK-001", "9", "250"))

	var ioErr *types.IOError
	require.True(t, errors.As(err, &ioErr), "expected IOError, got %v", err)
	assert.Equal(t, 0, s.Len())
	_, err = s.Get("BK-001")
	assert.Error(t, err)
}

func TestUpdate_InPlace(t *testing.T) {
	s := newLoadedStore(t)
	for _, in := range []types.BookInput{
		book("A", "1", "9", "10"),
		book("B", "2", "10", "20"),
		book("C", "3", "11", "30"),
	} {
		_, err := s.Add(in)
		require.NoError(t, err)
	}

	updated, err := s.Update("2", book("B2", "2", "12", "25.75"))
	require.NoError(t, err)
	assert.Equal(t, "B2", updated.Title)

	assert.Equal(t, []string{"1", "2", "3"}, skus(s))
	got, err := s.Get("2")
	require.NoError(t, err)
	assert.Equal(t, types.Category12, got.Category)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("25.75")))
}

func TestUpdate_ChangeSKU(t *testing.T) {
	s := newLoadedStore(t)
	_, err := s.Add(book("A", "1", "9", "10"))
	require.NoError(t, err)
	_, err = s.Add(book("B", "2", "10", "20"))
	require.NoError(t, err)

	_, err = s.Update("1", book("A", "1b", "9", "10"))
	require.NoError(t, err)
	assert.Equal(t, []string{"1b", "2"}, skus(s))

	_, err = s.Get("1")
	var nf *types.NotFoundError
	assert.True(t, errors.As(err, &nf))
}

func TestUpdate_SKUCollision(t *testing.T) {
	s := newLoadedStore(t)
	_, err := s.Add(book("A", "1", "9", "10"))
	require.NoError(t, err)
	_, err = s.Add(book("B", "2", "10", "20"))
	require.NoError(t, err)

	_, err = s.Update("1", book("A", "2", "9", "10"))

	var verr *types.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "unique", verr.Rule)

	got, err := s.Get("1")
	require.NoError(t, err)
	assert.Equal(t, "A", got.Title)
}

func TestUpdate_InvalidCategoryLeavesCatalogUnchanged(t *testing.T) {
	s := newLoadedStore(t)
	original, err := s.Add(book("Algebra I", "BK-001", "9", "250"))
	require.NoError(t, err)
	before, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	_, err = s.Update("BK-001", book("Algebra I", "BK-001", "13", "250"))

	var verr *types.ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
	assert.Equal(t, "category", verr.Rule)

	got, err := s.Get("BK-001")
	require.NoError(t, err)
	assert.Equal(t, original.Title, got.Title)
	assert.Equal(t, original.Category, got.Category)
	assert.True(t, original.Price.Equal(got.Price))

	after, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestUpdate_MissingSKU(t *testing.T) {
	s := newLoadedStore(t)

	// Not found is reported even when the input is also invalid.
	_, err := s.Update("nope", book("", "", "", ""))

	var nf *types.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "nope", nf.Key)
}

func TestDelete(t *testing.T) {
	s := newLoadedStore(t)
	_, err := s.Add(book("A", "1", "9", "10"))
	require.NoError(t, err)
	_, err = s.Add(book("B", "2", "10", "20"))
	require.NoError(t, err)

	require.NoError(t, s.Delete("1"))
	assert.Equal(t, []string{"2"}, skus(s))

	reloaded := NewStore(s.Path())
	require.NoError(t, reloaded.Load())
	assert.Equal(t, []string{"2"}, skus(reloaded))
}

func TestDelete_MissingSKU(t *testing.T) {
	s := newLoadedStore(t)
	_, err := s.Add(book("A", "1", "9", "10"))
	require.NoError(t, err)

	err = s.Delete("2")

	var nf *types.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, 1, s.Len())
}

func TestDelete_WriteFailureRollsBack(t *testing.T) {
	s := newLoadedStore(t)
	_, err := s.Add(book("A", "1", "9", "10"))
	require.NoError(t, err)
	breakStorage(t, s)

	err = s.Delete("1")

	var ioErr *types.IOError
	require.True(t, errors.As(err, &ioErr))
	_, err = s.Get("1")
	assert.NoError(t, err)
}

func TestList_Filter(t *testing.T) {
	s := newLoadedStore(t)
	for _, in := range []types.BookInput{
		book("Algebra I", "MATH-9", "9", "10"),
		book("Algebra II", "MATH-10", "10", "20"),
		book("Physics", "PHY-11", "11", "30"),
	} {
		_, err := s.Add(in)
		require.NoError(t, err)
	}

	collect := func(f Filter) []string {
		var out []string
		for b := range s.List(f) {
			out = append(out, b.SKU)
		}
		return out
	}

	assert.Equal(t, []string{"MATH-9", "MATH-10", "PHY-11"}, collect(Filter{}))
	assert.Equal(t, []string{"MATH-10"}, collect(Filter{Category: types.Category10}))
	assert.Equal(t, []string{"MATH-9", "MATH-10"}, collect(Filter{Search: "algebra"}))
	assert.Equal(t, []string{"PHY-11"}, collect(Filter{Search: "phy"}))
	assert.Equal(t, []string{"MATH-9"}, collect(Filter{Category: types.Category9, Search: "MATH"}))
	assert.Empty(t, collect(Filter{Category: types.Category12}))
}

func TestList_RestartableAndEarlyStop(t *testing.T) {
	s := newLoadedStore(t)
	_, err := s.Add(book("A", "1", "9", "10"))
	require.NoError(t, err)
	_, err = s.Add(book("B", "2", "9", "10"))
	require.NoError(t, err)

	seq := s.List(Filter{})

	count := 0
	for range seq {
		count++
		break
	}
	assert.Equal(t, 1, count)

	// The same sequence sees later changes.
	_, err = s.Add(book("C", "3", "9", "10"))
	require.NoError(t, err)
	count = 0
	for range seq {
		count++
	}
	assert.Equal(t, 3, count)
}

func TestList_MutationDuringIteration(t *testing.T) {
	s := newLoadedStore(t)
	_, err := s.Add(book("A", "1", "9", "10"))
	require.NoError(t, err)
	_, err = s.Add(book("B", "2", "9", "10"))
	require.NoError(t, err)

	var seen []string
	for b := range s.List(Filter{}) {
		seen = append(seen, b.SKU)
		if b.SKU == "1" {
			require.NoError(t, s.Delete("2"))
		}
	}

	// Iteration works on a snapshot taken when it started.
	assert.Equal(t, []string{"1", "2"}, seen)
	assert.Equal(t, 1, s.Len())
}
