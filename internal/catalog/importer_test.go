package catalog

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartbookshop/bookshop-pos/internal/types"
)

func TestImport_AddsValidRowsAndReportsRejects(t *testing.T) {
	s := newLoadedStore(t)
	_, err := s.Add(book("Existing", "BK-001", "9", "100"))
	require.NoError(t, err)

	csvData := "\ufeffTitle,SKU,Category,Price\n" +
		"Algebra II,BK-002,10,200\n" +
		"\n" +
		"Duplicate,BK-001,9,100\n" +
		"Bad Class,BK-003,8,100\n" +
		"Physics,BK-004,11,150.50\n"

	result, err := s.Import(strings.NewReader(csvData), ',')
	require.NoError(t, err)

	assert.Equal(t, 4, result.RowsRead)
	require.Len(t, result.Added, 2)
	assert.Equal(t, "BK-002", result.Added[0].SKU)
	assert.Equal(t, "BK-004", result.Added[1].SKU)

	require.Len(t, result.Errors, 2)
	assert.Equal(t, 4, result.Errors[0].Row)
	assert.Equal(t, 5, result.Errors[1].Row)

	var verr *types.ValidationError
	require.True(t, errors.As(result.Errors[0].Err, &verr))
	assert.Equal(t, "unique", verr.Rule)
	require.True(t, errors.As(result.Errors[1].Err, &verr))
	assert.Equal(t, "category", verr.Rule)

	assert.Equal(t, 3, s.Len())
}

func TestImport_ColumnOrderAndDelimiter(t *testing.T) {
	s := newLoadedStore(t)

	csvData := "price|sku|extra|title|category\n" +
		"99|X-1|ignored|Chemistry|12\n"

	result, err := s.Import(strings.NewReader(csvData), '|')
	require.NoError(t, err)
	require.Len(t, result.Added, 1)

	got, err := s.Get("X-1")
	require.NoError(t, err)
	assert.Equal(t, "Chemistry", got.Title)
	assert.Equal(t, types.Category12, got.Category)
}

func TestImport_MissingColumns(t *testing.T) {
	s := newLoadedStore(t)

	_, err := s.Import(strings.NewReader("title,sku\nA,1\n"), ',')

	var verr *types.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "header", verr.Field)
	assert.Contains(t, verr.Message, "category")
	assert.Contains(t, verr.Message, "price")
	assert.Equal(t, 0, s.Len())
}

func TestImport_EmptyInput(t *testing.T) {
	_, err := newLoadedStore(t).Import(strings.NewReader(""), ',')
	assert.Error(t, err)
}

func TestExport_ImportRoundTrip(t *testing.T) {
	src := newLoadedStore(t)
	_, err := src.Add(book("Algebra, Vol. 1", "BK-001", "9", "250"))
	require.NoError(t, err)
	_, err = src.Add(book("Physics", "BK-007", "11", "150.5"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, src.Export(&buf, ','))
	assert.True(t, strings.HasPrefix(buf.String(), "title,sku,category,price\n"))
	assert.Contains(t, buf.String(), `"Algebra, Vol. 1",BK-001,9,250.00`)

	dst := newLoadedStore(t)
	result, err := dst.Import(&buf, ',')
	require.NoError(t, err)
	assert.Empty(t, result.Errors)
	assert.Equal(t, skus(src), skus(dst))

	got, err := dst.Get("BK-007")
	require.NoError(t, err)
	assert.Equal(t, "150.50", got.Price.StringFixed(2))
}
