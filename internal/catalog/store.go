// =============================================================================
// Smart Bookshop POS - Catalog Store
// =============================================================================
//
// The catalog store owns the set of book records. It is loaded once at
// process start and is the in-memory source of truth afterwards.
//
// INVARIANTS:
//   - No two records share a SKU (case-sensitive).
//   - Every record has a title, a SKU, a category in {9,10,11,12} and a
//     positive price.
//   - Insertion order is preserved; updates happen in place.
//
// PERSISTENCE:
//   Every mutation rewrites the whole inventory file (write-through). The
//   new state is only adopted after the write succeeds, so a failed write
//   leaves both the file and the in-memory catalog as they were.
//
// =============================================================================

package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/smartbookshop/bookshop-pos/internal/types"
	"github.com/smartbookshop/bookshop-pos/internal/validation"
)

// =============================================================================
// STORE
// =============================================================================

// Store holds the catalog and persists it to a single JSON file.
type Store struct {
	path      string
	validator *validation.Validator

	mu    sync.RWMutex
	books []types.BookRecord
}

// NewStore creates a store backed by path. Call Load before use.
func NewStore(path string) *Store {
	return &Store{
		path:      path,
		validator: validation.NewValidator(),
		books:     []types.BookRecord{},
	}
}

// Path returns the inventory file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the inventory file. A missing file initializes an empty catalog
// and persists it.
//
// RETURNS:
//   - *types.CorruptDataError if the file exists but is not a valid catalog.
//   - *types.IOError if the file cannot be read or the empty catalog cannot
//     be written.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := s.persist([]types.BookRecord{}); err != nil {
			return err
		}
		s.books = []types.BookRecord{}
		return nil
	}
	if err != nil {
		return &types.IOError{Op: "read", Path: s.path, Err: err}
	}

	books, err := decodeBooks(data)
	if err != nil {
		return &types.CorruptDataError{Path: s.path, Err: err}
	}

	for i, b := range books {
		if err := s.validator.ValidateRecord(b); err != nil {
			return &types.CorruptDataError{Path: s.path, Err: fmt.Errorf("record %d: %w", i+1, err)}
		}
		if err := validation.CheckUnique(b.SKU, "", books[:i]); err != nil {
			return &types.CorruptDataError{Path: s.path, Err: fmt.Errorf("record %d: %w", i+1, err)}
		}
	}

	s.books = books
	return nil
}

// =============================================================================
// MUTATIONS
// =============================================================================

// Add validates input and appends it to the catalog.
//
// RETURNS:
//   - The stored record.
//   - *types.ValidationError if any field is invalid or the SKU is taken.
//   - *types.IOError if the catalog cannot be written.
func (s *Store) Add(input types.BookInput) (types.BookRecord, error) {
	record, err := s.validator.ValidateBook(input)
	if err != nil {
		return types.BookRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := validation.CheckUnique(record.SKU, "", s.books); err != nil {
		return types.BookRecord{}, err
	}

	next := append(slices.Clone(s.books), record)
	if err := s.persist(next); err != nil {
		return types.BookRecord{}, err
	}
	s.books = next
	return record, nil
}

// Update replaces the record identified by originalSKU. The SKU itself may
// change as long as it does not collide with another record.
//
// RETURNS:
//   - The updated record.
//   - *types.NotFoundError if originalSKU is not in the catalog.
//   - *types.ValidationError if any field is invalid.
//   - *types.IOError if the catalog cannot be written.
func (s *Store) Update(originalSKU string, input types.BookInput) (types.BookRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(originalSKU)
	if idx < 0 {
		return types.BookRecord{}, &types.NotFoundError{Kind: "book", Key: originalSKU}
	}

	record, err := s.validator.ValidateBook(input)
	if err != nil {
		return types.BookRecord{}, err
	}
	if err := validation.CheckUnique(record.SKU, originalSKU, s.books); err != nil {
		return types.BookRecord{}, err
	}

	next := slices.Clone(s.books)
	next[idx] = record
	if err := s.persist(next); err != nil {
		return types.BookRecord{}, err
	}
	s.books = next
	return record, nil
}

// Delete removes the record with the given SKU.
//
// RETURNS:
//   - *types.NotFoundError if no record has that SKU.
//   - *types.IOError if the catalog cannot be written.
func (s *Store) Delete(sku string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(sku)
	if idx < 0 {
		return &types.NotFoundError{Kind: "book", Key: sku}
	}

	next := slices.Delete(slices.Clone(s.books), idx, idx+1)
	if err := s.persist(next); err != nil {
		return err
	}
	s.books = next
	return nil
}

// =============================================================================
// QUERIES
// =============================================================================

// Get returns the record with the given SKU.
func (s *Store) Get(sku string) (types.BookRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(sku)
	if idx < 0 {
		return types.BookRecord{}, &types.NotFoundError{Kind: "book", Key: sku}
	}
	return s.books[idx], nil
}

// Len returns the number of records in the catalog.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.books)
}

// Filter narrows a listing. Zero values match everything.
type Filter struct {
	// Category keeps only records of this category.
	Category types.Category

	// Search keeps only records whose title or SKU contains it,
	// ignoring case.
	Search string
}

// Match reports whether b passes the filter.
func (f Filter) Match(b types.BookRecord) bool {
	if f.Category != "" && b.Category != f.Category {
		return false
	}
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		return strings.Contains(strings.ToLower(b.Title), term) ||
			strings.Contains(strings.ToLower(b.SKU), term)
	}
	return true
}

// List returns a lazy view of the records matching filter, in catalog order.
// Each iteration takes a fresh snapshot, so the sequence can be ranged over
// again after the catalog changes.
func (s *Store) List(filter Filter) iter.Seq[types.BookRecord] {
	return func(yield func(types.BookRecord) bool) {
		for _, b := range s.snapshot() {
			if !filter.Match(b) {
				continue
			}
			if !yield(b) {
				return
			}
		}
	}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func (s *Store) snapshot() []types.BookRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.books)
}

// indexOf must be called with the lock held.
func (s *Store) indexOf(sku string) int {
	return slices.IndexFunc(s.books, func(b types.BookRecord) bool {
		return b.SKU == sku
	})
}
