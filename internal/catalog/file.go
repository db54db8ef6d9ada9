// =============================================================================
// Smart Bookshop POS - Inventory File Codec
// =============================================================================
//
// Reads and writes Inventory/books.json.
//
// FILE FORMAT:
//   A JSON array of objects with title, sku, category and price keys.
//   Category is text ("9" through "12"); price is a plain JSON number and is
//   written back with every fractional digit it was read with.
//
// WRITES:
//   The whole array is rewritten through utils.WriteFileAtomic, so a failed
//   save leaves the previous file in place.
//
// =============================================================================

package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/smartbookshop/bookshop-pos/internal/types"
	"github.com/smartbookshop/bookshop-pos/pkg/utils"
)

// =============================================================================
// ON-DISK SHAPE
// =============================================================================

// bookEntry is the on-disk shape of a record in books.json.
// Category is text digits and price is a plain JSON number.
type bookEntry struct {
	Title    string      `json:"title"`
	SKU      string      `json:"sku"`
	Category string      `json:"category"`
	Price    json.Number `json:"price"`
}

// =============================================================================
// DECODING
// =============================================================================

func decodeBooks(data []byte) ([]types.BookRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var entries []bookEntry
	if err := dec.Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to parse inventory: %w", err)
	}
	if entries == nil {
		return nil, fmt.Errorf("failed to parse inventory: expected a list of books")
	}

	books := make([]types.BookRecord, len(entries))
	for i, e := range entries {
		price, err := decimal.NewFromString(e.Price.String())
		if err != nil {
			return nil, fmt.Errorf("record %d: invalid price %q", i+1, e.Price)
		}
		books[i] = types.BookRecord{
			Title:    e.Title,
			SKU:      e.SKU,
			Category: types.Category(e.Category),
			Price:    price,
		}
	}
	return books, nil
}

// =============================================================================
// ENCODING
// =============================================================================

func encodeBooks(books []types.BookRecord) ([]byte, error) {
	entries := make([]bookEntry, len(books))
	for i, b := range books {
		entries[i] = bookEntry{
			Title:    b.Title,
			SKU:      b.SKU,
			Category: string(b.Category),
			Price:    json.Number(priceLiteral(b.Price)),
		}
	}
	return json.MarshalIndent(entries, "", "    ")
}

// persist rewrites the whole inventory file with books.
func (s *Store) persist(books []types.BookRecord) error {
	data, err := encodeBooks(books)
	if err != nil {
		return fmt.Errorf("failed to encode inventory: %w", err)
	}
	if err := utils.WriteFileAtomic(s.path, data, 0o644); err != nil {
		return &types.IOError{Op: "write", Path: s.path, Err: err}
	}
	return nil
}

// priceLiteral formats price with at least two fractional digits and never
// drops digits the stored value has.
func priceLiteral(price decimal.Decimal) string {
	places := int32(2)
	if exp := -price.Exponent(); exp > places {
		places = exp
	}
	return price.StringFixed(places)
}
