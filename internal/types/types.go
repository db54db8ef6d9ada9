// =============================================================================
// Smart Bookshop POS - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - catalog
//   - cart
//   - ledger
//   - sale
//
// =============================================================================

package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// CATALOG TYPES
// =============================================================================

// Category is the school class a book is sold for.
// Stored as text digits ("9".."12") to match the inventory file format.
type Category string

// Supported categories.
const (
	Category9  Category = "9"
	Category10 Category = "10"
	Category11 Category = "11"
	Category12 Category = "12"
)

// Categories lists every valid category in display order.
var Categories = []Category{Category9, Category10, Category11, Category12}

// Valid reports whether c is one of the supported categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Label returns the human-readable form used on invoices and in the ledger.
// Example: "9" -> "Class 9"
func (c Category) Label() string {
	return "Class " + string(c)
}

// BookRecord is a single catalog entry.
// SKU is the unique, case-sensitive key.
type BookRecord struct {
	// Title is the display name of the book.
	Title string

	// SKU is the stock keeping unit / serial number.
	SKU string

	// Category is the class the book belongs to.
	Category Category

	// Price is the unit price. Always positive.
	Price decimal.Decimal
}

// BookInput carries unvalidated field values as entered by an operator.
// CatalogStore validates and converts it into a BookRecord.
type BookInput struct {
	Title    string
	SKU      string
	Category string
	Price    string
}

// =============================================================================
// SALE TYPES
// =============================================================================

// CartItem is a value snapshot of a BookRecord taken when it was added to a
// cart. Later catalog edits do not change it.
type CartItem BookRecord

// SaleTransaction is the unit the ledger consumes.
// It is flattened into rows on write and never retained afterwards.
type SaleTransaction struct {
	// ID identifies the sale on the invoice and in logs.
	ID uuid.UUID

	// Timestamp is when the sale was finalized. Its calendar date selects
	// the ledger file.
	Timestamp time.Time

	// Items contains one entry per unit sold, in cart order.
	Items []CartItem

	// Total is the bill amount written on the first row of the group.
	Total decimal.Decimal
}

// NewSaleTransaction builds a transaction from a snapshot of cart items.
// The total is computed from the items so it can never go stale.
func NewSaleTransaction(items []CartItem, at time.Time) SaleTransaction {
	copied := make([]CartItem, len(items))
	copy(copied, items)

	total := decimal.Zero
	for _, item := range copied {
		total = total.Add(item.Price)
	}

	return SaleTransaction{
		ID:        uuid.New(),
		Timestamp: at,
		Items:     copied,
		Total:     total,
	}
}
