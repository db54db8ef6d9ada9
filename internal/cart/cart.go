// =============================================================================
// Smart Bookshop POS - Cart
// =============================================================================
//
// A cart holds the items selected during one sale session.
//
// LIFECYCLE:
//   Created empty when a sale starts, filled with value copies of catalog
//   records, and cleared when the sale is written to the ledger or
//   abandoned. A cart is never persisted.
//
// INVOICE LINES:
//   Summary groups units by SKU and unit price, so every line satisfies
//   UNIT x QTY = SUBTOTAL even when a book was re-priced mid-sale.
//
// =============================================================================

// Package cart holds the items selected during one sale session.
package cart

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/smartbookshop/bookshop-pos/internal/types"
)

// =============================================================================
// CART
// =============================================================================

// Cart is an ordered sequence of items. The same SKU may appear more than
// once; each entry is one unit sold.
type Cart struct {
	items []types.CartItem
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add appends a copy of record.
func (c *Cart) Add(record types.BookRecord) {
	c.items = append(c.items, types.CartItem(record))
}

// RemoveAt removes the item at index.
func (c *Cart) RemoveAt(index int) error {
	if index < 0 || index >= len(c.items) {
		return &types.IndexError{Index: index, Length: len(c.items)}
	}
	c.items = slices.Delete(c.items, index, index+1)
	return nil
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.items = nil
}

// Total is the sum of item prices, recomputed on every call.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.Price)
	}
	return total
}

// ItemCount returns the number of units in the cart.
func (c *Cart) ItemCount() int {
	return len(c.items)
}

// IsEmpty reports whether the cart has no items.
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Items returns a copy of the items in insertion order.
func (c *Cart) Items() []types.CartItem {
	return slices.Clone(c.items)
}

// =============================================================================
// INVOICE SUMMARY
// =============================================================================

// Line groups the units of one SKU sold at one price.
type Line struct {
	Item     types.CartItem
	Quantity int
	Subtotal decimal.Decimal
}

// lineKey identifies the line an item belongs to.
type lineKey struct {
	sku   string
	price string
}

// Summary groups items by SKU and price in first-seen order. A SKU that was
// re-priced between two adds yields one line per price.
func (c *Cart) Summary() []Line {
	var lines []Line
	index := make(map[lineKey]int)
	for _, item := range c.items {
		key := lineKey{sku: item.SKU, price: item.Price.String()}
		if i, ok := index[key]; ok {
			lines[i].Quantity++
			lines[i].Subtotal = lines[i].Subtotal.Add(item.Price)
			continue
		}
		index[key] = len(lines)
		lines = append(lines, Line{Item: item, Quantity: 1, Subtotal: item.Price})
	}
	return lines
}
