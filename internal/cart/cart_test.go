package cart

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartbookshop/bookshop-pos/internal/types"
)

func record(sku, price string) types.BookRecord {
	return types.BookRecord{
		Title:    "Book " + sku,
		SKU:      sku,
		Category: types.Category9,
		Price:    decimal.RequireFromString(price),
	}
}

func TestCart_AddAndTotal(t *testing.T) {
	c := New()
	assert.True(t, c.IsEmpty())
	assert.True(t, c.Total().IsZero())

	c.Add(record("A", "250"))
	c.Add(record("A", "250"))
	c.Add(record("B", "150.50"))

	assert.False(t, c.IsEmpty())
	assert.Equal(t, 3, c.ItemCount())
	assert.Equal(t, "650.50", c.Total().StringFixed(2))
}

func TestCart_ItemsAreSnapshots(t *testing.T) {
	c := New()
	r := record("A", "250")
	c.Add(r)

	// Changing the source record does not touch the cart.
	r.Price = decimal.RequireFromString("999")
	r.Title = "Changed"

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Book A", items[0].Title)
	assert.Equal(t, "250.00", items[0].Price.StringFixed(2))

	// Neither does changing the returned slice.
	items[0].Title = "Mutated"
	assert.Equal(t, "Book A", c.Items()[0].Title)
}

func TestCart_RemoveAt(t *testing.T) {
	c := New()
	c.Add(record("A", "1"))
	c.Add(record("B", "2"))
	c.Add(record("C", "3"))

	require.NoError(t, c.RemoveAt(1))

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "A", items[0].SKU)
	assert.Equal(t, "C", items[1].SKU)
	assert.Equal(t, "4.00", c.Total().StringFixed(2))
}

func TestCart_RemoveAtOutOfRange(t *testing.T) {
	c := New()
	c.Add(record("A", "1"))

	for _, idx := range []int{-1, 1, 5} {
		err := c.RemoveAt(idx)

		var idxErr *types.IndexError
		require.True(t, errors.As(err, &idxErr), "index %d", idx)
		assert.Equal(t, idx, idxErr.Index)
		assert.Equal(t, 1, idxErr.Length)
	}
	assert.Equal(t, 1, c.ItemCount())
}

func TestCart_Clear(t *testing.T) {
	c := New()
	c.Add(record("A", "1"))
	c.Clear()

	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.ItemCount())
	assert.True(t, c.Total().IsZero())
}

func TestCart_Summary(t *testing.T) {
	c := New()
	c.Add(record("A", "250"))
	c.Add(record("B", "150"))
	c.Add(record("A", "250"))

	lines := c.Summary()
	require.Len(t, lines, 2)

	assert.Equal(t, "A", lines[0].Item.SKU)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, "500.00", lines[0].Subtotal.StringFixed(2))

	assert.Equal(t, "B", lines[1].Item.SKU)
	assert.Equal(t, 1, lines[1].Quantity)
	assert.Equal(t, "150.00", lines[1].Subtotal.StringFixed(2))
}

func TestCart_SummaryRepriced(t *testing.T) {
	c := New()
	c.Add(record("A", "100"))
	c.Add(record("A", "120"))
	c.Add(record("A", "100.00"))

	lines := c.Summary()
	require.Len(t, lines, 2)

	assert.Equal(t, "100.00", lines[0].Item.Price.StringFixed(2))
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, "120.00", lines[1].Item.Price.StringFixed(2))
	assert.Equal(t, 1, lines[1].Quantity)

	sum := decimal.Zero
	for _, line := range lines {
		assert.True(t, line.Item.Price.Mul(decimal.NewFromInt(int64(line.Quantity))).Equal(line.Subtotal),
			"unit x qty must equal subtotal for %s at %s", line.Item.SKU, line.Item.Price)
		sum = sum.Add(line.Subtotal)
	}
	assert.True(t, c.Total().Equal(sum))
}
