package types

import (
	"errors"
	"io/fs"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategory(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, c.Valid(), c)
	}
	assert.False(t, Category("8").Valid())
	assert.False(t, Category("").Valid())
	assert.Equal(t, "Class 10", Category10.Label())
}

func TestNewSaleTransaction(t *testing.T) {
	at := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	items := []CartItem{
		{SKU: "A", Price: decimal.RequireFromString("250")},
		{SKU: "B", Price: decimal.RequireFromString("149.99")},
	}

	tx := NewSaleTransaction(items, at)

	assert.NotEqual(t, uuid.Nil, tx.ID)
	assert.Equal(t, at, tx.Timestamp)
	assert.Equal(t, "399.99", tx.Total.StringFixed(2))

	// The transaction owns its items.
	items[0].SKU = "changed"
	require.Len(t, tx.Items, 2)
	assert.Equal(t, "A", tx.Items[0].SKU)

	other := NewSaleTransaction(items, at)
	assert.NotEqual(t, tx.ID, other.ID)
}

func TestErrors(t *testing.T) {
	verr := &ValidationError{Field: "price", Message: "price is required"}
	assert.Equal(t, "validation failed for field 'price': price is required", verr.Error())

	nf := &NotFoundError{Kind: "book", Key: "BK-001"}
	assert.Equal(t, "book 'BK-001' not found", nf.Error())

	assert.Equal(t, "authentication failed", (&AuthError{}).Error())

	ioErr := &IOError{Op: "write", Path: "books.json", Err: fs.ErrPermission}
	assert.ErrorIs(t, ioErr, fs.ErrPermission)

	inner := errors.New("bad json")
	corrupt := &CorruptDataError{Path: "books.json", Err: inner}
	assert.ErrorIs(t, corrupt, inner)
	assert.Contains(t, corrupt.Error(), "books.json")

	assert.Contains(t, (&IndexError{Index: 3, Length: 1}).Error(), "index 3")
}
