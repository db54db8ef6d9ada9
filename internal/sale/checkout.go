// =============================================================================
// Smart Bookshop POS - Checkout
// =============================================================================
//
// Turns a filled cart into a recorded sale.
//
// CHECKOUT PIPELINE:
//   1. Reject an empty cart
//   2. Snapshot the cart into a SaleTransaction (id, time, items, total)
//   3. Append the transaction to the day's ledger
//   4. Clear the cart and build the invoice
//
// FAILURE POLICY:
//   The cart is cleared only after the ledger write is confirmed. If the
//   write fails, the cart keeps its items and the caller can retry without
//   re-entering the sale.
//
// =============================================================================

package sale

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartbookshop/bookshop-pos/internal/cart"
	"github.com/smartbookshop/bookshop-pos/internal/ledger"
	"github.com/smartbookshop/bookshop-pos/internal/types"
)

// =============================================================================
// COLLABORATORS
// =============================================================================

// Recorder persists a finished sale. *ledger.Ledger implements it.
type Recorder interface {
	AppendSale(tx types.SaleTransaction) error
}

// Logger is an interface for logging.
// *log.Logger from github.com/charmbracelet/log satisfies it.
type Logger interface {
	Debug(msg interface{}, keyvals ...interface{})
	Info(msg interface{}, keyvals ...interface{})
	Warn(msg interface{}, keyvals ...interface{})
	Error(msg interface{}, keyvals ...interface{})
}

// =============================================================================
// INVOICE
// =============================================================================

// Invoice is what the operator is shown after a completed sale.
type Invoice struct {
	// SaleID identifies the sale in logs.
	SaleID string

	// Date and Time are formatted as in the ledger.
	Date string
	Time string

	// Lines groups the items by SKU in the order they were added.
	Lines []cart.Line

	// TotalBooks is the number of units sold.
	TotalBooks int

	// TotalAmount is the bill total.
	TotalAmount decimal.Decimal
}

// =============================================================================
// CHECKOUT
// =============================================================================

// Checkout records carts as sales.
type Checkout struct {
	recorder Recorder
	logger   Logger
	now      func() time.Time
}

// Option configures a Checkout.
type Option func(*Checkout)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger Logger) Option {
	return func(c *Checkout) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Checkout) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCheckout creates a Checkout that records sales with recorder.
func NewCheckout(recorder Recorder, opts ...Option) *Checkout {
	c := &Checkout{
		recorder: recorder,
		logger:   nopLogger{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Complete records the contents of basket as one sale.
//
// RETURNS:
//   - The invoice for the sale. basket is empty afterwards.
//   - *types.ValidationError if basket is empty.
//   - Any error from the recorder; basket is left untouched.
func (c *Checkout) Complete(basket *cart.Cart) (*Invoice, error) {
	if basket.IsEmpty() {
		return nil, &types.ValidationError{
			Field:   "cart",
			Rule:    "required",
			Message: "add items to the cart first",
		}
	}

	tx := types.NewSaleTransaction(basket.Items(), c.now())
	lines := basket.Summary()

	c.logger.Debug("recording sale", "sale_id", tx.ID, "items", len(tx.Items), "total", tx.Total.StringFixed(2))

	if err := c.recorder.AppendSale(tx); err != nil {
		c.logger.Error("failed to record sale", "sale_id", tx.ID, "err", err)
		return nil, err
	}

	basket.Clear()

	c.logger.Info("sale recorded", "sale_id", tx.ID, "items", len(tx.Items), "total", tx.Total.StringFixed(2))

	return &Invoice{
		SaleID:      tx.ID.String(),
		Date:        tx.Timestamp.Format(ledger.DateLayout),
		Time:        tx.Timestamp.Format(ledger.TimeLayout),
		Lines:       lines,
		TotalBooks:  len(tx.Items),
		TotalAmount: tx.Total,
	}, nil
}

// =============================================================================
// DEFAULT LOGGER
// =============================================================================

// nopLogger discards log output.
type nopLogger struct{}

func (nopLogger) Debug(msg interface{}, keyvals ...interface{}) {}
func (nopLogger) Info(msg interface{}, keyvals ...interface{})  {}
func (nopLogger) Warn(msg interface{}, keyvals ...interface{})  {}
func (nopLogger) Error(msg interface{}, keyvals ...interface{}) {}
