// =============================================================================
// Smart Bookshop POS - Ledger Layout
// =============================================================================
//
// One workbook per calendar day, named DD-MM-YYYY.xlsx, with this layout:
//
//   | Date       | Time     | Book Title | Class/Category | SKU    | Unit Price (Rs) | Total Bill (Rs) |
//   |------------|----------|------------|----------------|--------|-----------------|-----------------|
//   | 15-10-2026 | 02:30 PM | Algebra I  | Class 9        | BK-001 | 250.00          | 400.00          |
//   | 15-10-2026 | 02:30 PM | Physics    | Class 11       | BK-007 | 150.00          |                 |
//   | ---        | ---      | ---        | ---            | ---    | ---             | ---             |
//   | 15-10-2026 | 04:10 PM | Algebra I  | Class 9        | BK-001 | 250.00          | 250.00          |
//
//   - Row 1 is the header.
//   - Each sale is a group of rows, one per unit sold. Only the first row of
//     a group carries the bill total.
//   - Consecutive groups are separated by a row with "---" in every column.
//     There is no separator before the first group or after the last.
//
// =============================================================================

package ledger

import (
	"strings"
	"time"

	"github.com/smartbookshop/bookshop-pos/internal/types"
)

// Layout constants.
const (
	// DateLayout formats the file name and the Date column.
	DateLayout = "02-01-2006"

	// TimeLayout formats the Time column.
	TimeLayout = "03:04 PM"

	// FileExt is the ledger file extension.
	FileExt = ".xlsx"

	// SeparatorCell fills every cell of a separator row.
	SeparatorCell = "---"
)

// Header returns the header row for the given currency symbol.
func Header(symbol string) []string {
	return []string{
		"Date",
		"Time",
		"Book Title",
		"Class/Category",
		"SKU",
		"Unit Price (" + symbol + ")",
		"Total Bill (" + symbol + ")",
	}
}

// FileName returns the ledger file name for the day of t.
func FileName(t time.Time) string {
	return t.Format(DateLayout) + FileExt
}

// ParseDate parses a DD-MM-YYYY date in the local time zone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.Local)
}

// saleRows flattens a transaction into ledger rows.
func saleRows(tx types.SaleTransaction) [][]interface{} {
	date := tx.Timestamp.Format(DateLayout)
	clock := tx.Timestamp.Format(TimeLayout)

	rows := make([][]interface{}, len(tx.Items))
	for i, item := range tx.Items {
		total := ""
		if i == 0 {
			total = tx.Total.StringFixed(2)
		}
		rows[i] = []interface{}{
			date,
			clock,
			item.Title,
			item.Category.Label(),
			item.SKU,
			item.Price.StringFixed(2),
			total,
		}
	}
	return rows
}

// separatorRow returns a full-width separator row.
func separatorRow(width int) []interface{} {
	row := make([]interface{}, width)
	for i := range row {
		row[i] = SeparatorCell
	}
	return row
}

// IsSeparator reports whether row is a separator: non-empty and every cell
// is exactly "---". Matching the full width keeps a book titled "---" from
// being mistaken for one.
func IsSeparator(row []string) bool {
	if len(row) == 0 {
		return false
	}
	for _, cell := range row {
		if strings.TrimSpace(cell) != SeparatorCell {
			return false
		}
	}
	return true
}
