// =============================================================================
// Smart Bookshop POS - Ledger Reader
// =============================================================================
//
// Reads the daily sales workbooks back for reporting.
//
// FILE DISCOVERY:
//   Only files named exactly DD-MM-YYYY.xlsx (lowercase extension, the name
//   PathFor builds) are ledgers. Anything else in the directory (temporary
//   files, exports, notes, "DD-MM-YYYY.XLSX") is ignored.
//
// TRANSACTION COUNTING:
//   Sales are counted structurally: count the separator rows (every cell
//   "---") and add one if there is any data row. A cell that merely starts
//   with or equals "---" in one column is ordinary data.
//
// =============================================================================

package ledger

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/smartbookshop/bookshop-pos/internal/types"
)

// =============================================================================
// REPORT STRUCTURE
// =============================================================================

// Report is the parsed content of one day's ledger.
type Report struct {
	// Date is the calendar day of the file.
	Date time.Time

	// Path is the file the report was read from.
	Path string

	// Header is row 1 of the sheet.
	Header []string

	// Rows are all rows after the header, separators included, each padded
	// to the header width.
	Rows [][]string

	// TransactionCount is the number of sales in the file.
	TransactionCount int
}

// Transactions splits Rows into one group per sale, dropping separators.
func (r *Report) Transactions() [][][]string {
	var groups [][][]string
	var current [][]string
	for _, row := range r.Rows {
		if IsSeparator(row) {
			if len(current) > 0 {
				groups = append(groups, current)
			}
			current = nil
			continue
		}
		if isBlank(row) {
			continue
		}
		current = append(current, row)
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}
	return groups
}

// Revenue sums the bill total of every sale in the report.
// Totals written with a currency prefix ("Rs 250.00") are accepted.
func (r *Report) Revenue() (decimal.Decimal, error) {
	total := decimal.Zero
	for i, group := range r.Transactions() {
		first := group[0]
		cell := strings.TrimSpace(first[len(first)-1])
		if cell == "" {
			continue
		}
		amount, err := parseAmount(cell)
		if err != nil {
			return decimal.Zero, fmt.Errorf("sale %d: invalid total %q: %w", i+1, cell, err)
		}
		total = total.Add(amount)
	}
	return total, nil
}

// =============================================================================
// LISTING
// =============================================================================

// ListLedgerDates returns the dates that have a ledger file, most recent
// first. A missing directory means there are no ledgers yet.
func (l *Ledger) ListLedgerDates() ([]time.Time, error) {
	entries, err := os.ReadDir(l.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, &types.IOError{Op: "list", Path: l.dir, Err: err}
	}

	var dates []time.Time
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, FileExt) {
			continue
		}
		date, err := ParseDate(name[:len(name)-len(FileExt)])
		if err != nil {
			continue
		}
		dates = append(dates, date)
	}

	slices.SortFunc(dates, func(a, b time.Time) int {
		return b.Compare(a)
	})
	return dates, nil
}

// =============================================================================
// READING
// =============================================================================

// ReadLedger parses the ledger for the day of date.
//
// RETURNS:
//   - The parsed report.
//   - *types.NotFoundError if no ledger exists for that day.
//   - *types.CorruptDataError if the file is not a readable ledger workbook.
//   - *types.IOError if the file cannot be read.
func (l *Ledger) ReadLedger(date time.Time) (*Report, error) {
	path := l.PathFor(date)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &types.NotFoundError{Kind: "ledger", Key: date.Format(DateLayout)}
	}
	if err != nil {
		return nil, &types.IOError{Op: "read", Path: path, Err: err}
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &types.CorruptDataError{Path: path, Err: fmt.Errorf("failed to open workbook: %w", err)}
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, &types.CorruptDataError{Path: path, Err: errors.New("workbook has no sheets")}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &types.CorruptDataError{Path: path, Err: fmt.Errorf("failed to read rows: %w", err)}
	}
	if len(rows) == 0 {
		return nil, &types.CorruptDataError{Path: path, Err: errors.New("missing header row")}
	}

	header := rows[0]
	body := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		body = append(body, padRow(row, len(header)))
	}

	return &Report{
		Date:             date,
		Path:             path,
		Header:           header,
		Rows:             body,
		TransactionCount: countTransactions(body),
	}, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// countTransactions returns separators + 1 when any data row exists, else 0.
func countTransactions(rows [][]string) int {
	separators := 0
	data := false
	for _, row := range rows {
		switch {
		case IsSeparator(row):
			separators++
		case !isBlank(row):
			data = true
		}
	}
	if !data {
		return 0
	}
	return separators + 1
}

// padRow extends row with empty cells up to width. GetRows drops trailing
// empty cells, such as the blank total on the second item of a sale.
func padRow(row []string, width int) []string {
	if len(row) >= width {
		return row
	}
	padded := make([]string, width)
	copy(padded, row)
	return padded
}

// isBlank checks if a row contains only empty cells.
func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// parseAmount strips a leading currency symbol and parses the rest.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimLeftFunc(s, func(r rune) bool {
		return !unicode.IsDigit(r) && r != '-' && r != '.'
	})
	return decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
}
