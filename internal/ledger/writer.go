// =============================================================================
// Smart Bookshop POS - Ledger Writer
// =============================================================================
//
// Appends sales to the daily ledger workbook.
//
// APPEND PROCESS:
//   1. Validate the transaction (at least one item)
//   2. Pick the file for the transaction's calendar date
//   3. New file: create the workbook, write the styled header and set the
//      column widths (done once per file)
//      Existing file: load the whole workbook and, if it already holds a
//      sale, write a separator row
//   4. Write one row per item
//   5. Replace the file on disk with the merged workbook
//
// SCALABILITY:
//   Each append loads and rewrites the full day's workbook, so the cost of
//   an append grows with the number of sales already recorded that day.
//
// =============================================================================

package ledger

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/smartbookshop/bookshop-pos/internal/config"
	"github.com/smartbookshop/bookshop-pos/internal/types"
	"github.com/smartbookshop/bookshop-pos/pkg/utils"
)

// =============================================================================
// LEDGER
// =============================================================================

// Ledger reads and writes the daily sales workbooks in one directory.
type Ledger struct {
	dir      string
	symbol   string
	settings config.LedgerSettings
}

// New creates a Ledger over dir.
//
// PARAMETERS:
//   - dir: The sales records directory.
//   - settings: Styling for newly created files.
//   - currencySymbol: Shown in the price column headers.
func New(dir string, settings config.LedgerSettings, currencySymbol string) *Ledger {
	if settings.SheetName == "" {
		settings.SheetName = "Sales"
	}
	return &Ledger{dir: dir, symbol: currencySymbol, settings: settings}
}

// Dir returns the ledger directory.
func (l *Ledger) Dir() string {
	return l.dir
}

// PathFor returns the ledger file path for the day of t.
func (l *Ledger) PathFor(t time.Time) string {
	return filepath.Join(l.dir, FileName(t))
}

// =============================================================================
// APPEND
// =============================================================================

// AppendSale merges tx into the ledger file for its date.
//
// RETURNS:
//   - *types.ValidationError if tx has no items.
//   - *types.CorruptDataError if the existing file is not a readable workbook.
//   - *types.IOError if the file cannot be read or written. The file on disk
//     is unchanged in every error case.
func (l *Ledger) AppendSale(tx types.SaleTransaction) error {
	if len(tx.Items) == 0 {
		return &types.ValidationError{
			Field:   "items",
			Rule:    "required",
			Message: "a sale needs at least one item",
		}
	}

	path := l.PathFor(tx.Timestamp)

	f, sheet, next, err := l.openForAppend(path)
	if err != nil {
		return err
	}
	defer f.Close()

	width := len(Header(l.symbol))
	if next > 2 {
		if err := writeRow(f, sheet, next, separatorRow(width)); err != nil {
			return &types.IOError{Op: "write", Path: path, Err: err}
		}
		next++
	}

	for _, row := range saleRows(tx) {
		if err := writeRow(f, sheet, next, row); err != nil {
			return &types.IOError{Op: "write", Path: path, Err: err}
		}
		next++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return &types.IOError{Op: "encode", Path: path, Err: err}
	}
	if err := utils.WriteFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return &types.IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// openForAppend returns the workbook to append to, its sheet, and the
// 1-based row number of the first free row. Row 2 means the file holds only
// a header, so no separator is needed.
func (l *Ledger) openForAppend(path string) (*excelize.File, string, int, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		f, sheet, err := l.newWorkbook()
		if err != nil {
			return nil, "", 0, &types.IOError{Op: "create", Path: path, Err: err}
		}
		return f, sheet, 2, nil
	}
	if err != nil {
		return nil, "", 0, &types.IOError{Op: "read", Path: path, Err: err}
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, "", 0, &types.CorruptDataError{Path: path, Err: fmt.Errorf("failed to open workbook: %w", err)}
	}

	sheet := f.GetSheetName(0)
	if sheet == "" {
		f.Close()
		return nil, "", 0, &types.CorruptDataError{Path: path, Err: errors.New("workbook has no sheets")}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		f.Close()
		return nil, "", 0, &types.CorruptDataError{Path: path, Err: fmt.Errorf("failed to read rows: %w", err)}
	}

	if len(rows) == 0 {
		if err := l.writeHeader(f, sheet); err != nil {
			f.Close()
			return nil, "", 0, &types.IOError{Op: "write", Path: path, Err: err}
		}
		return f, sheet, 2, nil
	}

	return f, sheet, len(rows) + 1, nil
}

// =============================================================================
// WORKBOOK CREATION
// =============================================================================

// newWorkbook creates an empty workbook with the styled header row.
func (l *Ledger) newWorkbook() (*excelize.File, string, error) {
	f := excelize.NewFile()
	sheet := l.settings.SheetName

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		f.Close()
		return nil, "", fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := l.writeHeader(f, sheet); err != nil {
		f.Close()
		return nil, "", err
	}
	return f, sheet, nil
}

// writeHeader writes row 1 and applies the one-time header styling and
// column widths.
func (l *Ledger) writeHeader(f *excelize.File, sheet string) error {
	header := Header(l.symbol)
	values := make([]interface{}, len(header))
	for i, h := range header {
		values[i] = h
	}
	if err := writeRow(f, sheet, 1, values); err != nil {
		return err
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Size:  12,
			Color: l.settings.HeaderFontColor,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{l.settings.HeaderFillColor},
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, width := range l.settings.ColumnWidths {
		if i >= len(header) {
			break
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return fmt.Errorf("failed to set width of column %s: %w", col, err)
		}
	}
	return nil
}

// writeRow writes values starting at column A of the given 1-based row.
func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
