// =============================================================================
// Smart Bookshop POS - Catalog CSV Import / Export
// =============================================================================
//
// Bulk loading of books from a CSV file, and the matching export.
//
// EXPECTED LAYOUT:
//   | title        | sku    | category | price  |
//   |--------------|--------|----------|--------|
//   | Algebra I    | BK-001 | 9        | 250.00 |
//
//   Columns are located by header name (case-insensitive), so their order
//   does not matter and extra columns are ignored.
//
// ERROR HANDLING:
//   - Each row goes through Store.Add, so every catalog rule applies.
//   - A row that fails validation is recorded and processing continues.
//   - A write failure stops the import; rows already added stay added.
//
// =============================================================================

package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/smartbookshop/bookshop-pos/internal/types"
)

// importColumns are the required header names in output order.
var importColumns = []string{"title", "sku", "category", "price"}

// =============================================================================
// IMPORT RESULT
// =============================================================================

// ImportResult summarizes a bulk import.
type ImportResult struct {
	// RowsRead is the number of non-empty data rows read.
	RowsRead int

	// Added contains the records that were stored, in file order.
	Added []types.BookRecord

	// Errors contains one entry per rejected row.
	Errors []RowError
}

// RowError ties a rejection to its line in the source file.
type RowError struct {
	// Row is the 1-based line number, counting the header as line 1.
	Row int

	Err error
}

// Error implements the error interface.
func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

// =============================================================================
// IMPORT
// =============================================================================

// Import reads books from r and adds them to the store.
//
// PARAMETERS:
//   - r: CSV input with a header row.
//   - delimiter: The field separator.
//
// RETURNS:
//   - The import summary.
//   - An error if the header is unusable, the CSV is malformed, or the
//     catalog cannot be written.
func (s *Store) Import(r io.Reader, delimiter rune) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("CSV file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	positions, err := locateColumns(header)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return result, fmt.Errorf("failed to read CSV: %w", err)
		}
		line, _ := reader.FieldPos(0)
		if isRowEmpty(row) {
			continue
		}
		result.RowsRead++

		cell := func(name string) string {
			idx := positions[name]
			if idx < len(row) {
				return row[idx]
			}
			return ""
		}

		record, err := s.Add(types.BookInput{
			Title:    cell("title"),
			SKU:      cell("sku"),
			Category: cell("category"),
			Price:    cell("price"),
		})
		if err != nil {
			var ioErr *types.IOError
			if errors.As(err, &ioErr) {
				return result, err
			}
			result.Errors = append(result.Errors, RowError{Row: line, Err: err})
			continue
		}
		result.Added = append(result.Added, record)
	}

	return result, nil
}

// =============================================================================
// EXPORT
// =============================================================================

// Export writes the catalog as CSV in the layout Import reads.
func (s *Store) Export(w io.Writer, delimiter rune) error {
	writer := csv.NewWriter(w)
	writer.Comma = delimiter

	if err := writer.Write(importColumns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for b := range s.List(Filter{}) {
		row := []string{b.Title, b.SKU, string(b.Category), priceLiteral(b.Price)}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row for %s: %w", b.SKU, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// locateColumns maps each required column name to its index in header.
func locateColumns(header []string) (map[string]int, error) {
	positions := make(map[string]int, len(importColumns))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, seen := positions[name]; !seen {
			positions[name] = i
		}
	}

	var missing []string
	for _, name := range importColumns {
		if _, ok := positions[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &types.ValidationError{
			Field:   "header",
			Value:   strings.Join(header, ","),
			Rule:    "required",
			Message: fmt.Sprintf("CSV header is missing column(s): %s", strings.Join(missing, ", ")),
		}
	}
	return positions, nil
}

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
