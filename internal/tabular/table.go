// Package tabular models loosely-structured spreadsheet input: an ordered
// header row and rows of raw cell text. Tables are immutable snapshots of an
// uploaded file; downstream stages derive new tables instead of mutating.
//
// The package also owns the coercion helpers that turn raw cell text into
// decimals and dates. Coercion failure is always reported as an error value
// to the caller, never logged or panicked, because the classification policy
// treats unparseable cells as "absent".
package tabular

import (
	"fmt"
	"strings"
)

// Row maps a header name to the raw cell text under it.
type Row map[string]string

// Get returns the trimmed cell value for a header, and whether the cell
// holds any non-blank text.
func (r Row) Get(header string) (string, bool) {
	value, ok := r[header]
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}

// Table is an ordered sequence of named columns and rows read from the first
// sheet of a workbook. Header order preserves the sheet's left-to-right
// column order; row order preserves the sheet's top-to-bottom order.
type Table struct {
	// Name identifies the table in errors and logs (e.g. "price list").
	Name    string
	Headers []string
	Rows    []Row
}

// NewTable creates an empty table with the given identity and headers
func NewTable(name string, headers []string) *Table {
	return &Table{
		Name:    name,
		Headers: append([]string(nil), headers...),
		Rows:    make([]Row, 0),
	}
}

// AppendRow adds a row built from cell values in header order. Missing
// trailing cells are treated as blank; extra cells are dropped.
func (t *Table) AppendRow(cells []string) {
	row := make(Row, len(t.Headers))
	for i, header := range t.Headers {
		if i < len(cells) {
			row[header] = cells[i]
		} else {
			row[header] = ""
		}
	}
	t.Rows = append(t.Rows, row)
}

// Len returns the number of data rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// HasHeader reports whether the table has a column with the exact header
func (t *Table) HasHeader(header string) bool {
	for _, h := range t.Headers {
		if h == header {
			return true
		}
	}
	return false
}

// String returns a short description for logs
func (t *Table) String() string {
	return fmt.Sprintf("Table{%s: %d columns, %d rows}", t.Name, len(t.Headers), len(t.Rows))
}
