package reconcile

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/amirvolinsky/fruitVeggieComparator/internal/tabular"
)

var (
	errMissingDerivedColumns = fmt.Errorf("derived column names cannot be empty")
)

func errMissingKeywords(concept string) error {
	return fmt.Errorf("no keywords configured for the %s concept", concept)
}

// Row is one expense-log row annotated with its matched expected price,
// status and delta. Cells holds every original expense field untouched;
// the typed fields are derived once during the run and never mutated.
type Row struct {
	Cells tabular.Row

	// Date is the parsed transaction date; always set, because rows whose
	// date fails coercion never survive the month filter.
	Date time.Time

	// SKU is the verbatim join key cell value.
	SKU string

	// ExpectedRaw is the matched price-list cell text; HasExpected reports
	// whether a price row matched with a non-blank price cell. Expected is
	// nil when the cell is absent or not numeric.
	ExpectedRaw string
	HasExpected bool
	Expected    *decimal.Decimal

	// Actual is the billed unit price, nil when absent or not numeric.
	Actual *decimal.Decimal

	Status Status

	// Delta is actual minus expected, nil unless both are numeric.
	Delta *decimal.Decimal
}

// Result is the reconciled table: one or more rows per month-filtered
// expense row (multiple price-list rows sharing a SKU fan out), plus the
// resolved column names downstream stages need.
type Result struct {
	// Columns is the ordered output header list: the original expense
	// headers followed by the derived expected-price, status and delta
	// columns.
	Columns []string
	Rows    []*Row

	// Resolved expense-table headers; empty string when the concept was
	// not present (only the date and SKU concepts are mandatory).
	DateColumn   string
	SKUColumn    string
	ItemColumn   string
	ActualColumn string

	// Derived column names, copied from the engine configuration.
	ExpectedPriceColumn string
	StatusColumn        string
	DeltaColumn         string

	// Month is the calendar month the expense log was filtered to.
	Month time.Month
}

// WithRows returns a shallow copy of the result holding only the given
// rows. Column metadata is shared; rows are never copied or mutated.
func (r *Result) WithRows(rows []*Row) *Result {
	clone := *r
	clone.Rows = rows
	return &clone
}

// Len returns the number of reconciled rows
func (r *Result) Len() int {
	return len(r.Rows)
}

// Value renders the cell for a row under any output column, derived
// columns included. Nil numeric values render as the empty string.
func (r *Result) Value(row *Row, column string) string {
	switch column {
	case r.ExpectedPriceColumn:
		if row.HasExpected {
			return row.ExpectedRaw
		}
		return ""
	case r.StatusColumn:
		return string(row.Status)
	case r.DeltaColumn:
		if row.Delta == nil {
			return ""
		}
		return row.Delta.String()
	default:
		return row.Cells[column]
	}
}

// CountByStatus tallies rows per status
func (r *Result) CountByStatus() map[Status]int {
	counts := make(map[Status]int, 4)
	for _, row := range r.Rows {
		counts[row.Status]++
	}
	return counts
}

// Mismatches returns the rows classified as price mismatches, in order
func (r *Result) Mismatches() []*Row {
	var rows []*Row
	for _, row := range r.Rows {
		if row.Status == StatusPriceMismatch {
			rows = append(rows, row)
		}
	}
	return rows
}

// ItemLabel returns the item description for a row, falling back to the
// SKU when the expense log has no item column.
func (r *Result) ItemLabel(row *Row) string {
	if r.ItemColumn != "" {
		if value, ok := row.Cells.Get(r.ItemColumn); ok {
			return value
		}
	}
	return row.SKU
}

// String returns a short summary for logs
func (r *Result) String() string {
	return fmt.Sprintf("Result{month %d: %d rows}", r.Month, len(r.Rows))
}
