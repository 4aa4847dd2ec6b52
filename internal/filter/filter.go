// Package filter narrows a reconciled table through independently-optional
// predicates. Predicates are combined with logical AND; a predicate with no
// selection is a no-op, so an empty Spec returns the input unchanged. Rows
// are only ever removed, never reordered or mutated, and every application
// recomputes from the full reconciled table.
package filter

import (
	"strings"
	"time"

	"github.com/amirvolinsky/fruitVeggieComparator/internal/reconcile"
	"github.com/amirvolinsky/fruitVeggieComparator/internal/resolver"
	"github.com/amirvolinsky/fruitVeggieComparator/internal/tabular"
)

// Spec describes the active predicates for one filter application. Nil or
// empty fields are inactive.
type Spec struct {
	// Categorical membership against the raw cell values.
	Clients   []string
	Documents []string
	SKUs      []string

	// Statuses matches against the status labels of the reconciled rows.
	Statuses []string

	// Inclusive date ranges. DateFrom/DateTo apply to the transaction
	// date; DeliveryFrom/DeliveryTo to the delivery date column.
	DateFrom     *time.Time
	DateTo       *time.Time
	DeliveryFrom *time.Time
	DeliveryTo   *time.Time

	// ItemContains is a case-insensitive substring match on the item
	// description.
	ItemContains string
}

// Active reports whether any predicate is set
func (s *Spec) Active() bool {
	if s == nil {
		return false
	}
	return len(s.Clients) > 0 ||
		len(s.Documents) > 0 ||
		len(s.SKUs) > 0 ||
		len(s.Statuses) > 0 ||
		s.DateFrom != nil || s.DateTo != nil ||
		s.DeliveryFrom != nil || s.DeliveryTo != nil ||
		strings.TrimSpace(s.ItemContains) != ""
}

// Config holds the keyword lists used to resolve the columns the
// categorical and delivery-date predicates read.
type Config struct {
	ClientKeywords   []string
	DocumentKeywords []string
	DeliveryKeywords []string
}

// DefaultConfig returns keywords for the vendor's Hebrew spreadsheet profile
func DefaultConfig() *Config {
	return &Config{
		ClientKeywords:   []string{"לקוח"},
		DocumentKeywords: []string{"תעודה"},
		DeliveryKeywords: []string{"אספקה"},
	}
}

// Apply filters the reconciled result through the spec. The returned result
// shares column metadata with the input; the input is never mutated. A
// predicate whose column cannot be resolved in the table excludes nothing.
func Apply(result *reconcile.Result, spec *Spec, config *Config) *reconcile.Result {
	if !spec.Active() {
		return result
	}
	if config == nil {
		config = DefaultConfig()
	}

	clientColumn, _ := resolver.FindColumn(result.Columns, config.ClientKeywords)
	documentColumn, _ := resolver.FindColumn(result.Columns, config.DocumentKeywords)
	deliveryColumn, _ := resolver.FindColumn(result.Columns, config.DeliveryKeywords)

	clients := newStringSet(spec.Clients)
	documents := newStringSet(spec.Documents)
	skus := newStringSet(spec.SKUs)
	statuses := newStringSet(spec.Statuses)
	query := strings.ToLower(strings.TrimSpace(spec.ItemContains))

	kept := make([]*reconcile.Row, 0, len(result.Rows))
	for _, row := range result.Rows {
		if !memberOf(clients, row.Cells, clientColumn) {
			continue
		}
		if !memberOf(documents, row.Cells, documentColumn) {
			continue
		}
		if !skus.empty() && !skus.contains(row.SKU) {
			continue
		}
		if !statuses.empty() && !statuses.contains(string(row.Status)) {
			continue
		}
		if !inRange(row.Date, true, spec.DateFrom, spec.DateTo) {
			continue
		}
		if !deliveryInRange(row.Cells, deliveryColumn, spec.DeliveryFrom, spec.DeliveryTo) {
			continue
		}
		if query != "" && result.ItemColumn != "" &&
			!strings.Contains(strings.ToLower(result.ItemLabel(row)), query) {
			continue
		}
		kept = append(kept, row)
	}

	return result.WithRows(kept)
}

type stringSet map[string]struct{}

func newStringSet(values []string) stringSet {
	if len(values) == 0 {
		return nil
	}
	set := make(stringSet, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func (s stringSet) empty() bool {
	return len(s) == 0
}

func (s stringSet) contains(value string) bool {
	_, ok := s[value]
	return ok
}

// memberOf applies a categorical predicate against a resolved column. An
// inactive predicate, or one whose column the table lacks, keeps the row.
func memberOf(set stringSet, cells tabular.Row, column string) bool {
	if set.empty() || column == "" {
		return true
	}
	value, _ := cells.Get(column)
	return set.contains(value)
}

// inRange applies an inclusive date range. Rows without a parsed date fail
// an active range predicate.
func inRange(date time.Time, hasDate bool, from, to *time.Time) bool {
	if from == nil && to == nil {
		return true
	}
	if !hasDate {
		return false
	}
	day := date.Truncate(24 * time.Hour)
	if from != nil && day.Before(from.Truncate(24*time.Hour)) {
		return false
	}
	if to != nil && day.After(to.Truncate(24*time.Hour)) {
		return false
	}
	return true
}

// deliveryInRange coerces the delivery date cell per row; coercion failure
// fails an active range predicate rather than raising. An unresolvable
// delivery column keeps the row, like every other predicate.
func deliveryInRange(cells tabular.Row, column string, from, to *time.Time) bool {
	if from == nil && to == nil {
		return true
	}
	if column == "" {
		return true
	}
	raw, present := cells.Get(column)
	if !present {
		return false
	}
	date, err := tabular.ParseDate(raw)
	if err != nil {
		return false
	}
	return inRange(date, true, from, to)
}
