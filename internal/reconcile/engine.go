// Package reconcile implements the comparison pipeline: filter the expense
// log to a target month, left-join it to the price list on the SKU column,
// and classify every joined row.
//
// The pipeline is a pure function of its two input tables. A run either
// produces a complete Result or fails with a categorized error; no partial
// result is ever returned, which lets the caller replace any previously
// displayed result atomically.
package reconcile

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/amirvolinsky/fruitVeggieComparator/internal/resolver"
	"github.com/amirvolinsky/fruitVeggieComparator/internal/tabular"
	"github.com/amirvolinsky/fruitVeggieComparator/pkg/errors"
	"github.com/amirvolinsky/fruitVeggieComparator/pkg/logger"
)

// Engine performs comparison runs with a fixed configuration
type Engine struct {
	config *Config
	logger logger.Logger
}

// NewEngine creates a comparison engine. A nil config uses the defaults.
func NewEngine(config *Config) (*Engine, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, errors.ConfigurationError("reconcile", "keywords", err)
	}

	return &Engine{
		config: config,
		logger: logger.GetGlobalLogger().WithComponent("reconcile_engine"),
	}, nil
}

// Config returns the engine's configuration
func (e *Engine) Config() *Config {
	return e.config
}

// expenseRow pairs an expense-log row with its coerced transaction date
type expenseRow struct {
	cells tabular.Row
	date  time.Time
}

// Run executes one comparison: month filter, join, classification.
//
// Errors: an unresolvable SKU column in either table or an unresolvable
// price column in the price list aborts with a missing-column error, except
// for a three-column price list, which falls back to the fixed-order
// profile (SKU, item, price); a month
// filter that leaves no rows (including an expense log with no date column
// at all) aborts with an empty-period error. Unparseable dates and prices in
// individual cells never abort the run.
func (e *Engine) Run(expenses, prices *tabular.Table, month time.Month) (*Result, error) {
	log := e.logger.WithFields(logger.Fields{
		"expenses": expenses.String(),
		"prices":   prices.String(),
		"month":    int(month),
	})
	log.Debug("Starting comparison run")

	filtered, dateColumn := e.filterMonth(expenses, month)
	if len(filtered) == 0 {
		log.Info("No expense rows in target month")
		return nil, errors.EmptyPeriodError(int(month))
	}

	expenseSKU, ok := resolver.FindColumn(expenses.Headers, e.config.SKUKeywords)
	if !ok {
		return nil, errors.MissingColumnError(expenses.Name, e.config.SKUConcept)
	}
	priceSKU, priceColumn, err := e.resolvePriceColumns(prices)
	if err != nil {
		return nil, err
	}

	// Optional concepts: their absence degrades classification, not the run.
	actualColumn, _ := resolver.FindColumn(expenses.Headers, e.config.ActualPriceKeywords)
	itemColumn, _ := resolver.FindColumn(expenses.Headers, e.config.ItemKeywords)

	log.WithFields(logger.Fields{
		"expense_sku_column": expenseSKU,
		"price_sku_column":   priceSKU,
		"price_column":       priceColumn,
		"actual_column":      actualColumn,
		"filtered_rows":      len(filtered),
	}).Debug("Resolved columns")

	priceIndex := buildPriceIndex(prices, priceSKU, priceColumn)

	result := &Result{
		Columns:             append(append([]string(nil), expenses.Headers...), e.config.ExpectedPriceColumn, e.config.StatusColumn, e.config.DeltaColumn),
		DateColumn:          dateColumn,
		SKUColumn:           expenseSKU,
		ItemColumn:          itemColumn,
		ActualColumn:        actualColumn,
		ExpectedPriceColumn: e.config.ExpectedPriceColumn,
		StatusColumn:        e.config.StatusColumn,
		DeltaColumn:         e.config.DeltaColumn,
		Month:               month,
	}

	for _, source := range filtered {
		sku := source.cells[expenseSKU]
		result.Rows = append(result.Rows, e.joinRow(source, sku, actualColumn, priceIndex[sku])...)
	}

	log.WithFields(logger.Fields{
		"reconciled_rows": len(result.Rows),
		"statuses":        statusCounts(result),
	}).Info("Comparison run complete")

	return result, nil
}

// filterMonth coerces the date column and keeps rows whose date falls in the
// target month regardless of year. Rows with unparseable dates are dropped.
// An expense table with no resolvable date column yields an empty slice; the
// caller treats that as an empty period.
func (e *Engine) filterMonth(expenses *tabular.Table, month time.Month) ([]expenseRow, string) {
	dateColumn, ok := resolver.FindColumn(expenses.Headers, e.config.DateKeywords)
	if !ok {
		e.logger.WithField("table", expenses.Name).Warn("No date column found in expense table")
		return nil, ""
	}

	var filtered []expenseRow
	dropped := 0
	for _, row := range expenses.Rows {
		raw, present := row.Get(dateColumn)
		if !present {
			dropped++
			continue
		}
		date, err := tabular.ParseDate(raw)
		if err != nil {
			dropped++
			continue
		}
		if date.Month() == month {
			filtered = append(filtered, expenseRow{cells: row, date: date})
		}
	}

	if dropped > 0 {
		e.logger.WithFields(logger.Fields{
			"table":   expenses.Name,
			"dropped": dropped,
		}).Debug("Dropped rows with unparseable dates")
	}

	return filtered, dateColumn
}

// resolvePriceColumns locates the SKU and price columns of the price list.
// Keyword resolution runs first; when it fails on a sheet of exactly three
// columns, the fixed-order profile (SKU, item, price) is assumed instead, so
// a price list with unconventional headers still loads.
func (e *Engine) resolvePriceColumns(prices *tabular.Table) (string, string, error) {
	fixedOrder := len(prices.Headers) == 3

	priceSKU, ok := resolver.FindColumn(prices.Headers, e.config.SKUKeywords)
	if !ok {
		if !fixedOrder {
			return "", "", errors.MissingColumnError(prices.Name, e.config.SKUConcept)
		}
		priceSKU = prices.Headers[0]
	}

	priceColumn, ok := resolver.FindColumnPreferExact(prices.Headers, e.config.PriceListExact, e.config.PriceListKeywords)
	if !ok {
		if !fixedOrder {
			return "", "", errors.MissingColumnError(prices.Name, e.config.PriceConcept)
		}
		priceColumn = prices.Headers[2]
	}

	return priceSKU, priceColumn, nil
}

// priceEntry is one price-list row's contribution to the join index
type priceEntry struct {
	raw     string
	present bool
}

// buildPriceIndex maps verbatim SKU cell values to their price cells, in
// price-list row order. Keys are compared as opaque strings: "007" and "7"
// are distinct SKUs.
func buildPriceIndex(prices *tabular.Table, skuColumn, priceColumn string) map[string][]priceEntry {
	index := make(map[string][]priceEntry, len(prices.Rows))
	for _, row := range prices.Rows {
		sku := row[skuColumn]
		raw, present := row.Get(priceColumn)
		index[sku] = append(index[sku], priceEntry{raw: raw, present: present})
	}
	return index
}

// joinRow produces the reconciled rows for one expense row: exactly one per
// matching price-list row, or a single missing-from-price-list row when no
// SKU matches. Left-join cardinality is preserved; an expense row is never
// dropped.
func (e *Engine) joinRow(source expenseRow, sku, actualColumn string, matches []priceEntry) []*Row {
	var actualRaw string
	if actualColumn != "" {
		actualRaw, _ = source.cells.Get(actualColumn)
	}
	actual := parsePrice(actualRaw)

	if len(matches) == 0 {
		status, delta := classify(false, nil, actual)
		return []*Row{{
			Cells:  source.cells,
			Date:   source.date,
			SKU:    sku,
			Actual: actual,
			Status: status,
			Delta:  delta,
		}}
	}

	rows := make([]*Row, 0, len(matches))
	for _, match := range matches {
		var expected *decimal.Decimal
		if match.present {
			expected = parsePrice(match.raw)
		}
		status, delta := classify(match.present, expected, actual)
		rows = append(rows, &Row{
			Cells:       source.cells,
			Date:        source.date,
			SKU:         sku,
			ExpectedRaw: match.raw,
			HasExpected: match.present,
			Expected:    expected,
			Actual:      actual,
			Status:      status,
			Delta:       delta,
		})
	}
	return rows
}

func statusCounts(result *Result) map[string]int {
	counts := make(map[string]int, 4)
	for status, n := range result.CountByStatus() {
		counts[status.Marker()] = n
	}
	return counts
}
