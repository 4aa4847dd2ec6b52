package reconcile

import (
	"github.com/shopspring/decimal"

	"github.com/amirvolinsky/fruitVeggieComparator/internal/tabular"
)

// classify derives the status and signed delta for one reconciled row.
// Pure function of the two price operands; decision order, first match wins:
//
//  1. no expected price -> missing from price list
//  2. actual price absent or not numeric -> actual price missing
//  3. both numeric and exactly equal -> match
//  4. otherwise -> price mismatch (covers a present but non-numeric
//     expected price as well)
//
// The delta is actual minus expected, nil whenever either operand is not
// numeric. Coercion failures surface only through these outcomes, never as
// processing errors.
func classify(hasExpected bool, expected, actual *decimal.Decimal) (Status, *decimal.Decimal) {
	if !hasExpected {
		return StatusMissingFromPriceList, nil
	}

	if actual == nil {
		return StatusActualPriceMissing, nil
	}

	if expected == nil {
		return StatusPriceMismatch, nil
	}

	delta := actual.Sub(*expected)
	if delta.IsZero() {
		return StatusMatch, &delta
	}
	return StatusPriceMismatch, &delta
}

// parsePrice coerces a price cell; nil means absent or not numeric
func parsePrice(raw string) *decimal.Decimal {
	d, err := tabular.ParseDecimal(raw)
	if err != nil {
		return nil
	}
	return &d
}
