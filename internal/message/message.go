// Package message renders the plain-text discrepancy summary sent over an
// external messaging channel: a greeting, a fixed explanatory line, and one
// line per mismatched row. Trivial formatting only; the reconciled rows
// arrive already classified and filtered.
package message

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/amirvolinsky/fruitVeggieComparator/internal/reconcile"
)

// Placeholder recipient used when no contact name was supplied
const DefaultContact = "לקוח יקר"

const (
	introLine   = "להלן פריטים שחויבו במחיר שונה מהמחירון:"
	successLine = "כל הפריטים שנבדקו תואמים את המחירון, אין פערי מחיר."
)

// Build renders the discrepancy message for a filtered, classified result.
// Each price-mismatch row becomes one "item | expected | actual" line with
// prices in shekels at one decimal place. When the result holds no
// mismatches the body is a single fixed success sentence.
func Build(result *reconcile.Result, contact string) string {
	contact = strings.TrimSpace(contact)
	if contact == "" {
		contact = DefaultContact
	}

	var b strings.Builder
	fmt.Fprintf(&b, "שלום %s,\n", contact)

	mismatches := result.Mismatches()
	if len(mismatches) == 0 {
		b.WriteString(successLine)
		return b.String()
	}

	b.WriteString(introLine)
	b.WriteString("\n")
	for _, row := range mismatches {
		fmt.Fprintf(&b, "%s | %s | %s\n",
			result.ItemLabel(row),
			formatPrice(row.Expected),
			formatPrice(row.Actual))
	}

	return strings.TrimRight(b.String(), "\n")
}

// formatPrice renders a shekel amount at one decimal place; a nil price
// (absent or non-numeric cell) renders as a dash.
func formatPrice(price *decimal.Decimal) string {
	if price == nil {
		return "-"
	}
	return price.StringFixed(1) + " ₪"
}
