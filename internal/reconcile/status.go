package reconcile

import "strings"

// Status is the categorical outcome of comparing the expected price against
// the actual billed price for one reconciled row. The values are the
// user-facing labels written to the report; the leading marker is what the
// exporter keys row colors on.
type Status string

const (
	// StatusMatch means both prices are present and numerically equal.
	StatusMatch Status = "✅ תואם"
	// StatusPriceMismatch means both prices are present but differ, or the
	// expected price exists but is not numeric.
	StatusPriceMismatch Status = "❌ מחיר שונה"
	// StatusMissingFromPriceList means the SKU has no expected price.
	StatusMissingFromPriceList Status = "🟡 לא נמצא במחירון"
	// StatusActualPriceMissing means an expected price exists but the billed
	// price is absent or not numeric.
	StatusActualPriceMissing Status = "⚠️ מחיר בפועל חסר"
)

// AllStatuses returns every status in display order
func AllStatuses() []Status {
	return []Status{
		StatusMatch,
		StatusPriceMismatch,
		StatusMissingFromPriceList,
		StatusActualPriceMissing,
	}
}

// String returns the display label
func (s Status) String() string {
	return string(s)
}

// Marker returns the leading symbol of the status label
func (s Status) Marker() string {
	fields := strings.Fields(string(s))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// IsValid checks if the status is one of the defined values
func (s Status) IsValid() bool {
	switch s {
	case StatusMatch, StatusPriceMismatch, StatusMissingFromPriceList, StatusActualPriceMissing:
		return true
	default:
		return false
	}
}
