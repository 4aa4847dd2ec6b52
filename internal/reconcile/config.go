package reconcile

// Config holds the column concept keywords and derived column names the
// engine works with. Keyword lists are ordered by priority; matching runs
// through the resolver's normalization, so punctuated spellings of the same
// word need no extra entries.
type Config struct {
	// SKUKeywords resolve the join key column in both tables.
	SKUKeywords []string
	// SKUConcept names the SKU concept in missing-column errors.
	SKUConcept string

	// PriceListExact is the exact header preferred for the expected price
	// column; PriceListKeywords are the loose fallbacks.
	PriceListExact    string
	PriceListKeywords []string
	// PriceConcept names the expected-price concept in errors.
	PriceConcept string

	// ActualPriceKeywords resolve the billed unit price in the expense log.
	// The "price before tax" spelling is checked before the bare fallback.
	ActualPriceKeywords []string

	// DateKeywords resolve the transaction date column.
	DateKeywords []string
	// ItemKeywords resolve the item description column.
	ItemKeywords []string

	// Derived column names appended to the reconciled table.
	ExpectedPriceColumn string
	StatusColumn        string
	DeltaColumn         string
}

// DefaultConfig returns the concept keywords for the vendor's Hebrew
// spreadsheet profile.
func DefaultConfig() *Config {
	return &Config{
		SKUKeywords: []string{"מקט"},
		SKUConcept:  "מקט",

		PriceListExact:    "מחירון",
		PriceListKeywords: []string{"מחירון", "מחיר"},
		PriceConcept:      "מחירון",

		ActualPriceKeywords: []string{"מחיר לפני מעמ", "מחיר"},

		DateKeywords: []string{"תאריך"},
		ItemKeywords: []string{"פריט"},

		ExpectedPriceColumn: "מחיר מחירון",
		StatusColumn:        "סטטוס",
		DeltaColumn:         "הפרש",
	}
}

// Validate checks that the configuration can drive a comparison run
func (c *Config) Validate() error {
	if len(c.SKUKeywords) == 0 {
		return errMissingKeywords("sku")
	}
	if len(c.PriceListKeywords) == 0 {
		return errMissingKeywords("price list")
	}
	if len(c.DateKeywords) == 0 {
		return errMissingKeywords("date")
	}
	if c.StatusColumn == "" || c.ExpectedPriceColumn == "" || c.DeltaColumn == "" {
		return errMissingDerivedColumns
	}
	return nil
}
