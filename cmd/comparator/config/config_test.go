package config

import (
	"testing"

	"github.com/spf13/viper"
)

func TestCreateReconcileConfigDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	config := CreateReconcileConfig()
	if err := config.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if len(config.SKUKeywords) == 0 || config.SKUKeywords[0] != "מקט" {
		t.Errorf("SKUKeywords = %v", config.SKUKeywords)
	}
	if config.PriceListExact != "מחירון" {
		t.Errorf("PriceListExact = %q", config.PriceListExact)
	}
	if config.StatusColumn != "סטטוס" {
		t.Errorf("StatusColumn = %q", config.StatusColumn)
	}
}

func TestCreateReconcileConfigOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("concepts.sku", []string{"ברקוד"})
	viper.Set("concepts.price-list-exact", "מחיר רשמי")
	viper.Set("concepts.date", []string{"מועד"})

	config := CreateReconcileConfig()
	if len(config.SKUKeywords) != 1 || config.SKUKeywords[0] != "ברקוד" {
		t.Errorf("SKUKeywords = %v, want [ברקוד]", config.SKUKeywords)
	}
	if config.SKUConcept != "ברקוד" {
		t.Errorf("SKUConcept = %q, want %q", config.SKUConcept, "ברקוד")
	}
	if config.PriceListExact != "מחיר רשמי" {
		t.Errorf("PriceListExact = %q", config.PriceListExact)
	}
	if len(config.DateKeywords) != 1 || config.DateKeywords[0] != "מועד" {
		t.Errorf("DateKeywords = %v, want [מועד]", config.DateKeywords)
	}
	// Untouched concepts keep their defaults.
	if len(config.ItemKeywords) != 1 || config.ItemKeywords[0] != "פריט" {
		t.Errorf("ItemKeywords = %v, want [פריט]", config.ItemKeywords)
	}
}

func TestCreateFilterConfigOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("concepts.client", []string{"שם לקוח"})

	config := CreateFilterConfig()
	if len(config.ClientKeywords) != 1 || config.ClientKeywords[0] != "שם לקוח" {
		t.Errorf("ClientKeywords = %v", config.ClientKeywords)
	}
	if len(config.DocumentKeywords) != 1 || config.DocumentKeywords[0] != "תעודה" {
		t.Errorf("DocumentKeywords = %v", config.DocumentKeywords)
	}
}

func TestCreateExporterConfigOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	config := CreateExporterConfig()
	if config.SheetName != "השוואה" || config.ColumnWidth != 16 {
		t.Errorf("defaults = %q/%v", config.SheetName, config.ColumnWidth)
	}

	viper.Set("export.sheet-name", "דוח")
	viper.Set("export.column-width", 22.5)

	config = CreateExporterConfig()
	if config.SheetName != "דוח" {
		t.Errorf("SheetName = %q, want %q", config.SheetName, "דוח")
	}
	if config.ColumnWidth != 22.5 {
		t.Errorf("ColumnWidth = %v, want 22.5", config.ColumnWidth)
	}
}
