// Package config assembles component configurations for the CLI from
// built-in defaults plus optional overrides read through viper. Overrides
// let a config file adjust the column keywords for a vendor whose headers
// use different wording, without touching code.
package config

import (
	"github.com/spf13/viper"

	"github.com/amirvolinsky/fruitVeggieComparator/internal/exporter"
	"github.com/amirvolinsky/fruitVeggieComparator/internal/filter"
	"github.com/amirvolinsky/fruitVeggieComparator/internal/reconcile"
)

// CreateReconcileConfig builds the comparison engine configuration
func CreateReconcileConfig() *reconcile.Config {
	config := reconcile.DefaultConfig()

	if keywords := viper.GetStringSlice("concepts.sku"); len(keywords) > 0 {
		config.SKUKeywords = keywords
		config.SKUConcept = keywords[0]
	}
	if exact := viper.GetString("concepts.price-list-exact"); exact != "" {
		config.PriceListExact = exact
		config.PriceConcept = exact
	}
	if keywords := viper.GetStringSlice("concepts.price-list"); len(keywords) > 0 {
		config.PriceListKeywords = keywords
	}
	if keywords := viper.GetStringSlice("concepts.actual-price"); len(keywords) > 0 {
		config.ActualPriceKeywords = keywords
	}
	if keywords := viper.GetStringSlice("concepts.date"); len(keywords) > 0 {
		config.DateKeywords = keywords
	}
	if keywords := viper.GetStringSlice("concepts.item"); len(keywords) > 0 {
		config.ItemKeywords = keywords
	}

	return config
}

// CreateFilterConfig builds the result filter configuration
func CreateFilterConfig() *filter.Config {
	config := filter.DefaultConfig()

	if keywords := viper.GetStringSlice("concepts.client"); len(keywords) > 0 {
		config.ClientKeywords = keywords
	}
	if keywords := viper.GetStringSlice("concepts.document"); len(keywords) > 0 {
		config.DocumentKeywords = keywords
	}
	if keywords := viper.GetStringSlice("concepts.delivery"); len(keywords) > 0 {
		config.DeliveryKeywords = keywords
	}

	return config
}

// CreateExporterConfig builds the report styling configuration
func CreateExporterConfig() *exporter.Config {
	config := exporter.DefaultConfig()

	if sheet := viper.GetString("export.sheet-name"); sheet != "" {
		config.SheetName = sheet
	}
	if width := viper.GetFloat64("export.column-width"); width > 0 {
		config.ColumnWidth = width
	}

	return config
}
