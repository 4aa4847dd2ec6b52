package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/amirvolinsky/fruitVeggieComparator/cmd/comparator/config"
	"github.com/amirvolinsky/fruitVeggieComparator/internal/exporter"
	"github.com/amirvolinsky/fruitVeggieComparator/internal/filter"
	"github.com/amirvolinsky/fruitVeggieComparator/internal/message"
	"github.com/amirvolinsky/fruitVeggieComparator/internal/reconcile"
	"github.com/amirvolinsky/fruitVeggieComparator/internal/tabular"
	"github.com/amirvolinsky/fruitVeggieComparator/pkg/logger"
)

// Flags for the compare command
var (
	priceFile    string
	expensesFile string
	targetMonth  int
	outputFile   string

	filterClients   []string
	filterDocuments []string
	filterStatuses  []string
	filterSKUs      []string
	dateFrom        string
	dateTo          string
	deliveryFrom    string
	deliveryTo      string
	itemContains    string

	buildMessage bool
	contactName  string
)

// compareCmd represents the compare command
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare an expense report against a price list",
	Long: `Compare loads the first sheet of the price list and expense report
workbooks, keeps the expense rows from the target month, left-joins them to
the price list by SKU, and classifies every row as matching, mismatched,
missing from the price list, or missing its billed price.

The reconciled table is written as a styled Excel report. Optional filter
flags narrow the exported rows; when any filter is active the report is
named comparison_filtered.xlsx instead of comparison.xlsx.

Examples:
  # Basic comparison for June
  comparator compare --price-file pricelist.xlsx --expenses-file expenses.xlsx

  # Different month, explicit output path
  comparator compare -p pricelist.xlsx -e expenses.xlsx --month 3 -o march.xlsx

  # Only mismatches for one client, plus the discrepancy message
  comparator compare -p pricelist.xlsx -e expenses.xlsx \
    --statuses "❌ מחיר שונה" --clients "מעדניית הכפר" --message --contact "דן"

  # Date-range filter on the transaction date
  comparator compare -p pricelist.xlsx -e expenses.xlsx \
    --date-from 2024-06-01 --date-to 2024-06-15`,

	PreRunE: validateCompareFlags,
	RunE:    runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)

	// Required flags
	compareCmd.Flags().StringVarP(&priceFile, "price-file", "p", "", "path to the price list workbook (required)")
	compareCmd.Flags().StringVarP(&expensesFile, "expenses-file", "e", "", "path to the expense report workbook (required)")

	// Run parameters
	compareCmd.Flags().IntVarP(&targetMonth, "month", "m", 6, "target calendar month (1-12)")
	compareCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file path (default: comparison.xlsx, or comparison_filtered.xlsx when filters are active)")

	// Filter flags
	compareCmd.Flags().StringSliceVar(&filterClients, "clients", nil, "keep only rows for these clients")
	compareCmd.Flags().StringSliceVar(&filterDocuments, "documents", nil, "keep only rows for these document ids")
	compareCmd.Flags().StringSliceVar(&filterStatuses, "statuses", nil, "keep only rows with these status labels")
	compareCmd.Flags().StringSliceVar(&filterSKUs, "skus", nil, "keep only rows with these SKUs")
	compareCmd.Flags().StringVar(&dateFrom, "date-from", "", "keep rows on or after this transaction date (YYYY-MM-DD)")
	compareCmd.Flags().StringVar(&dateTo, "date-to", "", "keep rows on or before this transaction date (YYYY-MM-DD)")
	compareCmd.Flags().StringVar(&deliveryFrom, "delivery-from", "", "keep rows on or after this delivery date (YYYY-MM-DD)")
	compareCmd.Flags().StringVar(&deliveryTo, "delivery-to", "", "keep rows on or before this delivery date (YYYY-MM-DD)")
	compareCmd.Flags().StringVar(&itemContains, "item-contains", "", "keep rows whose item description contains this text (case-insensitive)")

	// Message flags
	compareCmd.Flags().BoolVar(&buildMessage, "message", false, "print the discrepancy message to stdout")
	compareCmd.Flags().StringVar(&contactName, "contact", "", "recipient name for the message greeting")

	compareCmd.MarkFlagRequired("price-file")
	compareCmd.MarkFlagRequired("expenses-file")

	// Bind flags to viper
	viper.BindPFlag("price-file", compareCmd.Flags().Lookup("price-file"))
	viper.BindPFlag("expenses-file", compareCmd.Flags().Lookup("expenses-file"))
	viper.BindPFlag("month", compareCmd.Flags().Lookup("month"))
	viper.BindPFlag("output", compareCmd.Flags().Lookup("output"))
	viper.BindPFlag("clients", compareCmd.Flags().Lookup("clients"))
	viper.BindPFlag("documents", compareCmd.Flags().Lookup("documents"))
	viper.BindPFlag("statuses", compareCmd.Flags().Lookup("statuses"))
	viper.BindPFlag("skus", compareCmd.Flags().Lookup("skus"))
	viper.BindPFlag("date-from", compareCmd.Flags().Lookup("date-from"))
	viper.BindPFlag("date-to", compareCmd.Flags().Lookup("date-to"))
	viper.BindPFlag("delivery-from", compareCmd.Flags().Lookup("delivery-from"))
	viper.BindPFlag("delivery-to", compareCmd.Flags().Lookup("delivery-to"))
	viper.BindPFlag("item-contains", compareCmd.Flags().Lookup("item-contains"))
	viper.BindPFlag("message", compareCmd.Flags().Lookup("message"))
	viper.BindPFlag("contact", compareCmd.Flags().Lookup("contact"))
}

func validateCompareFlags(cmd *cobra.Command, args []string) error {
	// Values may be overridden from a config file or environment.
	priceFile = viper.GetString("price-file")
	expensesFile = viper.GetString("expenses-file")
	targetMonth = viper.GetInt("month")
	outputFile = viper.GetString("output")
	filterClients = viper.GetStringSlice("clients")
	filterDocuments = viper.GetStringSlice("documents")
	filterStatuses = viper.GetStringSlice("statuses")
	filterSKUs = viper.GetStringSlice("skus")
	dateFrom = viper.GetString("date-from")
	dateTo = viper.GetString("date-to")
	deliveryFrom = viper.GetString("delivery-from")
	deliveryTo = viper.GetString("delivery-to")
	itemContains = viper.GetString("item-contains")
	buildMessage = viper.GetBool("message")
	contactName = viper.GetString("contact")

	if priceFile == "" {
		return fmt.Errorf("price-file is required")
	}
	if expensesFile == "" {
		return fmt.Errorf("expenses-file is required")
	}

	if err := validateFileExists(priceFile, "price list file"); err != nil {
		return err
	}
	if err := validateFileExists(expensesFile, "expense report file"); err != nil {
		return err
	}

	if targetMonth < 1 || targetMonth > 12 {
		return fmt.Errorf("month must be between 1 and 12, got %d", targetMonth)
	}

	for _, dateFlag := range []struct {
		name  string
		value string
	}{
		{"date-from", dateFrom},
		{"date-to", dateTo},
		{"delivery-from", deliveryFrom},
		{"delivery-to", deliveryTo},
	} {
		if dateFlag.value != "" {
			if _, err := time.Parse("2006-01-02", dateFlag.value); err != nil {
				return fmt.Errorf("invalid %s format. Use YYYY-MM-DD: %w", dateFlag.name, err)
			}
		}
	}

	if dateFrom != "" && dateTo != "" {
		from, _ := time.Parse("2006-01-02", dateFrom)
		to, _ := time.Parse("2006-01-02", dateTo)
		if from.After(to) {
			return fmt.Errorf("date-from cannot be after date-to")
		}
	}

	if outputFile != "" {
		dir := filepath.Dir(outputFile)
		if dir != "." {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				return fmt.Errorf("output directory does not exist: %s", dir)
			}
		}
	}

	return nil
}

func validateFileExists(filePath, description string) error {
	if filePath == "" {
		return fmt.Errorf("%s path cannot be empty", description)
	}

	info, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return fmt.Errorf("%s does not exist: %s", description, filePath)
	}
	if err != nil {
		return fmt.Errorf("error accessing %s: %w", description, err)
	}

	if info.IsDir() {
		return fmt.Errorf("%s is a directory, expected a file: %s", description, filePath)
	}

	return nil
}

func runCompare(cmd *cobra.Command, args []string) error {
	runID := uuid.NewString()
	log := logger.GetGlobalLogger().WithComponent("cli").WithField("run_id", runID)

	log.WithFields(logger.Fields{
		"price_file":    priceFile,
		"expenses_file": expensesFile,
		"month":         targetMonth,
	}).Info("Starting comparison")

	loader := tabular.NewLoader()
	prices, err := loader.LoadFile(priceFile, "price list")
	if err != nil {
		return err
	}
	expenses, err := loader.LoadFile(expensesFile, "expenses")
	if err != nil {
		return err
	}

	engine, err := reconcile.NewEngine(config.CreateReconcileConfig())
	if err != nil {
		return err
	}

	result, err := engine.Run(expenses, prices, time.Month(targetMonth))
	if err != nil {
		return err
	}

	spec, err := buildFilterSpec()
	if err != nil {
		return err
	}
	filtered := filter.Apply(result, spec, config.CreateFilterConfig())

	log.WithFields(logger.Fields{
		"reconciled_rows": result.Len(),
		"filtered_rows":   filtered.Len(),
		"filters_active":  spec.Active(),
	}).Info("Comparison complete")

	outputPath := outputFile
	if outputPath == "" {
		outputPath = exporter.FileName(spec.Active())
	}

	report := exporter.NewExporter(config.CreateExporterConfig())
	if err := report.WriteFile(filtered, outputPath); err != nil {
		return err
	}

	if verbose {
		printSummary(filtered, outputPath)
	}

	if buildMessage {
		fmt.Println(message.Build(filtered, contactName))
	}

	return nil
}

// buildFilterSpec converts flag values into a filter spec. Date flags were
// already validated, but parsing is still checked here because values can
// also arrive via config file or environment.
func buildFilterSpec() (*filter.Spec, error) {
	spec := &filter.Spec{
		Clients:      filterClients,
		Documents:    filterDocuments,
		Statuses:     filterStatuses,
		SKUs:         filterSKUs,
		ItemContains: itemContains,
	}

	for _, dateFlag := range []struct {
		value  string
		target **time.Time
		name   string
	}{
		{dateFrom, &spec.DateFrom, "date-from"},
		{dateTo, &spec.DateTo, "date-to"},
		{deliveryFrom, &spec.DeliveryFrom, "delivery-from"},
		{deliveryTo, &spec.DeliveryTo, "delivery-to"},
	} {
		if dateFlag.value == "" {
			continue
		}
		parsed, err := time.Parse("2006-01-02", dateFlag.value)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", dateFlag.name, err)
		}
		*dateFlag.target = &parsed
	}

	return spec, nil
}

func printSummary(result *reconcile.Result, outputPath string) {
	fmt.Fprintf(os.Stderr, "\nComparison summary:\n")
	counts := result.CountByStatus()
	for _, status := range reconcile.AllStatuses() {
		if counts[status] > 0 {
			fmt.Fprintf(os.Stderr, "  %s: %d\n", status, counts[status])
		}
	}
	fmt.Fprintf(os.Stderr, "  Total rows: %d\n", result.Len())
	fmt.Fprintf(os.Stderr, "  Report: %s\n", outputPath)
}
