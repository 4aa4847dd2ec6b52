// Package exporter turns a reconciled table into a styled, downloadable
// xlsx workbook: bold header row on a light fill, fixed column widths, a
// frozen header pane, an autofilter over the full data range, and whole-row
// color coding keyed on the status markers (green for a match, red for a
// mismatch, yellow for missing from the price list).
package exporter

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/amirvolinsky/fruitVeggieComparator/internal/reconcile"
	"github.com/amirvolinsky/fruitVeggieComparator/pkg/errors"
	"github.com/amirvolinsky/fruitVeggieComparator/pkg/logger"
)

// MIMEType is the Open XML spreadsheet content type of the export
const MIMEType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Default export file names. The filtered name is used whenever any filter
// predicate was active for the exported rows.
const (
	DefaultFileName  = "comparison.xlsx"
	FilteredFileName = "comparison_filtered.xlsx"
)

// Config holds the workbook styling options
type Config struct {
	SheetName   string
	ColumnWidth float64

	// Fill colors, RGB hex without '#'.
	HeaderFill   string
	MatchFill    string
	MismatchFill string
	MissingFill  string
}

// DefaultConfig returns the report's standard styling
func DefaultConfig() *Config {
	return &Config{
		SheetName:    "השוואה",
		ColumnWidth:  16,
		HeaderFill:   "F1F5F9",
		MatchFill:    "DCFCE7",
		MismatchFill: "FEE2E2",
		MissingFill:  "FEF9C3",
	}
}

// Exporter writes reconciled results as styled workbooks
type Exporter struct {
	config *Config
	logger logger.Logger
}

// NewExporter creates an exporter. A nil config uses the defaults.
func NewExporter(config *Config) *Exporter {
	if config == nil {
		config = DefaultConfig()
	}
	return &Exporter{
		config: config,
		logger: logger.GetGlobalLogger().WithComponent("exporter"),
	}
}

// FileName returns the conventional export name for a full or filtered
// result set.
func FileName(filtered bool) string {
	if filtered {
		return FilteredFileName
	}
	return DefaultFileName
}

// Workbook builds the styled workbook for a reconciled result. The caller
// owns the returned file and must Close it.
func (e *Exporter) Workbook(result *reconcile.Result) (*excelize.File, error) {
	file := excelize.NewFile()
	sheet := e.config.SheetName
	if err := file.SetSheetName(file.GetSheetName(0), sheet); err != nil {
		file.Close()
		return nil, errors.ExportError(sheet, err)
	}

	if err := e.writeHeader(file, sheet, result.Columns); err != nil {
		file.Close()
		return nil, err
	}
	if err := e.writeRows(file, sheet, result); err != nil {
		file.Close()
		return nil, err
	}
	if err := e.applySheetLayout(file, sheet, len(result.Columns), len(result.Rows)); err != nil {
		file.Close()
		return nil, err
	}

	e.logger.WithFields(logger.Fields{
		"sheet":   sheet,
		"columns": len(result.Columns),
		"rows":    len(result.Rows),
	}).Debug("Built report workbook")

	return file, nil
}

// Bytes renders the workbook to an in-memory byte blob ready for download
func (e *Exporter) Bytes(result *reconcile.Result) ([]byte, error) {
	file, err := e.Workbook(result)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var buffer *bytes.Buffer
	buffer, err = file.WriteToBuffer()
	if err != nil {
		return nil, errors.ExportError(e.config.SheetName, err)
	}
	return buffer.Bytes(), nil
}

// WriteFile saves the workbook to disk
func (e *Exporter) WriteFile(result *reconcile.Result, path string) error {
	file, err := e.Workbook(result)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := file.SaveAs(path); err != nil {
		return errors.ExportError(path, err)
	}

	e.logger.WithFields(logger.Fields{
		"output_path": path,
		"rows":        len(result.Rows),
	}).Info("Wrote report")
	return nil
}

func (e *Exporter) writeHeader(file *excelize.File, sheet string, columns []string) error {
	headerStyle, err := file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{e.config.HeaderFill}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Style: 1, Color: "000000"},
			{Type: "right", Style: 1, Color: "000000"},
			{Type: "top", Style: 1, Color: "000000"},
			{Type: "bottom", Style: 1, Color: "000000"},
		},
	})
	if err != nil {
		return errors.ExportError(sheet, err)
	}

	for i, column := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return errors.ExportError(sheet, err)
		}
		if err := file.SetCellValue(sheet, cell, column); err != nil {
			return errors.ExportError(sheet, err)
		}
	}

	if len(columns) > 0 {
		last, err := excelize.CoordinatesToCellName(len(columns), 1)
		if err != nil {
			return errors.ExportError(sheet, err)
		}
		if err := file.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
			return errors.ExportError(sheet, err)
		}
	}

	return nil
}

func (e *Exporter) writeRows(file *excelize.File, sheet string, result *reconcile.Result) error {
	fills, err := e.statusFills(file)
	if err != nil {
		return errors.ExportError(sheet, err)
	}

	for rowIndex, row := range result.Rows {
		excelRow := rowIndex + 2
		for colIndex, column := range result.Columns {
			cell, err := excelize.CoordinatesToCellName(colIndex+1, excelRow)
			if err != nil {
				return errors.ExportError(sheet, err)
			}
			if err := file.SetCellValue(sheet, cell, e.cellValue(result, row, column)); err != nil {
				return errors.ExportError(sheet, err)
			}
		}

		if styleID, ok := fills[row.Status.Marker()]; ok && len(result.Columns) > 0 {
			first, _ := excelize.CoordinatesToCellName(1, excelRow)
			last, _ := excelize.CoordinatesToCellName(len(result.Columns), excelRow)
			if err := file.SetCellStyle(sheet, first, last, styleID); err != nil {
				return errors.ExportError(sheet, err)
			}
		}
	}

	return nil
}

// cellValue picks the typed value for numeric derived columns so the
// workbook gets real numbers, and the raw cell text everywhere else.
func (e *Exporter) cellValue(result *reconcile.Result, row *reconcile.Row, column string) interface{} {
	switch column {
	case result.ExpectedPriceColumn:
		if row.Expected != nil {
			value, _ := row.Expected.Float64()
			return value
		}
		return result.Value(row, column)
	case result.DeltaColumn:
		if row.Delta != nil {
			value, _ := row.Delta.Float64()
			return value
		}
		return ""
	default:
		return result.Value(row, column)
	}
}

// statusFills maps status markers to row fill styles. Only the match,
// mismatch and missing markers are color-coded.
func (e *Exporter) statusFills(file *excelize.File) (map[string]int, error) {
	fills := map[string]string{
		reconcile.StatusMatch.Marker():                e.config.MatchFill,
		reconcile.StatusPriceMismatch.Marker():        e.config.MismatchFill,
		reconcile.StatusMissingFromPriceList.Marker(): e.config.MissingFill,
	}

	styles := make(map[string]int, len(fills))
	for marker, color := range fills {
		styleID, err := file.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		})
		if err != nil {
			return nil, err
		}
		styles[marker] = styleID
	}
	return styles, nil
}

func (e *Exporter) applySheetLayout(file *excelize.File, sheet string, columns, rows int) error {
	if columns == 0 {
		return nil
	}

	lastColumn, err := excelize.ColumnNumberToName(columns)
	if err != nil {
		return errors.ExportError(sheet, err)
	}
	if err := file.SetColWidth(sheet, "A", lastColumn, e.config.ColumnWidth); err != nil {
		return errors.ExportError(sheet, err)
	}

	// Freeze the header row.
	if err := file.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return errors.ExportError(sheet, err)
	}

	// Autofilter over the full data range.
	filterRange := fmt.Sprintf("A1:%s%d", lastColumn, rows+1)
	if err := file.AutoFilter(sheet, filterRange, nil); err != nil {
		return errors.ExportError(sheet, err)
	}

	return nil
}
