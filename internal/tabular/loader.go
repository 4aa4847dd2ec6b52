package tabular

import (
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/amirvolinsky/fruitVeggieComparator/pkg/errors"
	"github.com/amirvolinsky/fruitVeggieComparator/pkg/logger"
)

// Loader reads the first sheet of an xlsx workbook into a Table
type Loader struct {
	logger logger.Logger
}

// NewLoader creates a workbook loader
func NewLoader() *Loader {
	return &Loader{
		logger: logger.GetGlobalLogger().WithComponent("tabular_loader"),
	}
}

// LoadFile reads the workbook at path. The table name is used for error
// messages and logging, not for sheet selection; only the first sheet is
// ever read.
func (l *Loader) LoadFile(path, name string) (*Table, error) {
	l.logger.WithFields(logger.Fields{
		"file_path": path,
		"table":     name,
	}).Debug("Opening workbook")

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.FileError(errors.CodeFileNotFound, path, err)
		}
		if os.IsPermission(err) {
			return nil, errors.FileError(errors.CodeFilePermission, path, err)
		}
		return nil, errors.FileError(errors.CodeFileUnreadable, path, err)
	}
	defer file.Close()

	table, err := l.LoadReader(file, name)
	if err != nil {
		if ce, ok := errors.AsComparatorError(err); ok {
			return nil, ce.WithContext("file_path", path)
		}
		return nil, err
	}
	return table, nil
}

// LoadReader reads a workbook from an already-open byte stream
func (l *Loader) LoadReader(r io.Reader, name string) (*Table, error) {
	workbook, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.FileError(errors.CodeFileUnreadable, name, err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.FileError(errors.CodeFileUnreadable, name, nil).
			WithSuggestion("the workbook contains no sheets")
	}

	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, errors.FileError(errors.CodeFileUnreadable, name, err)
	}

	if len(rows) == 0 {
		table := NewTable(name, nil)
		l.logger.WithField("table", name).Warn("Workbook sheet is empty")
		return table, nil
	}

	table := NewTable(name, cleanHeaders(rows[0]))
	for _, cells := range rows[1:] {
		if isBlankRow(cells) {
			continue
		}
		table.AppendRow(cells)
	}

	l.logger.WithFields(logger.Fields{
		"table":   name,
		"sheet":   sheets[0],
		"columns": len(table.Headers),
		"rows":    table.Len(),
	}).Debug("Loaded workbook sheet")

	return table, nil
}

func cleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))
	for i, header := range headers {
		cleaned[i] = strings.TrimSpace(header)
	}
	return cleaned
}

func isBlankRow(cells []string) bool {
	for _, cell := range cells {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
