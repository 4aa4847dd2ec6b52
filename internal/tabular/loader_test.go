package tabular

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/amirvolinsky/fruitVeggieComparator/pkg/errors"
)

// workbookBytes builds an in-memory xlsx whose first sheet holds the given
// cell rows.
func workbookBytes(t *testing.T, rows [][]interface{}) *bytes.Reader {
	t.Helper()

	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)
	for i, cells := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("CoordinatesToCellName failed: %v", err)
		}
		if err := file.SetSheetRow(sheet, cell, &cells); err != nil {
			t.Fatalf("SetSheetRow failed: %v", err)
		}
	}

	buffer, err := file.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer failed: %v", err)
	}
	return bytes.NewReader(buffer.Bytes())
}

func TestLoadReader(t *testing.T) {
	reader := workbookBytes(t, [][]interface{}{
		{" מקט ", "פריט", "מחירון"},
		{"1", "תפוח", 10},
		{"", "", ""},
		{"2", "אגס", 12.5},
	})

	table, err := NewLoader().LoadReader(reader, "price list")
	if err != nil {
		t.Fatalf("LoadReader failed: %v", err)
	}

	if len(table.Headers) != 3 || table.Headers[0] != "מקט" {
		t.Errorf("Headers = %v, want trimmed [מקט פריט מחירון]", table.Headers)
	}
	if table.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (blank row skipped)", table.Len())
	}
	if v, _ := table.Rows[1].Get("מחירון"); v != "12.5" {
		t.Errorf("numeric cell = %q, want \"12.5\"", v)
	}
}

func TestLoadReaderEmptySheet(t *testing.T) {
	reader := workbookBytes(t, nil)

	table, err := NewLoader().LoadReader(reader, "expenses")
	if err != nil {
		t.Fatalf("LoadReader failed: %v", err)
	}
	if table.Len() != 0 || len(table.Headers) != 0 {
		t.Errorf("empty sheet should load as an empty table, got %s", table)
	}
}

func TestLoadReaderNotAWorkbook(t *testing.T) {
	_, err := NewLoader().LoadReader(strings.NewReader("not an xlsx"), "expenses")

	ce, ok := errors.AsComparatorError(err)
	if !ok {
		t.Fatalf("expected a categorized error, got %v", err)
	}
	if ce.Code != errors.CodeFileUnreadable {
		t.Errorf("Code = %s, want %s", ce.Code, errors.CodeFileUnreadable)
	}
}

func TestLoadFileNotFound(t *testing.T) {
	_, err := NewLoader().LoadFile(t.TempDir()+"/missing.xlsx", "expenses")

	ce, ok := errors.AsComparatorError(err)
	if !ok {
		t.Fatalf("expected a categorized error, got %v", err)
	}
	if ce.Code != errors.CodeFileNotFound {
		t.Errorf("Code = %s, want %s", ce.Code, errors.CodeFileNotFound)
	}
	if ce.Category != errors.CategoryFile {
		t.Errorf("Category = %s, want %s", ce.Category, errors.CategoryFile)
	}
}
