package tabular

import "testing"

func TestRowGet(t *testing.T) {
	row := Row{
		"מקט":   " 12 ",
		"פריט":  "תפוח",
		"הערות": "   ",
	}

	value, ok := row.Get("מקט")
	if !ok || value != "12" {
		t.Errorf("Get trimmed cell = (%q, %v), want (\"12\", true)", value, ok)
	}

	if _, ok := row.Get("הערות"); ok {
		t.Error("blank cell should report not present")
	}

	if _, ok := row.Get("לא קיים"); ok {
		t.Error("missing header should report not present")
	}
}

func TestAppendRowPadsAndTruncates(t *testing.T) {
	table := NewTable("expenses", []string{"a", "b", "c"})

	table.AppendRow([]string{"1"})
	table.AppendRow([]string{"1", "2", "3", "4"})

	if table.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", table.Len())
	}

	if v, ok := table.Rows[0].Get("b"); ok {
		t.Errorf("padded cell should be blank, got %q", v)
	}
	if v, _ := table.Rows[1].Get("c"); v != "3" {
		t.Errorf("Rows[1][c] = %q, want \"3\"", v)
	}
	if _, ok := table.Rows[1]["d"]; ok {
		t.Error("extra cell beyond headers should be dropped")
	}
}

func TestHasHeader(t *testing.T) {
	table := NewTable("prices", []string{"מקט", "מחירון"})

	if !table.HasHeader("מחירון") {
		t.Error("HasHeader should find exact header")
	}
	if table.HasHeader("מחיר") {
		t.Error("HasHeader must not substring-match")
	}
}
