package resolver

import "testing"

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain hebrew", "מקט", "מקט"},
		{"gershayim", "מק\"ט", "מקט"},
		{"geresh", "מק'ט", "מקט"},
		{"typographic gershayim", "מק״ט", "מקט"},
		{"latin and digits", "Price-2024 (NIS)", "Price2024NIS"},
		{"spaces and punctuation", "מחיר לפני מע\"מ", "מחירלפנימעמ"},
		{"only punctuation", "-- ()", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeKey(tt.input); got != tt.expected {
				t.Errorf("NormalizeKey(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeKeyQuoteVariantsCollapse(t *testing.T) {
	variants := []string{"מקט", "מק\"ט", "מק'ט", "מק״ט"}
	for _, v := range variants {
		if NormalizeKey(v) != "מקט" {
			t.Errorf("Expected %q to normalize to מקט, got %q", v, NormalizeKey(v))
		}
	}
}

func TestFindColumn(t *testing.T) {
	headers := []string{"תאריך", "מק\"ט", "פריט", "כמות", "מחיר לפני מע\"מ"}

	col, ok := FindColumn(headers, []string{"מקט"})
	if !ok || col != "מק\"ט" {
		t.Errorf("Expected to resolve SKU column מק\"ט, got %q (found=%v)", col, ok)
	}

	col, ok = FindColumn(headers, []string{"מחיר לפני מעמ", "מחיר"})
	if !ok || col != "מחיר לפני מע\"מ" {
		t.Errorf("Expected to resolve actual price column, got %q (found=%v)", col, ok)
	}

	if _, ok := FindColumn(headers, []string{"לקוח"}); ok {
		t.Error("Expected no match for a concept the table lacks")
	}
}

func TestFindColumnScansLeftToRight(t *testing.T) {
	// Both headers contain the keyword; the leftmost must win.
	headers := []string{"מחיר קנייה", "מחירון"}
	col, ok := FindColumn(headers, []string{"מחיר"})
	if !ok || col != "מחיר קנייה" {
		t.Errorf("Expected leftmost matching column, got %q", col)
	}
}

func TestFindColumnSubstringIsLoose(t *testing.T) {
	// A keyword appearing inside an unrelated longer header still matches.
	headers := []string{"הערות על מחיר ההובלה"}
	col, ok := FindColumn(headers, []string{"מחיר"})
	if !ok || col != headers[0] {
		t.Errorf("Expected loose substring match, got %q (found=%v)", col, ok)
	}
}

func TestFindColumnEmptyInputs(t *testing.T) {
	if _, ok := FindColumn(nil, []string{"מקט"}); ok {
		t.Error("Expected no match on an empty table")
	}
	if _, ok := FindColumn([]string{"מקט"}, nil); ok {
		t.Error("Expected no match with no keywords")
	}
	if _, ok := FindColumn([]string{"מקט"}, []string{"--"}); ok {
		t.Error("Expected no match when keywords normalize to empty")
	}
}

func TestFindColumnPreferExact(t *testing.T) {
	// "מחיר קנייה" appears first and would win loose matching, but the
	// exact concept header must take priority.
	headers := []string{"מק\"ט", "מחיר קנייה", "מחירון"}

	col, ok := FindColumnPreferExact(headers, "מחירון", []string{"מחירון", "מחיר"})
	if !ok || col != "מחירון" {
		t.Errorf("Expected exact concept match to win, got %q", col)
	}

	// Punctuated spelling of the exact concept still counts as exact.
	headers = []string{"מחיר קנייה", "מחירון:"}
	col, ok = FindColumnPreferExact(headers, "מחירון", []string{"מחירון", "מחיר"})
	if !ok || col != "מחירון:" {
		t.Errorf("Expected normalized exact match to win, got %q", col)
	}

	// Without an exact header the loose fallback applies.
	headers = []string{"מחיר קנייה", "הנחה"}
	col, ok = FindColumnPreferExact(headers, "מחירון", []string{"מחירון", "מחיר"})
	if !ok || col != "מחיר קנייה" {
		t.Errorf("Expected loose fallback, got %q", col)
	}
}
