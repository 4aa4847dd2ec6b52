// Package resolver locates semantically-named columns inside the
// arbitrarily-punctuated header strings of untrusted spreadsheet input.
//
// Headers and keywords are compared through NormalizeKey, which strips every
// rune that is not a Latin letter, a Hebrew letter, or a digit. A header
// matches a concept when its normalized form contains a normalized keyword
// as a substring, so "מק\"ט", "מק'ט" and "מקט" all resolve to the same
// concept. The substring semantics are intentionally loose: tolerance of
// messy, human-maintained spreadsheets matters more here than precision.
package resolver

import "strings"

// NormalizeKey canonicalizes a header or keyword for matching by keeping
// only Latin letters, Hebrew letters and digits.
func NormalizeKey(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 0x0590 && r <= 0x05FF: // Hebrew block
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FindColumn returns the first header, scanning left to right, whose
// normalized form contains any of the normalized keywords. Keywords are
// checked in the order given. The second return value reports whether a
// column was found; absence is a value here, not an error, and callers
// decide whether it is fatal.
func FindColumn(headers []string, keywords []string) (string, bool) {
	normalized := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		if nk := NormalizeKey(keyword); nk != "" {
			normalized = append(normalized, nk)
		}
	}
	if len(normalized) == 0 {
		return "", false
	}

	for _, header := range headers {
		nh := NormalizeKey(header)
		if nh == "" {
			continue
		}
		for _, keyword := range normalized {
			if strings.Contains(nh, keyword) {
				return header, true
			}
		}
	}
	return "", false
}

// FindColumnPreferExact behaves like FindColumn but first looks for a header
// whose normalized form equals the normalized exact concept name. Only when
// no exact match exists does it fall back to loose substring matching. This
// lets a column named exactly for the price list win over any column that
// merely contains the word "price".
func FindColumnPreferExact(headers []string, exact string, keywords []string) (string, bool) {
	if ne := NormalizeKey(exact); ne != "" {
		for _, header := range headers {
			if NormalizeKey(header) == ne {
				return header, true
			}
		}
	}
	return FindColumn(headers, keywords)
}
