package report

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// RawRow is one spreadsheet row keyed by the header text exactly as it
// appears in the source sheet, embedded line breaks included. Values are
// string, float64, time.Time, or nil for blank cells.
type RawRow map[string]any

// IndexedRow pairs a raw row with its 1-based position in the source sheet.
type IndexedRow struct {
	Index int
	Row   RawRow
}

var headerNormalizer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// normalizeHeader collapses line breaks to spaces, trims, and lowercases a
// header label so wrapped column titles and casing drift still match.
func normalizeHeader(s string) string {
	return strings.ToLower(strings.TrimSpace(headerNormalizer.Replace(s)))
}

// findValue looks up a cell by trying each candidate header label in
// priority order. Exact-key lookup runs first; if nothing hits, both the
// row keys and the candidates are normalized and compared again. Returns
// false when no candidate matches a non-nil cell.
func findValue(row RawRow, candidates []string) (any, bool) {
	for _, key := range candidates {
		if v, ok := row[key]; ok && v != nil {
			return v, true
		}
	}

	// Normalized fallback. Row keys are sorted so that a pathological row
	// with several headers normalizing to the same label resolves the same
	// way on every call.
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, candidate := range candidates {
		want := normalizeHeader(candidate)
		for _, actual := range keys {
			if normalizeHeader(actual) == want && row[actual] != nil {
				return row[actual], true
			}
		}
	}

	return nil, false
}

// cellText renders a cell value as trimmed text. Numeric cells print
// without a trailing fraction so confirmation and room numbers survive the
// float round-trip intact.
func cellText(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case time.Time:
		return t.Format("2006-01-02 15:04:05")
	case nil:
		return ""
	default:
		return ""
	}
}

// requiredText resolves a field that must be present and non-empty.
func requiredText(row RawRow, candidates []string) (string, bool) {
	v, ok := findValue(row, candidates)
	if !ok {
		return "", false
	}
	s := cellText(v)
	return s, s != ""
}

// optionalText resolves a field that may be absent; empty cells stay nil.
func optionalText(row RawRow, candidates []string) *string {
	v, ok := findValue(row, candidates)
	if !ok {
		return nil
	}
	s := cellText(v)
	if s == "" {
		return nil
	}
	return &s
}
