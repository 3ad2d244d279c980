package report

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// serialEpoch anchors the spreadsheet serial date system: day 1 is
// 1900-01-01. Conversion is plain day arithmetic with no leap-year
// correction, matching the historical convention of exported sheets.
var serialEpoch = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// textDateLayouts are tried in order after a strict ISO parse fails.
// MM/DD/YYYY precedes DD/MM/YYYY, so an ambiguous "03/04/2026" resolves
// to March 4. That tie-break is deliberate.
var textDateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"02/01/2006",
	"2006-01-02 15:04:05",
}

var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// parseDate converts a date-bearing cell into a timestamp. Native values
// pass through, numbers are spreadsheet day serials, text runs through the
// ISO parse and then the fixed format list. Returns false for anything
// unparseable; callers treat that as "no value", never as an error.
func parseDate(v any) (time.Time, bool) {
	switch d := v.(type) {
	case time.Time:
		if d.IsZero() {
			return time.Time{}, false
		}
		return d, true
	case float64:
		return serialEpoch.AddDate(0, 0, int(d)-1), true
	case int:
		return serialEpoch.AddDate(0, 0, d-1), true
	case string:
		return parseDateText(strings.TrimSpace(d))
	}
	return time.Time{}, false
}

func parseDateText(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, layout := range textDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// combineDateTime merges a date cell with a separate time cell. Numeric
// time values are fractions of a 24-hour day; text values are split on
// ":" after the AM/PM tokens are stripped. The stripped tokens never
// adjust the hour, so "2:30 PM" yields 02:30 — observed legacy behavior,
// kept as-is. An out-of-range hour or minute discards the time component
// and keeps the date alone.
func combineDateTime(dateValue, timeValue any) (time.Time, bool) {
	date, ok := parseDate(dateValue)
	if !ok {
		return time.Time{}, false
	}

	hour, minute := 0, 0
	switch t := timeValue.(type) {
	case time.Time:
		hour, minute = t.Hour(), t.Minute()
	case float64:
		total := int(math.Round(t * 24 * 60))
		hour = total / 60
		minute = total % 60
	case string:
		s := strings.TrimSpace(t)
		s = strings.ReplaceAll(s, "PM", "")
		s = strings.ReplaceAll(s, "AM", "")
		s = strings.TrimSpace(s)
		parts := strings.Split(s, ":")
		if len(parts) > 0 {
			hour = digitsToInt(parts[0])
		}
		if len(parts) > 1 {
			minute = digitsToInt(parts[1])
		}
	}

	if hour > 23 || minute > 59 {
		return date, true
	}

	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location()), true
}

// digitsToInt parses an all-digit string, returning 0 for anything else.
func digitsToInt(s string) int {
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
