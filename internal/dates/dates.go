// Package dates normalizes the heterogeneous date encodings that task
// records arrive with: ISO YYYY-MM-DD strings, ISO strings with a time
// component, and spreadsheet epoch serial numbers. Everything downstream
// works in plain YYYY-MM-DD strings, which compare correctly with <.
package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const Layout = "2006-01-02"

var (
	isoPattern     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	isoTimePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T`)
)

// spreadsheetEpoch is the serial-number base used by Excel and Google
// Sheets. Serial 1 is 1900-01-01, but the base is 1899-12-30 because of
// the historical leap-year-1900 bug both systems preserve.
var spreadsheetEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// Normalize converts a raw date string to YYYY-MM-DD.
// Returns "" for anything unparseable; it never fails hard because
// upstream data is uncontrolled.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	if isoPattern.MatchString(s) {
		// Reject well-shaped but impossible dates like 2025-02-31.
		if _, err := time.Parse(Layout, s); err != nil {
			return ""
		}
		return s
	}

	// ISO with time component: take the UTC calendar date.
	if isoTimePattern.MatchString(s) {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return ""
		}
		return t.UTC().Format(Layout)
	}

	// Spreadsheet serial number, possibly fractional.
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		return FromSerial(serial)
	}

	// Last resort: a few common spellings.
	for _, layout := range []string{"2006/01/02", "2006-1-2", "Jan 2, 2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(Layout)
		}
	}
	return ""
}

// NormalizeValue handles the decoded-JSON case where a date may arrive as
// a string or as a numeric serial.
func NormalizeValue(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return Normalize(x)
	case float64:
		return FromSerial(x)
	case int:
		return FromSerial(float64(x))
	case time.Time:
		return x.Format(Layout)
	default:
		return ""
	}
}

// FromSerial converts a spreadsheet date serial to YYYY-MM-DD.
func FromSerial(serial float64) string {
	if serial <= 0 {
		return ""
	}
	d := spreadsheetEpoch.Add(time.Duration(serial * float64(24*time.Hour)))
	return d.UTC().Format(Layout)
}

// AddDays shifts a YYYY-MM-DD date by n calendar days.
// Returns "" if the input date is invalid.
func AddDays(date string, n int) string {
	t, err := time.Parse(Layout, date)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, n).Format(Layout)
}

// DaysBetween returns the whole days from a to b (b - a).
// Returns 0 if either date is invalid.
func DaysBetween(a, b string) int {
	ta, err := time.Parse(Layout, a)
	if err != nil {
		return 0
	}
	tb, err := time.Parse(Layout, b)
	if err != nil {
		return 0
	}
	return int(tb.Sub(ta).Hours() / 24)
}

// Today returns the current date in the given location, defaulting to the
// process-local zone. Core computations never call this; they take a
// caller-supplied today string for testability.
func Today(loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return time.Now().In(loc).Format(Layout)
}
