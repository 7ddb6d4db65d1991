package dates

import (
	"testing"

	"pgregory.net/rapid"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"iso passthrough", "2025-12-03", "2025-12-03"},
		{"iso with surrounding space", "  2025-12-03 ", "2025-12-03"},
		{"impossible calendar date", "2025-02-31", ""},
		{"rfc3339 utc", "2025-12-03T00:00:00Z", "2025-12-03"},
		{"rfc3339 with offset", "2025-12-03T23:30:00+09:00", "2025-12-03"},
		{"spreadsheet serial", "45992", "2025-12-01"},
		{"fractional serial", "45992.5", "2025-12-01"},
		{"slash layout", "2025/12/03", "2025-12-03"},
		{"empty", "", ""},
		{"garbage", "next tuesday", ""},
		{"negative serial", "-3", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeValue(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want string
	}{
		{"nil", nil, ""},
		{"string", "2025-06-01", "2025-06-01"},
		{"float serial", float64(45992), "2025-12-01"},
		{"int serial", 45992, "2025-12-01"},
		{"bool is not a date", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeValue(tt.in); got != tt.want {
				t.Errorf("NormalizeValue(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFromSerialKnownAnchors(t *testing.T) {
	// Serial 1 is 1900-01-01 under the historical epoch.
	if got := FromSerial(1); got != "1899-12-31" {
		t.Errorf("FromSerial(1) = %q, want 1899-12-31", got)
	}
	if got := FromSerial(2); got != "1900-01-01" {
		t.Errorf("FromSerial(2) = %q, want 1900-01-01", got)
	}
	if got := FromSerial(0); got != "" {
		t.Errorf("FromSerial(0) = %q, want empty", got)
	}
}

func TestAddDays(t *testing.T) {
	tests := []struct {
		date string
		n    int
		want string
	}{
		{"2025-12-03", 0, "2025-12-03"},
		{"2025-12-03", 5, "2025-12-08"},
		{"2025-12-03", -5, "2025-11-28"},
		{"2025-12-31", 1, "2026-01-01"},
		{"2024-02-28", 1, "2024-02-29"}, // leap year
		{"bogus", 1, ""},
	}

	for _, tt := range tests {
		if got := AddDays(tt.date, tt.n); got != tt.want {
			t.Errorf("AddDays(%q, %d) = %q, want %q", tt.date, tt.n, got, tt.want)
		}
	}
}

func TestDaysBetween(t *testing.T) {
	if got := DaysBetween("2025-01-05", "2025-01-12"); got != 7 {
		t.Errorf("DaysBetween = %d, want 7", got)
	}
	if got := DaysBetween("2025-01-12", "2025-01-05"); got != -7 {
		t.Errorf("DaysBetween = %d, want -7", got)
	}
	if got := DaysBetween("x", "2025-01-05"); got != 0 {
		t.Errorf("DaysBetween with invalid input = %d, want 0", got)
	}
}

// Lexicographic comparison of normalized dates must agree with
// chronological order; the whole scheduling layer leans on this.
func TestNormalizedOrderIsChronological(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := rapid.IntRange(1, 80000).Draw(rt, "a")
		b := rapid.IntRange(1, 80000).Draw(rt, "b")

		da, db := FromSerial(float64(a)), FromSerial(float64(b))
		if (a < b) != (da < db) && da != db {
			rt.Fatalf("serial order %d<%d disagrees with string order %q<%q", a, b, da, db)
		}
	})
}

func TestAddDaysRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		serial := rapid.IntRange(1000, 80000).Draw(rt, "serial")
		n := rapid.IntRange(-1000, 1000).Draw(rt, "n")

		date := FromSerial(float64(serial))
		shifted := AddDays(date, n)
		if back := AddDays(shifted, -n); back != date {
			rt.Fatalf("AddDays(%q, %d) then -%d = %q, want original", date, n, n, back)
		}
		if got := DaysBetween(date, shifted); got != n {
			rt.Fatalf("DaysBetween(%q, %q) = %d, want %d", date, shifted, got, n)
		}
	})
}
