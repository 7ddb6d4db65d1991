// Package history maintains the append-only due-date version log kept on
// each task. Entries are 1-based, strictly increasing, and never
// rewritten: edits append, nothing truncates.
package history

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/jamesclu/wbs/internal/types"
)

const (
	// ReasonInitialPlan is recorded on the version-1 entry seeded at
	// task creation.
	ReasonInitialPlan = "initial plan"
	// ReasonDateAdjustment is the default reason when an edit changes
	// the due date without an explicit reason.
	ReasonDateAdjustment = "date adjustment"
)

// ParseResult carries a tolerant parse outcome. Clean is false when the
// raw input was non-empty but had to be recovered to a default; callers
// that track data quality can tell the two apart, everyone else just
// uses Entries.
type ParseResult struct {
	Entries []types.HistoryEntry
	Clean   bool
}

// Parse decodes a stored history string. It accepts a JSON array and
// tolerates the legacy corruption where a JSON array was concatenated
// with trailing non-JSON content after a "];" boundary — the string is
// truncated at that boundary before decoding. It never returns an error:
// on any failure the result is an empty history flagged not-clean, and
// the normal seeding logic reconstructs a minimal valid state.
func Parse(raw string) ParseResult {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ParseResult{Clean: true}
	}
	if !strings.HasPrefix(s, "[") {
		return ParseResult{Clean: false}
	}

	if i := strings.Index(s, "];"); i != -1 {
		s = s[:i+1]
	}

	var entries []types.HistoryEntry
	if err := json.Unmarshal([]byte(s), &entries); err != nil {
		return ParseResult{Clean: false}
	}
	return ParseResult{Entries: entries, Clean: true}
}

// Seed returns a version-1 history for the current date when the parsed
// history came back empty. History must never be empty once a date is
// known.
func Seed(entries []types.HistoryEntry, currentDate string, now time.Time) []types.HistoryEntry {
	if len(entries) > 0 || currentDate == "" {
		return entries
	}
	return []types.HistoryEntry{{
		Date:      currentDate,
		ChangedAt: now,
		Reason:    ReasonInitialPlan,
		Version:   1,
	}}
}

// AppendIfChanged appends a new version when the due date actually
// changed, or on task creation. A same-date edit returns the input
// unchanged. The returned slice is a copy; the input is never mutated.
func AppendIfChanged(entries []types.HistoryEntry, oldDate, newDate, reason string, isNewTask bool, now time.Time) []types.HistoryEntry {
	if !isNewTask && oldDate == newDate {
		return entries
	}

	if isNewTask {
		reason = ReasonInitialPlan
	} else if strings.TrimSpace(reason) == "" {
		reason = ReasonDateAdjustment
	}

	out := make([]types.HistoryEntry, len(entries), len(entries)+1)
	copy(out, entries)
	return append(out, types.HistoryEntry{
		Date:      newDate,
		ChangedAt: now,
		Reason:    reason,
		Version:   len(entries) + 1,
	})
}

// Encode serializes a history for storage. An empty history encodes as
// "[]" so downstream consumers never see the corrupt-legacy shapes again.
func Encode(entries []types.HistoryEntry) string {
	if len(entries) == 0 {
		return "[]"
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return "[]"
	}
	return string(data)
}
