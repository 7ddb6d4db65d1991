// Package identifier produces structured task IDs of the form
// DEPT-YYYY-MM-NNNN, grouped by department code and issue year-month with
// a per-group monotonic sequence counter.
package identifier

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
)

// DefaultTeamCodes maps team names to short department codes.
// Unknown teams fall back to CodeOther. The table can be replaced at
// construction time (see LoadTeamCodes for the YAML override path).
var DefaultTeamCodes = map[string]string{
	"Chip":       "CHIP",
	"Mechanism":  "MECH",
	"Software":   "SOFT",
	"Control":    "CTRL",
	"Flow":       "FLOW",
	"Bio":        "BIO",
	"QA":         "QA",
	"Management": "MGT",
	"Issue":      "ISS",
}

// CodeOther is the fallback department code for unknown teams.
const CodeOther = "OTH"

// StructuredID matches the canonical DEPT-YYYY-MM-NNNN format.
var StructuredID = regexp.MustCompile(`^([A-Z]{2,4})-(\d{4})-(\d{2})-(\d{4})$`)

// Generator allocates sequence numbers per {dept, year-month} group.
// Counter state lives for the process lifetime; callers that need
// uniqueness across restarts must Seed from existing IDs first.
// Safe for concurrent use: colliding sequence numbers are a data
// integrity bug, so allocation is serialized.
type Generator struct {
	mu       sync.Mutex
	counters map[string]int
	codes    map[string]string
	now      func() time.Time
}

// New creates a Generator. A nil codes map uses DefaultTeamCodes.
func New(codes map[string]string) *Generator {
	if codes == nil {
		codes = DefaultTeamCodes
	}
	return &Generator{
		counters: make(map[string]int),
		codes:    codes,
		now:      time.Now,
	}
}

// Generate returns the next ID for the team's group. issueDate may be
// empty or malformed; the generator then groups under the current
// wall-clock year-month.
func (g *Generator) Generate(team, issueDate string) string {
	dept := g.codes[team]
	if dept == "" {
		dept = CodeOther
	}

	yearMonth := yearMonthOf(issueDate)
	if yearMonth == "" {
		yearMonth = g.now().Format("2006-01")
	}

	key := dept + "-" + yearMonth

	g.mu.Lock()
	g.counters[key]++
	seq := g.counters[key]
	g.mu.Unlock()

	return fmt.Sprintf("%s-%s-%04d", dept, yearMonth, seq)
}

// Seed raises group counters to at least the highest sequence number seen
// in existing structured IDs, so a restarted process does not re-issue
// numbers already in use. Non-structured IDs are ignored.
func (g *Generator) Seed(ids []string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, id := range ids {
		m := StructuredID.FindStringSubmatch(id)
		if m == nil {
			continue
		}
		key := m[1] + "-" + m[2] + "-" + m[3]
		seq, err := strconv.Atoi(m[4])
		if err != nil {
			continue
		}
		if seq > g.counters[key] {
			g.counters[key] = seq
		}
	}
}

// yearMonthOf extracts YYYY-MM from the first two dash-separated
// components of a date string, left-padding the month. A bare year (no
// month component) is not enough; the caller falls back to now.
func yearMonthOf(issueDate string) string {
	parts := strings.Split(strings.TrimSpace(issueDate), "-")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return ""
	}
	year := parts[0]
	month := parts[1]
	if len(year) != 4 {
		return ""
	}
	if _, err := strconv.Atoi(year); err != nil {
		return ""
	}
	if _, err := strconv.Atoi(month); err != nil {
		return ""
	}
	if len(month) == 1 {
		month = "0" + month
	}
	if len(month) != 2 {
		return ""
	}
	return year + "-" + month
}
