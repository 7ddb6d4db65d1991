package schedule

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/jamesclu/wbs/internal/types"
)

var checklistPrefix = regexp.MustCompile(`^-?\s*\[[ xX]?\]\s*`)

// ParseAcceptanceCriteria tolerantly decodes acceptance criteria from
// either a JSON item list or the "- [ ] item" / "- [x] item" line-based
// text encoding. The second return value is false when non-empty input
// had to be recovered to an empty list; callers never see an error.
func ParseAcceptanceCriteria(raw string) ([]types.AcceptanceItem, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, true
	}

	if strings.HasPrefix(s, "[") {
		var items []types.AcceptanceItem
		if err := json.Unmarshal([]byte(s), &items); err != nil {
			return nil, false
		}
		return items, true
	}

	if strings.Contains(s, "- [") {
		var items []types.AcceptanceItem
		for _, line := range strings.Split(s, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			items = append(items, types.AcceptanceItem{
				Checked: strings.Contains(line, "[x]") || strings.Contains(line, "[X]"),
				Content: checklistPrefix.ReplaceAllString(line, ""),
			})
		}
		return items, true
	}

	// Free text without checkboxes carries no gate items.
	return nil, false
}

// AcceptanceSatisfied reports whether every acceptance criteria item on
// the task is checked. A task with no parseable items is satisfied.
func AcceptanceSatisfied(t *types.Task) bool {
	items, _ := ParseAcceptanceCriteria(t.AcceptanceCriteria)
	for _, item := range items {
		if !item.Checked {
			return false
		}
	}
	return true
}

// UncheckedCount returns how many acceptance items remain unchecked, for
// caller-facing rejection messages.
func UncheckedCount(t *types.Task) int {
	items, _ := ParseAcceptanceCriteria(t.AcceptanceCriteria)
	n := 0
	for _, item := range items {
		if !item.Checked {
			n++
		}
	}
	return n
}

// CheckDoneGate enforces the hard invariant at the status-transition
// boundary: a task may not move to Done while any acceptance item is
// unchecked. Returns the unchecked count and whether the transition is
// allowed. Transitions to any other status always pass.
func CheckDoneGate(t *types.Task, newStatus types.Status) (int, bool) {
	if newStatus != types.StatusDone {
		return 0, true
	}
	n := UncheckedCount(t)
	return n, n == 0
}
