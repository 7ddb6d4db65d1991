// Package schedule computes derived scheduling state: start dates from
// due date and duration, overdue and should-have-started classification,
// and row highlighting. All functions are pure and take a caller-supplied
// reference date, so the table, Gantt, and tree views agree and tests
// never depend on the wall clock.
package schedule

import (
	"github.com/jamesclu/wbs/internal/dates"
	"github.com/jamesclu/wbs/internal/types"
)

// StartDate derives the planned start from the due date and duration in
// days, via calendar arithmetic. Returns "" if either input is missing or
// invalid.
func StartDate(dueDate string, duration int) string {
	if dueDate == "" || duration <= 0 {
		return ""
	}
	return dates.AddDays(dueDate, -duration)
}

// ClampDuration enforces the duration >= 1 invariant that keeps start
// date computation well-defined.
func ClampDuration(d int) int {
	if d < 1 {
		return 1
	}
	return d
}

// Badge classifies a task for display.
type Badge string

const (
	BadgeNotExecuting Badge = "not_executing" // Closed: cancelled, never flagged overdue
	BadgeOnHold       Badge = "on_hold"       // Pending: parked, never flagged overdue
	BadgeOverdue      Badge = "overdue"
	BadgeShouldStart  Badge = "should_start"
	BadgeTodo         Badge = "todo"
	BadgeInProgress   Badge = "in_progress"
	BadgeDone         Badge = "done"
	BadgeDelayed      Badge = "delayed"
	BadgeUnknown      Badge = "unknown"
)

// BadgeFor returns the display classification for a task given a
// reference date. The decision order is load-bearing: Closed and Pending
// take precedence over everything date-derived, so a cancelled or parked
// task is never flagged overdue no matter how far past its due date.
func BadgeFor(t *types.Task, today string) Badge {
	if t.Status == types.StatusClosed {
		return BadgeNotExecuting
	}
	if t.Status == types.StatusPending {
		return BadgeOnHold
	}

	if t.DueDate != "" && t.DueDate < today && t.Status != types.StatusDone {
		return BadgeOverdue
	}

	if t.Status == types.StatusTodo {
		if start := StartDate(t.DueDate, t.Duration); start != "" && start <= today {
			return BadgeShouldStart
		}
	}

	switch t.Status {
	case types.StatusTodo:
		return BadgeTodo
	case types.StatusInProgress:
		return BadgeInProgress
	case types.StatusDone:
		return BadgeDone
	case types.StatusDelayed:
		return BadgeDelayed
	}
	return BadgeUnknown
}

// Highlight marks a row for attention in list views.
type Highlight string

const (
	HighlightNone Highlight = ""
	// HighlightOverdue marks delayed tasks and passed due dates.
	HighlightOverdue Highlight = "overdue"
	// HighlightShouldStart marks Todo tasks whose start date has arrived
	// but whose due date has not yet passed.
	HighlightShouldStart Highlight = "should_start"
)

// RowHighlight returns the attention marker for a task. Finished and
// parked tasks (Done, Closed, Pending) are exempt. An explicit Delayed
// status always gets the overdue highlight, independent of dates.
func RowHighlight(t *types.Task, enabled bool, today string) Highlight {
	if !enabled {
		return HighlightNone
	}
	if t.Status.IsFinished() || t.Status == types.StatusPending {
		return HighlightNone
	}

	if t.Status == types.StatusDelayed || (t.DueDate != "" && t.DueDate < today) {
		return HighlightOverdue
	}

	if t.Status == types.StatusTodo {
		start := StartDate(t.DueDate, t.Duration)
		if start != "" && start <= today && t.DueDate >= today {
			return HighlightShouldStart
		}
	}
	return HighlightNone
}
