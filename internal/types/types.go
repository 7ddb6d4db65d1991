package types

import (
	"strings"
	"time"
)

// Task represents a trackable work item
type Task struct {
	ID                 string         `json:"id"`
	LegacyID           string         `json:"legacyId,omitempty"` // original ID retained when an import-format ID is converted
	Team               string         `json:"team"`
	Project            string         `json:"project,omitempty"`
	Purpose            string         `json:"purpose,omitempty"`
	Title              string         `json:"task"`
	Owner              string         `json:"owner"`
	IssueDate          string         `json:"issueDate,omitempty"`
	StartDate          string         `json:"startDate,omitempty"`
	DueDate            string         `json:"date"`
	Duration           int            `json:"duration"`
	Status             Status         `json:"status"`
	Priority           Priority       `json:"priority"`
	Dependency         string         `json:"dependency,omitempty"`
	DateHistory        []HistoryEntry `json:"dateHistory,omitempty"`
	IsCheckpoint       bool           `json:"isCheckpoint,omitempty"`
	IssuePool          bool           `json:"issuePool,omitempty"`
	AcceptanceCriteria string         `json:"acceptanceCriteria,omitempty"`
	Notes              string         `json:"notes,omitempty"`
	Verification       string         `json:"verification,omitempty"`
	Reviewer           string         `json:"reviewer,omitempty"`

	// WBS tree fields. ParentID empty means root or independent.
	ParentID  string   `json:"parentId,omitempty"`
	NodeType  NodeType `json:"nodeType,omitempty"`
	SortOrder int      `json:"sortOrder,omitempty"`
	Level     int      `json:"level,omitempty"` // depth, derived

	// SnapshotDate marks records exported as a comparison baseline.
	SnapshotDate string `json:"_SnapshotDate,omitempty"`
}

// HistoryEntry is one version in a task's append-only due-date history
type HistoryEntry struct {
	Date      string    `json:"date"`
	ChangedAt time.Time `json:"changedAt"`
	Reason    string    `json:"reason"`
	Version   int       `json:"version"`
}

// AcceptanceItem is one checklist item gating the Done transition
type AcceptanceItem struct {
	Content string `json:"content"`
	Checked bool   `json:"checked"`
}

// Status represents the current state of a task
type Status string

const (
	StatusTodo       Status = "Todo"
	StatusInProgress Status = "InProgress"
	StatusPending    Status = "Pending"
	StatusDone       Status = "Done"
	StatusClosed     Status = "Closed"
	StatusDelayed    Status = "Delayed"
)

// IsValid checks if the status value is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusPending, StatusDone, StatusClosed, StatusDelayed:
		return true
	}
	return false
}

// IsFinished reports whether the status counts as completed work.
// Done and Closed tasks are exempt from overdue and delay classification.
func (s Status) IsFinished() bool {
	return s == StatusDone || s == StatusClosed
}

// Priority categorizes task urgency
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// IsValid checks if the priority value is valid
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// NodeType categorizes a task's position in the WBS containment tree
type NodeType string

const (
	NodeEpic        NodeType = "epic"
	NodeStory       NodeType = "story"
	NodeTask        NodeType = "task"
	NodeIndependent NodeType = "independent"
)

// IsValid checks if the node type value is valid. Empty is allowed and
// treated as independent for tasks that never entered the tree.
func (n NodeType) IsValid() bool {
	switch n {
	case NodeEpic, NodeStory, NodeTask, NodeIndependent, "":
		return true
	}
	return false
}

// Severity classifies a validation finding
type Severity string

const (
	// SeverityBlocking findings must prevent the mutating operation.
	SeverityBlocking Severity = "blocking"
	// SeverityWarning findings are reported but historically allowed to save.
	SeverityWarning Severity = "warning"
)

// ValidationIssue is a single finding from write-path validation.
// All checks accumulate so the caller can show every problem at once.
type ValidationIssue struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Blocking reports whether any issue in the list is blocking.
func Blocking(issues []ValidationIssue) bool {
	for _, i := range issues {
		if i.Severity == SeverityBlocking {
			return true
		}
	}
	return false
}

// Messages flattens a list of issues to their messages.
func Messages(issues []ValidationIssue) []string {
	msgs := make([]string, 0, len(issues))
	for _, i := range issues {
		msgs = append(msgs, i.Message)
	}
	return msgs
}

// Validate checks the task's own field values. Dependency references and
// cycles are checked separately by the graph package because they need the
// whole task set.
func (t *Task) Validate() []ValidationIssue {
	var issues []ValidationIssue

	title := strings.TrimSpace(t.Title)
	if title == "" {
		issues = append(issues, ValidationIssue{SeverityBlocking, "task title is required"})
	} else if len([]rune(title)) > 100 {
		issues = append(issues, ValidationIssue{SeverityBlocking, "task title must be 100 characters or less"})
	}

	if strings.TrimSpace(t.Owner) == "" {
		issues = append(issues, ValidationIssue{SeverityBlocking, "owner is required"})
	}

	if t.DueDate == "" {
		issues = append(issues, ValidationIssue{SeverityBlocking, "due date is required"})
	} else if parsed, err := time.Parse("2006-01-02", t.DueDate); err != nil {
		issues = append(issues, ValidationIssue{SeverityBlocking, "due date is not a valid YYYY-MM-DD date"})
	} else {
		// Sanity band: five years either side of now.
		now := time.Now()
		if parsed.Before(now.AddDate(-5, 0, 0)) || parsed.After(now.AddDate(5, 0, 0)) {
			issues = append(issues, ValidationIssue{SeverityWarning, "due date is outside the expected range (5 years)"})
		}
	}

	if t.Duration < 0 {
		issues = append(issues, ValidationIssue{SeverityBlocking, "duration cannot be negative"})
	} else if t.Duration > 365 {
		issues = append(issues, ValidationIssue{SeverityWarning, "duration exceeds 365 days, check the estimate"})
	}

	if t.Status != "" && !t.Status.IsValid() {
		issues = append(issues, ValidationIssue{SeverityBlocking, "invalid status: " + string(t.Status)})
	}
	if t.Priority != "" && !t.Priority.IsValid() {
		issues = append(issues, ValidationIssue{SeverityBlocking, "invalid priority: " + string(t.Priority)})
	}
	if !t.NodeType.IsValid() {
		issues = append(issues, ValidationIssue{SeverityBlocking, "invalid node type: " + string(t.NodeType)})
	}

	return issues
}

// Key returns the stable identity used to match tasks across snapshots.
// Falls back to the legacy ID for records that predate structured IDs.
func (t *Task) Key() string {
	if t.ID != "" {
		return t.ID
	}
	return t.LegacyID
}

// Event represents an audit trail entry for a task mutation
type Event struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	EventType EventType `json:"event_type"`
	Actor     string    `json:"actor"`
	OldValue  string    `json:"old_value,omitempty"`
	NewValue  string    `json:"new_value,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// EventType categorizes audit trail events
type EventType string

const (
	EventCreated       EventType = "created"
	EventUpdated       EventType = "updated"
	EventStatusChanged EventType = "status_changed"
	EventDateChanged   EventType = "date_changed"
	EventMoved         EventType = "moved"
	EventReordered     EventType = "reordered"
	EventDeleted       EventType = "deleted"
)
