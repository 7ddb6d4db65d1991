package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"github.com/jamesclu/wbs/internal/dates"
	"github.com/jamesclu/wbs/internal/graph"
	"github.com/jamesclu/wbs/internal/history"
	"github.com/jamesclu/wbs/internal/schedule"
	"github.com/jamesclu/wbs/internal/types"
)

const taskColumns = `id, legacy_id, team, project, purpose, title, owner,
	issue_date, start_date, due_date, duration, status, priority,
	dependency, date_history, is_checkpoint, issue_pool,
	acceptance_criteria, notes, verification, reviewer,
	parent_id, node_type, sort_order`

// importFormatID matches the NNN_snake_case IDs produced by bulk WBS
// imports. They are readable but convert to canonical on save, keeping
// the original value as legacy_id.
var importFormatID = regexp.MustCompile(`^\d{3}_[a-zA-Z0-9_]+$`)

// CreateTask validates and inserts a new task. The ID is assigned here,
// exactly once: empty IDs get a generated structured ID, import-format
// IDs are converted to canonical with the original retained as the
// legacy ID. The date history is seeded with its version-1 entry.
func (s *SQLiteStorage) CreateTask(ctx context.Context, t *types.Task, actor string) ([]types.ValidationIssue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.normalize(t)

	issues := t.Validate()

	all, err := s.listTasks(ctx)
	if err != nil {
		return nil, err
	}

	switch {
	case t.ID == "":
		t.ID = s.gen.Generate(t.Team, t.IssueDate)
	case importFormatID.MatchString(t.ID):
		t.LegacyID = t.ID
		t.ID = s.gen.Generate(t.Team, t.IssueDate)
	}

	issues = append(issues, graph.ValidateReferences(t.Dependency, t.ID, all)...)
	if types.Blocking(issues) {
		return issues, ErrValidation
	}
	if graph.HasCycle(t.ID, t.Dependency, all) {
		return issues, fmt.Errorf("dependency cycle detected for %s", t.ID)
	}

	now := s.now()
	t.DateHistory = history.AppendIfChanged(nil, "", t.DueDate, "", true, now)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO tasks (`+taskColumns+`, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.LegacyID, t.Team, t.Project, t.Purpose, t.Title, t.Owner,
		t.IssueDate, t.StartDate, t.DueDate, t.Duration, string(t.Status), string(t.Priority),
		t.Dependency, history.Encode(t.DateHistory), boolInt(t.IsCheckpoint), boolInt(t.IssuePool),
		t.AcceptanceCriteria, t.Notes, t.Verification, t.Reviewer,
		t.ParentID, string(t.NodeType), t.SortOrder, now, now)
	if err != nil {
		return issues, fmt.Errorf("failed to insert task: %w", err)
	}

	s.recordEvent(ctx, t.ID, types.EventCreated, actor, "", t.Title)
	return issues, nil
}

// GetTask retrieves a task by ID
func (s *SQLiteStorage) GetTask(ctx context.Context, id string) (*types.Task, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+taskColumns+" FROM tasks WHERE id = ?", id)
	t, err := s.scanTask(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("task not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task %s: %w", id, err)
	}
	return t, nil
}

// ListTasks returns the full active task set ordered by due date
func (s *SQLiteStorage) ListTasks(ctx context.Context) ([]types.Task, error) {
	return s.listTasks(ctx)
}

func (s *SQLiteStorage) listTasks(ctx context.Context) ([]types.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+taskColumns+" FROM tasks ORDER BY due_date, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []types.Task
	for rows.Next() {
		t, err := s.scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

// UpdateTask validates and persists an edit. The ID is immutable: the
// stored record is looked up by t.ID and the incoming ID field cannot
// reassign it. A due-date change appends to the history ledger, never
// rewrites it.
func (s *SQLiteStorage) UpdateTask(ctx context.Context, t *types.Task, dateChangeReason, actor string) ([]types.ValidationIssue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, err := s.GetTask(ctx, t.ID)
	if err != nil {
		return nil, err
	}

	s.normalize(t)
	t.LegacyID = old.LegacyID

	issues := t.Validate()

	all, err := s.listTasks(ctx)
	if err != nil {
		return nil, err
	}
	issues = append(issues, graph.ValidateReferences(t.Dependency, t.ID, all)...)
	if types.Blocking(issues) {
		return issues, ErrValidation
	}
	if graph.HasCycle(t.ID, t.Dependency, all) {
		return issues, fmt.Errorf("dependency cycle detected for %s", t.ID)
	}

	// Done-gate: unchecked acceptance criteria block the transition.
	if old.Status != types.StatusDone {
		if unchecked, ok := schedule.CheckDoneGate(t, t.Status); !ok {
			return issues, fmt.Errorf("cannot mark %s done: %d acceptance criteria unchecked", t.ID, unchecked)
		}
	}

	now := s.now()
	t.DateHistory = history.AppendIfChanged(old.DateHistory, old.DueDate, t.DueDate, dateChangeReason, false, now)

	_, err = s.db.ExecContext(ctx, `
		UPDATE tasks SET
			team = ?, project = ?, purpose = ?, title = ?, owner = ?,
			issue_date = ?, start_date = ?, due_date = ?, duration = ?,
			status = ?, priority = ?, dependency = ?, date_history = ?,
			is_checkpoint = ?, issue_pool = ?, acceptance_criteria = ?,
			notes = ?, verification = ?, reviewer = ?,
			parent_id = ?, node_type = ?, sort_order = ?, updated_at = ?
		WHERE id = ?
	`, t.Team, t.Project, t.Purpose, t.Title, t.Owner,
		t.IssueDate, t.StartDate, t.DueDate, t.Duration,
		string(t.Status), string(t.Priority), t.Dependency, history.Encode(t.DateHistory),
		boolInt(t.IsCheckpoint), boolInt(t.IssuePool), t.AcceptanceCriteria,
		t.Notes, t.Verification, t.Reviewer,
		t.ParentID, string(t.NodeType), t.SortOrder, now, t.ID)
	if err != nil {
		return issues, fmt.Errorf("failed to update task %s: %w", t.ID, err)
	}

	if old.Status != t.Status {
		s.recordEvent(ctx, t.ID, types.EventStatusChanged, actor, string(old.Status), string(t.Status))
	}
	if old.DueDate != t.DueDate {
		s.recordEvent(ctx, t.ID, types.EventDateChanged, actor, old.DueDate, t.DueDate)
	}
	s.recordEvent(ctx, t.ID, types.EventUpdated, actor, "", "")

	return issues, nil
}

// SetStatus is the quick status toggle. The Done-gate applies here just
// like on full edits.
func (s *SQLiteStorage) SetStatus(ctx context.Context, id string, status types.Status, actor string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !status.IsValid() {
		return fmt.Errorf("invalid status: %s", status)
	}

	t, err := s.GetTask(ctx, id)
	if err != nil {
		return err
	}
	if t.Status == status {
		return nil
	}

	if unchecked, ok := schedule.CheckDoneGate(t, status); !ok {
		return fmt.Errorf("cannot mark %s done: %d acceptance criteria unchecked", id, unchecked)
	}

	_, err = s.db.ExecContext(ctx,
		"UPDATE tasks SET status = ?, updated_at = ? WHERE id = ?",
		string(status), s.now(), id)
	if err != nil {
		return fmt.Errorf("failed to set status on %s: %w", id, err)
	}

	s.recordEvent(ctx, id, types.EventStatusChanged, actor, string(t.Status), string(status))
	return nil
}

// DeleteTask removes a task from the active set. Its audit events are
// retained.
func (s *SQLiteStorage) DeleteTask(ctx context.Context, id, actor string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete task %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("task not found: %s", id)
	}

	s.recordEvent(ctx, id, types.EventDeleted, actor, "", "")
	return nil
}

// normalize applies the required entry-point normalization before any
// derived computation: heterogeneous date encodings to YYYY-MM-DD and
// the duration >= 1 clamp.
func (s *SQLiteStorage) normalize(t *types.Task) {
	t.DueDate = dates.Normalize(t.DueDate)
	t.IssueDate = dates.Normalize(t.IssueDate)
	t.StartDate = dates.Normalize(t.StartDate)
	t.Duration = schedule.ClampDuration(t.Duration)
	if t.Status == "" {
		t.Status = types.StatusTodo
	}
	if t.Priority == "" {
		t.Priority = types.PriorityMedium
	}
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func (s *SQLiteStorage) scanTask(row scanner) (*types.Task, error) {
	var t types.Task
	var status, priority, nodeType, rawHistory string
	var isCheckpoint, issuePool int

	err := row.Scan(&t.ID, &t.LegacyID, &t.Team, &t.Project, &t.Purpose, &t.Title, &t.Owner,
		&t.IssueDate, &t.StartDate, &t.DueDate, &t.Duration, &status, &priority,
		&t.Dependency, &rawHistory, &isCheckpoint, &issuePool,
		&t.AcceptanceCriteria, &t.Notes, &t.Verification, &t.Reviewer,
		&t.ParentID, &nodeType, &t.SortOrder)
	if err != nil {
		return nil, err
	}

	t.Status = types.Status(status)
	t.Priority = types.Priority(priority)
	t.NodeType = types.NodeType(nodeType)
	t.IsCheckpoint = isCheckpoint != 0
	t.IssuePool = issuePool != 0

	// Tolerant parse: corrupted legacy history degrades to an empty
	// sequence and is reseeded from the current due date.
	parsed := history.Parse(rawHistory)
	t.DateHistory = history.Seed(parsed.Entries, t.DueDate, s.now())

	return &t, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
