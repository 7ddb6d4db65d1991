// Package snapshot reconciles two independently-edited exports of the
// task set into a diff report: the baseline snapshot taken earlier, and
// the current set. Used for periodic (weekly) status reporting.
package snapshot

import (
	"github.com/jamesclu/wbs/internal/types"
)

// StatusChange records a status transition between snapshots.
type StatusChange struct {
	Task      types.Task   `json:"task"`
	OldStatus types.Status `json:"oldStatus"`
	NewStatus types.Status `json:"newStatus"`
}

// DateChange records a due-date change between snapshots.
type DateChange struct {
	Task    types.Task `json:"task"`
	OldDate string     `json:"oldDate"`
	NewDate string     `json:"newDate"`
}

// Report is the classified difference between two snapshots.
// A task can appear in both StatusChanged and DateChanged; those buckets
// are not mutually exclusive. Completed wins over StatusChanged.
type Report struct {
	SnapshotDate  string         `json:"snapshotDate"`
	ReportDate    string         `json:"reportDate"`
	Added         []types.Task   `json:"added"`
	Removed       []types.Task   `json:"removed"`
	Completed     []types.Task   `json:"completed"`
	StatusChanged []StatusChange `json:"statusChanged"`
	DateChanged   []DateChange   `json:"dateChanged"`
	Delayed       []types.Task   `json:"delayed"`
}

// Diff compares a baseline snapshot against the current task set.
// reportDate is the comparison's "today": delayed classification is
// computed against it over the new snapshot only. Output ordering follows
// input ordering, so identical inputs produce identical reports.
func Diff(oldTasks, newTasks []types.Task, reportDate string) *Report {
	oldByID := make(map[string]*types.Task, len(oldTasks))
	for i := range oldTasks {
		oldByID[oldTasks[i].Key()] = &oldTasks[i]
	}
	newByID := make(map[string]*types.Task, len(newTasks))
	for i := range newTasks {
		newByID[newTasks[i].Key()] = &newTasks[i]
	}

	r := &Report{
		SnapshotDate: snapshotDateOf(oldTasks),
		ReportDate:   reportDate,
	}

	// Added: present in new, absent in old. Iterate the slice, not the
	// map, to keep the report deterministic.
	for _, t := range newTasks {
		if _, ok := oldByID[t.Key()]; !ok {
			r.Added = append(r.Added, t)
		}
	}

	// Removed: present in old, absent in new.
	for _, t := range oldTasks {
		if _, ok := newByID[t.Key()]; !ok {
			r.Removed = append(r.Removed, t)
		}
	}

	for _, newTask := range newTasks {
		oldTask, ok := oldByID[newTask.Key()]
		if !ok {
			continue
		}

		oldStatus := statusOf(oldTask)
		newStatus := statusOf(&newTask)

		switch {
		case !oldStatus.IsFinished() && newStatus.IsFinished():
			r.Completed = append(r.Completed, newTask)
		case oldStatus != newStatus:
			r.StatusChanged = append(r.StatusChanged, StatusChange{
				Task:      newTask,
				OldStatus: oldStatus,
				NewStatus: newStatus,
			})
		}

		// Date changes are tracked independently of status changes.
		if oldTask.DueDate != newTask.DueDate {
			r.DateChanged = append(r.DateChanged, DateChange{
				Task:    newTask,
				OldDate: oldTask.DueDate,
				NewDate: newTask.DueDate,
			})
		}
	}

	// Delayed: due date strictly before the report date and not finished,
	// over the new snapshot only.
	for _, t := range newTasks {
		if t.DueDate != "" && t.DueDate < reportDate && !statusOf(&t).IsFinished() {
			r.Delayed = append(r.Delayed, t)
		}
	}

	return r
}

// snapshotDateOf extracts the marker field stamped on exported baselines.
func snapshotDateOf(tasks []types.Task) string {
	for _, t := range tasks {
		if t.SnapshotDate != "" {
			return t.SnapshotDate
		}
	}
	return "unknown"
}

// statusOf defaults missing statuses to Todo, matching how imported
// snapshot rows with a blank status column behave.
func statusOf(t *types.Task) types.Status {
	if t.Status == "" {
		return types.StatusTodo
	}
	return t.Status
}
