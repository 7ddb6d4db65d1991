package snapshot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesclu/wbs/internal/types"
)

func TestDiffReportScenario(t *testing.T) {
	oldTasks := []types.Task{
		{ID: "A", Title: "Task A", Status: types.StatusTodo, DueDate: "2025-01-10", SnapshotDate: "2025-01-05"},
	}
	newTasks := []types.Task{
		{ID: "A", Title: "Task A", Status: types.StatusDone, DueDate: "2025-01-10"},
		{ID: "B", Title: "Task B", Status: types.StatusTodo, DueDate: "2025-01-05"},
	}

	r := Diff(oldTasks, newTasks, "2025-01-12")

	assert.Equal(t, "2025-01-05", r.SnapshotDate)
	assert.Equal(t, "2025-01-12", r.ReportDate)

	require.Len(t, r.Added, 1)
	assert.Equal(t, "B", r.Added[0].ID)

	require.Len(t, r.Completed, 1)
	assert.Equal(t, "A", r.Completed[0].ID)

	// A completed task never double-reports as a status change.
	assert.Empty(t, r.StatusChanged)
	assert.Empty(t, r.Removed)
	assert.Empty(t, r.DateChanged)

	// B is past due on the report date; A is finished and exempt.
	require.Len(t, r.Delayed, 1)
	assert.Equal(t, "B", r.Delayed[0].ID)
}

func TestDiffBuckets(t *testing.T) {
	oldTasks := []types.Task{
		{ID: "gone", Status: types.StatusTodo, DueDate: "2025-01-10"},
		{ID: "shift", Status: types.StatusTodo, DueDate: "2025-01-10"},
		{ID: "both", Status: types.StatusTodo, DueDate: "2025-01-10"},
		{ID: "closed", Status: types.StatusInProgress, DueDate: "2025-01-10"},
	}
	newTasks := []types.Task{
		{ID: "shift", Status: types.StatusInProgress, DueDate: "2025-01-10"},
		{ID: "both", Status: types.StatusInProgress, DueDate: "2025-02-01"},
		{ID: "closed", Status: types.StatusClosed, DueDate: "2025-01-10"},
	}

	r := Diff(oldTasks, newTasks, "2025-01-01")

	require.Len(t, r.Removed, 1)
	assert.Equal(t, "gone", r.Removed[0].ID)

	// Closed counts as finishing, same as Done.
	require.Len(t, r.Completed, 1)
	assert.Equal(t, "closed", r.Completed[0].ID)

	require.Len(t, r.StatusChanged, 2)
	assert.Equal(t, types.StatusTodo, r.StatusChanged[0].OldStatus)
	assert.Equal(t, types.StatusInProgress, r.StatusChanged[0].NewStatus)

	// Status and date buckets are not mutually exclusive.
	require.Len(t, r.DateChanged, 1)
	assert.Equal(t, "both", r.DateChanged[0].Task.ID)
	assert.Equal(t, "2025-01-10", r.DateChanged[0].OldDate)
	assert.Equal(t, "2025-02-01", r.DateChanged[0].NewDate)

	assert.Empty(t, r.Added)
	assert.Empty(t, r.Delayed)
}

func TestDiffMatchesOnLegacyKey(t *testing.T) {
	oldTasks := []types.Task{{LegacyID: "123456", Status: types.StatusTodo, DueDate: "2025-06-01"}}
	newTasks := []types.Task{{LegacyID: "123456", Status: types.StatusDone, DueDate: "2025-06-01"}}

	r := Diff(oldTasks, newTasks, "2025-06-02")
	assert.Empty(t, r.Added)
	assert.Empty(t, r.Removed)
	require.Len(t, r.Completed, 1)
}

func TestDiffBlankStatusDefaultsToTodo(t *testing.T) {
	oldTasks := []types.Task{{ID: "A", DueDate: "2025-06-01"}}
	newTasks := []types.Task{{ID: "A", Status: types.StatusDone, DueDate: "2025-06-01"}}

	r := Diff(oldTasks, newTasks, "2025-06-02")
	require.Len(t, r.Completed, 1)
	assert.Empty(t, r.StatusChanged)
}

func TestDiffMissingSnapshotMarker(t *testing.T) {
	r := Diff([]types.Task{{ID: "A", DueDate: "2025-06-01"}}, nil, "2025-06-02")
	assert.Equal(t, "unknown", r.SnapshotDate)
}

func TestDiffDeterministic(t *testing.T) {
	oldTasks := []types.Task{
		{ID: "A", Status: types.StatusTodo, DueDate: "2025-01-01"},
		{ID: "B", Status: types.StatusTodo, DueDate: "2025-01-02"},
		{ID: "C", Status: types.StatusTodo, DueDate: "2025-01-03"},
	}
	newTasks := []types.Task{
		{ID: "D", Status: types.StatusTodo, DueDate: "2025-01-04"},
		{ID: "B", Status: types.StatusDone, DueDate: "2025-01-02"},
		{ID: "E", Status: types.StatusTodo, DueDate: "2025-01-05"},
	}

	first := RenderMarkdown(Diff(oldTasks, newTasks, "2025-01-10"))
	for i := 0; i < 10; i++ {
		if got := RenderMarkdown(Diff(oldTasks, newTasks, "2025-01-10")); got != first {
			t.Fatal("identical inputs produced a different report")
		}
	}

	// Added follows new-snapshot order, removed follows baseline order.
	if strings.Index(first, "| D |") > strings.Index(first, "| E |") {
		t.Error("added section not in input order")
	}
}

func TestRenderMarkdown(t *testing.T) {
	r := &Report{
		SnapshotDate: "2025-01-05",
		ReportDate:   "2025-01-12",
		Added:        []types.Task{{ID: "B", Title: "Wire | harness", Owner: "kimura", DueDate: "2025-01-05"}},
		Completed:    []types.Task{{ID: "A", Title: "Task A", Owner: "mchen"}},
		Delayed:      []types.Task{{ID: "B", Title: "Wire | harness", Owner: "kimura", DueDate: "2025-01-05"}},
	}

	md := RenderMarkdown(r)

	assert.Contains(t, md, "# Weekly Task Report")
	assert.Contains(t, md, "Snapshot date: 2025-01-05 | Report date: 2025-01-12")
	assert.Contains(t, md, "| Added | 1 |")
	assert.Contains(t, md, "## Completed")
	// Pipe in free text must not break the table.
	assert.Contains(t, md, `Wire \| harness`)
	// Seven days late.
	assert.Contains(t, md, "| 2025-01-05 | 7 |")
	// Empty categories render no section.
	assert.NotContains(t, md, "## Removed")
	assert.NotContains(t, md, "## Status Changes")
}
