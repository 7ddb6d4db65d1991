package graph

import (
	"fmt"
	"strings"
	"testing"

	"github.com/jamesclu/wbs/internal/types"
)

func taskSet(deps map[string]string) []types.Task {
	tasks := make([]types.Task, 0, len(deps))
	for id, dep := range deps {
		tasks = append(tasks, types.Task{ID: id, Dependency: dep})
	}
	return tasks
}

func TestParseList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{"A", []string{"A"}},
		{"A, B ,C", []string{"A", "B", "C"}},
		{"A,,B,", []string{"A", "B"}},
	}
	for _, tt := range tests {
		got := ParseList(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("ParseList(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("ParseList(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func TestValidID(t *testing.T) {
	valid := []string{"SOFT-2025-12-0001", "QA-2025-01-0042", "123456", "7", "016_vacuum_pump_ctl", "003_x"}
	for _, id := range valid {
		if !ValidID(id) {
			t.Errorf("ValidID(%q) = false, want true", id)
		}
	}
	invalid := []string{"", "soft-2025-12-0001", "SOFT-25-12-0001", "16_too_short_prefix", "TASK 12", "A-B-C"}
	for _, id := range invalid {
		if ValidID(id) {
			t.Errorf("ValidID(%q) = true, want false", id)
		}
	}
}

func TestValidateReferences(t *testing.T) {
	tasks := taskSet(map[string]string{
		"SOFT-2025-12-0001": "",
		"SOFT-2025-12-0002": "",
		"123456":            "",
	})

	t.Run("empty is fine", func(t *testing.T) {
		if issues := ValidateReferences("", "X", tasks); issues != nil {
			t.Errorf("expected no issues, got %v", types.Messages(issues))
		}
	})

	t.Run("valid references", func(t *testing.T) {
		issues := ValidateReferences("SOFT-2025-12-0001, 123456", "SOFT-2025-12-0002", tasks)
		if len(issues) != 0 {
			t.Errorf("expected no issues, got %v", types.Messages(issues))
		}
	})

	t.Run("over the dependency cap", func(t *testing.T) {
		var ids []string
		for i := 0; i < MaxDependencies+1; i++ {
			ids = append(ids, fmt.Sprintf("%d", i+1))
		}
		issues := ValidateReferences(strings.Join(ids, ","), "X", tasks)
		if !types.Blocking(issues) {
			t.Fatal("expected blocking issue for exceeding the cap")
		}
		if len(issues) != 1 {
			t.Errorf("cap check should short-circuit to one issue, got %d", len(issues))
		}
	})

	t.Run("at the cap is allowed", func(t *testing.T) {
		var ids []string
		for i := 0; i < MaxDependencies; i++ {
			ids = append(ids, fmt.Sprintf("%d", i+1))
		}
		issues := ValidateReferences(strings.Join(ids, ","), "X", tasks)
		if types.Blocking(issues) {
			t.Errorf("ten dependencies should not block: %v", types.Messages(issues))
		}
	})

	t.Run("bad format blocks", func(t *testing.T) {
		issues := ValidateReferences("not a real id", "X", tasks)
		if !types.Blocking(issues) {
			t.Error("expected blocking issue for malformed ID")
		}
	})

	t.Run("self dependency blocks", func(t *testing.T) {
		issues := ValidateReferences("SOFT-2025-12-0001", "SOFT-2025-12-0001", tasks)
		if !types.Blocking(issues) {
			t.Error("expected blocking issue for self dependency")
		}
	})

	t.Run("missing task only warns", func(t *testing.T) {
		issues := ValidateReferences("SOFT-2099-01-0001", "X", tasks)
		if len(issues) != 1 {
			t.Fatalf("expected one issue, got %v", types.Messages(issues))
		}
		if issues[0].Severity != types.SeverityWarning {
			t.Errorf("missing reference should warn, got %s", issues[0].Severity)
		}
	})

	t.Run("mixed findings accumulate", func(t *testing.T) {
		issues := ValidateReferences("bad id, SOFT-2099-01-0001, X", "X", tasks)
		if len(issues) != 3 {
			t.Errorf("expected 3 issues, got %v", types.Messages(issues))
		}
	})
}

func TestHasCycle(t *testing.T) {
	tests := []struct {
		name   string
		deps   map[string]string
		taskID string
		newDep string
		want   bool
	}{
		{
			"direct cycle",
			map[string]string{"A": "", "B": "A"},
			"A", "B", true,
		},
		{
			"transitive chain cycle",
			map[string]string{"A": "", "B": "A", "C": "B"},
			"A", "C", true,
		},
		{
			"no cycle in a chain",
			map[string]string{"A": "", "B": "A", "C": "B"},
			"D", "C", false,
		},
		{
			"diamond is not a cycle",
			map[string]string{"A": "", "B": "A", "C": "A", "D": "B,C"},
			"E", "D", false,
		},
		{
			"dangling reference is not a cycle",
			map[string]string{"A": ""},
			"A", "MISSING", false,
		},
		{
			"empty dependency never cycles",
			map[string]string{"A": "B", "B": ""},
			"A", "", false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasCycle(tt.taskID, tt.newDep, taskSet(tt.deps)); got != tt.want {
				t.Errorf("HasCycle(%q, %q) = %v, want %v", tt.taskID, tt.newDep, got, tt.want)
			}
		})
	}
}

func TestHasCycleTerminatesOnCorruptData(t *testing.T) {
	// A pre-existing cycle elsewhere in the stored data must not hang
	// the check for an unrelated task.
	deps := map[string]string{"P": "Q", "Q": "P", "X": ""}
	if HasCycle("Y", "P", taskSet(deps)) {
		t.Error("unrelated task trapped by a pre-existing cycle")
	}
}

func TestReachesBounded(t *testing.T) {
	// Long chain beyond the step cap: reachability past the cap is not
	// detected, which is the accepted trade-off for bounded traversal.
	next := func(id string) []string {
		var n int
		fmt.Sscanf(id, "n%d", &n)
		if n >= 500 {
			return nil
		}
		return []string{fmt.Sprintf("n%d", n+1)}
	}
	if !Reaches("n0", "n50", next, MaxTraversalSteps) {
		t.Error("target within the bound should be reachable")
	}
	if Reaches("n0", "n400", next, MaxTraversalSteps) {
		t.Error("target beyond the bound should not be reported reachable")
	}
}
