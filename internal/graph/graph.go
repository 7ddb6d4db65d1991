// Package graph validates the cross-task dependency graph: reference
// format and existence checks on the write path, and cycle detection over
// the whole task set. The containment tree is a separate structure with
// its own checks (see the tree package); only the bounded traversal
// helper is shared.
package graph

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jamesclu/wbs/internal/identifier"
	"github.com/jamesclu/wbs/internal/types"
)

// MaxDependencies bounds the number of direct dependencies per task.
const MaxDependencies = 10

// MaxTraversalSteps caps cycle-detection traversal so malformed data can
// never hang a save.
const MaxTraversalSteps = 100

var (
	// legacyID is the opaque all-digit format from the pre-structured era.
	legacyID = regexp.MustCompile(`^\d+$`)
	// importID is the NNN_snake_case format produced by bulk imports.
	importID = regexp.MustCompile(`^\d{3}_[a-zA-Z0-9_]+$`)
)

// ParseList splits a comma-joined dependency string into trimmed,
// non-empty IDs. Duplicates are kept; they are allowed but not
// meaningful.
func ParseList(dep string) []string {
	if strings.TrimSpace(dep) == "" {
		return nil
	}
	var ids []string
	for _, part := range strings.Split(dep, ",") {
		id := strings.TrimSpace(part)
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// ValidID reports whether an ID matches one of the accepted shapes:
// structured DEPT-YYYY-MM-NNNN, legacy all-digits, or the import format.
func ValidID(id string) bool {
	return identifier.StructuredID.MatchString(id) || legacyID.MatchString(id) || importID.MatchString(id)
}

// ValidateReferences checks a dependency string against the task set.
// All findings accumulate into one list so the caller can show every
// problem at once: format errors and self-dependencies block, a missing
// referenced task is only a warning (it may be created later or come from
// another import boundary).
func ValidateReferences(dep, currentTaskID string, tasks []types.Task) []types.ValidationIssue {
	ids := ParseList(dep)
	if len(ids) == 0 {
		return nil
	}

	if len(ids) > MaxDependencies {
		return []types.ValidationIssue{{
			Severity: types.SeverityBlocking,
			Message:  fmt.Sprintf("too many dependencies: %d (max %d)", len(ids), MaxDependencies),
		}}
	}

	byID := indexTasks(tasks)

	var issues []types.ValidationIssue
	for _, id := range ids {
		if !ValidID(id) {
			issues = append(issues, types.ValidationIssue{
				Severity: types.SeverityBlocking,
				Message:  fmt.Sprintf("dependency ID %q is not a recognized format (DEPT-YYYY-MM-NNNN, digits, or NNN_name)", id),
			})
			continue
		}
		if id == currentTaskID {
			issues = append(issues, types.ValidationIssue{
				Severity: types.SeverityBlocking,
				Message:  fmt.Sprintf("task cannot depend on itself (ID: %s)", id),
			})
			continue
		}
		if _, ok := byID[id]; !ok {
			issues = append(issues, types.ValidationIssue{
				Severity: types.SeverityWarning,
				Message:  fmt.Sprintf("dependency task not found: %s", id),
			})
		}
	}
	return issues
}

// HasCycle reports whether declaring depString as taskID's dependencies
// would close a cycle. Each directly-declared dependency is expanded
// breadth-first through the existing graph; reaching taskID again means
// the proposed edge is cyclic. Traversal is bounded so pre-existing
// cycles elsewhere in the data cannot loop forever. The cycle's path is
// not reported, only its existence.
func HasCycle(taskID, depString string, tasks []types.Task) bool {
	direct := ParseList(depString)
	if len(direct) == 0 {
		return false
	}

	byID := indexTasks(tasks)
	next := func(id string) []string {
		t, ok := byID[id]
		if !ok {
			return nil
		}
		return ParseList(t.Dependency)
	}

	for _, depID := range direct {
		if Reaches(depID, taskID, next, MaxTraversalSteps) {
			return true
		}
	}
	return false
}

// Reaches is the generic bounded BFS with a visited set: it reports
// whether target is reachable from start by repeatedly expanding next.
// Shared by the dependency graph and the containment tree, which are
// otherwise deliberately kept apart.
func Reaches(start, target string, next func(string) []string, maxSteps int) bool {
	visited := make(map[string]bool)
	queue := []string{start}
	steps := 0

	for len(queue) > 0 && steps < maxSteps {
		current := queue[0]
		queue = queue[1:]

		if current == target {
			return true
		}
		if visited[current] {
			continue
		}
		visited[current] = true

		queue = append(queue, next(current)...)
		steps++
	}
	return false
}

func indexTasks(tasks []types.Task) map[string]*types.Task {
	byID := make(map[string]*types.Task, len(tasks))
	for i := range tasks {
		byID[tasks[i].ID] = &tasks[i]
	}
	return byID
}
