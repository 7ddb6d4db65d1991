// Package tree maintains the WBS containment forest: parent/child
// relationships, sibling ordering, and re-parent safety. The containment
// tree is structurally distinct from the dependency graph — a task may
// depend on a task it is not nested under — so the two are validated by
// separate code, sharing only the generic bounded traversal from the
// graph package.
package tree

import (
	"fmt"
	"sort"

	"github.com/jamesclu/wbs/internal/graph"
	"github.com/jamesclu/wbs/internal/types"
)

// MaxDepth caps upward walks so corrupted parent chains cannot loop.
const MaxDepth = 100

// Node is a task with its resolved children.
type Node struct {
	types.Task
	Children []*Node `json:"children,omitempty"`
}

// Forest is the resolved containment structure: rooted trees plus the
// bucket of independent tasks that never joined one.
type Forest struct {
	Roots       []*Node `json:"tree"`
	Independent []*Node `json:"independent"`
}

// WouldCreateCycle reports whether re-parenting movingID under
// newParentID would make the task its own ancestor. The walk goes upward
// from the candidate parent through the existing parent chain; reaching
// movingID means newParentID sits inside movingID's subtree. An empty
// newParentID (move to root) is always safe.
func WouldCreateCycle(movingID, newParentID string, tasks []types.Task) bool {
	if newParentID == "" {
		return false
	}
	if newParentID == movingID {
		return true
	}

	parentOf := make(map[string]string, len(tasks))
	for _, t := range tasks {
		parentOf[t.ID] = t.ParentID
	}

	next := func(id string) []string {
		p := parentOf[id]
		if p == "" {
			return nil
		}
		return []string{p}
	}
	return graph.Reaches(newParentID, movingID, next, MaxDepth)
}

// Direction is a sibling reorder direction.
type Direction int

const (
	Up Direction = iota
	Down
)

// Reorder swaps movedID with its immediate neighbor in the given
// direction and returns the new sibling order. At either boundary, or if
// movedID is not among the siblings, the input order is returned
// unchanged. The input slice is never mutated.
func Reorder(siblings []string, movedID string, dir Direction) []string {
	idx := -1
	for i, id := range siblings {
		if id == movedID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return siblings
	}

	swap := idx - 1
	if dir == Down {
		swap = idx + 1
	}
	if swap < 0 || swap >= len(siblings) {
		return siblings
	}

	out := make([]string, len(siblings))
	copy(out, siblings)
	out[idx], out[swap] = out[swap], out[idx]
	return out
}

// Move validates a re-parent operation against the task set. It does not
// apply the move; storage does that after this returns nil.
func Move(movingID, newParentID string, tasks []types.Task) error {
	found := false
	parentFound := newParentID == ""
	for _, t := range tasks {
		if t.ID == movingID {
			found = true
		}
		if t.ID == newParentID {
			parentFound = true
		}
	}
	if !found {
		return fmt.Errorf("task not found: %s", movingID)
	}
	if !parentFound {
		return fmt.Errorf("parent task not found: %s", newParentID)
	}
	if WouldCreateCycle(movingID, newParentID, tasks) {
		return fmt.Errorf("cannot move %s under %s: would create a tree cycle", movingID, newParentID)
	}
	return nil
}

// BuildForest resolves the flat task list into rooted trees ordered by
// SortOrder, computing each node's depth. Tasks with an empty ParentID go
// to Roots, or to Independent when typed as such. A task whose parent is
// missing from the set is treated as independent rather than dropped.
func BuildForest(tasks []types.Task) *Forest {
	byID := make(map[string]*Node, len(tasks))
	for i := range tasks {
		byID[tasks[i].ID] = &Node{Task: tasks[i]}
	}

	f := &Forest{}
	for _, t := range tasks {
		node := byID[t.ID]
		switch {
		case t.ParentID == "" && (t.NodeType == types.NodeIndependent || t.NodeType == ""):
			f.Independent = append(f.Independent, node)
		case t.ParentID == "":
			f.Roots = append(f.Roots, node)
		default:
			parent, ok := byID[t.ParentID]
			if !ok {
				f.Independent = append(f.Independent, node)
				continue
			}
			parent.Children = append(parent.Children, node)
		}
	}

	sortNodes(f.Roots)
	sortNodes(f.Independent)
	for _, root := range f.Roots {
		sortChildren(root)
		setLevels(root, 0)
	}
	for _, n := range f.Independent {
		sortChildren(n)
		setLevels(n, 0)
	}
	return f
}

func sortNodes(nodes []*Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].SortOrder < nodes[j].SortOrder
	})
}

func sortChildren(n *Node) {
	sortNodes(n.Children)
	for _, c := range n.Children {
		sortChildren(c)
	}
}

func setLevels(n *Node, depth int) {
	n.Level = depth
	for _, c := range n.Children {
		setLevels(c, depth+1)
	}
}
