package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jamesclu/wbs/internal/tree"
	"github.com/jamesclu/wbs/internal/types"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Show the WBS containment forest",
	RunE: func(cmd *cobra.Command, args []string) error {
		tasks, err := store.ListTasks(cmd.Context())
		if err != nil {
			return err
		}

		forest := tree.BuildForest(tasks)
		for _, root := range forest.Roots {
			printNode(root)
		}
		if len(forest.Independent) > 0 {
			gray := color.New(color.FgHiBlack).SprintFunc()
			fmt.Println(gray("Independent:"))
			for _, n := range forest.Independent {
				printNode(n)
			}
		}
		return nil
	},
}

func printNode(n *tree.Node) {
	indent := strings.Repeat("  ", n.Level)
	label := string(n.NodeType)
	if label == "" {
		label = "task"
	}
	fmt.Printf("%s%s [%s] %s\n", indent, n.ID, label, n.Title)
	for _, c := range n.Children {
		printNode(c)
	}
}

var moveCmd = &cobra.Command{
	Use:   "move <id> <new-parent-id>",
	Short: "Re-parent a task in the WBS tree (cycle-safe)",
	Long: `Move a task under a new parent. An empty parent ("") moves it to the
root. The move is rejected if the new parent is the task itself or any
descendant of it.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := store.MoveTask(cmd.Context(), args[0], args[1], moveSortOrder, cfg.Actor); err != nil {
			return err
		}
		fmt.Printf("moved %s under %q\n", args[0], args[1])
		return nil
	},
}

var moveSortOrder int

var reorderCmd = &cobra.Command{
	Use:   "reorder <id> <up|down>",
	Short: "Swap a task with its neighboring sibling",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		var dir tree.Direction
		switch args[1] {
		case "up":
			dir = tree.Up
		case "down":
			dir = tree.Down
		default:
			return fmt.Errorf("direction must be up or down, got %q", args[1])
		}

		t, err := store.GetTask(cmd.Context(), id)
		if err != nil {
			return err
		}
		tasks, err := store.ListTasks(cmd.Context())
		if err != nil {
			return err
		}

		siblings := siblingOrder(tasks, t.ParentID)
		next := tree.Reorder(siblings, id, dir)
		if equalOrder(siblings, next) {
			fmt.Println("already at the boundary, nothing to do")
			return nil
		}
		return store.ReorderSiblings(cmd.Context(), t.ParentID, next, cfg.Actor)
	},
}

// siblingOrder returns the IDs under parentID in their current sort
// order.
func siblingOrder(tasks []types.Task, parentID string) []string {
	var siblings []types.Task
	for _, t := range tasks {
		if t.ParentID == parentID {
			siblings = append(siblings, t)
		}
	}
	sort.SliceStable(siblings, func(i, j int) bool {
		return siblings[i].SortOrder < siblings[j].SortOrder
	})

	ids := make([]string, len(siblings))
	for i, t := range siblings {
		ids[i] = t.ID
	}
	return ids
}

func equalOrder(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func init() {
	moveCmd.Flags().IntVar(&moveSortOrder, "order", 0, "sort position under the new parent")
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(reorderCmd)
}
