package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jamesclu/wbs/internal/storage"
	"github.com/jamesclu/wbs/internal/types"
)

var addFlags struct {
	team       string
	project    string
	owner      string
	due        string
	issueDate  string
	duration   int
	priority   string
	dependency string
	parent     string
	nodeType   string
}

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create a task; its structured ID is assigned here, once",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t := &types.Task{
			Title:      args[0],
			Team:       addFlags.team,
			Project:    addFlags.project,
			Owner:      addFlags.owner,
			DueDate:    addFlags.due,
			IssueDate:  addFlags.issueDate,
			Duration:   addFlags.duration,
			Priority:   types.Priority(addFlags.priority),
			Dependency: addFlags.dependency,
			ParentID:   addFlags.parent,
			NodeType:   types.NodeType(addFlags.nodeType),
			Status:     types.StatusTodo,
		}

		issues, err := store.CreateTask(cmd.Context(), t, cfg.Actor)
		printIssues(issues)
		if err != nil {
			return exitValidation(err)
		}

		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s created %s\n", green("✓"), t.ID)
		return nil
	},
}

// printIssues shows every validation finding at once; the write is only
// blocked when one of them is blocking.
func printIssues(issues []types.ValidationIssue) {
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	for _, issue := range issues {
		if issue.Severity == types.SeverityBlocking {
			fmt.Printf("%s %s\n", red("✗"), issue.Message)
		} else {
			fmt.Printf("%s %s\n", yellow("!"), issue.Message)
		}
	}
}

// exitValidation converts a blocked write into a terse error after the
// detail has been printed.
func exitValidation(err error) error {
	if storage.IsValidation(err) {
		return fmt.Errorf("validation failed, nothing saved")
	}
	return err
}

func init() {
	addCmd.Flags().StringVar(&addFlags.team, "team", "", "team name (maps to the ID department code)")
	addCmd.Flags().StringVar(&addFlags.project, "project", "", "project name")
	addCmd.Flags().StringVar(&addFlags.owner, "owner", "", "task owner")
	addCmd.Flags().StringVar(&addFlags.due, "due", "", "due date (YYYY-MM-DD)")
	addCmd.Flags().StringVar(&addFlags.issueDate, "issued", "", "issue date (YYYY-MM-DD), groups the ID sequence")
	addCmd.Flags().IntVar(&addFlags.duration, "duration", 1, "working days before the due date")
	addCmd.Flags().StringVar(&addFlags.priority, "priority", "Medium", "Low, Medium, or High")
	addCmd.Flags().StringVar(&addFlags.dependency, "deps", "", "comma-joined blocking task IDs")
	addCmd.Flags().StringVar(&addFlags.parent, "parent", "", "WBS parent task ID")
	addCmd.Flags().StringVar(&addFlags.nodeType, "type", "", "WBS node type (epic, story, task, independent)")
	rootCmd.AddCommand(addCmd)
}
