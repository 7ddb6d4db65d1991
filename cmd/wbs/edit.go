package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jamesclu/wbs/internal/types"
)

var editFlags struct {
	title      string
	owner      string
	due        string
	dueReason  string
	duration   int
	status     string
	priority   string
	dependency string
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a task; a due-date change appends to its history ledger",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := store.GetTask(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("title") {
			t.Title = editFlags.title
		}
		if cmd.Flags().Changed("owner") {
			t.Owner = editFlags.owner
		}
		if cmd.Flags().Changed("due") {
			t.DueDate = editFlags.due
		}
		if cmd.Flags().Changed("duration") {
			t.Duration = editFlags.duration
		}
		if cmd.Flags().Changed("status") {
			t.Status = types.Status(editFlags.status)
		}
		if cmd.Flags().Changed("priority") {
			t.Priority = types.Priority(editFlags.priority)
		}
		if cmd.Flags().Changed("deps") {
			t.Dependency = editFlags.dependency
		}

		issues, err := store.UpdateTask(cmd.Context(), t, editFlags.dueReason, cfg.Actor)
		printIssues(issues)
		if err != nil {
			return exitValidation(err)
		}

		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s updated %s (history v%d)\n", green("✓"), t.ID, len(t.DateHistory))
		return nil
	},
}

var doneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a task done, if all acceptance criteria are checked",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := store.SetStatus(cmd.Context(), args[0], types.StatusDone, cfg.Actor); err != nil {
			return err
		}
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s %s done\n", green("✓"), args[0])
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a task from the active set (audit events are kept)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := store.DeleteTask(cmd.Context(), args[0], cfg.Actor); err != nil {
			return err
		}
		fmt.Printf("deleted %s\n", args[0])
		return nil
	},
}

func init() {
	editCmd.Flags().StringVar(&editFlags.title, "title", "", "task title")
	editCmd.Flags().StringVar(&editFlags.owner, "owner", "", "task owner")
	editCmd.Flags().StringVar(&editFlags.due, "due", "", "due date (YYYY-MM-DD)")
	editCmd.Flags().StringVar(&editFlags.dueReason, "reason", "", "reason recorded with a due-date change")
	editCmd.Flags().IntVar(&editFlags.duration, "duration", 0, "working days before the due date")
	editCmd.Flags().StringVar(&editFlags.status, "status", "", "new status")
	editCmd.Flags().StringVar(&editFlags.priority, "priority", "", "Low, Medium, or High")
	editCmd.Flags().StringVar(&editFlags.dependency, "deps", "", "comma-joined blocking task IDs")
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(deleteCmd)
}
