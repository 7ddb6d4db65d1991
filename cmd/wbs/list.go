package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jamesclu/wbs/internal/schedule"
	"github.com/jamesclu/wbs/internal/types"
)

var listStatus string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks with derived schedule state",
	RunE: func(cmd *cobra.Command, args []string) error {
		tasks, err := store.ListTasks(cmd.Context())
		if err != nil {
			return err
		}

		ref := today()
		gray := color.New(color.FgHiBlack).SprintFunc()

		shown := 0
		for i := range tasks {
			t := &tasks[i]
			if listStatus != "" && string(t.Status) != listStatus {
				continue
			}
			printTaskRow(t, ref)
			shown++
		}
		if shown == 0 {
			fmt.Println(gray("No tasks."))
		}
		return nil
	},
}

func printTaskRow(t *types.Task, ref string) {
	badge := schedule.BadgeFor(t, ref)
	highlight := schedule.RowHighlight(t, cfg.HighlightUrgent, ref)

	paint := color.New(color.FgHiBlack).SprintFunc()
	switch {
	case highlight == schedule.HighlightOverdue:
		paint = color.New(color.FgRed).SprintFunc()
	case highlight == schedule.HighlightShouldStart:
		paint = color.New(color.FgYellow).SprintFunc()
	case badge == schedule.BadgeInProgress:
		paint = color.New(color.FgBlue).SprintFunc()
	case badge == schedule.BadgeDone:
		paint = color.New(color.FgGreen).SprintFunc()
	}

	start := schedule.StartDate(t.DueDate, t.Duration)
	fmt.Printf("%-18s %-14s %-10s %-10s %-12s %s\n",
		t.ID, paint(string(badge)), start, t.DueDate, t.Owner, t.Title)
}

func init() {
	listCmd.Flags().StringVar(&listStatus, "status", "", "filter by status")
	rootCmd.AddCommand(listCmd)
}
