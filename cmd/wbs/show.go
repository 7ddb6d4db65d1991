package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jamesclu/wbs/internal/graph"
	"github.com/jamesclu/wbs/internal/schedule"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one task in detail, including its due-date history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := store.GetTask(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		bold := color.New(color.Bold).SprintFunc()
		gray := color.New(color.FgHiBlack).SprintFunc()

		fmt.Printf("\n%s  %s\n\n", bold(t.ID), t.Title)
		if t.LegacyID != "" {
			fmt.Printf("  Legacy ID:  %s\n", gray(t.LegacyID))
		}
		fmt.Printf("  Team:       %s / %s\n", t.Team, t.Project)
		fmt.Printf("  Owner:      %s\n", t.Owner)
		fmt.Printf("  Status:     %s (%s)\n", t.Status, schedule.BadgeFor(t, today()))
		fmt.Printf("  Priority:   %s\n", t.Priority)
		fmt.Printf("  Due:        %s (start %s, %d days)\n",
			t.DueDate, schedule.StartDate(t.DueDate, t.Duration), t.Duration)

		if deps := graph.ParseList(t.Dependency); len(deps) > 0 {
			fmt.Printf("  Blocked by: %v\n", deps)
		}

		if items, _ := schedule.ParseAcceptanceCriteria(t.AcceptanceCriteria); len(items) > 0 {
			fmt.Println("  Acceptance criteria:")
			for _, item := range items {
				box := "[ ]"
				if item.Checked {
					box = "[x]"
				}
				fmt.Printf("    %s %s\n", box, item.Content)
			}
		}

		if len(t.DateHistory) > 0 {
			fmt.Println("  Due-date history:")
			for _, h := range t.DateHistory {
				fmt.Printf("    v%-3d %s  %s %s\n",
					h.Version, h.Date, h.Reason, gray(h.ChangedAt.Format("2006-01-02 15:04")))
			}
		}

		events, err := store.GetEvents(cmd.Context(), t.ID, 10)
		if err == nil && len(events) > 0 {
			fmt.Println("  Recent events:")
			for _, e := range events {
				fmt.Printf("    %s %s %s\n",
					gray(e.CreatedAt.Format("2006-01-02 15:04")), e.EventType, e.Actor)
			}
		}
		fmt.Println()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
