package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jamesclu/wbs/internal/snapshot"
	"github.com/jamesclu/wbs/internal/types"
)

var snapshotOut string

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Export the task set as a dated baseline for later diffing",
	RunE: func(cmd *cobra.Command, args []string) error {
		tasks, err := store.ListTasks(cmd.Context())
		if err != nil {
			return err
		}

		ref := today()
		for i := range tasks {
			tasks[i].SnapshotDate = ref
		}

		out := snapshotOut
		if out == "" {
			out = fmt.Sprintf("TaskSnapshot_%s.json", ref)
		}

		data, err := json.MarshalIndent(tasks, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(out, data, 0644); err != nil {
			return fmt.Errorf("writing snapshot: %w", err)
		}

		fmt.Printf("exported %d tasks to %s\n", len(tasks), out)
		return nil
	},
}

var reportCmd = &cobra.Command{
	Use:   "report <snapshot-file>",
	Short: "Diff a baseline snapshot against the current task set",
	Long: `Compare an earlier snapshot export with the stored task set and
print a Markdown report: added, removed, completed, date-changed,
status-changed, and delayed tasks. Identical inputs always produce an
identical report.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading snapshot: %w", err)
		}

		var baseline []types.Task
		if err := json.Unmarshal(data, &baseline); err != nil {
			return fmt.Errorf("parsing snapshot: %w", err)
		}
		if len(baseline) == 0 || baseline[0].SnapshotDate == "" {
			return fmt.Errorf("%s is not a snapshot export (missing _SnapshotDate marker)", args[0])
		}

		current, err := store.ListTasks(cmd.Context())
		if err != nil {
			return err
		}

		diff := snapshot.Diff(baseline, current, today())
		fmt.Print(snapshot.RenderMarkdown(diff))
		return nil
	},
}

func init() {
	snapshotCmd.Flags().StringVarP(&snapshotOut, "out", "o", "", "output file (default TaskSnapshot_<date>.json)")
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(reportCmd)
}
