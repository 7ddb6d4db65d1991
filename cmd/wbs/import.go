package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/jamesclu/wbs/internal/types"
)

var importRate float64

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Bulk-create tasks from a JSON export",
	Long: `Import a JSON array of tasks. Import-format IDs (NNN_name) are
converted to canonical structured IDs with the original kept as the
legacy ID. Writes are paced so a remote-backed store is not hammered.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading import file: %w", err)
		}

		var tasks []types.Task
		if err := json.Unmarshal(data, &tasks); err != nil {
			return fmt.Errorf("parsing import file: %w", err)
		}

		limiter := rate.NewLimiter(rate.Limit(importRate), 1)
		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()

		created, failed := 0, 0
		for i := range tasks {
			if err := limiter.Wait(cmd.Context()); err != nil {
				return err
			}

			t := tasks[i]
			issues, err := store.CreateTask(cmd.Context(), &t, cfg.Actor)
			if err != nil {
				failed++
				fmt.Printf("%s %s: %v\n", red("✗"), t.Key(), err)
				printIssues(issues)
				continue
			}
			created++
		}

		fmt.Printf("%s imported %d tasks", green("✓"), created)
		if failed > 0 {
			fmt.Printf(", %d failed", failed)
		}
		fmt.Println()
		return nil
	},
}

func init() {
	importCmd.Flags().Float64Var(&importRate, "rate", 20, "imports per second")
	rootCmd.AddCommand(importCmd)
}
