package main

import (
	"fmt"
	"sync"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jamesclu/wbs/internal/graph"
	"github.com/jamesclu/wbs/internal/types"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the whole task set: fields, references, cycles",
	Long: `Run every write-path check across the stored task set at once:
field validation, dependency reference format and existence, and cycle
detection. Reports every finding, not just the first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tasks, err := store.ListTasks(cmd.Context())
		if err != nil {
			return err
		}

		type finding struct {
			id     string
			issues []types.ValidationIssue
			cycle  bool
		}

		var mu sync.Mutex
		var findings []finding

		// The checks are pure over an immutable snapshot, so they can
		// fan out freely.
		g, _ := errgroup.WithContext(cmd.Context())
		g.SetLimit(8)
		for i := range tasks {
			t := tasks[i]
			g.Go(func() error {
				issues := t.Validate()
				issues = append(issues, graph.ValidateReferences(t.Dependency, t.ID, tasks)...)
				cycle := graph.HasCycle(t.ID, t.Dependency, tasks)
				if len(issues) == 0 && !cycle {
					return nil
				}
				mu.Lock()
				findings = append(findings, finding{id: t.ID, issues: issues, cycle: cycle})
				mu.Unlock()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		if len(findings) == 0 {
			green := color.New(color.FgGreen).SprintFunc()
			fmt.Printf("%s %d tasks, no findings\n", green("✓"), len(tasks))
			return nil
		}

		red := color.New(color.FgRed).SprintFunc()
		blocking := 0
		for _, f := range findings {
			fmt.Printf("%s:\n", f.id)
			printIssues(f.issues)
			if types.Blocking(f.issues) {
				blocking++
			}
			if f.cycle {
				fmt.Printf("%s dependency cycle\n", red("✗"))
				blocking++
			}
		}
		if blocking > 0 {
			return fmt.Errorf("%d tasks with blocking findings", blocking)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
