package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jamesclu/wbs/internal/config"
	"github.com/jamesclu/wbs/internal/dates"
	"github.com/jamesclu/wbs/internal/identifier"
	"github.com/jamesclu/wbs/internal/storage"
)

var (
	cfg   *config.Config
	store storage.Storage

	// todayOverride pins the reference date for badge, highlight, and
	// report computation; reproducible runs depend on it.
	todayOverride string
)

var rootCmd = &cobra.Command{
	Use:   "wbs",
	Short: "WBS task tracker with dependency and schedule integrity checks",
	Long: `wbs tracks a hierarchical (WBS) task set: structured IDs, an
append-only due-date history per task, dependency validation with cycle
detection, derived schedule state, and snapshot diff reports.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		var codes map[string]string
		if cfg.TeamCodesPath != "" {
			codes, err = identifier.LoadTeamCodes(cfg.TeamCodesPath)
			if err != nil {
				return err
			}
		}

		store, err = storage.NewStorage(cmd.Context(), &storage.Config{
			Path:      cfg.DBPath,
			TeamCodes: codes,
		})
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if store != nil {
			_ = store.Close()
		}
	},
}

// today resolves the reference date: the --today flag when given, else
// the current date in the configured timezone.
func today() string {
	if todayOverride != "" {
		return todayOverride
	}
	return dates.Today(cfg.Location())
}

func main() {
	rootCmd.PersistentFlags().StringVar(&todayOverride, "today", "",
		"reference date (YYYY-MM-DD) for schedule classification")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
