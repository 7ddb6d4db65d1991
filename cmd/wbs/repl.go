package main

import (
	"github.com/spf13/cobra"

	"github.com/jamesclu/wbs/internal/repl"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive shell for browsing and toggling tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := repl.New(&repl.Config{
			Store: store,
			Actor: cfg.Actor,
			Today: today(),
		})
		if err != nil {
			return err
		}
		return r.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
