// Package repl provides the interactive shell for browsing and toggling
// tasks without round-tripping through the CLI.
package repl

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/jamesclu/wbs/internal/dates"
	"github.com/jamesclu/wbs/internal/schedule"
	"github.com/jamesclu/wbs/internal/storage"
	"github.com/jamesclu/wbs/internal/types"
)

// REPL represents the interactive shell
type REPL struct {
	store    storage.Storage
	rl       *readline.Instance
	ctx      context.Context
	actor    string
	today    string
	commands map[string]CommandHandler
}

// CommandHandler handles a specific command
type CommandHandler func(args []string) error

// Config holds REPL configuration
type Config struct {
	Store storage.Storage
	Actor string
	// Today overrides the reference date for badge classification.
	// Empty uses the local date.
	Today string
}

// New creates a new REPL instance
func New(cfg *Config) (*REPL, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("storage is required")
	}

	actor := cfg.Actor
	if actor == "" {
		actor = "user"
	}
	today := cfg.Today
	if today == "" {
		today = dates.Today(nil)
	}

	r := &REPL{
		store:    cfg.Store,
		actor:    actor,
		today:    today,
		commands: make(map[string]CommandHandler),
	}
	r.registerCommands()

	return r, nil
}

// Run starts the REPL loop
func (r *REPL) Run(ctx context.Context) error {
	r.ctx = ctx

	cyan := color.New(color.FgCyan).SprintFunc()
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            cyan("wbs> "),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()
	r.rl = rl

	r.printWelcome()

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			} else if err == io.EOF {
				fmt.Println("\nGoodbye!")
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if err := r.processInput(line); err != nil {
			if err == io.EOF {
				return nil
			}
			red := color.New(color.FgRed).SprintFunc()
			fmt.Printf("%s %v\n", red("Error:"), err)
		}
	}
}

func (r *REPL) processInput(line string) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil
	}

	if handler, ok := r.commands[parts[0]]; ok {
		return handler(parts[1:])
	}

	yellow := color.New(color.FgYellow).SprintFunc()
	fmt.Printf("%s Unknown command %q. Use 'help' for available commands.\n", yellow("Note:"), parts[0])
	return nil
}

func (r *REPL) registerCommands() {
	r.commands["help"] = r.cmdHelp
	r.commands["?"] = r.cmdHelp
	r.commands["list"] = r.cmdList
	r.commands["ls"] = r.cmdList
	r.commands["show"] = r.cmdShow
	r.commands["done"] = r.cmdDone
	r.commands["status"] = r.cmdStatus
	r.commands["exit"] = r.cmdExit
	r.commands["quit"] = r.cmdExit
}

func (r *REPL) printWelcome() {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	fmt.Printf("\n%s\n", cyan("WBS task tracker"))
	fmt.Println("Type 'help' for available commands, 'exit' to quit")
	fmt.Println()
}

func (r *REPL) cmdHelp(args []string) error {
	green := color.New(color.FgGreen).SprintFunc()
	fmt.Println()
	for _, cmd := range []struct{ name, desc string }{
		{"list, ls", "List tasks with schedule badges"},
		{"show <id>", "Show one task in detail"},
		{"done <id>", "Mark a task done (acceptance criteria permitting)"},
		{"status <id> <status>", "Set a task's status"},
		{"help, ?", "Show this help message"},
		{"exit, quit", "Exit the shell"},
	} {
		fmt.Printf("  %-22s %s\n", green(cmd.name), cmd.desc)
	}
	fmt.Println()
	return nil
}

func (r *REPL) cmdList(args []string) error {
	tasks, err := r.store.ListTasks(r.ctx)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		fmt.Println("No tasks.")
		return nil
	}
	for i := range tasks {
		printTaskLine(&tasks[i], r.today)
	}
	return nil
}

func (r *REPL) cmdShow(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: show <id>")
	}
	t, err := r.store.GetTask(r.ctx, args[0])
	if err != nil {
		return err
	}

	bold := color.New(color.Bold).SprintFunc()
	fmt.Printf("\n%s %s\n", bold(t.ID), t.Title)
	fmt.Printf("  Owner:    %s\n", t.Owner)
	fmt.Printf("  Status:   %s (%s)\n", t.Status, schedule.BadgeFor(t, r.today))
	fmt.Printf("  Due:      %s (start %s, %d days)\n",
		t.DueDate, schedule.StartDate(t.DueDate, t.Duration), t.Duration)
	if t.Dependency != "" {
		fmt.Printf("  Blocked by: %s\n", t.Dependency)
	}
	if len(t.DateHistory) > 0 {
		fmt.Println("  Due-date history:")
		for _, h := range t.DateHistory {
			fmt.Printf("    v%d  %s  %s\n", h.Version, h.Date, h.Reason)
		}
	}
	fmt.Println()
	return nil
}

func (r *REPL) cmdDone(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: done <id>")
	}
	return r.store.SetStatus(r.ctx, args[0], types.StatusDone, r.actor)
}

func (r *REPL) cmdStatus(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: status <id> <status>")
	}
	return r.store.SetStatus(r.ctx, args[0], types.Status(args[1]), r.actor)
}

func (r *REPL) cmdExit(args []string) error {
	fmt.Println("Goodbye!")
	return io.EOF
}

func printTaskLine(t *types.Task, today string) {
	badge := schedule.BadgeFor(t, today)

	marker := color.New(color.FgHiBlack).SprintFunc()
	switch badge {
	case schedule.BadgeOverdue, schedule.BadgeDelayed:
		marker = color.New(color.FgRed).SprintFunc()
	case schedule.BadgeShouldStart:
		marker = color.New(color.FgYellow).SprintFunc()
	case schedule.BadgeInProgress:
		marker = color.New(color.FgBlue).SprintFunc()
	case schedule.BadgeDone:
		marker = color.New(color.FgGreen).SprintFunc()
	}

	fmt.Printf("  %-18s %-14s %-10s %s\n", t.ID, marker(string(badge)), t.DueDate, t.Title)
}
