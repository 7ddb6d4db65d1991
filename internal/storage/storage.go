// Package storage defines the persistence boundary for the task set.
// The core packages (graph, schedule, history, snapshot, tree) are pure;
// this layer is where their write-path checks are actually enforced
// before anything is committed.
package storage

import (
	"context"
	"errors"

	"github.com/jamesclu/wbs/internal/identifier"
	"github.com/jamesclu/wbs/internal/storage/sqlite"
	"github.com/jamesclu/wbs/internal/types"
)

// ErrValidation is returned when a write is blocked by validation
// findings; the accompanying issue list carries the full set of problems.
var ErrValidation = sqlite.ErrValidation

// Storage defines the interface for task storage backends
type Storage interface {
	// Tasks
	CreateTask(ctx context.Context, t *types.Task, actor string) ([]types.ValidationIssue, error)
	GetTask(ctx context.Context, id string) (*types.Task, error)
	ListTasks(ctx context.Context) ([]types.Task, error)
	UpdateTask(ctx context.Context, t *types.Task, dateChangeReason, actor string) ([]types.ValidationIssue, error)
	SetStatus(ctx context.Context, id string, status types.Status, actor string) error
	DeleteTask(ctx context.Context, id, actor string) error

	// WBS tree
	MoveTask(ctx context.Context, taskID, newParentID string, newSortOrder int, actor string) error
	ReorderSiblings(ctx context.Context, parentID string, orderedIDs []string, actor string) error

	// Audit trail
	GetEvents(ctx context.Context, taskID string, limit int) ([]types.Event, error)

	// Config
	GetConfig(ctx context.Context, key string) (string, error)
	SetConfig(ctx context.Context, key, value string) error

	// Lifecycle
	Close() error
}

// Config holds database configuration
type Config struct {
	// Path is the SQLite database file path.
	// Special value ":memory:" creates an in-memory database (useful for tests).
	Path string

	// TeamCodes overrides the default team-to-department table used for
	// ID generation. Nil uses the built-in table.
	TeamCodes map[string]string
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{Path: ".wbs/tasks.db"}
}

// NewStorage opens the SQLite backend. The ID generator is constructed
// here — one per process — and seeded from existing IDs so a restart
// cannot re-issue sequence numbers already in the database.
func NewStorage(ctx context.Context, cfg *Config) (Storage, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Path == "" {
		cfg.Path = ".wbs/tasks.db"
	}

	gen := identifier.New(cfg.TeamCodes)
	return sqlite.New(ctx, cfg.Path, gen)
}

// IsValidation reports whether err is a blocked-by-validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
