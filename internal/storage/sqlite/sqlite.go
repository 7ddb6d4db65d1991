package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/jamesclu/wbs/internal/identifier"
)

// ErrValidation marks writes blocked by validation findings.
var ErrValidation = errors.New("validation failed")

// SQLiteStorage implements the storage interface using SQLite
type SQLiteStorage struct {
	db  *sql.DB
	gen *identifier.Generator

	// mu serializes writes. The ID generator has its own lock, but the
	// date-history append-read-modify-write and the dependency checks
	// must see a consistent task set, so the whole write path is
	// single-writer.
	mu sync.Mutex

	// now is swappable for tests that pin history timestamps.
	now func() time.Time
}

// New opens (or creates) the database at path and seeds the ID generator
// from existing structured IDs.
func New(ctx context.Context, path string, gen *identifier.Generator) (*SQLiteStorage, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	// WAL mode for better concurrency between the writer and readers.
	db, err := sql.Open("sqlite3", "file:"+path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	s := &SQLiteStorage{db: db, gen: gen, now: time.Now}

	// Restart collision avoidance: raise counters past every sequence
	// number already issued.
	ids, err := s.allIDs(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to read existing IDs: %w", err)
	}
	gen.Seed(ids)

	return s, nil
}

func (s *SQLiteStorage) allIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id FROM tasks")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetConfig retrieves a config value by key
func (s *SQLiteStorage) GetConfig(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM config WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get config %q: %w", key, err)
	}
	return value, nil
}

// SetConfig stores a config value
func (s *SQLiteStorage) SetConfig(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO config (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set config %q: %w", key, err)
	}
	return nil
}

// Close closes the database connection
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
