package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/jamesclu/wbs/internal/types"
)

// recordEvent appends an audit row. Audit failures never fail the write
// that produced them; the task mutation is the source of truth.
func (s *SQLiteStorage) recordEvent(ctx context.Context, taskID string, eventType types.EventType, actor, oldValue, newValue string) {
	_, _ = s.db.ExecContext(ctx, `
		INSERT INTO events (id, task_id, event_type, actor, old_value, new_value, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, uuid.NewString(), taskID, string(eventType), actor, nullable(oldValue), nullable(newValue), s.now())
}

// GetEvents returns a task's audit trail, newest first.
func (s *SQLiteStorage) GetEvents(ctx context.Context, taskID string, limit int) ([]types.Event, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, task_id, event_type, actor, old_value, new_value, created_at
		FROM events WHERE task_id = ?
		ORDER BY created_at DESC, id LIMIT ?
	`, taskID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get events for %s: %w", taskID, err)
	}
	defer rows.Close()

	var events []types.Event
	for rows.Next() {
		var e types.Event
		var eventType string
		var oldValue, newValue sql.NullString
		if err := rows.Scan(&e.ID, &e.TaskID, &eventType, &e.Actor, &oldValue, &newValue, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		e.EventType = types.EventType(eventType)
		e.OldValue = oldValue.String
		e.NewValue = newValue.String
		events = append(events, e)
	}
	return events, rows.Err()
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
