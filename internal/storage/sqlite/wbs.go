package sqlite

import (
	"context"
	"fmt"

	"github.com/jamesclu/wbs/internal/tree"
	"github.com/jamesclu/wbs/internal/types"
)

// MoveTask re-parents a task in the WBS forest. The move is rejected if
// it would make the task its own ancestor; the containment tree has its
// own cycle check, separate from the dependency graph.
func (s *SQLiteStorage) MoveTask(ctx context.Context, taskID, newParentID string, newSortOrder int, actor string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.listTasks(ctx)
	if err != nil {
		return err
	}

	if err := tree.Move(taskID, newParentID, all); err != nil {
		return err
	}

	old, err := s.GetTask(ctx, taskID)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE tasks SET parent_id = ?, sort_order = ?, updated_at = ? WHERE id = ?
	`, newParentID, newSortOrder, s.now(), taskID)
	if err != nil {
		return fmt.Errorf("failed to move task %s: %w", taskID, err)
	}

	s.recordEvent(ctx, taskID, types.EventMoved, actor, old.ParentID, newParentID)
	return nil
}

// ReorderSiblings rewrites sort_order for the children of parentID to
// match the given ID order. IDs not under parentID are rejected.
func (s *SQLiteStorage) ReorderSiblings(ctx context.Context, parentID string, orderedIDs []string, actor string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for order, id := range orderedIDs {
		res, err := tx.ExecContext(ctx, `
			UPDATE tasks SET sort_order = ?, updated_at = ? WHERE id = ? AND parent_id = ?
		`, order, s.now(), id, parentID)
		if err != nil {
			return fmt.Errorf("failed to reorder %s: %w", id, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("task %s is not a child of %q", id, parentID)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reorder: %w", err)
	}

	s.recordEvent(ctx, parentID, types.EventReordered, actor, "", fmt.Sprintf("%d siblings", len(orderedIDs)))
	return nil
}
