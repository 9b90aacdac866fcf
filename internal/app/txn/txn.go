// Package txn stages writes and applies them as one unit.
//
// Actions run in the order they were added. When one fails, every action
// that already ran is rolled back in reverse order and Commit returns the
// failure. Rollback is best effort: rollback errors are logged, not returned.
package txn

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ErrAlreadyCommitted is returned when adding to or committing a finished Tx.
var ErrAlreadyCommitted = errors.New("transaction already committed")

// Action is one staged write.
type Action interface {
	Execute(ctx context.Context) error
	Rollback(ctx context.Context) error
	Description() string
}

// Tx collects actions for a single Commit.
type Tx struct {
	mu        sync.Mutex
	actions   []Action
	committed bool
	logger    *slog.Logger
}

// New creates an empty transaction.
func New(logger *slog.Logger) *Tx {
	if logger == nil {
		logger = slog.Default()
	}

	return &Tx{logger: logger}
}

// Add stages an action.
func (tx *Tx) Add(action Action) error {
	tx.mu.Lock()
	defer tx.mu.Unlock()

	if tx.committed {
		return ErrAlreadyCommitted
	}

	tx.actions = append(tx.actions, action)

	return nil
}

// Len reports how many actions are staged.
func (tx *Tx) Len() int {
	tx.mu.Lock()
	defer tx.mu.Unlock()

	return len(tx.actions)
}

// Commit executes the staged actions. A Tx can be committed once, even if
// the commit failed.
func (tx *Tx) Commit(ctx context.Context) error {
	tx.mu.Lock()
	defer tx.mu.Unlock()

	if tx.committed {
		return ErrAlreadyCommitted
	}

	tx.committed = true

	for i, action := range tx.actions {
		if err := action.Execute(ctx); err != nil {
			tx.rollback(ctx, tx.actions[:i])

			return fmt.Errorf("action %q failed: %w", action.Description(), err)
		}
	}

	return nil
}

func (tx *Tx) rollback(ctx context.Context, executed []Action) {
	for i := len(executed) - 1; i >= 0; i-- {
		if err := executed[i].Rollback(ctx); err != nil {
			tx.logger.ErrorContext(ctx, "rollback failed",
				slog.String("action", executed[i].Description()),
				slog.Any("error", err),
			)
		}
	}
}

// Func adapts a pair of closures to an Action.
type Func struct {
	Name string
	Do   func(ctx context.Context) error
	Undo func(ctx context.Context) error
}

// Execute implements Action.
func (f Func) Execute(ctx context.Context) error { return f.Do(ctx) }

// Rollback implements Action. A nil Undo is a no-op.
func (f Func) Rollback(ctx context.Context) error {
	if f.Undo == nil {
		return nil
	}

	return f.Undo(ctx)
}

// Description implements Action.
func (f Func) Description() string { return f.Name }
