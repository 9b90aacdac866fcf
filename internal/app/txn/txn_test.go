package txn

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	log []string
}

func (r *recorder) action(name string, failWith error) Func {
	return Func{
		Name: name,
		Do: func(context.Context) error {
			if failWith != nil {
				return failWith
			}

			r.log = append(r.log, "do:"+name)

			return nil
		},
		Undo: func(context.Context) error {
			r.log = append(r.log, "undo:"+name)

			return nil
		},
	}
}

func TestCommit_RunsInOrder(t *testing.T) {
	rec := &recorder{}
	tx := New(nil)

	require.NoError(t, tx.Add(rec.action("collections", nil)))
	require.NoError(t, tx.Add(rec.action("categories", nil)))
	assert.Equal(t, 2, tx.Len())

	require.NoError(t, tx.Commit(context.Background()))
	assert.Equal(t, []string{"do:collections", "do:categories"}, rec.log)
}

func TestCommit_RollsBackInReverse(t *testing.T) {
	rec := &recorder{}
	boom := errors.New("disk full")
	tx := New(nil)

	require.NoError(t, tx.Add(rec.action("collections", nil)))
	require.NoError(t, tx.Add(rec.action("account", nil)))
	require.NoError(t, tx.Add(rec.action("history", boom)))
	require.NoError(t, tx.Add(rec.action("categories", nil)))

	err := tx.Commit(context.Background())

	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), `"history"`)
	assert.Equal(t, []string{"do:collections", "do:account", "undo:account", "undo:collections"}, rec.log)
}

func TestCommit_RollbackErrorsDoNotMaskFailure(t *testing.T) {
	boom := errors.New("write failed")
	tx := New(nil)

	require.NoError(t, tx.Add(Func{
		Name: "first",
		Do:   func(context.Context) error { return nil },
		Undo: func(context.Context) error { return errors.New("undo failed") },
	}))
	require.NoError(t, tx.Add(Func{Name: "second", Do: func(context.Context) error { return boom }}))

	assert.ErrorIs(t, tx.Commit(context.Background()), boom)
}

func TestCommit_Once(t *testing.T) {
	tx := New(nil)
	require.NoError(t, tx.Commit(context.Background()))

	assert.ErrorIs(t, tx.Commit(context.Background()), ErrAlreadyCommitted)
	assert.ErrorIs(t, tx.Add(Func{Name: "late"}), ErrAlreadyCommitted)
}

func TestFunc_NilUndo(t *testing.T) {
	f := Func{Name: "noop", Do: func(context.Context) error { return nil }}

	assert.NoError(t, f.Rollback(context.Background()))
	assert.Equal(t, "noop", f.Description())
}
