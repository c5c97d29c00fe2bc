package boltrepo

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	apperrors "github.com/taskhive/taskhive-server/internal/errors"
	"github.com/taskhive/taskhive-server/tasks"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := bbolt.Open(filepath.Join(t.TempDir(), "tasks-test.db"), 0o600, nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store, err := NewRepository(db)
	require.NoError(t, err)
	return store
}

func TestTaskRoundTrip(t *testing.T) {
	store := newTestStore(t)

	task := &tasks.Task{Title: "Write docs", Stage: tasks.StageTodo, Priority: tasks.PriorityNormal}
	require.NoError(t, store.Upsert(task))
	require.NotEmpty(t, task.ID)

	got, err := store.GetByID(task.ID)
	require.NoError(t, err)
	require.Equal(t, task.Title, got.Title)

	_, err = store.GetByID("missing-id")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestTrashedTasksHiddenFromListing(t *testing.T) {
	store := newTestStore(t)

	kept := &tasks.Task{Title: "Keep me"}
	trashed := &tasks.Task{Title: "Trash me"}
	require.NoError(t, store.Upsert(kept))
	require.NoError(t, store.Upsert(trashed))
	require.NoError(t, store.SetTrashed(trashed.ID, true))

	visible, err := store.List(false)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	require.Equal(t, kept.ID, visible[0].ID)

	all, err := store.List(true)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestTaskDelete(t *testing.T) {
	store := newTestStore(t)

	task := &tasks.Task{Title: "Temporary"}
	require.NoError(t, store.Upsert(task))
	require.NoError(t, store.Delete(task.ID))

	_, err := store.GetByID(task.ID)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	require.ErrorIs(t, store.Delete(task.ID), apperrors.ErrNotFound)
}
