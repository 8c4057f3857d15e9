package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryJournal(t *testing.T) *SQLiteJournal {
	t.Helper()
	j, err := NewSQLiteJournal(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func session(task string, startMS, stopMS int64) Session {
	return Session{
		Task:      task,
		StartedAt: time.UnixMilli(startMS),
		StoppedAt: time.UnixMilli(stopMS),
		ElapsedMS: stopMS - startMS,
	}
}

func TestSQLiteJournal_RecordAssignsUUID(t *testing.T) {
	j := newMemoryJournal(t)

	got, err := j.Record(t.Context(), session("write-report", 1000, 755000))
	require.NoError(t, err)
	_, parseErr := uuid.Parse(got.ID)
	require.NoError(t, parseErr)

	keep, err := j.Record(t.Context(), Session{ID: "fixed", Task: "x", StartedAt: time.UnixMilli(0), StoppedAt: time.UnixMilli(1)})
	require.NoError(t, err)
	assert.Equal(t, "fixed", keep.ID)
}

func TestSQLiteJournal_ListOrderingAndFilters(t *testing.T) {
	j := newMemoryJournal(t)
	ctx := t.Context()

	for _, s := range []Session{
		session("a", 0, 1000),
		session("b", 0, 2000),
		session("a", 2000, 5000),
	} {
		_, err := j.Record(ctx, s)
		require.NoError(t, err)
	}

	all, err := j.List(ctx, Query{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, int64(5000), all[0].StoppedAt.UnixMilli())
	assert.Equal(t, int64(3000), all[0].ElapsedMS)
	assert.Equal(t, "b", all[1].Task)

	onlyA, err := j.List(ctx, Query{Task: "a"})
	require.NoError(t, err)
	assert.Len(t, onlyA, 2)

	recent, err := j.List(ctx, Query{Since: time.UnixMilli(1500)})
	require.NoError(t, err)
	assert.Len(t, recent, 2)

	limited, err := j.List(ctx, Query{Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "a", limited[0].Task)
}

func TestSQLiteJournal_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	j, err := NewSQLiteJournal(path)
	require.NoError(t, err)
	_, err = j.Record(ctx, session("a", 0, 61000))
	require.NoError(t, err)
	require.NoError(t, j.Close())

	j, err = NewSQLiteJournal(path)
	require.NoError(t, err)
	defer func() { _ = j.Close() }()

	got, err := j.List(ctx, Query{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(61000), got[0].ElapsedMS)
}

func TestNopJournal(t *testing.T) {
	var j Journal = NopJournal{}
	s, err := j.Record(t.Context(), session("a", 0, 1))
	require.NoError(t, err)
	assert.Equal(t, "a", s.Task)
	list, err := j.List(t.Context(), Query{})
	require.NoError(t, err)
	assert.Empty(t, list)
	require.NoError(t, j.Close())
}
