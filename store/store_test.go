package store_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"lbe/store"
)

func openStore(t *testing.T, history int) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "lessons.db"), history, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, s.Close()) })
	return s
}

func TestStore_SaveAndRead(t *testing.T) {
	s := openStore(t, 0)

	require.NoError(t, s.Save(store.Lesson{ID: "fractions", Title: "Fractions", Markup: "<p>A</p>"}))
	require.NoError(t, s.Save(store.Lesson{ID: "fractions", Title: "Fractions 1", Markup: "<p>B</p>"}))

	l, err := s.Lesson("fractions")
	require.NoError(t, err)
	assert.Equal(t, "Fractions 1", l.Title)
	assert.Equal(t, "<p>B</p>", l.Markup)
	assert.False(t, l.Updated.IsZero())

	_, err = s.Lesson("missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, s.UpdateMarkup("missing", "<p/>"), store.ErrNotFound)
}

func TestStore_LessonsNaturalOrder(t *testing.T) {
	s := openStore(t, 0)
	for _, id := range []string{"lesson-10", "lesson-2", "lesson-1"} {
		require.NoError(t, s.Save(store.Lesson{ID: id, Markup: "<p>" + id + "</p>"}))
	}
	require.NoError(t, s.PushSnapshot("lesson-2", "<p>old</p>"))

	list, err := s.Lessons()
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "lesson-1", list[0].ID)
	assert.Equal(t, "lesson-2", list[1].ID)
	assert.Equal(t, "lesson-10", list[2].ID)
	assert.Empty(t, list[1].Markup)
	assert.Equal(t, 1, list[1].Snapshots)

	require.NoError(t, s.Delete("lesson-2"))
	assert.ErrorIs(t, s.Delete("lesson-2"), store.ErrNotFound)
	_, err = s.PopSnapshot("lesson-2")
	assert.ErrorIs(t, err, store.ErrNoSnapshot, "snapshots go with lesson")
}

func TestStore_SnapshotHistory(t *testing.T) {
	s := openStore(t, 2)
	require.NoError(t, s.Save(store.Lesson{ID: "l", Markup: "<p>3</p>"}))
	for _, m := range []string{"<p>0</p>", "<p>1</p>", "<p>2</p>"} {
		require.NoError(t, s.PushSnapshot("l", m))
	}

	l, err := s.Lesson("l")
	require.NoError(t, err)
	assert.Equal(t, 2, l.Snapshots, "oldest snapshot pruned")

	m, err := s.Undo("l")
	require.NoError(t, err)
	assert.Equal(t, "<p>2</p>", m)

	m, err = s.PopSnapshot("l")
	require.NoError(t, err)
	assert.Equal(t, "<p>1</p>", m)

	_, err = s.Undo("l")
	assert.ErrorIs(t, err, store.ErrNoSnapshot)

	l, err = s.Lesson("l")
	require.NoError(t, err)
	assert.Equal(t, "<p>2</p>", l.Markup, "failed undo changes nothing")
}

func TestBinding(t *testing.T) {
	s := openStore(t, 0)
	require.NoError(t, s.Save(store.Lesson{ID: "l", Markup: "<p>A</p>"}))

	b := s.Bind("l", "<p>A</p>")
	b.BeforeMutate()
	b.OnChange("<p>B</p>")
	require.NoError(t, b.Err())
	assert.Equal(t, "<p>B</p>", b.Current())

	l, err := s.Lesson("l")
	require.NoError(t, err)
	assert.Equal(t, "<p>B</p>", l.Markup)

	m, err := s.Undo("l")
	require.NoError(t, err)
	assert.Equal(t, "<p>A</p>", m)

	missing := s.Bind("missing", "")
	missing.OnChange("<p>C</p>")
	missing.BeforeMutate()
	assert.ErrorIs(t, missing.Err(), store.ErrNotFound)
	assert.Error(t, missing.Err(), "snapshot of unknown lesson violates foreign key")
}
