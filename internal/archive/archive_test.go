package archive

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/ducminhle1904/genetic-trace/pkg/reporting"
)

func newMemArchive(t *testing.T) *Archive {
	t.Helper()
	a, err := OpenStorage(storage.NewMemStorage())
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func summary(id, problem string, finished time.Time) reporting.Summary {
	return reporting.Summary{
		RunID:          id,
		Problem:        problem,
		BestChromosome: []string{"1", "3", "0", "2"},
		Fitness:        6,
		Crowd:          10,
		Seed:           5,
		Reached:        true,
		FinishedAt:     finished,
	}
}

func TestPutGet(t *testing.T) {
	a := newMemArchive(t)
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	require.NoError(t, a.PutAll([]reporting.Summary{summary("r1", "nqueens-4", now)}))

	got, err := a.Get("r1")
	require.NoError(t, err)
	assert.Equal(t, "nqueens-4", got.Problem)
	assert.Equal(t, []string{"1", "3", "0", "2"}, got.BestChromosome)
	assert.True(t, now.Equal(got.FinishedAt))
}

func TestGetMissing(t *testing.T) {
	a := newMemArchive(t)
	_, err := a.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPutRequiresID(t *testing.T) {
	a := newMemArchive(t)
	assert.Error(t, a.PutAll([]reporting.Summary{{}}))
	assert.Error(t, a.PutAll([]reporting.Summary{{RunID: " "}}))
}

func TestListOrderAndFilter(t *testing.T) {
	a := newMemArchive(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, a.PutAll([]reporting.Summary{
		summary("c", "phrase", base.Add(2*time.Minute)),
		summary("a", "nqueens-8", base.Add(3*time.Minute)),
		summary("b", "nqueens-8", base.Add(time.Minute)),
	}))

	all, err := a.List("")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"b", "c", "a"}, []string{all[0].RunID, all[1].RunID, all[2].RunID})

	queens, err := a.List("nqueens-8")
	require.NoError(t, err)
	require.Len(t, queens, 2)
	assert.Equal(t, "b", queens[0].RunID)
	assert.Equal(t, "a", queens[1].RunID)
}

func TestDeleteAndOverwrite(t *testing.T) {
	a := newMemArchive(t)
	s := summary("r1", "phrase", time.Now())
	require.NoError(t, a.PutAll([]reporting.Summary{s}))

	s.Fitness = 9
	require.NoError(t, a.PutAll([]reporting.Summary{s}))
	got, err := a.Get("r1")
	require.NoError(t, err)
	assert.Equal(t, 9, got.Fitness)

	require.NoError(t, a.Delete("r1"))
	_, err = a.Get("r1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, a.Delete("r1"), ErrNotFound)
}

func TestOpenFileReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.db")
	a, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, a.PutAll([]reporting.Summary{summary("persist", "phrase", time.Now())}))
	require.NoError(t, a.Close())

	a, err = Open(path)
	require.NoError(t, err)
	defer a.Close()

	got, err := a.Get("persist")
	require.NoError(t, err)
	assert.Equal(t, "phrase", got.Problem)
}
