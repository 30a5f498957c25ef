package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/stepwise/pkg/adapters/sqlite"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/ports"
)

func newStore(t *testing.T, path string) *sqlite.Store {
	t.Helper()
	st, err := sqlite.Open(context.Background(), path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestSQLiteStore_Contract(t *testing.T) {
	ports.RunResultStoreContract(t, newStore(t, ":memory:"))
}

func TestSQLiteStore_PersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.db")
	ctx := context.Background()
	summary := domain.RunSummary{
		SessionID:  "maze",
		Lane:       "bfs",
		Algorithm:  domain.GridBFS,
		Steps:      88,
		Elapsed:    3 * time.Second,
		Found:      true,
		Result:     &domain.Position{Row: 9, Col: 9},
		FinishedAt: time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC),
	}

	first, err := sqlite.Open(ctx, path, nil)
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx, summary))
	require.NoError(t, first.Close())

	second := newStore(t, path)
	loaded, err := second.Load(ctx, summary.Key())
	require.NoError(t, err)
	assert.Equal(t, summary.Result, loaded.Result)
	assert.Equal(t, summary.Steps, loaded.Steps)
	assert.True(t, summary.FinishedAt.Equal(loaded.FinishedAt))
}

func TestSQLiteStore_Session(t *testing.T) {
	st := newStore(t, ":memory:")
	ctx := context.Background()
	for _, lane := range []string{"quick_sort", "bubble_sort"} {
		require.NoError(t, st.Save(ctx, domain.RunSummary{SessionID: "race", Lane: lane, Algorithm: domain.AlgorithmID(lane)}))
	}
	require.NoError(t, st.Save(ctx, domain.RunSummary{SessionID: "other", Lane: "heap_sort", Algorithm: domain.HeapSort}))

	got, err := st.Session(ctx, "race")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "bubble_sort", got[0].Lane)
	assert.Equal(t, "quick_sort", got[1].Lane)

	keys, err := st.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"other/heap_sort", "race/bubble_sort", "race/quick_sort"}, keys)
}

func TestSQLiteStore_MigrateIsIdempotent(t *testing.T) {
	st := newStore(t, ":memory:")
	assert.NoError(t, st.Migrate(context.Background()))
}
