package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunResultStoreContract runs a suite of tests to verify that a ResultStore implementation
// adheres to the defined interface contract.
func RunResultStoreContract(t *testing.T, store ResultStore) {
	ctx := context.Background()
	sessionID := "contract-" + time.Now().Format("20060102150405")
	finished := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("Save and Load", func(t *testing.T) {
		summary := domain.RunSummary{
			SessionID:  sessionID,
			Lane:       "binary_search",
			Algorithm:  domain.BinarySearch,
			Steps:      7,
			Elapsed:    1500 * time.Millisecond,
			Found:      true,
			Result:     &domain.Position{Col: 2},
			FinishedAt: finished,
		}

		err := store.Save(ctx, summary)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, summary.Key())
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, summary.Algorithm, loaded.Algorithm)
		assert.Equal(t, summary.Steps, loaded.Steps)
		assert.Equal(t, summary.Elapsed, loaded.Elapsed)
		assert.True(t, loaded.Found)
		require.NotNil(t, loaded.Result)
		assert.Equal(t, 2, loaded.Result.Index())
		assert.True(t, finished.Equal(loaded.FinishedAt))
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		summary := domain.RunSummary{SessionID: sessionID, Lane: "bubble_sort", Algorithm: domain.BubbleSort, Steps: 1}
		require.NoError(t, store.Save(ctx, summary))
		summary.Steps = 9
		require.NoError(t, store.Save(ctx, summary))

		loaded, err := store.Load(ctx, summary.Key())
		require.NoError(t, err)
		assert.Equal(t, 9, loaded.Steps)
		assert.Nil(t, loaded.Result)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent/"+sessionID)
		assert.ErrorIs(t, err, domain.ErrResultNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		summary := domain.RunSummary{SessionID: sessionID, Lane: "quick_sort", Algorithm: domain.QuickSort}
		require.NoError(t, store.Save(ctx, summary))

		err := store.Delete(ctx, summary.Key())
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, summary.Key())
		assert.ErrorIs(t, err, domain.ErrResultNotFound, "Load after Delete should return ErrResultNotFound")
	})

	t.Run("List", func(t *testing.T) {
		a := domain.RunSummary{SessionID: sessionID + "-list", Lane: "a", Algorithm: domain.HeapSort}
		b := domain.RunSummary{SessionID: sessionID + "-list", Lane: "b", Algorithm: domain.RadixSort}
		_ = store.Save(ctx, a)
		_ = store.Save(ctx, b)

		defer func() {
			_ = store.Delete(ctx, a.Key())
			_ = store.Delete(ctx, b.Key())
		}()

		keys, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, keys, a.Key())
		assert.Contains(t, keys, b.Key())
	})
}
