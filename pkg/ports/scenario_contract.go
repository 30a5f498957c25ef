package ports

import (
	"context"
	"testing"

	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunScenarioLoaderContract verifies a ScenarioLoader seeded with want.
func RunScenarioLoaderContract(t *testing.T, loader ScenarioLoader, want map[string]domain.Scenario) {
	ctx := context.Background()

	t.Run("List", func(t *testing.T) {
		names, err := loader.List(ctx)
		require.NoError(t, err)
		for name := range want {
			assert.Contains(t, names, name)
		}
		assert.IsNonDecreasing(t, names)
	})

	t.Run("Load", func(t *testing.T) {
		for name, expected := range want {
			got, err := loader.Load(ctx, name)
			require.NoError(t, err, name)
			assert.Equal(t, expected.Name, got.Name)
			assert.Equal(t, expected.Algorithms, got.Algorithms)
			assert.Equal(t, expected.Params, got.Params)
			require.NotNil(t, got.Dataset)
			assert.Equal(t, expected.Dataset.Values, got.Dataset.Values)
			assert.Equal(t, expected.Dataset.IsGrid(), got.Dataset.IsGrid())
			if expected.Dataset.IsGrid() {
				assert.Equal(t, expected.Dataset.Grid.Lines(), got.Dataset.Grid.Lines())
			}
		}
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := loader.Load(ctx, "no-such-scenario")
		assert.ErrorIs(t, err, domain.ErrScenarioNotFound)
	})
}
