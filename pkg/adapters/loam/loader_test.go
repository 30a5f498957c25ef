package loam

import (
	"context"
	"testing"

	"github.com/aretw0/loam"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/stepwise/internal/testutils"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/ports"
)

const raceDoc = `---
id: race
title: Five element race
algorithms: [bubble, quick_sort]
values: [5, 3, 8, 4, 2]
direction: desc
---
Bubble against quick sort on a tiny array.
`

const mazeDoc = `---
algorithm: Grid BFS
grid:
  - "..#"
  - "..."
  - "#.."
---
`

func newLoader(t *testing.T, files map[string]string) *Loader {
	t.Helper()
	dir, repo := testutils.SetupTestRepo(t)
	testutils.WriteFiles(t, dir, files)
	return New(loam.NewTypedRepository[ScenarioMetadata](repo))
}

func TestLoader_Contract(t *testing.T) {
	loader := newLoader(t, map[string]string{
		"race.md": raceDoc,
		"maze.md": mazeDoc,
	})

	maze, err := domain.ParseGrid([]string{"..#", "...", "#.."})
	require.NoError(t, err)

	ports.RunScenarioLoaderContract(t, loader, map[string]domain.Scenario{
		"race": {
			Name:       "race",
			Algorithms: []domain.AlgorithmID{domain.BubbleSort, domain.QuickSort},
			Dataset:    domain.NewSequence(5, 3, 8, 4, 2),
			Params:     domain.Params{Direction: domain.Descending},
		},
		"maze": {
			Name:       "maze",
			Algorithms: []domain.AlgorithmID{domain.GridBFS},
			Dataset:    domain.NewGridDataset(maze),
			Params:     domain.Params{Goal: domain.Position{Row: 2, Col: 2}},
		},
	})
}

func TestLoader_Load_ReadsTitleAndBody(t *testing.T) {
	loader := newLoader(t, map[string]string{"race.md": raceDoc})

	sc, err := loader.Load(context.Background(), "race")
	require.NoError(t, err)
	assert.Equal(t, "Five element race", sc.Title)
	assert.Equal(t, "Bubble against quick sort on a tiny array.", sc.Description)
}

func TestLoader_Load_JSONDocument(t *testing.T) {
	loader := newLoader(t, map[string]string{
		"search.json": `{"algorithms": ["linear", "binary"], "values": [9, 2, 7], "target": 7}`,
	})

	sc, err := loader.Load(context.Background(), "search")
	require.NoError(t, err)
	assert.Equal(t, []domain.AlgorithmID{domain.LinearSearch, domain.BinarySearch}, sc.Algorithms)
	assert.Equal(t, 7, sc.Params.Target)
	assert.Equal(t, []int{9, 2, 7}, sc.Dataset.Values)
}

func TestLoader_List_DetectsCollisions(t *testing.T) {
	loader := newLoader(t, map[string]string{
		"foo.md": "---\nid: foo\nalgorithm: bubble\nvalues: [1]\n---\n",
		"foo.json": `{"id": "foo", "algorithm": "heap", "values": [2]}`,
	})

	_, err := loader.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision detected")
}

func TestScenarioMetadata_Errors(t *testing.T) {
	tests := []struct {
		name string
		meta ScenarioMetadata
		want error
	}{
		{"No Algorithm", ScenarioMetadata{Values: []int{1}}, domain.ErrUnknownAlgorithm},
		{"Unknown Algorithm", ScenarioMetadata{Algorithm: "bogo", Values: []int{1}}, domain.ErrUnknownAlgorithm},
		{"No Data", ScenarioMetadata{Algorithm: "bubble"}, domain.ErrNoDataset},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.meta.Scenario("x", "")
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := ScenarioMetadata{Algorithm: "bfs", Grid: []string{"..", "."}}.Scenario("x", "")
	assert.Error(t, err)
	_, err = ScenarioMetadata{Algorithm: "bubble", Values: []int{1}, Direction: "sideways"}.Scenario("x", "")
	assert.Error(t, err)
	_, err = ScenarioMetadata{Algorithm: "bfs", Grid: []string{".."}, Goal: []int{1}}.Scenario("x", "")
	assert.Error(t, err)
}

func TestScenarioMetadata_StartAndGoal(t *testing.T) {
	sc, err := ScenarioMetadata{
		Algorithm: "bfs",
		Grid:      []string{"...", "..."},
		Start:     []int{1, 0},
		Goal:      []int{0, 2},
	}.Scenario("x", "")
	require.NoError(t, err)
	assert.Equal(t, domain.Position{Row: 1, Col: 0}, sc.Params.Start)
	assert.Equal(t, domain.Position{Row: 0, Col: 2}, sc.Params.Goal)
}
