package dataset_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/stepwise/pkg/catalogue"
	"github.com/aretw0/stepwise/pkg/dataset"
	"github.com/aretw0/stepwise/pkg/domain"
)

func TestSequence_Defaults(t *testing.T) {
	d, err := dataset.NewGenerator(1).Sequence(dataset.DefaultSequence())
	require.NoError(t, err)
	require.Len(t, d.Values, 20)
	for _, v := range d.Values {
		assert.GreaterOrEqual(t, v, 1)
		assert.LessOrEqual(t, v, 50)
	}
}

func TestSequence_SameSeedSameData(t *testing.T) {
	cfg := dataset.SequenceConfig{Min: -10, Max: 10, Size: 30}
	a, err := dataset.NewGenerator(42).Sequence(cfg)
	require.NoError(t, err)
	b, err := dataset.NewGenerator(42).Sequence(cfg)
	require.NoError(t, err)
	assert.Equal(t, a.Values, b.Values)
}

func TestSequence_Distinct(t *testing.T) {
	d, err := dataset.NewGenerator(7).Sequence(dataset.SequenceConfig{Min: 1, Max: 10, Size: 10, Distinct: true})
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, d.Values)

	d, err = dataset.NewGenerator(7).Sequence(dataset.SequenceConfig{Min: 1, Max: 1_000_000, Size: 50, Distinct: true})
	require.NoError(t, err)
	seen := make(map[int]bool)
	for _, v := range d.Values {
		assert.False(t, seen[v], "duplicate %d", v)
		seen[v] = true
	}
}

func TestSequence_InvalidRange(t *testing.T) {
	g := dataset.NewGenerator(1)
	for _, cfg := range []dataset.SequenceConfig{
		{Min: 5, Max: 1, Size: 3},
		{Min: 1, Max: 5, Size: -1},
		{Min: 1, Max: 3, Size: 4, Distinct: true},
		{Min: 1, Max: 5, Size: dataset.MaxSize + 1},
		{Min: math.MinInt / 2, Max: math.MaxInt/2 + 10, Size: 3},
		{Min: math.MinInt, Max: math.MaxInt, Size: 1},
		{Min: 0, Max: math.MaxInt, Size: 1},
	} {
		_, err := g.Sequence(cfg)
		assert.ErrorIs(t, err, dataset.ErrInvalidRange, "%+v", cfg)
	}
}

func TestGrid(t *testing.T) {
	start, goal := domain.Position{}, domain.Position{Row: 7, Col: 7}
	d, err := dataset.NewGenerator(3).Grid(8, 8, 0.3, start, goal)
	require.NoError(t, err)
	require.True(t, d.IsGrid())
	assert.Equal(t, 64, d.Len())
	assert.True(t, d.Grid.Passable(start))
	assert.True(t, d.Grid.Passable(goal))

	open, err := dataset.NewGenerator(3).Grid(4, 4, 0)
	require.NoError(t, err)
	assert.Equal(t, 16, open.Grid.FreeCells())

	_, err = dataset.NewGenerator(3).Grid(0, 4, 0.2)
	assert.ErrorIs(t, err, dataset.ErrInvalidRange)
	_, err = dataset.NewGenerator(3).Grid(4, 4, 1)
	assert.ErrorIs(t, err, dataset.ErrInvalidRange)
	_, err = dataset.NewGenerator(3).Grid(dataset.MaxSide+1, 4, 0.2)
	assert.ErrorIs(t, err, dataset.ErrInvalidRange)
}

func TestDemoMaze_IsSolvable(t *testing.T) {
	d := dataset.DemoMaze()
	assert.Equal(t, []string{
		"..........",
		"..#######.",
		".....#....",
		".....#....",
		".....#....",
		".....#.##.",
		".....#....",
		".######...",
		"..........",
		"..........",
	}, d.Grid.Lines())

	s, err := catalogue.Default().Instantiate(domain.GridBFS, d, domain.Params{Goal: domain.Position{Row: 9, Col: 9}})
	require.NoError(t, err)
	var last domain.Step
	for !s.Done() {
		last = s.Step()
	}
	require.True(t, last.Found())
	assert.Len(t, last.Path, 19, "the open border gives a Manhattan-length route")
}

func TestParseValues(t *testing.T) {
	v, err := dataset.ParseValues("5, 3,8 4\t-2")
	require.NoError(t, err)
	assert.Equal(t, []int{5, 3, 8, 4, -2}, v)

	v, err = dataset.ParseValues("")
	require.NoError(t, err)
	assert.Empty(t, v)

	_, err = dataset.ParseValues("1,two")
	assert.Error(t, err)

	p, err := dataset.ParsePosition("2,3")
	require.NoError(t, err)
	assert.Equal(t, domain.Position{Row: 2, Col: 3}, p)
	_, err = dataset.ParsePosition("2")
	assert.Error(t, err)
}
