package catalogue_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/stepwise/pkg/catalogue"
	"github.com/aretw0/stepwise/pkg/domain"
)

func TestDefault_ListsEveryAlgorithmInOrder(t *testing.T) {
	entries := catalogue.Default().List()
	require.Len(t, entries, len(domain.Algorithms))
	for i, e := range entries {
		assert.Equal(t, domain.Algorithms[i], e.ID)
		assert.NotEmpty(t, e.Name)
		assert.NotEmpty(t, e.Lines)
		assert.Equal(t, e.ID.Kind(), e.Kind)
	}
}

func TestLookup_DisplayNamesRoundTrip(t *testing.T) {
	cat := catalogue.Default()
	for _, e := range cat.List() {
		id, err := domain.ParseAlgorithm(e.Name)
		require.NoError(t, err, e.Name)
		assert.Equal(t, e.ID, id)
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, err := catalogue.New().Lookup(domain.BubbleSort)
	assert.ErrorIs(t, err, domain.ErrUnknownAlgorithm)

	_, err = catalogue.New().Lines("dijkstra")
	assert.ErrorIs(t, err, domain.ErrUnknownAlgorithm)
}

func TestInstantiate(t *testing.T) {
	cat := catalogue.Default()

	t.Run("Nil Dataset", func(t *testing.T) {
		_, err := cat.Instantiate(domain.BubbleSort, nil, domain.Params{})
		assert.ErrorIs(t, err, domain.ErrNoDataset)
	})

	t.Run("Wrong Dataset Kind", func(t *testing.T) {
		_, err := cat.Instantiate(domain.GridBFS, domain.NewSequence(1, 2), domain.Params{})
		assert.ErrorIs(t, err, domain.ErrDatasetKind)

		_, err = cat.Instantiate(domain.BubbleSort, domain.NewGridDataset(domain.NewGrid(2, 2)), domain.Params{})
		assert.ErrorIs(t, err, domain.ErrDatasetKind)
	})

	t.Run("Stepper Owns A Copy", func(t *testing.T) {
		data := domain.NewSequence(3, 2, 1)
		s, err := cat.Instantiate(domain.BubbleSort, data, domain.Params{})
		require.NoError(t, err)
		assert.Equal(t, domain.BubbleSort, s.Algorithm())

		for !s.Done() {
			s.Step()
		}
		assert.Equal(t, []int{3, 2, 1}, data.Values)
		assert.Equal(t, []int{1, 2, 3}, s.Step().Snapshot.Values)
	})

	t.Run("Two Steppers Are Independent", func(t *testing.T) {
		data := domain.NewSequence(3, 2, 1)
		a, err := cat.Instantiate(domain.SelectionSort, data, domain.Params{})
		require.NoError(t, err)
		b, err := cat.Instantiate(domain.SelectionSort, data, domain.Params{})
		require.NoError(t, err)

		for !a.Done() {
			a.Step()
		}
		assert.Equal(t, []int{3, 2, 1}, b.Step().Snapshot.Values)
	})
}

func TestRegister_OverwriteKeepsPosition(t *testing.T) {
	cat := catalogue.New()
	catalogue.RegisterBuiltins(cat)

	e, err := cat.Lookup(domain.MergeSort)
	require.NoError(t, err)
	e.Name = "Top-Down Merge Sort"
	cat.Register(e)

	entries := cat.List()
	require.Len(t, entries, len(domain.Algorithms))
	assert.Equal(t, "Top-Down Merge Sort", entries[5].Name)
}
