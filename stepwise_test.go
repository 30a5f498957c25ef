package stepwise_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/stepwise"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/timer"
)

func TestStart_NilDatasetCreatesNothing(t *testing.T) {
	created := 0
	eng := stepwise.New(stepwise.WithIDGenerator(func() string {
		created++
		return "x"
	}))

	s, err := eng.Start(context.Background(), domain.BubbleSort, nil, domain.Params{})
	require.ErrorIs(t, err, domain.ErrNoDataset)
	assert.Nil(t, s)
	assert.Zero(t, created)
}

func TestStart_RunsToCompletion(t *testing.T) {
	eng := stepwise.New(stepwise.WithIDGenerator(func() string { return "fixed" }))
	s, err := eng.Start(context.Background(), domain.BubbleSort, domain.NewSequence(5, 3, 8, 4, 2), domain.Params{})
	require.NoError(t, err)
	assert.Equal(t, "fixed", s.ID())
	assert.Equal(t, domain.StateRunning, s.State())

	for i := 0; !s.Done() && i < 1000; i++ {
		s.Tick(context.Background())
	}
	require.True(t, s.Done())
	lanes := s.Lanes()
	require.Len(t, lanes, 1)
	assert.Equal(t, []int{2, 3, 4, 5, 8}, lanes[0].Last.Snapshot.Values)
}

func TestCompare_HooksAndClock(t *testing.T) {
	clock := timer.NewManualClock(time.Unix(0, 0))
	var done []string
	eng := stepwise.New(
		stepwise.WithClock(clock),
		stepwise.WithLifecycleHooks(domain.LifecycleHooks{
			OnLaneDone: func(_ context.Context, e *domain.LaneEvent) {
				done = append(done, e.Summary.Lane)
			},
		}),
	)
	s, err := eng.Compare(context.Background(),
		[]domain.AlgorithmID{domain.LinearSearch, domain.BinarySearch},
		domain.NewSequence(1, 4, 4, 7, 9),
		domain.Params{Target: 4},
	)
	require.NoError(t, err)

	for i := 0; !s.Done() && i < 100; i++ {
		clock.Advance(time.Second)
		s.Tick(context.Background())
	}
	require.True(t, s.Done())
	assert.ElementsMatch(t, []string{"linear_search", "binary_search"}, done)

	for _, l := range s.Lanes() {
		require.NotNil(t, l.Last.Result, l.Name)
		assert.Positive(t, l.Elapsed, l.Name)
	}
}

func TestCompare_UnknownAlgorithm(t *testing.T) {
	eng := stepwise.New()
	_, err := eng.Compare(context.Background(), []domain.AlgorithmID{"bogo_sort"}, domain.NewSequence(1), domain.Params{})
	assert.ErrorIs(t, err, domain.ErrUnknownAlgorithm)
}

func TestCatalogue(t *testing.T) {
	eng := stepwise.New()
	assert.Len(t, eng.Catalogue().List(), 10)
	assert.NotEmpty(t, stepwise.Version)
}
