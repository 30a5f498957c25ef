package session_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/stepwise/pkg/adapters/memory"
	"github.com/aretw0/stepwise/pkg/catalogue"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/scheduler"
	"github.com/aretw0/stepwise/pkg/session"
)

func sequentialIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("s%d", n)
	}
}

func newManager(opts ...session.ManagerOption) (*session.Manager, *memory.Store) {
	store := memory.NewStore()
	opts = append([]session.ManagerOption{session.WithIDGenerator(sequentialIDs())}, opts...)
	return session.NewManager(catalogue.Default(), store, opts...), store
}

func TestManager_CreateGetList(t *testing.T) {
	m, _ := newManager()
	ctx := context.Background()

	a, err := m.Create(ctx, []domain.AlgorithmID{domain.BubbleSort}, domain.NewSequence(2, 1), domain.Params{})
	require.NoError(t, err)
	b, err := m.Create(ctx, []domain.AlgorithmID{domain.QuickSort}, domain.NewSequence(2, 1), domain.Params{})
	require.NoError(t, err)
	assert.Equal(t, "s1", a.ID())
	assert.Equal(t, "s2", b.ID())

	got, err := m.Get("s2")
	require.NoError(t, err)
	assert.Same(t, b, got)

	list := m.List()
	require.Len(t, list, 2)
	assert.Equal(t, "s1", list[0].ID())

	_, err = m.Get("missing")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = m.Create(ctx, []domain.AlgorithmID{domain.BubbleSort}, nil, domain.Params{})
	assert.ErrorIs(t, err, domain.ErrNoDataset)
	assert.Len(t, m.List(), 2, "failed creations are not registered")
}

func TestManager_PersistsFinishedLanes(t *testing.T) {
	m, store := newManager()
	ctx := context.Background()

	s, err := m.Create(ctx, []domain.AlgorithmID{domain.LinearSearch, domain.BinarySearch},
		domain.NewSequence(4, 8, 15, 16, 23, 42), domain.Params{Target: 23})
	require.NoError(t, err)
	require.NoError(t, m.Control(ctx, s.ID(), "start"))

	for s.State() == domain.StateRunning {
		_, err := m.Tick(ctx, s.ID())
		require.NoError(t, err)
	}

	keys, err := store.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"s1/linear_search", "s1/binary_search"}, keys)

	results, err := m.Results(ctx)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "binary_search", results[0].Lane)
	assert.True(t, results[0].Found)
	assert.Equal(t, 4, results[0].Result.Index())
	assert.Equal(t, "linear_search", results[1].Lane)
	assert.Equal(t, 4, results[1].Result.Index())
}

func TestManager_Control(t *testing.T) {
	m, _ := newManager()
	ctx := context.Background()
	s, err := m.Create(ctx, []domain.AlgorithmID{domain.BubbleSort}, domain.NewSequence(3, 1, 2), domain.Params{})
	require.NoError(t, err)

	assert.ErrorIs(t, m.Control(ctx, s.ID(), "pause"), domain.ErrInvalidTransition)
	assert.ErrorIs(t, m.Control(ctx, s.ID(), "rewind"), session.ErrUnknownAction)
	assert.ErrorIs(t, m.Control(ctx, "nope", "start"), domain.ErrSessionNotFound)

	for _, action := range []string{"start", "pause", "resume", "toggle", "toggle", "stop"} {
		require.NoError(t, m.Control(ctx, s.ID(), action), action)
	}
	assert.Equal(t, domain.StateStopped, s.State())

	_, err = m.Tick(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestManager_Delete(t *testing.T) {
	m, _ := newManager()
	ctx := context.Background()
	s, err := m.Create(ctx, []domain.AlgorithmID{domain.BubbleSort}, domain.NewSequence(3, 1, 2), domain.Params{})
	require.NoError(t, err)
	require.NoError(t, m.Control(ctx, s.ID(), "start"))

	require.NoError(t, m.Delete(ctx, s.ID()))
	assert.Equal(t, domain.StateStopped, s.State())
	_, err = m.Get(s.ID())
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.ErrorIs(t, m.Delete(ctx, s.ID()), domain.ErrSessionNotFound)
}

func TestManager_PlayRunsInBackground(t *testing.T) {
	m, store := newManager(session.WithManagerPacing(scheduler.Pacing{Base: time.Millisecond, Min: time.Millisecond}))
	ctx := context.Background()
	s, err := m.Create(ctx, []domain.AlgorithmID{domain.MergeSort, domain.RadixSort}, domain.NewSequence(9, 7, 5, 3, 1), domain.Params{})
	require.NoError(t, err)

	require.NoError(t, m.Play(ctx, s.ID()))
	require.Eventually(t, s.Done, 5*time.Second, 5*time.Millisecond)

	require.Eventually(t, func() bool {
		keys, _ := store.List(ctx)
		return len(keys) == 2
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, m.Close(ctx))
	assert.Empty(t, m.List())
}

// failingStore refuses every write.
type failingStore struct{ *memory.Store }

func (failingStore) Save(context.Context, domain.RunSummary) error {
	return errors.New("disk full")
}

func TestManager_StoreFailureDoesNotInterruptRun(t *testing.T) {
	m := session.NewManager(catalogue.Default(), failingStore{memory.NewStore()})
	ctx := context.Background()
	s, err := m.Create(ctx, []domain.AlgorithmID{domain.BubbleSort}, domain.NewSequence(2, 1), domain.Params{})
	require.NoError(t, err)
	require.NoError(t, s.Start(ctx))

	for s.State() == domain.StateRunning {
		_, err := m.Tick(ctx, s.ID())
		require.NoError(t, err)
	}
	assert.True(t, s.Done())
}

func TestManager_HooksReachEverySession(t *testing.T) {
	rec := &recorder{}
	m, _ := newManager(session.WithManagerHooks(rec.hooks()))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		s, err := m.Create(ctx, []domain.AlgorithmID{domain.SelectionSort}, domain.NewSequence(2, 1), domain.Params{})
		require.NoError(t, err)
		require.NoError(t, s.Start(ctx))
		runToEnd(t, s)
	}
	assert.Len(t, rec.done, 2)
}

func TestManager_WithoutStore(t *testing.T) {
	m := session.NewManager(catalogue.Default(), nil)
	results, err := m.Results(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, results)
	assert.Nil(t, m.Store())
}
