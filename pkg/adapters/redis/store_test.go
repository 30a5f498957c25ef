package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/stepwise/pkg/adapters/redis"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/ports"
	"github.com/aretw0/stepwise/pkg/timer"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newClient(t)
	ports.RunResultStoreContract(t, redis.NewFromClient(client))
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := newClient(t)
	clock := timer.NewManualClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	store := redis.NewFromClient(client, redis.WithTTL(time.Second), redis.WithClock(clock))
	ctx := context.Background()

	summary := domain.RunSummary{SessionID: "s-ttl", Lane: "merge_sort", Algorithm: domain.MergeSort, Steps: 42}
	require.NoError(t, store.Save(ctx, summary))

	keys, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, keys, summary.Key())

	mr.FastForward(2 * time.Second)
	_, err = store.Load(ctx, summary.Key())
	assert.ErrorIs(t, err, domain.ErrResultNotFound)

	clock.Advance(2 * time.Second)
	keys, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	summary := domain.RunSummary{SessionID: "my-session", Lane: "bfs", Algorithm: domain.GridBFS}
	require.NoError(t, store.Save(ctx, summary))

	assert.True(t, mr.Exists("custom:app:my-session/bfs"), "Expected key with custom prefix to exist")
	assert.True(t, mr.Exists("custom:app:index"), "Expected index with custom prefix to exist")

	keys, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"my-session/bfs"}, keys)
}

func TestRedisStore_CorruptValue(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client)
	require.NoError(t, mr.Set(redis.DefaultPrefix+"broken/lane", "{not json"))

	_, err := store.Load(context.Background(), "broken/lane")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrResultNotFound)
}

func TestRedisStore_Ping(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client)
	assert.NoError(t, store.Ping(context.Background()))

	mr.Close()
	assert.Error(t, store.Ping(context.Background()))
}
