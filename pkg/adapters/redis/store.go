// Package redis stores lane results in Redis so they survive restarts and can
// be shared between processes.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/timer"
)

// DefaultPrefix namespaces every key written by the store.
const DefaultPrefix = "stepwise:result:"

// noExpiry is the index score of summaries saved without a TTL (2100-01-01).
const noExpiry = 4102444800

// Store implements ports.ResultStore using Redis.
// Each summary is a JSON string; a sorted set indexes the keys by expiry.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
	clock  timer.Clock
}

type Option func(*Store)

// WithTTL sets the expiration for summaries.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithClock sets the clock used to score and prune the index.
func WithClock(c timer.Clock) Option {
	return func(s *Store) {
		s.clock = c
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	return NewFromClient(backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	}), opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: DefaultPrefix,
		clock:  timer.SystemClock{},
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(key string) string {
	return s.prefix + key
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save persists the summary.
func (s *Store) Save(ctx context.Context, summary domain.RunSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	score := float64(noExpiry)
	if s.ttl > 0 {
		score = float64(s.clock.Now().Add(s.ttl).Unix())
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(summary.Key()), data, s.ttl)
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{Score: score, Member: summary.Key()})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves a summary.
func (s *Store) Load(ctx context.Context, key string) (domain.RunSummary, error) {
	val, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return domain.RunSummary{}, domain.ErrResultNotFound
		}
		return domain.RunSummary{}, fmt.Errorf("failed to get from redis: %w", err)
	}

	var summary domain.RunSummary
	if err := json.Unmarshal(val, &summary); err != nil {
		return domain.RunSummary{}, fmt.Errorf("failed to unmarshal summary: %w", err)
	}
	return summary, nil
}

// Delete removes the summary.
func (s *Store) Delete(ctx context.Context, key string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(key))
	pipe.ZRem(ctx, s.indexKey(), key)
	_, err := pipe.Exec(ctx)
	return err
}

// List returns the keys of summaries that have not expired.
// Expired entries are pruned from the index on the way.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(s.clock.Now().Unix())
	err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired results: %w", err)
	}

	keys, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	return keys, nil
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
