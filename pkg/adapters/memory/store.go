package memory

import (
	"context"
	"sync"

	"github.com/aretw0/stepwise/pkg/domain"
)

// Store implements ports.ResultStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]domain.RunSummary
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]domain.RunSummary),
	}
}

// Save persists the summary in memory.
func (s *Store) Save(ctx context.Context, summary domain.RunSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[summary.Key()] = copySummary(summary)
	return nil
}

// Load retrieves a summary from memory.
func (s *Store) Load(ctx context.Context, key string) (domain.RunSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summary, ok := s.data[key]
	if !ok {
		return domain.RunSummary{}, domain.ErrResultNotFound
	}
	// Copy on read so callers can't mutate the stored Result through the pointer.
	return copySummary(summary), nil
}

// Delete removes the summary.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// List returns the stored keys.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys, nil
}

func copySummary(in domain.RunSummary) domain.RunSummary {
	out := in
	if in.Result != nil {
		r := *in.Result
		out.Result = &r
	}
	return out
}
