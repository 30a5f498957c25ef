package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/aretw0/stepwise/pkg/domain"
)

// Loader implements ports.ScenarioLoader over an in-memory map.
type Loader struct {
	scenarios map[string]domain.Scenario
}

// NewLoader creates a Loader holding the given scenarios, keyed by Name.
func NewLoader(scenarios ...domain.Scenario) (*Loader, error) {
	m := make(map[string]domain.Scenario, len(scenarios))
	for _, s := range scenarios {
		if s.Name == "" {
			return nil, fmt.Errorf("scenario missing name")
		}
		m[s.Name] = s
	}
	return &Loader{scenarios: m}, nil
}

// Load returns a copy of the named scenario.
func (l *Loader) Load(ctx context.Context, name string) (domain.Scenario, error) {
	s, ok := l.scenarios[name]
	if !ok {
		return domain.Scenario{}, fmt.Errorf("%w: %s", domain.ErrScenarioNotFound, name)
	}
	if s.Dataset != nil {
		d := s.Dataset.Clone()
		s.Dataset = &d
	}
	s.Algorithms = append([]domain.AlgorithmID(nil), s.Algorithms...)
	return s, nil
}

// List returns all scenario names.
func (l *Loader) List(ctx context.Context) ([]string, error) {
	keys := make([]string, 0, len(l.scenarios))
	for k := range l.scenarios {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}
