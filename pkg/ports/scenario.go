package ports

import (
	"context"

	"github.com/aretw0/stepwise/pkg/domain"
)

// ScenarioLoader reads stored scenarios.
type ScenarioLoader interface {
	// Load returns the scenario called name.
	// Returns domain.ErrScenarioNotFound if it does not exist.
	Load(ctx context.Context, name string) (domain.Scenario, error)

	// List returns the names of all scenarios, sorted.
	List(ctx context.Context) ([]string, error)
}
