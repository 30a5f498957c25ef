package ports

import (
	"context"

	"github.com/aretw0/stepwise/pkg/domain"
)

// ResultStore persists the outcome of finished lanes.
// Step history is never stored, only the final RunSummary.
type ResultStore interface {
	// Save persists a summary under summary.Key(), replacing any previous value.
	Save(ctx context.Context, summary domain.RunSummary) error

	// Load retrieves a summary by key.
	// Returns domain.ErrResultNotFound if it does not exist.
	Load(ctx context.Context, key string) (domain.RunSummary, error)

	// Delete removes a summary. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns the keys of all stored summaries.
	List(ctx context.Context) ([]string, error)
}
