package stepwise

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/aretw0/stepwise/internal/logging"
	"github.com/aretw0/stepwise/pkg/catalogue"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/scheduler"
	"github.com/aretw0/stepwise/pkg/session"
	"github.com/aretw0/stepwise/pkg/timer"
)

// Engine is the high-level entry point for the Stepwise library.
// It builds sessions from the algorithm catalogue and starts them.
type Engine struct {
	catalogue *catalogue.Catalogue
	pacing    scheduler.Pacing
	clock     timer.Clock
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	newID     func() string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithCatalogue replaces the built-in algorithm catalogue.
func WithCatalogue(c *catalogue.Catalogue) Option {
	return func(e *Engine) {
		e.catalogue = c
	}
}

// WithPacing sets the tick pacing of every session.
func WithPacing(p scheduler.Pacing) Option {
	return func(e *Engine) {
		e.pacing = p
	}
}

// WithClock sets the time source, mostly for tests.
func WithClock(c timer.Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithIDGenerator overrides how session IDs are made (random UUIDs by default).
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) {
		e.newID = fn
	}
}

// New initializes a new Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		catalogue: catalogue.Default(),
		pacing:    scheduler.DefaultPacing(),
		clock:     timer.SystemClock{},
		logger:    logging.NewNop(),
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalogue returns the algorithms the engine can run.
func (e *Engine) Catalogue() *catalogue.Catalogue {
	return e.catalogue
}

// Start runs one algorithm over data. The returned session is already
// Running; drive it with Tick or Run.
func (e *Engine) Start(ctx context.Context, algorithm domain.AlgorithmID, data *domain.Dataset, params domain.Params) (*session.Session, error) {
	return e.Compare(ctx, []domain.AlgorithmID{algorithm}, data, params)
}

// Compare runs several algorithms side by side, each on its own copy of
// data. A nil dataset fails with domain.ErrNoDataset and creates nothing.
func (e *Engine) Compare(ctx context.Context, algorithms []domain.AlgorithmID, data *domain.Dataset, params domain.Params) (*session.Session, error) {
	if data == nil {
		return nil, fmt.Errorf("cannot start: %w", domain.ErrNoDataset)
	}
	s, err := session.New(e.catalogue, e.newID(), data, params, algorithms,
		session.WithHooks(e.hooks),
		session.WithPacing(e.pacing),
		session.WithClock(e.clock),
		session.WithLogger(e.logger),
	)
	if err != nil {
		return nil, err
	}
	if err := s.Start(ctx); err != nil {
		return nil, err
	}
	return s, nil
}
