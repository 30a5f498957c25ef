package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aretw0/stepwise/internal/cli"
	"github.com/aretw0/stepwise/internal/config"
	"github.com/aretw0/stepwise/internal/logging"
	"github.com/aretw0/stepwise/pkg/catalogue"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/observability"
	"github.com/aretw0/stepwise/pkg/session"
)

func newLogger(cfg config.Config) *slog.Logger {
	return logging.NewWithFormat(logging.ParseLevel(cfg.Log.Level), cfg.Log.Format, os.Stderr)
}

// newManager opens the configured store and builds a session manager on
// it. shutdown stops every session, then closes the store.
func newManager(ctx context.Context, cfg config.Config, logger *slog.Logger, hooks domain.LifecycleHooks) (mgr *session.Manager, shutdown func(), err error) {
	store, closeStore, err := cli.OpenStore(ctx, cfg.Store, logger)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Log.Level == "debug" {
		hooks = hooks.Merge(observability.LogHooks(logger))
	}
	mgr = session.NewManager(catalogue.Default(), store,
		session.WithManagerLogger(logger),
		session.WithManagerPacing(cfg.Pacing.Scheduler()),
		session.WithManagerHooks(hooks),
	)
	shutdown = func() {
		if err := mgr.Close(context.WithoutCancel(ctx)); err != nil {
			logger.Warn("Failed to close sessions", "err", err)
		}
		if err := closeStore(); err != nil {
			logger.Warn("Failed to close result store", "err", err)
		}
	}
	return mgr, shutdown, nil
}
