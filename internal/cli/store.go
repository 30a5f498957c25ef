package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/stepwise/internal/config"
	"github.com/aretw0/stepwise/pkg/adapters/memory"
	"github.com/aretw0/stepwise/pkg/adapters/redis"
	"github.com/aretw0/stepwise/pkg/adapters/sqlite"
	"github.com/aretw0/stepwise/pkg/ports"
)

// OpenStore builds the result store selected by cfg. The returned close
// function releases its connections and is never nil.
func OpenStore(ctx context.Context, cfg config.Store, logger *slog.Logger) (ports.ResultStore, func() error, error) {
	nop := func() error { return nil }
	switch cfg.Backend {
	case "", config.StoreMemory:
		return memory.NewStore(), nop, nil

	case config.StoreRedis:
		var opts []redis.Option
		if cfg.Redis.Prefix != "" {
			opts = append(opts, redis.WithPrefix(cfg.Redis.Prefix))
		}
		if cfg.Redis.TTL > 0 {
			opts = append(opts, redis.WithTTL(time.Duration(cfg.Redis.TTL)))
		}
		store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, nop, fmt.Errorf("redis %s: %w", cfg.Redis.Addr, err)
		}
		logger.Debug("result store ready", "backend", cfg.Backend, "addr", cfg.Redis.Addr)
		return store, store.Close, nil

	case config.StoreSQLite:
		store, err := sqlite.Open(ctx, cfg.SQLite.Path, logger)
		if err != nil {
			return nil, nop, err
		}
		logger.Debug("result store ready", "backend", cfg.Backend, "path", cfg.SQLite.Path)
		return store, store.Close, nil

	default:
		return nil, nop, fmt.Errorf("%w: unknown store backend %q", config.ErrInvalidConfig, cfg.Backend)
	}
}
