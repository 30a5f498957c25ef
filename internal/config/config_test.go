package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/stepwise/internal/config"
	"github.com/aretw0/stepwise/pkg/scheduler"
)

func write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	assert.Equal(t, scheduler.DefaultPacing(), cfg.Pacing.Scheduler())
	assert.Equal(t, config.StoreMemory, cfg.Store.Backend)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := write(t, "stepwise.yaml", `
pacing:
  base: 1s
  decay: 50ms
log:
  level: debug
store:
  backend: redis
  redis:
    addr: cache:6379
    ttl: 24h
http:
  port: 9090
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, time.Second, cfg.Pacing.Scheduler().Base)
	assert.Equal(t, 100*time.Millisecond, cfg.Pacing.Scheduler().Min, "unset fields keep their default")
	assert.Equal(t, 50*time.Millisecond, cfg.Pacing.Scheduler().Decay)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "cache:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, config.Duration(24*time.Hour), cfg.Store.Redis.TTL)
	assert.Equal(t, "stepwise:result:", cfg.Store.Redis.Prefix)
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestLoad_JSON(t *testing.T) {
	path := write(t, "stepwise.json", `{"store": {"backend": "sqlite", "sqlite": {"path": "/tmp/x.db"}}, "pacing": {"min": "10ms"}}`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.StoreSQLite, cfg.Store.Backend)
	assert.Equal(t, "/tmp/x.db", cfg.Store.SQLite.Path)
	assert.Equal(t, 10*time.Millisecond, cfg.Pacing.Scheduler().Min)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = config.Load(write(t, "bad.yaml", "pacing:\n  base: soon\n"))
	assert.Error(t, err)

	_, err = config.Load(write(t, "backend.yaml", "store:\n  backend: etcd\n"))
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = config.Load(write(t, "pacing.yaml", "pacing:\n  base: 10ms\n  min: 50ms\n"))
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}
