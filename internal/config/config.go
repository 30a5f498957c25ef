// Package config loads the stepwise configuration file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/stepwise/pkg/scheduler"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Duration is a time.Duration written as "400ms" in config files.
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Config is the root of the configuration file.
type Config struct {
	Pacing    Pacing `yaml:"pacing" json:"pacing"`
	Log       Log    `yaml:"log" json:"log"`
	Store     Store  `yaml:"store" json:"store"`
	HTTP      HTTP   `yaml:"http" json:"http"`
	Scenarios string `yaml:"scenarios" json:"scenarios"`
}

// Pacing sets the delay between ticks: max(Min, Base - active*Decay).
type Pacing struct {
	Base  Duration `yaml:"base" json:"base"`
	Min   Duration `yaml:"min" json:"min"`
	Decay Duration `yaml:"decay" json:"decay"`
}

type Log struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

type Store struct {
	Backend string `yaml:"backend" json:"backend"`
	Redis   Redis  `yaml:"redis" json:"redis"`
	SQLite  SQLite `yaml:"sqlite" json:"sqlite"`
}

type Redis struct {
	Addr     string   `yaml:"addr" json:"addr"`
	Password string   `yaml:"password" json:"password"`
	DB       int      `yaml:"db" json:"db"`
	Prefix   string   `yaml:"prefix" json:"prefix"`
	TTL      Duration `yaml:"ttl" json:"ttl"`
}

type SQLite struct {
	Path string `yaml:"path" json:"path"`
}

type HTTP struct {
	Port int `yaml:"port" json:"port"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	p := scheduler.DefaultPacing()
	return Config{
		Pacing: Pacing{Base: Duration(p.Base), Min: Duration(p.Min), Decay: Duration(p.Decay)},
		Log:    Log{Level: "info", Format: "text"},
		Store: Store{
			Backend: StoreMemory,
			Redis:   Redis{Addr: "localhost:6379", Prefix: "stepwise:result:"},
			SQLite:  SQLite{Path: "stepwise.db"},
		},
		HTTP: HTTP{Port: 8080},
	}
}

// Load reads a YAML (or, by extension, JSON) file over the defaults.
// An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		err = json.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the values that would otherwise fail late.
func (c Config) Validate() error {
	var errs []error
	if c.Pacing.Min < 0 || c.Pacing.Base < c.Pacing.Min || c.Pacing.Decay < 0 {
		errs = append(errs, fmt.Errorf("pacing: need 0 <= min <= base and decay >= 0"))
	}
	switch c.Store.Backend {
	case StoreMemory, StoreRedis, StoreSQLite:
	default:
		errs = append(errs, fmt.Errorf("store: unknown backend %q", c.Store.Backend))
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log: unknown format %q", c.Log.Format))
	}
	if c.HTTP.Port < 0 || c.HTTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("http: port %d out of range", c.HTTP.Port))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// Scheduler converts the pacing section.
func (p Pacing) Scheduler() scheduler.Pacing {
	return scheduler.Pacing{
		Base:  time.Duration(p.Base),
		Min:   time.Duration(p.Min),
		Decay: time.Duration(p.Decay),
	}
}
