// Package config loads the indoornav configuration file.
//
// The file is TOML. Every field is optional; missing fields keep the
// values of Default. CLI flags override the file afterwards.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/katalvlaran/indoornav/cache"
	"github.com/katalvlaran/indoornav/geom"
	"github.com/katalvlaran/indoornav/gridpath"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Cache backends.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config is the whole configuration file.
type Config struct {
	// World is a TOML or JSON world file. Empty selects the demo mall.
	World string `toml:"world"`

	// Lang is the default instruction language.
	Lang string `toml:"lang"`

	// Catalogs are extra TOML message catalogs.
	Catalogs []string `toml:"catalogs"`

	Route  Route  `toml:"route"`
	Server Server `toml:"server"`
	Cache  Cache  `toml:"cache"`
}

// Route tunes the planner.
type Route struct {
	FloorPenalty  float64       `toml:"floor_penalty"`
	MaxExpansions int           `toml:"max_expansions"`
	Timeout       time.Duration `toml:"timeout"`
}

// Server configures the HTTP API.
type Server struct {
	Addr              string        `toml:"addr"`
	ReadHeaderTimeout time.Duration `toml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `toml:"shutdown_timeout"`
	MaxStops          int           `toml:"max_stops"`
}

// Cache selects the route cache.
type Cache struct {
	Backend string            `toml:"backend"`
	TTL     time.Duration     `toml:"ttl"`
	Redis   cache.RedisConfig `toml:"redis"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Lang: "en",
		Route: Route{
			FloorPenalty:  geom.DefaultFloorPenalty,
			MaxExpansions: gridpath.DefaultMaxExpansions,
			Timeout:       5 * time.Second,
		},
		Server: Server{
			Addr:              ":8080",
			ReadHeaderTimeout: 5 * time.Second,
			ShutdownTimeout:   10 * time.Second,
			MaxStops:          50,
		},
		Cache: Cache{
			Backend: CacheMemory,
			TTL:     10 * time.Minute,
			Redis:   cache.RedisConfig{Addr: "localhost:6379", Prefix: "indoornav:"},
		},
	}
}

// Load reads path over Default. An empty path returns Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("%w: unknown key %q in %s", ErrInvalidConfig, undecoded[0].String(), path)
	}
	return cfg, cfg.Validate()
}

// Validate checks value ranges.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}
	if c.Route.FloorPenalty < 0 {
		bad("route.floor_penalty must be non-negative (%g)", c.Route.FloorPenalty)
	}
	if c.Route.MaxExpansions < 0 {
		bad("route.max_expansions must be non-negative (%d)", c.Route.MaxExpansions)
	}
	if c.Route.Timeout < 0 {
		bad("route.timeout must be non-negative (%s)", c.Route.Timeout)
	}
	if c.Server.MaxStops < 0 {
		bad("server.max_stops must be non-negative (%d)", c.Server.MaxStops)
	}
	switch c.Cache.Backend {
	case CacheNone, CacheMemory, CacheRedis:
	default:
		bad("cache.backend %q is not one of none, memory, redis", c.Cache.Backend)
	}
	return errors.Join(errs...)
}
