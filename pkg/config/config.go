// Package config loads arcgraph's TOML configuration.
//
// The file lives at $XDG_CONFIG_HOME/arcgraph/config.toml (falling back to
// ~/.config/arcgraph/config.toml) unless a path is given explicitly. Every
// key is optional; missing keys keep the values from [Default].
//
//	[engine]
//	ordering = "id"            # or "enumeration"
//	distance_scale = 178.0
//	segments = 8
//
//	[layout]
//	engine = "neato"
//	scale = 1.0
//
//	[cache]
//	backend = "file"           # file, redis or none
//	redis_addr = "localhost:6379"
//	ttl = "168h"
//
//	[server]
//	addr = ":8080"
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/arcgraph/pkg/edges"
	"github.com/matzehuels/arcgraph/pkg/errors"
)

// AppName names the config and cache directories.
const AppName = "arcgraph"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the complete configuration.
type Config struct {
	Engine EngineConfig `toml:"engine"`
	Layout LayoutConfig `toml:"layout"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// EngineConfig configures edge analysis.
type EngineConfig struct {
	Ordering       string  `toml:"ordering"`
	DistanceScale  float64 `toml:"distance_scale"`
	Segments       int     `toml:"segments"`
	MinSelfRadius  float64 `toml:"min_self_radius"`
	RadiusFactor   float64 `toml:"radius_factor"`
	RadiusExponent float64 `toml:"radius_exponent"`
}

// LayoutConfig configures node placement.
type LayoutConfig struct {
	Engine string  `toml:"engine"`
	Scale  float64 `toml:"scale"`

	// Force re-runs the layout engine even when every node has coordinates.
	Force bool `toml:"force"`
}

// CacheConfig selects and configures the layout cache.
type CacheConfig struct {
	Backend   string   `toml:"backend"`
	Dir       string   `toml:"dir"` // empty: $XDG_CACHE_HOME/arcgraph
	RedisAddr string   `toml:"redis_addr"`
	TTL       Duration `toml:"ttl"`
}

// ServerConfig configures `arcgraph serve`.
type ServerConfig struct {
	Addr         string `toml:"addr"`
	MaxBodyBytes int64  `toml:"max_body_bytes"`
}

// Default returns the built-in configuration.
func Default() Config {
	arc := edges.DefaultArcParams()
	return Config{
		Engine: EngineConfig{
			Ordering:       edges.OrderByID.String(),
			DistanceScale:  178,
			Segments:       edges.NumSegments,
			MinSelfRadius:  arc.MinSelfRadius,
			RadiusFactor:   arc.RadiusFactor,
			RadiusExponent: arc.RadiusExponent,
		},
		Layout: LayoutConfig{
			Engine: "neato",
			Scale:  1,
		},
		Cache: CacheConfig{
			Backend:   BackendFile,
			RedisAddr: "localhost:6379",
			TTL:       Duration(7 * 24 * time.Hour),
		},
		Server: ServerConfig{
			Addr:         ":8080",
			MaxBodyBytes: 8 << 20,
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// Load reads the config file at path on top of [Default]. An empty path
// means [DefaultPath], which may be absent; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			if explicit {
				return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
			}
			return Default(), nil
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	if _, ok := edges.ParseOrdering(c.Engine.Ordering); !ok {
		return errors.New(errors.ErrCodeInvalidConfig, "engine.ordering must be %q or %q, got %q",
			edges.OrderByID, edges.OrderEnumeration, c.Engine.Ordering)
	}
	if err := errors.ValidateScale("engine.distance_scale", c.Engine.DistanceScale); err != nil {
		return err
	}
	if c.Engine.Segments < 1 || c.Engine.Segments > edges.MaxSegments {
		return errors.New(errors.ErrCodeInvalidConfig, "engine.segments must be between 1 and %d, got %d", edges.MaxSegments, c.Engine.Segments)
	}
	for name, v := range map[string]float64{
		"engine.min_self_radius": c.Engine.MinSelfRadius,
		"engine.radius_factor":   c.Engine.RadiusFactor,
		"engine.radius_exponent": c.Engine.RadiusExponent,
	} {
		if err := errors.ValidateScale(name, v); err != nil {
			return err
		}
	}
	if err := errors.ValidateScale("layout.scale", c.Layout.Scale); err != nil {
		return err
	}
	if !slices.Contains([]string{BackendFile, BackendRedis, BackendNone}, c.Cache.Backend) {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend must be file, redis or none, got %q", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl cannot be negative")
	}
	return nil
}

// AnalyzerOptions converts the engine section for edges.NewAnalyzer.
func (c EngineConfig) AnalyzerOptions() edges.Options {
	ordering, _ := edges.ParseOrdering(c.Ordering)
	return edges.Options{
		Ordering: ordering,
		Arc: edges.ArcParams{
			MinSelfRadius:  c.MinSelfRadius,
			RadiusFactor:   c.RadiusFactor,
			RadiusExponent: c.RadiusExponent,
		},
	}
}

// Write encodes the configuration as TOML.
func (c Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Duration is a time.Duration written as a string such as "24h".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }
