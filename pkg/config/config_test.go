package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/arcgraph/pkg/edges"
	"github.com/matzehuels/arcgraph/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Engine.DistanceScale != 178 {
		t.Errorf("DistanceScale = %v, want 178", cfg.Engine.DistanceScale)
	}
	if cfg.Engine.Segments != edges.NumSegments {
		t.Errorf("Segments = %v, want %v", cfg.Engine.Segments, edges.NumSegments)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[engine]
ordering = "enumeration"
distance_scale = 1.0

[layout]
engine = "circle"

[cache]
backend = "redis"
ttl = "90m"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Engine.Ordering != "enumeration" {
		t.Errorf("Ordering = %q, want enumeration", cfg.Engine.Ordering)
	}
	if cfg.Engine.DistanceScale != 1 {
		t.Errorf("DistanceScale = %v, want 1", cfg.Engine.DistanceScale)
	}
	if cfg.Engine.Segments != edges.NumSegments {
		t.Errorf("Segments = %v, want default %v", cfg.Engine.Segments, edges.NumSegments)
	}
	if cfg.Layout.Engine != "circle" || cfg.Layout.Scale != 1 {
		t.Errorf("Layout = %+v", cfg.Layout)
	}
	if cfg.Cache.Backend != BackendRedis || cfg.Cache.TTL.Std() != 90*time.Minute {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want :8080", cfg.Server.Addr)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code errors.Code
	}{
		{"Syntax", "[engine\n", errors.ErrCodeInvalidConfig},
		{"UnknownKey", "[engine]\nspeed = 3\n", errors.ErrCodeInvalidConfig},
		{"BadOrdering", "[engine]\nordering = \"random\"\n", errors.ErrCodeInvalidConfig},
		{"ZeroScale", "[engine]\ndistance_scale = 0.0\n", errors.ErrCodeInvalidConfig},
		{"ZeroSegments", "[engine]\nsegments = 0\n", errors.ErrCodeInvalidConfig},
		{"TooManySegments", "[engine]\nsegments = 4096\n", errors.ErrCodeInvalidConfig},
		{"BadBackend", "[cache]\nbackend = \"memcached\"\n", errors.ErrCodeInvalidConfig},
		{"BadTTL", "[cache]\nttl = \"soon\"\n", errors.ErrCodeInvalidConfig},
		{"NegativeLayoutScale", "[layout]\nscale = -1.0\n", errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if !errors.Is(err, tt.code) {
				t.Errorf("Load() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(explicit missing) error = %v, want FILE_NOT_FOUND", err)
	}

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(default missing) error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load(default missing) = %+v, want defaults", cfg)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/custom-config")
	path, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/custom-config", AppName, "config.toml"); path != want {
		t.Errorf("DefaultPath() = %q, want %q", path, want)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	path, err = DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".config", AppName, "config.toml"); path != want {
		t.Errorf("DefaultPath() = %q, want %q", path, want)
	}
}

func TestAnalyzerOptions(t *testing.T) {
	c := Default().Engine
	c.Ordering = "enumeration"
	c.MinSelfRadius = 0.1

	opts := c.AnalyzerOptions()
	if opts.Ordering != edges.OrderEnumeration {
		t.Errorf("Ordering = %v, want enumeration", opts.Ordering)
	}
	if opts.Arc.MinSelfRadius != 0.1 || opts.Arc.RadiusExponent != edges.DefaultRadiusExponent {
		t.Errorf("Arc = %+v", opts.Arc)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := Default().Write(&buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if !strings.Contains(buf.String(), `ttl = "168h0m0s"`) {
		t.Errorf("TTL not written as duration string:\n%s", buf.String())
	}

	cfg, err := Load(writeConfig(t, buf.String()))
	if err != nil {
		t.Fatalf("Load(written) error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("round trip = %+v, want defaults", cfg)
	}
}
