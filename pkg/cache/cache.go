// Package cache provides byte-level caching for computed layouts and
// rendered artifacts.
//
// Backends:
//   - [FileCache]: files under a local directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the API server
//   - [NullCache]: caching disabled
//
// Keys are produced by a [Keyer] from a content hash of the input and the
// options that influence the result, so identical requests share entries.
//
// # Usage
//
//	c, _ := cache.NewFileCache(dir)
//	key := cache.NewDefaultKeyer().LayoutKey(cache.LayoutHash(g), cache.LayoutKeyOpts{Engine: "neato"})
//	if data, ok, _ := c.Get(ctx, key); ok {
//	    // use cached layout
//	}
package cache

import (
	"context"
	"time"

	"github.com/matzehuels/arcgraph/pkg/observability"
)

// Cache stores opaque byte values by key.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	Delete(ctx context.Context, key string) error

	// Clear removes every entry owned by the cache.
	Clear(ctx context.Context) error

	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	LayoutKey(graphHash string, opts LayoutKeyOpts) string
	ArtifactKey(graphHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the options that influence computed node positions.
type LayoutKeyOpts struct {
	Engine string  `json:"engine"`
	Scale  float64 `json:"scale"`
}

// ArtifactKeyOpts are the options that influence an exported scene.
type ArtifactKeyOpts struct {
	Format         string  `json:"format"`
	Engine         string  `json:"engine"`
	DistanceScale  float64 `json:"distance_scale"`
	Ordering       string  `json:"ordering"`
	Segments       int     `json:"segments"`
	MinSelfRadius  float64 `json:"min_self_radius"`
	RadiusFactor   float64 `json:"radius_factor"`
	RadiusExponent float64 `json:"radius_exponent"`
}

// DefaultKeyer hashes key options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey generates a key for layout caching.
func (DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey(layoutPrefix, graphHash, opts)
}

// ArtifactKey generates a key for exported scene caching.
func (DefaultKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return hashKey(artifactPrefix, graphHash, opts)
}

// Observed wraps c so hits, misses and writes are reported to the global
// cache hooks.
func Observed(c Cache) Cache {
	return &observed{Cache: c}
}

type observed struct {
	Cache
}

func (o *observed) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := o.Cache.Get(ctx, key)
	if err == nil {
		if ok {
			observability.Cache().OnCacheHit(ctx, key)
		} else {
			observability.Cache().OnCacheMiss(ctx, key)
		}
	}
	return data, ok, err
}

func (o *observed) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := o.Cache.Set(ctx, key, data, ttl)
	if err == nil {
		observability.Cache().OnCacheSet(ctx, key, len(data))
	}
	return err
}
