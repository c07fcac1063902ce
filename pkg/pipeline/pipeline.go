// Package pipeline provides the arcgraph processing pipeline.
//
// The pipeline is shared by the CLI and the HTTP API so both positions,
// analyzes and exports graphs the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Layout: place nodes without coordinates using a layout engine. Results
//     are cached by graph content and engine options.
//  2. Analyze: run the edge geometry engine over the positioned graph.
//  3. Export: serialize the resulting scene as JSON, SVG or DOT.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, g, pipeline.Options{Formats: []string{"json"}})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	sceneJSON := result.Artifacts["json"]
//
// Stages can also be run on their own:
//
//	net, layout, hit, err := runner.Position(ctx, g, opts)
//	analyzer := runner.Analyze(net, opts)
//	artifacts, err := runner.Export(ctx, s, net.Graph(), opts)
package pipeline

import (
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/arcgraph/pkg/cache"
	"github.com/matzehuels/arcgraph/pkg/config"
	"github.com/matzehuels/arcgraph/pkg/edges"
	"github.com/matzehuels/arcgraph/pkg/errors"
	"github.com/matzehuels/arcgraph/pkg/graph"
	"github.com/matzehuels/arcgraph/pkg/layout"
	"github.com/matzehuels/arcgraph/pkg/scene"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultDistanceScale divides layout coordinates into world units.
	DefaultDistanceScale = 178.0

	// DefaultLayoutTTL is how long computed layouts stay cached.
	DefaultLayoutTTL = 7 * 24 * time.Hour

	// DefaultArtifactTTL is how long exported artifacts stay cached.
	DefaultArtifactTTL = 24 * time.Hour
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run. It is also the
// body of API requests, next to the graph.
type Options struct {
	// Layout options
	Engine      string  `json:"engine,omitempty"`
	LayoutScale float64 `json:"layout_scale,omitempty"`
	Force       bool    `json:"force,omitempty"` // re-layout positioned nodes too

	// Analysis options
	DistanceScale float64         `json:"distance_scale,omitempty"`
	Ordering      string          `json:"ordering,omitempty"`
	Segments      int             `json:"segments,omitempty"`
	Arc           edges.ArcParams `json:"arc,omitempty"`

	// Export options
	Formats []string `json:"formats,omitempty"`

	// Runtime options (not serialized)
	Logger      *log.Logger   `json:"-"`
	LayoutTTL   time.Duration `json:"-"`
	ArtifactTTL time.Duration `json:"-"`
}

// OptionsFromConfig returns pipeline options carrying the configured
// defaults.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		Engine:        cfg.Layout.Engine,
		LayoutScale:   cfg.Layout.Scale,
		Force:         cfg.Layout.Force,
		DistanceScale: cfg.Engine.DistanceScale,
		Ordering:      cfg.Engine.Ordering,
		Segments:      cfg.Engine.Segments,
		Arc:           cfg.Engine.AnalyzerOptions().Arc,
		LayoutTTL:     cfg.Cache.TTL.Std(),
	}
}

// ValidateAndSetDefaults fills zero values and rejects invalid ones. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Engine == "" {
		o.Engine = layout.DefaultEngine
	}
	if o.LayoutScale == 0 {
		o.LayoutScale = 1
	}
	if o.DistanceScale == 0 {
		o.DistanceScale = DefaultDistanceScale
	}
	if o.Segments == 0 {
		o.Segments = edges.NumSegments
	}
	if o.LayoutTTL == 0 {
		o.LayoutTTL = DefaultLayoutTTL
	}
	if o.ArtifactTTL == 0 {
		o.ArtifactTTL = DefaultArtifactTTL
	}

	if !slices.Contains(layout.Engines(), o.Engine) {
		return errors.New(errors.ErrCodeInvalidLayout, "unknown layout engine %q", o.Engine)
	}
	if err := errors.ValidateScale("layout_scale", o.LayoutScale); err != nil {
		return err
	}
	if err := errors.ValidateScale("distance_scale", o.DistanceScale); err != nil {
		return err
	}
	if _, ok := edges.ParseOrdering(o.Ordering); !ok {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown ordering %q", o.Ordering)
	}
	if o.Segments < 0 || o.Segments > edges.MaxSegments {
		return errors.New(errors.ErrCodeInvalidConfig, "segments must be between 1 and %d", edges.MaxSegments)
	}
	if err := o.Arc.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid arc parameters")
	}
	return scene.ValidateFormats(o.Formats)
}

// AnalyzerOptions returns the options for edges.NewAnalyzer.
func (o Options) AnalyzerOptions() edges.Options {
	ordering, _ := edges.ParseOrdering(o.Ordering)
	return edges.Options{Ordering: ordering, Arc: o.Arc, Logger: o.Logger}
}

// LayoutKeyOpts returns the options that identify a cached layout.
func (o Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{Engine: o.Engine, Scale: o.LayoutScale}
}

// ArtifactKeyOpts returns the options that identify a cached artifact.
func (o Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	ordering, _ := edges.ParseOrdering(o.Ordering)
	return cache.ArtifactKeyOpts{
		Format:         format,
		Engine:         o.Engine,
		DistanceScale:  o.DistanceScale,
		Ordering:       ordering.String(),
		Segments:       o.Segments,
		MinSelfRadius:  o.Arc.MinSelfRadius,
		RadiusFactor:   o.Arc.RadiusFactor,
		RadiusExponent: o.Arc.RadiusExponent,
	}
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the input graph with every resolvable node positioned and
	// every edge carrying its ID.
	Graph graph.Graph

	// GraphHash is the content hash of Graph.
	GraphHash string

	// Layout is the layout applied to the graph, nil when no engine ran.
	Layout *graph.Layout

	// Records are the analyzed edges sorted by ID.
	Records []*edges.Record

	Scene graph.Scene

	// Artifacts contains exported outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount   int
	EdgeCount   int
	Placed      int // positions returned by the layout engine
	LayoutTime  time.Duration
	AnalyzeTime time.Duration
	ExportTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool
	ExportHit bool // every requested artifact came from the cache
}
