package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/arcgraph/pkg/cache"
	"github.com/matzehuels/arcgraph/pkg/edges"
	"github.com/matzehuels/arcgraph/pkg/graph"
	"github.com/matzehuels/arcgraph/pkg/scene"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Every Execute
// builds its own Analyzer, so multiple goroutines can share a Runner.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete layout → analyze → export pipeline.
func (r *Runner) Execute(ctx context.Context, g graph.Graph, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Layout
	layoutStart := time.Now()
	net, l, layoutHit, err := r.Position(ctx, g, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Graph = net.Graph()
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.NodeCount = len(net.Nodes())
	result.Stats.EdgeCount = len(net.Edges())
	result.CacheInfo.LayoutHit = layoutHit
	if l != nil {
		result.Stats.Placed = len(l.Positions)
		r.Logger.Info("computed layout",
			"engine", l.Engine,
			"nodes", len(l.Positions),
			"cached", layoutHit,
			"duration", result.Stats.LayoutTime)
	}

	if h, err := cache.GraphHash(result.Graph); err == nil {
		result.GraphHash = h
	}

	// Stage 2: Analyze
	analyzeStart := time.Now()
	a := r.Analyze(net, opts)
	result.Records = a.Records()
	result.Scene = scene.Build(net, a, scene.Options{DistanceScale: opts.DistanceScale, Segments: opts.Segments})
	result.Stats.AnalyzeTime = time.Since(analyzeStart)

	st := a.Stats()
	r.Logger.Info("analyzed edges",
		"records", st.Records,
		"curved", st.Curved,
		"self_loops", st.SelfLoops,
		"degenerate", st.Degenerate,
		"duration", result.Stats.AnalyzeTime)
	if missing := net.Unpositioned(); len(missing) > 0 {
		r.Logger.Warn("nodes without position", "count", len(missing), "first", missing[0])
	}

	// Stage 3: Export
	if len(opts.Formats) == 0 {
		return result, nil
	}
	exportStart := time.Now()
	artifacts, exportHit, err := r.exportWithCacheInfo(ctx, result.Scene, result.Graph, result.GraphHash, opts)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.ExportTime = time.Since(exportStart)
	result.CacheInfo.ExportHit = exportHit

	r.Logger.Info("exported outputs",
		"formats", opts.Formats,
		"cached", exportHit,
		"duration", result.Stats.ExportTime)

	return result, nil
}

// Analyze runs a fresh Analyzer over net.
func (r *Runner) Analyze(net *graph.Network, opts Options) *edges.Analyzer {
	r.applyLogger(&opts)
	a := edges.NewAnalyzer(opts.AnalyzerOptions())
	a.Analyze(net, opts.DistanceScale)
	return a
}

// Export serializes a scene, consulting the artifact cache.
func (r *Runner) Export(ctx context.Context, s graph.Scene, g graph.Graph, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	graphHash, _ := cache.GraphHash(g)
	artifacts, _, err := r.exportWithCacheInfo(ctx, s, g, graphHash, opts)
	return artifacts, err
}

func (r *Runner) exportWithCacheInfo(ctx context.Context, s graph.Scene, g graph.Graph, graphHash string, opts Options) (map[string][]byte, bool, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string

	for _, f := range opts.Formats {
		if graphHash == "" {
			missing = append(missing, f)
			continue
		}
		key := r.Keyer.ArtifactKey(graphHash, opts.ArtifactKeyOpts(f))
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			artifacts[f] = data
			continue
		}
		missing = append(missing, f)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	fresh, err := scene.Export(ctx, s, g, missing)
	if err != nil {
		return nil, false, err
	}
	for f, data := range fresh {
		artifacts[f] = data
		if graphHash == "" {
			continue
		}
		key := r.Keyer.ArtifactKey(graphHash, opts.ArtifactKeyOpts(f))
		if err := r.Cache.Set(ctx, key, data, opts.ArtifactTTL); err != nil {
			r.Logger.Debug("artifact not cached", "format", f, "error", err)
		}
	}
	return artifacts, false, nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// Close releases the runner's cache.
func (r *Runner) Close() error {
	return r.Cache.Close()
}
