package pipeline

import (
	"context"
	"io"
	"math"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/arcgraph/pkg/config"
	"github.com/matzehuels/arcgraph/pkg/edges"
	"github.com/matzehuels/arcgraph/pkg/errors"
	"github.com/matzehuels/arcgraph/pkg/graph"
	"github.com/matzehuels/arcgraph/pkg/layout"
)

// memCache is an in-memory cache.Cache that counts writes.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Clear(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = map[string][]byte{}
	return nil
}

func (c *memCache) Close() error { return nil }

func ptr(v float64) *float64 { return &v }

func quietLogger() *log.Logger { return log.New(io.Discard) }

func positioned() graph.Graph {
	return graph.Graph{
		Nodes: []graph.Node{
			{ID: "a", X: ptr(0), Y: ptr(0)},
			{ID: "b", X: ptr(356), Y: ptr(0)},
		},
		Edges: []graph.Edge{
			{ID: "e1", From: "a", To: "b"},
			{ID: "e2", From: "a", To: "b"},
			{ID: "e3", From: "b", To: "b"},
		},
	}
}

func unpositioned() graph.Graph {
	g := positioned()
	g.Nodes = append(g.Nodes, graph.Node{ID: "c"})
	g.Edges = append(g.Edges, graph.Edge{From: "c", To: "a"})
	return g
}

func TestValidateAndSetDefaults(t *testing.T) {
	var opts Options
	require.NoError(t, opts.ValidateAndSetDefaults())
	assert.Equal(t, layout.DefaultEngine, opts.Engine)
	assert.Equal(t, 1.0, opts.LayoutScale)
	assert.Equal(t, DefaultDistanceScale, opts.DistanceScale)
	assert.Equal(t, edges.NumSegments, opts.Segments)
	assert.Equal(t, DefaultLayoutTTL, opts.LayoutTTL)

	atLimit := Options{Segments: edges.MaxSegments}
	require.NoError(t, atLimit.ValidateAndSetDefaults())

	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"UnknownEngine", Options{Engine: "spring"}, errors.ErrCodeInvalidLayout},
		{"NegativeLayoutScale", Options{LayoutScale: -2}, errors.ErrCodeInvalidConfig},
		{"NegativeDistanceScale", Options{DistanceScale: -1}, errors.ErrCodeInvalidConfig},
		{"UnknownOrdering", Options{Ordering: "random"}, errors.ErrCodeInvalidConfig},
		{"NegativeSegments", Options{Segments: -1}, errors.ErrCodeInvalidConfig},
		{"TooManySegments", Options{Segments: edges.MaxSegments + 1}, errors.ErrCodeInvalidConfig},
		{"HugeSegments", Options{Segments: 1 << 40}, errors.ErrCodeInvalidConfig},
		{"InfiniteArc", Options{Arc: edges.ArcParams{RadiusExponent: math.Inf(1)}}, errors.ErrCodeInvalidConfig},
		{"NegativeArc", Options{Arc: edges.ArcParams{RadiusFactor: -1}}, errors.ErrCodeInvalidConfig},
		{"UnknownFormat", Options{Formats: []string{"png"}}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("ValidateAndSetDefaults() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Layout.Engine = layout.EngineCircle
	cfg.Engine.Ordering = "enumeration"

	opts := OptionsFromConfig(cfg)
	assert.Equal(t, layout.EngineCircle, opts.Engine)
	assert.Equal(t, 178.0, opts.DistanceScale)
	assert.Equal(t, edges.OrderEnumeration, opts.AnalyzerOptions().Ordering)
	assert.Equal(t, cfg.Cache.TTL.Std(), opts.LayoutTTL)
	require.NoError(t, opts.ValidateAndSetDefaults())
}

func TestExecutePositionedGraph(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	res, err := r.Execute(context.Background(), positioned(), Options{Formats: []string{"json", "svg"}})
	require.NoError(t, err)

	assert.Nil(t, res.Layout, "no layout should run")
	assert.Equal(t, 2, res.Stats.NodeCount)
	assert.Equal(t, 3, res.Stats.EdgeCount)
	assert.NotEmpty(t, res.GraphHash)

	require.Len(t, res.Records, 3)
	assert.Equal(t, edges.EdgeID("e1"), res.Records[0].Edge.ID)
	assert.Equal(t, 2, res.Records[0].TotalCoincident)
	assert.True(t, res.Records[2].SelfEdge)

	// positions are divided by the default distance scale
	assert.Equal(t, [3]float64{2, 0, 0}, res.Scene.Nodes[1].Position)
	assert.Contains(t, res.Artifacts, "json")
	assert.Contains(t, string(res.Artifacts["svg"]), "<svg")
}

func TestExecuteRunsLayout(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	res, err := r.Execute(context.Background(), unpositioned(), Options{Engine: layout.EngineCircle})
	require.NoError(t, err)

	require.NotNil(t, res.Layout)
	assert.Equal(t, layout.EngineCircle, res.Layout.Engine)
	assert.Equal(t, 3, res.Stats.Placed)
	assert.Empty(t, res.Graph.Unpositioned())
	assert.Len(t, res.Scene.Nodes, 3)

	// pinned nodes keep their coordinates
	p, ok := res.Graph.Nodes[1].Position()
	require.True(t, ok)
	assert.Equal(t, 356.0, p.X)

	// the generated edge ID is carried through
	assert.NotEmpty(t, res.Graph.Edges[3].ID)
	assert.Nil(t, res.Artifacts)
}

func TestExecuteForceRelayout(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	res, err := r.Execute(context.Background(), positioned(), Options{Engine: layout.EngineCircle, Force: true})
	require.NoError(t, err)

	require.NotNil(t, res.Layout)
	p, _ := res.Graph.Nodes[1].Position()
	assert.InDelta(t, -100, p.X, 1e-9, "circle layout places the second of two nodes opposite the first")
}

func TestExecuteUsesCache(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, quietLogger())
	opts := Options{Engine: layout.EngineCircle, Formats: []string{"json", "dot"}}

	first, err := r.Execute(context.Background(), unpositioned(), opts)
	require.NoError(t, err)
	assert.False(t, first.CacheInfo.LayoutHit)
	assert.False(t, first.CacheInfo.ExportHit)
	assert.Equal(t, 3, c.sets, "one layout and two artifacts")

	second, err := r.Execute(context.Background(), unpositioned(), opts)
	require.NoError(t, err)
	assert.True(t, second.CacheInfo.LayoutHit)
	assert.True(t, second.CacheInfo.ExportHit)
	assert.Equal(t, 3, c.sets)
	assert.Equal(t, first.Artifacts["json"], second.Artifacts["json"])

	// a different distance scale misses the artifact cache only
	opts.DistanceScale = 1
	third, err := r.Execute(context.Background(), unpositioned(), opts)
	require.NoError(t, err)
	assert.True(t, third.CacheInfo.LayoutHit)
	assert.False(t, third.CacheInfo.ExportHit)
}

func TestExecuteRelabelReusesLayout(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, quietLogger())
	opts := Options{Engine: layout.EngineCircle, Formats: []string{"json"}}

	first, err := r.Execute(context.Background(), unpositioned(), opts)
	require.NoError(t, err)

	g := unpositioned()
	g.Nodes[2].Label = "cache"
	second, err := r.Execute(context.Background(), g, opts)
	require.NoError(t, err)

	assert.True(t, second.CacheInfo.LayoutHit, "labels do not move nodes")
	assert.False(t, second.CacheInfo.ExportHit, "labels are part of the scene")
	assert.NotEqual(t, first.GraphHash, second.GraphHash)
}

func TestExecuteInvalidGraph(t *testing.T) {
	g := positioned()
	g.Edges = append(g.Edges, graph.Edge{From: "a", To: "ghost"})

	r := NewRunner(nil, nil, quietLogger())
	_, err := r.Execute(context.Background(), g, Options{})
	assert.True(t, errors.Is(err, errors.ErrCodeUnknownNode), "err = %v", err)
}

func TestExecuteInvalidOptions(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	_, err := r.Execute(context.Background(), positioned(), Options{Formats: []string{"gif"}})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "err = %v", err)
}

func TestAnalyzeFreshAnalyzer(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	net, err := graph.NewNetwork(positioned())
	require.NoError(t, err)

	opts := Options{DistanceScale: 1}
	a1 := r.Analyze(net, opts)
	a2 := r.Analyze(net, opts)
	assert.NotSame(t, a1, a2)
	assert.Equal(t, 3, a1.Stats().Created)
	assert.Equal(t, 3, a2.Stats().Created)
}

func TestParse(t *testing.T) {
	g, err := Parse(strings.NewReader(`{"nodes":[{"id":"a"},{"id":"b"}],"edges":[{"from":"a","to":"b"}]}`))
	require.NoError(t, err)
	assert.Len(t, g.Nodes, 2)

	_, err = Parse(strings.NewReader(`{"nodes":[{"id":"a"}],"edges":[{"from":"a","to":"b"}]}`))
	assert.True(t, errors.Is(err, errors.ErrCodeUnknownNode), "err = %v", err)

	_, err = Parse(strings.NewReader(`{"nodes":`))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat), "err = %v", err)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	require.NoError(t, graph.WriteGraphFile(positioned(), path))

	g, err := ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, g.Edges, 3)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound), "err = %v", err)
}
