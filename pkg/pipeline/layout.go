package pipeline

import (
	"context"

	"github.com/matzehuels/arcgraph/pkg/cache"
	"github.com/matzehuels/arcgraph/pkg/graph"
	"github.com/matzehuels/arcgraph/pkg/layout"
)

// Position builds the network of g and places its unpositioned nodes. With
// opts.Force every node is placed by the engine. The layout is nil when all
// nodes already had coordinates and no engine ran.
func (r *Runner) Position(ctx context.Context, g graph.Graph, opts Options) (*graph.Network, *graph.Layout, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, nil, false, err
	}
	r.applyLogger(&opts)

	if opts.Force {
		g = stripPositions(g)
	}
	net, err := graph.NewNetwork(g)
	if err != nil {
		return nil, nil, false, err
	}
	if len(net.Unpositioned()) == 0 {
		r.Logger.Debug("all nodes positioned, skipping layout")
		return net, nil, false, nil
	}

	l, hit, err := r.GenerateLayoutWithCacheInfo(ctx, net.Graph(), opts)
	if err != nil {
		return nil, nil, false, err
	}
	l.Apply(net, false)
	return net, &l, hit, nil
}

// GenerateLayoutWithCacheInfo runs the layout engine with caching and
// returns cache hit info.
func (r *Runner) GenerateLayoutWithCacheInfo(ctx context.Context, g graph.Graph, opts Options) (graph.Layout, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return graph.Layout{}, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.LayoutKey(cache.LayoutHash(g), opts.LayoutKeyOpts())

	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		cached, err := graph.UnmarshalLayout(data)
		if err == nil {
			return cached, true, nil
		}
		r.Logger.Debug("discarding unreadable cached layout", "error", err)
	}

	l, err := GenerateLayout(ctx, g, opts)
	if err != nil {
		return graph.Layout{}, false, err
	}

	if data, err := graph.MarshalLayout(l); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, opts.LayoutTTL); err != nil {
			r.Logger.Debug("layout not cached", "error", err)
		}
	}
	return l, false, nil
}

// GenerateLayout runs the configured layout engine without caching.
func GenerateLayout(ctx context.Context, g graph.Graph, opts Options) (graph.Layout, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return graph.Layout{}, err
	}
	eng, err := layout.New(opts.Engine, layout.Options{Scale: opts.LayoutScale, Logger: opts.Logger})
	if err != nil {
		return graph.Layout{}, err
	}
	return eng.Layout(ctx, g)
}

func stripPositions(g graph.Graph) graph.Graph {
	out := g.Clone()
	for i := range out.Nodes {
		out.Nodes[i].X, out.Nodes[i].Y, out.Nodes[i].Z = nil, nil, nil
	}
	return out
}
