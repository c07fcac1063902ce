package layout

import (
	"context"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/arcgraph/pkg/errors"
	"github.com/matzehuels/arcgraph/pkg/graph"
	"github.com/matzehuels/arcgraph/pkg/observability"
)

// Engine names.
const (
	EngineNeato  = "neato"
	EngineFDP    = "fdp"
	EngineSFDP   = "sfdp"
	EngineCirco  = "circo"
	EngineTwopi  = "twopi"
	EngineDot    = "dot"
	EngineCircle = "circle"
)

// DefaultEngine is used when no engine is configured.
const DefaultEngine = EngineNeato

var graphvizEngines = []string{EngineNeato, EngineFDP, EngineSFDP, EngineCirco, EngineTwopi, EngineDot}

// Engines returns the names of all supported engines.
func Engines() []string {
	return append(slices.Clone(graphvizEngines), EngineCircle)
}

// Options configures an Engine.
type Options struct {
	// Scale multiplies every computed coordinate. Zero means 1.
	Scale float64

	// Logger receives debug output. If nil, output is discarded.
	Logger *log.Logger
}

// Engine computes node positions for a graph.
type Engine interface {
	Name() string
	Layout(ctx context.Context, g graph.Graph) (graph.Layout, error)
}

// New returns the engine with the given name.
func New(name string, opts Options) (Engine, error) {
	if name == "" {
		name = DefaultEngine
	}
	if opts.Scale == 0 {
		opts.Scale = 1
	}
	if err := errors.ValidateScale("layout scale", opts.Scale); err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	var eng Engine
	switch {
	case name == EngineCircle:
		eng = &circleEngine{scale: opts.Scale}
	case slices.Contains(graphvizEngines, name):
		eng = &graphvizEngine{name: name, scale: opts.Scale, logger: opts.Logger}
	default:
		return nil, errors.New(errors.ErrCodeInvalidLayout, "unknown layout engine %q (want one of %v)", name, Engines())
	}
	return observed{eng}, nil
}

// observed reports layout timing to the pipeline hooks.
type observed struct {
	Engine
}

func (o observed) Layout(ctx context.Context, g graph.Graph) (graph.Layout, error) {
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, o.Name(), len(g.Nodes))
	start := time.Now()
	l, err := o.Engine.Layout(ctx, g)
	hooks.OnLayoutComplete(ctx, o.Name(), time.Since(start), err)
	return l, err
}
