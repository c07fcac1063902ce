package layout

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/arcgraph/pkg/errors"
	"github.com/matzehuels/arcgraph/pkg/graph"
)

type graphvizEngine struct {
	name   string
	scale  float64
	logger *log.Logger
}

func (e *graphvizEngine) Name() string { return e.name }

// Layout runs the Graphviz engine in-process and reads node positions back
// from the laid-out graph.
func (e *graphvizEngine) Layout(ctx context.Context, g graph.Graph) (graph.Layout, error) {
	if len(g.Nodes) == 0 {
		return graph.Layout{Engine: e.name, Scale: e.scale}, nil
	}

	dot, names, pinned := layoutDOT(g, e.name, e.scale)
	e.logger.Debug("running graphviz", "engine", e.name, "nodes", len(g.Nodes), "edges", len(g.Edges))

	gv, err := graphviz.New(ctx)
	if err != nil {
		return graph.Layout{}, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()
	gv.SetLayout(graphviz.Layout(e.name))

	parsed, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return graph.Layout{}, errors.Wrap(errors.ErrCodeInternal, err, "parse DOT")
	}
	defer parsed.Close()

	// Rendering to DOT attaches pos and bb to the parsed graph.
	if err := gv.Render(ctx, parsed, graphviz.XDOT, io.Discard); err != nil {
		return graph.Layout{}, errors.Wrap(errors.ErrCodeInvalidLayout, err, "graphviz %s", e.name)
	}

	l, err := readPositions(cgraphAttrs{parsed}, names, e.name)
	if err != nil {
		return graph.Layout{}, err
	}
	if pinningEngines[e.name] {
		realign(l.Positions, pinned)
	}
	for i := range l.Positions {
		l.Positions[i].X *= e.scale
		l.Positions[i].Y *= e.scale
	}
	l.Scale = e.scale
	l.Width *= e.scale
	l.Height *= e.scale
	return l, nil
}

// pinningEngines keep pinned nodes at their input coordinates, up to a
// translation of the whole drawing.
var pinningEngines = map[string]bool{EngineNeato: true, EngineFDP: true}

// realign undoes the translation Graphviz applies to its output so pinned
// nodes land back on their input coordinates. positions are indexed like the
// n0, n1, ... names.
func realign(positions []graph.Position, pinned map[string][2]float64) {
	for i, p := range positions {
		want, ok := pinned["n"+strconv.Itoa(i)]
		if !ok {
			continue
		}
		dx, dy := want[0]-p.X, want[1]-p.Y
		for j := range positions {
			positions[j].X += dx
			positions[j].Y += dy
		}
		return
	}
}

// layoutAttrs reads the attributes Graphviz attaches to a laid-out graph.
type layoutAttrs interface {
	graphAttr(name string) string
	nodeAttr(node, name string) (string, bool)
}

type cgraphAttrs struct{ g *graphviz.Graph }

func (a cgraphAttrs) graphAttr(name string) string { return a.g.GetStr(name) }

func (a cgraphAttrs) nodeAttr(node, name string) (string, bool) {
	n, err := a.g.NodeByName(node)
	if err != nil || n == nil {
		return "", false
	}
	return n.GetStr(name), true
}

// readPositions returns node positions and the bounding box, in points.
// Every node in names must have a position; positions are returned in n0,
// n1, ... order.
func readPositions(attrs layoutAttrs, names map[string]string, engine string) (graph.Layout, error) {
	l := graph.Layout{Engine: engine}

	if bb := attrs.graphAttr("bb"); bb != "" {
		c, err := parseCoords(bb, 4)
		if err != nil {
			return graph.Layout{}, errors.Wrap(errors.ErrCodeInvalidLayout, err, "graphviz %s: bad bb %q", engine, bb)
		}
		l.Width, l.Height = c[2]-c[0], c[3]-c[1]
	}

	l.Positions = make([]graph.Position, len(names))
	for i := range len(names) {
		name := "n" + strconv.Itoa(i)
		pos, ok := attrs.nodeAttr(name, "pos")
		if !ok || pos == "" {
			return graph.Layout{}, errors.New(errors.ErrCodeInvalidLayout, "graphviz %s returned no position for node %q", engine, names[name])
		}
		c, err := parseCoords(pos, 2)
		if err != nil {
			return graph.Layout{}, errors.Wrap(errors.ErrCodeInvalidLayout, err, "graphviz %s: bad position %q for node %q", engine, pos, names[name])
		}
		l.Positions[i] = graph.Position{ID: names[name], X: c[0], Y: c[1]}
	}
	return l, nil
}

// parseCoords reads the first n comma-separated numbers of a Graphviz point
// or rect value. A trailing pin marker and extra dimensions are ignored.
func parseCoords(v string, n int) ([]float64, error) {
	parts := strings.Split(strings.TrimSuffix(strings.TrimSpace(v), "!"), ",")
	if len(parts) < n {
		return nil, fmt.Errorf("want %d coordinates, got %d", n, len(parts))
	}
	out := make([]float64, n)
	for i := range out {
		f, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}
