package layout

import (
	"context"
	"math"

	"github.com/matzehuels/arcgraph/pkg/graph"
)

// circleSpacing is the arc length between neighbouring nodes on the circle.
const circleSpacing = 100.0

type circleEngine struct {
	scale float64
}

func (e *circleEngine) Name() string { return EngineCircle }

// Layout places nodes counter-clockwise in input order, starting on +X. A
// single node sits at the origin.
func (e *circleEngine) Layout(ctx context.Context, g graph.Graph) (graph.Layout, error) {
	n := len(g.Nodes)
	l := graph.Layout{Engine: EngineCircle, Scale: e.scale, Positions: make([]graph.Position, n)}
	if n == 0 {
		return l, nil
	}
	if n == 1 {
		l.Positions[0] = graph.Position{ID: g.Nodes[0].ID}
		return l, nil
	}

	radius := math.Max(circleSpacing, circleSpacing*float64(n)/(2*math.Pi)) * e.scale
	for i, node := range g.Nodes {
		if err := ctx.Err(); err != nil {
			return graph.Layout{}, err
		}
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		l.Positions[i] = graph.Position{ID: node.ID, X: radius * cos, Y: radius * sin}
	}
	l.Width, l.Height = 2*radius, 2*radius
	return l, nil
}
