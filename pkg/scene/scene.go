// Package scene turns analyzed edge records into exportable documents.
//
// [Build] snapshots an [edges.Analyzer] pass into a [graph.Scene]: node
// positions after distance scaling, every edge with its pair accounting,
// arc metrics and sampled polyline, and the bounding box of everything
// drawable. [Export] serializes a scene into one or more formats:
//
//   - json: the scene itself, for renderers
//   - svg: a flat preview projected onto the XY plane
//   - dot: the positioned graph as Graphviz DOT
package scene

import (
	"math"

	"github.com/matzehuels/arcgraph/pkg/edges"
	"github.com/matzehuels/arcgraph/pkg/geom"
	"github.com/matzehuels/arcgraph/pkg/graph"
)

// Options controls scene construction.
type Options struct {
	// DistanceScale is the value passed to Analyze. Node positions are
	// divided by it so they share the records' world space.
	DistanceScale float64

	// Segments is the number of segments per arc. Zero means
	// [edges.NumSegments].
	Segments int
}

// Build assembles the scene of the analyzer's last pass over net.
func Build(net *graph.Network, a *edges.Analyzer, opts Options) graph.Scene {
	scale := opts.DistanceScale
	if !(scale > 0) || math.IsInf(scale, 0) {
		scale = 1
	}
	segments := opts.Segments
	if segments < 1 {
		segments = edges.NumSegments
	}

	records := a.Records()
	s := graph.Scene{
		DistanceScale: scale,
		Ordering:      a.Ordering().String(),
		Params:        a.Params(),
		Stats:         sceneStats(a.Stats()),
		Nodes:         make([]graph.SceneNode, 0, len(net.Nodes())),
		Edges:         make([]graph.SceneEdge, 0, len(records)),
	}

	for _, id := range net.Nodes() {
		p, ok := net.Position(id)
		if !ok {
			continue
		}
		n, _ := net.Node(string(id))
		s.Nodes = append(s.Nodes, graph.SceneNode{
			ID:       n.ID,
			Label:    n.Label,
			Position: array(p.Multiply(1 / scale)),
		})
	}

	for _, r := range records {
		s.Edges = append(s.Edges, sceneEdge(a, r, segments))
	}

	if box := edges.Bounds(a.Params(), records, segments); !box.Empty() {
		s.Bounds = &graph.Bounds{Min: array(box.Min()), Max: array(box.Max())}
	}
	return s
}

func sceneEdge(a *edges.Analyzer, r *edges.Record, segments int) graph.SceneEdge {
	e := graph.SceneEdge{
		ID:       string(r.Edge.ID),
		From:     string(r.Edge.Source),
		To:       string(r.Edge.Target),
		Pair:     uint64(r.Pair),
		Ordinal:  r.Ordinal,
		Total:    r.TotalCoincident,
		Self:     r.SelfEdge,
		Straight: r.Straight,
		Drawable: r.SufficientLength,
	}
	if !r.SufficientLength {
		return e
	}
	if !r.Straight {
		if arc, err := a.ArcMetrics(r); err == nil {
			e.Arc = &arc
		}
	}
	pts, err := a.Path(r, segments)
	if err != nil {
		e.Drawable = false
		return e
	}
	e.Path = make([][3]float64, len(pts))
	for i, p := range pts {
		e.Path[i] = array(p)
	}
	return e
}

func sceneStats(st edges.Stats) graph.SceneStats {
	return graph.SceneStats{
		Edges:      st.Edges,
		Records:    st.Records,
		Straight:   st.Straight,
		Curved:     st.Curved,
		SelfLoops:  st.SelfLoops,
		Degenerate: st.Degenerate,
		Violations: st.Violations,
	}
}

func array(v geom.Vector3) [3]float64 { return [3]float64{v.X, v.Y, v.Z} }
