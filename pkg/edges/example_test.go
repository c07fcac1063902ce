package edges_test

import (
	"fmt"

	"github.com/matzehuels/arcgraph/pkg/edges"
	"github.com/matzehuels/arcgraph/pkg/geom"
)

type exampleNetwork struct {
	pos   map[edges.NodeID]geom.Vector3
	edges []edges.EdgeRef
}

func (n exampleNetwork) Nodes() []edges.NodeID { return []edges.NodeID{"a", "b"} }
func (n exampleNetwork) Edges() []edges.EdgeRef { return n.edges }
func (n exampleNetwork) Position(id edges.NodeID) (geom.Vector3, bool) {
	p, ok := n.pos[id]
	return p, ok
}

func ExampleAnalyzer() {
	net := exampleNetwork{
		pos: map[edges.NodeID]geom.Vector3{
			"a": geom.New(0, 0, 0),
			"b": geom.New(10, 0, 0),
		},
		edges: []edges.EdgeRef{
			{ID: "calls", Source: "a", Target: "b"},
			{ID: "returns", Source: "b", Target: "a"},
			{ID: "recurses", Source: "a", Target: "a"},
		},
	}

	a := edges.NewAnalyzer(edges.Options{})
	for _, r := range a.Analyze(net, 1) {
		arc, _ := a.ArcMetrics(r)
		fmt.Printf("%s: %d/%d self=%v straight=%v level=%d\n",
			r.Edge.ID, r.Ordinal, r.TotalCoincident, r.SelfEdge, r.Straight, arc.Level)
	}
	// Output:
	// calls: 1/2 self=false straight=false level=1
	// recurses: 1/1 self=true straight=false level=1
	// returns: 2/2 self=false straight=false level=1
}

func ExampleNewPairID() {
	fmt.Println(edges.NewPairID(2, 5, 10), edges.NewPairID(5, 2, 10))
	// Output: 52 52
}
