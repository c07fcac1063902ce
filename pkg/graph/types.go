package graph

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/arcgraph/pkg/geom"
)

// =============================================================================
// Graph - Network Serialization
// =============================================================================

// Graph is the canonical serialization format for networks.
// Used for input files, API requests, and cache keys.
//
// Node coordinates are optional; nodes without them are placed by a layout
// engine before analysis.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// =============================================================================
// Node
// =============================================================================

// Node is a vertex with an optional position. A node is positioned when both
// X and Y are set; Z defaults to 0.
type Node struct {
	ID    string         `json:"id"`
	Label string         `json:"label,omitempty"` // Display label (defaults to ID)
	X     *float64       `json:"x,omitempty"`
	Y     *float64       `json:"y,omitempty"`
	Z     *float64       `json:"z,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Position returns the node's coordinates, if it has them.
func (n *Node) Position() (geom.Vector3, bool) {
	if n.X == nil || n.Y == nil {
		return geom.Vector3{}, false
	}
	v := geom.New(*n.X, *n.Y, 0)
	if n.Z != nil {
		v.Z = *n.Z
	}
	return v, true
}

// SetPosition stores coordinates on the node. Z is omitted when zero so 2D
// graphs round-trip unchanged.
func (n *Node) SetPosition(v geom.Vector3) {
	x, y := v.X, v.Y
	n.X, n.Y = &x, &y
	n.Z = nil
	if v.Z != 0 {
		z := v.Z
		n.Z = &z
	}
}

// =============================================================================
// Edge
// =============================================================================

// Edge is a connection between two nodes. Parallel edges and self-loops are
// allowed. Edges without an ID get a deterministic one on load, see [EdgeID].
type Edge struct {
	ID    string `json:"id,omitempty"`
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label,omitempty"`
}

// UnmarshalGraph deserializes JSON bytes to a Graph.
func UnmarshalGraph(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, fmt.Errorf("unmarshal graph: %w", err)
	}
	return g, nil
}

// Clone returns a deep copy of the graph structure. Node metadata maps are
// shared.
func (g Graph) Clone() Graph {
	out := Graph{
		Nodes: make([]Node, len(g.Nodes)),
		Edges: make([]Edge, len(g.Edges)),
	}
	for i, n := range g.Nodes {
		if p, ok := n.Position(); ok {
			n.SetPosition(p)
		} else {
			n.X, n.Y, n.Z = nil, nil, nil
		}
		out.Nodes[i] = n
	}
	copy(out.Edges, g.Edges)
	return out
}

// Unpositioned returns the IDs of nodes without coordinates, in input order.
func (g Graph) Unpositioned() []string {
	var ids []string
	for i := range g.Nodes {
		if _, ok := g.Nodes[i].Position(); !ok {
			ids = append(ids, g.Nodes[i].ID)
		}
	}
	return ids
}
