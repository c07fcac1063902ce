package graph

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/matzehuels/arcgraph/pkg/edges"
	"github.com/matzehuels/arcgraph/pkg/errors"
	"github.com/matzehuels/arcgraph/pkg/geom"
)

// edgeNamespace scopes generated edge IDs.
var edgeNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/arcgraph/edge"))

// EdgeID returns the generated identifier of the occurrence-th (0-based)
// edge from -> to that was loaded without an ID. The same input graph always
// yields the same IDs.
func EdgeID(from, to string, occurrence int) string {
	name := from + "\x00" + to + "\x00" + strconv.Itoa(occurrence)
	return uuid.NewSHA1(edgeNamespace, []byte(name)).String()
}

// Network is a validated, read-mostly view of a Graph that implements
// [edges.Network]. Positions may be filled in after construction by a layout
// engine.
type Network struct {
	graph Graph
	nodes []edges.NodeID
	refs  []edges.EdgeRef
	index map[string]int
}

// NewNetwork validates g and prepares it for analysis. It rejects invalid or
// duplicate node IDs, duplicate edge IDs, and edges whose endpoints are not
// nodes of g. Edges without an ID are assigned one with [EdgeID].
//
// The graph is copied; later changes to g are not observed.
func NewNetwork(g Graph) (*Network, error) {
	n := &Network{
		graph: g.Clone(),
		nodes: make([]edges.NodeID, 0, len(g.Nodes)),
		refs:  make([]edges.EdgeRef, 0, len(g.Edges)),
		index: make(map[string]int, len(g.Nodes)),
	}

	for i, node := range n.graph.Nodes {
		if err := errors.ValidateNodeID(node.ID); err != nil {
			return nil, err
		}
		if _, dup := n.index[node.ID]; dup {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "duplicate node %q", node.ID)
		}
		n.index[node.ID] = i
		n.nodes = append(n.nodes, edges.NodeID(node.ID))
	}

	seen := make(map[string]struct{}, len(g.Edges))
	occurrences := make(map[[2]string]int)
	for i := range n.graph.Edges {
		e := &n.graph.Edges[i]
		for _, end := range []string{e.From, e.To} {
			if _, ok := n.index[end]; !ok {
				return nil, errors.New(errors.ErrCodeUnknownNode, "edge %s->%s references unknown node %q", e.From, e.To, end)
			}
		}

		if e.ID == "" {
			key := [2]string{e.From, e.To}
			e.ID = EdgeID(e.From, e.To, occurrences[key])
			occurrences[key]++
		} else if err := errors.ValidateEdgeID(e.ID); err != nil {
			return nil, err
		}
		if _, dup := seen[e.ID]; dup {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "duplicate edge %q", e.ID)
		}
		seen[e.ID] = struct{}{}

		n.refs = append(n.refs, edges.EdgeRef{
			ID:     edges.EdgeID(e.ID),
			Source: edges.NodeID(e.From),
			Target: edges.NodeID(e.To),
		})
	}

	return n, nil
}

// Nodes implements [edges.Network].
func (n *Network) Nodes() []edges.NodeID { return n.nodes }

// Edges implements [edges.Network].
func (n *Network) Edges() []edges.EdgeRef { return n.refs }

// Position implements [edges.Network].
func (n *Network) Position(id edges.NodeID) (geom.Vector3, bool) {
	i, ok := n.index[string(id)]
	if !ok {
		return geom.Vector3{}, false
	}
	return n.graph.Nodes[i].Position()
}

// SetPosition places a node. It reports false for unknown nodes.
func (n *Network) SetPosition(id string, v geom.Vector3) bool {
	i, ok := n.index[id]
	if !ok {
		return false
	}
	n.graph.Nodes[i].SetPosition(v)
	return true
}

// Node returns the node with the given ID.
func (n *Network) Node(id string) (Node, bool) {
	i, ok := n.index[id]
	if !ok {
		return Node{}, false
	}
	return n.graph.Nodes[i], true
}

// Graph returns a copy of the underlying graph with generated edge IDs and
// current positions.
func (n *Network) Graph() Graph { return n.graph.Clone() }

// Unpositioned returns the IDs of nodes that have no coordinates yet.
func (n *Network) Unpositioned() []string { return n.graph.Unpositioned() }
