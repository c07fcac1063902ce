package edges

import "github.com/matzehuels/arcgraph/pkg/geom"

// NodeID identifies a node in the host network.
type NodeID string

// EdgeID identifies an edge in the host network. It must stay the same for
// the lifetime of the edge, independent of its attributes.
type EdgeID string

// EdgeRef is an edge as enumerated by the host.
type EdgeRef struct {
	ID     EdgeID
	Source NodeID
	Target NodeID
}

// Network is the read-only view of the host graph consumed by the Analyzer.
type Network interface {
	// Nodes returns every node. A node's position in the slice is its dense
	// index for the current pass.
	Nodes() []NodeID

	// Edges returns the edges to analyze in enumeration order.
	Edges() []EdgeRef

	// Position returns the location of a node, or false if it cannot be
	// resolved.
	Position(id NodeID) (geom.Vector3, bool)
}

// PairID identifies an unordered pair of nodes for one analysis pass:
// max(a, b)*nodeCount + min(a, b) over dense node indices.
type PairID uint64

// NewPairID returns the identifier of the node pair {a, b}. Both indices must
// be in [0, nodeCount).
func NewPairID(a, b, nodeCount int) PairID {
	hi, lo := a, b
	if lo > hi {
		hi, lo = lo, hi
	}
	return PairID(uint64(hi)*uint64(nodeCount) + uint64(lo))
}

// Indices decodes the pair back into its (max, min) node indices.
func (p PairID) Indices(nodeCount int) (hi, lo int) {
	n := uint64(nodeCount)
	return int(uint64(p) / n), int(uint64(p) % n)
}

// Record holds the geometry data computed for one edge. Records are owned by
// the Analyzer and updated in place on every pass.
type Record struct {
	Edge EdgeRef

	// Pair is the identifier of the edge's unordered node pair.
	Pair PairID

	// Ordinal is the 1-based position of the edge among the edges sharing
	// its Pair, in visiting order.
	Ordinal int

	// TotalCoincident is the number of edges sharing Pair.
	TotalCoincident int

	SelfEdge bool

	// Straight is set for the only edge between two distinct nodes.
	Straight bool

	// SufficientLength is false when the edge cannot be drawn: an endpoint
	// is unresolved, or a non-self edge has (near) zero length.
	SufficientLength bool

	// Start and End are the scaled endpoint positions, nil when unresolved.
	Start, End *geom.Vector3
}

// Length returns the distance between the endpoints, or 0 if either is
// unresolved.
func (r *Record) Length() float64 {
	if r.Start == nil || r.End == nil {
		return 0
	}
	return r.Start.Distance(*r.End)
}

// Curved reports whether the record is drawn as an arc between two
// distinct nodes.
func (r *Record) Curved() bool { return !r.Straight && !r.SelfEdge }
