package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/matzehuels/arcgraph/pkg/graph"
)

// Key namespaces. Bump keyVersion when a cached document changes shape.
const (
	keyVersion     = "v1"
	layoutPrefix   = "layout"
	artifactPrefix = "artifact"
)

// hashKey returns "<prefix>:<keyVersion>:<sha256 of the JSON-encoded parts>".
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + keyVersion + ":" + Hash(data)
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// GraphHash is the content hash of a whole graph document. Artifacts are
// keyed by it since labels and edge IDs show up in exported scenes.
func GraphHash(g graph.Graph) (string, error) {
	data, err := graph.MarshalGraph(g)
	if err != nil {
		return "", err
	}
	return Hash(data), nil
}

// layoutInput is the part of a graph a layout engine reads.
type layoutInput struct {
	Nodes []layoutNode `json:"n"`
	Edges [][2]string  `json:"e"`
}

type layoutNode struct {
	ID string   `json:"id"`
	X  *float64 `json:"x,omitempty"`
	Y  *float64 `json:"y,omitempty"`
}

// LayoutHash hashes node IDs with their pinned coordinates and the edge
// endpoints in order. Labels, metadata and edge IDs do not move nodes, so
// graphs differing only in those share a cached layout.
func LayoutHash(g graph.Graph) string {
	in := layoutInput{
		Nodes: make([]layoutNode, len(g.Nodes)),
		Edges: make([][2]string, len(g.Edges)),
	}
	for i, n := range g.Nodes {
		in.Nodes[i] = layoutNode{ID: n.ID}
		if n.X != nil && n.Y != nil {
			in.Nodes[i].X, in.Nodes[i].Y = n.X, n.Y
		}
	}
	for i, e := range g.Edges {
		in.Edges[i] = [2]string{e.From, e.To}
	}
	data, _ := json.Marshal(in)
	return Hash(data)
}
