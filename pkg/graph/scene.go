package graph

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/arcgraph/pkg/edges"
)

// =============================================================================
// Scene - Analyzed Edge Geometry
// =============================================================================

// Scene is the serialization format for an analyzed network: every node in
// world space and every edge with its classification, arc and polyline.
// Renderers consume it without re-running the analysis.
type Scene struct {
	DistanceScale float64         `json:"distance_scale"`
	Ordering      string          `json:"ordering"`
	Params        edges.ArcParams `json:"params"`
	Stats         SceneStats      `json:"stats"`
	Bounds        *Bounds         `json:"bounds,omitempty"`
	Nodes         []SceneNode     `json:"nodes"`
	Edges         []SceneEdge     `json:"edges"`
}

// SceneNode is a node position after distance scaling.
type SceneNode struct {
	ID       string     `json:"id"`
	Label    string     `json:"label,omitempty"`
	Position [3]float64 `json:"position"`
}

// SceneEdge is the analyzed form of one edge.
type SceneEdge struct {
	ID       string `json:"id"`
	From     string `json:"from"`
	To       string `json:"to"`
	Pair     uint64 `json:"pair"`
	Ordinal  int    `json:"ordinal"`
	Total    int    `json:"total"`
	Self     bool   `json:"self,omitempty"`
	Straight bool   `json:"straight,omitempty"`

	// Drawable is false for edges whose endpoints are unresolved or too
	// close together; they carry no arc or path.
	Drawable bool         `json:"drawable"`
	Arc      *edges.Arc   `json:"arc,omitempty"`
	Path     [][3]float64 `json:"path,omitempty"`
}

// SceneStats mirrors [edges.Stats].
type SceneStats struct {
	Edges      int `json:"edges"`
	Records    int `json:"records"`
	Straight   int `json:"straight"`
	Curved     int `json:"curved"`
	SelfLoops  int `json:"self_loops"`
	Degenerate int `json:"degenerate"`
	Violations int `json:"violations"`
}

// Bounds is an axis-aligned box.
type Bounds struct {
	Min [3]float64 `json:"min"`
	Max [3]float64 `json:"max"`
}

// MarshalScene serializes a Scene to pretty-printed JSON bytes.
func MarshalScene(s Scene) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// UnmarshalScene deserializes JSON bytes into a Scene.
func UnmarshalScene(data []byte) (Scene, error) {
	var s Scene
	if err := json.Unmarshal(data, &s); err != nil {
		return Scene{}, fmt.Errorf("unmarshal scene: %w", err)
	}
	return s, nil
}
