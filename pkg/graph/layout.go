package graph

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/arcgraph/pkg/edges"
	"github.com/matzehuels/arcgraph/pkg/errors"
	"github.com/matzehuels/arcgraph/pkg/geom"
)

// =============================================================================
// Layout - Computed Node Positions
// =============================================================================

// Layout is the serialization format for node positions computed by a layout
// engine. It is what the layout cache stores and what `arcgraph layout`
// writes.
type Layout struct {
	Engine string  `json:"engine"`
	Scale  float64 `json:"scale,omitempty"`

	// Frame dimensions reported by the engine, in layout units.
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	Positions []Position `json:"positions"`
}

// Position is the placement of one node.
type Position struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	Z  float64 `json:"z,omitempty"`
}

// Vector returns the position as a vector.
func (p Position) Vector() geom.Vector3 { return geom.New(p.X, p.Y, p.Z) }

// Apply writes the layout's positions to the matching nodes of n and returns
// how many were placed. Nodes that already have coordinates are only moved
// when overwrite is set. Positions for unknown nodes are ignored.
func (l Layout) Apply(n *Network, overwrite bool) int {
	placed := 0
	for _, p := range l.Positions {
		if !overwrite {
			if _, ok := n.Position(edges.NodeID(p.ID)); ok {
				continue
			}
		}
		if n.SetPosition(p.ID, p.Vector()) {
			placed++
		}
	}
	return placed
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// Validates that the engine is named and position IDs are unique.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unmarshal layout")
	}

	if l.Engine == "" {
		return Layout{}, errors.New(errors.ErrCodeInvalidLayout, "layout must name its engine")
	}

	seen := make(map[string]struct{}, len(l.Positions))
	for _, p := range l.Positions {
		if _, dup := seen[p.ID]; dup {
			return Layout{}, errors.New(errors.ErrCodeInvalidLayout, "duplicate position for node %q", p.ID)
		}
		seen[p.ID] = struct{}{}
	}

	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
