// Package layout places the nodes of a graph that arrive without coordinates.
//
// # Overview
//
// The edge engine only needs node positions; it does not care where they come
// from. Graph files may carry coordinates, and nodes without them are placed by
// one of the engines in this package before analysis.
//
// # Engines
//
//   - neato, fdp, sfdp: force-directed Graphviz layouts (default: neato)
//   - circo, twopi: circular and radial Graphviz layouts
//   - dot: hierarchical Graphviz layout
//   - circle: nodes evenly spaced on a circle, no Graphviz required
//
// Graphviz engines run in-process through [github.com/goccy/go-graphviz]. The
// graph is converted to DOT, laid out, and the node positions are read back
// from the engine's DOT output. Nodes that already have coordinates are
// pinned for the engines that honor pinning (neato, fdp).
//
// # Usage
//
//	eng, err := layout.New("neato", layout.Options{Scale: 1})
//	l, err := eng.Layout(ctx, g)
//	l.Apply(network, false)
//
// # DOT Export
//
// [ToDOT] writes a graph as DOT with pinned positions so the result of an
// analysis can be post-processed with external Graphviz tools.
package layout
