// Package edges assigns draw geometry to the edges of a node-link graph.
//
// # Overview
//
// An [Analyzer] keeps one [Record] per edge, keyed by the edge's stable
// [EdgeID]. Every call to [Analyzer.Analyze] reconciles the record set with the
// edges currently in the host [Network], counts how many edges connect each
// unordered node pair, resolves world-space endpoints and classifies each edge:
//
//   - straight: the only edge between two distinct nodes
//   - curved: one of several coincident edges between the same pair
//   - self-loop: source and target are the same node (never straight)
//
// Records persist across passes and are updated in place; a record disappears
// on the first pass in which its edge is no longer enumerated.
//
// # Arc Packing
//
// Coincident edges are packed into concentric levels so they fan out instead
// of overlapping. Level k holds 2k+1 slots, mirroring square numbers:
//
//	level := ⌊√ordinal⌋
//	angle := (ordinal - level²) / slotsInLevel * 2π   // mirrored on even levels
//
// Self-loops grow with their level; regular arcs tighten with it. Because
// ordinals start at 1, the level of every analyzed record is at least 1 and the
// regular-arc radius formula, which divides by level², is never singular.
//
// # Usage
//
//	a := edges.NewAnalyzer(edges.Options{Logger: logger})
//	for frame := range frames {
//	    for _, r := range a.Analyze(network, 178) {
//	        if !r.SufficientLength {
//	            continue
//	        }
//	        pts, err := a.Path(r, edges.NumSegments)
//	        ...
//	    }
//	}
//
// # Ordering
//
// Ordinals follow the order edges are visited. With [OrderByID] (the default)
// edges are sorted by ID first, so an unstable host enumeration cannot make
// parallel edges swap places between frames. [OrderEnumeration] keeps the
// host's order.
//
// # Concurrency
//
// An Analyzer is not safe for concurrent use. It is meant to be driven once per
// frame from a single goroutine; the network must not change during a call.
package edges
