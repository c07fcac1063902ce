// Package pkg provides the core libraries for arcgraph edge geometry.
//
// # Overview
//
// arcgraph takes a node-link graph, places nodes that have no coordinates and
// computes how every edge is drawn: straight for a single edge between two
// nodes, fanned arcs for parallel edges and stacked loops for self-edges. The
// pkg directory is organized into these areas:
//
//  1. [geom] - 3-D vector math
//  2. [edges] - Edge classification and arc packing
//  3. [graph] - Graph, layout and scene documents
//  4. [layout] - Node placement via Graphviz or a built-in circle
//  5. [scene] - Scene assembly and export (JSON, SVG, DOT)
//  6. [pipeline] - Orchestration (position → analyze → export) with caching
//  7. [cache], [config], [server], [observability] - Infrastructure
//
// # Architecture
//
//	graph.json
//	     ↓
//	[graph] package (validate, build Network)
//	     ↓
//	[layout] package (place unpositioned nodes)
//	     ↓
//	[edges] package (records, ordinals, arcs, paths)
//	     ↓
//	[scene] package (scene JSON, SVG preview, DOT)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/arcgraph/pkg/edges"
//	    "github.com/matzehuels/arcgraph/pkg/graph"
//	)
//
//	g, _ := graph.ReadGraphFile("graph.json")
//	net, _ := graph.NewNetwork(g)
//
//	a := edges.NewAnalyzer(edges.Options{})
//	for _, r := range a.Analyze(net, 178) {
//	    if r.Curved() {
//	        arc, _ := a.ArcMetrics(r)
//	        fmt.Println(r.Edge.ID, arc.Radius, arc.Angle)
//	    }
//	}
//
// For the full flow with layout and caching, use [pipeline.Runner].
//
// # Main Packages
//
// [edges] - The Analyzer keeps one Record per edge across passes. Each pass
// groups edges by unordered node pair, assigns 1-based ordinals in visiting
// order and scales endpoints by the distance scale. Arc metrics pack the
// edges of a pair into concentric levels; Path samples the drawable curve.
//
// [graph] - JSON types for graphs, layouts and scenes, plus Network, the
// validated and indexed view of a graph the Analyzer reads.
//
// [layout] - Engines that return positions for a graph: the Graphviz engines
// (neato, fdp, sfdp, circo, twopi, dot) and a dependency-free circle.
//
// [cache] - Byte caches keyed by content hash: files for the CLI, Redis for
// shared deployments.
//
// [server] - HTTP API over the pipeline.
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/arcgraph/pkg/geom
// [edges]: https://pkg.go.dev/github.com/matzehuels/arcgraph/pkg/edges
// [graph]: https://pkg.go.dev/github.com/matzehuels/arcgraph/pkg/graph
// [layout]: https://pkg.go.dev/github.com/matzehuels/arcgraph/pkg/layout
// [scene]: https://pkg.go.dev/github.com/matzehuels/arcgraph/pkg/scene
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/arcgraph/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/arcgraph/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/arcgraph/pkg/config
// [server]: https://pkg.go.dev/github.com/matzehuels/arcgraph/pkg/server
// [observability]: https://pkg.go.dev/github.com/matzehuels/arcgraph/pkg/observability
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/arcgraph/pkg/pipeline#Runner
package pkg
