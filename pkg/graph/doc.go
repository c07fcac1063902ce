// Package graph provides serialization types for networks, layouts and
// analyzed scenes.
//
// This package defines the canonical wire format for arcgraph's data, used for
// JSON files, API requests and responses, and caching.
//
// # Core Types
//
//   - [Graph]: Node-link format with optional node coordinates
//   - [Network]: Validated view of a Graph implementing edges.Network
//   - [Layout]: Node positions computed by a layout engine
//   - [Scene]: Analyzed edges with arcs and polylines
//
// # Graph Serialization
//
// Graphs use a simple node-link JSON format. Coordinates and edge IDs are
// optional:
//
//	{
//	  "nodes": [{"id": "a", "x": 0, "y": 0}, {"id": "b", "x": 120, "y": 40}],
//	  "edges": [{"from": "a", "to": "b"}, {"id": "loop", "from": "a", "to": "a"}]
//	}
//
// Common operations:
//
//	g, _ := graph.ReadGraphFile("net.json")     // File → Graph
//	net, _ := graph.NewNetwork(g)               // Graph → edges.Network
//	graph.WriteGraphFile(net.Graph(), "out.json")
//
// # Edge Identity
//
// The edge engine keys its state by edge ID, so every edge needs a stable
// one. Edges loaded without an ID receive a name-based UUID derived from
// their endpoints and how many ID-less edges with the same endpoints precede
// them ([EdgeID]). Reloading the same file yields the same IDs.
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package graph
