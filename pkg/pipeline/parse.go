package pipeline

import (
	"io"
	"os"

	"github.com/matzehuels/arcgraph/pkg/graph"
)

// Parse reads a graph document and checks that it forms a valid network:
// unique IDs and edges between known nodes.
func Parse(r io.Reader) (graph.Graph, error) {
	g, err := graph.ReadGraph(r)
	if err != nil {
		return graph.Graph{}, err
	}
	if _, err := graph.NewNetwork(g); err != nil {
		return graph.Graph{}, err
	}
	return g, nil
}

// ParseFile reads and checks the graph at path. A path of "-" reads stdin.
func ParseFile(path string) (graph.Graph, error) {
	if path == "-" {
		return Parse(os.Stdin)
	}
	g, err := graph.ReadGraphFile(path)
	if err != nil {
		return graph.Graph{}, err
	}
	if _, err := graph.NewNetwork(g); err != nil {
		return graph.Graph{}, err
	}
	return g, nil
}
