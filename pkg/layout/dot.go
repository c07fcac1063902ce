package layout

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/arcgraph/pkg/graph"
)

// ToDOT converts a graph to Graphviz DOT. Positioned nodes are pinned, with
// coordinates in points, so `neato -n` or `neato` with pinning reproduces the
// layout. Edge IDs are kept as the `id` attribute.
func ToDOT(g graph.Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white];\n")
	buf.WriteString("\n")

	for i := range g.Nodes {
		n := &g.Nodes[i]
		attrs := []string{"label=" + quote(n.DisplayLabel())}
		if p, ok := n.Position(); ok {
			attrs = append(attrs, "pos="+quote(fmtPos(p.X, p.Y)+"!"))
		}
		fmt.Fprintf(&buf, "  %s [%s];\n", quote(n.ID), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		fmt.Fprintf(&buf, "  %s -> %s", quote(e.From), quote(e.To))
		var attrs []string
		if e.ID != "" {
			attrs = append(attrs, "id="+quote(e.ID))
		}
		if e.Label != "" {
			attrs = append(attrs, "label="+quote(e.Label))
		}
		if len(attrs) > 0 {
			fmt.Fprintf(&buf, " [%s]", strings.Join(attrs, ", "))
		}
		buf.WriteString(";\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

// layoutDOT builds the DOT fed to a Graphviz engine. Nodes are renamed n0,
// n1, ... so laid-out nodes can be looked up by a plain name; the
// returned map resolves those names back to node IDs. Known positions are
// divided by scale and pinned; pinned holds them by name, in points.
func layoutDOT(g graph.Graph, engine string, scale float64) (dot string, names map[string]string, pinned map[string][2]float64) {
	names = make(map[string]string, len(g.Nodes))
	pinned = make(map[string][2]float64)
	byID := make(map[string]string, len(g.Nodes))

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  layout=%s;\n", engine)
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  splines=false;\n")
	buf.WriteString("  node [shape=circle, width=0.5, fixedsize=true, label=\"\"];\n")

	for i := range g.Nodes {
		n := &g.Nodes[i]
		name := "n" + strconv.Itoa(i)
		names[name] = n.ID
		byID[n.ID] = name
		if p, ok := n.Position(); ok {
			x, y := p.X/scale, p.Y/scale
			pinned[name] = [2]float64{x, y}
			fmt.Fprintf(&buf, "  %s [pos=%s];\n", name, quote(fmtPos(x, y)+"!"))
		} else {
			fmt.Fprintf(&buf, "  %s;\n", name)
		}
	}
	for _, e := range g.Edges {
		from, okFrom := byID[e.From]
		to, okTo := byID[e.To]
		if !okFrom || !okTo {
			continue
		}
		fmt.Fprintf(&buf, "  %s -> %s;\n", from, to)
	}
	buf.WriteString("}\n")
	return buf.String(), names, pinned
}

func fmtPos(x, y float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64) + "," + strconv.FormatFloat(y, 'f', -1, 64)
}

// quote returns s as a DOT double-quoted string.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
