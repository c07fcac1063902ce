package scene

import (
	"bytes"
	"fmt"
	"html"
	"strconv"

	"github.com/matzehuels/arcgraph/pkg/geom"
	"github.com/matzehuels/arcgraph/pkg/graph"
)

const (
	svgMaxSide    = 800.0
	svgMargin     = 0.05 // fraction of the larger extent
	svgNodeRadius = 4.0
	svgStroke     = 1.0
)

// SVG draws the scene as seen from +Z: edge paths as polylines and nodes as
// dots. World Y points up, so it is flipped for SVG. The drawing is scaled
// so its larger side is 800 units.
func SVG(s graph.Scene) []byte {
	var box geom.Box
	for _, n := range s.Nodes {
		box.Extend(geom.New(n.Position[0], n.Position[1], 0))
	}
	if s.Bounds != nil {
		box.Extend(geom.New(s.Bounds.Min[0], s.Bounds.Min[1], 0))
		box.Extend(geom.New(s.Bounds.Max[0], s.Bounds.Max[1], 0))
	}

	var buf bytes.Buffer
	if box.Empty() {
		buf.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 1 1" width="1" height="1"></svg>` + "\n")
		return buf.Bytes()
	}

	size := box.Size()
	extent := max(size.X, size.Y)
	if extent <= 0 {
		extent = 1
	}
	box = box.Pad(extent * svgMargin)
	size = box.Size()
	k := svgMaxSide / max(size.X, size.Y)
	w, h := size.X*k, size.Y*k

	project := func(x, y float64) (float64, float64) {
		return (x - box.Min().X) * k, (box.Max().Y - y) * k
	}

	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		num(w), num(h), num(w), num(h))

	fmt.Fprintf(&buf, `  <g class="edges" fill="none" stroke="currentColor" stroke-width="%s">`+"\n", num(svgStroke))
	for _, e := range s.Edges {
		if !e.Drawable || len(e.Path) < 2 {
			continue
		}
		buf.WriteString(`    <polyline data-edge="` + html.EscapeString(e.ID) + `" points="`)
		for i, p := range e.Path {
			if i > 0 {
				buf.WriteByte(' ')
			}
			x, y := project(p[0], p[1])
			buf.WriteString(num(x) + "," + num(y))
		}
		buf.WriteString(`"/>` + "\n")
	}
	buf.WriteString("  </g>\n")

	buf.WriteString(`  <g class="nodes" fill="currentColor">` + "\n")
	for _, n := range s.Nodes {
		x, y := project(n.Position[0], n.Position[1])
		fmt.Fprintf(&buf, `    <circle data-node="%s" cx="%s" cy="%s" r="%s"><title>%s</title></circle>`+"\n",
			html.EscapeString(n.ID), num(x), num(y), num(svgNodeRadius), html.EscapeString(nodeTitle(n)))
	}
	buf.WriteString("  </g>\n")
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func nodeTitle(n graph.SceneNode) string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
