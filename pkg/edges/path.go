package edges

import (
	"math"

	"github.com/matzehuels/arcgraph/pkg/geom"
)

// Path returns the polyline approximating the record's geometry in world
// space. Straight records yield their two endpoints; arcs yield segments+1
// points from start to end; self-loops yield a closed circle through the node.
// Records without sufficient length yield a nil path. segments is clamped to
// [1, MaxSegments], with values below 1 meaning NumSegments.
func (p ArcParams) Path(r *Record, segments int) ([]geom.Vector3, error) {
	if !r.SufficientLength || r.Start == nil || r.End == nil {
		return nil, nil
	}
	if segments < 1 {
		segments = NumSegments
	}
	segments = min(segments, MaxSegments)
	if r.Straight {
		return []geom.Vector3{*r.Start, *r.End}, nil
	}

	arc, err := p.Metrics(r)
	if err != nil {
		return nil, err
	}
	var pts []geom.Vector3
	if r.SelfEdge {
		pts = selfLoop(*r.Start, arc, segments*selfLoopSegmentFactor)
	} else {
		pts = arcPath(*r.Start, *r.End, arc, segments)
	}
	for _, pt := range pts {
		if !finite(pt) {
			return nil, ErrNonFiniteArc
		}
	}
	return pts, nil
}

func finite(v geom.Vector3) bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsInf(c, 0) || math.IsNaN(c) {
			return false
		}
	}
	return true
}

// arcPath samples the minor arc of radius arc.Radius from start to end. The
// arc bulges towards a reference perpendicular of the chord, rotated about
// the chord by arc.Angle.
func arcPath(start, end geom.Vector3, arc Arc, segments int) []geom.Vector3 {
	chord := end.Subtract(start)
	half := chord.Magnitude() / 2
	if arc.Radius <= half {
		return []geom.Vector3{start, end}
	}

	bulge := perpendicular(chord).Rotate(chord, arc.Angle).Normalize()
	h := math.Sqrt(arc.Radius*arc.Radius - half*half)
	center := start.Towards(end, 0.5).Subtract(bulge.Multiply(h))

	from := start.Subtract(center)
	normal := from.Cross(end.Subtract(center))
	if normal.MagnitudeSquared() <= geom.MinNormal {
		return []geom.Vector3{start, end}
	}
	sweep := 2 * math.Asin(half/arc.Radius)

	pts := make([]geom.Vector3, segments+1)
	for i := range segments {
		t := float64(i) / float64(segments)
		pts[i] = center.Plus(from.Rotate(normal, sweep*t))
	}
	pts[segments] = end
	return pts
}

// selfLoop samples a circle of radius arc.Radius passing through node. The
// centre lies along +Y rotated about +Z by arc.Angle.
func selfLoop(node geom.Vector3, arc Arc, segments int) []geom.Vector3 {
	dir := geom.PositiveY.Rotate(geom.PositiveZ, arc.Angle)
	center := node.Plus(dir.Multiply(arc.Radius))
	from := node.Subtract(center)

	pts := make([]geom.Vector3, segments+1)
	for i := range segments {
		t := float64(i) / float64(segments)
		pts[i] = center.Plus(from.Rotate(geom.PositiveZ, 2*math.Pi*t))
	}
	pts[segments] = node
	return pts
}

// perpendicular returns a unit vector perpendicular to v, preferring the
// XY plane so 2D layouts fan out on screen.
func perpendicular(v geom.Vector3) geom.Vector3 {
	n := v.Cross(geom.PositiveZ)
	if n.MagnitudeSquared() <= geom.MinNormal {
		n = v.Cross(geom.PositiveY)
	}
	return n.Normalize()
}

// Bounds returns the box containing every drawable record's path. It is the
// input for fitting a camera or viewport to the edges.
func Bounds(p ArcParams, records []*Record, segments int) geom.Box {
	var box geom.Box
	for _, r := range records {
		pts, err := p.Path(r, segments)
		if err != nil {
			continue
		}
		for _, pt := range pts {
			box.Extend(pt)
		}
	}
	return box
}
