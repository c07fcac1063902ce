package edges

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/arcgraph/pkg/geom"
)

const eps = 1e-9

func TestPathStraight(t *testing.T) {
	r := &Record{Ordinal: 1, TotalCoincident: 1, Straight: true, SufficientLength: true,
		Start: vec(0, 0, 0), End: vec(4, 0, 0)}

	pts, err := DefaultArcParams().Path(r, 0)
	require.NoError(t, err)
	require.Len(t, pts, 2)
	assert.Equal(t, *r.Start, pts[0])
	assert.Equal(t, *r.End, pts[1])
}

func TestPathInsufficientLength(t *testing.T) {
	r := &Record{Ordinal: 1, TotalCoincident: 1, Start: vec(1, 1, 0), End: vec(1, 1, 0)}
	pts, err := DefaultArcParams().Path(r, 0)
	assert.NoError(t, err)
	assert.Nil(t, pts)
}

func TestPathArc(t *testing.T) {
	r := &Record{Ordinal: 1, TotalCoincident: 2, SufficientLength: true,
		Start: vec(0, 0, 0), End: vec(2, 0, 0)}

	pts, err := DefaultArcParams().Path(r, 0)
	require.NoError(t, err)
	require.Len(t, pts, NumSegments+1)

	assert.Equal(t, *r.Start, pts[0])
	assert.Equal(t, *r.End, pts[NumSegments])

	// uniform angular sampling gives equal chord lengths
	step := pts[0].Distance(pts[1])
	for i := 1; i < NumSegments; i++ {
		assert.InDelta(t, step, pts[i].Distance(pts[i+1]), eps, "segment %d", i)
	}

	// the midpoint sits one sagitta away from the chord
	radius := 8.0
	sagitta := radius - math.Sqrt(radius*radius-1)
	mid := pts[NumSegments/2]
	assert.InDelta(t, sagitta, mid.Distance(geom.New(1, 0, 0)), eps)
}

func TestPathCoincidentArcsFanOut(t *testing.T) {
	p := DefaultArcParams()
	mids := make([]geom.Vector3, 2)
	for i := range mids {
		r := &Record{Ordinal: i + 1, TotalCoincident: 2, SufficientLength: true,
			Start: vec(0, 0, 0), End: vec(2, 0, 0)}
		pts, err := p.Path(r, 8)
		require.NoError(t, err)
		mids[i] = pts[4]
	}

	// level 1 with two slots puts the arcs half a turn apart
	assert.InDelta(t, 1.0, mids[0].X, eps)
	assert.InDelta(t, 1.0, mids[1].X, eps)
	assert.InDelta(t, -mids[0].Y, mids[1].Y, eps)
	assert.NotZero(t, mids[0].Y)
}

func TestPathSelfLoop(t *testing.T) {
	node := vec(3, -2, 0)
	r := &Record{Ordinal: 1, TotalCoincident: 1, SelfEdge: true, SufficientLength: true,
		Start: node, End: node}

	pts, err := DefaultArcParams().Path(r, 4)
	require.NoError(t, err)
	require.Len(t, pts, 4*selfLoopSegmentFactor+1)
	assert.Equal(t, *node, pts[0])
	assert.Equal(t, *node, pts[len(pts)-1])

	radius := DefaultMinSelfRadius + DefaultRadiusFactor
	center := node.Plus(geom.PositiveY.Multiply(radius))
	farthest := 0.0
	for i, pt := range pts {
		assert.InDelta(t, radius, pt.Distance(center), eps, "point %d", i)
		farthest = max(farthest, pt.Distance(*node))
	}
	assert.InDelta(t, 2*radius, farthest, eps)
}

func TestPathUnanalyzedRecord(t *testing.T) {
	r := &Record{SufficientLength: true, Start: vec(0, 0, 0), End: vec(1, 0, 0)}
	_, err := DefaultArcParams().Path(r, 8)
	assert.ErrorIs(t, err, ErrInvalidOrdinal)
}

func TestBounds(t *testing.T) {
	a := NewAnalyzer(Options{})
	recs := a.Analyze(scenario(), 1)

	box := Bounds(a.Params(), recs, 0)
	require.False(t, box.Empty())

	for _, r := range recs {
		pts, err := a.Path(r, 0)
		require.NoError(t, err)
		for _, pt := range pts {
			assert.GreaterOrEqual(t, pt.X, box.Min().X-eps)
			assert.GreaterOrEqual(t, pt.Y, box.Min().Y-eps)
			assert.LessOrEqual(t, pt.X, box.Max().X+eps)
			assert.LessOrEqual(t, pt.Y, box.Max().Y+eps)
		}
	}
	// the arcs bulge past the node row
	assert.Less(t, box.Min().Y, 0.0)
	assert.Greater(t, box.Max().Y, 0.0)
	assert.InDelta(t, 0.0, box.Min().X, 1)
	assert.InDelta(t, 100.0, box.Max().X, 1e-6)
}

func TestBoundsEmpty(t *testing.T) {
	box := Bounds(DefaultArcParams(), nil, 0)
	assert.True(t, box.Empty())
}

func TestPathClampsSegments(t *testing.T) {
	arc := &Record{Ordinal: 1, TotalCoincident: 2, SufficientLength: true,
		Start: vec(0, 0, 0), End: vec(10, 0, 0)}
	loop := &Record{Ordinal: 1, TotalCoincident: 1, SelfEdge: true, SufficientLength: true,
		Start: vec(0, 0, 0), End: vec(0, 0, 0)}

	tests := []struct {
		name     string
		r        *Record
		segments int
		want     int
	}{
		{"ArcDefault", arc, 0, NumSegments + 1},
		{"ArcAtLimit", arc, MaxSegments, MaxSegments + 1},
		{"ArcHuge", arc, 1 << 40, MaxSegments + 1},
		{"LoopHuge", loop, 1 << 40, MaxSegments*selfLoopSegmentFactor + 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pts, err := DefaultArcParams().Path(tt.r, tt.segments)
			require.NoError(t, err)
			if len(pts) != tt.want {
				t.Errorf("len(Path(%d)) = %d, want %d", tt.segments, len(pts), tt.want)
			}
		})
	}
}

func TestPathNonFinite(t *testing.T) {
	loop := &Record{Ordinal: 1, TotalCoincident: 1, SelfEdge: true, SufficientLength: true,
		Start: vec(0, 0, 0), End: vec(0, 0, 0)}

	// the radius fits but the far side of the circle does not
	pts, err := ArcParams{RadiusFactor: 1e308}.Path(loop, 4)
	assert.ErrorIs(t, err, ErrNonFiniteArc)
	assert.Nil(t, pts)

	box := Bounds(ArcParams{RadiusFactor: 1e308}, []*Record{loop}, 4)
	assert.True(t, box.Empty())
}
