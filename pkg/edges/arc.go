package edges

import (
	"errors"
	"fmt"
	"math"
)

// Default arc packing constants. They are aesthetic choices, not derived.
const (
	DefaultMinSelfRadius  = 0.055
	DefaultRadiusFactor   = 0.008
	DefaultRadiusExponent = 1.25

	// NumSegments is the default number of straight segments used to
	// approximate a curved edge.
	NumSegments = 8

	// MaxSegments bounds the segments per arc accepted by Path.
	MaxSegments = 1024
)

// Regular arcs have radius length*(regularRadiusBase + regularRadiusSpread/level²).
const (
	regularRadiusBase   = 0.5
	regularRadiusSpread = 3.5
)

// Self-loops are full circles and get this many times the segments of an arc.
const selfLoopSegmentFactor = 4

var (
	// ErrUnresolved is returned for a regular edge whose endpoints are
	// not both resolved.
	ErrUnresolved = errors.New("edge endpoints unresolved")

	// ErrInvalidOrdinal is returned for a record whose ordinal is not in
	// [1, TotalCoincident], i.e. one that was never analyzed.
	ErrInvalidOrdinal = errors.New("edge ordinal out of range")

	// ErrNonFiniteArc is returned when the constants push an arc radius,
	// or the points sampled along it, past the float64 range.
	ErrNonFiniteArc = errors.New("arc is not finite")
)

// ArcParams holds the self-loop radius constants:
// radius = MinSelfRadius + RadiusFactor*level^RadiusExponent.
type ArcParams struct {
	MinSelfRadius  float64 `toml:"min_self_radius" json:"min_self_radius"`
	RadiusFactor   float64 `toml:"radius_factor" json:"radius_factor"`
	RadiusExponent float64 `toml:"radius_exponent" json:"radius_exponent"`
}

// DefaultArcParams returns the default constants.
func DefaultArcParams() ArcParams {
	return ArcParams{
		MinSelfRadius:  DefaultMinSelfRadius,
		RadiusFactor:   DefaultRadiusFactor,
		RadiusExponent: DefaultRadiusExponent,
	}
}

// Validate reports constants that are negative or not finite. Zero values are
// valid and mean the default.
func (p ArcParams) Validate() error {
	for _, v := range []float64{p.MinSelfRadius, p.RadiusFactor, p.RadiusExponent} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("arc parameter %v must be a finite non-negative number", v)
		}
	}
	return nil
}

func (p ArcParams) withDefaults() ArcParams {
	d := DefaultArcParams()
	if p.MinSelfRadius == 0 {
		p.MinSelfRadius = d.MinSelfRadius
	}
	if p.RadiusFactor == 0 {
		p.RadiusFactor = d.RadiusFactor
	}
	if p.RadiusExponent == 0 {
		p.RadiusExponent = d.RadiusExponent
	}
	return p
}

// Arc describes the circular arc an edge is drawn along.
type Arc struct {
	Radius float64 `json:"radius"`

	// Angle is the rotation of the arc about the node-to-node axis, in
	// radians. For self-loops it is the rotation about +Z.
	Angle float64 `json:"angle"`

	Level        int `json:"level"`
	MaxLevel     int `json:"max_level"`
	SlotsInLevel int `json:"slots_in_level"`
}

// Metrics packs a record into its level and slot and returns the resulting
// arc. Straight records are accepted and yield the arc of a lone edge.
func (p ArcParams) Metrics(r *Record) (Arc, error) {
	if r.Ordinal < 1 || r.Ordinal > r.TotalCoincident {
		return Arc{}, ErrInvalidOrdinal
	}
	p = p.withDefaults()

	level := isqrt(r.Ordinal)
	maxLevel := isqrt(r.TotalCoincident)

	slots := 2*level + 1
	// the outermost level is usually only partially filled
	if level == maxLevel {
		slots = r.TotalCoincident - maxLevel*maxLevel + 1
	}

	var radius float64
	if r.SelfEdge {
		radius = p.MinSelfRadius + p.RadiusFactor*math.Pow(float64(level), p.RadiusExponent)
	} else {
		if r.Start == nil || r.End == nil {
			return Arc{}, ErrUnresolved
		}
		radius = r.Start.Distance(*r.End) * (regularRadiusBase + regularRadiusSpread/float64(level*level))
	}

	if math.IsInf(radius, 0) || math.IsNaN(radius) {
		return Arc{}, ErrNonFiniteArc
	}

	angle := float64(r.Ordinal-level*level) / float64(slots) * 2 * math.Pi
	if level%2 == 0 {
		angle = math.Pi - angle
	}

	return Arc{
		Radius:       radius,
		Angle:        angle,
		Level:        level,
		MaxLevel:     maxLevel,
		SlotsInLevel: slots,
	}, nil
}

// isqrt returns ⌊√n⌋ for n ≥ 0.
func isqrt(n int) int {
	s := int(math.Sqrt(float64(n)))
	for s*s > n {
		s--
	}
	for (s+1)*(s+1) <= n {
		s++
	}
	return s
}
