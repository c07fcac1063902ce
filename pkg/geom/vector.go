package geom

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// MinNormal is the smallest positive normal float64. Magnitudes at or below
// it are treated as zero.
const MinNormal = 0x1p-1022

// Unit vectors along the positive axes.
var (
	PositiveX = Vector3{X: 1}
	PositiveY = Vector3{Y: 1}
	PositiveZ = Vector3{Z: 1}
)

// Vector3 is a 3-dimensional vector.
type Vector3 struct {
	X, Y, Z float64
}

// New returns the vector (x, y, z).
func New(x, y, z float64) Vector3 { return Vector3{X: x, Y: y, Z: z} }

// FromR3 converts a gonum r3.Vec.
func FromR3(v r3.Vec) Vector3 { return Vector3{X: v.X, Y: v.Y, Z: v.Z} }

// R3 converts v to a gonum r3.Vec.
func (v Vector3) R3() r3.Vec { return r3.Vec{X: v.X, Y: v.Y, Z: v.Z} }

// =============================================================================
// Arithmetic
// =============================================================================

// Plus returns v + o.
func (v Vector3) Plus(o Vector3) Vector3 { return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Subtract returns v - o.
func (v Vector3) Subtract(o Vector3) Vector3 { return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Multiply returns v scaled by s.
func (v Vector3) Multiply(s float64) Vector3 { return Vector3{v.X * s, v.Y * s, v.Z * s} }

// Invert returns the vector pointing in the opposite direction.
func (v Vector3) Invert() Vector3 { return v.Multiply(-1) }

// Dot returns the dot product v·o.
func (v Vector3) Dot(o Vector3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross returns the cross product v×o.
func (v Vector3) Cross(o Vector3) Vector3 {
	return Vector3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// =============================================================================
// Norms
// =============================================================================

// Magnitude returns the Euclidean length of v.
func (v Vector3) Magnitude() float64 { return math.Sqrt(v.MagnitudeSquared()) }

// MagnitudeSquared returns |v|². Prefer it over Magnitude for comparisons.
func (v Vector3) MagnitudeSquared() float64 { return v.X*v.X + v.Y*v.Y + v.Z*v.Z }

// Distance returns the distance between the points v and o.
func (v Vector3) Distance(o Vector3) float64 { return math.Sqrt(v.DistanceSquared(o)) }

// DistanceSquared returns the squared distance between the points v and o.
func (v Vector3) DistanceSquared(o Vector3) float64 {
	dx, dy, dz := v.X-o.X, v.Y-o.Y, v.Z-o.Z
	return dx*dx + dy*dy + dz*dz
}

// Normalize returns v divided by its magnitude, or the zero vector when the
// magnitude is not greater than MinNormal.
func (v Vector3) Normalize() Vector3 {
	length := v.Magnitude()
	if length > MinNormal {
		return Vector3{v.X / length, v.Y / length, v.Z / length}
	}
	return Vector3{}
}

// IsZero reports whether all components are exactly zero.
func (v Vector3) IsZero() bool { return v.X == 0 && v.Y == 0 && v.Z == 0 }

// =============================================================================
// Angles and Projections
// =============================================================================

// Angle returns the unsigned angle between v and o in [0, π].
// If either vector has zero length the angle is 0.
func (v Vector3) Angle(o Vector3) float64 {
	cos := v.Dot(o) / math.Sqrt(v.MagnitudeSquared()*o.MagnitudeSquared())
	switch {
	case math.IsNaN(cos):
		return 0
	case cos >= 1:
		return 0
	case cos <= -1:
		return math.Pi
	default:
		return math.Acos(cos)
	}
}

// AngleAcute returns Angle folded into [0, π/2].
func (v Vector3) AngleAcute(o Vector3) float64 {
	a := v.Angle(o)
	if a > math.Pi/2 {
		return math.Pi - a
	}
	return a
}

// ProjectNormal returns the component of v perpendicular to normal, i.e.
// v - normal*(v·normal). The normal is used as given; normalize it first
// for a true projection onto the plane.
func (v Vector3) ProjectNormal(normal Vector3) Vector3 {
	return v.Subtract(normal.Multiply(v.Dot(normal)))
}

// Rotate treats v as a position vector and rotates it by angle radians about
// the axis normal through the origin, following the right-hand rule.
//
// The axis need not be perpendicular to v: only the component of v
// perpendicular to the axis is rotated, the parallel component is kept.
func (v Vector3) Rotate(normal Vector3, angle float64) Vector3 {
	// P = cos(t)u + sin(t)(n×u) + c, with c the parallel component.
	n := normal.Normalize()
	perpendicular := v.ProjectNormal(n)
	parallel := v.Subtract(perpendicular)

	sin, cos := math.Sincos(angle)
	rotated := n.Cross(perpendicular).Multiply(sin)
	rotated.AddLocal(perpendicular.Multiply(cos))
	rotated.AddLocal(parallel)
	return rotated
}

// Towards linearly interpolates from v to o: v + fraction*(o - v).
// A fraction of 0 returns v and 1 returns o; values outside [0, 1]
// extrapolate, negative values land on the far side of v.
func (v Vector3) Towards(o Vector3, fraction float64) Vector3 {
	return o.Subtract(v).Multiply(fraction).Plus(v)
}

// =============================================================================
// In-place Variants
// =============================================================================

// Set overwrites v with o.
func (v *Vector3) Set(o Vector3) { *v = o }

// AddLocal sets v to v + o.
func (v *Vector3) AddLocal(o Vector3) {
	v.X += o.X
	v.Y += o.Y
	v.Z += o.Z
}

// SubtractLocal sets v to v - o.
func (v *Vector3) SubtractLocal(o Vector3) {
	v.X -= o.X
	v.Y -= o.Y
	v.Z -= o.Z
}

// MultiplyLocal sets v to v*s.
func (v *Vector3) MultiplyLocal(s float64) {
	v.X *= s
	v.Y *= s
	v.Z *= s
}

// DivideLocal sets v to v/s.
func (v *Vector3) DivideLocal(s float64) {
	v.X /= s
	v.Y /= s
	v.Z /= s
}

// CrossLocal sets v to v×o.
func (v *Vector3) CrossLocal(o Vector3) { *v = v.Cross(o) }

// NormalizeLocal normalizes v in place, zeroing it when its magnitude is not
// greater than MinNormal.
func (v *Vector3) NormalizeLocal() { *v = v.Normalize() }

// String formats v as "(x, y, z)".
func (v Vector3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}
