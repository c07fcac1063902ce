package geom

import "gonum.org/v1/gonum/spatial/r3"

// Box is an axis-aligned bounding box over a gonum r3.Box. The zero value is
// empty. Unlike r3.Box.Empty, a box holding a single point or a flat set of
// points is not empty.
type Box struct {
	r   r3.Box
	set bool
}

// Extend grows the box to contain p.
func (b *Box) Extend(p Vector3) {
	if !b.set {
		b.r, b.set = r3.Box{Min: p.R3(), Max: p.R3()}, true
		return
	}
	// NewBox orders each axis, so pairing p with either corner moves only
	// the side p lies beyond.
	lo := r3.NewBox(b.r.Min.X, b.r.Min.Y, b.r.Min.Z, p.X, p.Y, p.Z)
	hi := r3.NewBox(b.r.Max.X, b.r.Max.Y, b.r.Max.Z, p.X, p.Y, p.Z)
	b.r = r3.Box{Min: lo.Min, Max: hi.Max}
}

// Empty reports whether no point has been added.
func (b Box) Empty() bool { return !b.set }

// Min returns the lower corner.
func (b Box) Min() Vector3 { return FromR3(b.r.Min) }

// Max returns the upper corner.
func (b Box) Max() Vector3 { return FromR3(b.r.Max) }

// Size returns the extent along each axis.
func (b Box) Size() Vector3 { return FromR3(b.r.Size()) }

// Center returns the midpoint of the box.
func (b Box) Center() Vector3 { return FromR3(b.r.Center()) }

// R3 returns the underlying gonum box.
func (b Box) R3() r3.Box { return b.r }

// Pad returns the box grown by margin on every side. Empty boxes stay empty.
func (b Box) Pad(margin float64) Box {
	if !b.set {
		return b
	}
	m := r3.Vec{X: margin, Y: margin, Z: margin}
	return Box{r: r3.Box{Min: r3.Sub(b.r.Min, m), Max: r3.Add(b.r.Max, m)}, set: true}
}
