// Package geom provides the 3D vector type used by the edge geometry engine.
//
// # Overview
//
// [Vector3] is a plain value type. Methods with value receivers never modify
// their operands and return new vectors; the *Local variants take a pointer
// receiver and update the vector in place, which avoids allocations in tight
// per-edge loops.
//
// # Degenerate Inputs
//
// Zero-length vectors never produce NaN:
//
//	geom.Vector3{}.Normalize()          // (0, 0, 0)
//	geom.Vector3{}.Angle(geom.PositiveX) // 0
//
// # Rotation
//
// [Vector3.Rotate] rotates a position vector about an arbitrary axis through
// the origin. The vector is split into components parallel and perpendicular
// to the axis and only the perpendicular part is rotated, so the axis does not
// have to be perpendicular to the vector:
//
//	v := geom.Vector3{X: 1}
//	r := v.Rotate(geom.PositiveZ, math.Pi/2) // ≈ (0, 1, 0)
//
// # Interop
//
// [Vector3.R3] and [FromR3] convert to and from gonum's spatial/r3 vectors.
package geom
