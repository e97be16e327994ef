// Package math3d provides the homogeneous vector and matrix types used by the
// tori renderer.
package math3d

import "math"

// Vector is a homogeneous 3D coordinate.
// W is 1 for points and 0 for directions; translations only move points.
type Vector struct {
	X, Y, Z, W float32
}

// Point creates a position vector (W=1).
func Point(x, y, z float32) Vector {
	return Vector{x, y, z, 1}
}

// Direction creates a free vector (W=0).
func Direction(x, y, z float32) Vector {
	return Vector{x, y, z, 0}
}

// IsPoint reports whether v is a position.
func (v Vector) IsPoint() bool {
	return v.W == 1
}

// Apply returns v transformed by t using the row-vector convention (v·t).
func (v Vector) Apply(t Transform) Vector {
	in := [4]float32{v.X, v.Y, v.Z, v.W}
	var out [4]float32
	for j := range 4 {
		var sum float32
		for i := range 4 {
			sum += in[i] * t[i][j]
		}
		out[j] = sum
	}
	return Vector{out[0], out[1], out[2], out[3]}
}

// Len returns the magnitude of the x, y, z part.
func (v Vector) Len() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y + v.Z*v.Z)))
}

// Normalize returns v scaled to unit length. W is left untouched.
// The result is undefined (NaN) for a zero-length vector.
func (v Vector) Normalize() Vector {
	l := v.Len()
	return Vector{v.X / l, v.Y / l, v.Z / l, v.W}
}

// Negate returns v with x, y and z negated.
func (v Vector) Negate() Vector {
	return Vector{-v.X, -v.Y, -v.Z, v.W}
}

// Sub returns the direction from b to a.
//
//nolint:st1016 // a-b naming convention is clearer for vector operations
func (a Vector) Sub(b Vector) Vector {
	return Direction(a.X-b.X, a.Y-b.Y, a.Z-b.Z)
}

// Dot returns the dot product of the x, y, z parts.
//
//nolint:st1016 // a·b naming convention is clearer for vector operations
func (a Vector) Dot(b Vector) float32 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross returns the cross product a × b as a direction.
//
//nolint:st1016 // a×b naming convention is clearer for vector operations
func (a Vector) Cross(b Vector) Vector {
	return Direction(
		a.Y*b.Z-a.Z*b.Y,
		a.Z*b.X-a.X*b.Z,
		a.X*b.Y-a.Y*b.X,
	)
}
