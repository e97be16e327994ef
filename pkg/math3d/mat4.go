package math3d

import "math"

// Transform is a 4x4 matrix for row vectors: a vector is transformed by
// right-multiplication, v' = v·M.
//
// Layout (t[row][col]):
// | Xx Xy Xz 0 |   X,Y,Z = basis rows (rotation)
// | Yx Yy Yz 0 |   T = translation
// | Zx Zy Zz 0 |
// | Tx Ty Tz 1 |
type Transform [4][4]float32

// Identity returns the identity matrix.
func Identity() Transform {
	return Transform{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// RotationX creates a clockwise rotation around the X axis, seen looking
// down the positive X axis toward the origin.
//
// The eye transform relies on this sign convention.
func RotationX(angle float32) Transform {
	c, s := sincos(angle)
	t := Identity()
	t[1][1] = c
	t[1][2] = -s
	t[2][1] = s
	t[2][2] = c
	return t
}

// RotationZ creates a clockwise rotation around the Z axis, seen looking
// down the positive Z axis toward the origin.
func RotationZ(angle float32) Transform {
	c, s := sincos(angle)
	t := Identity()
	t[0][0] = c
	t[0][1] = -s
	t[1][0] = s
	t[1][1] = c
	return t
}

// Translation creates a matrix that moves points by v. Directions are
// unaffected because their W is 0.
func Translation(v Vector) Transform {
	t := Identity()
	t[3][0] = v.X
	t[3][1] = v.Y
	t[3][2] = v.Z
	return t
}

// Mul multiplies two matrices: a·b. Applying the result equals applying a,
// then b.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Transform) Mul(b Transform) Transform {
	var m Transform
	for row := range 4 {
		for col := range 4 {
			var sum float32
			for k := range 4 {
				sum += a[row][k] * b[k][col]
			}
			m[row][col] = sum
		}
	}
	return m
}

// Compose reduces the transforms left to right. Compose() is the identity.
func Compose(ts ...Transform) Transform {
	m := Identity()
	for _, t := range ts {
		m = m.Mul(t)
	}
	return m
}

func sincos(angle float32) (c, s float32) {
	sn, cs := math.Sincos(float64(angle))
	return float32(cs), float32(sn)
}
