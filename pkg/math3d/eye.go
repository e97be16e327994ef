package math3d

import "math"

// Polar places a point by azimuth (around Z, from +X), elevation (from +Z)
// and distance from the origin. Angles are in radians.
type Polar struct {
	Azimuth   float32
	Elevation float32
	Radius    float32
}

// PolarFromPoint converts the x, y, z part of v to polar coordinates.
func PolarFromPoint(v Vector) Polar {
	r := v.Len()
	p := Polar{Radius: r}
	if r == 0 {
		return p
	}
	p.Azimuth = float32(math.Atan2(float64(v.Y), float64(v.X)))
	p.Elevation = float32(math.Acos(float64(v.Z / r)))
	return p
}

// Point returns the Cartesian position of p.
func (p Polar) Point() Vector {
	sa, ca := math.Sincos(float64(p.Azimuth))
	se, ce := math.Sincos(float64(p.Elevation))
	r := float64(p.Radius)
	return Point(float32(r*se*ca), float32(r*se*sa), float32(r*ce))
}

// EyeTransform maps world space into the eye space of a camera placed at p
// and looking at the origin. In eye space the camera sits at the origin and
// looks down -Z.
func EyeTransform(p Polar) Transform {
	t := eyeRotation(p.Azimuth, p.Elevation)
	t[3][2] = -p.Radius
	return t
}

// EyeTransformLookingAlong maps world space into the eye space of a camera
// at pos looking along dir. dir must not be zero.
func EyeTransformLookingAlong(pos, dir Vector) Transform {
	// The rotation only depends on the angles of the backward axis.
	back := PolarFromPoint(dir.Negate())
	return Translation(pos.Negate()).Mul(eyeRotation(back.Azimuth, back.Elevation))
}

func eyeRotation(azimuth, elevation float32) Transform {
	return RotationZ(azimuth + math.Pi/2).Mul(RotationX(elevation))
}
