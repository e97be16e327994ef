package math3d

import (
	"testing"
)

func BenchmarkTransformMul(b *testing.B) {
	m1 := Translation(Point(1, 2, 3))
	m2 := RotationZ(0.5)

	for b.Loop() {
		_ = m1.Mul(m2)
	}
}

func BenchmarkVectorApply(b *testing.B) {
	m := Translation(Point(1, 2, 3)).Mul(RotationX(0.5))
	v := Point(1, 2, 3)

	for b.Loop() {
		_ = v.Apply(m)
	}
}

func BenchmarkEyeTransform(b *testing.B) {
	p := Polar{Azimuth: 0.4, Elevation: 1.1, Radius: 25}

	for b.Loop() {
		_ = EyeTransform(p)
	}
}

func BenchmarkVectorNormalize(b *testing.B) {
	v := Direction(1, 2, 3)

	for b.Loop() {
		_ = v.Normalize()
	}
}
