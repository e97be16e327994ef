package math3d

import (
	"math"
	"testing"
)

const tolerance = 1e-5

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) <= tolerance
}

func nearVector(a, b Vector) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z) && a.W == b.W
}

func TestPointAndDirection(t *testing.T) {
	p := Point(1, 2, 3)
	if p.W != 1 || !p.IsPoint() {
		t.Errorf("Point W = %v, want 1", p.W)
	}
	d := Direction(1, 2, 3)
	if d.W != 0 || d.IsPoint() {
		t.Errorf("Direction W = %v, want 0", d.W)
	}
}

func TestApplyIdentity(t *testing.T) {
	tests := []Vector{
		Point(0, 0, 0),
		Point(1.5, -2.25, 1e6),
		Direction(-3, 0.125, 7),
		Direction(1e-7, 0, -1e-7),
	}

	for _, v := range tests {
		if got := v.Apply(Identity()); got != v {
			t.Errorf("%v.Apply(Identity()) = %v, want exact %v", v, got, v)
		}
	}
}

func TestApplyRowVectorConvention(t *testing.T) {
	// result[j] = sum_i v[i] * m[i][j]
	m := Transform{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{9, 10, 11, 12},
		{13, 14, 15, 16},
	}
	v := Vector{1, 0, 2, 1}
	want := Vector{1 + 18 + 13, 2 + 20 + 14, 3 + 22 + 15, 4 + 24 + 16}
	if got := v.Apply(m); got != want {
		t.Errorf("Apply = %v, want %v", got, want)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Vector
		want Vector
	}{
		{"axis", Direction(0, 0, 5), Direction(0, 0, 1)},
		{"3-4-5", Direction(3, 4, 0), Direction(0.6, 0.8, 0)},
		{"point keeps w", Point(0, -2, 0), Point(0, -1, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.Normalize()
			if !nearVector(got, tc.want) {
				t.Errorf("Normalize(%v) = %v, want %v", tc.in, got, tc.want)
			}
			if !near(got.Len(), 1) {
				t.Errorf("length = %v, want 1", got.Len())
			}
		})
	}
}

func TestNegate(t *testing.T) {
	got := Point(1, -2, 3).Negate()
	if want := Point(-1, 2, -3); got != want {
		t.Errorf("Negate = %v, want %v", got, want)
	}
	if Direction(1, 1, 1).Negate().W != 0 {
		t.Error("Negate must not change W")
	}
}

func TestCrossDot(t *testing.T) {
	x := Direction(1, 0, 0)
	y := Direction(0, 1, 0)
	if got := x.Cross(y); got != Direction(0, 0, 1) {
		t.Errorf("x × y = %v, want z", got)
	}
	if got := x.Dot(y); got != 0 {
		t.Errorf("x · y = %v, want 0", got)
	}
	if got := Point(3, 4, 5).Sub(Point(1, 1, 1)); got != Direction(2, 3, 4) {
		t.Errorf("Sub = %v", got)
	}
}
