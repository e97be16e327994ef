package models

import (
	"math"

	"github.com/taigrr/tori/pkg/math3d"
)

// Shape describes a procedurally generated solid.
//
// The variants are Tetrahedron, Torus and Unknown.
type Shape interface {
	// Build generates the untriangulated mesh in object space.
	Build() *Mesh
	isShape()
}

// Tetrahedron is the regular tetrahedron inscribed in the cube [-1, 1]³.
type Tetrahedron struct{}

// Torus is a ring torus around the Z axis.
type Torus struct {
	MajorRadius float32 // distance from the axis to the tube center
	MinorRadius float32 // tube radius
	Rings       int     // rings around the axis
	Points      int     // points per ring
}

// Unknown stands in for a figure type the scene named but tori cannot build.
// It renders as DefaultTorus.
type Unknown struct {
	Type string
}

// DefaultTorus is what Unknown shapes build.
var DefaultTorus = Torus{MajorRadius: 5, MinorRadius: 1, Rings: 20, Points: 20}

func (Tetrahedron) isShape() {}
func (Torus) isShape()       {}
func (Unknown) isShape()     {}

// Build implements Shape.
func (Tetrahedron) Build() *Mesh { return NewTetrahedron() }

// Build implements Shape.
func (t Torus) Build() *Mesh {
	return NewTorus(t.MajorRadius, t.MinorRadius, t.Rings, t.Points)
}

// Build implements Shape.
func (Unknown) Build() *Mesh { return DefaultTorus.Build() }

// NewTetrahedron creates a tetrahedron with 4 vertices and 4 triangles.
func NewTetrahedron() *Mesh {
	m := NewMesh("tetrahedron")
	m.Vertices = []math3d.Vector{
		math3d.Point(1, -1, -1),
		math3d.Point(-1, 1, -1),
		math3d.Point(1, 1, 1),
		math3d.Point(-1, -1, 1),
	}
	m.Faces = []Face{
		{0, 1, 2},
		{0, 2, 3},
		{0, 3, 1},
		{1, 3, 2},
	}
	return m
}

// NewTorus creates a torus with major radius R and minor radius r, made of n
// rings of m points each. Vertex i*m+j lies on ring i at segment j. Faces are
// quads.
func NewTorus(R, r float32, n, m int) *Mesh {
	mesh := NewMesh("torus")
	if n <= 0 || m <= 0 {
		return mesh
	}

	mesh.Vertices = make([]math3d.Vector, 0, n*m)
	for i := range n {
		sa, ca := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		for j := range m {
			sb, cb := math.Sincos(2 * math.Pi * float64(j) / float64(m))
			d := float64(R) + float64(r)*cb
			mesh.Vertices = append(mesh.Vertices, math3d.Point(
				float32(ca*d),
				float32(sa*d),
				float32(float64(r)*sb),
			))
		}
	}

	mesh.Faces = make([]Face, 0, n*m)
	for i := range n {
		next := (i + 1) % n
		for j := range m {
			nj := (j + 1) % m
			mesh.Faces = append(mesh.Faces, Face{
				i*m + j,
				next*m + j,
				next*m + nj,
				i*m + nj,
			})
		}
	}
	return mesh
}
