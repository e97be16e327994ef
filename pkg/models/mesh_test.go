package models

import (
	"testing"

	"github.com/taigrr/tori/pkg/math3d"
)

func checkTriangles(t *testing.T, m *Mesh) {
	t.Helper()
	for i, f := range m.Faces {
		if len(f) != 3 {
			t.Fatalf("face %d has %d indices, want 3", i, len(f))
		}
		for _, idx := range f {
			if idx < 0 || idx >= m.VertexCount() {
				t.Fatalf("face %d index %d out of range [0, %d)", i, idx, m.VertexCount())
			}
		}
	}
}

func TestTriangulateFan(t *testing.T) {
	m := NewMesh("poly")
	m.Vertices = make([]math3d.Vector, 6)
	m.Faces = []Face{
		{0, 1, 2, 3, 4}, // pentagon
		{0, 1},          // degenerate
		{},              // empty
		{3, 4, 5},       // triangle
	}

	got := m.Triangulated()
	want := []Face{
		{0, 1, 2},
		{0, 2, 3},
		{0, 3, 4},
		{3, 4, 5},
	}
	if len(got.Faces) != len(want) {
		t.Fatalf("got %d faces, want %d: %v", len(got.Faces), len(want), got.Faces)
	}
	for i := range want {
		for k := range 3 {
			if got.Faces[i][k] != want[i][k] {
				t.Errorf("face %d = %v, want %v", i, got.Faces[i], want[i])
			}
		}
	}

	// The source mesh is untouched.
	if len(m.Faces) != 4 || len(m.Faces[0]) != 5 {
		t.Errorf("Triangulated modified its receiver: %v", m.Faces)
	}
}

func TestTriangulateNoOpOnTriangles(t *testing.T) {
	m := NewTetrahedron()
	got := m.Triangulated()

	if got.FaceCount() != m.FaceCount() {
		t.Fatalf("face count %d, want %d", got.FaceCount(), m.FaceCount())
	}
	for i := range m.Faces {
		for k := range 3 {
			if got.Faces[i][k] != m.Faces[i][k] {
				t.Errorf("face %d = %v, want %v", i, got.Faces[i], m.Faces[i])
			}
		}
	}
}

func TestTransformedIsPure(t *testing.T) {
	m := NewTetrahedron()
	moved := m.Transformed(math3d.Translation(math3d.Point(10, 0, 0)))

	if m.Vertices[0] != math3d.Point(1, -1, -1) {
		t.Errorf("source vertex changed to %v", m.Vertices[0])
	}
	if moved.Vertices[0] != math3d.Point(11, -1, -1) {
		t.Errorf("moved vertex = %v, want (11, -1, -1)", moved.Vertices[0])
	}

	moved.Faces[0][0] = 3
	if m.Faces[0][0] != 0 {
		t.Error("Transformed shares face storage with its source")
	}
}

func TestTriangleAccessor(t *testing.T) {
	m := NewTetrahedron()
	a, b, c := m.Triangle(3)
	if a != m.Vertices[1] || b != m.Vertices[3] || c != m.Vertices[2] {
		t.Errorf("Triangle(3) = %v %v %v", a, b, c)
	}
}
