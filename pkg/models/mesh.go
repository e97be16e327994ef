// Package models provides the procedural polygon meshes rendered by tori.
package models

import (
	"github.com/taigrr/tori/pkg/math3d"
)

// Mesh is an indexed polygon surface.
type Mesh struct {
	Name     string
	Vertices []math3d.Vector
	Faces    []Face
}

// Face lists indices into Mesh.Vertices, counter-clockwise as seen from
// outside the solid. Faces with more than three indices are planar polygons.
type Face []int

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]math3d.Vector, 0),
		Faces:    make([]Face, 0),
	}
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// FaceCount returns the number of faces.
func (m *Mesh) FaceCount() int {
	return len(m.Faces)
}

// Triangle returns the three vertices of face i. The face must be a triangle.
func (m *Mesh) Triangle(i int) (a, b, c math3d.Vector) {
	f := m.Faces[i]
	return m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]
}

// Triangulated returns a copy of m whose faces are all triangles.
// Polygons are fanned from their first vertex; faces with fewer than three
// indices are dropped.
func (m *Mesh) Triangulated() *Mesh {
	out := &Mesh{
		Name:     m.Name,
		Vertices: make([]math3d.Vector, len(m.Vertices)),
		Faces:    make([]Face, 0, len(m.Faces)),
	}
	copy(out.Vertices, m.Vertices)

	for _, f := range m.Faces {
		for k := 2; k < len(f); k++ {
			out.Faces = append(out.Faces, Face{f[0], f[k-1], f[k]})
		}
	}
	return out
}

// Transformed returns a copy of m with every vertex mapped through t.
func (m *Mesh) Transformed(t math3d.Transform) *Mesh {
	out := &Mesh{
		Name:     m.Name,
		Vertices: make([]math3d.Vector, len(m.Vertices)),
		Faces:    make([]Face, len(m.Faces)),
	}
	for i, v := range m.Vertices {
		out.Vertices[i] = v.Apply(t)
	}
	for i, f := range m.Faces {
		out.Faces[i] = append(Face(nil), f...)
	}
	return out
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	return m.Transformed(math3d.Identity())
}
