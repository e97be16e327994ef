package render

import (
	"fmt"
	"strings"

	"github.com/taigrr/tori/pkg/math3d"
)

// Light is a directional light. Direction points from the surface towards
// the light and must be expressed in the same space as the normals passed
// to a Shader.
type Light struct {
	Direction math3d.Vector
	Color     Color
}

// Shader picks the fill color of a polygon.
type Shader interface {
	Shade(normal math3d.Vector, m Material, lights []Light) Color
}

// FlatShader fills every polygon with its ambient color.
type FlatShader struct{}

// Shade implements Shader.
func (FlatShader) Shade(_ math3d.Vector, m Material, _ []Light) Color {
	return m.Ambient
}

// DiffuseShader adds a Lambert term per light to the ambient color.
type DiffuseShader struct{}

// Shade implements Shader.
func (DiffuseShader) Shade(normal math3d.Vector, m Material, lights []Light) Color {
	c := m.Ambient
	n := normal.Normalize()
	for _, l := range lights {
		intensity := n.Dot(l.Direction.Normalize())
		if !(intensity > 0) {
			continue
		}
		c = c.Add(m.Diffuse.Mul(l.Color).Scale(intensity))
	}
	return c
}

// ShaderByName resolves "flat" (or "") and "diffuse".
func ShaderByName(name string) (Shader, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "flat":
		return FlatShader{}, nil
	case "diffuse":
		return DiffuseShader{}, nil
	default:
		return nil, fmt.Errorf("unknown shading %q", name)
	}
}

// FaceNormal returns the unnormalized normal of a counter-clockwise
// triangle.
func FaceNormal(a, b, c math3d.Vector) math3d.Vector {
	return b.Sub(a).Cross(c.Sub(a))
}
