package render

import (
	"testing"

	"github.com/taigrr/tori/pkg/math3d"
)

func TestFlatShader(t *testing.T) {
	m := Material{Ambient: NewColor(0.2, 0.4, 0.6), Diffuse: ColorWhite}
	lights := []Light{{Direction: math3d.Direction(0, 0, 1), Color: ColorWhite}}
	if got := (FlatShader{}).Shade(math3d.Direction(0, 0, 1), m, lights); got != m.Ambient {
		t.Errorf("Shade = %+v, want ambient %+v", got, m.Ambient)
	}
}

func TestDiffuseShader(t *testing.T) {
	m := Material{Ambient: NewColor(0.1, 0.1, 0.1), Diffuse: NewColor(0.5, 0.5, 0)}
	light := Light{Direction: math3d.Direction(0, 0, 2), Color: ColorWhite}

	tests := []struct {
		name   string
		normal math3d.Vector
		want   Color
	}{
		{"facing", math3d.Direction(0, 0, 3), Color{0.6, 0.6, 0.1}},
		{"perpendicular", math3d.Direction(1, 0, 0), Color{0.1, 0.1, 0.1}},
		{"away", math3d.Direction(0, 0, -1), Color{0.1, 0.1, 0.1}},
		{"degenerate", math3d.Direction(0, 0, 0), Color{0.1, 0.1, 0.1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := (DiffuseShader{}).Shade(tt.normal, m, []Light{light})
			if !near(got.R, tt.want.R) || !near(got.G, tt.want.G) || !near(got.B, tt.want.B) {
				t.Errorf("Shade = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestShaderByName(t *testing.T) {
	for name, want := range map[string]Shader{"": FlatShader{}, "flat": FlatShader{}, "Diffuse": DiffuseShader{}} {
		got, err := ShaderByName(name)
		if err != nil {
			t.Fatalf("ShaderByName(%q): %v", name, err)
		}
		if got != want {
			t.Errorf("ShaderByName(%q) = %T, want %T", name, got, want)
		}
	}
	if _, err := ShaderByName("phong"); err == nil {
		t.Error("expected error for unknown shading")
	}
}

func TestFaceNormal(t *testing.T) {
	n := FaceNormal(math3d.Point(0, 0, 0), math3d.Point(1, 0, 0), math3d.Point(0, 1, 0))
	if n != math3d.Direction(0, 0, 1) {
		t.Errorf("FaceNormal = %+v, want +Z", n)
	}
}
