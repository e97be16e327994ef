package scene

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/taigrr/tori/pkg/math3d"
	"github.com/taigrr/tori/pkg/models"
	"github.com/taigrr/tori/pkg/render"
)

const tolerance = 1e-5

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < tolerance
}

// checkSample verifies the scene stored in testdata/tori.{ini,yaml}.
func checkSample(t *testing.T, d *Description) {
	t.Helper()

	if d.Eye.Width != 320 || !near(d.Eye.AspectRatio, 1.3333333) {
		t.Errorf("eye size = %d @ %v", d.Eye.Width, d.Eye.AspectRatio)
	}
	if !near(d.Eye.HFOV, math.Pi/6) {
		t.Errorf("hfov = %v, want pi/6", d.Eye.HFOV)
	}
	if d.Eye.Position != math3d.Point(20, 10, 15) {
		t.Errorf("eye position = %+v", d.Eye.Position)
	}
	if d.Eye.Direction != math3d.Direction(-20, -10, -15) {
		t.Errorf("eye direction = %+v, want -position", d.Eye.Direction)
	}
	if d.Shading != "diffuse" {
		t.Errorf("shading = %q", d.Shading)
	}
	if len(d.Lights) != 1 || d.Lights[0].Direction != math3d.Direction(0, 0, 1) || d.Lights[0].Color != render.ColorWhite {
		t.Errorf("lights = %+v", d.Lights)
	}

	if len(d.Figures) != 2 {
		t.Fatalf("got %d figures, want 2", len(d.Figures))
	}
	torus, ok := d.Figures[0].Shape.(models.Torus)
	if !ok {
		t.Fatalf("figure 0 is %T, want models.Torus", d.Figures[0].Shape)
	}
	if torus != (models.Torus{MajorRadius: 5, MinorRadius: 1, Rings: 24, Points: 12}) {
		t.Errorf("torus = %+v", torus)
	}
	if m := d.Figures[0].Material; m.Ambient != (render.Color{R: 1, G: 0.5, B: 0}) || m.Diffuse != (render.Color{R: 0.5, G: 0.5, B: 0.5}) {
		t.Errorf("figure 0 material = %+v", m)
	}
	if !near(d.Figures[0].RotateX, math.Pi/2) || d.Figures[0].Scale != 1 {
		t.Errorf("figure 0 rotateX = %v scale = %v", d.Figures[0].RotateX, d.Figures[0].Scale)
	}

	tet := d.Figures[1]
	if _, ok := tet.Shape.(models.Tetrahedron); !ok {
		t.Errorf("figure 1 is %T, want models.Tetrahedron", tet.Shape)
	}
	if tet.Material.Ambient.Pixel().G != 204 || tet.Material.Specular != (render.Color{}) {
		t.Errorf("figure 1 material = %+v", tet.Material)
	}
	if tet.Center != math3d.Point(0, 0, 3) || tet.Scale != 1.5 || !near(tet.RotateZ, math.Pi/4) {
		t.Errorf("figure 1 placement = %+v", tet)
	}
}

func TestLoadINI(t *testing.T) {
	d, err := Load(filepath.Join("testdata", "tori.ini"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	checkSample(t, d)
	if d.Background != (render.Color{R: 0.1, G: 0.1, B: 0.2}) {
		t.Errorf("background = %+v", d.Background)
	}
}

func TestLoadYAML(t *testing.T) {
	d, err := Load(filepath.Join("testdata", "tori.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	checkSample(t, d)
	if got := d.Background.Hex(); got != "#1a1a33" {
		t.Errorf("background = %s", got)
	}
}

func TestLoadPolarEyeAndUnknownType(t *testing.T) {
	d, err := Load(filepath.Join("testdata", "polar.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if d.Eye.Polar == nil {
		t.Fatal("polar eye not set")
	}
	want := math3d.Polar{Azimuth: math.Pi / 6, Elevation: math.Pi / 3, Radius: 25}
	if p := *d.Eye.Polar; !near(p.Azimuth, want.Azimuth) || !near(p.Elevation, want.Elevation) || p.Radius != 25 {
		t.Errorf("polar = %+v, want %+v", p, want)
	}
	if d.Eye.Placement() != *d.Eye.Polar {
		t.Error("Placement() should return the configured polar coordinates")
	}

	u, ok := d.Figures[0].Shape.(models.Unknown)
	if !ok || u.Type != "Sphere" {
		t.Fatalf("figure 0 = %#v, want models.Unknown{Sphere}", d.Figures[0].Shape)
	}
	if got := u.Build().VertexCount(); got != 400 {
		t.Errorf("unknown shape built %d vertices, want the default torus (400)", got)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.ini")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: %v, want os.ErrNotExist", err)
	}

	path := filepath.Join(dir, "scene.json")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrFormat) {
		t.Errorf("json scene: %v, want ErrFormat", err)
	}
}

func TestDefaultEye(t *testing.T) {
	e := DefaultEye()
	if e.Width != 1024 || e.Position != math3d.Point(20, 10, 15) || !near(e.HFOV, math.Pi/6) {
		t.Errorf("DefaultEye() = %+v", e)
	}
	if vp := e.Viewport(); vp.Height != 768 {
		t.Errorf("default viewport height = %d, want 768", vp.Height)
	}

	// Looking along -position is the same as the polar eye at position.
	got := e.Transform()
	want := math3d.EyeTransform(e.Placement())
	for i := range 4 {
		for j := range 4 {
			if math.Abs(float64(got[i][j]-want[i][j])) > 1e-4 {
				t.Fatalf("Transform()[%d][%d] = %v, want %v", i, j, got[i][j], want[i][j])
			}
		}
	}
}
