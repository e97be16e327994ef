// Package scene describes what tori renders: an eye, a list of figures and
// the lights that shade them. Descriptions are read from INI or YAML files.
package scene

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/taigrr/tori/pkg/math3d"
	"github.com/taigrr/tori/pkg/models"
	"github.com/taigrr/tori/pkg/render"
)

// Sentinel errors wrapped by the loaders. Use errors.Is to test for them.
var (
	ErrMissingKey = errors.New("missing key")
	ErrSyntax     = errors.New("syntax error")
	ErrType       = errors.New("wrong value type")
	ErrRange      = errors.New("value out of range")
	ErrFormat     = errors.New("unsupported scene format")
)

// Defaults applied when a scene file leaves a value out.
const (
	DefaultWidth       = 1024
	DefaultAspectRatio = 4.0 / 3.0
	DefaultHFOVDegrees = 30
)

// DefaultEyePosition is the eye position used when none is configured.
var DefaultEyePosition = math3d.Point(20, 10, 15)

// Eye places the camera and sizes the image.
type Eye struct {
	Position math3d.Vector
	// Direction is the viewing direction. The zero vector means "look at
	// the origin".
	Direction math3d.Vector
	// Polar, when set, overrides Position and Direction: the eye sits at
	// the polar coordinates and looks at the origin.
	Polar *math3d.Polar

	HFOV        float32 // horizontal field of view, radians
	AspectRatio float32 // width / height
	Width       int     // image width in pixels
}

// DefaultEye returns the eye used when a scene configures nothing.
func DefaultEye() Eye {
	return Eye{
		Position:    DefaultEyePosition,
		Direction:   math3d.Vector{}.Sub(DefaultEyePosition),
		HFOV:        degrees(DefaultHFOVDegrees),
		AspectRatio: DefaultAspectRatio,
		Width:       DefaultWidth,
	}
}

// Transform returns the world-to-eye transform.
func (e Eye) Transform() math3d.Transform {
	if e.Polar != nil {
		return math3d.EyeTransform(*e.Polar)
	}
	dir := e.Direction
	if dir.Len() == 0 {
		dir = e.Position.Negate()
	}
	return math3d.EyeTransformLookingAlong(e.Position, math3d.Direction(dir.X, dir.Y, dir.Z))
}

// Placement returns the eye position in polar form.
func (e Eye) Placement() math3d.Polar {
	if e.Polar != nil {
		return *e.Polar
	}
	return math3d.PolarFromPoint(e.Position)
}

// Viewport derives the projection for this eye.
func (e Eye) Viewport() render.Viewport {
	return render.NewViewport(e.HFOV, e.AspectRatio, e.Width)
}

// Figure is one object in the scene.
type Figure struct {
	Shape    models.Shape
	Material render.Material
	Center   math3d.Vector
	Scale    float32
	// Rotations in radians, counter-clockwise.
	RotateX, RotateY, RotateZ float32
}

// Description is a complete scene.
type Description struct {
	Eye        Eye
	Figures    []Figure
	Lights     []render.Light
	Background render.Color
	Shading    string
}

// Shader resolves the configured shading mode.
func (d *Description) Shader() (render.Shader, error) {
	s, err := render.ShaderByName(d.Shading)
	if err != nil {
		return nil, fmt.Errorf("shading: %w: %v", ErrRange, err)
	}
	return s, nil
}

func (d *Description) validate() error {
	e := d.Eye
	switch {
	case e.Width <= 0:
		return fmt.Errorf("size %d: %w", e.Width, ErrRange)
	case !(e.AspectRatio > 0):
		return fmt.Errorf("aspect ratio %v: %w", e.AspectRatio, ErrRange)
	case !(e.HFOV > 0 && e.HFOV < math.Pi):
		return fmt.Errorf("hfov %v rad: %w", e.HFOV, ErrRange)
	}
	if e.Polar != nil && !(e.Polar.Radius > 0) {
		return fmt.Errorf("eye radius %v: %w", e.Polar.Radius, ErrRange)
	}
	if e.Polar == nil && e.Position.Len() == 0 && e.Direction.Len() == 0 {
		return fmt.Errorf("eye at the origin needs a view direction: %w", ErrMissingKey)
	}
	_, err := d.Shader()
	return err
}

// Load reads a scene file. The format is picked from the extension:
// .ini for the sectioned key/value format, .yaml or .yml for YAML.
func Load(path string) (*Description, error) {
	var parse func(*os.File) (*Description, error)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".ini":
		parse = func(f *os.File) (*Description, error) { return ParseINI(f) }
	case ".yaml", ".yml":
		parse = func(f *os.File) (*Description, error) { return ParseYAML(f) }
	default:
		return nil, fmt.Errorf("%s: %w %q", path, ErrFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()

	d, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// shapeFor maps a figure type name to a shape. Unknown names fall back to
// the default torus with a warning.
func shapeFor(index int, typ string, torus func() (models.Torus, error)) (models.Shape, error) {
	switch typ {
	case "Tetrahedron":
		return models.Tetrahedron{}, nil
	case "Torus":
		t, err := torus()
		if err != nil {
			return nil, err
		}
		return t, nil
	default:
		slog.Warn("unknown figure type, using default torus", "figure", index, "type", typ)
		return models.Unknown{Type: typ}, nil
	}
}

func degrees(d float32) float32 {
	return d * math.Pi / 180
}

func point(t [3]float32) math3d.Vector {
	return math3d.Point(t[0], t[1], t[2])
}

func direction(t [3]float32) math3d.Vector {
	return math3d.Direction(t[0], t[1], t[2])
}

func color(t [3]float32) render.Color {
	return render.NewColor(t[0], t[1], t[2])
}
