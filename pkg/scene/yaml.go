package scene

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/taigrr/tori/pkg/math3d"
	"github.com/taigrr/tori/pkg/models"
	"github.com/taigrr/tori/pkg/render"
)

// tuple is a YAML sequence of exactly three numbers.
type tuple [3]float32

// UnmarshalYAML implements yaml.Unmarshaler for tuple.
func (t *tuple) UnmarshalYAML(value *yaml.Node) error {
	var xs []float32
	if value.Kind != yaml.SequenceNode || value.Decode(&xs) != nil {
		return fmt.Errorf("line %d: %w: want [x, y, z]", value.Line, ErrType)
	}
	if len(xs) != 3 {
		return fmt.Errorf("line %d: %w: tuple has %d elements, want 3", value.Line, ErrType, len(xs))
	}
	copy(t[:], xs)
	return nil
}

// hexColor is either an [r, g, b] sequence or a "#rrggbb" string.
type hexColor struct {
	render.Color
}

// UnmarshalYAML implements yaml.Unmarshaler for hexColor.
func (c *hexColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		col, err := render.ColorFromHex(value.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w: %v", value.Line, ErrType, err)
		}
		c.Color = col
		return nil
	}
	var t tuple
	if err := t.UnmarshalYAML(value); err != nil {
		return err
	}
	c.Color = color(t)
	return nil
}

type yamlPolar struct {
	Azimuth   float32  `yaml:"azimuth"`
	Elevation float32  `yaml:"elevation"`
	Radius    *float32 `yaml:"radius"`
}

type yamlEye struct {
	Position    *tuple     `yaml:"position"`
	Direction   *tuple     `yaml:"direction"`
	Polar       *yamlPolar `yaml:"polar"`
	HFOV        *float32   `yaml:"hfov"`
	AspectRatio *float32   `yaml:"aspectRatio"`
	Size        *int       `yaml:"size"`
}

type yamlLight struct {
	Direction *tuple    `yaml:"direction"`
	Color     *hexColor `yaml:"color"`
}

type yamlFigure struct {
	Type     string    `yaml:"type"`
	R        *float32  `yaml:"R"`
	Rminor   *float32  `yaml:"r"`
	N        *int      `yaml:"n"`
	M        *int      `yaml:"m"`
	Color    *hexColor `yaml:"color"`
	Diffuse  *hexColor `yaml:"diffuse"`
	Specular *hexColor `yaml:"specular"`
	Center   *tuple    `yaml:"center"`
	Scale    *float32  `yaml:"scale"`
	RotateX  float32   `yaml:"rotateX"`
	RotateY  float32   `yaml:"rotateY"`
	RotateZ  float32   `yaml:"rotateZ"`
}

type yamlScene struct {
	Eye        yamlEye      `yaml:"eye"`
	Background *hexColor    `yaml:"background"`
	Shading    string       `yaml:"shading"`
	Lights     []yamlLight  `yaml:"lights"`
	Figures    []yamlFigure `yaml:"figures"`
}

// ParseYAML reads a scene in the YAML format. Unknown keys are rejected.
func ParseYAML(r io.Reader) (*Description, error) {
	var doc yamlScene
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		if errors.Is(err, ErrType) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}

	d := &Description{Shading: doc.Shading}
	if d.Shading == "" {
		d.Shading = "flat"
	}
	if doc.Background != nil {
		d.Background = doc.Background.Color
	}

	var err error
	if d.Eye, err = doc.Eye.eye(); err != nil {
		return nil, err
	}

	for i, l := range doc.Lights {
		if l.Direction == nil {
			return nil, fmt.Errorf("lights[%d].direction: %w", i, ErrMissingKey)
		}
		light := render.Light{Direction: direction(*l.Direction), Color: render.ColorWhite}
		if l.Color != nil {
			light.Color = l.Color.Color
		}
		d.Lights = append(d.Lights, light)
	}

	for i, f := range doc.Figures {
		fig, err := f.figure(i)
		if err != nil {
			return nil, err
		}
		d.Figures = append(d.Figures, fig)
	}

	if err := d.validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func (y yamlEye) eye() (Eye, error) {
	e := DefaultEye()
	if y.Size != nil {
		e.Width = *y.Size
	}
	if y.AspectRatio != nil {
		e.AspectRatio = *y.AspectRatio
	}
	if y.HFOV != nil {
		e.HFOV = degrees(*y.HFOV)
	}
	if y.Position != nil {
		e.Position = point(*y.Position)
		e.Direction = math3d.Vector{}.Sub(e.Position)
	}
	if y.Direction != nil {
		e.Direction = direction(*y.Direction)
	}
	if y.Polar != nil {
		if y.Polar.Radius == nil {
			return e, fmt.Errorf("eye.polar.radius: %w", ErrMissingKey)
		}
		e.Polar = &math3d.Polar{
			Azimuth:   degrees(y.Polar.Azimuth),
			Elevation: degrees(y.Polar.Elevation),
			Radius:    *y.Polar.Radius,
		}
	}
	return e, nil
}

func (y yamlFigure) figure(index int) (Figure, error) {
	fig := Figure{
		Scale:   1,
		RotateX: degrees(y.RotateX),
		RotateY: degrees(y.RotateY),
		RotateZ: degrees(y.RotateZ),
	}
	if y.Type == "" {
		return fig, fmt.Errorf("figures[%d].type: %w", index, ErrMissingKey)
	}

	var err error
	fig.Shape, err = shapeFor(index, y.Type, func() (models.Torus, error) {
		for _, k := range []struct {
			key string
			set bool
		}{{"R", y.R != nil}, {"r", y.Rminor != nil}, {"n", y.N != nil}, {"m", y.M != nil}} {
			if !k.set {
				return models.Torus{}, fmt.Errorf("figures[%d].%s: %w", index, k.key, ErrMissingKey)
			}
		}
		if *y.N < 0 || *y.M < 0 {
			return models.Torus{}, fmt.Errorf("figures[%d]: %w: n and m must be non-negative", index, ErrRange)
		}
		return models.Torus{MajorRadius: *y.R, MinorRadius: *y.Rminor, Rings: *y.N, Points: *y.M}, nil
	})
	if err != nil {
		return fig, err
	}

	if y.Color == nil {
		return fig, fmt.Errorf("figures[%d].color: %w", index, ErrMissingKey)
	}
	fig.Material.Ambient = y.Color.Color
	if y.Diffuse != nil {
		fig.Material.Diffuse = y.Diffuse.Color
	}
	if y.Specular != nil {
		fig.Material.Specular = y.Specular.Color
	}
	if y.Center != nil {
		fig.Center = point(*y.Center)
	} else {
		fig.Center = math3d.Point(0, 0, 0)
	}
	if y.Scale != nil {
		fig.Scale = *y.Scale
	}
	return fig, nil
}
