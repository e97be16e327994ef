package scene

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/taigrr/tori/pkg/math3d"
	"github.com/taigrr/tori/pkg/models"
	"github.com/taigrr/tori/pkg/render"
)

type iniKind int

const (
	iniString iniKind = iota
	iniNumber
	iniTuple
)

func (k iniKind) String() string {
	switch k {
	case iniString:
		return "string"
	case iniNumber:
		return "number"
	default:
		return "tuple"
	}
}

// iniValue is a quoted string, a number or a 3-tuple.
type iniValue struct {
	kind  iniKind
	str   string
	num   float32
	tuple [3]float32
}

func parseINIValue(s string) (iniValue, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, `"`):
		if len(s) < 2 || !strings.HasSuffix(s, `"`) {
			return iniValue{}, fmt.Errorf("%w: unterminated string %s", ErrSyntax, s)
		}
		return iniValue{kind: iniString, str: s[1 : len(s)-1]}, nil

	case strings.HasPrefix(s, "("):
		if !strings.HasSuffix(s, ")") {
			return iniValue{}, fmt.Errorf("%w: unterminated tuple %s", ErrSyntax, s)
		}
		parts := strings.Split(s[1:len(s)-1], ",")
		if len(parts) != 3 {
			return iniValue{}, fmt.Errorf("%w: tuple %s has %d elements, want 3", ErrSyntax, s, len(parts))
		}
		v := iniValue{kind: iniTuple}
		for i, p := range parts {
			f, err := parseFloat(p)
			if err != nil {
				return iniValue{}, fmt.Errorf("%w: tuple element %q is not a number", ErrSyntax, strings.TrimSpace(p))
			}
			v.tuple[i] = f
		}
		return v, nil
	}

	f, err := parseFloat(s)
	if err != nil {
		return iniValue{}, fmt.Errorf("%w: bad value %q", ErrSyntax, s)
	}
	return iniValue{kind: iniNumber, num: f}, nil
}

func parseFloat(s string) (float32, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
	return float32(f), err
}

type iniSection struct {
	name   string
	values map[string]iniValue
}

func (s *iniSection) get(key string, kind iniKind) (iniValue, bool, error) {
	v, ok := s.values[key]
	if !ok {
		return iniValue{}, false, nil
	}
	if v.kind != kind {
		return iniValue{}, true, fmt.Errorf("[%s] %s: %w: got %s, want %s", s.name, key, ErrType, v.kind, kind)
	}
	return v, true, nil
}

func (s *iniSection) require(key string, kind iniKind) (iniValue, error) {
	v, ok, err := s.get(key, kind)
	if err != nil {
		return iniValue{}, err
	}
	if !ok {
		return iniValue{}, fmt.Errorf("[%s] %s: %w", s.name, key, ErrMissingKey)
	}
	return v, nil
}

func (s *iniSection) number(key string) (float32, error) {
	v, err := s.require(key, iniNumber)
	return v.num, err
}

func (s *iniSection) numberOr(key string, def float32) (float32, error) {
	v, ok, err := s.get(key, iniNumber)
	if !ok || err != nil {
		return def, err
	}
	return v.num, nil
}

func (s *iniSection) count(key string, def int, required bool) (int, error) {
	v, ok, err := s.get(key, iniNumber)
	if err != nil {
		return 0, err
	}
	if !ok {
		if required {
			return 0, fmt.Errorf("[%s] %s: %w", s.name, key, ErrMissingKey)
		}
		return def, nil
	}
	if v.num != float32(math.Trunc(float64(v.num))) || v.num < 0 {
		return 0, fmt.Errorf("[%s] %s = %v: %w: want a non-negative integer", s.name, key, v.num, ErrRange)
	}
	return int(v.num), nil
}

func (s *iniSection) tuple(key string) ([3]float32, error) {
	v, err := s.require(key, iniTuple)
	return v.tuple, err
}

func (s *iniSection) tupleOr(key string, def [3]float32) ([3]float32, error) {
	v, ok, err := s.get(key, iniTuple)
	if !ok || err != nil {
		return def, err
	}
	return v.tuple, nil
}

func (s *iniSection) stringOr(key, def string) (string, error) {
	v, ok, err := s.get(key, iniString)
	if !ok || err != nil {
		return def, err
	}
	return v.str, nil
}

type iniFile struct {
	sections map[string]*iniSection
}

func (f *iniFile) section(name string) (*iniSection, error) {
	s, ok := f.sections[name]
	if !ok {
		return nil, fmt.Errorf("section [%s]: %w", name, ErrMissingKey)
	}
	return s, nil
}

// readINI parses "[Section]" headers and "key = value" lines. Blank lines
// and lines starting with ';' or '#' are ignored. A repeated section
// continues the earlier one; a repeated key overwrites.
func readINI(r io.Reader) (*iniFile, error) {
	f := &iniFile{sections: map[string]*iniSection{}}
	var cur *iniSection

	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == ';' || line[0] == '#' {
			continue
		}

		if line[0] == '[' {
			if !strings.HasSuffix(line, "]") {
				return nil, fmt.Errorf("line %d: %w: unterminated section header", n, ErrSyntax)
			}
			name := strings.TrimSpace(line[1 : len(line)-1])
			if cur = f.sections[name]; cur == nil {
				cur = &iniSection{name: name, values: map[string]iniValue{}}
				f.sections[name] = cur
			}
			continue
		}

		if cur == nil {
			return nil, fmt.Errorf("line %d: %w: key outside of a section", n, ErrSyntax)
		}
		key, raw, ok := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("line %d: %w: want key = value", n, ErrSyntax)
		}
		v, err := parseINIValue(raw)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		cur.values[key] = v
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read ini: %w", err)
	}
	return f, nil
}

// ParseINI reads a scene in the sectioned key/value format. [General]
// holds the eye and image settings; [Figure0]..[FigureN-1] and
// [Light0]..[LightN-1] follow.
func ParseINI(r io.Reader) (*Description, error) {
	f, err := readINI(r)
	if err != nil {
		return nil, err
	}
	general, err := f.section("General")
	if err != nil {
		return nil, err
	}

	d := &Description{}
	if d.Eye, err = iniEye(general); err != nil {
		return nil, err
	}
	bg, err := general.tupleOr("backgroundcolor", [3]float32{})
	if err != nil {
		return nil, err
	}
	d.Background = color(bg)
	if d.Shading, err = general.stringOr("shading", "flat"); err != nil {
		return nil, err
	}

	nFigures, err := general.count("nrFigures", 0, false)
	if err != nil {
		return nil, err
	}
	for i := range nFigures {
		sec, err := f.section(fmt.Sprintf("Figure%d", i))
		if err != nil {
			return nil, err
		}
		fig, err := iniFigure(i, sec)
		if err != nil {
			return nil, err
		}
		d.Figures = append(d.Figures, fig)
	}

	nLights, err := general.count("nrLights", 0, false)
	if err != nil {
		return nil, err
	}
	for i := range nLights {
		sec, err := f.section(fmt.Sprintf("Light%d", i))
		if err != nil {
			return nil, err
		}
		l, err := iniLight(sec)
		if err != nil {
			return nil, err
		}
		d.Lights = append(d.Lights, l)
	}

	if err := d.validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func iniEye(s *iniSection) (Eye, error) {
	e := DefaultEye()

	width, err := s.count("size", DefaultWidth, false)
	if err != nil {
		return e, err
	}
	e.Width = width
	if e.AspectRatio, err = s.numberOr("aspectRatio", DefaultAspectRatio); err != nil {
		return e, err
	}
	hfov, err := s.numberOr("hfov", DefaultHFOVDegrees)
	if err != nil {
		return e, err
	}
	e.HFOV = degrees(hfov)

	pos, err := s.tupleOr("eye", [3]float32{DefaultEyePosition.X, DefaultEyePosition.Y, DefaultEyePosition.Z})
	if err != nil {
		return e, err
	}
	e.Position = point(pos)
	dir, err := s.tupleOr("viewDirection", [3]float32{-pos[0], -pos[1], -pos[2]})
	if err != nil {
		return e, err
	}
	e.Direction = direction(dir)

	if v, ok, err := s.get("eyePolar", iniTuple); err != nil {
		return e, err
	} else if ok {
		e.Polar = &math3d.Polar{
			Azimuth:   degrees(v.tuple[0]),
			Elevation: degrees(v.tuple[1]),
			Radius:    v.tuple[2],
		}
	}
	return e, nil
}

func iniFigure(index int, s *iniSection) (Figure, error) {
	fig := Figure{Scale: 1}

	typ, err := s.require("type", iniString)
	if err != nil {
		return fig, err
	}
	fig.Shape, err = shapeFor(index, typ.str, func() (models.Torus, error) {
		var t models.Torus
		var err error
		if t.MajorRadius, err = s.number("R"); err != nil {
			return t, err
		}
		if t.MinorRadius, err = s.number("r"); err != nil {
			return t, err
		}
		if t.Rings, err = s.count("n", 0, true); err != nil {
			return t, err
		}
		t.Points, err = s.count("m", 0, true)
		return t, err
	})
	if err != nil {
		return fig, err
	}

	// "color" is shorthand for ambientReflection and wins when both are set.
	key := "ambientReflection"
	if _, ok := s.values["color"]; ok {
		key = "color"
	}
	ambient, err := s.tuple(key)
	if err != nil {
		return fig, err
	}
	diffuse, err := s.tupleOr("diffuseReflection", [3]float32{})
	if err != nil {
		return fig, err
	}
	specular, err := s.tupleOr("specularReflection", [3]float32{})
	if err != nil {
		return fig, err
	}
	fig.Material = render.Material{Ambient: color(ambient), Diffuse: color(diffuse), Specular: color(specular)}

	center, err := s.tupleOr("center", [3]float32{})
	if err != nil {
		return fig, err
	}
	fig.Center = point(center)
	if fig.Scale, err = s.numberOr("scale", 1); err != nil {
		return fig, err
	}

	for _, r := range []struct {
		key string
		dst *float32
	}{{"rotateX", &fig.RotateX}, {"rotateY", &fig.RotateY}, {"rotateZ", &fig.RotateZ}} {
		deg, err := s.numberOr(r.key, 0)
		if err != nil {
			return fig, err
		}
		*r.dst = degrees(deg)
	}
	return fig, nil
}

func iniLight(s *iniSection) (render.Light, error) {
	dir, err := s.tuple("direction")
	if err != nil {
		return render.Light{}, err
	}
	c, err := s.tupleOr("color", [3]float32{1, 1, 1})
	if err != nil {
		return render.Light{}, err
	}
	return render.Light{Direction: direction(dir), Color: color(c)}, nil
}
