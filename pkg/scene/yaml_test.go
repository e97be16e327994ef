package scene

import (
	"errors"
	"strings"
	"testing"

	"github.com/taigrr/tori/pkg/math3d"
	"github.com/taigrr/tori/pkg/render"
)

func TestParseYAMLEmpty(t *testing.T) {
	d, err := ParseYAML(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	if d.Eye != DefaultEye() || d.Shading != "flat" {
		t.Errorf("description = %+v, want defaults", d)
	}
}

func TestParseYAMLPositionImpliesDirection(t *testing.T) {
	d, err := ParseYAML(strings.NewReader("eye:\n  position: [1, 2, 3]\n"))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	if d.Eye.Direction != math3d.Direction(-1, -2, -3) {
		t.Errorf("direction = %+v", d.Eye.Direction)
	}

	d, err = ParseYAML(strings.NewReader("eye:\n  position: [1, 2, 3]\n  direction: [0, 0, -1]\n"))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	if d.Eye.Direction != math3d.Direction(0, 0, -1) {
		t.Errorf("direction = %+v", d.Eye.Direction)
	}
}

func TestParseYAMLLightDefaultsWhite(t *testing.T) {
	d, err := ParseYAML(strings.NewReader("lights:\n  - direction: [1, 0, 0]\n"))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	if len(d.Lights) != 1 || d.Lights[0].Color != render.ColorWhite {
		t.Errorf("lights = %+v", d.Lights)
	}
}

func TestParseYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"not yaml", "eye: [unclosed\n", ErrSyntax},
		{"unknown key", "camera:\n  size: 3\n", ErrSyntax},
		{"short tuple", "eye:\n  position: [1, 2]\n", ErrType},
		{"scalar tuple", "eye:\n  position: 4\n", ErrType},
		{"bad hex", "background: \"#zzzzzz\"\n", ErrType},
		{"zero size", "eye:\n  size: 0\n", ErrRange},
		{"polar without radius", "eye:\n  polar:\n    azimuth: 10\n", ErrMissingKey},
		{"missing type", "figures:\n  - color: [1, 1, 1]\n", ErrMissingKey},
		{"missing color", "figures:\n  - type: Tetrahedron\n", ErrMissingKey},
		{"torus without n", "figures:\n  - type: Torus\n    R: 5\n    r: 1\n    m: 4\n    color: [1, 1, 1]\n", ErrMissingKey},
		{"light without direction", "lights:\n  - color: [1, 1, 1]\n", ErrMissingKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseYAML(strings.NewReader(tt.src))
			if !errors.Is(err, tt.want) {
				t.Errorf("ParseYAML error = %v, want %v", err, tt.want)
			}
		})
	}
}
