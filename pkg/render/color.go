package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a linear RGB color with each channel in [0, 1].
type Color struct {
	R, G, B float32
}

// Colors for convenience
var (
	ColorBlack = Color{0, 0, 0}
	ColorWhite = Color{1, 1, 1}
)

// NewColor creates a color, clamping each channel into [0, 1].
func NewColor(r, g, b float32) Color {
	return Color{clamp01(r), clamp01(g), clamp01(b)}
}

// ColorFromHex parses a "#rrggbb" color.
func ColorFromHex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return NewColor(float32(c.R), float32(c.G), float32(c.B)), nil
}

// Pixel converts c to an opaque 8-bit color by truncating channel*255.
func (c Color) Pixel() color.RGBA {
	return color.RGBA{channel(c.R), channel(c.G), channel(c.B), 255}
}

// Add returns the clamped channel sum.
func (c Color) Add(o Color) Color {
	return NewColor(c.R+o.R, c.G+o.G, c.B+o.B)
}

// Mul returns the channel product.
func (c Color) Mul(o Color) Color {
	return NewColor(c.R*o.R, c.G*o.G, c.B*o.B)
}

// Scale returns c with every channel multiplied by s, clamped.
func (c Color) Scale(s float32) Color {
	return NewColor(c.R*s, c.G*s, c.B*s)
}

// Hex formats c as "#rrggbb".
func (c Color) Hex() string {
	p := c.Pixel()
	return fmt.Sprintf("#%02x%02x%02x", p.R, p.G, p.B)
}

// Material holds the reflection colors of a figure.
type Material struct {
	Ambient  Color
	Diffuse  Color
	Specular Color
}

func clamp01(v float32) float32 {
	// NaN clamps to 0.
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func channel(v float32) uint8 {
	return uint8(math.Floor(float64(clamp01(v)) * 255))
}
