// Package render rasterizes projected polygons into pixel sinks and
// encodes the result as images or terminal cells.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

// ErrUnsupportedFormat is returned when an image path has an extension
// other than .png or .bmp.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Sink is a rectangular pixel target with its origin at the bottom-left.
// SetPixel must ignore coordinates outside [0, width) x [0, height).
type Sink interface {
	Size() (width, height int)
	SetPixel(x, y int, c Color)
}

// Framebuffer is an in-memory Sink. Row 0 is the bottom row of the image.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []color.RGBA // Row-major, bottom row first
}

// NewFramebuffer creates a black framebuffer with the given dimensions.
// Negative dimensions are treated as zero.
func NewFramebuffer(width, height int) *Framebuffer {
	width, height = max(width, 0), max(height, 0)
	fb := &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]color.RGBA, width*height),
	}
	fb.Clear(ColorBlack)
	return fb
}

// Size implements Sink.
func (fb *Framebuffer) Size() (int, int) {
	return fb.Width, fb.Height
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c Color) {
	p := c.Pixel()
	for i := range fb.Pixels {
		fb.Pixels[i] = p
	}
}

// SetPixel sets a pixel at (x, y) to the given color.
// Bounds checking is performed.
func (fb *Framebuffer) SetPixel(x, y int, c Color) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c.Pixel()
}

// GetPixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) color.RGBA {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return color.RGBA{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// ToImage converts the framebuffer to an image.RGBA with the usual top-left
// origin, so framebuffer row 0 becomes the last image row.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		row := fb.Height - 1 - y
		for x := 0; x < fb.Width; x++ {
			img.SetRGBA(x, row, fb.Pixels[y*fb.Width+x])
		}
	}
	return img
}

// Encode writes the framebuffer in the named format ("png" or "bmp").
func (fb *Framebuffer) Encode(w io.Writer, format string) error {
	switch strings.ToLower(format) {
	case "png":
		return png.Encode(w, fb.ToImage())
	case "bmp":
		return bmp.Encode(w, fb.ToImage())
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Save writes the framebuffer to path, picking the encoder from the file
// extension.
func (fb *Framebuffer) Save(path string) error {
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	if format == "" {
		return fmt.Errorf("%w: %s has no extension", ErrUnsupportedFormat, path)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create image: %w", err)
	}
	if err := fb.Encode(f, format); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close image: %w", err)
	}
	return nil
}
