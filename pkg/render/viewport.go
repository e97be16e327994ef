package render

import (
	"math"

	"github.com/taigrr/tori/pkg/math3d"
)

// Viewport maps eye-space points onto integer pixel coordinates. The
// projection plane sits at distance 1 in front of the eye.
type Viewport struct {
	Scaling float32     // pixels per projection-plane unit
	Offset  math3d.Vec2 // shifts the plane so its bottom-left corner is the origin
	Width   int
	Height  int
}

// NewViewport derives a viewport from a horizontal field of view (radians),
// a width/height aspect ratio and an image width in pixels.
func NewViewport(hfov, aspect float32, width int) Viewport {
	left := -float32(math.Tan(float64(hfov) / 2))
	right := -left
	top := right / aspect
	bottom := -top

	return Viewport{
		// 0.99 keeps the right and top edges inside the image.
		Scaling: float32(width) / (right - left) * 0.99,
		Offset:  math3d.V2(-left, -bottom),
		Width:   width,
		Height:  int(math.Round(float64(width) / float64(aspect))),
	}
}

// Project maps an eye-space point to pixel coordinates. The result is not
// finite for points on the eye plane (z == 0).
func (vp Viewport) Project(v math3d.Vector) math3d.Vec2 {
	return math3d.V2(
		(-v.X/v.Z+vp.Offset.X)*vp.Scaling,
		(-v.Y/v.Z+vp.Offset.Y)*vp.Scaling,
	)
}

// Framebuffer allocates a framebuffer sized to the viewport.
func (vp Viewport) Framebuffer() *Framebuffer {
	return NewFramebuffer(vp.Width, vp.Height)
}
