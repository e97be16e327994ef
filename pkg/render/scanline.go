package render

import (
	"math"

	"github.com/taigrr/tori/pkg/math3d"
)

// DrawTriangle projects an eye-space triangle through vp and fills it into
// sink. It returns false, drawing nothing, when any projected coordinate is
// not finite.
func DrawTriangle(sink Sink, vp Viewport, a, b, c math3d.Vector, col Color) bool {
	return FillTriangle(sink, vp.Project(a), vp.Project(b), vp.Project(c), col)
}

// FillTriangle fills a screen-space triangle with scanlines. Row y covers
// the pixels between the leftmost and rightmost edge crossings at height y,
// with both ends pulled half a pixel inwards. Rows and spans are clipped to
// the sink. It returns false when a vertex is not finite.
func FillTriangle(sink Sink, a, b, c math3d.Vec2, col Color) bool {
	if !finite(a) || !finite(b) || !finite(c) {
		return false
	}
	w, h := sink.Size()
	if w <= 0 || h <= 0 {
		return true
	}

	lo := math.Floor(float64(min(a.Y, b.Y, c.Y)))
	hi := math.Floor(float64(max(a.Y, b.Y, c.Y)))
	lo = math.Max(lo, 0)
	hi = math.Min(hi, float64(h-1))
	if lo > hi {
		return true
	}

	for y := int(lo); float64(y) <= hi; y++ {
		xl, xr, ok := span(float32(y), a, b, c)
		if !ok || xl > float64(w-1) || xr < 0 {
			continue
		}
		left := int(math.Max(xl, 0))
		right := int(math.Min(xr, float64(w-1)))
		for x := left; x <= right; x++ {
			sink.SetPixel(x, y, col)
		}
	}
	return true
}

// span returns the unclipped pixel range filled on row y.
func span(y float32, a, b, c math3d.Vec2) (xl, xr float64, ok bool) {
	lo := float32(math.Inf(1))
	hi := float32(math.Inf(-1))
	for _, e := range [3][2]math3d.Vec2{{a, b}, {b, c}, {c, a}} {
		x, hit := edgeCrossing(y, e[0], e[1])
		if !hit {
			continue
		}
		lo = min(lo, x)
		hi = max(hi, x)
		ok = true
	}
	if !ok {
		return 0, 0, false
	}
	xl = math.Floor(float64(lo) + 0.5)
	xr = math.Floor(float64(hi) - 0.5)
	return xl, xr, xl <= xr
}

// edgeCrossing returns the x coordinate where the segment pq crosses the
// horizontal line at y. Horizontal segments never cross. The result does
// not depend on the direction of the segment.
func edgeCrossing(y float32, p, q math3d.Vec2) (float32, bool) {
	if p.Y == q.Y || (y-p.Y)*(y-q.Y) > 0 {
		return 0, false
	}
	if p.Y > q.Y {
		p, q = q, p
	}
	return q.X + (p.X-q.X)*(y-q.Y)/(p.Y-q.Y), true
}

func finite(v math3d.Vec2) bool {
	return !math.IsNaN(float64(v.X)) && !math.IsInf(float64(v.X), 0) &&
		!math.IsNaN(float64(v.Y)) && !math.IsInf(float64(v.Y), 0)
}
