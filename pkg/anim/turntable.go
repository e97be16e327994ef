// Package anim produces camera paths for multi-frame renders.
package anim

import (
	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/tori/pkg/math3d"
	"github.com/taigrr/tori/pkg/scene"
)

// settle is how many spring time constants fit in a turntable run. The
// spring has closed most of the gap by the last frame, which is then
// pinned to the target.
const settle = 8.0

// Turntable orbits the eye around the world Z axis. The azimuth eases in
// and out along a critically damped spring, so the path never overshoots
// the end angle.
type Turntable struct {
	Frames int
	FPS    int
	Sweep  float32 // radians; negative sweeps turn clockwise
}

// Azimuths returns the azimuth of every frame, starting at start and
// ending at start+Sweep.
func (t Turntable) Azimuths(start float32) []float32 {
	if t.Frames <= 0 {
		return nil
	}
	out := make([]float32, t.Frames)
	out[0] = start
	if t.Frames == 1 {
		return out
	}

	fps := t.FPS
	if fps <= 0 {
		fps = 30
	}
	duration := float64(t.Frames-1) / float64(fps)
	spring := harmonica.NewSpring(harmonica.FPS(fps), settle/duration, 1.0)

	target := float64(start) + float64(t.Sweep)
	pos, vel := float64(start), 0.0
	for i := 1; i < t.Frames-1; i++ {
		pos, vel = spring.Update(pos, vel, target)
		out[i] = float32(pos)
	}
	out[t.Frames-1] = float32(target)
	return out
}

// Eyes returns one eye per frame. Each keeps the radius and elevation of
// base and looks at the origin.
func (t Turntable) Eyes(base scene.Eye) []scene.Eye {
	p := base.Placement()
	az := t.Azimuths(p.Azimuth)
	eyes := make([]scene.Eye, len(az))
	for i, a := range az {
		e := base
		e.Polar = &math3d.Polar{Azimuth: a, Elevation: p.Elevation, Radius: p.Radius}
		eyes[i] = e
	}
	return eyes
}
