package pipeline

import (
	"context"
	"log/slog"

	"github.com/taigrr/tori/pkg/math3d"
	"github.com/taigrr/tori/pkg/render"
)

// Stats counts what a draw pass did.
type Stats struct {
	Figures int
	Faces   int
	Skipped int // faces not drawn: non-triangles or non-finite projections
}

// Draw rasterizes the figures into sink, figure by figure and face by face,
// so later faces paint over earlier ones. Lights must be in eye space.
func Draw(ctx context.Context, figs []Figure, vp render.Viewport, shader render.Shader, lights []render.Light, sink render.Sink) (Stats, error) {
	var st Stats
	for _, fig := range figs {
		if err := ctx.Err(); err != nil {
			return st, err
		}
		st.Figures++

		m := fig.Mesh
		for i, face := range m.Faces {
			if len(face) != 3 {
				st.Skipped++
				continue
			}
			a, b, c := m.Triangle(i)
			col := shader.Shade(render.FaceNormal(a, b, c), fig.Material, lights)
			if !render.DrawTriangle(sink, vp, a, b, c, col) {
				st.Skipped++
				continue
			}
			st.Faces++
		}
	}
	if st.Skipped > 0 {
		slog.Debug("skipped faces", "count", st.Skipped)
	}
	return st, nil
}

// EyeLights maps world-space lights into eye space.
func EyeLights(lights []render.Light, eye math3d.Transform) []render.Light {
	out := make([]render.Light, len(lights))
	for i, l := range lights {
		d := l.Direction
		out[i] = render.Light{
			Direction: math3d.Direction(d.X, d.Y, d.Z).Apply(eye),
			Color:     l.Color,
		}
	}
	return out
}
