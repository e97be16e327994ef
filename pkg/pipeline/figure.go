package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/taigrr/tori/pkg/math3d"
	"github.com/taigrr/tori/pkg/models"
	"github.com/taigrr/tori/pkg/render"
	"github.com/taigrr/tori/pkg/scene"
)

// Figure is a triangulated, placed mesh with its material.
type Figure struct {
	Mesh     *models.Mesh
	Material render.Material
}

// BuildFigures generates every figure of the description in eye space.
// Figures are built concurrently; the result keeps the description order.
func BuildFigures(ctx context.Context, desc *scene.Description) ([]Figure, error) {
	eye := desc.Eye.Transform()
	return buildFigures(ctx, desc.Figures, func(f scene.Figure) math3d.Transform {
		return FigurePlacement(f, eye).Compose()
	})
}

// BuildWorldFigures is like BuildFigures but stops at world space.
func BuildWorldFigures(ctx context.Context, desc *scene.Description) ([]Figure, error) {
	return buildFigures(ctx, desc.Figures, func(f scene.Figure) math3d.Transform {
		return FigurePlacement(f, math3d.Identity()).World()
	})
}

func buildFigures(ctx context.Context, specs []scene.Figure, place func(scene.Figure) math3d.Transform) ([]Figure, error) {
	figs := make([]Figure, len(specs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, spec := range specs {
		warnUnapplied(i, spec)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if spec.Shape == nil {
				return fmt.Errorf("figure %d: no shape", i)
			}
			mesh := spec.Shape.Build().Triangulated().Transformed(place(spec))
			figs[i] = Figure{Mesh: mesh, Material: spec.Material}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return figs, nil
}

func warnUnapplied(i int, f scene.Figure) {
	if f.RotateY != 0 {
		slog.Warn("rotation about Y is not applied", "figure", i, "rotateY", f.RotateY)
	}
	if f.Scale != 1 {
		slog.Warn("scale is not applied", "figure", i, "scale", f.Scale)
	}
}
