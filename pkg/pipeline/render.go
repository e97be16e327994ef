package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taigrr/tori/pkg/models"
	"github.com/taigrr/tori/pkg/render"
	"github.com/taigrr/tori/pkg/scene"
)

// Render builds the figures of desc and draws them into sink.
func Render(ctx context.Context, desc *scene.Description, sink render.Sink) (Stats, error) {
	shader, err := desc.Shader()
	if err != nil {
		return Stats{}, err
	}
	figs, err := BuildFigures(ctx, desc)
	if err != nil {
		return Stats{}, fmt.Errorf("build figures: %w", err)
	}
	lights := EyeLights(desc.Lights, desc.Eye.Transform())
	return Draw(ctx, figs, desc.Eye.Viewport(), shader, lights, sink)
}

// RenderImage renders desc into a new framebuffer filled with the scene
// background.
func RenderImage(ctx context.Context, desc *scene.Description) (*render.Framebuffer, error) {
	fb := desc.Eye.Viewport().Framebuffer()
	fb.Clear(desc.Background)

	st, err := Render(ctx, desc, fb)
	if err != nil {
		return nil, err
	}
	slog.Debug("rendered",
		"width", fb.Width, "height", fb.Height,
		"figures", st.Figures, "faces", st.Faces, "skipped", st.Skipped)
	return fb, nil
}

// RenderFile renders desc and saves the image to path.
func RenderFile(ctx context.Context, desc *scene.Description, path string) error {
	fb, err := RenderImage(ctx, desc)
	if err != nil {
		return err
	}
	if err := fb.Save(path); err != nil {
		return fmt.Errorf("save image: %w", err)
	}
	return nil
}

// ExportGLB writes the world-space figures of desc to a binary glTF file,
// one node per figure colored with its ambient reflection.
func ExportGLB(ctx context.Context, desc *scene.Description, path string) error {
	figs, err := BuildWorldFigures(ctx, desc)
	if err != nil {
		return fmt.Errorf("build figures: %w", err)
	}
	parts := make([]models.Part, len(figs))
	for i, f := range figs {
		c := f.Material.Ambient
		parts[i] = models.Part{
			Mesh:      f.Mesh,
			BaseColor: [4]float64{float64(c.R), float64(c.G), float64(c.B), 1},
		}
	}
	return models.WriteGLB(path, parts)
}
