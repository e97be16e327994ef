// tori - scanline renderer for tori and tetrahedra
// Renders an INI or YAML scene description to a PNG or BMP image.
//
// Examples:
//
//	tori scene.ini                     - write out.png
//	tori -o shot.bmp scene.yaml        - write a BMP instead
//	tori -frames 90 -sweep 360 s.ini   - turntable, out_000.png ... out_089.png
//	tori -glb scene.glb scene.ini      - also export the world-space meshes
//	tori -preview scene.ini            - show the result in the terminal
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/schollz/progressbar/v3"
	"github.com/taigrr/tori/pkg/anim"
	"github.com/taigrr/tori/pkg/models"
	"github.com/taigrr/tori/pkg/pipeline"
	"github.com/taigrr/tori/pkg/render"
	"github.com/taigrr/tori/pkg/scene"
)

var (
	outPath  = flag.String("o", "out.png", "Output image (.png or .bmp)")
	glbPath  = flag.String("glb", "", "Also export the scene meshes as binary glTF")
	frames   = flag.Int("frames", 1, "Number of turntable frames")
	sweep    = flag.Float64("sweep", 360, "Turntable sweep in degrees")
	fps      = flag.Int("fps", 30, "Turntable frame rate, used for easing")
	showPrev = flag.Bool("preview", false, "Show the rendered image in the terminal until a key is pressed")
	verbose  = flag.Bool("v", false, "Debug logging")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "tori - scanline renderer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: tori [options] <scene.ini|scene.yaml>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(scenePath string) error {
	desc, err := scene.Load(scenePath)
	if err != nil {
		return fmt.Errorf("load scene: %w", err)
	}
	slog.Debug("loaded scene", "path", scenePath, "figures", len(desc.Figures), "lights", len(desc.Lights))

	// Context for clean shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	if *glbPath != "" {
		if err := pipeline.ExportGLB(ctx, desc, *glbPath); err != nil {
			return fmt.Errorf("export glb: %w", err)
		}
		mesh, err := models.LoadGLB(*glbPath)
		if err != nil {
			return fmt.Errorf("verify glb: %w", err)
		}
		slog.Info("exported meshes", "path", *glbPath, "vertices", len(mesh.Vertices), "faces", len(mesh.Faces))
	}

	var last *render.Framebuffer
	if *frames <= 1 {
		last, err = renderOne(ctx, desc, *outPath)
	} else {
		last, err = renderTurntable(ctx, desc)
	}
	if err != nil {
		return err
	}

	if *showPrev {
		return preview(ctx, last)
	}
	return nil
}

func renderOne(ctx context.Context, desc *scene.Description, path string) (*render.Framebuffer, error) {
	fb, err := pipeline.RenderImage(ctx, desc)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if err := fb.Save(path); err != nil {
		return nil, fmt.Errorf("save image: %w", err)
	}
	slog.Info("wrote image", "path", path, "width", fb.Width, "height", fb.Height)
	return fb, nil
}

func renderTurntable(ctx context.Context, desc *scene.Description) (*render.Framebuffer, error) {
	tt := anim.Turntable{Frames: *frames, FPS: *fps, Sweep: float32(*sweep * math.Pi / 180)}
	eyes := tt.Eyes(desc.Eye)

	pb := progressbar.Default(int64(len(eyes)))
	defer pb.Close()

	var fb *render.Framebuffer
	for i, eye := range eyes {
		frame := *desc
		frame.Eye = eye

		var err error
		fb, err = pipeline.RenderImage(ctx, &frame)
		if err != nil {
			return nil, fmt.Errorf("render frame %d: %w", i, err)
		}
		path := frameName(*outPath, i)
		if err := fb.Save(path); err != nil {
			return nil, fmt.Errorf("save frame %d: %w", i, err)
		}
		_ = pb.Add(1)
	}
	return fb, nil
}

// frameName inserts a zero-padded frame number before the extension.
func frameName(path string, i int) string {
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s_%03d%s", strings.TrimSuffix(path, ext), i, ext)
}

// preview shows fb on the alternate screen until a key is pressed or the
// context ends.
func preview(ctx context.Context, fb *render.Framebuffer) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	defer func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	draw := func() error {
		fb.Draw(term, uv.Rect(0, 0, width, height))
		if err := term.Display(); err != nil {
			return fmt.Errorf("display: %w", err)
		}
		return nil
	}
	if err := draw(); err != nil {
		return err
	}

	events := term.Events()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				if err := draw(); err != nil {
					return err
				}
			case uv.KeyPressEvent:
				return nil
			}
		}
	}
}
