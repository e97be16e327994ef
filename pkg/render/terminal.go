package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw paints a downsampled copy of the framebuffer onto the screen area.
// Each cell is an upper half block, so a terminal row shows two image rows
// with fg=top color and bg=bottom color. Image rows are sampled nearest
// neighbour, top of the image first.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	cols := area.Max.X - area.Min.X
	rows := area.Max.Y - area.Min.Y
	if cols <= 0 || rows <= 0 || fb.Width == 0 || fb.Height == 0 {
		return
	}

	for row := 0; row < rows; row++ {
		topY := fb.sampleRow(2*row, 2*rows)
		botY := fb.sampleRow(2*row+1, 2*rows)

		for col := 0; col < cols; col++ {
			x := col * fb.Width / cols

			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(fb.GetPixel(x, topY)),
					Bg: rgbaToColor(fb.GetPixel(x, botY)),
				},
			}
			scr.SetCell(area.Min.X+col, area.Min.Y+row, cell)
		}
	}
}

// sampleRow maps the i-th of n half-rows, counted from the top, to a
// framebuffer row.
func (fb *Framebuffer) sampleRow(i, n int) int {
	return fb.Height - 1 - i*fb.Height/n
}

// rgbaToColor converts color.RGBA to Go's color.Color interface.
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil // Transparent = no color
	}
	return c
}
