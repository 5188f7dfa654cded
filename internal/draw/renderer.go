package draw

import "github.com/tomz197/breakout/internal/game"

// CanvasRenderer draws game frames onto a Canvas.
type CanvasRenderer struct {
	canvas *Canvas
	fill   RGB
}

// NewCanvasRenderer returns a renderer drawing on c.
func NewCanvasRenderer(c *Canvas) *CanvasRenderer {
	return &CanvasRenderer{canvas: c}
}

// SetFill implements game.Renderer.
func (r *CanvasRenderer) SetFill(c game.Color) {
	r.fill = RGB(c)
}

// ClearRect implements game.Renderer.
func (r *CanvasRenderer) ClearRect(x, y, w, h float64) {
	r.canvas.ClearRect(x, y, w, h)
}

// FillRect implements game.Renderer.
func (r *CanvasRenderer) FillRect(x, y, w, h float64) {
	r.canvas.FillRect(x, y, w, h, r.fill)
}

// FillCircle implements game.Renderer.
func (r *CanvasRenderer) FillCircle(cx, cy, radius float64) {
	r.canvas.FillCircle(cx, cy, radius, r.fill)
}

var _ game.Renderer = (*CanvasRenderer)(nil)
