package game

import "github.com/tomz197/breakout/internal/physics"

// Layout is the fixed geometry and tuning of a game, supplied at construction.
type Layout struct {
	Width  float64 // Surface width
	Height float64 // Surface height

	Margin     float64 // Distance of the brick grid and paddle from the surface edge
	Gap        float64 // Space between bricks
	Columns    int     // Brick columns
	Rows       int     // Brick rows created
	SizingRows int     // Rows the brick height is computed for (more than Rows leaves room below)

	PaddleWidth  float64
	PaddleHeight float64
	PaddleStep   float64 // Paddle movement per frame while a key is held

	BallRadius float64
	BallSpeedX float64
	BallSpeedY float64
	BallLift   float64 // Initial distance of the ball centre above the paddle top
}

// DefaultLayout returns the standard layout for a surface of the given size.
func DefaultLayout(width, height float64) Layout {
	return Layout{
		Width:        width,
		Height:       height,
		Margin:       48,
		Gap:          24,
		Columns:      8,
		Rows:         4,
		SizingRows:   5,
		PaddleWidth:  128,
		PaddleHeight: 12,
		PaddleStep:   15,
		BallRadius:   10,
		BallSpeedX:   5,
		BallSpeedY:   5,
		BallLift:     50,
	}
}

// BrickWidth returns the width of a single brick.
func (l Layout) BrickWidth() float64 {
	cols := float64(l.Columns)
	return (l.Width - l.Margin*2 - l.Gap*cols - 1) / cols
}

// BrickHeight returns the height of a single brick.
func (l Layout) BrickHeight() float64 {
	rows := float64(l.SizingRows)
	return (l.Height - l.Margin*2 - l.Gap*rows - 1) / rows / 2
}

// BrickRect returns the rectangle occupied by b.
func (l Layout) BrickRect(b Brick) physics.Rect {
	w, h := l.BrickWidth(), l.BrickHeight()
	return physics.Rect{
		X: l.Margin + float64(b.Column-1)*(w+l.Gap),
		Y: l.Margin + float64(b.Row-1)*(h+l.Gap),
		W: w,
		H: h,
	}
}

// PaddleTop returns the y coordinate of the paddle's top edge.
func (l Layout) PaddleTop() float64 {
	return l.Height - l.Margin - l.PaddleHeight
}

// PaddleRect returns the rectangle of a paddle whose left edge is at pos.
func (l Layout) PaddleRect(pos float64) physics.Rect {
	return physics.Rect{X: pos, Y: l.PaddleTop(), W: l.PaddleWidth, H: l.PaddleHeight}
}

// MaxPaddle returns the largest valid paddle position.
func (l Layout) MaxPaddle() float64 {
	return l.Width - l.PaddleWidth
}
