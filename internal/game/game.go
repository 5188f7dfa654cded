// Package game implements the breakout game loop and its state machine.
//
// A Game owns a single State. Frames are driven by an injected Scheduler and
// drawn through an injected Renderer; input arrives as KeyDown/KeyUp calls
// made by the host between frames, on the same goroutine that runs frames.
package game

import (
	"io"

	"github.com/charmbracelet/log"
)

// Game is the game loop. It is not safe for concurrent use.
type Game struct {
	layout    Layout
	palette   Palette
	rule      PaddleRule
	renderer  Renderer
	scheduler Scheduler
	logger    *log.Logger

	state   *State
	frame   FrameID
	pending bool   // frame holds a scheduled, not yet fired request
	frames  uint64 // simulated frames
}

// Option configures a Game.
type Option func(*Game)

// WithPalette sets the fill colours.
func WithPalette(p Palette) Option {
	return func(g *Game) {
		g.palette = p
	}
}

// WithPaddleRule selects the paddle collision rule.
func WithPaddleRule(r PaddleRule) Option {
	return func(g *Game) {
		g.rule = r
	}
}

// WithLogger sets the logger for phase changes and notable collisions.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.logger = l
		}
	}
}

// New creates a game in the init phase.
func New(layout Layout, r Renderer, s Scheduler, opts ...Option) *Game {
	g := &Game{
		layout:    layout,
		palette:   DefaultPalette(),
		rule:      PaddleForceUp,
		renderer:  r,
		scheduler: s,
		logger:    log.New(io.Discard),
		state:     NewState(layout),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Boot runs the first loop tick, which populates the brick grid.
func (g *Game) Boot() {
	g.loop()
}

// Start enters the playing phase and starts scheduling frames.
// Ignored while already playing.
func (g *Game) Start() {
	if g.state.Phase == PhasePlaying {
		return
	}
	if g.state.Bricks == nil {
		// Started before the first tick.
		g.state.InitBricks(g.layout)
	}
	g.logger.Debug("phase change", "from", g.state.Phase, "to", PhasePlaying)
	g.state.Phase = PhasePlaying
	g.loop()
}

// Pause stops simulation and cancels the pending frame.
// Ignored unless playing.
func (g *Game) Pause() {
	if g.state.Phase != PhasePlaying {
		return
	}
	g.logger.Debug("phase change", "from", g.state.Phase, "to", PhasePaused)
	g.state.Phase = PhasePaused
	g.cancelFrame()
}

// KeyDown records a key press. Only movement keys react to presses.
func (g *Game) KeyDown(k Key) {
	switch k {
	case KeyLeft:
		g.state.Keys.Left = true
	case KeyRight:
		g.state.Keys.Right = true
	}
}

// KeyUp records a key release. Pause and start act on release.
func (g *Game) KeyUp(k Key) {
	switch k {
	case KeyLeft:
		g.state.Keys.Left = false
	case KeyRight:
		g.state.Keys.Right = false
	case KeyPause:
		g.Pause()
	case KeyStart:
		g.Start()
	}
}

// Phase returns the current phase.
func (g *Game) Phase() Phase {
	return g.state.Phase
}

// Layout returns the layout the game was built with.
func (g *Game) Layout() Layout {
	return g.layout
}

// Frames returns the number of simulated frames.
func (g *Game) Frames() uint64 {
	return g.frames
}

// Snapshot returns a copy of the current state.
func (g *Game) Snapshot() State {
	return g.state.Clone()
}

// loop is the frame callback.
func (g *Game) loop() {
	g.pending = false

	if g.state.Phase == PhaseInit && g.state.Bricks == nil {
		g.state.InitBricks(g.layout)
		g.logger.Debug("bricks initialised", "count", len(g.state.Bricks))
	}

	switch g.state.Phase {
	case PhasePlaying:
		g.step()
		g.frame = g.scheduler.RequestFrame(g.loop)
		g.pending = true
	case PhasePaused:
		g.cancelFrame()
	}
}

func (g *Game) cancelFrame() {
	if !g.pending {
		return
	}
	g.scheduler.CancelFrame(g.frame)
	g.pending = false
}

// step simulates and draws one frame.
func (g *Game) step() {
	l := g.layout
	g.frames++

	g.renderer.ClearRect(0, 0, l.Width, l.Height)
	g.drawBricks()

	MovePaddle(g.state, l)
	g.drawPaddle()

	c := MoveBall(g.state, l, g.rule)
	if c.Floor {
		g.logger.Debug("ball hit floor", "frame", g.frames, "x", g.state.Ball.X)
	}
	if c.Brick >= 0 {
		b := g.state.Bricks[c.Brick]
		g.logger.Debug("brick hit", "column", b.Column, "row", b.Row, "remaining", g.state.Remaining())
	}
	g.drawBall()
}

func (g *Game) drawBricks() {
	g.renderer.SetFill(g.palette.Brick)
	for _, b := range g.state.Bricks {
		if b.Hit {
			continue
		}
		r := g.layout.BrickRect(b)
		g.renderer.FillRect(r.X, r.Y, r.W, r.H)
	}
}

func (g *Game) drawPaddle() {
	r := g.layout.PaddleRect(g.state.Paddle.Position)
	g.renderer.SetFill(g.palette.Paddle)
	g.renderer.FillRect(r.X, r.Y, r.W, r.H)
}

func (g *Game) drawBall() {
	g.renderer.SetFill(g.palette.Ball)
	g.renderer.FillCircle(g.state.Ball.X, g.state.Ball.Y, g.layout.BallRadius)
}
