// Package loop runs breakout sessions in a terminal, either by writing ANSI
// sequences to a stream (local terminal, SSH) or through a tcell screen.
package loop

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/tomz197/breakout/internal/config"
	"github.com/tomz197/breakout/internal/draw"
	"github.com/tomz197/breakout/internal/game"
	"github.com/tomz197/breakout/internal/input"
)

// Session is one player's game together with its canvas and frame
// scheduler. It is independent of the terminal front-end and not safe for
// concurrent use.
type Session struct {
	cfg    config.Config
	logger *log.Logger
	game   *game.Game
	sched  *frameScheduler
	canvas *draw.Canvas
	quit   bool
}

// NewSession creates a session for a terminal of the given size and runs the
// game's first tick.
func NewSession(cfg config.Config, logger *log.Logger, termWidth, termHeight int) *Session {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Session{
		cfg:    cfg,
		logger: logger,
		sched:  &frameScheduler{},
	}

	w, h, col, row := clampTermSize(cfg, termWidth, termHeight)
	s.canvas = draw.NewScaledCanvas(w, h, cfg.Layout.Width, cfg.Layout.Height)
	s.canvas.SetOffset(col, row)

	s.game = game.New(cfg.Layout, draw.NewCanvasRenderer(s.canvas), s.sched,
		game.WithPalette(cfg.Palette),
		game.WithPaddleRule(cfg.PaddleRule),
		game.WithLogger(logger),
	)
	s.game.Boot()
	return s
}

// Handle applies one input event to the game. A quit press ends the session.
func (s *Session) Handle(ev input.Event) {
	if ev.Key == input.KeyQuit {
		if ev.Down {
			s.quit = true
		}
		return
	}

	k := gameKey(ev.Key)
	if ev.Down {
		s.game.KeyDown(k)
	} else {
		s.game.KeyUp(k)
	}
}

// Tick runs the pending frame, if any.
func (s *Session) Tick() {
	s.sched.fire()
}

// Resize adapts the canvas to a new terminal size. It reports whether the
// render area changed.
func (s *Session) Resize(termWidth, termHeight int) bool {
	w, h, col, row := clampTermSize(s.cfg, termWidth, termHeight)
	c := s.canvas
	if w == c.TerminalWidth() && h == c.TerminalHeight() && col == c.OffsetCol() && row == c.OffsetRow() {
		return false
	}
	c.Resize(w, h)
	c.SetOffset(col, row)
	s.logger.Debug("terminal resized", "width", termWidth, "height", termHeight)
	return true
}

// Done reports whether the player asked to quit.
func (s *Session) Done() bool {
	return s.quit
}

// Game returns the session's game.
func (s *Session) Game() *game.Game {
	return s.game
}

// Canvas returns the canvas the game draws on.
func (s *Session) Canvas() *draw.Canvas {
	return s.canvas
}

func gameKey(k input.Key) game.Key {
	switch k {
	case input.KeyLeft:
		return game.KeyLeft
	case input.KeyRight:
		return game.KeyRight
	case input.KeyPause:
		return game.KeyPause
	case input.KeyStart:
		return game.KeyStart
	default:
		return game.KeyUnknown
	}
}

// clampTermSize clamps terminal dimensions to the max render resolution and
// computes the centering offset for the render area.
func clampTermSize(cfg config.Config, termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, cfg.MaxTermWidth)
	renderHeight = min(termHeight, cfg.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}
