package loop

import (
	"context"
	"errors"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/tomz197/breakout/internal/draw"
	"github.com/tomz197/breakout/internal/input"
)

// cellScreen is the part of tcell.Screen the tcell host draws on.
type cellScreen interface {
	Clear()
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Show()
}

// RunTcell plays one session on an initialised tcell screen. The caller owns
// the screen and calls Fini after RunTcell returns. Key releases are
// synthesised the same way as for the ANSI host.
func RunTcell(ctx context.Context, screen tcell.Screen, opts Options) error {
	opts = opts.withDefaults()
	cfg := opts.Config

	termWidth, termHeight := screen.Size()
	s := NewSession(cfg, opts.Logger, termWidth, termHeight)
	tracker := input.NewTracker(cfg.KeyHold)

	screen.HideCursor()
	presentTcell(s, screen)

	done := make(chan struct{})
	defer close(done)

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(cfg.FrameTime())
	defer ticker.Stop()

	lastInput := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				now := time.Now()
				lastInput = now
				if e, ok := tracker.Press(tcellKey(ev.Key(), ev.Rune()), now); ok {
					s.Handle(e)
				}
			case *tcell.EventResize:
				w, h := ev.Size()
				if s.Resize(w, h) {
					screen.Sync()
				}
			}

		case now := <-ticker.C:
			for _, e := range tracker.Expire(now) {
				s.Handle(e)
			}
			if err := checkStop(s, false, now.Sub(lastInput), cfg.IdleTimeout, opts.Logger); err != nil {
				if errors.Is(err, errStop) {
					return nil
				}
				return err
			}
			s.Tick()
			presentTcell(s, screen)
		}
	}
}

// tcellKey maps a tcell key event to a logical key.
func tcellKey(k tcell.Key, r rune) input.Key {
	switch k {
	case tcell.KeyLeft:
		return input.KeyLeft
	case tcell.KeyRight:
		return input.KeyRight
	case tcell.KeyEnter:
		return input.KeyStart
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return input.KeyQuit
	case tcell.KeyRune:
		return input.RuneKey(r)
	}
	return input.KeyNone
}

func tcellColor(c draw.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// presentTcell copies the canvas cells, border and overlay to the screen.
func presentTcell(s *Session, screen cellScreen) {
	c := s.canvas
	offCol, offRow := c.OffsetCol(), c.OffsetRow()

	screen.Clear()
	c.EachCell(func(cell draw.Cell) {
		style := tcell.StyleDefault.Foreground(tcellColor(cell.Fg))
		if cell.HasBg {
			style = style.Background(tcellColor(cell.Bg))
		}
		screen.SetContent(cell.Col+offCol, cell.Row+offRow, cell.Ch, nil, style)
	})
	drawBox(screen, offCol-1, offRow-1, c.TerminalWidth()+1, c.TerminalHeight()+1)

	for _, l := range overlay(s.game.Phase(), c.TerminalHeight()) {
		col := max(0, c.TerminalWidth()/2-len([]rune(l.text))/2-1)
		for i, r := range []rune(l.text) {
			screen.SetContent(offCol+col+i, offRow+l.row-1, r, nil, tcell.StyleDefault)
		}
	}
	screen.Show()
}

// drawBox draws a frame with corners at (x0,y0) and (x0+w,y0+h). Sides that
// fall off the screen are skipped.
func drawBox(screen cellScreen, x0, y0, w, h int) {
	x1, y1 := x0+w, y0+h
	style := tcell.StyleDefault
	if y0 >= 0 {
		for x := x0 + 1; x < x1; x++ {
			screen.SetContent(x, y0, tcell.RuneHLine, nil, style)
			screen.SetContent(x, y1, tcell.RuneHLine, nil, style)
		}
	}
	if x0 >= 0 {
		for y := y0 + 1; y < y1; y++ {
			screen.SetContent(x0, y, tcell.RuneVLine, nil, style)
			screen.SetContent(x1, y, tcell.RuneVLine, nil, style)
		}
	}
	if x0 >= 0 && y0 >= 0 {
		screen.SetContent(x0, y0, tcell.RuneULCorner, nil, style)
		screen.SetContent(x1, y0, tcell.RuneURCorner, nil, style)
		screen.SetContent(x0, y1, tcell.RuneLLCorner, nil, style)
		screen.SetContent(x1, y1, tcell.RuneLRCorner, nil, style)
	}
}
