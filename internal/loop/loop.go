package loop

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/breakout/internal/config"
	"github.com/tomz197/breakout/internal/draw"
	"github.com/tomz197/breakout/internal/input"
)

// Options configures a host loop.
type Options struct {
	Config config.Config
	Logger *log.Logger

	// TermSizeFunc reports the terminal size for the ANSI host.
	// Defaults to the size of os.Stdout.
	TermSizeFunc draw.TermSizeFunc
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.TermSizeFunc == nil {
		o.TermSizeFunc = draw.DefaultTermSizeFunc
	}
	return o
}

// errStop ends a host loop without an error.
var errStop = errors.New("stop")

// Run plays one session on a byte stream terminal: input is read from r and
// frames are written to w as ANSI sequences. It returns when the player
// quits, r ends, the session idles out or ctx is cancelled.
func Run(ctx context.Context, r io.ByteReader, w io.Writer, opts Options) error {
	opts = opts.withDefaults()
	cfg := opts.Config

	termWidth, termHeight, err := opts.TermSizeFunc()
	if err != nil {
		return fmt.Errorf("terminal size: %w", err)
	}

	s := NewSession(cfg, opts.Logger, termWidth, termHeight)
	stream := input.StartStream(r, cfg.KeyHold)
	defer stream.Stop()
	out := draw.NewFrame(w, s.canvas)

	draw.HideCursor(w)
	defer draw.ShowCursor(w)

	if err := presentANSI(s, out); err != nil {
		return err
	}

	ticker := time.NewTicker(cfg.FrameTime())
	defer ticker.Stop()

	lastInput := time.Now()
	for {
		var now time.Time
		select {
		case <-ctx.Done():
			draw.ClearScreen(w)
			return nil
		case now = <-ticker.C:
		}

		// ===== INPUT PHASE =====
		events := stream.Poll()
		if len(events) > 0 {
			lastInput = now
		}
		for _, ev := range events {
			s.Handle(ev)
		}
		if err := checkStop(s, stream.Closed(), now.Sub(lastInput), cfg.IdleTimeout, opts.Logger); err != nil {
			draw.ClearScreen(w)
			if errors.Is(err, errStop) {
				return nil
			}
			return err
		}

		// ===== UPDATE PHASE =====
		if tw, th, err := opts.TermSizeFunc(); err == nil {
			s.Resize(tw, th)
		}
		s.Tick()

		// ===== DRAW PHASE =====
		if err := presentANSI(s, out); err != nil {
			return err
		}
	}
}

func checkStop(s *Session, closed bool, idle, idleTimeout time.Duration, logger *log.Logger) error {
	switch {
	case s.Done():
		logger.Debug("player quit")
		return errStop
	case closed:
		logger.Debug("input closed")
		return errStop
	case idleTimeout > 0 && idle >= idleTimeout:
		logger.Info("idle timeout", "idle", idle.Round(time.Second))
		return errStop
	}
	return nil
}

// presentANSI writes the full frame: canvas, border and phase overlay.
func presentANSI(s *Session, out *draw.Frame) error {
	if err := out.Draw(); err != nil {
		return err
	}
	for _, l := range overlay(s.game.Phase(), s.canvas.TerminalHeight()) {
		out.Text(l.row, l.text)
	}
	return out.Flush()
}
