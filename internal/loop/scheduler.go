package loop

import "github.com/tomz197/breakout/internal/game"

// frameScheduler holds at most one pending frame callback. The host fires it
// once per tick, on the same goroutine that delivers input.
type frameScheduler struct {
	last    game.FrameID
	pending game.FrameID
	fn      func()
}

var _ game.Scheduler = (*frameScheduler)(nil)

// RequestFrame replaces any pending callback with fn.
func (s *frameScheduler) RequestFrame(fn func()) game.FrameID {
	s.last++
	s.pending = s.last
	s.fn = fn
	return s.pending
}

// CancelFrame drops the pending callback if id still refers to it.
func (s *frameScheduler) CancelFrame(id game.FrameID) {
	if id != 0 && id == s.pending {
		s.pending = 0
		s.fn = nil
	}
}

// Pending reports whether a frame is scheduled.
func (s *frameScheduler) Pending() bool {
	return s.fn != nil
}

// fire runs the pending callback, if any. The callback may request the next
// frame.
func (s *frameScheduler) fire() bool {
	fn := s.fn
	if fn == nil {
		return false
	}
	s.pending = 0
	s.fn = nil
	fn()
	return true
}
