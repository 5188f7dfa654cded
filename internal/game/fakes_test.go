package game

import "fmt"

// drawCall is one recorded Renderer call.
type drawCall struct {
	op   string
	fill Color
	args [4]float64
}

// recordingRenderer records every draw call.
type recordingRenderer struct {
	fill  Color
	calls []drawCall
}

func (r *recordingRenderer) SetFill(c Color) {
	r.fill = c
}

func (r *recordingRenderer) ClearRect(x, y, w, h float64) {
	r.calls = append(r.calls, drawCall{op: "clear", args: [4]float64{x, y, w, h}})
}

func (r *recordingRenderer) FillRect(x, y, w, h float64) {
	r.calls = append(r.calls, drawCall{op: "rect", fill: r.fill, args: [4]float64{x, y, w, h}})
}

func (r *recordingRenderer) FillCircle(cx, cy, radius float64) {
	r.calls = append(r.calls, drawCall{op: "circle", fill: r.fill, args: [4]float64{cx, cy, radius}})
}

func (r *recordingRenderer) reset() {
	r.calls = r.calls[:0]
}

func (r *recordingRenderer) count(op string) int {
	n := 0
	for _, c := range r.calls {
		if c.op == op {
			n++
		}
	}
	return n
}

// manualScheduler holds the pending frame until step is called.
type manualScheduler struct {
	next     FrameID
	pending  func()
	id       FrameID
	requests int
	cancels  int
}

func (s *manualScheduler) RequestFrame(fn func()) FrameID {
	s.next++
	s.pending = fn
	s.id = s.next
	s.requests++
	return s.id
}

func (s *manualScheduler) CancelFrame(id FrameID) {
	if s.pending != nil && id == s.id {
		s.pending = nil
		s.cancels++
	}
}

// step fires the pending frame. Returns false if nothing was pending.
func (s *manualScheduler) step() bool {
	fn := s.pending
	if fn == nil {
		return false
	}
	s.pending = nil
	fn()
	return true
}

func (s *manualScheduler) stepN(t interface{ Fatalf(string, ...any) }, n int) {
	for i := 0; i < n; i++ {
		if !s.step() {
			t.Fatalf("no frame pending at step %d", i)
		}
	}
}

func (c drawCall) String() string {
	return fmt.Sprintf("%s%v", c.op, c.args)
}
