package loop

import "testing"

func TestSchedulerFiresOnce(t *testing.T) {
	var s frameScheduler
	calls := 0
	s.RequestFrame(func() { calls++ })

	if !s.Pending() {
		t.Fatal("expected pending frame")
	}
	if !s.fire() {
		t.Fatal("fire returned false with a pending frame")
	}
	if s.fire() {
		t.Error("second fire ran a frame")
	}
	if calls != 1 {
		t.Errorf("callback ran %d times, want 1", calls)
	}
}

func TestSchedulerKeepsOneFrame(t *testing.T) {
	var s frameScheduler
	var ran []string
	s.RequestFrame(func() { ran = append(ran, "first") })
	s.RequestFrame(func() { ran = append(ran, "second") })

	s.fire()
	if len(ran) != 1 || ran[0] != "second" {
		t.Errorf("ran %v, want [second]", ran)
	}
}

func TestSchedulerCancel(t *testing.T) {
	var s frameScheduler
	first := s.RequestFrame(func() {})
	second := s.RequestFrame(func() {})
	if first == second {
		t.Fatalf("ids not unique: %d", first)
	}

	s.CancelFrame(first)
	if !s.Pending() {
		t.Fatal("cancelling a replaced id dropped the pending frame")
	}
	s.CancelFrame(second)
	if s.Pending() {
		t.Fatal("frame still pending after cancel")
	}
	if s.fire() {
		t.Error("cancelled frame fired")
	}
	s.CancelFrame(second)
}

func TestSchedulerCallbackRequestsNext(t *testing.T) {
	var s frameScheduler
	n := 0
	var frame func()
	frame = func() {
		n++
		s.RequestFrame(frame)
	}
	s.RequestFrame(frame)

	for range 5 {
		s.fire()
	}
	if n != 5 {
		t.Errorf("frames = %d, want 5", n)
	}
	if !s.Pending() {
		t.Error("expected next frame to be pending")
	}
}
