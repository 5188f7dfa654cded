// Package input turns a terminal byte stream into key press and release events.
//
// Terminals only report presses (repeated while a key is held), so a key is
// considered held until no press has been seen for the hold duration.
package input

import (
	"io"
	"slices"
	"sync"
	"time"
)

// DefaultHoldDuration is how long a key stays held after its last press.
// It has to outlast the terminal's key repeat interval.
const DefaultHoldDuration = 120 * time.Millisecond

// Key is a logical key.
type Key uint8

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyPause
	KeyStart
	KeyQuit
	keyCount
)

func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyPause:
		return "pause"
	case KeyStart:
		return "start"
	case KeyQuit:
		return "quit"
	default:
		return "none"
	}
}

// Event is a key press (Down) or release.
type Event struct {
	Key  Key
	Down bool
}

// Tracker synthesises press and release events from repeated presses.
type Tracker struct {
	hold time.Duration
	last [keyCount]time.Time
	held [keyCount]bool
}

// NewTracker creates a tracker. A non-positive hold uses DefaultHoldDuration.
func NewTracker(hold time.Duration) *Tracker {
	if hold <= 0 {
		hold = DefaultHoldDuration
	}
	return &Tracker{hold: hold}
}

// Press records a press of k at now. Returns a Down event if k was not held.
func (t *Tracker) Press(k Key, now time.Time) (Event, bool) {
	if k == KeyNone || k >= keyCount {
		return Event{}, false
	}
	t.last[k] = now
	if t.held[k] {
		return Event{}, false
	}
	t.held[k] = true
	return Event{Key: k, Down: true}, true
}

// Expire returns release events for held keys whose last press is at least
// the hold duration old, oldest press first.
func (t *Tracker) Expire(now time.Time) []Event {
	var events []Event
	for k := KeyNone + 1; k < keyCount; k++ {
		if t.held[k] && now.Sub(t.last[k]) >= t.hold {
			t.held[k] = false
			events = append(events, Event{Key: k})
		}
	}
	slices.SortStableFunc(events, func(a, b Event) int {
		return t.last[a.Key].Compare(t.last[b.Key])
	})
	return events
}

// Held reports whether k is currently held.
func (t *Tracker) Held(k Key) bool {
	return k < keyCount && t.held[k]
}

// Stream delivers input bytes via a channel and tracks key state.
type Stream struct {
	ch       chan byte
	done     chan struct{}
	stopOnce sync.Once
	tracker  *Tracker
	pending  []byte // unfinished escape sequence from the previous poll
	closed   bool
	now      func() time.Time
}

// StartStream spawns a goroutine that reads from r and feeds the stream
// until r ends or Stop is called.
func StartStream(r io.ByteReader, hold time.Duration) *Stream {
	s := newStream(hold)
	go func() {
		for {
			select {
			case <-s.done:
				return
			default:
			}
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			select {
			case s.ch <- b:
			case <-s.done:
				return
			}
		}
	}()
	return s
}

func newStream(hold time.Duration) *Stream {
	return &Stream{
		ch:      make(chan byte, 128),
		done:    make(chan struct{}),
		tracker: NewTracker(hold),
		now:     time.Now,
	}
}

// Stop releases the reader goroutine once its current read returns.
// The stream must not be polled afterwards.
func (s *Stream) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
	})
}

// Poll drains all available bytes without blocking and returns the resulting
// events: presses in arrival order followed by releases.
func (s *Stream) Poll() []Event {
	now := s.now()
	buf := s.pending
	s.pending = nil

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	keys, rest := parseKeys(buf)
	if !s.closed {
		s.pending = rest
	}

	var events []Event
	for _, k := range keys {
		if ev, ok := s.tracker.Press(k, now); ok {
			events = append(events, ev)
		}
	}
	return append(events, s.tracker.Expire(now)...)
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}

// ParseKeys maps raw terminal bytes to keys, decoding arrow key escape
// sequences. Unknown bytes and a trailing unfinished sequence are dropped.
func ParseKeys(buf []byte) []Key {
	keys, _ := parseKeys(buf)
	return keys
}

// parseKeys is ParseKeys that also returns the unfinished escape sequence
// (ESC, ESC [ or ESC O) ending buf, so it can be completed by later bytes.
func parseKeys(buf []byte) (keys []Key, rest []byte) {
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && (i+1 == len(buf) || (i+2 == len(buf) && isIntroducer(buf[i+1]))) {
			return keys, buf[i:]
		}

		// CSI (ESC [ x) and SS3 (ESC O x) arrow sequences
		if b == '\x1b' && isIntroducer(buf[i+1]) {
			switch buf[i+2] {
			case 'C':
				keys = append(keys, KeyRight)
			case 'D':
				keys = append(keys, KeyLeft)
			}
			i += 2
			continue
		}

		if k := RuneKey(rune(b)); k != KeyNone {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func isIntroducer(b byte) bool {
	return b == '[' || b == 'O'
}

// RuneKey maps a single typed character to a key.
func RuneKey(r rune) Key {
	switch r {
	case 'a', 'A', 'h', 'H':
		return KeyLeft
	case 'd', 'D', 'l', 'L':
		return KeyRight
	case 'p', 'P':
		return KeyPause
	case ' ', '\r', '\n':
		return KeyStart
	case 'q', 'Q', '\x03':
		return KeyQuit
	default:
		return KeyNone
	}
}
