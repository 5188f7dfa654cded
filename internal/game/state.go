package game

// Phase is the current game phase.
type Phase int

const (
	PhaseInit    Phase = iota // Waiting for the first start, bricks populated on first tick
	PhasePlaying              // Frames are scheduled and simulated
	PhasePaused               // No pending frame, state frozen
)

func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "init"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// Key is a logical input key understood by the game.
type Key int

const (
	KeyUnknown Key = iota
	KeyLeft        // Move paddle left while held
	KeyRight       // Move paddle right while held
	KeyPause       // Pause on release
	KeyStart       // Start or resume on release
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
	default:
		return "unknown"
	}
}

// Brick is one cell of the brick grid. Column and Row are 1-indexed.
type Brick struct {
	Column int
	Row    int
	Hit    bool
}

// Paddle is the player's bat. Position is the x offset of its left edge.
type Paddle struct {
	Position float64
}

// Ball is the bouncing ball. X and Y are the centre.
type Ball struct {
	X, Y                 float64
	VelocityX, VelocityY float64
}

// Keys holds the pressed state of the movement keys.
type Keys struct {
	Left  bool
	Right bool
}

// State is the complete mutable simulation state.
type State struct {
	Phase  Phase
	Bricks []Brick
	Paddle Paddle
	Ball   Ball
	Keys   Keys
}

// NewState returns the state for a fresh game: paddle centred, ball resting
// above the paddle centre, no bricks yet.
func NewState(l Layout) *State {
	paddle := (l.Width - l.PaddleWidth) / 2
	return &State{
		Phase:  PhaseInit,
		Paddle: Paddle{Position: paddle},
		Ball: Ball{
			X:         paddle + l.PaddleWidth/2,
			Y:         l.PaddleTop() - l.BallLift,
			VelocityX: l.BallSpeedX,
			VelocityY: l.BallSpeedY,
		},
	}
}

// InitBricks fills the brick grid in creation order: column outer, row inner.
func (s *State) InitBricks(l Layout) {
	s.Bricks = make([]Brick, 0, l.Columns*l.Rows)
	for col := 1; col <= l.Columns; col++ {
		for row := 1; row <= l.Rows; row++ {
			s.Bricks = append(s.Bricks, Brick{Column: col, Row: row})
		}
	}
}

// Remaining returns the number of bricks not yet hit.
func (s *State) Remaining() int {
	n := 0
	for _, b := range s.Bricks {
		if !b.Hit {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the state.
func (s *State) Clone() State {
	c := *s
	if s.Bricks != nil {
		c.Bricks = make([]Brick, len(s.Bricks))
		copy(c.Bricks, s.Bricks)
	}
	return c
}
