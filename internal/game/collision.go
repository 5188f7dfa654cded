package game

import (
	"fmt"
	"math"

	"github.com/tomz197/breakout/internal/physics"
)

// PaddleRule selects how the ball reacts to the paddle.
type PaddleRule int

const (
	// PaddleForceUp sends the ball upward whenever it sits over the paddle
	// and its bottom edge has reached the paddle top. The vertical velocity
	// is forced negative rather than flipped.
	PaddleForceUp PaddleRule = iota

	// PaddleLegacyFlip is the rule of the simpler game variant, kept as found:
	// it flips the vertical velocity when the ball is below the paddle top
	// and NOT over the paddle. It lets the ball fall through the paddle.
	PaddleLegacyFlip
)

// legacyPaddleSlack is the vertical slack of the legacy paddle test.
const legacyPaddleSlack = 5

func (r PaddleRule) String() string {
	switch r {
	case PaddleForceUp:
		return "force-up"
	case PaddleLegacyFlip:
		return "legacy-flip"
	default:
		return fmt.Sprintf("PaddleRule(%d)", int(r))
	}
}

// ParsePaddleRule parses the names returned by PaddleRule.String.
func ParsePaddleRule(s string) (PaddleRule, error) {
	switch s {
	case "", "force-up":
		return PaddleForceUp, nil
	case "legacy-flip":
		return PaddleLegacyFlip, nil
	default:
		return 0, fmt.Errorf("unknown paddle rule %q", s)
	}
}

// apply runs the rule against the current ball and paddle.
// Returns true if the ball velocity was changed.
func (r PaddleRule) apply(s *State, l Layout) bool {
	b := &s.Ball
	rad := l.BallRadius
	left := s.Paddle.Position
	right := left + l.PaddleWidth
	top := l.PaddleTop()

	switch r {
	case PaddleLegacyFlip:
		outside := b.X-rad < left || b.X+rad > right
		if b.Y-legacyPaddleSlack > top && outside {
			b.VelocityY = -b.VelocityY
			return true
		}
	default:
		if physics.SpanWithin(b.X-rad, b.X+rad, left, right) && b.Y+rad >= top {
			b.VelocityY = -math.Abs(b.VelocityY)
			return true
		}
	}
	return false
}

// Collisions reports what the ball hit during one step.
type Collisions struct {
	WallX  bool // Left or right wall, horizontal velocity flipped
	WallY  bool // Top or bottom wall, vertical velocity flipped
	Floor  bool // The vertical wall hit was the bottom one
	Paddle bool // Paddle rule changed the vertical velocity
	Brick  int  // Index of the brick hit, -1 if none
}

// Any reports whether anything was hit.
func (c Collisions) Any() bool {
	return c.WallX || c.WallY || c.Paddle || c.Brick >= 0
}

// MovePaddle applies the held keys to the paddle and clamps it to the surface.
// Both keys may apply in the same step.
func MovePaddle(s *State, l Layout) {
	if s.Keys.Left {
		s.Paddle.Position -= l.PaddleStep
	}
	if s.Keys.Right {
		s.Paddle.Position += l.PaddleStep
	}
	s.Paddle.Position = physics.Clamp(s.Paddle.Position, 0, l.MaxPaddle())
}

// MoveBall integrates the ball one step and resolves wall, paddle and brick
// collisions in that order. Overlap is never resolved, only velocity signs
// change, so a fast ball can tunnel through thin colliders.
func MoveBall(s *State, l Layout, rule PaddleRule) Collisions {
	b := &s.Ball
	rad := l.BallRadius
	c := Collisions{Brick: -1}

	b.X += b.VelocityX
	b.Y += b.VelocityY

	if b.Y-rad <= 0 || b.Y+rad >= l.Height {
		b.VelocityY = -b.VelocityY
		c.WallY = true
		c.Floor = b.Y+rad >= l.Height
	}
	if b.X-rad < 0 || b.X+rad > l.Width {
		b.VelocityX = -b.VelocityX
		c.WallX = true
	}

	c.Paddle = rule.apply(s, l)
	c.Brick = hitBrick(s, l)
	return c
}

// hitBrick marks the first unhit brick overlapping the ball and bounces the
// ball vertically. Only one brick is hit per step.
func hitBrick(s *State, l Layout) int {
	b := &s.Ball
	bounds := physics.CircleBounds(b.X, b.Y, l.BallRadius)
	for i := range s.Bricks {
		brick := &s.Bricks[i]
		if brick.Hit {
			continue
		}
		if physics.Overlaps(bounds, l.BrickRect(*brick)) {
			brick.Hit = true
			b.VelocityY = -b.VelocityY
			return i
		}
	}
	return -1
}
