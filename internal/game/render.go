package game

// Color is an opaque RGB fill colour.
type Color struct {
	R, G, B uint8
}

// Palette holds the fill colours of the drawn objects.
type Palette struct {
	Brick  Color
	Paddle Color
	Ball   Color
}

// DefaultPalette returns orange bricks, a green paddle and a white ball.
func DefaultPalette() Palette {
	return Palette{
		Brick:  Color{R: 0xff, G: 0xa5, B: 0x00},
		Paddle: Color{R: 0x00, G: 0x80, B: 0x00},
		Ball:   Color{R: 0xf0, G: 0xf0, B: 0xf0},
	}
}

// Renderer is the 2D drawing surface the game draws on.
// Coordinates are in layout units.
type Renderer interface {
	// SetFill sets the colour used by the following fill calls.
	SetFill(c Color)
	// ClearRect erases a region.
	ClearRect(x, y, w, h float64)
	// FillRect fills a rectangle with the current fill colour.
	FillRect(x, y, w, h float64)
	// FillCircle fills a full circle with the current fill colour.
	FillCircle(cx, cy, radius float64)
}

// FrameID identifies a scheduled frame.
type FrameID uint64

// Scheduler runs frame callbacks. At most one frame is pending at a time.
type Scheduler interface {
	// RequestFrame schedules fn to run on the next frame.
	RequestFrame(fn func()) FrameID
	// CancelFrame drops a pending frame. Unknown or fired ids are ignored.
	CancelFrame(id FrameID)
}
