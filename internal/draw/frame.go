package draw

import (
	"bufio"
	"io"
	"strings"
)

// Frame assembles one full ANSI frame of a canvas (screen clear, cells,
// border and text overlay) and sends it to the terminal in chunks, so a
// frame reaches an SSH client in a few writes.
type Frame struct {
	canvas *Canvas
	out    *bufio.Writer
	buf    strings.Builder
}

// NewFrame returns a Frame drawing c to w.
func NewFrame(w io.Writer, c *Canvas) *Frame {
	return &Frame{
		canvas: c,
		out:    bufio.NewWriterSize(w, 8192),
	}
}

// Draw starts a new frame holding the canvas and its border. Text added
// afterwards is drawn on top.
func (f *Frame) Draw() error {
	f.buf.Reset()
	f.buf.WriteString(seqClear)
	if err := f.canvas.Render(&f.buf); err != nil {
		return err
	}
	return f.canvas.RenderBorder(&f.buf)
}

// Text centres s on a 1-based canvas row.
func (f *Frame) Text(row int, s string) {
	c := f.canvas
	col := max(1, c.TerminalWidth()/2-len([]rune(s))/2)
	f.buf.WriteString(cursor(row+c.OffsetRow(), col+c.OffsetCol()))
	f.buf.WriteString(s)
}

// Flush writes the frame and empties it.
func (f *Frame) Flush() error {
	data := f.buf.String()
	f.buf.Reset()
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := f.out.WriteString(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return f.out.Flush()
}
