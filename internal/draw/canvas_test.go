package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tomz197/breakout/internal/game"
)

var (
	orange = RGB{R: 255, G: 165}
	green  = RGB{G: 128}
)

// 10x5 terminal cells = 10x10 sub-pixels over a 100x100 logical surface.
func newTestCanvas() *Canvas {
	return NewScaledCanvas(10, 5, 100, 100)
}

func TestFillRectScales(t *testing.T) {
	c := newTestCanvas()
	c.FillRect(0, 0, 20, 20, orange)

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			col, ok := c.Pixel(x, y)
			want := x < 2 && y < 2
			if ok != want {
				t.Fatalf("pixel (%d,%d) set = %v, want %v", x, y, ok, want)
			}
			if ok && col != orange {
				t.Fatalf("pixel (%d,%d) = %v, want orange", x, y, col)
			}
		}
	}
}

func TestFillRectThinStillVisible(t *testing.T) {
	c := newTestCanvas()
	c.FillRect(30, 30, 2, 2, orange)
	if _, ok := c.Pixel(3, 3); !ok {
		t.Error("sub-pixel rectangle left no pixel")
	}
}

func TestFillRectClipped(t *testing.T) {
	c := newTestCanvas()
	c.FillRect(-50, 90, 500, 500, orange)
	if _, ok := c.Pixel(0, 9); !ok {
		t.Error("clipped rectangle should cover the bottom-left pixel")
	}
	if _, ok := c.Pixel(0, 8); ok {
		t.Error("clipped rectangle drew above its top edge")
	}
}

func TestClearRect(t *testing.T) {
	c := newTestCanvas()
	c.FillRect(0, 0, 100, 100, orange)
	c.ClearRect(0, 0, 50, 100)

	if _, ok := c.Pixel(4, 5); ok {
		t.Error("cleared pixel still set")
	}
	if _, ok := c.Pixel(5, 5); !ok {
		t.Error("pixel outside the cleared region was cleared")
	}

	c.Clear()
	if _, ok := c.Pixel(9, 9); ok {
		t.Error("Clear left pixels set")
	}
}

func TestFillCircle(t *testing.T) {
	c := newTestCanvas()
	c.FillCircle(50, 50, 10, green)

	for _, p := range [][2]int{{4, 4}, {5, 4}, {4, 5}, {5, 5}} {
		if _, ok := c.Pixel(p[0], p[1]); !ok {
			t.Errorf("pixel %v inside the circle not set", p)
		}
	}
	if _, ok := c.Pixel(6, 5); ok {
		t.Error("pixel outside the circle set")
	}
}

func TestFillCircleSmallerThanPixel(t *testing.T) {
	c := NewScaledCanvas(10, 5, 1000, 1000)
	c.FillCircle(505, 505, 10, green)
	if _, ok := c.Pixel(5, 5); !ok {
		t.Error("tiny circle left no pixel at its centre")
	}
}

func TestEachCellHalfBlocks(t *testing.T) {
	c := newTestCanvas()
	c.FillRect(0, 0, 10, 10, orange)  // pixel (0,0): top half of cell (0,0)
	c.FillRect(10, 10, 10, 10, green) // pixel (1,1): bottom half of cell (1,0)
	c.FillRect(20, 0, 10, 20, orange) // pixels (2,0),(2,1): full cell (2,0)
	c.FillRect(30, 0, 10, 10, orange) // two colours in cell (3,0)
	c.FillRect(30, 10, 10, 10, green)

	cells := map[int]Cell{}
	c.EachCell(func(cell Cell) {
		if cell.Row != 0 {
			t.Fatalf("unexpected cell %+v", cell)
		}
		cells[cell.Col] = cell
	})

	if len(cells) != 4 {
		t.Fatalf("got %d cells, want 4", len(cells))
	}
	if cells[0].Ch != BlockUpperHalf || cells[0].Fg != orange {
		t.Errorf("cell 0 = %+v", cells[0])
	}
	if cells[1].Ch != BlockLowerHalf || cells[1].Fg != green {
		t.Errorf("cell 1 = %+v", cells[1])
	}
	if cells[2].Ch != BlockFull || cells[2].HasBg {
		t.Errorf("cell 2 = %+v", cells[2])
	}
	if cells[3].Ch != BlockUpperHalf || cells[3].Fg != orange || !cells[3].HasBg || cells[3].Bg != green {
		t.Errorf("cell 3 = %+v", cells[3])
	}
}

func TestRenderOutput(t *testing.T) {
	c := newTestCanvas()
	c.SetOffset(2, 1)
	c.FillRect(0, 0, 10, 20, orange)

	var buf bytes.Buffer
	if err := c.Render(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"\033[2;3H", "\033[38;2;255;165;0m", string(BlockFull), "\033[0m"} {
		if !strings.Contains(out, want) {
			t.Errorf("render output missing %q: %q", want, out)
		}
	}
}

func TestRenderBorder(t *testing.T) {
	c := newTestCanvas()
	var buf bytes.Buffer
	if err := c.RenderBorder(&buf); err != nil || buf.Len() != 0 {
		t.Fatalf("no offset should draw no border, got %q (%v)", buf.String(), err)
	}

	c.SetOffset(3, 2)
	if err := c.RenderBorder(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"┌", "┐", "└", "┘", "│"} {
		if !strings.Contains(out, want) {
			t.Errorf("border missing %q", want)
		}
	}
}

func TestResizeKeepsLogicalSpace(t *testing.T) {
	c := newTestCanvas()
	c.Resize(20, 10)
	c.FillRect(50, 50, 10, 10, orange)
	if _, ok := c.Pixel(10, 10); !ok {
		t.Error("after resize logical (50,50) should map to sub-pixel (10,10)")
	}
	if col, row := c.LogicalToTerminal(50, 50); col != 11 || row != 6 {
		t.Errorf("LogicalToTerminal = (%d, %d), want (11, 6)", col, row)
	}
}

func TestCanvasRenderer(t *testing.T) {
	c := newTestCanvas()
	var r game.Renderer = NewCanvasRenderer(c)

	r.SetFill(game.Color{R: 255, G: 165})
	r.FillRect(0, 0, 10, 10)
	r.SetFill(game.Color{G: 128})
	r.FillCircle(50, 50, 10)

	if col, ok := c.Pixel(0, 0); !ok || col != orange {
		t.Errorf("rect pixel = %v, %v", col, ok)
	}
	if col, ok := c.Pixel(5, 5); !ok || col != green {
		t.Errorf("circle pixel = %v, %v", col, ok)
	}

	r.ClearRect(0, 0, 100, 100)
	if _, ok := c.Pixel(5, 5); ok {
		t.Error("ClearRect left pixels set")
	}
}

func TestFrame(t *testing.T) {
	var buf bytes.Buffer
	c := NewScaledCanvas(20, 5, 100, 100)
	c.SetOffset(4, 2)
	c.FillRect(0, 0, 10, 10, green)

	f := NewFrame(&buf, c)
	if err := f.Draw(); err != nil {
		t.Fatal(err)
	}
	f.Text(3, "PAUSED")
	if buf.Len() != 0 {
		t.Fatal("wrote before Flush")
	}
	if err := f.Flush(); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "\033[H\033[2J") {
		t.Errorf("frame does not start with a clear: %q", out[:min(len(out), 12)])
	}
	for _, want := range []string{"\033[38;2;0;128;0m", "┌", "\033[5;11HPAUSED"} {
		if !strings.Contains(out, want) {
			t.Errorf("frame missing %q", want)
		}
	}
	if !strings.HasSuffix(out, "PAUSED") {
		t.Error("text not drawn after the canvas")
	}

	buf.Reset()
	if err := f.Flush(); err != nil || buf.Len() != 0 {
		t.Errorf("second Flush wrote %q, err %v", buf.String(), err)
	}
}
