// Package draw renders a logical 2D surface onto a terminal using half-block
// characters, giving two vertical sub-pixels per terminal cell.
package draw

import (
	"io"
	"math"
	"strconv"
	"strings"
)

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// RGB is a 24-bit colour.
type RGB struct {
	R, G, B uint8
}

// Canvas is a colour drawing buffer with 2x vertical resolution.
// Drawing calls take logical coordinates which are scaled to sub-pixels.
type Canvas struct {
	termWidth      int   // Terminal columns covered by the canvas
	termHeight     int   // Terminal rows covered by the canvas
	subPixelHeight int   // termHeight * 2
	pixels         []RGB // Flat slice: [y * termWidth + x]
	set            []bool

	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// 0-based terminal offsets used to centre the canvas in a larger terminal.
	offsetCol int
	offsetRow int

	renderBuf strings.Builder
	numBuf    [20]byte
}

// NewScaledCanvas creates a canvas that maps a logicalWidth x logicalHeight
// surface onto termWidth x termHeight terminal cells.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping the
// logical size. Pixels are discarded when the size changes.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth < 1 {
		termWidth = 1
	}
	if termHeight < 1 {
		termHeight = 1
	}
	subPixelHeight := termHeight * 2

	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.pixels = make([]RGB, subPixelHeight*termWidth)
		c.set = make([]bool, subPixelHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}

	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// SetOffset sets the 0-based column and row offset for centering the canvas.
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.set)
}

// span converts the logical interval [lo, hi) to a pixel interval [start, end)
// clamped to [0, limit). Any non-empty interval covers at least one pixel
// unless it lies outside the canvas.
func span(lo, hi, scale float64, limit int) (start, end int) {
	start = int(math.Floor(lo * scale))
	end = int(math.Ceil(hi * scale))
	if end == start && hi > lo {
		end++
	}
	if start < 0 {
		start = 0
	}
	if end > limit {
		end = limit
	}
	return start, end
}

// ClearRect resets the pixels covered by a logical rectangle.
func (c *Canvas) ClearRect(x, y, w, h float64) {
	x0, x1 := span(x, x+w, c.scaleX, c.termWidth)
	y0, y1 := span(y, y+h, c.scaleY, c.subPixelHeight)
	for py := y0; py < y1; py++ {
		row := py * c.termWidth
		for px := x0; px < x1; px++ {
			c.set[row+px] = false
		}
	}
}

// FillRect fills a logical rectangle.
func (c *Canvas) FillRect(x, y, w, h float64, col RGB) {
	x0, x1 := span(x, x+w, c.scaleX, c.termWidth)
	y0, y1 := span(y, y+h, c.scaleY, c.subPixelHeight)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			c.setPixel(px, py, col)
		}
	}
}

// FillCircle fills a logical circle. Pixels whose centre lies inside the
// circle are set; a circle smaller than a pixel still sets the pixel
// containing its centre.
func (c *Canvas) FillCircle(cx, cy, radius float64, col RGB) {
	x0, x1 := span(cx-radius, cx+radius, c.scaleX, c.termWidth)
	y0, y1 := span(cy-radius, cy+radius, c.scaleY, c.subPixelHeight)
	r2 := radius * radius
	filled := false

	for py := y0; py < y1; py++ {
		dy := (float64(py)+0.5)/c.scaleY - cy
		for px := x0; px < x1; px++ {
			dx := (float64(px)+0.5)/c.scaleX - cx
			if dx*dx+dy*dy <= r2 {
				c.setPixel(px, py, col)
				filled = true
			}
		}
	}

	if !filled {
		c.setPixel(int(math.Floor(cx*c.scaleX)), int(math.Floor(cy*c.scaleY)), col)
	}
}

// setPixel sets a pixel at sub-pixel coordinates, ignoring out of range ones.
func (c *Canvas) setPixel(x, y int, col RGB) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		i := y*c.termWidth + x
		c.pixels[i] = col
		c.set[i] = true
	}
}

// Pixel returns the colour of a sub-pixel and whether it is set.
func (c *Canvas) Pixel(x, y int) (RGB, bool) {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return RGB{}, false
	}
	i := y*c.termWidth + x
	return c.pixels[i], c.set[i]
}

// Cell describes one non-empty terminal cell of the canvas.
// Col and Row are 0-based canvas positions without offset.
type Cell struct {
	Col, Row int
	Ch       rune
	Fg       RGB
	Bg       RGB
	HasBg    bool // Bg is only meaningful when both halves are set with different colours
}

// EachCell calls fn for every terminal cell with at least one pixel set.
func (c *Canvas) EachCell(fn func(Cell)) {
	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			top := c.set[topOffset+col]
			bottom := c.set[bottomOffset+col]
			topCol := c.pixels[topOffset+col]
			bottomCol := c.pixels[bottomOffset+col]

			cell := Cell{Col: col, Row: row}
			switch {
			case top && bottom && topCol == bottomCol:
				cell.Ch, cell.Fg = BlockFull, topCol
			case top && bottom:
				cell.Ch, cell.Fg, cell.Bg, cell.HasBg = BlockUpperHalf, topCol, bottomCol, true
			case top:
				cell.Ch, cell.Fg = BlockUpperHalf, topCol
			case bottom:
				cell.Ch, cell.Fg = BlockLowerHalf, bottomCol
			default:
				continue
			}
			fn(cell)
		}
	}
}

// maxChunkSize is the maximum bytes to write at once for smooth network flow.
const maxChunkSize = 1400

// Render writes the canvas to w as positioned, truecolour half-block cells.
// Empty cells are skipped, so the caller clears the terminal first.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.termWidth * c.termHeight * 8)

	c.EachCell(func(cell Cell) {
		c.writeCursor(cell.Row+1+c.offsetRow, cell.Col+1+c.offsetCol)
		c.writeColor(38, cell.Fg)
		if cell.HasBg {
			c.writeColor(48, cell.Bg)
		} else {
			c.renderBuf.WriteString("\033[49m")
		}
		c.renderBuf.WriteRune(cell.Ch)
	})
	c.renderBuf.WriteString("\033[0m")

	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := io.WriteString(w, chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return nil
}

func (c *Canvas) writeCursor(row, col int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col), 10))
	c.renderBuf.WriteByte('H')
}

// writeColor appends an SGR truecolour sequence; layer is 38 (fg) or 48 (bg).
func (c *Canvas) writeColor(layer int, col RGB) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(layer), 10))
	c.renderBuf.WriteString(";2;")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col.R), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col.G), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col.B), 10))
	c.renderBuf.WriteByte('m')
}

// RenderBorder draws a box around the canvas when it is offset inside a
// larger terminal. Horizontal bars need a row offset, vertical bars a
// column offset, corners need both.
func (c *Canvas) RenderBorder(w io.Writer) error {
	hasH := c.offsetCol >= 1
	hasV := c.offsetRow >= 1
	if !hasH && !hasV {
		return nil
	}

	// 1-based terminal positions
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1
	bar := strings.Repeat("─", c.termWidth)

	var buf strings.Builder
	if hasV {
		if hasH {
			buf.WriteString(cursor(top, left) + "┌" + bar + "┐")
			buf.WriteString(cursor(bottom, left) + "└" + bar + "┘")
		} else {
			buf.WriteString(cursor(top, c.offsetCol+1) + bar)
			buf.WriteString(cursor(bottom, c.offsetCol+1) + bar)
		}
	}
	if hasH {
		for row := c.offsetRow + 1; row <= c.offsetRow+c.termHeight; row++ {
			buf.WriteString(cursor(row, left) + "│" + cursor(row, right) + "│")
		}
	}

	_, err := io.WriteString(w, buf.String())
	return err
}

func cursor(row, col int) string {
	return "\033[" + strconv.Itoa(row) + ";" + strconv.Itoa(col) + "H"
}

// LogicalWidth returns the logical surface width.
func (c *Canvas) LogicalWidth() float64 {
	return c.logicalWidth
}

// LogicalHeight returns the logical surface height.
func (c *Canvas) LogicalHeight() float64 {
	return c.logicalHeight
}

// TerminalWidth returns the terminal column count covered by the canvas.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the terminal row count covered by the canvas.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts logical coordinates to a 1-based terminal
// position (col, row), offset included.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Floor(x * c.scaleX))
	py := int(math.Floor(y * c.scaleY))
	return px + 1 + c.offsetCol, py/2 + 1 + c.offsetRow
}
