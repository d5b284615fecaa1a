package draw

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Canvas is a pixel buffer with 2x vertical resolution, rendered with
// half-block characters. Drawing calls take arena coordinates and are scaled
// to the current render area.
type Canvas struct {
	termWidth      int    // Render area columns
	termHeight     int    // Render area rows
	subPixelHeight int    // termHeight * 2
	pixels         []bool // Flat slice: [y * termWidth + x] - true if pixel is set
	cells          []rune // Last rendered character per cell; 0 forces a repaint

	// Scaling from arena units to pixels
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// 0-based terminal offsets (columns/rows to skip) that center the render
	// area in a larger terminal.
	offsetCol int
	offsetRow int

	// Reusable buffers to reduce allocations
	renderBuf  strings.Builder // Buffer for batching render output
	polygonBuf []Point         // Reusable buffer for polygon point generation
}

// NewCanvas creates a canvas of cols x rows terminal cells showing an arena
// of logicalWidth x logicalHeight units.
func NewCanvas(cols, rows int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{logicalWidth: logicalWidth, logicalHeight: logicalHeight}
	c.Resize(cols, rows)
	return c
}

// Resize updates the render area while keeping the arena size.
func (c *Canvas) Resize(cols, rows int) {
	cols = max(cols, 0)
	rows = max(rows, 0)
	if cols != c.termWidth || rows != c.termHeight || c.pixels == nil {
		c.termWidth = cols
		c.termHeight = rows
		c.subPixelHeight = rows * 2
		c.pixels = make([]bool, c.subPixelHeight*cols)
		c.cells = make([]rune, rows*cols)
	}

	c.scaleX = float64(cols) / c.logicalWidth
	c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
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
	clear(c.pixels)
}

// setPixel sets a pixel at actual terminal coordinates (no scaling).
func (c *Canvas) setPixel(x, y int) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = true
	}
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
// Coordinates are in logical space and get scaled to pixels.
func (c *Canvas) DrawLine(p1, p2 Point) {
	// Scale to pixel coordinates for drawing
	x1 := int(math.Round(p1.X * c.scaleX))
	y1 := int(math.Round(p1.Y * c.scaleY))
	x2 := int(math.Round(p2.X * c.scaleX))
	y2 := int(math.Round(p2.Y * c.scaleY))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawPolygon draws the closed outline through points.
func (c *Canvas) DrawPolygon(points []Point) {
	if len(points) < 3 {
		return
	}
	n := len(points)
	for i := 0; i < n; i++ {
		c.DrawLine(points[i], points[(i+1)%n])
	}
}

// DrawCircle fills a disc. Radius is in logical units; discs smaller than a
// pixel still set the pixel under their center.
func (c *Canvas) DrawCircle(center Point, radius float64) {
	cx := center.X * c.scaleX
	cy := center.Y * c.scaleY
	rx := radius * c.scaleX
	ry := radius * c.scaleY
	if rx < 0.5 && ry < 0.5 {
		c.setPixel(int(math.Round(cx)), int(math.Round(cy)))
		return
	}

	for y := int(math.Floor(cy - ry)); y <= int(math.Ceil(cy+ry)); y++ {
		for x := int(math.Floor(cx - rx)); x <= int(math.Ceil(cx+rx)); x++ {
			dx := (float64(x) - cx) / max(rx, 0.5)
			dy := (float64(y) - cy) / max(ry, 0.5)
			if dx*dx+dy*dy <= 1 {
				c.setPixel(x, y)
			}
		}
	}
}

// Render writes the cells that changed since the previous Render to w as
// half-block characters at absolute cursor positions.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()

	var num [20]byte
	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			top := c.pixels[topOffset+col]
			bottom := c.pixels[bottomOffset+col]

			ch := ' '
			switch {
			case top && bottom:
				ch = BlockFull
			case top:
				ch = BlockUpperHalf
			case bottom:
				ch = BlockLowerHalf
			}

			cell := row*c.termWidth + col
			if c.cells[cell] == ch {
				continue
			}
			c.cells[cell] = ch

			c.renderBuf.WriteString("\033[")
			c.renderBuf.Write(strconv.AppendInt(num[:0], int64(row+1+c.offsetRow), 10))
			c.renderBuf.WriteByte(';')
			c.renderBuf.Write(strconv.AppendInt(num[:0], int64(col+1+c.offsetCol), 10))
			c.renderBuf.WriteByte('H')
			c.renderBuf.WriteRune(ch)
		}
	}

	_, err := io.WriteString(w, c.renderBuf.String())
	return err
}

// ForceRedraw makes the next Render write every cell, e.g. after the
// terminal was cleared.
func (c *Canvas) ForceRedraw() {
	clear(c.cells)
}

// Invalidate marks width cells starting at the 1-based (col, row) as unknown,
// so the next Render repaints whatever text overlay covered them.
func (c *Canvas) Invalidate(col, row, width int) {
	row--
	col--
	if row < 0 || row >= c.termHeight {
		return
	}
	for x := max(col, 0); x < min(col+width, c.termWidth); x++ {
		c.cells[row*c.termWidth+x] = 0
	}
}

// RenderBorder draws a box border around the canvas area when the terminal
// is larger than the render area on either axis.
// Draws horizontal borders when there is vertical offset, vertical borders
// when there is horizontal offset, and corners when both are present.
func (c *Canvas) RenderBorder(w io.Writer) error {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder
	buf.Grow((c.termWidth+2)*2 + c.termHeight*2*12) // Estimate buffer size

	if hasV {
		// Top border
		if hasH {
			// Full top: ┌───┐
			fmt.Fprintf(&buf, "\033[%d;%dH┌%s┐", top, left, strings.Repeat("─", c.termWidth))
		} else {
			// Top without corners: ───
			fmt.Fprintf(&buf, "\033[%d;%dH%s", top, c.offsetCol+1, strings.Repeat("─", c.termWidth))
		}

		// Bottom border
		if hasH {
			// Full bottom: └───┘
			fmt.Fprintf(&buf, "\033[%d;%dH└%s┘", bottom, left, strings.Repeat("─", c.termWidth))
		} else {
			// Bottom without corners: ───
			fmt.Fprintf(&buf, "\033[%d;%dH%s", bottom, c.offsetCol+1, strings.Repeat("─", c.termWidth))
		}
	}

	if hasH {
		// Side borders: │ ... │
		startRow := top + 1
		endRow := bottom
		if !hasV {
			// No horizontal borders, side bars span full canvas height
			startRow = c.offsetRow + 1
			endRow = c.offsetRow + c.termHeight + 1
		}
		for row := startRow; row < endRow; row++ {
			fmt.Fprintf(&buf, "\033[%d;%dH│\033[%d;%dH│", row, left, row, right)
		}
	}

	_, err := io.WriteString(w, buf.String())
	return err
}

// TerminalWidth returns the render area column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the render area row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts arena coordinates to a 1-based (col, row) inside
// the render area, for placing text next to drawn geometry.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Round(x * c.scaleX))
	py := int(math.Round(y * c.scaleY))
	return px + 1, py/2 + 1
}

// BorrowPoints returns a reusable slice of Points with the given length.
// The returned slice is only valid until the next call to BorrowPoints.
// Each SSH session owns its Canvas, so the buffer is never shared.
func (c *Canvas) BorrowPoints(n int) []Point {
	if cap(c.polygonBuf) < n {
		c.polygonBuf = make([]Point, n)
	}
	return c.polygonBuf[:n]
}
