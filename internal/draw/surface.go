package draw

import (
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/tomz197/asteroids-arena/internal/physics"
)

// minVisibleAlpha is the opacity below which circles are not drawn; the
// terminal has no partial intensity for half blocks.
const minVisibleAlpha = 0.25

type textItem struct {
	pos physics.Vector2
	s   string
}

// Surface adapts a Canvas to the entity drawing contract. Geometry goes to
// the canvas immediately; text is queued and written over the canvas by
// Flush so it is not rasterised.
type Surface struct {
	canvas *Canvas
	texts  []textItem
}

// NewSurface wraps c.
func NewSurface(c *Canvas) *Surface {
	return &Surface{canvas: c}
}

// Canvas returns the wrapped canvas.
func (s *Surface) Canvas() *Canvas {
	return s.canvas
}

// Begin clears the canvas and any queued text for a new frame.
func (s *Surface) Begin() {
	s.canvas.Clear()
	s.texts = s.texts[:0]
}

// Triangle draws a triangle outline.
func (s *Surface) Triangle(a, b, c physics.Vector2) {
	pts := s.canvas.BorrowPoints(3)
	pts[0], pts[1], pts[2] = PointOf(a), PointOf(b), PointOf(c)
	s.canvas.DrawPolygon(pts)
}

// Line draws a segment.
func (s *Surface) Line(a, b physics.Vector2) {
	s.canvas.DrawLine(PointOf(a), PointOf(b))
}

// Polygon draws a regular polygon outline.
func (s *Surface) Polygon(center physics.Vector2, sides int, radius, rotation float64) {
	if sides < 3 {
		return
	}
	pts := s.canvas.BorrowPoints(sides)
	step := 2 * math.Pi / float64(sides)
	for i := range pts {
		a := rotation + float64(i)*step
		pts[i] = Point{X: center.X + radius*math.Cos(a), Y: center.Y + radius*math.Sin(a)}
	}
	s.canvas.DrawPolygon(pts)
}

// Circle draws a filled disc, skipping nearly transparent ones.
func (s *Surface) Circle(center physics.Vector2, radius, alpha float64) {
	if alpha < minVisibleAlpha {
		return
	}
	s.canvas.DrawCircle(PointOf(center), radius)
}

// Text queues s for Flush.
func (s *Surface) Text(pos physics.Vector2, text string) {
	s.texts = append(s.texts, textItem{pos: pos, s: text})
}

// Flush renders changed canvas cells into cw, then writes the queued text
// on top. Cells under the text are invalidated so they repaint once the text
// moves or disappears. Text is clipped to the render area.
func (s *Surface) Flush(cw *ChunkWriter) error {
	if err := s.canvas.Render(cw); err != nil {
		return err
	}
	for _, t := range s.texts {
		col, row := s.canvas.LogicalToTerminal(t.pos.X, t.pos.Y)
		if row < 1 || row > s.canvas.TerminalHeight() || col > s.canvas.TerminalWidth() {
			continue
		}
		text := clip(t.s, s.canvas.TerminalWidth()-col+1)
		cw.WriteAt(col, row, text)
		s.canvas.Invalidate(col, row, lipgloss.Width(text))
	}
	return nil
}

// clip cuts s to at most width terminal cells.
func clip(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "")
}
