// Package draw renders arena geometry to a terminal using half-block
// characters, and buffers terminal output for slow links.
package draw

import "github.com/tomz197/asteroids-arena/internal/physics"

// Point represents a 2D coordinate in logical (arena) units.
type Point struct {
	X, Y float64
}

// PointOf converts an arena vector to a Point.
func PointOf(v physics.Vector2) Point {
	return Point{X: v.X, Y: v.Y}
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
