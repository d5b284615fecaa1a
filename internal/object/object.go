// Package object contains the simulation entities (ship, lasers, asteroids,
// particles), their per-frame advancement and their drawing contract.
package object

import "github.com/tomz197/asteroids-arena/internal/physics"

// ID identifies a laser or asteroid. IDs come from per-kind monotonic counters
// starting at 1; the zero ID means "none".
type ID uint32

// NoID is the zero ID, used for an unset collision exemption.
const NoID ID = 0

// Renderer is the drawing surface entities render onto. Coordinates are in
// arena units; implementations scale to their own output.
type Renderer interface {
	// Triangle draws a triangle outline.
	Triangle(a, b, c physics.Vector2)
	// Line draws a line segment.
	Line(a, b physics.Vector2)
	// Polygon draws a regular polygon outline with the given number of sides.
	Polygon(center physics.Vector2, sides int, radius, rotation float64)
	// Circle draws a filled circle; alpha in [0, 1] is the opacity.
	Circle(center physics.Vector2, radius, alpha float64)
	// Text draws a line of text with its top-left corner at pos.
	Text(pos physics.Vector2, s string)
}

// Controls is the per-tick input the simulation reads.
type Controls struct {
	Forward bool
	Back    bool
	Left    bool
	Right   bool
	Fire    bool
}

// Emitter receives particles spawned during an update.
type Emitter interface {
	Emit(p *Particle)
}

// ShouldRenderBlink returns true if an object with remainingFrames of
// invincibility should be drawn this frame. The object alternates between
// visible and hidden every period frames; it is always visible once
// remainingFrames reaches zero.
func ShouldRenderBlink(remainingFrames, period int) bool {
	if remainingFrames <= 0 || period <= 0 {
		return true
	}
	return (remainingFrames/period)%2 == 0
}
