package object

import (
	"math"

	"github.com/tomz197/asteroids-arena/internal/physics"
)

// Ship is the player-controlled spaceship.
type Ship struct {
	Pos     physics.Vector2 // Hull centroid
	Vel     physics.Vector2 // Velocity (zero under the translate control model)
	Angle   float64         // Facing in radians (0 = +X, -π/2 = up)
	Health  int             // Remaining hit points; 0 is terminal
	IFrames int             // Invincibility frames remaining
	Size    float64         // Distance from centroid to nose
}

// NewShip creates a ship at pos pointing up.
func NewShip(pos physics.Vector2, health, iframes int, size float64) *Ship {
	return &Ship{
		Pos:     pos,
		Angle:   -math.Pi / 2,
		Health:  health,
		IFrames: iframes,
		Size:    size,
	}
}

// Alive reports whether the ship can still move, fire and take damage.
func (s *Ship) Alive() bool {
	return s.Health > 0
}

// TakeHit applies one point of damage unless the ship is invincible or dead.
// On damage the invincibility counter is reset to grace frames.
// Returns true if health was reduced.
func (s *Ship) TakeHit(grace int) bool {
	if s.IFrames != 0 || s.Health <= 0 {
		return false
	}
	s.Health--
	s.IFrames = grace
	return true
}

// Tick counts the invincibility window down by one frame.
func (s *Ship) Tick() {
	if s.IFrames > 0 {
		s.IFrames--
	}
}

// Vertices returns the hull triangle in world space: left tail, nose, right tail.
func (s *Ship) Vertices() [3]physics.Vector2 {
	half := s.Size / 2
	local := [3]physics.Vector2{
		{X: -half, Y: half},
		{X: s.Size, Y: 0},
		{X: -half, Y: -half},
	}
	var out [3]physics.Vector2
	for i, v := range local {
		out[i] = v.Rotate(s.Angle).Add(s.Pos)
	}
	return out
}

// Nose returns the forward vertex, where lasers leave the hull.
func (s *Ship) Nose() physics.Vector2 {
	return s.Vertices()[1]
}

// Advance integrates position by velocity.
func (s *Ship) Advance(dt float64) {
	s.Pos = s.Pos.Add(s.Vel.Scale(dt))
}

// ClampTo keeps the ship inside a width x height arena. Velocity on a clamped
// axis is zeroed so the ship stops against the wall.
func (s *Ship) ClampTo(width, height float64) {
	if x := physics.Clamp(s.Pos.X, 0, width); x != s.Pos.X {
		s.Pos.X = x
		s.Vel.X = 0
	}
	if y := physics.Clamp(s.Pos.Y, 0, height); y != s.Pos.Y {
		s.Pos.Y = y
		s.Vel.Y = 0
	}
}

// Render draws the hull outline. Dead ships are not drawn; invincible ships
// blink with the given period in frames.
func (s *Ship) Render(r Renderer, blinkPeriod int) {
	if !s.Alive() || !ShouldRenderBlink(s.IFrames, blinkPeriod) {
		return
	}
	v := s.Vertices()
	r.Triangle(v[0], v[1], v[2])
}
