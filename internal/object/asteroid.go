package object

import "github.com/tomz197/asteroids-arena/internal/physics"

// Asteroid is a destructible space rock drawn as a regular polygon.
type Asteroid struct {
	ID       ID
	Pos      physics.Vector2 // Center
	Vel      physics.Vector2
	Radius   float64 // Collision and draw radius
	Rotation float64 // Current draw rotation (radians)
	Spin     float64 // Rotation speed (radians/sec)
	Health   int
	Sides    int
	ExemptID ID // Split sibling this asteroid does not bounce off yet
}

// NewAsteroid creates an asteroid with one hit point.
func NewAsteroid(id ID, pos, vel physics.Vector2, radius float64, sides int, spin float64) *Asteroid {
	return &Asteroid{
		ID:     id,
		Pos:    pos,
		Vel:    vel,
		Radius: radius,
		Spin:   spin,
		Health: 1,
		Sides:  sides,
	}
}

// Advance moves and rotates the asteroid.
func (a *Asteroid) Advance(dt float64) {
	a.Pos = a.Pos.Add(a.Vel.Scale(dt))
	a.Rotation += a.Spin * dt
}

// Damage removes one hit point. Returns true when the asteroid is destroyed.
func (a *Asteroid) Damage() bool {
	if a.Health > 0 {
		a.Health--
	}
	return a.Health == 0
}

// Contains reports whether p lies strictly inside the asteroid's disc.
func (a *Asteroid) Contains(p physics.Vector2) bool {
	return physics.PointInCircle(p, a.Pos, a.Radius)
}

// ExemptFrom reports whether a collision between a and other is suppressed
// by a split exemption on either side.
func (a *Asteroid) ExemptFrom(other *Asteroid) bool {
	return (a.ExemptID != NoID && a.ExemptID == other.ID) ||
		(other.ExemptID != NoID && other.ExemptID == a.ID)
}

// ClearExemption drops the exemption.
func (a *Asteroid) ClearExemption() {
	a.ExemptID = NoID
}

// OutOfArena reports whether the asteroid is outside the arena by more than
// its own radius on any side.
func (a *Asteroid) OutOfArena(width, height float64) bool {
	r := a.Radius
	return a.Pos.X < -r || a.Pos.X > width+r || a.Pos.Y < -r || a.Pos.Y > height+r
}

// Render draws the asteroid outline.
func (a *Asteroid) Render(r Renderer) {
	r.Polygon(a.Pos, a.Sides, a.Radius, a.Rotation)
}
