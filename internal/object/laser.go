package object

import "github.com/tomz197/asteroids-arena/internal/physics"

// LaserLength is the drawn length of a laser streak.
const LaserLength = 10.0

// Laser is a projectile fired from the ship's nose. It travels in a straight
// line until it leaves the arena or strikes an asteroid.
type Laser struct {
	ID  ID
	Pos physics.Vector2
	Vel physics.Vector2
}

// NewLaser creates a laser at pos leaving along angle at speed, plus the
// shooter's velocity.
func NewLaser(id ID, pos physics.Vector2, angle, speed float64, shooterVel physics.Vector2) *Laser {
	return &Laser{
		ID:  id,
		Pos: pos,
		Vel: physics.FromAngle(angle, speed).Add(shooterVel),
	}
}

// Advance moves the laser.
func (l *Laser) Advance(dt float64) {
	l.Pos = l.Pos.Add(l.Vel.Scale(dt))
}

// OutOfArena reports whether the laser left the [0,w]x[0,h] rectangle.
func (l *Laser) OutOfArena(width, height float64) bool {
	return l.Pos.X < 0 || l.Pos.X > width || l.Pos.Y < 0 || l.Pos.Y > height
}

// Render draws a short streak trailing the laser's position.
func (l *Laser) Render(r Renderer) {
	tail := l.Pos.Sub(l.Vel.Normalize().Scale(LaserLength))
	r.Line(tail, l.Pos)
}
