package object

import (
	"math"

	"github.com/tomz197/asteroids-arena/internal/physics"
)

// ControlModel turns per-tick controls into ship motion.
type ControlModel interface {
	Steer(s *Ship, c Controls, dt float64)
}

// ThrustControl is the momentum scheme: thrust accelerates along the facing,
// drag slows the ship when no thrust is applied.
type ThrustControl struct {
	Thrust   float64 // Acceleration in units/s²
	TurnRate float64 // Radians per second
	MaxSpeed float64 // Velocity magnitude cap
	Drag     float64 // Fraction of speed kept per second when coasting (1 = no drag)
}

// Steer rotates, accelerates and moves the ship.
func (t ThrustControl) Steer(s *Ship, c Controls, dt float64) {
	if c.Left {
		s.Angle -= t.TurnRate * dt
	}
	if c.Right {
		s.Angle += t.TurnRate * dt
	}
	s.Angle = physics.NormalizeAngle(s.Angle)

	thrusting := c.Forward != c.Back
	if c.Forward && !c.Back {
		s.Vel = s.Vel.Add(physics.FromAngle(s.Angle, t.Thrust*dt))
	}
	if c.Back && !c.Forward {
		s.Vel = s.Vel.Sub(physics.FromAngle(s.Angle, t.Thrust*dt))
	}

	if !thrusting && t.Drag > 0 && t.Drag < 1 {
		s.Vel = s.Vel.Scale(math.Pow(t.Drag, dt))
	}

	if t.MaxSpeed > 0 {
		if sq := s.Vel.LengthSquared(); sq > t.MaxSpeed*t.MaxSpeed {
			s.Vel = s.Vel.Scale(t.MaxSpeed / math.Sqrt(sq))
		}
	}

	s.Advance(dt)
}

// TranslateControl moves the ship at a fixed speed along its facing with no
// momentum. Forward wins over back and left wins over right.
type TranslateControl struct {
	Speed    float64 // Units per second
	TurnRate float64 // Radians per second
}

// Steer translates and rotates the ship directly.
func (t TranslateControl) Steer(s *Ship, c Controls, dt float64) {
	step := t.Speed * dt
	switch {
	case c.Forward:
		s.Pos = s.Pos.Add(physics.FromAngle(s.Angle, step))
	case c.Back:
		s.Pos = s.Pos.Sub(physics.FromAngle(s.Angle, step))
	}

	switch {
	case c.Left:
		s.Angle -= t.TurnRate * dt
	case c.Right:
		s.Angle += t.TurnRate * dt
	}
	s.Angle = physics.NormalizeAngle(s.Angle)
	s.Vel = physics.Vector2{}
}
