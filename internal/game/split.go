package game

import (
	"math"

	"github.com/tomz197/asteroids-arena/internal/object"
	"github.com/tomz197/asteroids-arena/internal/physics"
)

// split queues two half-radius children of parent into the pass buffer.
// The children diverge along one random axis and are exempt from bouncing
// off each other until they separate.
func (s *Session) split(parent *object.Asteroid, pass *collisionPass) {
	theta := s.rng.Float64() * 2 * math.Pi
	kick := physics.FromAngle(theta, s.cfg.Asteroids.SplitSpeed)
	radius := parent.Radius / 2
	spin := s.cfg.Asteroids.RotationRate * math.Pi / 180

	first := object.NewAsteroid(s.allocAsteroidID(), parent.Pos, parent.Vel.Add(kick), radius, s.cfg.Asteroids.Sides, spin)
	second := object.NewAsteroid(s.allocAsteroidID(), parent.Pos, parent.Vel.Sub(kick), radius, s.cfg.Asteroids.Sides, spin)
	first.Rotation = parent.Rotation
	second.Rotation = parent.Rotation
	first.ExemptID = second.ID
	second.ExemptID = first.ID

	pass.splits = append(pass.splits, first, second)
	s.burst(parent.Pos, s.cfg.Particles.SplitCount)
}

func (s *Session) allocAsteroidID() object.ID {
	s.nextAsteroidID++
	return s.nextAsteroidID
}
