package game

import (
	"github.com/tomz197/asteroids-arena/internal/object"
	"github.com/tomz197/asteroids-arena/internal/physics"
)

// fire spawns a laser at the ship's nose if the cooldown has elapsed.
// At most one laser is fired per call.
func (s *Session) fire() {
	if s.cooldown > 0 {
		return
	}
	var inherited physics.Vector2
	if s.cfg.Weapon.InheritVelocity {
		inherited = s.ship.Vel
	}
	s.nextLaserID++
	l := object.NewLaser(s.nextLaserID, s.ship.Nose(), s.ship.Angle, s.cfg.Weapon.MuzzleSpeed, inherited)
	s.lasers.Add(l.ID, l)
	s.cooldown = s.cfg.Weapon.Cooldown
}
