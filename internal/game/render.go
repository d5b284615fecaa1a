package game

import (
	"fmt"
	"strings"

	"github.com/tomz197/asteroids-arena/internal/object"
	"github.com/tomz197/asteroids-arena/internal/physics"
)

// HUD text positions in arena units.
var (
	scorePos  = physics.Vec(10, 10)
	healthPos = physics.Vec(10, 30)
)

// Render draws every live entity and the score/health HUD. It does not
// modify the session.
func (s *Session) Render(r object.Renderer) {
	for _, p := range s.particles {
		p.Render(r)
	}
	for _, a := range s.asteroids.Items() {
		a.Render(r)
	}
	for _, l := range s.lasers.Items() {
		l.Render(r)
	}
	s.ship.Render(r, s.cfg.Ship.BlinkPeriod)

	r.Text(scorePos, fmt.Sprintf("Score: %d", s.score))
	r.Text(healthPos, "Health: "+strings.TrimSpace(strings.Repeat("<3 ", s.ship.Health)))
}
