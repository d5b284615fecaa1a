package game

import (
	"github.com/tomz197/asteroids-arena/internal/object"
	"github.com/tomz197/asteroids-arena/internal/physics"
)

// separationEpsilon is added to each half of the overlap when pushing
// bouncing asteroids apart so the pair does not re-trigger next tick.
const separationEpsilon = 0.01

// idSet is a set of entity ids marked during a collision pass.
type idSet map[object.ID]struct{}

func (s idSet) add(id object.ID) { s[id] = struct{}{} }

func (s idSet) has(id object.ID) bool {
	_, ok := s[id]
	return ok
}

// collisionPass holds the scratch state of one resolveCollisions call.
// Nothing in it outlives the tick.
type collisionPass struct {
	removedAsteroids idSet
	removedLasers    idSet
	splits           []*object.Asteroid
}

// resolveCollisions runs every detection rule over the advanced entities,
// then removes marked entities and merges split children in one pass.
func (s *Session) resolveCollisions() {
	pass := &collisionPass{
		removedAsteroids: make(idSet),
		removedLasers:    make(idSet),
	}

	s.collideShip(pass)
	s.collideAsteroids(pass)
	s.collideLasers(pass)
	s.pruneOffArena(pass)

	s.asteroids.Remove(pass.removedAsteroids)
	s.lasers.Remove(pass.removedLasers)
	for _, child := range pass.splits {
		s.asteroids.Add(child.ID, child)
	}
}

// collideShip destroys every asteroid touching a hull vertex. Damage is
// applied through TakeHit, so iframes absorb all but the first hit. A ship
// that was already dead when the tick started touches nothing; the tick that
// kills it still destroys every asteroid on the hull.
func (s *Session) collideShip(pass *collisionPass) {
	if !s.ship.Alive() {
		return
	}
	for _, a := range s.asteroids.Items() {
		if pass.removedAsteroids.has(a.ID) || !s.shipTouches(a) {
			continue
		}

		wasAlive := s.ship.Alive()
		s.ship.TakeHit(s.cfg.Ship.Grace)
		pass.removedAsteroids.add(a.ID)

		if wasAlive && !s.ship.Alive() {
			s.burst(s.ship.Pos, s.cfg.Particles.DeathCount)
			s.deathTimer = s.cfg.Ship.DeathDelay
			s.log.Debug("ship destroyed", "asteroid", a.ID, "ticks", s.ticks)
		}
		if a.Radius > s.cfg.Asteroids.SplitThreshold {
			s.split(a, pass)
		}
	}
}

func (s *Session) shipTouches(a *object.Asteroid) bool {
	for _, v := range s.ship.Vertices() {
		if a.Contains(v) {
			return true
		}
	}
	return false
}

// collideAsteroids bounces every overlapping, approaching pair. Freshly
// split siblings are exempt until they separate.
func (s *Session) collideAsteroids(pass *collisionPass) {
	items := s.asteroids.Items()

	for _, a := range items {
		if a.ExemptID == object.NoID {
			continue
		}
		if !s.asteroids.Has(a.ExemptID) || pass.removedAsteroids.has(a.ExemptID) {
			a.ClearExemption()
		}
	}

	for i, a := range items {
		if pass.removedAsteroids.has(a.ID) {
			continue
		}
		for _, b := range items[i+1:] {
			if pass.removedAsteroids.has(b.ID) {
				continue
			}
			dist := physics.Distance(a.Pos, b.Pos)
			sum := a.Radius + b.Radius

			if a.ExemptFrom(b) {
				if dist < sum {
					continue
				}
				if a.ExemptID == b.ID {
					a.ClearExemption()
				}
				if b.ExemptID == a.ID {
					b.ClearExemption()
				}
			}

			if dist > 0 && dist < sum {
				s.bounce(a, b, dist)
			}
		}
	}
}

// bounce applies an elastic impulse between two overlapping asteroids using
// radius² as mass, then pushes them apart along the contact normal.
func (s *Session) bounce(a, b *object.Asteroid, dist float64) {
	n := b.Pos.Sub(a.Pos).Scale(1 / dist)
	vn := b.Vel.Sub(a.Vel).Dot(n)
	if vn >= 0 {
		return
	}

	ma := a.Radius * a.Radius
	mb := b.Radius * b.Radius
	j := 2 * vn / (ma + mb)
	a.Vel = a.Vel.Add(n.Scale(j * mb))
	b.Vel = b.Vel.Sub(n.Scale(j * ma))

	contact := a.Pos.Add(n.Scale(a.Radius))
	push := (a.Radius+b.Radius-dist)/2 + separationEpsilon
	a.Pos = a.Pos.Sub(n.Scale(push))
	b.Pos = b.Pos.Add(n.Scale(push))

	s.burst(contact, s.cfg.Particles.BounceCount)
}

// collideLasers lets each laser damage the first asteroid, in insertion
// order, whose disc contains it. A laser striking an asteroid already
// destroyed this tick is spent without scoring.
func (s *Session) collideLasers(pass *collisionPass) {
	for _, l := range s.lasers.Items() {
		for _, a := range s.asteroids.Items() {
			if !a.Contains(l.Pos) {
				continue
			}
			pass.removedLasers.add(l.ID)
			if pass.removedAsteroids.has(a.ID) {
				break
			}
			if a.Damage() {
				pass.removedAsteroids.add(a.ID)
				s.score++
				if a.Radius > s.cfg.Asteroids.SplitThreshold {
					s.split(a, pass)
				}
			}
			break
		}
	}
}

// pruneOffArena marks lasers outside the arena and asteroids outside it by
// more than their radius.
func (s *Session) pruneOffArena(pass *collisionPass) {
	for _, l := range s.lasers.Items() {
		if l.OutOfArena(s.width, s.height) {
			pass.removedLasers.add(l.ID)
		}
	}
	for _, a := range s.asteroids.Items() {
		if a.OutOfArena(s.width, s.height) {
			pass.removedAsteroids.add(a.ID)
		}
	}
}
