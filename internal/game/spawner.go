package game

import (
	"math"

	"github.com/tomz197/asteroids-arena/internal/config"
	"github.com/tomz197/asteroids-arena/internal/object"
	"github.com/tomz197/asteroids-arena/internal/physics"
)

// Arena edges in round-robin spawn order.
const (
	edgeTop = iota
	edgeRight
	edgeBottom
	edgeLeft
	edgeCount
)

// replenish tops the asteroid population back up to the configured maximum.
func (s *Session) replenish() {
	limit := s.cfg.Asteroids.Max
	deficit := limit - min(s.asteroids.Len(), limit)
	if deficit <= 0 {
		return
	}

	switch s.cfg.Spawn.Mode {
	case config.SpawnTop:
		for range deficit {
			s.spawnTop()
		}
	default:
		s.spawnEdges(deficit)
	}
}

func (s *Session) randomRadius() float64 {
	lo, hi := s.cfg.Asteroids.MinRadius, s.cfg.Asteroids.MaxRadius
	return lo + s.rng.Float64()*(hi-lo)
}

func (s *Session) asteroidSpin() float64 {
	return s.cfg.Asteroids.RotationRate * math.Pi / 180
}

// spawnTop drops an asteroid straight down from the top edge.
func (s *Session) spawnTop() {
	r := s.randomRadius()
	x := s.width / 2
	if span := s.width - 2*r; span > 0 {
		x = r + s.rng.Float64()*span
	}
	a := object.NewAsteroid(s.allocAsteroidID(), physics.Vec(x, 0), physics.Vec(0, s.cfg.Asteroids.Speed),
		r, s.cfg.Asteroids.Sides, s.asteroidSpin())
	s.asteroids.Add(a.ID, a)
}

// spawnEdges distributes count spawns over the four edges and aims each one
// at the arena center. Placements overlapping an existing or just-placed
// asteroid are retried, and given up on after the configured attempts.
func (s *Session) spawnEdges(count int) {
	placed := make([]*object.Asteroid, 0, s.asteroids.Len()+count)
	s.grid.Clear()
	for _, a := range s.asteroids.Items() {
		s.grid.Insert(a.Pos, len(placed))
		placed = append(placed, a)
	}

	for range count {
		edge := s.spawnEdge % edgeCount
		s.spawnEdge++

		for range s.cfg.Spawn.Attempts {
			r := s.randomRadius()
			pos := s.edgePosition(edge, r)
			if s.crowded(pos, r, placed) {
				continue
			}

			a := object.NewAsteroid(s.allocAsteroidID(), pos, s.inwardVelocity(pos),
				r, s.cfg.Asteroids.Sides, s.asteroidSpin())
			s.asteroids.Add(a.ID, a)
			s.grid.Insert(a.Pos, len(placed))
			placed = append(placed, a)
			break
		}
	}
}

// edgePosition picks a random point on the given edge, keeping the disc
// within the edge's span.
func (s *Session) edgePosition(edge int, r float64) physics.Vector2 {
	along := func(length float64) float64 {
		if span := length - 2*r; span > 0 {
			return r + s.rng.Float64()*span
		}
		return length / 2
	}
	switch edge {
	case edgeTop:
		return physics.Vec(along(s.width), 0)
	case edgeRight:
		return physics.Vec(s.width, along(s.height))
	case edgeBottom:
		return physics.Vec(along(s.width), s.height)
	default:
		return physics.Vec(0, along(s.height))
	}
}

// inwardVelocity aims at the arena center with uniform angular jitter.
func (s *Session) inwardVelocity(pos physics.Vector2) physics.Vector2 {
	jitter := s.cfg.Spawn.Jitter * math.Pi / 180
	angle := s.center.Sub(pos).Angle() + (s.rng.Float64()*2-1)*jitter
	return physics.FromAngle(angle, s.cfg.Asteroids.Speed)
}

// crowded reports whether a disc at pos would come within padding of any
// placed asteroid.
func (s *Session) crowded(pos physics.Vector2, r float64, placed []*object.Asteroid) bool {
	hit := false
	s.grid.QueryAround(pos, func(i int) bool {
		other := placed[i]
		if physics.CirclesOverlap(pos, r+s.cfg.Spawn.Padding, other.Pos, other.Radius) {
			hit = true
		}
		return hit
	})
	return hit
}
