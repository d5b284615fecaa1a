// Package game implements the arena simulation: one Session owns the ship,
// asteroids, lasers and particles and advances them one tick at a time.
package game

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/asteroids-arena/internal/config"
	"github.com/tomz197/asteroids-arena/internal/object"
	"github.com/tomz197/asteroids-arena/internal/physics"
)

// Session is a single game. It is not safe for concurrent use; drivers
// serving several players create one Session each.
type Session struct {
	width, height float64
	center        physics.Vector2
	cfg           config.Game
	control       object.ControlModel
	log           *log.Logger
	rng           *rand.Rand
	seed          int64

	ship      *object.Ship
	asteroids *Store[*object.Asteroid]
	lasers    *Store[*object.Laser]
	particles particleList

	nextAsteroidID object.ID
	nextLaserID    object.ID
	cooldown       float64 // Seconds until the next laser may fire
	deathTimer     float64 // Seconds until game over once the ship is dead
	score          int
	ticks          uint64
	phase          Phase

	grid      *physics.SpatialGrid
	spawnEdge int // Next edge for round-robin spawning
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for phase transitions. The default
// discards output.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithSeed overrides the configured RNG seed. Zero picks a time-based seed.
func WithSeed(seed int64) Option {
	return func(s *Session) {
		s.seed = seed
	}
}

// Result summarises a session for the score ledger.
type Result struct {
	Phase  Phase
	Score  int
	Ticks  uint64
	Health int
	Seed   int64
}

// New creates a session for a width x height arena. The session starts in
// NotStarted with a populated arena; Confirm begins play.
func New(width, height float64, cfg config.Game, opts ...Option) (*Session, error) {
	if width <= 0 || height <= 0 || math.IsNaN(width) || math.IsNaN(height) {
		return nil, fmt.Errorf("game: invalid arena %vx%v", width, height)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	s := &Session{
		width:     width,
		height:    height,
		center:    physics.Vec(width/2, height/2),
		cfg:       cfg,
		log:       log.New(io.Discard),
		seed:      cfg.Seed,
		asteroids: NewStore[*object.Asteroid](),
		lasers:    NewStore[*object.Laser](),
		grid:      physics.NewSpatialGrid(width, height, 2*cfg.Asteroids.MaxRadius+cfg.Spawn.Padding),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.seed == 0 {
		s.seed = time.Now().UnixNano()
	}
	s.rng = rand.New(rand.NewSource(s.seed))
	s.control = newControlModel(cfg.Ship)

	s.reset()
	s.phase = NotStarted
	return s, nil
}

func newControlModel(c config.Ship) object.ControlModel {
	turn := c.TurnRate * math.Pi / 180
	if c.Control == config.ControlTranslate {
		return object.TranslateControl{Speed: c.Speed, TurnRate: turn}
	}
	return object.ThrustControl{Thrust: c.Thrust, TurnRate: turn, MaxSpeed: c.MaxSpeed, Drag: c.Drag}
}

// Reset reinitialises the session to the start of a game and enters
// Playing. Arena dimensions and the RNG stream are kept.
func (s *Session) Reset() {
	s.reset()
	s.setPhase(Playing)
}

func (s *Session) reset() {
	spawn := physics.Vec(s.width/2, math.Max(s.height-2*s.cfg.Ship.Size, s.height/2))
	s.ship = object.NewShip(spawn, s.cfg.Ship.Health, s.cfg.Ship.SpawnIFrames, s.cfg.Ship.Size)

	s.asteroids.Clear()
	s.lasers.Clear()
	s.particles.releaseAll()
	s.nextAsteroidID = 0
	s.nextLaserID = 0
	s.cooldown = 0
	s.deathTimer = 0
	s.score = 0
	s.ticks = 0
	s.spawnEdge = 0

	s.replenish()
	s.log.Debug("session reset", "seed", s.seed, "asteroids", s.asteroids.Len())
}

// Confirm handles the confirm input: it starts a game from the title screen
// or restarts after GameOver/Won. It does nothing while Playing.
func (s *Session) Confirm() {
	if s.phase == Playing {
		return
	}
	s.Reset()
}

// Tick advances the session by dt. It is a no-op outside Playing.
// Returns the phase after the tick.
func (s *Session) Tick(dt time.Duration, c object.Controls) Phase {
	if s.phase != Playing {
		return s.phase
	}
	sec := dt.Seconds()
	s.ticks++

	if s.ship.Alive() {
		s.control.Steer(s.ship, c, sec)
		if s.cfg.Ship.WallStop {
			s.ship.ClampTo(s.width, s.height)
		}
		if c.Fire {
			s.fire()
		}
	}
	if s.cooldown > 0 {
		s.cooldown -= sec
	}
	s.ship.Tick()
	if !s.ship.Alive() && s.deathTimer > 0 {
		s.deathTimer -= sec
	}

	for _, l := range s.lasers.Items() {
		l.Advance(sec)
	}
	for _, a := range s.asteroids.Items() {
		a.Advance(sec)
	}
	s.particles.advance(sec)

	s.resolveCollisions()
	s.replenish()
	s.particles.prune()

	s.evaluate()
	return s.phase
}

func (s *Session) evaluate() {
	switch {
	case !s.ship.Alive() && s.deathTimer <= 0:
		s.setPhase(GameOver)
	case s.ship.Alive() && s.score >= s.cfg.WinScore:
		s.setPhase(Won)
	}
}

func (s *Session) setPhase(p Phase) {
	if s.phase == p {
		return
	}
	prev := s.phase
	s.phase = p
	s.log.Info("phase change", "from", prev, "to", p, "score", s.score, "ticks", s.ticks)
}

// Phase returns the current state machine position.
func (s *Session) Phase() Phase { return s.phase }

// IsGameOver reports whether the ship was destroyed and the game ended.
func (s *Session) IsGameOver() bool { return s.phase == GameOver }

// IsWon reports whether the win score was reached.
func (s *Session) IsWon() bool { return s.phase == Won }

// Score returns the number of asteroids destroyed by lasers.
func (s *Session) Score() int { return s.score }

// Ticks returns the number of ticks played since the last reset.
func (s *Session) Ticks() uint64 { return s.ticks }

// Seed returns the RNG seed in use.
func (s *Session) Seed() int64 { return s.seed }

// Ship returns the player ship.
func (s *Session) Ship() *object.Ship { return s.ship }

// Asteroids returns the live asteroids in insertion order.
func (s *Session) Asteroids() []*object.Asteroid { return s.asteroids.Items() }

// Lasers returns the live lasers in insertion order.
func (s *Session) Lasers() []*object.Laser { return s.lasers.Items() }

// Particles returns the live particles.
func (s *Session) Particles() []*object.Particle { return s.particles }

// Size returns the arena dimensions.
func (s *Session) Size() (width, height float64) { return s.width, s.height }

// Result summarises the current game.
func (s *Session) Result() Result {
	return Result{
		Phase:  s.phase,
		Score:  s.score,
		Ticks:  s.ticks,
		Health: s.ship.Health,
		Seed:   s.seed,
	}
}

// particleList collects particles emitted during a tick.
type particleList []*object.Particle

// Emit implements object.Emitter.
func (p *particleList) Emit(pt *object.Particle) {
	*p = append(*p, pt)
}

func (p particleList) advance(dt float64) {
	for _, pt := range p {
		pt.Advance(dt)
	}
}

// prune drops dead particles and returns them to the pool.
func (p *particleList) prune() {
	kept := (*p)[:0]
	for _, pt := range *p {
		if pt.Dead() {
			pt.Release()
			continue
		}
		kept = append(kept, pt)
	}
	clear((*p)[len(kept):])
	*p = kept
}

func (p *particleList) releaseAll() {
	for _, pt := range *p {
		pt.Release()
	}
	clear(*p)
	*p = (*p)[:0]
}

// burst emits a particle burst when particles are enabled.
func (s *Session) burst(pos physics.Vector2, count int) {
	if !s.cfg.Particles.Enabled || count <= 0 {
		return
	}
	object.SpawnBurst(pos, object.Burst{
		Count: count,
		Speed: s.cfg.Particles.Speed,
		Size:  s.cfg.Particles.Size,
		Drag:  s.cfg.Particles.Drag,
	}, s.rng, &s.particles)
}
