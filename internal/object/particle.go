package object

import (
	"math"
	"math/rand"
	"sync"

	"github.com/tomz197/asteroids-arena/internal/physics"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived visual effect. It has no gameplay effect.
type Particle struct {
	Pos  physics.Vector2
	Vel  physics.Vector2
	Life float64 // Starts at 1 and fades to 0
	Size float64
	Drag float64 // Velocity multiplier applied each tick
}

// NewParticle creates a single particle from the pool.
func NewParticle(pos, vel physics.Vector2, size, drag float64) *Particle {
	p := particlePool.Get().(*Particle)
	p.Pos = pos
	p.Vel = vel
	p.Life = 1
	p.Size = size
	p.Drag = drag
	return p
}

// Release returns the particle to the pool for reuse.
// Should be called when the particle is removed from the session.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// Advance moves the particle, applies drag once per tick and burns life.
func (p *Particle) Advance(dt float64) {
	p.Pos = p.Pos.Add(p.Vel.Scale(dt))
	p.Vel = p.Vel.Scale(p.Drag)
	p.Life -= 2 * dt
}

// Dead reports whether the particle has faded out.
func (p *Particle) Dead() bool {
	return p.Life <= 0
}

// Render draws the particle with its remaining life as opacity.
func (p *Particle) Render(r Renderer) {
	r.Circle(p.Pos, p.Size, physics.Clamp(p.Life, 0, 1))
}

// Burst describes a radial particle burst.
type Burst struct {
	Count int
	Speed float64 // Base speed, varied 50% to 150% per particle
	Size  float64
	Drag  float64
}

// SpawnBurst emits a burst of particles at pos in random directions.
func SpawnBurst(pos physics.Vector2, b Burst, rng *rand.Rand, emitter Emitter) {
	if emitter == nil {
		return
	}
	for range b.Count {
		angle := rng.Float64() * 2 * math.Pi
		speed := b.Speed * (0.5 + rng.Float64())
		emitter.Emit(NewParticle(pos, physics.FromAngle(angle, speed), b.Size, b.Drag))
	}
}
