package object

import (
	"math"
	"math/rand"
	"testing"

	"github.com/tomz197/asteroids-arena/internal/physics"
)

const eps = 1e-9

type recorder struct {
	triangles int
	lines     [][2]physics.Vector2
	polygons  int
	circles   []float64
	texts     []string
}

func (r *recorder) Triangle(_, _, _ physics.Vector2) { r.triangles++ }
func (r *recorder) Line(a, b physics.Vector2)        { r.lines = append(r.lines, [2]physics.Vector2{a, b}) }
func (r *recorder) Polygon(physics.Vector2, int, float64, float64) {
	r.polygons++
}
func (r *recorder) Circle(_ physics.Vector2, _, alpha float64) { r.circles = append(r.circles, alpha) }
func (r *recorder) Text(_ physics.Vector2, s string)          { r.texts = append(r.texts, s) }

type sink []*Particle

func (s *sink) Emit(p *Particle) { *s = append(*s, p) }

func TestShouldRenderBlink(t *testing.T) {
	tests := []struct {
		frames, period int
		want           bool
	}{
		{0, 10, true},
		{5, 10, true},
		{15, 10, false},
		{25, 10, true},
		{7, 0, true},
	}
	for _, tc := range tests {
		if got := ShouldRenderBlink(tc.frames, tc.period); got != tc.want {
			t.Errorf("ShouldRenderBlink(%d, %d) = %v, want %v", tc.frames, tc.period, got, tc.want)
		}
	}
}

func TestShipTakeHit(t *testing.T) {
	s := NewShip(physics.Vec(100, 100), 5, 0, 30)

	if !s.TakeHit(30) {
		t.Fatal("first hit should apply damage")
	}
	if s.Health != 4 || s.IFrames != 30 {
		t.Fatalf("after hit: health=%d iframes=%d, want 4 and 30", s.Health, s.IFrames)
	}

	for range 29 {
		if s.TakeHit(30) {
			t.Fatal("hit during invincibility reduced health")
		}
		s.Tick()
	}
	if s.Health != 4 {
		t.Fatalf("health = %d during iframes, want 4", s.Health)
	}
	s.Tick()
	if s.IFrames != 0 {
		t.Fatalf("iframes = %d, want 0", s.IFrames)
	}
	if !s.TakeHit(30) {
		t.Error("hit after iframes expired should apply damage")
	}
}

func TestShipDeadIgnoresHits(t *testing.T) {
	s := NewShip(physics.Vec(0, 0), 1, 0, 30)
	s.TakeHit(0)
	if s.Alive() {
		t.Fatal("ship with zero health should be dead")
	}
	if s.TakeHit(0) || s.Health != 0 {
		t.Error("dead ship must not take further damage")
	}

	var r recorder
	s.Render(&r, 10)
	if r.triangles != 0 {
		t.Error("dead ship should not render")
	}
}

func TestShipVerticesNoseLeads(t *testing.T) {
	s := NewShip(physics.Vec(50, 50), 5, 0, 30)
	nose := s.Nose()
	if math.Abs(nose.X-50) > eps || math.Abs(nose.Y-20) > eps {
		t.Errorf("Nose() = %v, want (50, 20) for an upward ship", nose)
	}

	v := s.Vertices()
	centroid := v[0].Add(v[1]).Add(v[2]).Scale(1.0 / 3)
	if physics.Distance(centroid, s.Pos) > 1e-6 {
		t.Errorf("hull centroid %v differs from Pos %v", centroid, s.Pos)
	}
}

func TestShipClampTo(t *testing.T) {
	s := NewShip(physics.Vec(-5, 50), 5, 0, 30)
	s.Vel = physics.Vec(-10, 3)
	s.ClampTo(100, 100)
	if s.Pos.X != 0 || s.Vel.X != 0 {
		t.Errorf("clamped ship pos=%v vel=%v, want x=0 and vx=0", s.Pos, s.Vel)
	}
	if s.Vel.Y != 3 {
		t.Errorf("unclamped axis velocity changed to %v", s.Vel.Y)
	}
}

func TestThrustControl(t *testing.T) {
	ctrl := ThrustControl{Thrust: 100, TurnRate: math.Pi, MaxSpeed: 50, Drag: 0.5}
	s := NewShip(physics.Vec(0, 0), 5, 0, 30)
	s.Angle = 0

	for range 60 {
		ctrl.Steer(s, Controls{Forward: true}, 1.0/60)
	}
	if speed := s.Vel.Length(); math.Abs(speed-50) > 1e-6 {
		t.Errorf("speed = %v, want capped at 50", speed)
	}
	if s.Pos.X <= 0 {
		t.Errorf("ship did not move forward: %v", s.Pos)
	}

	before := s.Vel.Length()
	ctrl.Steer(s, Controls{}, 1)
	if got := s.Vel.Length(); math.Abs(got-before*0.5) > 1e-6 {
		t.Errorf("coasting speed = %v, want %v", got, before*0.5)
	}

	ctrl.Steer(s, Controls{Left: true}, 0.5)
	if math.Abs(s.Angle+math.Pi/2) > 1e-6 {
		t.Errorf("angle = %v, want -π/2", s.Angle)
	}
}

func TestTranslateControl(t *testing.T) {
	ctrl := TranslateControl{Speed: 300, TurnRate: math.Pi}
	s := NewShip(physics.Vec(100, 100), 5, 0, 30)

	ctrl.Steer(s, Controls{Forward: true, Back: true, Left: true, Right: true}, 0.1)
	if math.Abs(s.Pos.Y-70) > 1e-6 || math.Abs(s.Pos.X-100) > 1e-6 {
		t.Errorf("forward should win: pos = %v, want (100, 70)", s.Pos)
	}
	if math.Abs(s.Angle-(-math.Pi/2-math.Pi*0.1)) > 1e-6 {
		t.Errorf("left should win: angle = %v", s.Angle)
	}
	if s.Vel != (physics.Vector2{}) {
		t.Errorf("translate model must not keep velocity, got %v", s.Vel)
	}
}

func TestLaser(t *testing.T) {
	l := NewLaser(1, physics.Vec(10, 10), 0, 400, physics.Vec(0, 5))
	if l.Vel != physics.Vec(400, 5) {
		t.Errorf("Vel = %v, want (400, 5)", l.Vel)
	}
	l.Advance(0.5)
	if l.Pos != physics.Vec(210, 12.5) {
		t.Errorf("Pos = %v, want (210, 12.5)", l.Pos)
	}
	if l.OutOfArena(300, 300) {
		t.Error("laser inside arena reported out")
	}
	l.Advance(1)
	if !l.OutOfArena(300, 300) {
		t.Error("laser at x=610 should be out of a 300 wide arena")
	}

	var r recorder
	l.Render(&r)
	if len(r.lines) != 1 || physics.Distance(r.lines[0][0], r.lines[0][1]) < LaserLength-1e-6 {
		t.Errorf("laser rendered %v", r.lines)
	}
}

func TestAsteroid(t *testing.T) {
	a := NewAsteroid(1, physics.Vec(0, 0), physics.Vec(0, 200), 20, 8, math.Pi/6)
	a.Advance(0.5)
	if a.Pos != physics.Vec(0, 100) || math.Abs(a.Rotation-math.Pi/12) > eps {
		t.Errorf("after Advance: pos=%v rotation=%v", a.Pos, a.Rotation)
	}
	if !a.Contains(physics.Vec(5, 105)) || a.Contains(physics.Vec(20, 100)) {
		t.Error("Contains() should be strict on the rim")
	}
	if !a.Damage() || a.Health != 0 {
		t.Error("single hit should destroy a 1 hp asteroid")
	}

	b := NewAsteroid(2, physics.Vec(0, 0), physics.Vector2{}, 10, 8, 0)
	b.ExemptID = a.ID
	if !a.ExemptFrom(b) || !b.ExemptFrom(a) {
		t.Error("exemption should be symmetric")
	}
	b.ClearExemption()
	if a.ExemptFrom(b) {
		t.Error("cleared exemption still applies")
	}
}

func TestAsteroidOutOfArena(t *testing.T) {
	tests := []struct {
		name string
		pos  physics.Vector2
		want bool
	}{
		{"inside", physics.Vec(50, 50), false},
		{"above within radius", physics.Vec(50, -9), false},
		{"above beyond radius", physics.Vec(50, -11), true},
		{"right beyond radius", physics.Vec(111, 50), true},
		{"below within radius", physics.Vec(50, 110), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := NewAsteroid(1, tc.pos, physics.Vector2{}, 10, 8, 0)
			if got := a.OutOfArena(100, 100); got != tc.want {
				t.Errorf("OutOfArena() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParticleLifecycle(t *testing.T) {
	p := NewParticle(physics.Vec(0, 0), physics.Vec(100, 0), 2, 0.98)
	p.Advance(0.1)
	if math.Abs(p.Pos.X-10) > eps {
		t.Errorf("Pos.X = %v, want 10", p.Pos.X)
	}
	if math.Abs(p.Vel.X-98) > eps {
		t.Errorf("Vel.X = %v, want 98", p.Vel.X)
	}
	if math.Abs(p.Life-0.8) > eps {
		t.Errorf("Life = %v, want 0.8", p.Life)
	}
	for range 5 {
		p.Advance(0.1)
	}
	if !p.Dead() {
		t.Errorf("particle should be dead, life = %v", p.Life)
	}
	p.Release()
}

func TestSpawnBurst(t *testing.T) {
	var out sink
	rng := rand.New(rand.NewSource(1))
	SpawnBurst(physics.Vec(5, 5), Burst{Count: 12, Speed: 50, Size: 1, Drag: 0.98}, rng, &out)
	if len(out) != 12 {
		t.Fatalf("burst emitted %d particles, want 12", len(out))
	}
	for _, p := range out {
		if speed := p.Vel.Length(); speed < 25-eps || speed > 75+eps {
			t.Errorf("particle speed %v outside [25, 75]", speed)
		}
		if p.Life != 1 {
			t.Errorf("particle life = %v, want 1", p.Life)
		}
	}

	SpawnBurst(physics.Vec(0, 0), Burst{Count: 3}, rng, nil)
}
