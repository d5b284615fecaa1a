package config

// Control model names accepted by ship.control.
const (
	ControlThrust    = "thrust"
	ControlTranslate = "translate"
)

// Spawn strategy names accepted by spawn.mode.
const (
	SpawnTop   = "top"
	SpawnEdges = "edges"
)

// Game contains all tunables of one arena session.
type Game struct {
	Arena     Arena     `yaml:"arena"`
	Ship      Ship      `yaml:"ship"`
	Weapon    Weapon    `yaml:"weapon"`
	Asteroids Asteroids `yaml:"asteroids"`
	Spawn     Spawn     `yaml:"spawn"`
	Particles Particles `yaml:"particles"`
	WinScore  int       `yaml:"win_score"`
	Seed      int64     `yaml:"seed"` // 0 picks a time-based seed
}

// Arena is the logical play area in world units.
type Arena struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Ship defines the player ship.
type Ship struct {
	Health       int     `yaml:"health"`
	SpawnIFrames int     `yaml:"spawn_iframes"`
	Grace        int     `yaml:"grace"` // Invincibility frames after a hit
	Size         float64 `yaml:"size"`
	Control      string  `yaml:"control"`
	Speed        float64 `yaml:"speed"`     // translate model, units/s
	TurnRate     float64 `yaml:"turn_rate"` // degrees/s
	Thrust       float64 `yaml:"thrust"`    // thrust model, units/s²
	MaxSpeed     float64 `yaml:"max_speed"`
	Drag         float64 `yaml:"drag"` // Fraction of speed kept per second while coasting
	WallStop     bool    `yaml:"wall_stop"`
	DeathDelay   float64 `yaml:"death_delay"`  // Seconds between death and game over
	BlinkPeriod  int     `yaml:"blink_period"` // Frames per blink phase while invincible
}

// Weapon defines the laser cannon.
type Weapon struct {
	MuzzleSpeed     float64 `yaml:"muzzle_speed"`
	Cooldown        float64 `yaml:"cooldown"` // Seconds
	InheritVelocity bool    `yaml:"inherit_velocity"`
}

// Asteroids defines the asteroid population.
type Asteroids struct {
	Max            int     `yaml:"max"`
	MinRadius      float64 `yaml:"min_radius"`
	MaxRadius      float64 `yaml:"max_radius"`
	SplitThreshold float64 `yaml:"split_threshold"`
	SplitSpeed     float64 `yaml:"split_speed"`
	Sides          int     `yaml:"sides"`
	RotationRate   float64 `yaml:"rotation_rate"` // degrees/s
	Speed          float64 `yaml:"speed"`
}

// Spawn defines how new asteroids enter the arena.
type Spawn struct {
	Mode     string  `yaml:"mode"`
	Attempts int     `yaml:"attempts"`
	Padding  float64 `yaml:"padding"`
	Jitter   float64 `yaml:"jitter"` // degrees
}

// Particles defines the cosmetic bursts.
type Particles struct {
	Enabled     bool    `yaml:"enabled"`
	Drag        float64 `yaml:"drag"` // Velocity multiplier per tick
	Size        float64 `yaml:"size"`
	Speed       float64 `yaml:"speed"`
	DeathCount  int     `yaml:"death_count"`
	SplitCount  int     `yaml:"split_count"`
	BounceCount int     `yaml:"bounce_count"`
}
