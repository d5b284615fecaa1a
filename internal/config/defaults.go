package config

import (
	_ "embed"
)

//go:embed defaults/asteroids.yaml
var defaultGameYAML []byte

// DefaultGameYAML returns the embedded default configuration file.
func DefaultGameYAML() []byte {
	return defaultGameYAML
}

// Default returns the default game configuration.
func Default() Game {
	return Game{
		Arena: Arena{
			Width:  800,
			Height: 600,
		},
		Ship: Ship{
			Health:       5,
			SpawnIFrames: 120,
			Grace:        30,
			Size:         30,
			Control:      ControlThrust,
			Speed:        300,
			TurnRate:     250,
			Thrust:       400,
			MaxSpeed:     350,
			Drag:         0.5,
			WallStop:     true,
			DeathDelay:   1.5,
			BlinkPeriod:  6,
		},
		Weapon: Weapon{
			MuzzleSpeed:     400,
			Cooldown:        0.2,
			InheritVelocity: true,
		},
		Asteroids: Asteroids{
			Max:            10,
			MinRadius:      10,
			MaxRadius:      50,
			SplitThreshold: 20,
			SplitSpeed:     60,
			Sides:          8,
			RotationRate:   30,
			Speed:          200,
		},
		Spawn: Spawn{
			Mode:     SpawnEdges,
			Attempts: 10,
			Padding:  10,
			Jitter:   30,
		},
		Particles: Particles{
			Enabled:     true,
			Drag:        0.98,
			Size:        2,
			Speed:       120,
			DeathCount:  40,
			SplitCount:  12,
			BounceCount: 4,
		},
		WinScore: 100,
	}
}
