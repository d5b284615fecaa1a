package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the game configuration.
// Search order: customPath -> ~/.asteroids/config.yaml -> ./configs/asteroids.yaml -> embedded default
//
// Files are layered over Default, so they only need the keys they change.
// An explicit customPath that cannot be read or parsed is an error; the
// implicit locations are skipped when missing.
func Load(customPath string) (Game, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Game{}, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return Game{}, fmt.Errorf("load %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{userConfigPath(), filepath.Join("configs", "asteroids.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg, err := Parse(data)
		if err != nil {
			return Game{}, fmt.Errorf("load %s: %w", path, err)
		}
		return cfg, nil
	}

	return Parse(defaultGameYAML)
}

// Parse decodes YAML over the defaults and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (Game, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Game{}, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Game{}, err
	}
	return cfg, nil
}

// Validate checks that every value is in a usable range.
func (g Game) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(g.Arena.Width > 0 && g.Arena.Height > 0, "arena must have positive size, got %vx%v", g.Arena.Width, g.Arena.Height)

	check(g.Ship.Health > 0, "ship.health must be positive, got %d", g.Ship.Health)
	check(g.Ship.SpawnIFrames >= 0, "ship.spawn_iframes must not be negative")
	check(g.Ship.Grace >= 0, "ship.grace must not be negative")
	check(g.Ship.Size > 0, "ship.size must be positive")
	check(g.Ship.Control == ControlThrust || g.Ship.Control == ControlTranslate,
		"ship.control must be %q or %q, got %q", ControlThrust, ControlTranslate, g.Ship.Control)
	check(g.Ship.Speed >= 0 && g.Ship.TurnRate >= 0 && g.Ship.Thrust >= 0 && g.Ship.MaxSpeed >= 0,
		"ship speeds must not be negative")
	check(g.Ship.Drag > 0 && g.Ship.Drag <= 1, "ship.drag must be in (0, 1], got %v", g.Ship.Drag)
	check(g.Ship.DeathDelay >= 0, "ship.death_delay must not be negative")
	check(g.Ship.BlinkPeriod >= 0, "ship.blink_period must not be negative")

	check(g.Weapon.MuzzleSpeed > 0, "weapon.muzzle_speed must be positive")
	check(g.Weapon.Cooldown >= 0, "weapon.cooldown must not be negative")

	check(g.Asteroids.Max >= 0, "asteroids.max must not be negative")
	check(g.Asteroids.MinRadius > 0 && g.Asteroids.MaxRadius >= g.Asteroids.MinRadius,
		"asteroids radius range [%v, %v] is invalid", g.Asteroids.MinRadius, g.Asteroids.MaxRadius)
	check(g.Asteroids.SplitThreshold >= 0, "asteroids.split_threshold must not be negative")
	check(g.Asteroids.Sides >= 3, "asteroids.sides must be at least 3, got %d", g.Asteroids.Sides)

	check(g.Spawn.Mode == SpawnTop || g.Spawn.Mode == SpawnEdges,
		"spawn.mode must be %q or %q, got %q", SpawnTop, SpawnEdges, g.Spawn.Mode)
	check(g.Spawn.Attempts > 0, "spawn.attempts must be positive")
	check(g.Spawn.Padding >= 0, "spawn.padding must not be negative")

	check(g.Particles.Drag >= 0 && g.Particles.Drag <= 1, "particles.drag must be in [0, 1]")

	check(g.WinScore > 0, "win_score must be positive, got %d", g.WinScore)

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}

// userConfigPath returns the path to the user config file, or empty if home is unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".asteroids", "config.yaml")
}
