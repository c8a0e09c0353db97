package config

import (
	_ "embed"
)

//go:embed defaults/submarine.yaml
var defaultSubmarineYAML []byte

// DefaultSubmarineConfig returns the hardcoded default configuration.
// It mirrors defaults/submarine.yaml and is the fallback when the embedded
// YAML cannot be parsed.
func DefaultSubmarineConfig() SubmarineConfig {
	return SubmarineConfig{
		World: WorldConfig{
			Width:   800,
			Height:  300,
			GroundY: 250,
		},
		Physics: PhysicsConfig{
			Gravity:     0.6,
			JumpImpulse: -12,
			BaseSpeed:   6,
		},
		Player: PlayerConfig{
			X:      50,
			Width:  60,
			Height: 40,
			Hitbox: HitboxConfig{X: 8, Y: 6, Width: 44, Height: 28},
		},
		Obstacles: ObstacleConfig{
			BaseIntervalMs: 1500,
			MinIntervalMs:  1000,
			Variants: []ObstacleVariant{
				{Name: "kelp", Width: 30, Height: 50, Hitbox: HitboxConfig{X: 5, Y: 6, Width: 20, Height: 44}},
				{Name: "rock", Width: 50, Height: 35, Hitbox: HitboxConfig{X: 5, Y: 5, Width: 40, Height: 30}},
				{Name: "mine", Width: 40, Height: 40, Hitbox: HitboxConfig{X: 6, Y: 6, Width: 28, Height: 34}},
			},
		},
		PowerUps: PowerUpConfig{
			Enabled:  true,
			PeriodMs: 5000,
			Width:    30,
			Height:   30,
			MinY:     120,
			MaxY:     180,
			Bonus:    100,
		},
		Difficulty: DifficultyConfig{
			Enabled:            true,
			InitialLevel:       0,
			LevelStep:          1000,
			SpeedPerLevel:      0.5,
			IntervalPerLevelMs: 100,
			ImpulsePerLevel:    0.3,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultSubmarineYAML
}
