// Package config provides YAML-based game configuration loading and
// difficulty management for the submarine runner.
package config

import "github.com/vovakirdan/sub-arcade/internal/core"

// SubmarineConfig contains all tuning for the Submarine Adventure game.
// Distances are world units (virtual pixels, y grows downward); times are
// milliseconds of simulated time.
type SubmarineConfig struct {
	World      WorldConfig      `yaml:"world"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Player     PlayerConfig     `yaml:"player"`
	Obstacles  ObstacleConfig   `yaml:"obstacles"`
	PowerUps   PowerUpConfig    `yaml:"powerups"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// WorldConfig defines the virtual playfield.
type WorldConfig struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	GroundY float64 `yaml:"ground_y"` // Y of the sea floor; sprites rest on it
}

// PhysicsConfig defines per-tick physics constants.
type PhysicsConfig struct {
	Gravity     float64 `yaml:"gravity"`      // Added to vertical velocity every airborne tick
	JumpImpulse float64 `yaml:"jump_impulse"` // Negative = upward
	BaseSpeed   float64 `yaml:"base_speed"`   // Scroll speed at level 0, units per tick
}

// HitboxConfig is an inner rectangle relative to a sprite's top-left corner.
type HitboxConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Box converts the hitbox into an offset box.
func (h HitboxConfig) Box() core.Box {
	return core.NewBox(h.X, h.Y, h.Width, h.Height)
}

// PlayerConfig defines the submarine sprite.
type PlayerConfig struct {
	X      float64      `yaml:"x"`
	Width  float64      `yaml:"width"`
	Height float64      `yaml:"height"`
	Hitbox HitboxConfig `yaml:"hitbox"`
}

// ObstacleVariant describes one visual obstacle kind.
type ObstacleVariant struct {
	Name   string       `yaml:"name"`
	Width  float64      `yaml:"width"`
	Height float64      `yaml:"height"`
	Hitbox HitboxConfig `yaml:"hitbox"`
}

// ObstacleConfig defines obstacle spawning.
type ObstacleConfig struct {
	BaseIntervalMs float64           `yaml:"base_interval_ms"`
	MinIntervalMs  float64           `yaml:"min_interval_ms"`
	Variants       []ObstacleVariant `yaml:"variants"`
}

// PowerUpConfig defines collectible spawning.
type PowerUpConfig struct {
	Enabled  bool    `yaml:"enabled"`
	PeriodMs float64 `yaml:"period_ms"`
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	MinY     float64 `yaml:"min_y"` // Top of the spawn band
	MaxY     float64 `yaml:"max_y"` // Bottom of the spawn band (top-left Y)
	Bonus    int     `yaml:"bonus"`
}

// DifficultyConfig defines the score-driven difficulty curve.
type DifficultyConfig struct {
	Enabled            bool    `yaml:"enabled"`
	InitialLevel       int     `yaml:"initial_level"`
	LevelStep          int     `yaml:"level_step"` // Score per level
	SpeedPerLevel      float64 `yaml:"speed_per_level"`
	IntervalPerLevelMs float64 `yaml:"interval_per_level_ms"`
	ImpulsePerLevel    float64 `yaml:"impulse_per_level"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}
