package config

import (
	"math"
	"time"
)

// Difficulty derives scroll speed, spawn interval and jump impulse from the
// cumulative score. All three move in lockstep from the same level.
type Difficulty struct {
	cfg          DifficultyConfig
	baseSpeed    float64
	baseImpulse  float64
	baseInterval time.Duration
	minInterval  time.Duration
	intervalStep time.Duration
}

// NewDifficulty creates a difficulty curve for the given game config.
func NewDifficulty(cfg SubmarineConfig) *Difficulty {
	return &Difficulty{
		cfg:          cfg.Difficulty,
		baseSpeed:    cfg.Physics.BaseSpeed,
		baseImpulse:  cfg.Physics.JumpImpulse,
		baseInterval: Millis(cfg.Obstacles.BaseIntervalMs),
		minInterval:  Millis(cfg.Obstacles.MinIntervalMs),
		intervalStep: Millis(cfg.Difficulty.IntervalPerLevelMs),
	}
}

// Level returns floor(score / level_step) offset by the initial level.
// With progression disabled the level stays at the initial level.
func (d *Difficulty) Level(score int) int {
	level := d.cfg.InitialLevel
	if level < 0 {
		level = 0
	}
	if !d.cfg.Enabled || d.cfg.LevelStep <= 0 || score <= 0 {
		return level
	}
	return level + int(math.Floor(float64(score)/float64(d.cfg.LevelStep)))
}

// Speed returns the scroll speed in world units per tick.
func (d *Difficulty) Speed(score int) float64 {
	return d.baseSpeed + float64(d.Level(score))*d.cfg.SpeedPerLevel
}

// SpawnInterval returns the obstacle spawn interval, never below the
// configured floor.
func (d *Difficulty) SpawnInterval(score int) time.Duration {
	interval := d.baseInterval - time.Duration(d.Level(score))*d.intervalStep
	if interval < d.minInterval {
		return d.minInterval
	}
	return interval
}

// JumpImpulse returns the vertical velocity applied on jump.
// The impulse gets less negative (weaker) as the level rises.
func (d *Difficulty) JumpImpulse(score int) float64 {
	return d.baseImpulse + float64(d.Level(score))*d.cfg.ImpulsePerLevel
}

// Millis converts a millisecond config value to a duration.
func Millis(ms float64) time.Duration {
	return time.Duration(math.Round(ms * float64(time.Millisecond)))
}
