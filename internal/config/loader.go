package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadSubmarine loads the game configuration.
// Search order: customPath -> ~/.subrun/configs/submarine.yaml -> ./configs/submarine.yaml -> embedded default.
// Files are layered over the embedded defaults, so partial files only need
// the keys they change.
func LoadSubmarine(customPath string) (SubmarineConfig, error) {
	cfg, err := embeddedDefault()
	if err != nil {
		cfg = DefaultSubmarineConfig()
	}

	// Custom path must exist and parse
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	for _, path := range []string{userConfigPath("submarine.yaml"), filepath.Join("configs", "submarine.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		layered := cfg
		layered.Obstacles.Variants = append([]ObstacleVariant(nil), cfg.Obstacles.Variants...)
		if err := yaml.Unmarshal(data, &layered); err != nil {
			continue
		}
		if layered.Validate() != nil {
			continue
		}
		return layered, nil
	}

	return cfg, nil
}

// embeddedDefault parses the embedded YAML.
func embeddedDefault() (SubmarineConfig, error) {
	var cfg SubmarineConfig
	if err := yaml.Unmarshal(defaultSubmarineYAML, &cfg); err != nil {
		return cfg, fmt.Errorf("config: embedded default: %w", err)
	}
	return cfg, cfg.Validate()
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".subrun", "configs", filename)
}

// Validate reports configuration values the simulation cannot run with.
func (c SubmarineConfig) Validate() error {
	var errs []error
	if c.World.Width <= 0 || c.World.Height <= 0 {
		errs = append(errs, fmt.Errorf("world size must be positive, got %vx%v", c.World.Width, c.World.Height))
	}
	if c.World.GroundY <= 0 || c.World.GroundY > c.World.Height {
		errs = append(errs, fmt.Errorf("ground_y %v outside world height %v", c.World.GroundY, c.World.Height))
	}
	if c.Physics.Gravity <= 0 {
		errs = append(errs, fmt.Errorf("gravity must be positive, got %v", c.Physics.Gravity))
	}
	if c.Physics.JumpImpulse >= 0 {
		errs = append(errs, fmt.Errorf("jump_impulse must be negative, got %v", c.Physics.JumpImpulse))
	}
	if c.Physics.BaseSpeed <= 0 {
		errs = append(errs, fmt.Errorf("base_speed must be positive, got %v", c.Physics.BaseSpeed))
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		errs = append(errs, errors.New("player size must be positive"))
	}
	if len(c.Obstacles.Variants) == 0 {
		errs = append(errs, errors.New("at least one obstacle variant is required"))
	}
	for i, v := range c.Obstacles.Variants {
		if v.Width <= 0 || v.Height <= 0 {
			errs = append(errs, fmt.Errorf("obstacle variant %d has non-positive size", i))
		}
	}
	if c.Obstacles.MinIntervalMs <= 0 || c.Obstacles.BaseIntervalMs < c.Obstacles.MinIntervalMs {
		errs = append(errs, errors.New("spawn intervals must satisfy 0 < min_interval_ms <= base_interval_ms"))
	}
	if c.PowerUps.Enabled {
		if c.PowerUps.PeriodMs <= 0 {
			errs = append(errs, errors.New("powerups.period_ms must be positive"))
		}
		if c.PowerUps.MaxY < c.PowerUps.MinY {
			errs = append(errs, fmt.Errorf("powerups band is inverted: min_y %v > max_y %v", c.PowerUps.MinY, c.PowerUps.MaxY))
		}
	}
	if c.Difficulty.Enabled && c.Difficulty.LevelStep <= 0 {
		errs = append(errs, errors.New("difficulty.level_step must be positive"))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
}

// ApplySubmarinePreset modifies the config based on a difficulty preset.
func ApplySubmarinePreset(cfg *SubmarineConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	case DifficultyEasy:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = 0
		cfg.Difficulty.LevelStep *= 2
	case DifficultyNormal:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = 0
	case DifficultyHard:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = 2
	}
}
