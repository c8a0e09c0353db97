package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	cfg, err := embeddedDefault()
	if err != nil {
		t.Fatalf("embedded default failed: %v", err)
	}

	if !reflect.DeepEqual(cfg, DefaultSubmarineConfig()) {
		t.Errorf("embedded YAML and DefaultSubmarineConfig() diverged:\nyaml: %+v\ncode: %+v", cfg, DefaultSubmarineConfig())
	}
}

func TestLoadCustomPathLayersOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub.yaml")
	data := "physics:\n  base_speed: 9\npowerups:\n  enabled: false\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSubmarine(path)
	if err != nil {
		t.Fatalf("LoadSubmarine() failed: %v", err)
	}

	if cfg.Physics.BaseSpeed != 9 {
		t.Errorf("base_speed = %v, expected 9", cfg.Physics.BaseSpeed)
	}
	if cfg.PowerUps.Enabled {
		t.Error("powerups should be disabled by custom file")
	}
	// Untouched keys come from defaults
	if cfg.Physics.Gravity != 0.6 {
		t.Errorf("gravity = %v, expected default 0.6", cfg.Physics.Gravity)
	}
	if len(cfg.Obstacles.Variants) != 3 {
		t.Errorf("expected 3 default obstacle variants, got %d", len(cfg.Obstacles.Variants))
	}
}

func TestLoadCustomPathMissing(t *testing.T) {
	_, err := LoadSubmarine(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing custom config")
	}
}

func TestLoadCustomPathInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("physics:\n  jump_impulse: 5\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := LoadSubmarine(path)
	if err == nil {
		t.Fatal("expected validation error for positive jump impulse")
	}
	if !strings.Contains(err.Error(), "jump_impulse") {
		t.Errorf("error should mention jump_impulse, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultSubmarineConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}

	cfg.Obstacles.Variants = nil
	cfg.Obstacles.MinIntervalMs = 2000
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, want := range []string{"obstacle variant", "spawn intervals"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should mention %q", err, want)
		}
	}
}
