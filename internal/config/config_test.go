package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchBuiltins(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded defaults should parse: %v", err)
	}
	if cfg != DefaultSealConfig() {
		t.Errorf("embedded defaults differ from DefaultSealConfig():\n got %+v\nwant %+v", cfg, DefaultSealConfig())
	}
}

func TestParseLayersOverDefaults(t *testing.T) {
	cfg, err := Parse([]byte("physics:\n  gravity: 0.5\ninput:\n  debounce: 150ms\n"))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if cfg.Physics.Gravity != 0.5 {
		t.Errorf("gravity = %v, expected 0.5", cfg.Physics.Gravity)
	}
	if cfg.Input.Debounce != 150*time.Millisecond {
		t.Errorf("debounce = %v, expected 150ms", cfg.Input.Debounce)
	}
	if cfg.Obstacles.GapHeight != 160 {
		t.Errorf("unspecified keys should keep defaults, gap_height = %v", cfg.Obstacles.GapHeight)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SealConfig)
	}{
		{"zero gap height", func(c *SealConfig) { c.Obstacles.GapHeight = 0 }},
		{"negative gap height", func(c *SealConfig) { c.Obstacles.GapHeight = -10 }},
		{"zero world width", func(c *SealConfig) { c.World.Width = 0 }},
		{"negative world height", func(c *SealConfig) { c.World.Height = -1 }},
		{"downward jump", func(c *SealConfig) { c.Physics.JumpImpulse = 3 }},
		{"padding swallows actor", func(c *SealConfig) { c.Player.CollisionPadding = 35 }},
		{"negative debounce", func(c *SealConfig) { c.Input.Debounce = -time.Millisecond }},
		{"empty leaderboard", func(c *SealConfig) { c.Leaderboard.Size = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultSealConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, expected ErrInvalid", err)
			}
		})
	}

	if err := DefaultSealConfig().Validate(); err != nil {
		t.Errorf("defaults should be valid, got %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seal.yaml")
	if err := os.WriteFile(path, []byte("obstacles:\n  spacing: 300\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Obstacles.Spacing != 300 {
		t.Errorf("spacing = %v, expected 300", cfg.Obstacles.Spacing)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() of a missing custom file should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("obstacles:\n  gap_height: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrInvalid) {
		t.Errorf("Load() of an invalid file = %v, expected ErrInvalid", err)
	}
}
