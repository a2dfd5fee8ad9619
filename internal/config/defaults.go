package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/seal.yaml
var defaultSealYAML []byte

// DefaultSealConfig returns the built-in configuration. It mirrors
// defaults/seal.yaml and is used when the embedded file cannot be parsed.
func DefaultSealConfig() SealConfig {
	return SealConfig{
		World: WorldConfig{
			Width:  400,
			Height: 600,
		},
		Physics: PhysicsConfig{
			Gravity:     0.4,
			JumpImpulse: -7,
			ScrollSpeed: 2,
		},
		Obstacles: ObstacleConfig{
			Width:     52,
			Spacing:   220,
			GapHeight: 160,
			Margin:    60,
		},
		Player: PlayerConfig{
			X:                80,
			Size:             70,
			CollisionPadding: 12,
		},
		Input: InputConfig{
			Debounce: 200 * time.Millisecond,
		},
		Leaderboard: LeaderboardConfig{
			Size:          10,
			SubmitTimeout: 10 * time.Second,
		},
		TUI: TUIConfig{
			CellAspect: 0.5,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultSealYAML
}
