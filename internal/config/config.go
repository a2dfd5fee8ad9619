// Package config provides YAML-based game configuration loading and
// validation for flappyseal.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalid is wrapped by every configuration validation failure.
var ErrInvalid = errors.New("invalid configuration")

// SealConfig contains all tuning for the game. Lengths are world units,
// velocities are world units per tick.
type SealConfig struct {
	World       WorldConfig       `yaml:"world"`
	Physics     PhysicsConfig     `yaml:"physics"`
	Obstacles   ObstacleConfig    `yaml:"obstacles"`
	Player      PlayerConfig      `yaml:"player"`
	Input       InputConfig       `yaml:"input"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
	TUI         TUIConfig         `yaml:"tui"`
}

// WorldConfig holds the initial world bounds. Hosts may push other bounds
// on resize.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PhysicsConfig defines the integrator parameters.
type PhysicsConfig struct {
	Gravity     float64 `yaml:"gravity"`      // Added to velocity every tick
	JumpImpulse float64 `yaml:"jump_impulse"` // Velocity set by a jump (negative = up)
	ScrollSpeed float64 `yaml:"scroll_speed"` // Obstacle movement per tick
}

// ObstacleConfig defines obstacle geometry and spawning.
type ObstacleConfig struct {
	Width     float64 `yaml:"width"`
	Spacing   float64 `yaml:"spacing"`    // Minimum gap between the newest obstacle and the right edge
	GapHeight float64 `yaml:"gap_height"` // Height of the passable gap
	Margin    float64 `yaml:"margin"`     // Keeps gaps away from the ceiling and floor
}

// PlayerConfig defines the actor.
type PlayerConfig struct {
	X                float64 `yaml:"x"`
	Size             float64 `yaml:"size"`
	CollisionPadding float64 `yaml:"collision_padding"`
}

// InputConfig defines input handling.
type InputConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// LeaderboardConfig defines score display and submission.
type LeaderboardConfig struct {
	Size          int           `yaml:"size"`
	SubmitTimeout time.Duration `yaml:"submit_timeout"`
}

// TUIConfig defines how the terminal host maps cells to world units.
type TUIConfig struct {
	CellAspect float64 `yaml:"cell_aspect"` // Cell width divided by cell height
}

// Validate reports the first invalid setting, wrapped in ErrInvalid.
func (c SealConfig) Validate() error {
	checks := []struct {
		ok  bool
		msg string
	}{
		{c.World.Width > 0, "world.width must be positive"},
		{c.World.Height > 0, "world.height must be positive"},
		{c.Physics.Gravity > 0, "physics.gravity must be positive"},
		{c.Physics.JumpImpulse < 0, "physics.jump_impulse must be negative (upwards)"},
		{c.Physics.ScrollSpeed > 0, "physics.scroll_speed must be positive"},
		{c.Obstacles.Width > 0, "obstacles.width must be positive"},
		{c.Obstacles.Spacing > 0, "obstacles.spacing must be positive"},
		{c.Obstacles.GapHeight > 0, "obstacles.gap_height must be positive"},
		{c.Obstacles.Margin >= 0, "obstacles.margin must not be negative"},
		{c.Player.Size > 0, "player.size must be positive"},
		{c.Player.X >= 0, "player.x must not be negative"},
		{c.Player.CollisionPadding >= 0, "player.collision_padding must not be negative"},
		{2*c.Player.CollisionPadding < c.Player.Size, "player.collision_padding must be less than half of player.size"},
		{c.Input.Debounce >= 0, "input.debounce must not be negative"},
		{c.Leaderboard.Size > 0, "leaderboard.size must be positive"},
		{c.Leaderboard.SubmitTimeout >= 0, "leaderboard.submit_timeout must not be negative"},
		{c.TUI.CellAspect > 0, "tui.cell_aspect must be positive"},
	}
	for _, ch := range checks {
		if !ch.ok {
			return fmt.Errorf("%w: %s", ErrInvalid, ch.msg)
		}
	}
	return nil
}
