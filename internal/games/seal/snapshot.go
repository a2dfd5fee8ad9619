package seal

import "slices"

// Geometry holds the fixed sizes a renderer needs to draw a Snapshot.
type Geometry struct {
	ObstacleWidth    float64
	GapHeight        float64
	CollisionPadding float64
}

// Snapshot is a read-only copy of the game taken between ticks.
type Snapshot struct {
	State     RunState
	Score     int
	HighScore int
	Ticks     uint64 // Ticks since the run started
	Actor     Actor
	Obstacles []Obstacle
	Bounds    Bounds
	Geometry  Geometry
	Decision  Decision // Set when a run ends
}

func (m *Machine) snapshot() Snapshot {
	return Snapshot{
		State:     m.state,
		Score:     m.score.score,
		HighScore: m.score.high,
		Ticks:     m.ticks,
		Actor:     m.actor,
		Obstacles: slices.Clone(m.field.obstacles),
		Bounds:    m.bounds,
		Geometry: Geometry{
			ObstacleWidth:    m.cfg.Obstacles.Width,
			GapHeight:        m.cfg.Obstacles.GapHeight,
			CollisionPadding: m.cfg.Player.CollisionPadding,
		},
		Decision: m.decision,
	}
}

// Prompt returns the message shown under the game-over banner, or "" if
// there is nothing to tell the player.
func (s Snapshot) Prompt() string {
	switch s.Decision {
	case DecisionAnonymous:
		return "Log in to save your score"
	case DecisionUnverified:
		return "Verify your e-mail to save your score"
	case DecisionSubmitted:
		return "Score submitted"
	default:
		return ""
	}
}
