package web

import "github.com/FUCKiro/flappyseal-app/internal/games/seal"

// clientMessage is what browsers send.
type clientMessage struct {
	Type   string  `json:"type"` // "jump" or "resize"
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

type actorFrame struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Vel  float64 `json:"vel"`
	Size float64 `json:"size"`
}

type obstacleFrame struct {
	X      float64 `json:"x"`
	GapTop float64 `json:"gap_top"`
	Passed bool    `json:"passed"`
}

// frame is one server-to-client snapshot.
type frame struct {
	Type          string          `json:"type"` // always "frame"
	State         string          `json:"state"`
	Score         int             `json:"score"`
	HighScore     int             `json:"high_score"`
	Tick          uint64          `json:"tick"`
	Width         float64         `json:"width"`
	Height        float64         `json:"height"`
	ObstacleWidth float64         `json:"obstacle_width"`
	GapHeight     float64         `json:"gap_height"`
	Actor         actorFrame      `json:"actor"`
	Obstacles     []obstacleFrame `json:"obstacles"`
	Decision      string          `json:"decision,omitempty"`
	Prompt        string          `json:"prompt,omitempty"`
}

// errorFrame reports a rejected client message. The session stays open.
type errorFrame struct {
	Type    string `json:"type"` // always "error"
	Message string `json:"message"`
}

func newFrame(snap seal.Snapshot) frame {
	f := frame{
		Type:          "frame",
		State:         snap.State.String(),
		Score:         snap.Score,
		HighScore:     snap.HighScore,
		Tick:          snap.Ticks,
		Width:         snap.Bounds.Width,
		Height:        snap.Bounds.Height,
		ObstacleWidth: snap.Geometry.ObstacleWidth,
		GapHeight:     snap.Geometry.GapHeight,
		Actor: actorFrame{
			X:    snap.Actor.X,
			Y:    snap.Actor.Y,
			Vel:  snap.Actor.Vel,
			Size: snap.Actor.Size,
		},
		Obstacles: make([]obstacleFrame, len(snap.Obstacles)),
		Prompt:    snap.Prompt(),
	}
	if snap.Decision != seal.DecisionNone {
		f.Decision = snap.Decision.String()
	}
	for i, o := range snap.Obstacles {
		f.Obstacles[i] = obstacleFrame{X: o.X, GapTop: o.GapTop, Passed: o.Passed}
	}
	return f
}
