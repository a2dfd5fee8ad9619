package seal

import (
	"slices"

	"github.com/FUCKiro/flappyseal-app/internal/config"
	"github.com/FUCKiro/flappyseal-app/internal/core"
)

// Rand is the random source for gap placement. *math/rand/v2.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Obstacle is a pair of spoilers with a gap starting at GapTop.
type Obstacle struct {
	X      float64 // Left edge
	GapTop float64 // Top of the gap, fixed at creation
	Passed bool    // Set once the trailing edge is behind the actor
}

// Top returns the upper spoiler, from the ceiling to the gap.
func (o Obstacle) Top(width float64) core.Box {
	return core.NewBox(o.X, 0, width, o.GapTop)
}

// Bottom returns the lower spoiler, from the gap to the floor.
func (o Obstacle) Bottom(width, gapHeight, worldHeight float64) core.Box {
	y := o.GapTop + gapHeight
	return core.NewBox(o.X, y, width, worldHeight-y)
}

// field spawns, scrolls and culls obstacles. The slice is ordered by
// creation time, so the newest obstacle is always last.
type field struct {
	cfg       config.ObstacleConfig
	speed     float64
	rng       Rand
	obstacles []Obstacle
}

func newField(cfg config.ObstacleConfig, speed float64, rng Rand) *field {
	return &field{
		cfg:       cfg,
		speed:     speed,
		rng:       rng,
		obstacles: make([]Obstacle, 0, 8),
	}
}

func (f *field) reset() {
	f.obstacles = f.obstacles[:0]
}

// advance scrolls every obstacle, spawns a new one at the right edge when
// the newest is far enough in, and drops the ones fully off-screen.
func (f *field) advance(b Bounds) {
	for i := range f.obstacles {
		f.obstacles[i].X -= f.speed
	}

	if n := len(f.obstacles); n == 0 || f.obstacles[n-1].X < b.Width-f.cfg.Spacing {
		f.spawn(b)
	}

	gone := 0
	for gone < len(f.obstacles) && f.obstacles[gone].X+f.cfg.Width < 0 {
		gone++
	}
	if gone > 0 {
		f.obstacles = slices.Delete(f.obstacles, 0, gone)
	}
}

// spawn appends an obstacle at x = width with the gap uniformly placed in
// [margin, height-gap-margin].
func (f *field) spawn(b Bounds) {
	lo := f.cfg.Margin
	span := b.Height - f.cfg.GapHeight - 2*f.cfg.Margin
	f.obstacles = append(f.obstacles, Obstacle{
		X:      b.Width,
		GapTop: lo + f.rng.Float64()*max(span, 0),
	})
}

// markPassed flags obstacles whose trailing edge is behind actorX and
// returns how many were newly passed.
func (f *field) markPassed(actorX float64) int {
	passed := 0
	for i := range f.obstacles {
		o := &f.obstacles[i]
		if !o.Passed && o.X+f.cfg.Width < actorX {
			o.Passed = true
			passed++
		}
	}
	return passed
}
