package seal

import (
	"strings"
	"testing"

	"github.com/FUCKiro/flappyseal-app/internal/core"
)

func TestRenderIdle(t *testing.T) {
	m, _ := newTestMachine(t)
	dst := core.NewScreen(40, 30)
	Render(dst, m.Snapshot())

	out := dst.String()
	if !strings.Contains(out, "FLAPPY SEAL") {
		t.Error("idle screen should show the title banner")
	}
	if !strings.Contains(dst.Row(0), "Score: 0  High: 0") {
		t.Errorf("HUD row = %q", dst.Row(0))
	}
}

func TestRenderRunning(t *testing.T) {
	m, _ := newTestMachine(t)
	startRunning(t, m)
	snap := hover(m)

	// 40x30 cells over 400x600 world: 10 units per column, 20 per row.
	dst := core.NewScreen(40, 30)
	Render(dst, snap)

	// Seal at x [80, 150], y [245, 315]: columns 8..14, rows 12..15
	if got := dst.GetCell(9, 13); got.Rune != SealChar || got.Color != core.ColorGray {
		t.Errorf("seal cell = %+v, expected gray seal", got)
	}
	if got := dst.Get(14, 12); got != SealEyeChar {
		t.Errorf("eye = %q, expected %q", got, SealEyeChar)
	}

	// Obstacle at x=400 is just past the right edge; nothing drawn yet
	for y := 1; y < 30; y++ {
		if dst.Get(39, y) == IceChar && dst.GetCell(39, y).Color == core.ColorIce {
			t.Fatalf("obstacle drawn at row %d before it entered the screen", y)
		}
	}
	if strings.Contains(dst.String(), "GAME OVER") {
		t.Error("running screen should have no banner")
	}
}

func TestRenderObstacle(t *testing.T) {
	dst := core.NewScreen(40, 30)
	snap := Snapshot{
		State:     Running,
		Bounds:    Bounds{Width: 400, Height: 600},
		Actor:     Actor{X: 80, Y: 300, Size: 70},
		Obstacles: []Obstacle{{X: 200, GapTop: 200}},
		Geometry:  Geometry{ObstacleWidth: 52, GapHeight: 160},
	}
	Render(dst, snap)

	// Top spoiler covers rows 0..9, capped on row 9; the gap is rows 10..17;
	// the bottom spoiler starts capped on row 18.
	if got := dst.GetCell(22, 5); got.Rune != IceChar || got.Color != core.ColorIce {
		t.Errorf("top spoiler cell = %+v", got)
	}
	if got := dst.Get(22, 9); got != IceCapTop {
		t.Errorf("top cap = %q, expected %q", got, IceCapTop)
	}
	if got := dst.Get(22, 14); got != ' ' {
		t.Errorf("gap cell = %q, expected empty", got)
	}
	if got := dst.Get(22, 18); got != IceCapBottom {
		t.Errorf("bottom cap = %q, expected %q", got, IceCapBottom)
	}
	if got := dst.Get(22, 29); got != IceChar {
		t.Errorf("bottom spoiler cell = %q", got)
	}
}

func TestRenderOverPrompt(t *testing.T) {
	dst := core.NewScreen(60, 30)
	snap := Snapshot{
		State:     Over,
		Score:     4,
		HighScore: 9,
		Bounds:    Bounds{Width: 400, Height: 600},
		Actor:     Actor{X: 80, Y: 300, Size: 70},
		Decision:  DecisionAnonymous,
	}
	Render(dst, snap)

	out := dst.String()
	for _, want := range []string{"GAME OVER", "Score: 4  |  High: 9", "Log in to save your score"} {
		if !strings.Contains(out, want) {
			t.Errorf("game over screen missing %q", want)
		}
	}
}

func TestRenderEmptyScreen(t *testing.T) {
	dst := core.NewScreen(0, 0)
	Render(dst, Snapshot{Bounds: Bounds{Width: 400, Height: 600}})
	if dst.String() != "" {
		t.Error("zero-sized screen should stay empty")
	}
}
