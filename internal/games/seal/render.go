package seal

import (
	"fmt"
	"math"

	"github.com/FUCKiro/flappyseal-app/internal/core"
)

// Visual characters for rendering
const (
	SealChar     = '█'
	SealEyeChar  = '◕'
	IceChar      = '█'
	IceCapTop    = '▄'
	IceCapBottom = '▀'
)

// viewport maps world units onto screen cells.
type viewport struct {
	sx, sy float64
}

func newViewport(dst *core.Screen, b Bounds) viewport {
	return viewport{
		sx: float64(dst.Width()) / b.Width,
		sy: float64(dst.Height()) / b.Height,
	}
}

// rect converts a world box to the cells it covers. Non-empty boxes cover
// at least one cell so thin things stay visible.
func (v viewport) rect(b core.Box) core.Rect {
	x0 := int(math.Floor(b.X * v.sx))
	y0 := int(math.Floor(b.Y * v.sy))
	x1 := int(math.Ceil(b.Right() * v.sx))
	y1 := int(math.Ceil(b.Bottom() * v.sy))
	if b.W > 0 && x1 == x0 {
		x1++
	}
	if b.H > 0 && y1 == y0 {
		y1++
	}
	return core.NewRect(x0, y0, x1-x0, y1-y0)
}

// Render draws a snapshot to the screen: ice spoilers, the seal, the score
// line and the idle or game-over banner.
func Render(dst *core.Screen, snap Snapshot) {
	dst.Clear()
	if dst.Width() == 0 || dst.Height() == 0 || snap.Bounds.Width <= 0 || snap.Bounds.Height <= 0 {
		return
	}
	v := newViewport(dst, snap.Bounds)

	for _, o := range snap.Obstacles {
		drawObstacle(dst, v, o, snap)
	}
	drawSeal(dst, v, snap.Actor, snap.State)

	hud := fmt.Sprintf(" Score: %d  High: %d ", snap.Score, snap.HighScore)
	dst.DrawTextColored(1, 0, hud, core.ColorBrightWhite)

	switch snap.State {
	case Idle:
		drawBanner(dst, core.ColorBrightCyan, "FLAPPY SEAL", "Space, W, Up or click to flap")
	case Over:
		lines := []string{fmt.Sprintf("Score: %d  |  High: %d", snap.Score, snap.HighScore)}
		if p := snap.Prompt(); p != "" {
			lines = append(lines, p)
		}
		lines = append(lines, "Flap to play again")
		drawBanner(dst, core.ColorRed, "GAME OVER", lines...)
	}
}

func drawObstacle(dst *core.Screen, v viewport, o Obstacle, snap Snapshot) {
	w := snap.Geometry.ObstacleWidth

	top := v.rect(o.Top(w))
	dst.DrawRect(top, IceChar, core.ColorIce)
	if top.H > 0 {
		dst.DrawHLine(top.X, top.Bottom()-1, top.W, IceCapTop, core.ColorWhite)
	}

	bottom := v.rect(o.Bottom(w, snap.Geometry.GapHeight, snap.Bounds.Height))
	dst.DrawRect(bottom, IceChar, core.ColorIce)
	if bottom.H > 0 {
		dst.DrawHLine(bottom.X, bottom.Y, bottom.W, IceCapBottom, core.ColorWhite)
	}
}

func drawSeal(dst *core.Screen, v viewport, a Actor, state RunState) {
	color := core.ColorGray
	if state == Over {
		color = core.ColorRed
	}
	r := v.rect(a.Box())
	dst.DrawRect(r, SealChar, color)
	dst.SetColored(r.Right()-1, r.Y, SealEyeChar, core.ColorBrightWhite)
}

// drawBanner draws a boxed message in the center of the screen.
func drawBanner(dst *core.Screen, color core.Color, title string, lines ...string) {
	boxW := len([]rune(title))
	for _, l := range lines {
		boxW = max(boxW, len([]rune(l)))
	}
	boxW += 4
	boxH := len(lines) + 4
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, color)
	dst.DrawTextCentered(box.Y+1, title, color)
	for i, l := range lines {
		dst.DrawTextCentered(box.Y+3+i, l, core.ColorWhite)
	}
}
