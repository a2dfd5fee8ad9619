package seal

import "github.com/FUCKiro/flappyseal-app/internal/config"

// outOfBounds reports whether the actor hit the ceiling or the floor.
func outOfBounds(a Actor, height float64) bool {
	return a.Y < 0 || a.Y > height-a.Size
}

// hitsObstacle reports whether the padded actor box overlaps either
// spoiler of any obstacle.
func hitsObstacle(a Actor, pad float64, obstacles []Obstacle, cfg config.ObstacleConfig, height float64) bool {
	box := a.HitBox(pad)
	for _, o := range obstacles {
		if box.Overlaps(o.Top(cfg.Width)) || box.Overlaps(o.Bottom(cfg.Width, cfg.GapHeight, height)) {
			return true
		}
	}
	return false
}
