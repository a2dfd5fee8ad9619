package seal

import (
	"errors"
	"fmt"

	"github.com/FUCKiro/flappyseal-app/internal/config"
)

// ErrInvalidBounds is returned when the world cannot hold a playable run.
var ErrInvalidBounds = errors.New("seal: invalid bounds")

// Bounds is the size of the world in world units.
type Bounds struct {
	Width  float64
	Height float64
}

// check reports why b cannot host a run with the given tuning.
func (b Bounds) check(cfg config.SealConfig) error {
	switch {
	case b.Width <= 0 || b.Height <= 0:
		return fmt.Errorf("%w: %gx%g", ErrInvalidBounds, b.Width, b.Height)
	case b.Height < cfg.Obstacles.GapHeight+2*cfg.Obstacles.Margin:
		return fmt.Errorf("%w: height %g cannot fit gap %g with margins %g",
			ErrInvalidBounds, b.Height, cfg.Obstacles.GapHeight, cfg.Obstacles.Margin)
	case b.Height <= cfg.Player.Size:
		return fmt.Errorf("%w: height %g does not fit actor %g", ErrInvalidBounds, b.Height, cfg.Player.Size)
	}
	return nil
}
