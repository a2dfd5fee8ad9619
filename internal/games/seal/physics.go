package seal

import "github.com/FUCKiro/flappyseal-app/internal/core"

// Actor is the seal. X and Size are fixed for a run; Y grows downwards.
type Actor struct {
	X    float64
	Y    float64
	Vel  float64
	Size float64
}

// integrate advances one tick of explicit Euler: position uses the
// pre-tick velocity, then gravity is added.
func (a *Actor) integrate(gravity float64) {
	a.Y += a.Vel
	a.Vel += gravity
}

// Box returns the drawn square of the actor.
func (a Actor) Box() core.Box {
	return core.NewBox(a.X, a.Y, a.Size, a.Size)
}

// HitBox returns the actor's collision box, shrunk by pad on every side.
func (a Actor) HitBox(pad float64) core.Box {
	return a.Box().Inset(pad)
}
