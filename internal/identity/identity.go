// Package identity defines who is playing. The game only needs to know
// whether a player is present and verified; how they signed in is up to the
// host.
package identity

// Identity is a signed-in player.
type Identity struct {
	ID            string
	DisplayName   string
	EmailVerified bool
}

// Provider returns the current player, if any.
type Provider interface {
	CurrentUser() (Identity, bool)
}

// Anonymous is a Provider with nobody signed in.
type Anonymous struct{}

// CurrentUser always reports no player.
func (Anonymous) CurrentUser() (Identity, bool) {
	return Identity{}, false
}

// Static is a Provider for a fixed player, e.g. an authenticated SSH session.
type Static struct {
	who Identity
}

// NewStatic returns a Provider that always reports who.
func NewStatic(who Identity) Static {
	return Static{who: who}
}

// CurrentUser returns the fixed player. An empty ID counts as nobody.
func (s Static) CurrentUser() (Identity, bool) {
	if s.who.ID == "" {
		return Identity{}, false
	}
	return s.who, true
}
