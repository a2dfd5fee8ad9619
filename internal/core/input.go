package core

// Action is a semantic input, abstracted from physical key presses, clicks
// and touches.
type Action int

const (
	ActionNone Action = iota
	ActionJump        // Space, Up, W, mouse click, touch: flap or start/restart
	ActionQuit        // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Source identifies where an action came from. Several sources can fire
// for one user gesture, which is why jumps are debounced.
type Source int

const (
	SourceKeyboard Source = iota
	SourcePointer
	SourceRemote // A browser over the websocket
)

// String returns a human-readable name for the source.
func (s Source) String() string {
	switch s {
	case SourceKeyboard:
		return "keyboard"
	case SourcePointer:
		return "pointer"
	case SourceRemote:
		return "remote"
	default:
		return "unknown"
	}
}
