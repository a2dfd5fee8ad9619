package seal

// RunState is the phase of the game.
type RunState int

const (
	Idle    RunState = iota // Waiting for the first jump
	Running                 // Ticks advance the simulation
	Over                    // Run ended, final frame frozen until restart
)

// String returns a human-readable name for the state.
func (s RunState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Over:
		return "over"
	default:
		return "unknown"
	}
}

// Outcome describes what an input request did.
type Outcome int

const (
	OutcomeIgnored   Outcome = iota // Debounced or not applicable in the current state
	OutcomeImpulse                  // Jump queued for the next tick
	OutcomeStarted                  // Idle -> Running
	OutcomeRestarted                // Over -> Running
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeImpulse:
		return "impulse"
	case OutcomeStarted:
		return "started"
	case OutcomeRestarted:
		return "restarted"
	default:
		return "unknown"
	}
}

// Decision records what the submission gate did at the end of a run.
type Decision int

const (
	DecisionNone       Decision = iota // No run has ended yet
	DecisionSubmitted                  // Score handed to the sink
	DecisionNoScore                    // Nothing to save
	DecisionAnonymous                  // Nobody signed in
	DecisionUnverified                 // Signed in, e-mail not verified
)

// String returns a human-readable name for the decision.
func (d Decision) String() string {
	switch d {
	case DecisionNone:
		return "none"
	case DecisionSubmitted:
		return "submitted"
	case DecisionNoScore:
		return "no_score"
	case DecisionAnonymous:
		return "anonymous"
	case DecisionUnverified:
		return "unverified"
	default:
		return "unknown"
	}
}
