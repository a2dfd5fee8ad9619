// Package seal implements Flappy Seal: a seal that must flap through gaps
// between ice spoilers. The Machine is a fixed-tick state machine with no
// knowledge of terminals, sockets or storage; hosts drive Tick at a fixed
// rate, forward input through Jump, and render Snapshots.
package seal

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/FUCKiro/flappyseal-app/internal/config"
	"github.com/FUCKiro/flappyseal-app/internal/identity"
)

// Option configures a Machine.
type Option func(*Machine)

// WithClock sets the time source used for debouncing.
func WithClock(c Clock) Option {
	return func(m *Machine) { m.clock = c }
}

// WithRand sets the random source for gap placement.
func WithRand(r Rand) Option {
	return func(m *Machine) { m.rng = r }
}

// WithIdentity sets who is playing. Defaults to nobody.
func WithIdentity(p identity.Provider) Option {
	return func(m *Machine) { m.who = p }
}

// WithScoreSink sets where qualifying scores go. Defaults to nowhere.
func WithScoreSink(s ScoreSink) Option {
	return func(m *Machine) { m.sink = s }
}

// WithBounds overrides the world size from the config.
func WithBounds(b Bounds) Option {
	return func(m *Machine) { m.bounds = b }
}

// Machine is the game state machine: Idle -> Running -> Over -> Running...
// It is safe for concurrent use. Input is applied at tick boundaries.
type Machine struct {
	mu sync.Mutex

	cfg    config.SealConfig
	clock  Clock
	rng    Rand
	who    identity.Provider
	sink   ScoreSink
	bounds Bounds

	state    RunState
	actor    Actor
	field    *field
	score    scoreboard
	debounce debouncer
	jump     bool // Pending impulse, consumed by the next tick
	decision Decision
	ticks    uint64
}

type submission struct {
	score int
	who   identity.Identity
}

// New creates an idle Machine. It fails if cfg or the initial bounds
// cannot host a run.
func New(cfg config.SealConfig, opts ...Option) (*Machine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Machine{
		cfg:    cfg,
		clock:  systemClock{},
		who:    identity.Anonymous{},
		sink:   discardSink{},
		bounds: Bounds{Width: cfg.World.Width, Height: cfg.World.Height},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.rng == nil {
		seed := uint64(time.Now().UnixNano())
		m.rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	if err := m.bounds.check(cfg); err != nil {
		return nil, err
	}

	m.debounce.interval = cfg.Input.Debounce
	m.field = newField(cfg.Obstacles, cfg.Physics.ScrollSpeed, m.rng)
	m.actor = Actor{X: cfg.Player.X, Size: cfg.Player.Size}
	m.center()
	return m, nil
}

// Start begins the first run. It only applies in Idle.
func (m *Machine) Start() (Outcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != Idle {
		return OutcomeIgnored, nil
	}
	return m.begin(OutcomeStarted)
}

// Restart begins a new run after game over. It only applies in Over.
func (m *Machine) Restart() (Outcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != Over {
		return OutcomeIgnored, nil
	}
	return m.begin(OutcomeRestarted)
}

// Jump is the single player input. While Running it queues an upward
// impulse for the next tick; otherwise it starts or restarts the game.
func (m *Machine) Jump() (Outcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.state {
	case Idle:
		return m.begin(OutcomeStarted)
	case Over:
		return m.begin(OutcomeRestarted)
	}

	now := m.clock.Now()
	if !m.debounce.ready(now) {
		return OutcomeIgnored, nil
	}
	m.debounce.accept(now)
	m.jump = true
	return OutcomeImpulse, nil
}

// begin resets the run. Requests inside the debounce window are ignored.
func (m *Machine) begin(outcome Outcome) (Outcome, error) {
	now := m.clock.Now()
	if !m.debounce.ready(now) {
		return OutcomeIgnored, nil
	}
	if err := m.bounds.check(m.cfg); err != nil {
		return OutcomeIgnored, err
	}
	m.debounce.accept(now)

	m.state = Running
	m.score.reset()
	m.field.reset()
	m.center()
	m.actor.Vel = 0
	m.jump = false
	m.decision = DecisionNone
	m.ticks = 0
	return outcome, nil
}

// center puts the actor's top edge at the vertical middle of the current
// bounds.
func (m *Machine) center() {
	m.actor.Y = m.bounds.Height / 2
}

// End abandons the running game, e.g. when the player disconnects.
// It reports whether a run was ended.
func (m *Machine) End() bool {
	m.mu.Lock()
	if m.state != Running {
		m.mu.Unlock()
		return false
	}
	sub := m.finish()
	m.mu.Unlock()

	m.submit(sub)
	return true
}

// Tick advances the simulation by one step and returns the new snapshot.
// Outside Running it changes nothing.
func (m *Machine) Tick() Snapshot {
	m.mu.Lock()
	var sub *submission
	if m.state == Running {
		sub = m.step()
	}
	snap := m.snapshot()
	m.mu.Unlock()

	m.submit(sub)
	return snap
}

// step runs one tick: impulse, physics, obstacles, collision, scoring,
// then the terminal transition.
func (m *Machine) step() *submission {
	m.ticks++

	if m.jump {
		m.actor.Vel = m.cfg.Physics.JumpImpulse
		m.jump = false
	}
	m.actor.integrate(m.cfg.Physics.Gravity)
	m.field.advance(m.bounds)

	hit := outOfBounds(m.actor, m.bounds.Height) ||
		hitsObstacle(m.actor, m.cfg.Player.CollisionPadding, m.field.obstacles, m.cfg.Obstacles, m.bounds.Height)

	m.score.add(m.field.markPassed(m.actor.X))

	if hit {
		return m.finish()
	}
	return nil
}

// finish moves to Over and runs the submission gate. The caller hands the
// returned submission to the sink after releasing the lock.
func (m *Machine) finish() *submission {
	m.state = Over
	m.jump = false

	decision, who := decide(m.score.score, m.who)
	m.decision = decision
	if decision != DecisionSubmitted {
		return nil
	}
	return &submission{score: m.score.score, who: who}
}

func (m *Machine) submit(sub *submission) {
	if sub != nil {
		m.sink.Submit(sub.score, sub.who)
	}
}

// SetBounds pushes new world bounds, e.g. after a resize. They apply from
// the next tick; the actor is only re-centred on the next (re)start.
// Invalid bounds are rejected and the previous ones kept.
func (m *Machine) SetBounds(b Bounds) error {
	if err := b.check(m.cfg); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.bounds = b
	return nil
}

// Snapshot returns a copy of the current state for rendering.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot()
}

// State returns the current phase.
func (m *Machine) State() RunState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Config returns the tuning the Machine was built with.
func (m *Machine) Config() config.SealConfig {
	return m.cfg
}
