package tui

import (
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/FUCKiro/flappyseal-app/internal/config"
	"github.com/FUCKiro/flappyseal-app/internal/core"
	"github.com/FUCKiro/flappyseal-app/internal/games/seal"
	"github.com/FUCKiro/flappyseal-app/internal/identity"
)

// Options wires a Model to its collaborators. Zero values mean: nobody
// signed in, scores are dropped, no leaderboard.
type Options struct {
	Runtime  core.RuntimeConfig
	Identity identity.Provider
	Sink     seal.ScoreSink
	Board    Board
	Logger   *log.Logger

	// Extra machine options, applied last
	Machine []seal.Option
}

// Model is the Bubble Tea model for one player's game.
type Model struct {
	machine *seal.Machine
	snap    seal.Snapshot
	screen  *core.Screen
	cfg     config.SealConfig
	runtime core.RuntimeConfig
	keys    KeyMap
	help    help.Model
	board   Board
	flusher Flusher
	scores  ScoreTable
	logger  *log.Logger
	now     func() time.Time

	width       int
	height      int
	showSidebar bool
	quitting    bool
}

// NewModel creates a model with a fresh game sized to opts.Runtime.
func NewModel(cfg config.SealConfig, opts Options) (Model, error) {
	rt := opts.Runtime
	if rt.TickRate <= 0 {
		rt.TickRate = 60
	}
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := Model{
		cfg:     cfg,
		runtime: rt,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		board:   opts.Board,
		scores:  NewScoreTable(cfg.Leaderboard.Size),
		logger:  logger,
		now:     time.Now,
		screen:  core.NewScreen(0, 0),
	}
	m.layout(rt.ScreenW, rt.ScreenH)

	machineOpts := []seal.Option{
		seal.WithRand(rand.New(rand.NewPCG(uint64(rt.Seed), uint64(rt.Seed)>>1))),
	}
	if b, ok := m.worldBounds(); ok {
		machineOpts = append(machineOpts, seal.WithBounds(b))
	}
	if opts.Identity != nil {
		machineOpts = append(machineOpts, seal.WithIdentity(opts.Identity))
	}
	if opts.Sink != nil {
		machineOpts = append(machineOpts, seal.WithScoreSink(opts.Sink))
		if f, ok := opts.Sink.(Flusher); ok {
			m.flusher = f
		}
	}
	machineOpts = append(machineOpts, opts.Machine...)

	machine, err := seal.New(cfg, machineOpts...)
	if err != nil {
		return Model{}, err
	}
	m.machine = machine
	m.snap = machine.Snapshot()
	return m, nil
}

// Init loads the leaderboard. The tick loop starts with the first flap.
func (m Model) Init() tea.Cmd {
	if m.board == nil {
		return nil
	}
	return loadScoresCmd(m.board, nil, m.cfg.Leaderboard.Size)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleAction(m.keys.MapKey(msg), core.SourceKeyboard)

	case tea.MouseMsg:
		return m.handleAction(MapMouse(msg), core.SourcePointer)

	case tea.WindowSizeMsg:
		m.layout(msg.Width, msg.Height)
		m.pushBounds()
		m.snap = m.machine.Snapshot()
		return m, nil

	case TickMsg:
		return m.handleTick()

	case scoresMsg:
		if msg.err != nil {
			m.logger.Warn("could not load leaderboard", "err", msg.err)
			return m, nil
		}
		m.scores.SetEntries(msg.entries)
		return m, nil
	}

	return m, nil
}

// handleAction applies a mapped input.
func (m Model) handleAction(action core.Action, src core.Source) (tea.Model, tea.Cmd) {
	switch action {
	case core.ActionQuit:
		if m.machine.End() {
			m.logger.Debug("run abandoned")
		}
		m.quitting = true
		return m, tea.Quit

	case core.ActionJump:
		out, err := m.machine.Jump()
		if err != nil {
			m.logger.Warn("cannot start game", "err", err)
			return m, nil
		}
		m.snap = m.machine.Snapshot()
		m.logger.Debug("flap", "source", src, "outcome", out)
		if out == seal.OutcomeStarted || out == seal.OutcomeRestarted {
			return m, tickCmd(m.runtime.TickRate)
		}
	}
	return m, nil
}

// handleTick advances the game and re-arms the clock only while running.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.machine.State() != seal.Running {
		return m, nil
	}

	m.snap = m.machine.Tick()
	if m.snap.State == seal.Running {
		return m, tickCmd(m.runtime.TickRate)
	}

	m.logger.Debug("game over", "score", m.snap.Score, "decision", m.snap.Decision)
	if m.board == nil {
		return m, nil
	}
	return m, loadScoresCmd(m.board, m.flusher, m.cfg.Leaderboard.Size)
}

// layout splits the terminal into playfield, sidebar and help line.
func (m *Model) layout(width, height int) {
	m.width, m.height = width, height
	m.showSidebar = m.board != nil && width >= minWidthForSidebar

	playW := width
	if m.showSidebar {
		playW -= sidebarWidth
	}
	m.screen.Resize(playW, max(height-1, 0))
	m.help.Width = width
}

// worldBounds maps the playfield to world units. The height is fixed by the
// config; the width follows the playfield's aspect ratio.
func (m Model) worldBounds() (seal.Bounds, bool) {
	cols, rows := m.screen.Width(), m.screen.Height()
	if cols <= 0 || rows <= 0 {
		return seal.Bounds{}, false
	}
	h := m.cfg.World.Height
	w := h * float64(cols) * m.cfg.TUI.CellAspect / float64(rows)
	return seal.Bounds{Width: w, Height: h}, true
}

func (m Model) pushBounds() {
	b, ok := m.worldBounds()
	if !ok {
		return
	}
	if err := m.machine.SetBounds(b); err != nil {
		m.logger.Warn("terminal too small, keeping previous bounds", "err", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	seal.Render(m.screen, m.snap)
	view := RenderScreen(m.screen)

	if m.showSidebar {
		view = lipgloss.JoinHorizontal(lipgloss.Top, view, m.scores.View(m.now()))
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return view + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Snapshot returns the last rendered game state.
func (m Model) Snapshot() seal.Snapshot {
	return m.snap
}

// Run starts the Bubble Tea program with a new model.
func Run(cfg config.SealConfig, opts Options) error {
	model, err := NewModel(cfg, opts)
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Clicks flap too
	)

	_, err = p.Run()
	return err
}
