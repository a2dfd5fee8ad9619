// Package tui hosts the game in a terminal with Bubble Tea, locally or over
// SSH. It drives the fixed-rate tick, maps keys and clicks to flaps, and
// renders snapshots.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends one tick message after
// one interval at the specified rate. The model re-arms it after every tick
// while the game is running, so ticks never overlap.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
