package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/FUCKiro/flappyseal-app/internal/leaderboard"
	"github.com/FUCKiro/flappyseal-app/internal/storage"
)

// Leaderboard layout constants
const (
	minWidthForSidebar = 80 // Minimum terminal width to show the leaderboard beside the game
	sidebarWidth       = 34 // Width of the leaderboard sidebar including borders
	nameWidth          = 14
)

// Board is the read side of the score store.
type Board interface {
	TopScores(ctx context.Context, limit int) ([]storage.ScoreEntry, error)
}

// Flusher is implemented by score sinks that can wait for pending writes.
type Flusher interface {
	Wait()
}

// scoresMsg carries a freshly loaded leaderboard.
type scoresMsg struct {
	entries []storage.ScoreEntry
	err     error
}

// loadScoresCmd waits for pending submissions, then reads the top scores.
func loadScoresCmd(board Board, flusher Flusher, limit int) tea.Cmd {
	return func() tea.Msg {
		if flusher != nil {
			flusher.Wait()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		entries, err := board.TopScores(ctx, limit)
		return scoresMsg{entries: entries, err: err}
	}
}

// ScoreTable renders the weekly leaderboard with a bubbles table.
type ScoreTable struct {
	table   table.Model
	entries []storage.ScoreEntry
	limit   int
}

// NewScoreTable creates an empty table for up to limit rows.
func NewScoreTable(limit int) ScoreTable {
	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Player", Width: nameWidth},
		{Title: "Score", Width: 7},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(false),
		table.WithHeight(limit+1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Cell
	t.SetStyles(s)

	return ScoreTable{table: t, limit: limit}
}

// SetEntries replaces the rows.
func (st *ScoreTable) SetEntries(entries []storage.ScoreEntry) {
	st.entries = entries
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			truncate(e.DisplayName, nameWidth),
			fmt.Sprintf("%d", e.Score),
		}
	}
	st.table.SetRows(rows)
	st.table.GotoTop()
}

// View renders the table with a title and the time until the weekly reset.
func (st ScoreTable) View(now time.Time) string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(fmt.Sprintf("WEEKLY TOP %d", st.limit)))
	b.WriteString("\n")

	subtle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(subtle.Render("resets in " + untilReset(now)))
	b.WriteString("\n\n")

	if len(st.entries) == 0 {
		emptyStyle := subtle.Italic(true)
		b.WriteString(emptyStyle.Render("No scores this week.\nBe the first!"))
	} else {
		b.WriteString(st.table.View())
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	return boxStyle.Render(b.String())
}

// RenderLeaderboard renders entries as a standalone table, for the CLI.
func RenderLeaderboard(entries []storage.ScoreEntry, limit int, now time.Time) string {
	st := NewScoreTable(limit)
	st.SetEntries(entries)
	return st.View(now)
}

// untilReset formats the time left until the next Monday 00:00 UTC.
func untilReset(now time.Time) string {
	d := leaderboard.NextReset(now).Sub(now).Round(time.Minute)
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	if days > 0 {
		return fmt.Sprintf("%dd %dh", days, hours)
	}
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
