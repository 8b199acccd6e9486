// Package tui runs games in a terminal through Bubble Tea. It provides the
// terminal platform (keyboard and half-block canvas), the game picker, the
// play history view and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gameland/internal/engine"
)

// TickMsg is sent to trigger one engine frame.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends a tick after one frame
// budget at the given rate.
func tickCmd(fps int) tea.Cmd {
	return tea.Tick(engine.FrameBudget(fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
