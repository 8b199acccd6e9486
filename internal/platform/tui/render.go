package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gameland/internal/core"
)

type colorPair struct {
	fg, bg core.RGB
}

// Renderer turns screen buffers into styled strings. Styles are cached per
// color pair; a frame rarely uses more than a handful. SSH sessions get a
// renderer bound to their own terminal's color profile.
type Renderer struct {
	lg *lipgloss.Renderer

	mu     sync.Mutex
	styles map[colorPair]lipgloss.Style
}

// NewRenderer creates a renderer. A nil lipgloss renderer selects the
// default one for the local terminal.
func NewRenderer(lg *lipgloss.Renderer) *Renderer {
	if lg == nil {
		lg = lipgloss.DefaultRenderer()
	}
	return &Renderer{lg: lg, styles: make(map[colorPair]lipgloss.Style)}
}

// Style returns a style drawing fg on bg.
func (r *Renderer) Style(fg, bg core.RGB) lipgloss.Style {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := colorPair{fg, bg}
	if st, ok := r.styles[key]; ok {
		return st
	}
	st := r.lg.NewStyle().
		Foreground(lipgloss.Color(fg.Hex())).
		Background(lipgloss.Color(bg.Hex()))
	r.styles[key] = st
	return st
}

// NewStyle returns an empty style for the renderer's terminal.
func (r *Renderer) NewStyle() lipgloss.Style {
	return r.lg.NewStyle()
}

// Render converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func (r *Renderer) Render(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*4 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.FG != start.FG || cell.BG != start.BG {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(r.Style(start.FG, start.BG).Render(run.String()))
		}
	}
	return sb.String()
}
