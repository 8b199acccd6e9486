package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gameland/internal/registry"
)

// MenuModel is the Bubble Tea model for the game picker menu.
type MenuModel struct {
	games       []registry.Game
	gamesDir    string
	cursor      int
	width       int
	height      int
	keys        MenuKeyMap
	help        help.Model
	styles      menuStyles
	quitting    bool
	selected    *registry.Game // Set when user selects a game
	openHistory bool           // True if user pressed Tab for history
	notice      string         // One-off error shown under the list
}

type menuStyles struct {
	title    lipgloss.Style
	item     lipgloss.Style
	selected lipgloss.Style
	dim      lipgloss.Style
	hint     lipgloss.Style
	notice   lipgloss.Style
}

func newMenuStyles(r *Renderer) menuStyles {
	return menuStyles{
		title:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")),
		item:     r.NewStyle().Foreground(lipgloss.Color("#c8c8c8")),
		selected: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffff00")),
		dim:      r.NewStyle().Foreground(lipgloss.Color("245")),
		hint:     r.NewStyle().Foreground(lipgloss.Color("#ffff00")),
		notice:   r.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

// NewMenuModel creates a picker over games found in gamesDir.
func NewMenuModel(games []registry.Game, gamesDir string, r *Renderer) MenuModel {
	if r == nil {
		r = NewRenderer(nil)
	}
	return MenuModel{
		games:    games,
		gamesDir: gamesDir,
		keys:     DefaultMenuKeyMap(),
		help:     help.New(),
		styles:   newMenuStyles(r),
		width:    80,
		height:   24,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case len(m.games) == 0:
		// Only quitting is possible from the empty state

	case key.Matches(msg, m.keys.Up):
		m.cursor = (m.cursor - 1 + len(m.games)) % len(m.games)

	case key.Matches(msg, m.keys.Down):
		m.cursor = (m.cursor + 1) % len(m.games)

	case key.Matches(msg, m.keys.Select):
		selected := m.games[m.cursor]
		m.selected = &selected
		return m, tea.Quit

	case key.Matches(msg, m.keys.History):
		m.openHistory = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	if len(m.games) == 0 {
		return m.emptyView()
	}

	lines := []string{
		m.styles.title.Render("G A M E L A N D"),
		"",
		m.styles.item.Render("Select a Game"),
		"",
	}
	for i, g := range m.games {
		if i == m.cursor {
			lines = append(lines, m.styles.selected.Render("> "+g.Name))
		} else {
			lines = append(lines, m.styles.item.Render("  "+g.Name))
		}
	}
	if desc := m.games[m.cursor].Description(); desc != "" {
		lines = append(lines, "", m.styles.dim.Render(desc))
	}
	if m.notice != "" {
		lines = append(lines, "", m.styles.notice.Render(m.notice))
	}
	lines = append(lines, "", m.help.View(m.keys))

	return m.place(lines)
}

func (m MenuModel) emptyView() string {
	return m.place([]string{
		m.styles.title.Render("No games installed"),
		"",
		m.styles.item.Render("Place a game folder in:"),
		m.styles.item.Render(m.gamesDir),
		"",
		m.styles.hint.Render("Press ESC to quit"),
	})
}

func (m MenuModel) place(lines []string) string {
	block := lipgloss.JoinVertical(lipgloss.Center, lines...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, block)
}

// Selected returns the selected game, or nil if none selected.
func (m MenuModel) Selected() *registry.Game {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsHistory returns true if user requested the play history.
func (m MenuModel) WantsHistory() bool {
	return m.openHistory
}

// Cursor returns the index of the highlighted game.
func (m MenuModel) Cursor() int {
	return m.cursor
}

// Size returns the last known terminal size.
func (m MenuModel) Size() (int, int) {
	return m.width, m.height
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Game         *registry.Game
	WantsHistory bool
	Quit         bool
}

// RunMenu runs the picker and returns the selection result.
func RunMenu(games []registry.Game, gamesDir string) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(games, gamesDir, nil),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok || m.IsQuitting() {
		return MenuResult{Quit: true}, nil
	}
	if m.WantsHistory() {
		return MenuResult{WantsHistory: true}, nil
	}
	if m.Selected() == nil {
		return MenuResult{Quit: true}, nil
	}
	return MenuResult{Game: m.Selected()}, nil
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
