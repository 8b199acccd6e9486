package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gameland/internal/registry"
	"github.com/vovakirdan/gameland/internal/storage"
)

func testGames() []registry.Game {
	return []registry.Game{
		{ID: "alpha", Name: "Alpha"},
		{ID: "beta", Name: "Beta"},
		{ID: "gamma", Name: "Gamma", Metadata: map[string]any{"description": "third one"}},
	}
}

func pressMenu(m MenuModel, msgs ...tea.KeyMsg) MenuModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(MenuModel)
	}
	return m
}

var (
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
)

func TestMenuNavigationWraps(t *testing.T) {
	tests := []struct {
		name     string
		keys     []tea.KeyMsg
		expected int
	}{
		{"down", []tea.KeyMsg{keyDown}, 1},
		{"up from first wraps to last", []tea.KeyMsg{keyUp}, 2},
		{"down from last wraps to first", []tea.KeyMsg{keyDown, keyDown, keyDown}, 0},
		{"vim keys", []tea.KeyMsg{{Type: tea.KeyRunes, Runes: []rune{'j'}}, {Type: tea.KeyRunes, Runes: []rune{'j'}}, {Type: tea.KeyRunes, Runes: []rune{'k'}}}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := pressMenu(NewMenuModel(testGames(), "/games", nil), tt.keys...)
			if m.Cursor() != tt.expected {
				t.Errorf("Cursor() = %d, expected %d", m.Cursor(), tt.expected)
			}
		})
	}
}

func TestMenuSelect(t *testing.T) {
	m := NewMenuModel(testGames(), "/games", nil)
	m = pressMenu(m, keyDown)
	next, cmd := m.Update(keyEnter)
	m = next.(MenuModel)

	if m.Selected() == nil || m.Selected().ID != "beta" {
		t.Errorf("Selected() = %v, expected beta", m.Selected())
	}
	if cmd == nil {
		t.Error("selecting should quit the menu program")
	}
}

func TestMenuHistoryAndQuit(t *testing.T) {
	m := pressMenu(NewMenuModel(testGames(), "/games", nil), keyTab)
	if !m.WantsHistory() {
		t.Error("WantsHistory() = false after tab, expected true")
	}

	m = pressMenu(NewMenuModel(testGames(), "/games", nil), keyEsc)
	if !m.IsQuitting() {
		t.Error("IsQuitting() = false after esc, expected true")
	}
	if m.View() != "" {
		t.Error("View() should be empty when quitting")
	}
}

func TestMenuView(t *testing.T) {
	m := NewMenuModel(testGames(), "/games", nil)
	m = pressMenu(m, keyUp)
	view := m.View()

	for _, want := range []string{"Select a Game", "Alpha", "Beta", "> Gamma", "third one"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestMenuEmptyState(t *testing.T) {
	m := NewMenuModel(nil, "/home/me/.config/Gameland/games", nil)
	m = pressMenu(m, keyDown, keyEnter, keyTab)

	if m.Selected() != nil || m.WantsHistory() {
		t.Error("empty menu should ignore everything but quit")
	}
	view := m.View()
	for _, want := range []string{"No games installed", "Place a game folder in:", "/home/me/.config/Gameland/games", "Press ESC to quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}

	m = pressMenu(m, keyEsc)
	if !m.IsQuitting() {
		t.Error("IsQuitting() = false after esc, expected true")
	}
}

func TestSessionModelFlow(t *testing.T) {
	dir := t.TempDir()
	writeGame(t, dir, "box", boxGame)
	writeGame(t, dir, "broken", "error('boom')")

	store, err := storage.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("storage.Open() error = %v", err)
	}
	defer store.Close()

	opts := testOptions(t)
	cfg := opts.Config
	cfg.GamesDir = dir
	m := NewSessionModel(SessionOptions{
		Config: cfg, Store: store, Logger: opts.Logger, Player: "guest", Width: 40, Height: 12,
	})

	update := func(msg tea.Msg) tea.Cmd {
		next, cmd := m.Update(msg)
		m = next.(SessionModel)
		return cmd
	}

	// Games are sorted by folder: box, broken
	update(keyDown)
	update(keyEnter)
	if m.view != viewMenu || !strings.Contains(m.View(), "Could not load") {
		t.Fatalf("a failing game should return to the menu with a notice")
	}

	update(keyUp)
	if cmd := update(keyEnter); cmd == nil {
		t.Fatal("starting a game should schedule a tick")
	}
	if m.view != viewGame {
		t.Fatalf("view = %v, expected game", m.view)
	}
	update(TickMsg{})
	update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd := update(TickMsg{}); cmd != nil {
		t.Error("ending a game inside a session should not quit the program")
	}
	if m.view != viewMenu {
		t.Fatalf("view = %v, expected menu after the game ends", m.view)
	}

	update(keyTab)
	if m.view != viewHistory {
		t.Fatalf("view = %v, expected history", m.view)
	}
	if view := m.View(); !strings.Contains(view, "guest") {
		t.Errorf("history should list the finished session, got %q", view)
	}
	update(keyEsc)
	if m.view != viewMenu {
		t.Errorf("view = %v, expected menu after leaving history", m.view)
	}

	if cmd := update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}); cmd == nil {
		t.Error("quitting the menu should quit the program")
	}
}
