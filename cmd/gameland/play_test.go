package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// setupPlay points the global flags at a temp games folder holding one
// game whose entry script does not parse.
func setupPlay(t *testing.T, headless bool) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("HOME", root)

	game := filepath.Join(root, "games", "broken")
	if err := os.MkdirAll(game, 0o755); err != nil {
		t.Fatalf("failed to create game dir: %v", err)
	}
	files := map[string]string{
		"info.json": `{"name": "Broken"}`,
		"game.lua":  "function OnInit(api",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(game, name), []byte(body), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}

	saved := []any{flagConfig, flagGamesDir, flagDBPath, flagHeadless}
	t.Cleanup(func() {
		flagConfig = saved[0].(string)
		flagGamesDir = saved[1].(string)
		flagDBPath = saved[2].(string)
		flagHeadless = saved[3].(bool)
	})
	flagConfig = ""
	flagGamesDir = filepath.Join(root, "games")
	flagDBPath = filepath.Join(root, "data", "history.db")
	flagHeadless = headless
	return filepath.Join(root, "data")
}

func TestPlayGameLoadFailureWritesLog(t *testing.T) {
	dataDir := setupPlay(t, false)

	if code := playGame("broken"); code != 1 {
		t.Fatalf("playGame() = %d, expected 1", code)
	}

	data, err := os.ReadFile(filepath.Join(dataDir, "gameland.log"))
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	if !strings.Contains(string(data), "game failed") {
		t.Errorf("log = %q, expected the load failure", data)
	}
}

func TestPlayGameExitCodes(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		headless bool
		expected int
	}{
		{"unknown game", "missing", false, 1},
		{"headless load failure", "broken", true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupPlay(t, tt.headless)
			if code := playGame(tt.query); code != tt.expected {
				t.Errorf("playGame(%q) = %d, expected %d", tt.query, code, tt.expected)
			}
		})
	}
}
