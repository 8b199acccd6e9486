package registry

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writePackage(t *testing.T, dir, folder, info string, withScript bool) string {
	t.Helper()
	path := filepath.Join(dir, folder)
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	if info != "" {
		if err := os.WriteFile(filepath.Join(path, InfoFile), []byte(info), 0o644); err != nil {
			t.Fatalf("failed to write info: %v", err)
		}
	}
	if withScript {
		if err := os.WriteFile(filepath.Join(path, "game.lua"), []byte("-- empty"), 0o644); err != nil {
			t.Fatalf("failed to write script: %v", err)
		}
	}
	return path
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writePackage(t, dir, "pong", `{"name": "Pong", "author": "gameland"}`, true)
	writePackage(t, dir, "bouncer", `{"version": 2}`, true)
	writePackage(t, dir, "no-script", `{"name": "Broken"}`, false)
	writePackage(t, dir, "no-info", "", true)
	writePackage(t, dir, "bad-json", `{"name": `, true)
	if err := os.WriteFile(filepath.Join(dir, "README.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}

	games, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("Discover() returned %d games, expected 2: %+v", len(games), games)
	}

	if games[0].ID != "bouncer" || games[0].Name != "bouncer" {
		t.Errorf("games[0] = %s/%s, expected folder-name fallback bouncer", games[0].ID, games[0].Name)
	}
	if games[1].Name != "Pong" {
		t.Errorf("games[1].Name = %q, expected Pong", games[1].Name)
	}
	if games[1].Metadata["author"] != "gameland" {
		t.Errorf("Metadata = %v, expected author field", games[1].Metadata)
	}
	if filepath.Base(games[1].EntryPath()) != "game.lua" {
		t.Errorf("EntryPath() = %s, expected game.lua", games[1].EntryPath())
	}
}

func TestDiscoverCreatesMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Gameland", "games")

	games, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(games) != 0 {
		t.Errorf("Discover() = %v, expected empty", games)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("games dir should be created: %v", err)
	}
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	pong := writePackage(t, dir, "pong", `{"name": "Super Pong"}`, true)
	outside := writePackage(t, t.TempDir(), "elsewhere", `{"name": "Elsewhere"}`, true)

	tests := []struct {
		query    string
		expected string
	}{
		{"pong", "Super Pong"},
		{"super pong", "Super Pong"},
		{pong, "Super Pong"},
		{outside, "Elsewhere"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			g, err := Find(dir, tt.query)
			if err != nil {
				t.Fatalf("Find(%q) error = %v", tt.query, err)
			}
			if g.Name != tt.expected {
				t.Errorf("Find(%q).Name = %q, expected %q", tt.query, g.Name, tt.expected)
			}
		})
	}

	if _, err := Find(dir, "tetris"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Find(tetris) error = %v, expected ErrNotFound", err)
	}
}
