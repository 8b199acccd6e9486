// Package registry discovers game packages on disk.
// A game package is a folder holding an info.json metadata file and a
// game.lua entry script.
package registry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"

	"github.com/vovakirdan/gameland/internal/script"
)

// InfoFile is the metadata file every game package must provide.
const InfoFile = "info.json"

// Game describes one installed game package. It is read-only to the runtime.
type Game struct {
	// ID is the folder base name, used for CLI lookup and play history.
	ID string

	// Name is info.json's "name", or the folder name when absent.
	Name string

	// Folder is the absolute path of the package.
	Folder string

	// Metadata is the full info.json object.
	Metadata map[string]any
}

// EntryPath returns the path of the game's entry script.
func (g Game) EntryPath() string {
	return filepath.Join(g.Folder, script.EntryFile)
}

// Description returns info.json's "description" field, if any.
func (g Game) Description() string {
	s, _ := g.Metadata["description"].(string)
	return s
}

// Load reads the game package in folder.
func Load(folder string) (Game, error) {
	abs, err := filepath.Abs(folder)
	if err != nil {
		return Game{}, fmt.Errorf("registry: cannot resolve %s: %w", folder, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return Game{}, fmt.Errorf("registry: cannot open %s: %w", folder, err)
	}
	if !info.IsDir() {
		return Game{}, fmt.Errorf("registry: %s is not a folder", folder)
	}

	data, err := os.ReadFile(filepath.Join(abs, InfoFile))
	if err != nil {
		return Game{}, fmt.Errorf("registry: cannot read %s: %w", InfoFile, err)
	}

	var meta map[string]any
	if err := json.Unmarshal(data, &meta); err != nil {
		return Game{}, fmt.Errorf("registry: cannot parse %s in %s: %w", InfoFile, folder, err)
	}
	if meta == nil {
		meta = map[string]any{}
	}

	id := filepath.Base(abs)
	name, _ := meta["name"].(string)
	if strings.TrimSpace(name) == "" {
		name = id
	}

	return Game{
		ID:       id,
		Name:     name,
		Folder:   abs,
		Metadata: meta,
	}, nil
}

// Discover lists the game packages directly under dir, sorted by folder
// name. dir is created if missing. Folders without both an info.json and
// an entry script, or with unreadable metadata, are skipped.
func Discover(dir string) ([]Game, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("registry: cannot create games dir: %w", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("registry: cannot list games dir: %w", err)
	}

	games := make([]Game, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		folder := filepath.Join(dir, entry.Name())
		if !exists(filepath.Join(folder, InfoFile)) || !exists(filepath.Join(folder, script.EntryFile)) {
			continue
		}
		game, err := Load(folder)
		if err != nil {
			continue
		}
		games = append(games, game)
	}
	return games, nil
}

// ErrNotFound is returned by Find when no game matches.
var ErrNotFound = errors.New("registry: game not found")

// Find resolves query to a game. A query naming an existing folder is
// loaded directly; otherwise it is matched against the IDs and then the
// names (case-insensitive) of the games discovered in dir.
func Find(dir, query string) (Game, error) {
	if info, err := os.Stat(query); err == nil && info.IsDir() {
		return Load(query)
	}

	games, err := Discover(dir)
	if err != nil {
		return Game{}, err
	}
	for _, g := range games {
		if g.ID == query {
			return g, nil
		}
	}
	for _, g := range games {
		if strings.EqualFold(g.Name, query) {
			return g, nil
		}
	}
	return Game{}, fmt.Errorf("%w: %q", ErrNotFound, query)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
