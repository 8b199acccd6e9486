// gameland is a terminal game runtime: it discovers Lua game packages in a
// games folder and runs them in the terminal, headless, or over SSH.
//
// Usage:
//
//	gameland list               - List installed games
//	gameland play <game>        - Play a game
//	gameland menu               - Pick games interactively
//	gameland history [game]     - Browse play history
//	gameland serve              - Start SSH server for remote play
//	gameland config init|show   - Write or print the configuration
//
// Global flags:
//
//	--config <path>     - Config file (YAML or TOML)
//	--games-dir <path>  - Games folder (default: <user config dir>/Gameland/games)
//	--db <path>         - Play history database
//	--fps <rate>        - Initial target frame rate
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gameland/internal/config"
	"github.com/vovakirdan/gameland/internal/logging"
	"github.com/vovakirdan/gameland/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagGamesDir string
	flagDBPath   string
	flagFPS      int
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gameland",
	Short: "Gameland - run Lua games in your terminal",
	Long: `Gameland is a small game runtime. Each game is a folder holding an
info.json metadata file and a game.lua script; the runtime owns the
entities, input and frame loop, and the script drives them through a
host API.

Available commands:
  list     - Show installed games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  history  - Browse play history
  serve    - Start SSH server for remote play
  config   - Write or print the configuration

Examples:
  gameland list
  gameland play pong
  gameland play ./my-game --headless --frames 600
  gameland menu --fps 30
  gameland serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file (YAML or TOML)")
	rootCmd.PersistentFlags().StringVar(&flagGamesDir, "games-dir", "", "Games folder (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to play history database (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Initial target frame rate (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig loads the configuration and applies the global flag overrides.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for _, override := range []struct {
		flag string
		dst  *string
	}{
		{flagGamesDir, &cfg.GamesDir},
		{flagDBPath, &cfg.DBPath},
	} {
		if override.flag == "" {
			continue
		}
		if *override.dst, err = storage.ExpandPath(override.flag); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if flagFPS != 0 {
		cfg.Engine.TargetFPS = flagFPS
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// newLogger creates the stderr logger used by non-interactive commands.
func newLogger(cfg config.Config) *log.Logger {
	logger, err := logging.New(os.Stderr, cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return logger
}

// newFileLogger creates a logger for full-screen commands, which cannot
// share the terminal with log output. It writes gameland.log next to the
// history database. The returned func closes the file.
func newFileLogger(cfg config.Config) (*log.Logger, func()) {
	path := filepath.Join(filepath.Dir(cfg.DBPath), "gameland.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot create log directory: %v\n", err)
		return newLogger(cfg), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot open log file: %v\n", err)
		return newLogger(cfg), func() {}
	}

	logger, err := logging.New(f, cfg.Log)
	if err != nil {
		f.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return logger, func() { f.Close() }
}

// openStore opens the play history. Games still run without it.
func openStore(cfg config.Config) *storage.Store {
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open history database: %v\n", err)
		return nil
	}
	return store
}

// terminalSize returns the size of stdout, or 80x24 when unknown.
func terminalSize() (int, int) {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}
