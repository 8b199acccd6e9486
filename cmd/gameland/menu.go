package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gameland/internal/platform/tui"
	"github.com/vovakirdan/gameland/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start gameland with a game picker menu",
	Long: `Start gameland in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game.
After a game ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu (wraps around)
  Enter/Space  - Play selected game
  Tab          - Play history
  Esc/Q        - Quit

Examples:
  gameland menu
  gameland menu --fps 30
  gameland menu --games-dir ./games`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	cfg := loadConfig()

	logger, closeLog := newFileLogger(cfg)
	defer closeLog()

	store := openStore(cfg)
	if store != nil {
		defer store.Close()
	}

	for {
		games, err := registry.Discover(cfg.GamesDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}

		menuResult, err := tui.RunMenu(games, cfg.GamesDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}

		if menuResult.Quit {
			return
		}

		if menuResult.WantsHistory {
			width, height := terminalSize()
			goBack, histErr := tui.RunHistory(store, games, "", width, height)
			if histErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", histErr)
			}
			if goBack {
				continue // Back to menu
			}
			return // User quit from history
		}

		if menuResult.Game == nil {
			return
		}

		width, height := terminalSize()
		_, err = tui.RunGame(*menuResult.Game, tui.GameOptions{
			Config: cfg,
			Store:  store,
			Logger: logger,
			Width:  width,
			Height: height,
		})
		if err != nil {
			logger.Error("game failed", "game", menuResult.Game.ID, "err", err)
			fmt.Fprintf(os.Stderr, "Error running %s: %v\n", menuResult.Game.Name, err)
		}

		// Loop back to menu
	}
}
