package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gameland/internal/config"
	"github.com/vovakirdan/gameland/internal/engine"
	"github.com/vovakirdan/gameland/internal/platform/headless"
	"github.com/vovakirdan/gameland/internal/platform/tui"
	"github.com/vovakirdan/gameland/internal/registry"
	"github.com/vovakirdan/gameland/internal/script"
	"github.com/vovakirdan/gameland/internal/storage"
)

var (
	flagHeadless bool
	flagFrames   int
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game. <game> is a game ID or name from
'gameland list', or a path to a game folder.

Controls:
  Game keys   - Defined by the game
  F12         - Save a text screenshot to ~/.gameland/screenshots
  Ctrl+C      - Quit

With --headless the game runs without a terminal UI against a scripted
platform that produces no input, which is useful to smoke-test scripts.

Examples:
  gameland play pong
  gameland play ./games/pong
  gameland play pong --fps 30
  gameland play pong --headless --frames 600`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagHeadless, "headless", false, "Run without a terminal UI")
	playCmd.Flags().IntVar(&flagFrames, "frames", 600, "Frames to run in headless mode (0 = until interrupted)")
}

func runPlay(_ *cobra.Command, args []string) {
	if code := playGame(args[0]); code != 0 {
		os.Exit(code)
	}
}

// playGame runs the game named by query and returns the process exit code.
// It returns instead of exiting so the log file and store are closed first.
func playGame(query string) int {
	cfg := loadConfig()

	game, err := registry.Find(cfg.GamesDir, query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, registry.ErrNotFound) {
			fmt.Fprintln(os.Stderr, "Run 'gameland list' to see installed games.")
		}
		return 1
	}

	if flagHeadless {
		return runHeadless(cfg, game)
	}

	logger, closeLog := newFileLogger(cfg)
	defer closeLog()

	store := openStore(cfg)
	if store != nil {
		defer store.Close()
	}
	width, height := terminalSize()

	stats, err := tui.RunGame(game, tui.GameOptions{
		Config: cfg,
		Store:  store,
		Logger: logger,
		Width:  width,
		Height: height,
	})
	if err != nil {
		logger.Error("game failed", "game", game.ID, "err", err)
		reportPlayError(err)
		return 1
	}
	fmt.Printf("%s: %d frames, %d script errors\n", game.Name, stats.Frames, stats.ScriptErrors)
	return 0
}

// runHeadless runs game against the headless platform and records the run.
func runHeadless(cfg config.Config, game registry.Game) int {
	logger := newLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sched, err := engine.Load(game, headless.New(), cfg.Runtime(), engine.Options{
		Logger:    logger,
		MaxFrames: flagFrames,
	})
	if err != nil {
		reportPlayError(err)
		return 1
	}

	stats, err := sched.Run(ctx)
	if err != nil {
		logger.Warn("platform close failed", "err", err)
	}

	if store := openStore(cfg); store != nil {
		if _, err := store.SaveSession(storage.Session{
			GameID:       game.ID,
			GameName:     game.Name,
			Player:       "headless",
			Frames:       stats.Frames,
			ScriptErrors: stats.ScriptErrors,
			Duration:     stats.Duration,
			ExitReason:   string(stats.ExitReason),
		}); err != nil {
			logger.Warn("could not save play session", "err", err)
		}
		store.Close()
	}

	fmt.Printf("%s: %d frames, %d script errors, exit %s\n",
		game.Name, stats.Frames, stats.ScriptErrors, stats.ExitReason)
	return 0
}

// reportPlayError prints err to stderr.
func reportPlayError(err error) {
	var loadErr *script.LoadError
	if errors.As(err, &loadErr) {
		fmt.Fprintf(os.Stderr, "Error: game failed to load: %v\n", loadErr)
	} else {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
	}
}
