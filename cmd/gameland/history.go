package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gameland/internal/platform/tui"
	"github.com/vovakirdan/gameland/internal/registry"
	"github.com/vovakirdan/gameland/internal/storage"
)

var (
	flagPlain bool
	flagLimit int
	flagClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history [game]",
	Short: "Browse play history",
	Long: `Show recorded play sessions, optionally for a single game.

By default an interactive browser opens. With --plain the most recent
sessions are printed instead.

Examples:
  gameland history
  gameland history pong
  gameland history pong --plain --limit 5
  gameland history pong --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print sessions instead of opening the browser")
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Sessions to print with --plain")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the history of the given game")
}

func runHistory(_ *cobra.Command, args []string) {
	cfg := loadConfig()

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening history database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	games, err := registry.Discover(cfg.GamesDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	gameID := ""
	if len(args) == 1 {
		gameID = args[0]
		if g, err := registry.Find(cfg.GamesDir, args[0]); err == nil {
			gameID = g.ID
		}
	}

	switch {
	case flagClear:
		if gameID == "" {
			fmt.Fprintln(os.Stderr, "Error: --clear needs a game")
			os.Exit(1)
		}
		if err := store.ClearSessions(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared history of %s.\n", gameID)

	case flagPlain:
		printHistory(store, gameID)

	default:
		width, height := terminalSize()
		if _, err := tui.RunHistory(store, games, gameID, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

func printHistory(store *storage.Store, gameID string) {
	sessions, err := store.RecentSessions(gameID, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving history: %v\n", err)
		os.Exit(1)
	}

	if gameID == "" {
		fmt.Println("Play History")
	} else {
		fmt.Printf("Play History - %s\n", gameID)
	}
	fmt.Println()

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		return
	}

	fmt.Printf("  %-16s  %-16s  %-10s  %8s  %7s  %6s  %s\n",
		"Date", "Game", "Player", "Time", "Frames", "Errors", "Exit")
	fmt.Printf("  %-16s  %-16s  %-10s  %8s  %7s  %6s  %s\n",
		"----", "----", "------", "----", "------", "------", "----")
	for _, s := range sessions {
		fmt.Printf("  %-16s  %-16s  %-10s  %8s  %7d  %6d  %s\n",
			s.CreatedAt.Local().Format("2006-01-02 15:04"),
			s.GameName, s.Player, s.Duration.Round(100*time.Millisecond),
			s.Frames, s.ScriptErrors, s.ExitReason)
	}

	if gameID == "" {
		return
	}
	stats, err := store.GetGameStats(gameID)
	if err == nil && stats.Plays > 0 {
		fmt.Println()
		fmt.Printf("Plays: %d  Total: %s  Longest: %s\n",
			stats.Plays, stats.TotalPlaytime.Round(time.Second), stats.LongestSession.Round(time.Second))
	}
}
