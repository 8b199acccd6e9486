package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gameland/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed games",
	Long:  `Shows every game package found in the games folder.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	cfg := loadConfig()

	games, err := registry.Discover(cfg.GamesDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if len(games) == 0 {
		fmt.Println("No games installed.")
		fmt.Println()
		fmt.Printf("Place a game folder in: %s\n", cfg.GamesDir)
		return
	}

	fmt.Println("Installed games:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Name")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "----")

	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Name)
	}

	fmt.Println()
	fmt.Println("Run 'gameland play <id>' to play a game.")
}
