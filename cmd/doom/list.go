package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-doom/internal/maps"
	"github.com/vovakirdan/tui-doom/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List game modes and built-in maps",
	Long:  `Shows the registered game modes and the maps bundled with the game.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	fmt.Println("Game modes:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	fmt.Println()
	fmt.Println("Maps:")
	fmt.Println()
	for _, name := range maps.List() {
		m, err := maps.Get(name)
		if err != nil {
			continue
		}
		fmt.Printf("  %-6s  %d enemies, %d items\n", name, len(m.Enemies), len(m.Items))
	}

	fmt.Println()
	fmt.Println("Run 'doom play <map>' or 'doom play --mode survival' to play.")
}
