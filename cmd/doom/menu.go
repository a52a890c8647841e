package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-doom/internal/games/doom"
	"github.com/vovakirdan/tui-doom/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the game with the start menu",
	Long: `Start in interactive menu mode.

Pick the mode, start map and difficulty, then start a new game or
continue the quick save. After a game ends, you return to the menu.

Controls:
  Up/Down/j/k     - Navigate menu
  Left/Right/h/l  - Change setting
  Enter/Space     - Select
  Tab             - High scores
  Q               - Quit

Examples:
  doom menu
  doom menu --fps 30
  doom menu --db ./doom.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closeLog := newFileLogger("doom")
	defer closeLog()
	doom.SetLogger(logger)

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	return tui.RunSession(store, runtimeConfig(), gameOptions(""), logger)
}
