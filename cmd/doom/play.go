package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-doom/internal/games/doom"
	"github.com/vovakirdan/tui-doom/internal/platform/tui"
	"github.com/vovakirdan/tui-doom/internal/storage"
)

var (
	flagMode string
	flagSlot int
)

var playCmd = &cobra.Command{
	Use:   "play [map]",
	Short: "Play a map",
	Long: `Start playing. The campaign starts at the given map (a built-in name
or a path to a YAML/JSON level file) and continues through the later
built-in maps. Survival mode plays endless waves in a generated arena.

Controls:
  WASD/Arrows     - Move (Shift to sprint)
  Space/F/Mouse   - Fire
  R               - Reload
  1-4, [ ]        - Select weapon
  F5/F9           - Quick save / quick load
  P/Esc           - Pause
  R/Enter         - Restart (after game over)
  Q/Ctrl+C        - Quit

Difficulty options:
  easy      - Weaker, slower enemies
  normal    - Default stats
  hard      - Tougher enemies
  nightmare - Toughest enemies
  fixed     - Default stats, no wave progression

Examples:
  doom play
  doom play e1m2 --difficulty hard
  doom play ./my-level.yaml
  doom play --mode survival --seed 42
  doom play --slot 2`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMode, "mode", "campaign", "Game mode: campaign, survival")
	playCmd.Flags().IntVar(&flagSlot, "slot", 0, "Continue from a save slot (1-5)")
}

// gameIDForMode maps a --mode value to a registry id.
func gameIDForMode(mode string) (string, error) {
	switch mode {
	case "", "campaign", "doom":
		return "doom", nil
	case "survival", "doom_survival":
		return "doom_survival", nil
	}
	return "", fmt.Errorf("unknown mode %q (campaign, survival)", mode)
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID, err := gameIDForMode(flagMode)
	if err != nil {
		return err
	}
	if flagSlot != 0 && (flagSlot < 1 || flagSlot > storage.MaxSlots) {
		return fmt.Errorf("slot must be between 1 and %d", storage.MaxSlots)
	}

	mapName := ""
	if len(args) == 1 {
		mapName = args[0]
	}

	logger, closeLog := newFileLogger("doom")
	defer closeLog()
	doom.SetLogger(logger)

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	game, rec, err := tui.StartGame(store, tui.MenuSelection{
		GameID:   gameID,
		Options:  gameOptions(mapName),
		LoadSlot: flagSlot,
	})
	if err != nil {
		return fmt.Errorf("cannot start game: %w", err)
	}

	logger.Info("game started", "game", game.ID(), "map", mapName, "slot", flagSlot)
	if _, err := tui.Run(game, store, runtimeConfig(), tui.WithLoad(rec), tui.WithLogger(logger)); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
