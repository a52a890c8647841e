package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vovakirdan/tui-doom/internal/storage"
)

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "List save slots",
	Long: `Show the save slots and what each holds.

Examples:
  doom saves
  doom saves delete 2`,
	Args: cobra.NoArgs,
	RunE: runSaves,
}

var savesDeleteCmd = &cobra.Command{
	Use:   "delete <slot>",
	Short: "Delete a save slot",
	Args:  cobra.ExactArgs(1),
	RunE:  runSavesDelete,
}

func init() {
	savesCmd.AddCommand(savesDeleteCmd)
}

func runSaves(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(viper.GetString(keyDB))
	if err != nil {
		return fmt.Errorf("error opening database: %w", err)
	}
	defer store.Close()

	saves, err := store.ListSaves()
	if err != nil {
		return err
	}

	bySlot := make(map[int]storage.SaveRecord, len(saves))
	for _, s := range saves {
		bySlot[s.Slot] = s
	}

	fmt.Printf("  %-4s  %-8s  %-6s  %-5s  %-5s  %-8s  %s\n", "Slot", "Scene", "Score", "HP", "Armor", "Weapon", "Saved")
	fmt.Printf("  %-4s  %-8s  %-6s  %-5s  %-5s  %-8s  %s\n", "----", "-----", "-----", "--", "-----", "------", "-----")
	for slot := 1; slot <= storage.MaxSlots; slot++ {
		s, ok := bySlot[slot]
		if !ok {
			fmt.Printf("  %-4d  %s\n", slot, "empty")
			continue
		}
		fmt.Printf("  %-4d  %-8s  %-6d  %-5.0f  %-5.0f  %-8s  %s\n",
			slot, s.Scene, s.Score, s.Player.Health, s.Player.Armor, s.Player.CurrentWeapon,
			s.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func runSavesDelete(_ *cobra.Command, args []string) error {
	slot, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid slot %q", args[0])
	}

	store, err := storage.Open(viper.GetString(keyDB))
	if err != nil {
		return fmt.Errorf("error opening database: %w", err)
	}
	defer store.Close()

	if err := store.DeleteSave(slot); err != nil {
		return err
	}
	fmt.Printf("Deleted slot %d\n", slot)
	return nil
}
