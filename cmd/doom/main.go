// doom is a top-down Doom-style shooter for the terminal.
//
// Usage:
//
//	doom list                  - List game modes and built-in maps
//	doom play [map]            - Play the campaign (or --mode survival)
//	doom menu                  - Start menu to pick mode, map and difficulty
//	doom serve                 - Start SSH server for remote play
//	doom scores [mode]         - Show high scores
//	doom saves                 - List or delete save slots
//	doom sim                   - Run the simulation headless
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.tui-doom/doom.db)
//	--config <path>       - Game config YAML
//	--difficulty <name>   - easy, normal, hard, nightmare, fixed
//	--log-level <level>   - debug, info, warn, error
//
// Every global flag can also be set through a TUIDOOM_* environment variable
// (TUIDOOM_LOG_LEVEL=debug) or ~/.tui-doom/settings.yaml.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-doom/internal/config"
	"github.com/vovakirdan/tui-doom/internal/core"
	"github.com/vovakirdan/tui-doom/internal/games/doom"
	"github.com/vovakirdan/tui-doom/internal/logging"
	"github.com/vovakirdan/tui-doom/internal/storage"
)

// Settings keys shared by flags, environment and settings file.
const (
	keyFPS        = "fps"
	keySeed       = "seed"
	keyDB         = "db"
	keyConfig     = "config"
	keyDifficulty = "difficulty"
	keyLogLevel   = "log-level"
)

const envPrefix = "TUIDOOM"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "doom",
	Short: "TUI Doom - a top-down shooter in your terminal",
	Long: `TUI Doom is a top-down, tile-based shooter played in the terminal.

Available commands:
  list     - Show game modes and built-in maps
  play     - Play a map directly
  menu     - Interactive start menu
  serve    - Start SSH server for remote play
  scores   - View high scores
  saves    - Manage save slots
  sim      - Run the simulation without a terminal

Examples:
  doom list
  doom play e1m2 --difficulty hard
  doom play --mode survival
  doom menu
  doom serve --ssh :2222 --metrics :9090
  doom sim --ticks 3600 --seed 7`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return loadSettings()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.Int(keyFPS, 60, "Tick rate (frames per second)")
	flags.Int64(keySeed, 0, "RNG seed (0 = random based on time)")
	flags.String(keyDB, "~/.tui-doom/doom.db", "Path to scores and saves database")
	flags.String(keyConfig, "", "Path to custom game config YAML")
	flags.String(keyDifficulty, "", "Difficulty preset: easy, normal, hard, nightmare, fixed")
	flags.String(keyLogLevel, "info", "Log level: debug, info, warn, error")

	if err := viper.BindPFlags(flags); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(savesCmd)
	rootCmd.AddCommand(simCmd)
}

// loadSettings layers ~/.tui-doom/settings.yaml and TUIDOOM_* variables
// under the command line flags.
func loadSettings() error {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName("settings")
	viper.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".tui-doom"))
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading settings file: %w", err)
		}
	}

	if d := viper.GetString(keyDifficulty); d != "" && config.ParsePreset(d) == "" {
		return fmt.Errorf("unknown difficulty %q", d)
	}
	return nil
}

// newLogger returns a stderr logger at the configured level.
func newLogger(prefix string) *log.Logger {
	l := logging.New(prefix)
	if !logging.SetLevel(l, viper.GetString(keyLogLevel)) {
		l.Warn("unknown log level, keeping info", "level", viper.GetString(keyLogLevel))
	}
	return l
}

// newFileLogger logs to ~/.tui-doom/doom.log for commands where the TUI owns
// the terminal. The returned func closes the file.
func newFileLogger(prefix string) (*log.Logger, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return logging.Discard(), func() {}
	}
	dir := filepath.Join(home, ".tui-doom")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return logging.Discard(), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "doom.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return logging.Discard(), func() {}
	}
	l := logging.NewWriter(f, prefix)
	logging.SetLevel(l, viper.GetString(keyLogLevel))
	return l, func() { f.Close() }
}

// gameOptions builds the doom options from the global settings.
func gameOptions(mapName string) doom.Options {
	return doom.Options{
		ConfigPath: viper.GetString(keyConfig),
		Difficulty: config.ParsePreset(viper.GetString(keyDifficulty)),
		Map:        mapName,
	}
}

// runtimeConfig sizes the screen from the terminal, falling back to 80x24.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: viper.GetInt(keyFPS),
		Seed:     viper.GetInt64(keySeed),
	}
}

// openStore opens the database. A failure is logged and play continues
// without scores and saves.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(viper.GetString(keyDB))
	if err != nil {
		logger.Warn("could not open database, scores and saves disabled", "db", viper.GetString(keyDB), "err", err)
		return nil
	}
	return store
}
