package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vovakirdan/tui-doom/internal/games/doom"
	"github.com/vovakirdan/tui-doom/internal/platform/tui"
	"github.com/vovakirdan/tui-doom/internal/telemetry"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagMetricsAddr string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the start menu.
Scores and save slots are stored per-server (all users share them).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.tui-doom/host_key

With --metrics, Prometheus metrics (tick duration, live enemies, kills,
deaths, sessions) are served on /metrics at that address.

Examples:
  doom serve                           # Listen on :23234 with auto-generated key
  doom serve --ssh :2222               # Listen on port 2222
  doom serve --host-key ./my_host_key  # Use specific host key
  doom serve --metrics :9090           # Expose metrics

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagMetricsAddr, "metrics", "", "Metrics address (host:port), disabled if empty")
}

func runServe(_ *cobra.Command, _ []string) error {
	logger := newLogger("doom-serve")
	doom.SetLogger(logger.WithPrefix("doom"))

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = viper.GetString(keyDB)
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = viper.GetInt(keyFPS)
	cfg.Options = gameOptions("")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var recorder *telemetry.Recorder
	if flagMetricsAddr != "" {
		recorder = telemetry.NewRecorder()
		go func() {
			if err := recorder.Serve(ctx, flagMetricsAddr); err != nil {
				logger.Error("metrics server stopped", "addr", flagMetricsAddr, "err", err)
			}
		}()
		logger.Info("serving metrics", "addr", flagMetricsAddr)
	}

	server, err := tui.NewSSHServer(cfg, recorder)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	fmt.Printf("Starting doom SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
