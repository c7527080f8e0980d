package main

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dotpop/internal/logging"
	"github.com/vovakirdan/dotpop/internal/platform/tui"
	"github.com/vovakirdan/dotpop/internal/platform/ws"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagWSAddr      string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dotpop SSH server",
	Long: `Start an SSH server that lets users connect and play boards.

Each SSH connection gets its own session with a board picker menu.
Sessions are stored per-server (all users share the same history).

With --ws, a WebSocket server is started as well:
  GET /presets          - JSON list of presets
  GET /play/<preset>    - WebSocket; send {"type":"select","x":1,"y":2}

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.dotpop/host_key

Examples:
  dotpop serve                           # Listen on :23234 with auto-generated key
  dotpop serve --ssh :2222               # Listen on port 2222
  dotpop serve --ws :8080                # Also serve WebSocket clients
  dotpop serve --db ./sessions.db        # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagWSAddr, "ws", "", "WebSocket server address (host:port), disabled if empty")
}

func runServe(_ *cobra.Command, _ []string) {
	store := openStore()

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		Store:       store,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		TickRate:    flagFPS,
		Logger:      logging.New("dotpop-ssh"),
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fatal(logger, "could not create SSH server", err)
	}

	var wsServer *ws.Server
	if flagWSAddr != "" {
		wsServer = ws.NewServer(ws.Config{
			Address: flagWSAddr,
			Store:   store,
			Logger:  logging.New("dotpop-ws"),
			Seed:    flagSeed,
		})
		go func() {
			if err := wsServer.ListenAndServe(); err != nil {
				logger.Error("websocket server stopped", "error", err)
			}
		}()
	}

	fmt.Printf("Starting dotpop SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", port(cfg.Address))
	if wsServer != nil {
		fmt.Printf("WebSocket clients: ws://localhost:%s/play/classic\n", port(flagWSAddr))
	}
	fmt.Println("Press Ctrl+C to stop")

	// Blocks until SIGINT/SIGTERM
	sshErr := server.ListenAndServe()

	if wsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := wsServer.Shutdown(ctx); err != nil {
			logger.Warn("websocket shutdown", "error", err)
		}
		cancel()
	}

	if store != nil {
		store.Close()
	}

	if sshErr != nil {
		fatal(logger, "server error", sshErr)
	}
}

// port returns the port part of a listen address.
func port(addr string) string {
	if _, p, err := net.SplitHostPort(addr); err == nil {
		return p
	}
	return addr
}
