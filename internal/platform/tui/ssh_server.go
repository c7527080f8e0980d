package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/dotpop/internal/core"
	"github.com/vovakirdan/dotpop/internal/logging"
	"github.com/vovakirdan/dotpop/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key is generated at ~/.dotpop/host_key.
	HostKeyPath string

	// DBPath is opened when Store is nil.
	DBPath string

	// Store is shared with other servers. The SSH server does not close it.
	Store *storage.Store

	IdleTimeout time.Duration

	// TickRate is the simulation rate handed to every session.
	TickRate int

	// Logger defaults to a "dotpop-ssh" logger.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns the config `dotpop serve` starts from.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.dotpop/sessions.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    core.DefaultTickRate,
	}
}

// SSHServer serves the board menu to every SSH connection. Each connection
// runs its own SessionModel and therefore its own boards.
type SSHServer struct {
	config    SSHServerConfig
	server    *ssh.Server
	store     *storage.Store
	ownsStore bool
	logger    *log.Logger
	active    atomic.Int64
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.New("dotpop-ssh")
	}

	srv := &SSHServer{
		config: cfg,
		store:  cfg.Store,
		logger: logger,
	}

	if srv.store == nil {
		store, err := storage.Open(cfg.DBPath)
		if err != nil {
			// Boards still play; sessions are just not saved.
			logger.Warn("could not open sessions database", "error", err)
		} else {
			srv.store = store
			srv.ownsStore = true
		}
	}

	keyPath, err := hostKeyPath(cfg.HostKeyPath)
	if err != nil {
		srv.closeStore()
		return nil, err
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			activeterm.Middleware(),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		srv.closeStore()
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// hostKeyPath resolves the host key location and makes sure its directory
// exists. Wish generates the key on first start.
func hostKeyPath(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot get home directory: %w", err)
		}
		path = filepath.Join(home, ".dotpop", "host_key")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("cannot create host key directory: %w", err)
	}
	return path, nil
}

// teaHandler starts a session model sized to the client's terminal.
// activeterm has already rejected connections without a PTY.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}.WithDefaults()

	model := NewSessionModel(s.store, cfg, sess.User(), s.logger)
	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		active := s.active.Add(1)
		s.logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
			"active", active,
		)

		next(sess)

		active = s.active.Add(-1)
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
			"active", active,
		)
	}
}

// ActiveSessions returns the number of connected SSH sessions.
func (s *SSHServer) ActiveSessions() int {
	return int(s.active.Load())
}

// ListenAndServe starts the SSH server and blocks until SIGINT or SIGTERM.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...", "active", s.ActiveSessions())
	return s.Shutdown()
}

// Shutdown stops the server, giving open sessions ten seconds to finish.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.closeStore()
	return err
}

func (s *SSHServer) closeStore() {
	if s.ownsStore && s.store != nil {
		s.store.Close()
	}
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
