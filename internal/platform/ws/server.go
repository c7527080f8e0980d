// Package ws serves boards over WebSocket so a browser or bot can present
// them. Each connection plays its own board.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/matryer/way"

	"github.com/vovakirdan/dotpop/internal/board"
	"github.com/vovakirdan/dotpop/internal/games/dots"
	"github.com/vovakirdan/dotpop/internal/logging"
	"github.com/vovakirdan/dotpop/internal/registry"
	"github.com/vovakirdan/dotpop/internal/storage"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Config holds configuration for the WebSocket server.
type Config struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// Store receives finished sessions. May be nil.
	Store *storage.Store

	// Logger receives server events. Defaults to a "dotpop-ws" logger.
	Logger *log.Logger

	// Seed fixes the first deal of every connection when non-zero.
	// A "seed" query parameter overrides it.
	Seed int64
}

// Server routes HTTP requests and owns the live connections.
type Server struct {
	config   Config
	router   *way.Router
	upgrader websocket.Upgrader
	logger   *log.Logger
	http     *http.Server

	mu      sync.Mutex
	clients map[*client]struct{}
	wg      sync.WaitGroup
}

// playable is a game that can be driven by board coordinates.
type playable interface {
	registry.Game
	Select(x, y int) board.Report
	Board() *board.Board
}

// NewServer creates a server; call ListenAndServe or mount Handler.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.New("dotpop-ws")
	}

	s := &Server{
		config: cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Presentation clients are served from anywhere.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger:  logger,
		clients: make(map[*client]struct{}),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router = way.NewRouter()
	s.router.HandleFunc("GET", "/presets", s.handlePresets())
	s.router.HandleFunc("GET", "/play/:preset", s.handlePlay())
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handlePresets() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		presets := dots.Presets()
		out := make([]PresetInfo, 0, len(presets))
		for _, p := range presets {
			out = append(out, PresetInfo{
				ID:      p.ID,
				Title:   p.Title,
				Width:   p.Width,
				Height:  p.Height,
				Palette: p.Palette,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(out); err != nil {
			s.logger.Warn("could not write presets", "error", err)
		}
	}
}

func (s *Server) handlePlay() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		preset := way.Param(r.Context(), "preset")

		game, err := newGame(preset)
		if errors.Is(err, registry.ErrUnknownGame) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		seed, err := s.seedFor(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		conn, err := s.upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade has already replied to the client.
			s.logger.Warn("websocket upgrade failed", "preset", preset, "error", err)
			return
		}

		player := playerFor(r)
		logger := s.logger.With("preset", preset, "player", player)
		c := &client{
			conn:     conn,
			preset:   preset,
			game:     game,
			recorder: storage.NewRecorder(s.config.Store, logger, preset, player, storage.SourceWS),
			seeds:    rand.New(rand.NewSource(seed)),
			logger:   logger,
		}

		if !s.track(c) {
			conn.Close()
			return
		}
		defer s.untrack(c)

		logger.Info("connection opened", "remote", r.RemoteAddr)
		c.run(seed)
		logger.Info("connection closed", "remote", r.RemoteAddr)
	}
}

// newGame creates a fresh game for a registered preset.
func newGame(preset string) (playable, error) {
	g, err := registry.Create(preset)
	if err != nil {
		return nil, err
	}
	p, ok := g.(playable)
	if !ok {
		return nil, fmt.Errorf("game %q cannot be played over websocket", preset)
	}
	return p, nil
}

// seedFor picks the first deal's seed: query parameter, then config, then time.
func (s *Server) seedFor(r *http.Request) (int64, error) {
	if v := r.URL.Query().Get("seed"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid seed %q", v)
		}
		return seed, nil
	}
	if s.config.Seed != 0 {
		return s.config.Seed, nil
	}
	return time.Now().UnixNano(), nil
}

// playerFor names the player from the "player" query parameter or the
// remote host.
func playerFor(r *http.Request) string {
	if p := r.URL.Query().Get("player"); p != "" {
		return p
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// track registers a live connection. It fails once shutdown has begun.
func (s *Server) track(c *client) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.clients == nil {
		return false
	}
	s.clients[c] = struct{}{}
	s.wg.Add(1)
	return true
}

func (s *Server) untrack(c *client) {
	s.mu.Lock()
	if s.clients != nil {
		delete(s.clients, c)
	}
	s.mu.Unlock()
	s.wg.Done()
}

// ListenAndServe serves on the configured address until Shutdown.
func (s *Server) ListenAndServe() error {
	s.mu.Lock()
	s.http = &http.Server{
		Addr:              s.config.Address,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv := s.http
	s.mu.Unlock()

	s.logger.Info("starting websocket server", "address", s.config.Address)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("websocket server: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests, closes live connections and waits for
// their sessions to be saved.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.http
	clients := s.clients
	s.clients = nil
	s.mu.Unlock()

	var err error
	if srv != nil {
		err = srv.Shutdown(ctx)
	}

	// Hijacked connections are not tracked by http.Server.
	for c := range clients {
		c.close()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return err
	case <-ctx.Done():
		return errors.Join(err, ctx.Err())
	}
}

// Addr returns the server's listen address string.
func (s *Server) Addr() string {
	return s.config.Address
}
