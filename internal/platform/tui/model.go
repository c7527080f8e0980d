package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dotpop/internal/core"
	"github.com/vovakirdan/dotpop/internal/registry"
	"github.com/vovakirdan/dotpop/internal/storage"
)

// resizer is implemented by games that can adapt to a new window size
// without dealing a new board.
type resizer interface {
	Resize(w, h int)
}

// Model is the Bubble Tea model for playing one board.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	recorder   *storage.Recorder
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	logger     *log.Logger
	quitting   bool
	backToMenu bool
	exitOnBack bool // Back leaves the program when there is no menu to return to
}

// NewModel creates a new Bubble Tea model for the given game.
// Finished runs are stored under player with the given source.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger, player, source string) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	cfg = cfg.WithDefaults()

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		recorder:   storage.NewRecorder(store, logger, game.ID(), player, source),
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		logger:     logger,
	}
}

// Init initializes the model and deals the first board.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keyMapper.MapMouseToFrame(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.recorder.Finish(m.gameState)
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) {
		m.recorder.Finish(m.gameState)
		if m.exitOnBack {
			m.quitting = true
			return m, tea.Quit
		}
		m.backToMenu = true
		return m, nil
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	prev := m.gameState

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// A restart deals a new board and zeroes the stats; the old run is over.
	if m.inputFrame.Has(core.ActionRestart) && prev.Selections > 0 && m.gameState.Selections == 0 {
		m.recorder.Finish(prev)
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".dotpop", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil && m.logger != nil {
		m.logger.Warn("could not save screenshot", "path", path, "error", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// State returns the last game state seen by the model.
func (m Model) State() core.GameState {
	return m.gameState
}

// localPlayer names the player of a terminal session.
func localPlayer() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "local"
}

// Run plays a single board locally until the player quits.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(game, store, cfg, logger, localPlayer(), storage.SourceLocal)
	model.exitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}

// RunGame plays a board picked from the menu. It reports whether the
// player asked to return to the menu.
func RunGame(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) (back bool, err error) {
	model := NewModel(game, store, cfg, logger, localPlayer(), storage.SourceLocal)

	p := tea.NewProgram(
		gameUntilBack{model},
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if g, ok := final.(gameUntilBack); ok {
		return g.BackToMenu(), nil
	}
	return false, nil
}

// gameUntilBack ends the program when the player asks for the menu.
type gameUntilBack struct {
	Model
}

func (g gameUntilBack) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := g.Model.Update(msg)
	if m, ok := next.(Model); ok {
		g.Model = m
	}
	if g.BackToMenu() {
		return g, tea.Quit
	}
	return g, cmd
}
