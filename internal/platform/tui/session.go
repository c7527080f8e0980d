package tui

import (
	"math/rand"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dotpop/internal/core"
	"github.com/vovakirdan/dotpop/internal/registry"
	"github.com/vovakirdan/dotpop/internal/storage"
)

// SessionModel runs one SSH connection: menu -> board -> menu, with the
// history screen reachable from the menu. Every board picked from the menu
// is dealt from a new seed drawn from the session's own source.
type SessionModel struct {
	store     *storage.Store
	config    core.RuntimeConfig
	seeds     *rand.Rand
	username  string
	logger    *log.Logger
	menu      MenuModel
	history   *HistoryModel
	gameModel *Model
	quitting  bool
}

// NewSessionModel creates a session for username. cfg.Seed seeds the
// session, so two sessions with the same seed see the same boards.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, username string, logger *log.Logger) SessionModel {
	return SessionModel{
		store:    store,
		config:   cfg,
		seeds:    rand.New(rand.NewSource(cfg.Seed)),
		username: username,
		logger:   logger,
		menu:     NewMenuModel(store, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes the message to whichever screen is open.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch {
	case m.gameModel != nil:
		return m.updateGame(msg)
	case m.history != nil:
		return m.updateHistory(msg)
	}
	return m.updateMenu(msg)
}

// toMenu closes the board or history screen and shows a fresh menu, so
// best scores include the run that just ended.
func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.gameModel = nil
	m.history = nil
	m.menu = NewMenuModel(m.store, m.config)
	return m, m.menu.Init()
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	// The menu quits its own program on a choice; here the session goes on,
	// so that command is dropped.
	result := m.menu.Result()
	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case result.WantsHistory:
		history := NewHistoryModel(m.store, m.config.ScreenW, m.config.ScreenH, "")
		m.history = &history
		return m, m.history.Init()

	case result.GameID != "":
		return m.startBoard(result.GameID)
	}

	return m, cmd
}

func (m SessionModel) startBoard(id string) (tea.Model, tea.Cmd) {
	game, err := registry.Create(id)
	if err != nil {
		m.logger.Error("could not create board", "board", id, "user", m.username, "error", err)
		return m.toMenu()
	}

	cfg := m.config
	cfg.Seed = m.seeds.Int63()
	m.logger.Debug("board started", "board", id, "user", m.username, "seed", cfg.Seed)

	gameModel := NewModel(game, m.store, cfg, m.logger, m.username, storage.SourceSSH)
	m.gameModel = &gameModel
	return m, m.gameModel.Init()
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.gameModel = &gameModel
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.gameModel.BackToMenu() {
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.history.Update(msg)
	if history, ok := newModel.(HistoryModel); ok {
		m.history = &history
	}

	if m.history.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.history.IsGoingBack() {
		return m.toMenu()
	}
	return m, cmd
}

// View renders the open screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch {
	case m.gameModel != nil:
		return m.gameModel.View()
	case m.history != nil:
		return m.history.View()
	}
	return m.menu.View()
}
