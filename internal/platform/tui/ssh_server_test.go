package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/dotpop/internal/board"
	"github.com/vovakirdan/dotpop/internal/games/dots"
	"github.com/vovakirdan/dotpop/internal/logging"
)

func updateSession(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	s, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return s
}

func TestSessionMenuToBoardAndBack(t *testing.T) {
	m := NewSessionModel(nil, testConfig(), "ana", logging.Discard())

	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.gameModel == nil {
		t.Fatal("enter should start a board")
	}
	if m.quitting {
		t.Fatal("starting a board should not end the session")
	}

	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.gameModel != nil {
		t.Fatal("esc should return to the menu")
	}
	if m.View() == "" {
		t.Error("menu should render after returning")
	}
}

func TestSessionHistory(t *testing.T) {
	m := NewSessionModel(nil, testConfig(), "ana", logging.Discard())

	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.history == nil {
		t.Fatal("tab should open history")
	}

	m = updateSession(t, m, runeKey('b'))
	if m.history != nil {
		t.Fatal("b should close history")
	}

	m = updateSession(t, m, runeKey('q'))
	if !m.quitting {
		t.Error("q in the menu should end the session")
	}
}

func TestSessionResizeReachesBoard(t *testing.T) {
	m := NewSessionModel(nil, testConfig(), "ana", logging.Discard())
	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = updateSession(t, m, tea.WindowSizeMsg{Width: 120, Height: 50})

	if m.config.ScreenW != 120 || m.gameModel.config.ScreenW != 120 {
		t.Error("resize should reach the session and the board")
	}
}

func TestSessionDealsNewBoardEachTime(t *testing.T) {
	m := NewSessionModel(nil, testConfig(), "ana", logging.Discard())

	boardOf := func(m SessionModel) *board.Board {
		t.Helper()
		g, ok := m.gameModel.game.(*dots.Game)
		if !ok {
			t.Fatalf("board is %T", m.gameModel.game)
		}
		return g.Board()
	}

	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	first := boardOf(m)
	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	second := boardOf(m)

	if first.Equal(second) {
		t.Error("each board picked from the menu should get its own seed")
	}

	// Same session seed, same sequence of boards.
	again := NewSessionModel(nil, testConfig(), "bo", logging.Discard())
	again = updateSession(t, again, tea.KeyMsg{Type: tea.KeyEnter})
	if !boardOf(again).Equal(first) {
		t.Error("sessions with the same seed should deal the same first board")
	}
}

func TestDefaultSSHServerConfig(t *testing.T) {
	cfg := DefaultSSHServerConfig()
	if cfg.Address != ":23234" {
		t.Errorf("Address = %q", cfg.Address)
	}
	if cfg.DBPath != "~/.dotpop/sessions.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.TickRate != 60 {
		t.Errorf("TickRate = %d", cfg.TickRate)
	}
}
