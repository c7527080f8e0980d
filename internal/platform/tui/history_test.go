package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/dotpop/internal/storage"
)

func seedSessions(t *testing.T, store *storage.Store) {
	t.Helper()
	for i, removed := range []int{12, 40, 25} {
		_, err := store.SaveSession(storage.Session{
			GameID:     "classic",
			SessionID:  "run",
			Player:     "ana",
			Selections: i + 1,
			Removed:    removed,
			Largest:    removed / 2,
		})
		if err != nil {
			t.Fatal(err)
		}
	}
}

func TestHistoryRows(t *testing.T) {
	created := time.Date(2024, 3, 9, 14, 30, 0, 0, time.UTC)
	rows := historyRows([]storage.Session{
		{Removed: 40, Selections: 7, Largest: 12, Player: "ana", CreatedAt: created},
	})

	if len(rows) != 1 {
		t.Fatalf("got %d rows", len(rows))
	}
	want := []string{"1", "40", "7", "12", "ana", "Mar 09 14:30"}
	for i, cell := range want {
		if rows[0][i] != cell {
			t.Errorf("column %d = %q, want %q", i, rows[0][i], cell)
		}
	}
}

func TestHistoryBestThenRecent(t *testing.T) {
	store := openStore(t)
	seedSessions(t, store)

	m := NewHistoryModel(store, 100, 30, "classic")
	if m.currentID() != "classic" {
		t.Fatalf("history opened on %q", m.currentID())
	}
	if len(m.sessions) != 3 || m.sessions[0].Removed != 40 {
		t.Fatalf("best sessions = %+v", m.sessions)
	}

	next, _ := m.Update(runeKey('s'))
	m = next.(HistoryModel)
	if m.view != HistoryRecent {
		t.Fatal("s should switch to recent sessions")
	}
	if m.sessions[0].Removed != 25 {
		t.Errorf("most recent removed = %d, want 25", m.sessions[0].Removed)
	}

	view := m.View()
	if !strings.Contains(view, "RECENT SESSIONS") {
		t.Error("view should name the recent list")
	}
	if !strings.Contains(view, "3 sessions | best 40") {
		t.Error("view should summarize the board's stats")
	}
}

func TestHistoryEmpty(t *testing.T) {
	m := NewHistoryModel(nil, 60, 20, "")

	view := m.View()
	if !strings.Contains(view, "No sessions recorded yet") {
		t.Error("empty history should say so")
	}
	if !strings.Contains(view, "no sessions yet") {
		t.Error("empty history should have an empty stats line")
	}
}

func TestHistoryNavigation(t *testing.T) {
	m := NewHistoryModel(nil, 100, 30, "")
	if len(m.games) < 2 {
		t.Skip("need at least two boards")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(HistoryModel)
	if m.gameCursor != 1 {
		t.Errorf("gameCursor = %d, want 1", m.gameCursor)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	next, _ = next.(HistoryModel).Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(HistoryModel)
	if m.gameCursor != len(m.games)-1 {
		t.Errorf("gameCursor = %d, want wrap to %d", m.gameCursor, len(m.games)-1)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(HistoryModel).IsGoingBack() {
		t.Error("esc should go back")
	}
}
