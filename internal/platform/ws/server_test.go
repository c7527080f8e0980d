package ws_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/dotpop/internal/logging"
	"github.com/vovakirdan/dotpop/internal/platform/ws"
	"github.com/vovakirdan/dotpop/internal/storage"
)

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func startServer(t *testing.T, store *storage.Store) *httptest.Server {
	t.Helper()
	s := ws.NewServer(ws.Config{Store: store, Logger: logging.Discard()})
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, path string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + path
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) ws.Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var m ws.Message
	require.NoError(t, conn.ReadJSON(&m))
	return m
}

func TestPlaySendsInitialState(t *testing.T) {
	srv := startServer(t, nil)
	conn := dial(t, srv, "/play/classic?seed=3")

	m := read(t, conn)
	assert.Equal(t, ws.TypeState, m.Type)
	assert.Equal(t, "classic", m.Preset)
	assert.Equal(t, 8, m.Width)
	assert.Equal(t, 8, m.Height)
	assert.Len(t, m.Rows, 8)
	assert.Equal(t, []string{"red", "green", "blue", "yellow"}, m.Palette)
	require.NotNil(t, m.Stats)
	assert.Zero(t, m.Stats.Selections)
}

func TestPlaySameSeedSameBoard(t *testing.T) {
	srv := startServer(t, nil)

	a := read(t, dial(t, srv, "/play/classic?seed=42"))
	b := read(t, dial(t, srv, "/play/classic?seed=42"))

	assert.Equal(t, a.Rows, b.Rows)
}

func TestPlaySelectReturnsReport(t *testing.T) {
	srv := startServer(t, nil)
	conn := dial(t, srv, "/play/classic?seed=3")
	read(t, conn)

	require.NoError(t, conn.WriteJSON(ws.ClientMessage{Type: ws.TypeSelect, X: 2, Y: 5}))
	m := read(t, conn)

	assert.Equal(t, ws.TypeReport, m.Type)
	require.NotNil(t, m.Report)
	assert.False(t, m.Report.NoOp)
	assert.Equal(t, ws.Point{X: 2, Y: 5}, m.Report.Origin)
	assert.Contains(t, m.Report.Removed, ws.Point{X: 2, Y: 5})
	assert.Len(t, m.Report.Spawns, len(m.Report.Removed))
	assert.NotEmpty(t, m.Report.Color)
	assert.Len(t, m.Rows, 8)

	require.NotNil(t, m.Stats)
	assert.Equal(t, 1, m.Stats.Selections)
	assert.Equal(t, len(m.Report.Removed), m.Stats.Removed)
	assert.Equal(t, len(m.Report.Removed), m.Stats.Largest)
}

func TestPlaySelectOutOfBoundsIsNoOp(t *testing.T) {
	srv := startServer(t, nil)
	conn := dial(t, srv, "/play/small?seed=1")
	first := read(t, conn)

	require.NoError(t, conn.WriteJSON(ws.ClientMessage{Type: ws.TypeSelect, X: 99, Y: 0}))
	m := read(t, conn)

	require.NotNil(t, m.Report)
	assert.True(t, m.Report.NoOp)
	assert.Empty(t, m.Report.Removed)
	assert.Empty(t, m.Report.Moves)
	assert.Empty(t, m.Report.Spawns)
	assert.Equal(t, first.Rows, m.Rows)
	assert.Zero(t, m.Stats.Selections)
}

func TestPlayResetSavesSession(t *testing.T) {
	store := openStore(t)
	srv := startServer(t, store)
	conn := dial(t, srv, "/play/classic?seed=3&player=ana")
	read(t, conn)

	require.NoError(t, conn.WriteJSON(ws.ClientMessage{Type: ws.TypeSelect, X: 0, Y: 0}))
	report := read(t, conn)

	require.NoError(t, conn.WriteJSON(ws.ClientMessage{Type: ws.TypeReset}))
	m := read(t, conn)
	assert.Equal(t, ws.TypeState, m.Type)
	assert.Zero(t, m.Stats.Selections)

	sessions, err := store.RecentSessions("classic", 10)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "ana", sessions[0].Player)
	assert.Equal(t, storage.SourceWS, sessions[0].Source)
	assert.Equal(t, report.Stats.Removed, sessions[0].Removed)
	assert.NotEmpty(t, sessions[0].SessionID)
}

func TestPlayDisconnectSavesSession(t *testing.T) {
	store := openStore(t)
	srv := startServer(t, store)
	conn := dial(t, srv, "/play/small?seed=9&player=bo")
	read(t, conn)

	require.NoError(t, conn.WriteJSON(ws.ClientMessage{Type: ws.TypeSelect, X: 1, Y: 1}))
	read(t, conn)
	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye")))
	conn.Close()

	require.Eventually(t, func() bool {
		sessions, err := store.RecentSessions("small", 10)
		return err == nil && len(sessions) == 1 && sessions[0].Player == "bo"
	}, 5*time.Second, 20*time.Millisecond)
}

func TestPlayBadMessages(t *testing.T) {
	srv := startServer(t, nil)
	conn := dial(t, srv, "/play/classic")
	read(t, conn)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	m := read(t, conn)
	assert.Equal(t, ws.TypeError, m.Type)
	assert.Contains(t, m.Error, "invalid message")

	require.NoError(t, conn.WriteJSON(ws.ClientMessage{Type: "jump"}))
	m = read(t, conn)
	assert.Equal(t, ws.TypeError, m.Type)
	assert.Contains(t, m.Error, "jump")

	// The connection survives bad input.
	require.NoError(t, conn.WriteJSON(ws.ClientMessage{Type: ws.TypeState}))
	assert.Equal(t, ws.TypeState, read(t, conn).Type)
}

func TestPlayRejectsUnknownPresetAndBadSeed(t *testing.T) {
	srv := startServer(t, nil)
	base := "ws" + strings.TrimPrefix(srv.URL, "http")

	_, resp, err := websocket.DefaultDialer.Dial(base+"/play/nope", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	_, resp, err = websocket.DefaultDialer.Dial(base+"/play/classic?seed=abc", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestPresets(t *testing.T) {
	srv := startServer(t, nil)

	resp, err := http.Get(srv.URL + "/presets")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var presets []ws.PresetInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&presets))
	require.NotEmpty(t, presets)
	assert.Equal(t, "classic", presets[0].ID)
	assert.Equal(t, 8, presets[0].Width)
}

func TestShutdownClosesConnections(t *testing.T) {
	store := openStore(t)
	s := ws.NewServer(ws.Config{Store: store, Logger: logging.Discard()})
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	conn := dial(t, srv, "/play/classic?seed=5&player=cy")
	read(t, conn)
	require.NoError(t, conn.WriteJSON(ws.ClientMessage{Type: ws.TypeSelect, X: 3, Y: 3}))
	read(t, conn)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))

	sessions, err := store.RecentSessions("classic", 10)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "cy", sessions[0].Player)

	_, _, err = conn.ReadMessage()
	assert.Error(t, err, "connection should be closed")
}
