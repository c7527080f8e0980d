package ws

import (
	"github.com/vovakirdan/dotpop/internal/board"
	"github.com/vovakirdan/dotpop/internal/core"
)

// Client message types.
const (
	TypeSelect = "select"
	TypeReset  = "reset"
	TypeState  = "state"
)

// Server message types. TypeState is shared with the client request.
const (
	TypeReport = "report"
	TypeError  = "error"
)

// ClientMessage is a request sent by a browser or bot.
type ClientMessage struct {
	Type string `json:"type"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// Message is everything the server sends. Type decides which fields are set.
type Message struct {
	Type    string         `json:"type"`
	Preset  string         `json:"preset,omitempty"`
	Width   int            `json:"width,omitempty"`
	Height  int            `json:"height,omitempty"`
	Palette []string       `json:"palette,omitempty"`
	Rows    []string       `json:"rows,omitempty"`
	Report  *ReportPayload `json:"report,omitempty"`
	Stats   *Stats         `json:"stats,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// Point is a board coordinate; y grows upward from the bottom row.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// MovePayload is a token that fell.
type MovePayload struct {
	Color string `json:"color"`
	From  Point  `json:"from"`
	To    Point  `json:"to"`
}

// SpawnPayload is a token placed into an empty cell.
type SpawnPayload struct {
	Color string `json:"color"`
	At    Point  `json:"at"`
}

// ReportPayload mirrors board.Report.
type ReportPayload struct {
	Origin  Point          `json:"origin"`
	NoOp    bool           `json:"noop"`
	Color   string         `json:"color,omitempty"`
	Removed []Point        `json:"removed"`
	Moves   []MovePayload  `json:"moves"`
	Spawns  []SpawnPayload `json:"spawns"`
}

// Stats are the running totals for the connection's current board.
type Stats struct {
	Removed    int `json:"removed"`
	Selections int `json:"selections"`
	Largest    int `json:"largest"`
}

// PresetInfo describes a playable preset for GET /presets.
type PresetInfo struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Width   int      `json:"width"`
	Height  int      `json:"height"`
	Palette []string `json:"palette"`
}

func point(c board.Coord) Point {
	return Point{X: c.X, Y: c.Y}
}

func statsOf(s core.GameState) *Stats {
	return &Stats{Removed: s.Removed, Selections: s.Selections, Largest: s.Largest}
}

func reportPayload(r board.Report) *ReportPayload {
	p := &ReportPayload{
		Origin:  point(r.Origin),
		NoOp:    r.NoOp(),
		Removed: make([]Point, 0, r.Removed.Len()),
		Moves:   make([]MovePayload, 0, len(r.Moves)),
		Spawns:  make([]SpawnPayload, 0, len(r.Spawns)),
	}
	if !p.NoOp {
		p.Color = r.Color.String()
	}
	for _, c := range r.Removed {
		p.Removed = append(p.Removed, point(c))
	}
	for _, m := range r.Moves {
		p.Moves = append(p.Moves, MovePayload{Color: m.Color.String(), From: point(m.From), To: point(m.To)})
	}
	for _, s := range r.Spawns {
		p.Spawns = append(p.Spawns, SpawnPayload{Color: s.Color.String(), At: point(s.At)})
	}
	return p
}

func stateMessage(preset string, b *board.Board, s core.GameState) Message {
	return Message{
		Type:    TypeState,
		Preset:  preset,
		Width:   b.Width(),
		Height:  b.Height(),
		Palette: b.Palette().Names(),
		Rows:    b.Rows(),
		Stats:   statsOf(s),
	}
}

func errorMessage(text string) Message {
	return Message{Type: TypeError, Error: text}
}
