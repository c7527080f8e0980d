package dots

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateAnimating   GameStateType = "animating"
	StatePaused      GameStateType = "paused"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick       uint64
	ID         string
	Width      int
	Height     int
	Rows       []string // Top row first
	CursorX    int
	CursorY    int
	Removed    int
	Selections int
	Largest    int
	Phase      string
	State      GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.paused:
		state = StatePaused
	case g.transition != nil:
		state = StateAnimating
	}

	phase := PhaseNone
	if g.transition != nil {
		phase = g.transition.phase
	}

	return Snapshot{
		Tick:       g.tick,
		ID:         g.id,
		Width:      g.width,
		Height:     g.height,
		Rows:       g.board.Rows(),
		CursorX:    g.cursor.X,
		CursorY:    g.cursor.Y,
		Removed:    g.removed,
		Selections: g.selections,
		Largest:    g.largest,
		Phase:      phase.String(),
		State:      state,
	}
}
