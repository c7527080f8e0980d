package storage

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/dotpop/internal/core"
)

// Recorder tracks one run on a board and saves it when the run ends.
// Every run gets its own uuid session id.
type Recorder struct {
	store     *Store
	logger    *log.Logger
	gameID    string
	player    string
	source    string
	sessionID string
	started   time.Time
	clock     func() time.Time
}

// NewRecorder starts recording a run. A nil store records nothing; a nil
// logger stays silent.
func NewRecorder(store *Store, logger *log.Logger, gameID, player, source string) *Recorder {
	r := &Recorder{
		store:  store,
		logger: logger,
		gameID: gameID,
		player: player,
		source: source,
		clock:  time.Now,
	}
	r.Begin()
	return r
}

// Begin starts a new run with a fresh id.
func (r *Recorder) Begin() {
	r.sessionID = uuid.NewString()
	r.started = r.clock()
}

// SessionID returns the id of the current run.
func (r *Recorder) SessionID() string {
	return r.sessionID
}

// Finish saves the run described by state and starts the next one.
// Runs without a single successful selection are not stored.
func (r *Recorder) Finish(state core.GameState) bool {
	defer r.Begin()

	if r.store == nil || state.Selections == 0 {
		return false
	}

	sess := Session{
		GameID:     r.gameID,
		SessionID:  r.sessionID,
		Player:     r.player,
		Source:     r.source,
		Selections: state.Selections,
		Removed:    state.Removed,
		Largest:    state.Largest,
		Duration:   int(r.clock().Sub(r.started).Seconds()),
	}
	if _, err := r.store.SaveSession(sess); err != nil {
		if r.logger != nil {
			r.logger.Warn("could not save session", "game", r.gameID, "session", r.sessionID, "error", err)
		}
		return false
	}
	if r.logger != nil {
		r.logger.Debug("session saved", "game", r.gameID, "session", r.sessionID, "removed", state.Removed)
	}
	return true
}
