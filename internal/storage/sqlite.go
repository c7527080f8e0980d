// Package storage provides SQLite-based persistence for finished play sessions.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Where a session was played.
const (
	SourceLocal = "local"
	SourceSSH   = "ssh"
	SourceWS    = "ws"
)

// Store manages the SQLite database connection for session persistence.
type Store struct {
	db *sql.DB
}

// Session is one finished run on a board preset or layout.
type Session struct {
	ID         int64
	GameID     string
	SessionID  string
	Player     string
	Source     string
	Selections int
	Removed    int
	Largest    int
	Duration   int // Duration in seconds
	CreatedAt  time.Time
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID       string
	SessionCount int
	TotalRemoved int64
	BestRemoved  int
	AvgRemoved   float64
	Largest      int
	LastPlayed   time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			session_id TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			source TEXT NOT NULL DEFAULT 'local',
			selections INTEGER NOT NULL DEFAULT 0,
			removed INTEGER NOT NULL DEFAULT 0,
			largest INTEGER NOT NULL DEFAULT 0,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_game_id ON sessions(game_id);
		CREATE INDEX IF NOT EXISTS idx_sessions_best ON sessions(game_id, removed DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSession records a finished session.
// Returns the ID of the inserted record.
func (s *Store) SaveSession(sess Session) (int64, error) {
	if sess.GameID == "" {
		return 0, errors.New("storage: session has no game id")
	}
	if sess.Source == "" {
		sess.Source = SourceLocal
	}

	result, err := s.db.Exec(
		`INSERT INTO sessions
		 (game_id, session_id, player, source, selections, removed, largest, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.GameID, sess.SessionID, sess.Player, sess.Source,
		sess.Selections, sess.Removed, sess.Largest, sess.Duration,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const sessionColumns = `id, game_id, session_id, player, source, selections, removed, largest, duration_secs, created_at`

// RecentSessions retrieves the latest sessions, newest first.
// An empty gameID returns sessions of every game.
func (s *Store) RecentSessions(gameID string, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}

	var rows *sql.Rows
	var err error
	if gameID == "" {
		rows, err = s.db.Query(
			`SELECT `+sessionColumns+` FROM sessions
			 ORDER BY created_at DESC, id DESC
			 LIMIT ?`,
			limit,
		)
	} else {
		rows, err = s.db.Query(
			`SELECT `+sessionColumns+` FROM sessions
			 WHERE game_id = ?
			 ORDER BY created_at DESC, id DESC
			 LIMIT ?`,
			gameID, limit,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	return scanSessions(rows)
}

// BestSessions retrieves the sessions that removed the most tokens.
func (s *Store) BestSessions(gameID string, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+sessionColumns+` FROM sessions
		 WHERE game_id = ?
		 ORDER BY removed DESC, largest DESC, id ASC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	return scanSessions(rows)
}

func scanSessions(rows *sql.Rows) ([]Session, error) {
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		var createdAt any
		if err := rows.Scan(
			&sess.ID,
			&sess.GameID,
			&sess.SessionID,
			&sess.Player,
			&sess.Source,
			&sess.Selections,
			&sess.Removed,
			&sess.Largest,
			&sess.Duration,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sess.CreatedAt = parseTime(createdAt)
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return sessions, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// ClearSessions deletes all sessions for the given game.
func (s *Store) ClearSessions(gameID string) error {
	_, err := s.db.Exec("DELETE FROM sessions WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}

// GameStats retrieves aggregated statistics for a specific game.
func (s *Store) GameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(removed), 0), COALESCE(MAX(removed), 0),
		        COALESCE(AVG(removed), 0), COALESCE(MAX(largest), 0), MAX(created_at)
		 FROM sessions WHERE game_id = ?`,
		gameID,
	).Scan(&stats.SessionCount, &stats.TotalRemoved, &stats.BestRemoved,
		&stats.AvgRemoved, &stats.Largest, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// AllGamesStats retrieves statistics for all games that have been played.
func (s *Store) AllGamesStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query(
		`SELECT game_id, COUNT(*), SUM(removed), MAX(removed), AVG(removed), MAX(largest), MAX(created_at)
		 FROM sessions
		 GROUP BY game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all games stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*GameStats)
	for rows.Next() {
		var gs GameStats
		var lastPlayed any
		if err := rows.Scan(&gs.GameID, &gs.SessionCount, &gs.TotalRemoved, &gs.BestRemoved,
			&gs.AvgRemoved, &gs.Largest, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		gs.LastPlayed = parseTime(lastPlayed)
		stats[gs.GameID] = &gs
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
