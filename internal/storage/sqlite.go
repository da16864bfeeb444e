// Package storage keeps recorded runs (journals) in SQLite so they can be
// listed and replayed later. Uses the pure-Go modernc.org/sqlite driver to
// avoid CGO dependencies.
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

// ErrNotFound is returned when a replay ID does not exist.
var ErrNotFound = errors.New("storage: replay not found")

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Replay is one recorded run. Score, Lines and Level are the outcome the
// journal must reproduce when verified; they are not a leaderboard.
type Replay struct {
	ID        int64
	GameID    string
	RunSeed   int64
	Steps     uint64
	Score     int
	Lines     int
	Level     int
	Journal   []byte // encoded journal; empty in listings
	CreatedAt time.Time
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
		CREATE TABLE IF NOT EXISTS replays (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			run_seed INTEGER NOT NULL,
			steps INTEGER NOT NULL,
			score INTEGER NOT NULL,
			lines INTEGER NOT NULL,
			level INTEGER NOT NULL,
			journal BLOB NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_replays_game_id ON replays(game_id, id DESC);
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

// SaveReplay records a finished run and returns its ID.
func (s *Store) SaveReplay(r Replay) (int64, error) {
	if len(r.Journal) == 0 {
		return 0, fmt.Errorf("storage: cannot save replay: empty journal")
	}

	result, err := s.db.Exec(
		`INSERT INTO replays (game_id, run_seed, steps, score, lines, level, journal)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.GameID, r.RunSeed, int64(r.Steps), r.Score, r.Lines, r.Level, r.Journal,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save replay: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// ReplayByID loads a replay including its journal.
func (s *Store) ReplayByID(id int64) (*Replay, error) {
	var r Replay
	var steps int64
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, game_id, run_seed, steps, score, lines, level, journal, created_at
		 FROM replays
		 WHERE id = ?`,
		id,
	).Scan(&r.ID, &r.GameID, &r.RunSeed, &steps, &r.Score, &r.Lines, &r.Level, &r.Journal, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replay: %w", err)
	}

	r.Steps = uint64(steps)
	r.CreatedAt = parseTime(createdAt)
	return &r, nil
}

// RecentReplays lists the newest replays, without journals.
// An empty gameID lists every game.
func (s *Store) RecentReplays(gameID string, limit int) ([]Replay, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, run_seed, steps, score, lines, level, created_at
		 FROM replays
		 WHERE ? = '' OR game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var replays []Replay
	for rows.Next() {
		var r Replay
		var steps int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.GameID, &r.RunSeed, &steps, &r.Score, &r.Lines, &r.Level, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Steps = uint64(steps)
		r.CreatedAt = parseTime(createdAt)
		replays = append(replays, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return replays, nil
}

// DeleteReplay removes a replay.
func (s *Store) DeleteReplay(id int64) error {
	res, err := s.db.Exec("DELETE FROM replays WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return nil
}

// PruneReplays keeps only the newest keep replays and returns how many
// were deleted.
func (s *Store) PruneReplays(keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	res, err := s.db.Exec(
		`DELETE FROM replays
		 WHERE id NOT IN (SELECT id FROM replays ORDER BY id DESC LIMIT ?)`,
		keep,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prune replays: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count pruned replays: %w", err)
	}
	return n, nil
}

// parseTime handles both time.Time and the string form SQLite may return.
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
