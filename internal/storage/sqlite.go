// Package storage provides SQLite-based persistence for recorded games.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for replay persistence.
type Store struct {
	db *sql.DB
}

// ReplayRecord is the header of a recorded game: everything needed to
// rebuild the session, plus a summary of how it went.
type ReplayRecord struct {
	ID            string // UUID
	GameID        string
	Seed          int64
	GridW         int
	GridH         int
	Interval      time.Duration
	QueueCapacity int
	StartBody     string // "x,y x,y ...", tail first
	StartDir      string
	FinalState    string
	Steps         uint64
	FrameCount    int
	CreatedAt     time.Time
}

// FrameRecord is one host frame of a replay: the elapsed time and the
// actions pressed during it, in order.
type FrameRecord struct {
	Seq     int
	DT      time.Duration
	Actions []string
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

	// Create parent directories
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
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			grid_w INTEGER NOT NULL,
			grid_h INTEGER NOT NULL,
			interval_ns INTEGER NOT NULL,
			queue_capacity INTEGER NOT NULL DEFAULT 0,
			start_body TEXT NOT NULL,
			start_dir TEXT NOT NULL,
			final_state TEXT NOT NULL DEFAULT '',
			steps INTEGER NOT NULL DEFAULT 0,
			frame_count INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_replays_game_id ON replays(game_id);
		CREATE INDEX IF NOT EXISTS idx_replays_created ON replays(created_at DESC);

		CREATE TABLE IF NOT EXISTS replay_frames (
			replay_id TEXT NOT NULL REFERENCES replays(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			dt_ns INTEGER NOT NULL,
			actions TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (replay_id, seq)
		);
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

// SaveReplay stores a replay header and its frames in one transaction.
// FrameCount is taken from frames.
func (s *Store) SaveReplay(rec ReplayRecord, frames []FrameRecord) error {
	if rec.ID == "" {
		return errors.New("storage: replay has no id")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	_, err = tx.Exec(
		`INSERT INTO replays
		 (id, game_id, seed, grid_w, grid_h, interval_ns, queue_capacity, start_body, start_dir, final_state, steps, frame_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.GameID,
		rec.Seed,
		rec.GridW,
		rec.GridH,
		int64(rec.Interval),
		rec.QueueCapacity,
		rec.StartBody,
		rec.StartDir,
		rec.FinalState,
		int64(rec.Steps),
		len(frames),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save replay: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO replay_frames (replay_id, seq, dt_ns, actions) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("storage: cannot prepare frame insert: %w", err)
	}
	defer stmt.Close()

	for i, f := range frames {
		if _, err := stmt.Exec(rec.ID, i, int64(f.DT), strings.Join(f.Actions, " ")); err != nil {
			return fmt.Errorf("storage: cannot save frame %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit replay: %w", err)
	}
	return nil
}

const replayColumns = `id, game_id, seed, grid_w, grid_h, interval_ns, queue_capacity,
	start_body, start_dir, final_state, steps, frame_count, created_at`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanReplay(row rowScanner) (ReplayRecord, error) {
	var rec ReplayRecord
	var interval, steps int64
	var createdAt any

	err := row.Scan(
		&rec.ID,
		&rec.GameID,
		&rec.Seed,
		&rec.GridW,
		&rec.GridH,
		&interval,
		&rec.QueueCapacity,
		&rec.StartBody,
		&rec.StartDir,
		&rec.FinalState,
		&steps,
		&rec.FrameCount,
		&createdAt,
	)
	if err != nil {
		return ReplayRecord{}, err
	}
	rec.Interval = time.Duration(interval)
	rec.Steps = uint64(steps)
	rec.CreatedAt = parseTime(createdAt)
	return rec, nil
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

// Replay loads a replay and its frames by ID.
// Returns nil without an error if no such replay exists.
func (s *Store) Replay(id string) (*ReplayRecord, []FrameRecord, error) {
	rec, err := scanReplay(s.db.QueryRow(
		"SELECT "+replayColumns+" FROM replays WHERE id = ?", id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("storage: cannot query replay: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT seq, dt_ns, actions
		 FROM replay_frames
		 WHERE replay_id = ?
		 ORDER BY seq`,
		id,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("storage: cannot query frames: %w", err)
	}
	defer rows.Close()

	frames := make([]FrameRecord, 0, rec.FrameCount)
	for rows.Next() {
		var f FrameRecord
		var dt int64
		var actions string
		if err := rows.Scan(&f.Seq, &dt, &actions); err != nil {
			return nil, nil, fmt.Errorf("storage: cannot scan frame: %w", err)
		}
		f.DT = time.Duration(dt)
		f.Actions = strings.Fields(actions)
		frames = append(frames, f)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return &rec, frames, nil
}

// RecentReplays lists replay headers, newest first.
func (s *Store) RecentReplays(limit int) ([]ReplayRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		"SELECT "+replayColumns+" FROM replays ORDER BY created_at DESC, rowid DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var records []ReplayRecord
	for rows.Next() {
		rec, err := scanReplay(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// DeleteReplay removes a replay and its frames. It reports whether a
// replay with that ID existed.
func (s *Store) DeleteReplay(id string) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	if _, err := tx.Exec("DELETE FROM replay_frames WHERE replay_id = ?", id); err != nil {
		return false, fmt.Errorf("storage: cannot delete frames: %w", err)
	}
	res, err := tx.Exec("DELETE FROM replays WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot count deleted rows: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return n > 0, nil
}
