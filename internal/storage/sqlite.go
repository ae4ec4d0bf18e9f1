// Package storage provides SQLite-based persistence for concluded
// match results. Uses the pure-Go modernc.org/sqlite driver to avoid
// CGO dependencies. Live match state is never stored here; the
// coordinator's in-memory working set is the only source of truth for
// ongoing matches.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/beleapps/matchkit/internal/coordinator"
)

// Store manages the SQLite database connection for the result archive.
type Store struct {
	db *sql.DB
}

// ResultEntry is a single archived match result.
type ResultEntry struct {
	ID              int64
	MatchID         string
	LocalPlayer     string
	OpponentPlayer  string
	Score1          int
	Score2          int
	LocalOutcome    string
	OpponentOutcome string
	Rounds          int
	EndReason       string // "completed", "quit", "auto-win"
	CreatedAt       time.Time
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
		CREATE TABLE IF NOT EXISTS match_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL UNIQUE,
			local_player TEXT NOT NULL,
			opponent_player TEXT NOT NULL,
			score1 INTEGER NOT NULL DEFAULT 0,
			score2 INTEGER NOT NULL DEFAULT 0,
			local_outcome TEXT NOT NULL,
			opponent_outcome TEXT NOT NULL,
			rounds INTEGER NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_match_results_local ON match_results(local_player);
		CREATE INDEX IF NOT EXISTS idx_match_results_created ON match_results(created_at DESC);
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

// RecordResult archives a concluded match. Recording the same match a
// second time is a no-op, so re-posted end instructions stay harmless.
// Implements coordinator.ResultRecorder.
func (s *Store) RecordResult(rec coordinator.MatchRecord) error {
	_, err := s.db.Exec(
		`INSERT OR IGNORE INTO match_results
		 (match_id, local_player, opponent_player, score1, score2, local_outcome, opponent_outcome, rounds, end_reason)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(rec.MatchID), string(rec.LocalID), string(rec.OpponentID),
		rec.Score1, rec.Score2,
		rec.LocalOutcome.String(), rec.OpponentOutcome.String(),
		rec.Rounds, rec.EndReason,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record result: %w", err)
	}
	return nil
}

// RecentResults retrieves the most recently archived results, newest
// first.
func (s *Store) RecentResults(limit int) ([]ResultEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, match_id, local_player, opponent_player, score1, score2,
		        local_outcome, opponent_outcome, rounds, end_reason, created_at
		 FROM match_results
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var entries []ResultEntry
	for rows.Next() {
		var e ResultEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.MatchID, &e.LocalPlayer, &e.OpponentPlayer,
			&e.Score1, &e.Score2, &e.LocalOutcome, &e.OpponentOutcome,
			&e.Rounds, &e.EndReason, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		// Parse the datetime - handle both time.Time and string
		switch v := createdAt.(type) {
		case time.Time:
			e.CreatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				e.CreatedAt = parsed
			}
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// Wins counts archived wins for the given local player.
func (s *Store) Wins(localPlayer string) (int, error) {
	var count int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM match_results WHERE local_player = ? AND local_outcome = 'Won'",
		localPlayer,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count wins: %w", err)
	}
	return count, nil
}
