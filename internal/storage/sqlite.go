// Package storage keeps a ledger of finished games in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/tomz197/asteroids-arena/internal/game"
)

const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for the result ledger.
// It is safe for concurrent use; writes are serialised on one connection.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Entry is one finished game.
type Entry struct {
	ID        int64
	Player    string
	Outcome   string // "game_over" or "won"
	Score     int
	Ticks     uint64
	Seed      int64
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
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
	// One connection: SQLite allows a single writer and SSH sessions save
	// results concurrently.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, now: time.Now}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL,
			outcome TEXT NOT NULL,
			score INTEGER NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			seed INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_results_top ON results(score DESC, ticks ASC);
		CREATE INDEX IF NOT EXISTS idx_results_player ON results(player);
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

// SaveResult records a finished game. Results of games that have not ended
// are rejected.
func (s *Store) SaveResult(ctx context.Context, player string, r game.Result) error {
	if !r.Phase.Terminal() {
		return fmt.Errorf("storage: cannot save result in phase %s", r.Phase)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO results (player, outcome, score, ticks, seed, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		player, r.Phase.String(), r.Score, int64(r.Ticks), r.Seed, s.now().UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save result: %w", err)
	}
	return nil
}

// TopResults returns the best limit results, highest score first. Ties go
// to the faster game, then the earlier one.
func (s *Store) TopResults(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, player, outcome, score, ticks, seed, created_at
		 FROM results
		 ORDER BY score DESC, ticks ASC, id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ticks int64
		var createdAt string
		if err := rows.Scan(&e.ID, &e.Player, &e.Outcome, &e.Score, &ticks, &e.Seed, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Ticks = uint64(ticks)
		if parsed, err := time.Parse(timeLayout, createdAt); err == nil {
			e.CreatedAt = parsed
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// BestScore returns the player's highest score, or 0 if they have none.
func (s *Store) BestScore(ctx context.Context, player string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		"SELECT MAX(score) FROM results WHERE player = ?",
		player,
	).Scan(&score)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}
