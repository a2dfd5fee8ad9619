// Package storage provides SQLite-based persistence for the weekly
// leaderboard. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
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
)

// DefaultLimit is used by TopScores when no positive limit is given.
const DefaultLimit = 10

// Store manages the SQLite database connection for score persistence.
// Each player keeps a single row holding their best score.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// ScoreEntry is a player's best score.
type ScoreEntry struct {
	UserID      string
	DisplayName string
	Score       int
	CreatedAt   time.Time // When the score was achieved
}

// Option configures a Store.
type Option func(*Store)

// WithNow sets the clock used to timestamp saved scores.
func WithNow(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string, opts ...Option) (*Store, error) {
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

	// SQLite has a single writer
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, now: time.Now}
	for _, opt := range opts {
		opt(store)
	}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS highscores (
			user_id TEXT PRIMARY KEY,
			display_name TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_unix INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_highscores_top ON highscores(score DESC, created_unix ASC);
		CREATE INDEX IF NOT EXISTS idx_highscores_created ON highscores(created_unix);
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

// SaveBest records score for the player if it beats their stored best.
// It reports whether the stored row changed.
func (s *Store) SaveBest(ctx context.Context, userID, displayName string, score int) (bool, error) {
	if userID == "" {
		return false, fmt.Errorf("storage: cannot save score: empty user id")
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO highscores (user_id, display_name, score, created_unix)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
		   display_name = excluded.display_name,
		   score = excluded.score,
		   created_unix = excluded.created_unix
		 WHERE excluded.score > highscores.score`,
		userID, displayName, score, s.now().Unix(),
	)
	if err != nil {
		return false, fmt.Errorf("storage: cannot save score: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot get affected rows: %w", err)
	}
	return n > 0, nil
}

// TopScores retrieves the top N scores, ordered by score descending.
// Ties go to whoever got there first.
func (s *Store) TopScores(ctx context.Context, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, display_name, score, created_unix
		 FROM highscores
		 ORDER BY score DESC, created_unix ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// BestFor returns the stored best for one player. The bool is false if
// the player has no score this week.
func (s *Store) BestFor(ctx context.Context, userID string) (ScoreEntry, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT user_id, display_name, score, created_unix
		 FROM highscores
		 WHERE user_id = ?`,
		userID,
	)

	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return ScoreEntry{}, false, nil
	}
	if err != nil {
		return ScoreEntry{}, false, err
	}
	return e, true, nil
}

// Count returns the number of players on the leaderboard.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM highscores").Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count scores: %w", err)
	}
	return n, nil
}

// PurgeBefore deletes scores achieved before t and returns how many went.
func (s *Store) PurgeBefore(ctx context.Context, t time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM highscores WHERE created_unix < ?", t.Unix())
	if err != nil {
		return 0, fmt.Errorf("storage: cannot purge scores: %w", err)
	}
	return result.RowsAffected()
}

// ClearAll deletes every score and returns how many went.
func (s *Store) ClearAll(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM highscores")
	if err != nil {
		return 0, fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return result.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(sc scanner) (ScoreEntry, error) {
	var e ScoreEntry
	var created int64
	if err := sc.Scan(&e.UserID, &e.DisplayName, &e.Score, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return e, err
		}
		return e, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	e.CreatedAt = time.Unix(created, 0).UTC()
	return e, nil
}
