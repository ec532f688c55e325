package archive

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/crease/internal/innings"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 0 - Initial schema (pre-migration)
// 1 - Added index on summaries.completed_at for newest-first listing
const currentSchemaVersion = 1

// Store is a SQLite-backed Archive.
type Store struct {
	db *sql.DB
}

// Open creates or opens the archive database at path.
//
// The database is configured with:
//   - WAL mode so history can be read while a match is saved
//   - NORMAL synchronous mode
//   - 5-second busy timeout for lock contention
//
// Open is idempotent: schema and migrations are applied only when missing.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to archive: %w", err)
	}

	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}
	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database. Safe to call on a nil-db Store.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save inserts the summary. Uses ON CONFLICT(id) DO NOTHING, so saving
// the same summary twice is a no-op.
func (s *Store) Save(ctx context.Context, sum innings.Summary) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO summaries
		(id, team_a_name, team_b_name, score_a, score_b, result, timestamp, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		sum.ID,
		sum.TeamAName,
		sum.TeamBName,
		sum.ScoreA,
		sum.ScoreB,
		sum.Result,
		sum.Timestamp,
		sum.CompletedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("save summary: %w", err)
	}
	return nil
}

// Get returns one summary by id.
func (s *Store) Get(ctx context.Context, id string) (innings.Summary, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, team_a_name, team_b_name, score_a, score_b, result, timestamp, completed_at
		FROM summaries
		WHERE id = ?
	`, id)
	sum, err := scanSummary(row)
	if errors.Is(err, sql.ErrNoRows) {
		return innings.Summary{}, ErrNotFound
	}
	if err != nil {
		return innings.Summary{}, fmt.Errorf("get summary: %w", err)
	}
	return sum, nil
}

// List returns summaries newest first: ORDER BY completed_at DESC, id DESC.
// Returns an empty slice (not nil) when the archive is empty.
func (s *Store) List(ctx context.Context, limit int) ([]innings.Summary, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, team_a_name, team_b_name, score_a, score_b, result, timestamp, completed_at
		FROM summaries
		ORDER BY completed_at DESC, id COLLATE BINARY DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query summaries: %w", err)
	}
	defer rows.Close()

	out := []innings.Summary{}
	for rows.Next() {
		sum, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate summaries: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSummary(sc scanner) (innings.Summary, error) {
	var sum innings.Summary
	var completedAt int64
	err := sc.Scan(
		&sum.ID,
		&sum.TeamAName,
		&sum.TeamBName,
		&sum.ScoreA,
		&sum.ScoreB,
		&sum.Result,
		&sum.Timestamp,
		&completedAt,
	)
	if err != nil {
		return innings.Summary{}, err
	}
	sum.CompletedAt = time.Unix(0, completedAt).UTC()
	return sum, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	if err := runMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// runMigrations applies incremental migrations based on user_version.
func runMigrations(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}

	if version < 1 {
		if _, err := db.Exec(`
			CREATE INDEX IF NOT EXISTS idx_summaries_completed_at
			ON summaries(completed_at)
		`); err != nil {
			return fmt.Errorf("migrate to v1: %w", err)
		}
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}
	return nil
}

// verifyPragma checks a pragma's value. Used by tests.
func (s *Store) verifyPragma(name, expected string) error {
	var value string
	if err := s.db.QueryRow(fmt.Sprintf("PRAGMA %s", name)).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
