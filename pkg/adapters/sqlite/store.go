// Package sqlite stores lane results in a SQLite database file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/aretw0/stepwise/internal/logging"
	"github.com/aretw0/stepwise/pkg/domain"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS results (
		key         TEXT PRIMARY KEY,
		session_id  TEXT NOT NULL,
		lane        TEXT NOT NULL,
		algorithm   TEXT NOT NULL,
		steps       INTEGER NOT NULL DEFAULT 0,
		elapsed_ns  INTEGER NOT NULL DEFAULT 0,
		found       INTEGER NOT NULL DEFAULT 0,
		result_row  INTEGER,
		result_col  INTEGER,
		finished_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_results_session_id ON results(session_id)`,
}

// Store implements ports.ResultStore using SQLite.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (or creates) the database at path and migrates it.
// Use ":memory:" for a private in-memory database.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if path == ":memory:" {
		// Every connection would get its own empty database.
		db.SetMaxOpenConns(1)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma wal: %w", err)
	}

	s := &Store{db: db, logger: logger.With("component", "store")}
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Migrate creates the tables and indexes.
func (s *Store) Migrate(ctx context.Context) error {
	s.logger.Debug("sql", "op", "migrate")
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save upserts the summary.
func (s *Store) Save(ctx context.Context, summary domain.RunSummary) error {
	key := summary.Key()
	s.logger.Debug("sql", "op", "upsert", "table", "results", "key", key)

	var row, col sql.NullInt64
	if summary.Result != nil {
		row = sql.NullInt64{Int64: int64(summary.Result.Row), Valid: true}
		col = sql.NullInt64{Int64: int64(summary.Result.Col), Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO results (key, session_id, lane, algorithm, steps, elapsed_ns, found, result_row, result_col, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
			session_id = excluded.session_id,
			lane = excluded.lane,
			algorithm = excluded.algorithm,
			steps = excluded.steps,
			elapsed_ns = excluded.elapsed_ns,
			found = excluded.found,
			result_row = excluded.result_row,
			result_col = excluded.result_col,
			finished_at = excluded.finished_at`,
		key, summary.SessionID, summary.Lane, string(summary.Algorithm),
		summary.Steps, int64(summary.Elapsed), summary.Found, row, col,
		summary.FinishedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save result %s: %w", key, err)
	}
	return nil
}

// Load retrieves a summary by key.
func (s *Store) Load(ctx context.Context, key string) (domain.RunSummary, error) {
	s.logger.Debug("sql", "op", "select", "table", "results", "key", key)

	var (
		summary    domain.RunSummary
		algorithm  string
		elapsed    int64
		row, col   sql.NullInt64
		finishedAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT session_id, lane, algorithm, steps, elapsed_ns, found, result_row, result_col, finished_at
		 FROM results WHERE key = ?`, key,
	).Scan(&summary.SessionID, &summary.Lane, &algorithm, &summary.Steps, &elapsed,
		&summary.Found, &row, &col, &finishedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.RunSummary{}, domain.ErrResultNotFound
	}
	if err != nil {
		return domain.RunSummary{}, fmt.Errorf("load result %s: %w", key, err)
	}

	summary.Algorithm = domain.AlgorithmID(algorithm)
	summary.Elapsed = time.Duration(elapsed)
	if row.Valid && col.Valid {
		summary.Result = &domain.Position{Row: int(row.Int64), Col: int(col.Int64)}
	}
	summary.FinishedAt, err = time.Parse(time.RFC3339Nano, finishedAt)
	if err != nil {
		return domain.RunSummary{}, fmt.Errorf("parse finished_at of %s: %w", key, err)
	}
	return summary, nil
}

// Delete removes a summary.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.logger.Debug("sql", "op", "delete", "table", "results", "key", key)
	_, err := s.db.ExecContext(ctx, `DELETE FROM results WHERE key = ?`, key)
	return err
}

// List returns every stored key in key order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM results ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Session returns the summaries of one session ordered by lane.
func (s *Store) Session(ctx context.Context, sessionID string) ([]domain.RunSummary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM results WHERE session_id = ? ORDER BY lane`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list session %s: %w", sessionID, err)
	}
	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			rows.Close()
			return nil, err
		}
		keys = append(keys, k)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]domain.RunSummary, 0, len(keys))
	for _, k := range keys {
		summary, err := s.Load(ctx, k)
		if err != nil {
			return nil, err
		}
		out = append(out, summary)
	}
	return out, nil
}
