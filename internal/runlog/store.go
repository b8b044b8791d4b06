package runlog

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"starsweep/internal/cleanup"
	"starsweep/internal/config"
)

// RunRecord is one archived cleanup run.
type RunRecord struct {
	ID          string
	StartedAt   time.Time
	FinishedAt  time.Time
	DryRun      bool
	Processed   int
	Deleted     int
	WouldDelete int
	Kept        int
	Warned      int
	Failed      int
}

// ItemRecord is one archived per-item result.
type ItemRecord struct {
	Title   string
	Kind    string
	Key     string
	Score   float64
	Outcome string
	Reason  string
}

// Store archives run summaries in SQLite. Downstream managers remain the
// system of record; losing this database loses nothing but reporting.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the run-log database and applies
// migrations.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.DataDir, "runlog.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// RecordRun archives a summary and all of its per-item results atomically.
func (s *Store) RecordRun(ctx context.Context, summary *cleanup.Summary) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin run tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (
            id, started_at, finished_at, dry_run, processed,
            deleted, would_delete, kept, warned, failed
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		summary.RunID,
		summary.StartedAt.UTC().Format(time.RFC3339Nano),
		summary.FinishedAt.UTC().Format(time.RFC3339Nano),
		boolToInt(summary.DryRun),
		summary.Processed,
		summary.Deleted(),
		summary.WouldDelete(),
		summary.Kept(),
		summary.Warned(),
		summary.Failed(),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, res := range summary.Results {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO run_items (run_id, title, kind, media_key, score, outcome, reason)
             VALUES (?, ?, ?, ?, ?, ?, ?)`,
			summary.RunID,
			res.Title,
			string(res.Kind),
			res.Key,
			res.Score,
			string(res.Outcome),
			res.Reason,
		)
		if err != nil {
			return fmt.Errorf("insert run item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit archived runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, dry_run, processed,
                deleted, would_delete, kept, warned, failed
         FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var rec RunRecord
		var started, finished string
		var dryRun int
		if err := rows.Scan(&rec.ID, &started, &finished, &dryRun, &rec.Processed,
			&rec.Deleted, &rec.WouldDelete, &rec.Kept, &rec.Warned, &rec.Failed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		rec.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		rec.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		rec.DryRun = dryRun != 0
		runs = append(runs, rec)
	}
	return runs, rows.Err()
}

// RunItems returns every per-item result archived for one run.
func (s *Store) RunItems(ctx context.Context, runID string) ([]ItemRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT title, kind, media_key, score, outcome, reason
         FROM run_items WHERE run_id = ? ORDER BY title`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run items: %w", err)
	}
	defer rows.Close()

	var items []ItemRecord
	for rows.Next() {
		var item ItemRecord
		if err := rows.Scan(&item.Title, &item.Kind, &item.Key, &item.Score, &item.Outcome, &item.Reason); err != nil {
			return nil, fmt.Errorf("scan run item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
