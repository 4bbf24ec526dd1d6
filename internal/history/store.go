package history

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

const schemaVersion = 1

// ErrSchemaMismatch indicates the database was created by an
// incompatible version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// Run statuses.
const (
	StatusRunning   = "running"
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// Run is one journal entry.
type Run struct {
	ID                  string
	AudioPath           string
	Model               string
	Device              string
	ComputeType         string
	Language            string
	LanguageProbability float64
	DurationSeconds     float64
	Status              string
	ErrorMessage        string
	OutputPaths         []string
	FallbackUsed        bool
	CreatedAt           time.Time
	FinishedAt          time.Time
}

// Store manages run persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the run journal under dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure history directory: %w", err)
	}

	dbPath := filepath.Join(dir, "history.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the on-disk database location.
func (s *Store) Path() string { return s.path }

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		if _, err := s.db.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}
		return nil
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to reset)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

// Begin inserts a running journal entry and returns it.
func (s *Store) Begin(ctx context.Context, audioPath, model, device, computeType string) (*Run, error) {
	run := &Run{
		ID:          uuid.NewString(),
		AudioPath:   audioPath,
		Model:       model,
		Device:      device,
		ComputeType: computeType,
		Status:      StatusRunning,
		CreatedAt:   time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, audio_path, model, device, compute_type, status, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.AudioPath, run.Model, run.Device, run.ComputeType,
		run.Status, run.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// FinishSuccess marks a run as succeeded with its results.
func (s *Store) FinishSuccess(ctx context.Context, id string, language string, probability, duration float64, outputPaths []string, fallback bool) error {
	paths, err := json.Marshal(outputPaths)
	if err != nil {
		return fmt.Errorf("marshal output paths: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, language = ?, language_probability = ?, duration_seconds = ?,
             output_paths = ?, fallback_used = ?, finished_at = ?
         WHERE id = ?`,
		StatusSucceeded, language, probability, duration,
		string(paths), boolToInt(fallback), time.Now().UTC().Format(time.RFC3339Nano), id,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// FinishFailure marks a run as failed with the error detail.
func (s *Store) FinishFailure(ctx context.Context, id, message string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, error_message = ?, finished_at = ? WHERE id = ?`,
		StatusFailed, message, time.Now().UTC().Format(time.RFC3339Nano), id,
	)
	if err != nil {
		return fmt.Errorf("fail run: %w", err)
	}
	return nil
}

// GetByID fetches one run.
func (s *Store) GetByID(ctx context.Context, id string) (*Run, error) {
	rows, err := s.db.QueryContext(ctx, selectRuns+" WHERE id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("query run: %w", err)
	}
	defer rows.Close()
	runs, err := scanRuns(rows)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, sql.ErrNoRows
	}
	return &runs[0], nil
}

// List returns the most recent runs, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, selectRuns+" ORDER BY created_at DESC, rowid DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()
	return scanRuns(rows)
}

const selectRuns = `SELECT id, audio_path, model, device, compute_type, language,
    language_probability, duration_seconds, status, error_message,
    output_paths, fallback_used, created_at, finished_at FROM runs`

func scanRuns(rows *sql.Rows) ([]Run, error) {
	var runs []Run
	for rows.Next() {
		var run Run
		var paths string
		var fallback int
		var createdAt, finishedAt string
		if err := rows.Scan(
			&run.ID, &run.AudioPath, &run.Model, &run.Device, &run.ComputeType,
			&run.Language, &run.LanguageProbability, &run.DurationSeconds,
			&run.Status, &run.ErrorMessage, &paths, &fallback, &createdAt, &finishedAt,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if err := json.Unmarshal([]byte(paths), &run.OutputPaths); err != nil {
			return nil, fmt.Errorf("parse output paths: %w", err)
		}
		run.FallbackUsed = fallback != 0
		run.CreatedAt = parseTime(createdAt)
		run.FinishedAt = parseTime(finishedAt)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	ts, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return ts
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
