// Package history records task runs in a project-local SQLite database.
package history

import (
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// Status is the lifecycle state of a recorded run.
type Status string

const (
	StatusRunning Status = "running"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// Run is one recorded task execution.
type Run struct {
	ID          string     `json:"id"`
	Target      string     `json:"target"`
	Status      Status     `json:"status"`
	ExitCode    int        `json:"exit_code"`
	Error       string     `json:"error,omitempty"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Duration returns the run duration, zero while still running.
func (r *Run) Duration() time.Duration {
	if r.CompletedAt == nil {
		return 0
	}
	return r.CompletedAt.Sub(r.StartedAt)
}

// Store persists task runs. Use ":memory:" for an in-memory database.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the history database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping history database: %w", err)
	}
	if path != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL: %w", err)
		}
	}
	return &Store{db: db, path: path}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// InitSchema creates the tables if they do not exist.
func (s *Store) InitSchema() error {
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to initialize history schema: %w", err)
	}
	return nil
}

// StartRun records the start of a task run.
func (s *Store) StartRun(target string) (*Run, error) {
	run := &Run{
		ID:        uuid.New().String(),
		Target:    target,
		Status:    StatusRunning,
		StartedAt: time.Now().UTC(),
	}

	_, err := s.db.Exec(
		`INSERT INTO task_runs (id, target, status, started_at) VALUES (?, ?, ?, ?)`,
		run.ID, run.Target, run.Status, run.StartedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record run start: %w", err)
	}
	return run, nil
}

// CompleteRun marks a run as finished.
func (s *Store) CompleteRun(id string, status Status, exitCode int, errMsg string) error {
	now := time.Now().UTC()
	var errorPtr *string
	if errMsg != "" {
		errorPtr = &errMsg
	}

	result, err := s.db.Exec(
		`UPDATE task_runs SET status = ?, exit_code = ?, error = ?, completed_at = ? WHERE id = ?`,
		status, exitCode, errorPtr, now, id,
	)
	if err != nil {
		return fmt.Errorf("failed to record run completion: %w", err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("run not found: %s", id)
	}
	return nil
}

// Recent returns the latest runs, most recent first.
func (s *Store) Recent(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, target, status, exit_code, error, started_at, completed_at
		 FROM task_runs ORDER BY started_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query run history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var run Run
		var errMsg sql.NullString
		var completedAt sql.NullTime
		if err := rows.Scan(&run.ID, &run.Target, &run.Status, &run.ExitCode, &errMsg, &run.StartedAt, &completedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if errMsg.Valid {
			run.Error = errMsg.String
		}
		if completedAt.Valid {
			run.CompletedAt = &completedAt.Time
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read run history: %w", err)
	}
	return runs, nil
}
