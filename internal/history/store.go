// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists a record of past runs in a local SQLite
// database, so completed and failed runs can be listed after the fact.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/content-engine/pkg/types"
)

const dbFile = "history.db"

// RunStatus is the terminal state a run reached.
type RunStatus string

const (
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
)

// RunRecord is one row of run history.
type RunRecord struct {
	ID           int64
	Topic        string
	Status       RunStatus
	Errors       []string
	SourceCount  int
	JSONPath     string
	MarkdownPath string
	CreatedAt    time.Time
}

// Store manages the run-history SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the history database at dir/history.db,
// creating the schema if it does not exist.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "data"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	stmt := `CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		topic TEXT NOT NULL,
		status TEXT NOT NULL,
		errors TEXT NOT NULL DEFAULT '[]',
		source_count INTEGER NOT NULL DEFAULT 0,
		json_path TEXT,
		markdown_path TEXT,
		created_at TEXT NOT NULL
	)`
	if _, err := s.db.Exec(stmt); err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Record inserts one run record and returns its assigned ID.
func (s *Store) Record(ctx context.Context, rec RunRecord) (int64, error) {
	errsJSON, err := json.Marshal(rec.Errors)
	if err != nil {
		return 0, fmt.Errorf("marshaling errors: %w", err)
	}

	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (topic, status, errors, source_count, json_path, markdown_path, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.Topic, string(rec.Status), string(errsJSON), rec.SourceCount,
		rec.JSONPath, rec.MarkdownPath, createdAt.Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("inserting run record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading inserted ID: %w", err)
	}
	return id, nil
}

// List returns the most recent runs, newest first, up to limit (default 20).
func (s *Store) List(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, topic, status, errors, source_count, json_path, markdown_path, created_at
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		var status, errsJSON, createdAt string
		if err := rows.Scan(&rec.ID, &rec.Topic, &status, &errsJSON,
			&rec.SourceCount, &rec.JSONPath, &rec.MarkdownPath, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning run record: %w", err)
		}
		rec.Status = RunStatus(status)
		if err := json.Unmarshal([]byte(errsJSON), &rec.Errors); err != nil {
			return nil, fmt.Errorf("parsing errors for run %d: %w", rec.ID, err)
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			rec.CreatedAt = t
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Prune deletes all but the newest keep records. It returns how many rows
// were removed.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM runs WHERE id NOT IN (SELECT id FROM runs ORDER BY id DESC LIMIT ?)`, keep)
	if err != nil {
		return 0, fmt.Errorf("pruning runs: %w", err)
	}
	return res.RowsAffected()
}

// FromBundle builds a run record from a finished bundle and its artifact
// paths. A run that produced a bundle through consolidation is completed
// even when individual platforms failed.
func FromBundle(bundle *types.ContentBundle, status RunStatus, jsonPath, mdPath string) RunRecord {
	return RunRecord{
		Topic:        bundle.Topic,
		Status:       status,
		Errors:       bundle.Errors,
		SourceCount:  len(bundle.Sources),
		JSONPath:     jsonPath,
		MarkdownPath: mdPath,
	}
}
