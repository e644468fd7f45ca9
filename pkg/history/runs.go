package history

import (
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"

	"github.com/dtnitsch/discuss-feed/models"
)

// ErrNoRuns is returned by LastRun when nothing has been recorded yet.
var ErrNoRuns = errors.New("no runs recorded")

// Run is one publication of the feed.
type Run struct {
	ID         string           `json:"run_id" yaml:"run_id"`
	StartedAt  models.Timestamp `json:"started_at" yaml:"started_at"`
	FinishedAt models.Timestamp `json:"finished_at" yaml:"finished_at"`
	JSONPath   string           `json:"json_path" yaml:"json_path"`
	ItemCount  int              `json:"item_count" yaml:"item_count"`
	FeedDigest string           `json:"feed_digest" yaml:"feed_digest"`
}

// NewRun starts a run with a fresh id.
func NewRun(startedAt time.Time) *Run {
	return &Run{
		ID:        uuid.NewString(),
		StartedAt: models.NewTimestamp(startedAt),
	}
}

// Digest returns the hex BLAKE3-256 hash of data, the encoded feed items.
func Digest(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// RecordRun stores a finished run.
func (db *DB) RecordRun(run *Run) error {
	_, err := db.Exec(`
		INSERT INTO runs (run_id, started_at, finished_at, json_path, item_count, feed_digest)
		VALUES (?, ?, ?, ?, ?, ?)
	`, run.ID, run.StartedAt.String(), run.FinishedAt.String(), run.JSONPath, run.ItemCount, run.FeedDigest)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

const runColumns = "run_id, started_at, finished_at, json_path, item_count, feed_digest"

// ListRuns returns the most recent runs first. limit <= 0 returns all.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	query := "SELECT " + runColumns + " FROM runs ORDER BY started_at DESC, rowid DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	return runs, nil
}

// LastRun returns the most recent run, or ErrNoRuns.
func (db *DB) LastRun() (*Run, error) {
	row := db.QueryRow("SELECT " + runColumns + " FROM runs ORDER BY started_at DESC, rowid DESC LIMIT 1")
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoRuns
	}
	return r, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*Run, error) {
	var (
		r                 Run
		started, finished string
	)
	if err := s.Scan(&r.ID, &started, &finished, &r.JSONPath, &r.ItemCount, &r.FeedDigest); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}

	for _, f := range []struct {
		raw string
		dst *models.Timestamp
	}{{started, &r.StartedAt}, {finished, &r.FinishedAt}} {
		t, err := time.Parse(time.RFC3339, f.raw)
		if err != nil {
			return nil, fmt.Errorf("invalid run timestamp %q: %w", f.raw, err)
		}
		*f.dst = models.NewTimestamp(t)
	}
	return &r, nil
}
