// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/tickdup/internal/ports/secondary"
)

// RunRepository implements secondary.RunRecorder with SQLite.
type RunRepository struct {
	db *sql.DB
}

var _ secondary.RunRecorder = (*RunRepository)(nil)

// NewRunRepository creates a new SQLite run repository.
func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Record persists the outcome of one reconciliation pass.
func (r *RunRepository) Record(ctx context.Context, run *secondary.RunRecord) error {
	var errorText sql.NullString
	if run.ErrorText != "" {
		errorText = sql.NullString{String: run.ErrorText, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO runs (id, mode, started_at, finished_at, checked, matched, duplicated, errors, error_text) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		run.ID, run.Mode, run.StartedAt, run.FinishedAt,
		run.Checked, run.Matched, run.Duplicated, run.Errors, errorText,
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// ListRecent retrieves the most recent runs, newest first.
func (r *RunRepository) ListRecent(ctx context.Context, limit int) ([]*secondary.RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, mode, started_at, finished_at, checked, matched, duplicated, errors, error_text FROM runs ORDER BY started_at DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*secondary.RunRecord
	for rows.Next() {
		record := &secondary.RunRecord{}
		var errorText sql.NullString
		err := rows.Scan(
			&record.ID, &record.Mode, &record.StartedAt, &record.FinishedAt,
			&record.Checked, &record.Matched, &record.Duplicated, &record.Errors, &errorText,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		record.ErrorText = errorText.String
		runs = append(runs, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	return runs, nil
}
