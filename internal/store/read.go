package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/statpost/bayesr2/internal/draws"
)

// ErrRunNotFound is returned when a run id has no stored row.
var ErrRunNotFound = errors.New("run not found")

// GetRun returns the run with the given id.
// Returns ErrRunNotFound if no such run exists.
func (s *Store) GetRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, family, fingerprint, n_draws, n_obs, created_at
		FROM runs
		WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return Run{}, fmt.Errorf("get run: %w", err)
	}
	return run, nil
}

// ListRuns returns all stored runs, newest first. The run id breaks
// creation-time ties so the listing order is deterministic.
//
// Returns an empty slice (not nil) when the store is empty.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, family, fingerprint, n_draws, n_obs, created_at
		FROM runs
		ORDER BY created_at DESC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// GetR2 returns a run's R² sequence in original draw order.
// Returns ErrRunNotFound if no such run exists.
func (s *Store) GetR2(ctx context.Context, id string) ([]float64, error) {
	// Verify the run exists so an empty result is distinguishable from
	// an unknown id.
	if _, err := s.GetRun(ctx, id); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT r2
		FROM r2_draws
		WHERE run_id = ?
		ORDER BY draw_idx ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("get r2: %w", err)
	}
	defer rows.Close()

	var r2 []float64
	for rows.Next() {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("get r2: %w", err)
		}
		r2 = append(r2, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get r2: %w", err)
	}
	return r2, nil
}

// scanner abstracts sql.Row and sql.Rows for scanRun.
type scanner interface {
	Scan(dest ...any) error
}

// scanRun reads one run row.
func scanRun(sc scanner) (Run, error) {
	var run Run
	var family, createdAt string
	if err := sc.Scan(&run.ID, &run.Name, &family, &run.Fingerprint, &run.NumDraws, &run.NumObs, &createdAt); err != nil {
		return Run{}, err
	}

	run.Family = draws.Family(family)

	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return Run{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	run.CreatedAt = t

	return run, nil
}
