package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/statpost/bayesr2/internal/draws"
)

// SaveRun records a computed result: one run row plus every R² draw.
//
// The write is transactional - either the run and all its draws are
// stored, or nothing is. The returned Run carries the assigned UUID,
// the input fingerprint, and the creation time.
//
// len(r2) must equal d.NumDraws(); the caller obtained r2 from the
// calculator, which guarantees this.
func (s *Store) SaveRun(ctx context.Context, name string, d *draws.Draws, r2 []float64) (Run, error) {
	if len(r2) != d.NumDraws() {
		return Run{}, fmt.Errorf("save run: %d R² values for %d draws", len(r2), d.NumDraws())
	}

	run := Run{
		ID:          uuid.NewString(),
		Name:        name,
		Family:      d.Family,
		Fingerprint: d.Fingerprint(),
		NumDraws:    d.NumDraws(),
		NumObs:      d.NumObs(),
		CreatedAt:   time.Now().UTC(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("save run: begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, name, family, fingerprint, n_draws, n_obs, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.Name,
		string(run.Family),
		run.Fingerprint,
		run.NumDraws,
		run.NumObs,
		run.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Run{}, fmt.Errorf("save run: insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO r2_draws (run_id, draw_idx, r2) VALUES (?, ?, ?)
	`)
	if err != nil {
		return Run{}, fmt.Errorf("save run: prepare: %w", err)
	}
	defer stmt.Close()

	for i, v := range r2 {
		if _, err := stmt.ExecContext(ctx, run.ID, i, v); err != nil {
			return Run{}, fmt.Errorf("save run: insert draw %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("save run: commit: %w", err)
	}

	return run, nil
}

// DeleteRun removes a run and, via cascade, its R² draws.
// Deleting an unknown run is a no-op.
func (s *Store) DeleteRun(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	return nil
}
