package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/born-ml/dualdiff/internal/check"
)

// SaveReport writes a report and all of its results in one transaction.
// Saving the same run twice fails on the primary key.
func (s *Store) SaveReport(ctx context.Context, r *check.Report) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, passed, failed, skipped)
		VALUES (?, ?, ?, ?, ?)
	`,
		r.RunID.String(),
		r.Started.UTC().Format(time.RFC3339Nano),
		r.Passed,
		r.Failed,
		r.Skipped,
	)
	if err != nil {
		return fmt.Errorf("save report %s: %w", r.RunID, err)
	}

	resStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO results (run_id, idx, expr, x, value, derivative, status, reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	defer resStmt.Close()

	cmpStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO comparisons (run_id, idx, method, reference, diff, bound, pass)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	defer cmpStmt.Close()

	id := r.RunID.String()
	for _, res := range r.Results {
		_, err = resStmt.ExecContext(ctx,
			id, res.Index, res.Expr, res.X, res.Value, res.Derivative,
			res.Status.String(), res.Reason,
		)
		if err != nil {
			return fmt.Errorf("save result %d: %w", res.Index, err)
		}
		for _, c := range res.Comparisons {
			_, err = cmpStmt.ExecContext(ctx,
				id, res.Index, c.Method.String(), c.Reference, c.Diff, c.Bound, c.Pass,
			)
			if err != nil {
				return fmt.Errorf("save comparison %d/%s: %w", res.Index, c.Method, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("save report %s: %w", r.RunID, err)
	}
	return nil
}

// DeleteRun removes a run and its results.
func (s *Store) DeleteRun(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("delete run %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete run %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("delete run %s: %w", id, ErrRunNotFound)
	}
	return nil
}
