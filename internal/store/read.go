package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/born-ml/dualdiff/internal/check"
)

// RunSummary is one row of the runs table.
type RunSummary struct {
	ID      uuid.UUID `json:"id"`
	Started time.Time `json:"started"`
	Passed  int       `json:"passed"`
	Failed  int       `json:"failed"`
	Skipped int       `json:"skipped"`
}

// LoadReport reads a full report back, results ordered by index.
// Returns ErrRunNotFound if the run does not exist.
func (s *Store) LoadReport(ctx context.Context, id uuid.UUID) (*check.Report, error) {
	summary, err := s.loadRun(ctx, id)
	if err != nil {
		return nil, err
	}
	report := &check.Report{
		RunID:   summary.ID,
		Started: summary.Started,
		Passed:  summary.Passed,
		Failed:  summary.Failed,
		Skipped: summary.Skipped,
	}

	results, err := s.loadResults(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.attachComparisons(ctx, id, results); err != nil {
		return nil, err
	}
	report.Results = results
	return report, nil
}

// ListRuns returns all runs, most recent first.
func (s *Store) ListRuns(ctx context.Context) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, passed, failed, skipped
		FROM runs
		ORDER BY started_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
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

func (s *Store) loadRun(ctx context.Context, id uuid.UUID) (RunSummary, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, started_at, passed, failed, skipped
		FROM runs WHERE id = ?
	`, id.String())
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return RunSummary{}, fmt.Errorf("load run %s: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return RunSummary{}, fmt.Errorf("load run %s: %w", id, err)
	}
	return run, nil
}

func (s *Store) loadResults(ctx context.Context, id uuid.UUID) ([]check.Result, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT idx, expr, x, value, derivative, status, reason
		FROM results WHERE run_id = ?
		ORDER BY idx
	`, id.String())
	if err != nil {
		return nil, fmt.Errorf("load results: %w", err)
	}
	defer rows.Close()

	var results []check.Result
	for rows.Next() {
		var (
			res    check.Result
			status string
		)
		if err := rows.Scan(&res.Index, &res.Expr, &res.X, &res.Value, &res.Derivative, &status, &res.Reason); err != nil {
			return nil, fmt.Errorf("load results: %w", err)
		}
		if res.Status, err = check.ParseStatus(status); err != nil {
			return nil, fmt.Errorf("load result %d: %w", res.Index, err)
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load results: %w", err)
	}
	return results, nil
}

func (s *Store) attachComparisons(ctx context.Context, id uuid.UUID, results []check.Result) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.idx, c.method, c.reference, c.diff, c.bound, c.pass
		FROM comparisons c
		WHERE c.run_id = ?
		ORDER BY c.idx, c.rowid
	`, id.String())
	if err != nil {
		return fmt.Errorf("load comparisons: %w", err)
	}
	defer rows.Close()

	byIndex := make(map[int]int, len(results))
	for i, res := range results {
		byIndex[res.Index] = i
	}

	for rows.Next() {
		var (
			idx    int
			method string
			c      check.Comparison
		)
		if err := rows.Scan(&idx, &method, &c.Reference, &c.Diff, &c.Bound, &c.Pass); err != nil {
			return fmt.Errorf("load comparisons: %w", err)
		}
		if c.Method, err = check.ParseMethod(method); err != nil {
			return fmt.Errorf("load comparison %d: %w", idx, err)
		}
		i, ok := byIndex[idx]
		if !ok {
			return fmt.Errorf("load comparisons: orphan comparison for result %d", idx)
		}
		results[i].Comparisons = append(results[i].Comparisons, c)
	}
	return rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (RunSummary, error) {
	var (
		run     RunSummary
		id      string
		started string
	)
	if err := sc.Scan(&id, &started, &run.Passed, &run.Failed, &run.Skipped); err != nil {
		return RunSummary{}, err
	}
	var err error
	if run.ID, err = uuid.Parse(id); err != nil {
		return RunSummary{}, fmt.Errorf("parse run id %q: %w", id, err)
	}
	if run.Started, err = time.Parse(time.RFC3339Nano, started); err != nil {
		return RunSummary{}, fmt.Errorf("parse start time %q: %w", started, err)
	}
	return run, nil
}
