package check

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/born-ml/dualdiff/internal/dual"
	"github.com/born-ml/dualdiff/internal/expr"
	"github.com/born-ml/dualdiff/internal/parallel"
)

// Config controls a Runner.
type Config struct {
	Methods   []Method
	Symbolic  Tolerance
	Numerical Tolerance
	Step      float64 // Finite-difference step
	Domain    expr.DomainOptions
	Seed      uint64 // Seeds the per-expression point choice
	Parallel  parallel.Config
}

// DefaultConfig compares against the symbolic derivative only.
//
// Finite differences lose accuracy near singularities, which random
// expressions hit often, so Numerical is opt-in.
func DefaultConfig() Config {
	return Config{
		Methods:   []Method{Symbolic},
		Symbolic:  Tolerance{Abs: 1e-9, Rel: 1e-6},
		Numerical: Tolerance{Abs: 1e-6, Rel: 1e-2},
		Step:      1e-6,
		Domain:    expr.DefaultDomainOptions(),
		Seed:      1,
		Parallel:  parallel.DefaultConfig(),
	}
}

// ErrInvalidConfig is returned by Run when the Config cannot be used.
var ErrInvalidConfig = errors.New("invalid check config")

var errUnknownMethod = errors.New("unknown method")

// Validate rejects an empty, unknown or repeated method list.
func (c Config) Validate() error {
	if len(c.Methods) == 0 {
		return fmt.Errorf("%w: no methods", ErrInvalidConfig)
	}
	seen := make(map[Method]bool, len(c.Methods))
	for _, m := range c.Methods {
		if m != Symbolic && m != Numerical {
			return fmt.Errorf("%w: %w %d", ErrInvalidConfig, errUnknownMethod, int(m))
		}
		if seen[m] {
			return fmt.Errorf("%w: method %s listed twice", ErrInvalidConfig, m)
		}
		seen[m] = true
	}
	return nil
}

// Runner checks expressions concurrently.
type Runner struct {
	cfg    Config
	logger *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the runner's logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = l
	}
}

// NewRunner creates a Runner. Logging defaults to slog.Default().
func NewRunner(cfg Config, opts ...Option) *Runner {
	r := &Runner{cfg: cfg, logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r
}

// Run checks every expression and returns the report.
// Results keep the order of exprs. The error is non-nil if the config is
// invalid or ctx ends before all expressions are checked.
func (r *Runner) Run(ctx context.Context, exprs []string) (*Report, error) {
	if err := r.cfg.Validate(); err != nil {
		return nil, err
	}
	report := NewReport()
	results := make([]Result, len(exprs))

	r.logger.Info("check run starting", "run_id", report.RunID, "expressions", len(exprs))

	err := parallel.For(ctx, len(exprs), func(ctx context.Context, i int) {
		results[i] = r.Check(ctx, i, exprs[i])
	}, r.cfg.Parallel)
	if err != nil {
		return nil, fmt.Errorf("check run %s interrupted: %w", report.RunID, err)
	}

	for _, res := range results {
		report.Add(res)
		if res.Status == Failed {
			r.logger.Warn("derivative mismatch", "index", res.Index, "expr", res.Expr, "x", res.X, "reason", res.Reason)
		}
	}

	r.logger.Info("check run finished",
		"run_id", report.RunID,
		"passed", report.Passed,
		"failed", report.Failed,
		"skipped", report.Skipped,
	)
	return report, nil
}

// Check evaluates one expression. The evaluation point depends only on the
// configured seed and index, so results are reproducible across runs.
func (r *Runner) Check(ctx context.Context, index int, s string) Result {
	res := Result{Index: index, Expr: s}

	n, err := expr.Parse(s)
	if err != nil {
		res.Status = Failed
		res.Reason = err.Error()
		return res
	}

	rng := rand.New(rand.NewPCG(r.cfg.Seed, uint64(index)))
	x, err := expr.PickPoint(ctx, rng, n, r.cfg.Domain)
	if err != nil {
		return skip(res, err)
	}
	res.X = x

	value, deriv, err := expr.EvalDual(n, x)
	switch {
	case errors.Is(err, dual.ErrDivisionByZero), errors.Is(err, dual.ErrDomain):
		return skip(res, err)
	case err != nil:
		res.Status = Failed
		res.Reason = err.Error()
		return res
	}
	if !finite(value) || !finite(deriv) {
		return skip(res, errors.New("non-finite dual result"))
	}
	res.Value, res.Derivative = value, deriv

	for _, m := range r.cfg.Methods {
		c, err := r.reference(m, n, x, deriv)
		if errors.Is(err, errUnknownMethod) {
			res.Status = Failed
			res.Reason = err.Error()
			return res
		}
		if err != nil {
			if res.Reason != "" {
				break
			}
			return skip(res, fmt.Errorf("%s reference: %w", m, err))
		}
		res.Comparisons = append(res.Comparisons, c)
		if !c.Pass && res.Reason == "" {
			res.Reason = fmt.Sprintf("%s: dual %g vs reference %g (diff %g > %g)", m, deriv, c.Reference, c.Diff, c.Bound)
		}
	}

	res.Status = Passed
	if res.Reason != "" {
		res.Status = Failed
	}
	r.logger.Debug("checked expression", "index", index, "x", x, "status", res.Status)
	return res
}

func (r *Runner) reference(m Method, n expr.Node, x, deriv float64) (Comparison, error) {
	switch m {
	case Symbolic:
		ref, err := SymbolicDerivative(n, x)
		if err != nil {
			return Comparison{}, err
		}
		if !finite(ref) {
			return Comparison{}, errors.New("non-finite value")
		}
		return compare(m, deriv, ref, 0, r.cfg.Symbolic), nil
	case Numerical:
		ref, roundoff, err := CentralDifference(n, x, r.cfg.Step)
		if err != nil {
			return Comparison{}, err
		}
		if !finite(ref) {
			return Comparison{}, errors.New("non-finite value")
		}
		return compare(m, deriv, ref, roundoff, r.cfg.Numerical), nil
	default:
		return Comparison{}, fmt.Errorf("%w %d", errUnknownMethod, int(m))
	}
}

func skip(res Result, err error) Result {
	res.Status = Skipped
	res.Reason = err.Error()
	return res
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
