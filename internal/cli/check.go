package cli

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/born-ml/dualdiff/internal/check"
	"github.com/born-ml/dualdiff/internal/expr"
	"github.com/born-ml/dualdiff/internal/store"
)

var errNoFunctions = errors.New("no expressions in input")

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	DB        string
	Numerical bool
	Workers   int
}

// CheckSummary is the JSON form of the check command.
type CheckSummary struct {
	RunID    string         `json:"run_id"`
	Total    int            `json:"total"`
	Passed   int            `json:"passed"`
	Failed   int            `json:"failed"`
	Skipped  int            `json:"skipped"`
	Failures []check.Result `json:"failures,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check <functions-file>",
		Short: "Check dual-number derivatives against references",
		Long: `Check every expression in a file, one per line.

Each expression is evaluated with dual numbers at a random valid point and
the derivative is compared with the symbolic derivative (and with a central
finite difference when --numerical is set). Expressions that divide by zero
or leave their domain are skipped.

Exit codes:
  0 - No check failed
  1 - One or more checks failed
  2 - Command error (missing file, database error, etc.)

Examples:
  dualcheck check functions.dat
  dualcheck check functions.dat --numerical --db runs.db`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("db") {
				opts.DB = opts.Config.Database
			}
			if !cmd.Flags().Changed("workers") {
				opts.Workers = opts.Config.Workers
			}
			return runCheck(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "", "SQLite database to record the run in")
	cmd.Flags().BoolVar(&opts.Numerical, "numerical", false, "also compare with finite differences")
	cmd.Flags().IntVarP(&opts.Workers, "workers", "w", 0, "worker goroutines (0 = all CPUs)")

	return cmd
}

func runCheck(opts *CheckOptions, path string, cmd *cobra.Command) error {
	f, err := os.Open(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "open functions", err)
	}
	exprs, err := expr.ReadFunctions(f)
	f.Close()
	if err != nil {
		return WrapExitError(ExitCommandError, "read functions", err)
	}
	if len(exprs) == 0 {
		return WrapExitError(ExitCommandError, path, errNoFunctions)
	}

	cfg, err := opts.Config.CheckConfig()
	if err != nil {
		return WrapExitError(ExitCommandError, "config", err)
	}
	if opts.Numerical && !slices.Contains(cfg.Methods, check.Numerical) {
		cfg.Methods = append(cfg.Methods, check.Numerical)
	}
	cfg.Parallel = cfg.Parallel.WithWorkers(opts.Workers)

	runner := check.NewRunner(cfg, check.WithLogger(opts.Logger))
	report, err := runner.Run(cmd.Context(), exprs)
	if err != nil {
		return WrapExitError(ExitCommandError, "check", err)
	}

	if opts.DB != "" {
		if err := saveReport(opts, cmd, report); err != nil {
			return err
		}
	}

	summary := CheckSummary{
		RunID:    report.RunID.String(),
		Total:    report.Total(),
		Passed:   report.Passed,
		Failed:   report.Failed,
		Skipped:  report.Skipped,
		Failures: report.Failures(),
	}
	text := formatReport(report, opts.Verbose)

	out := opts.formatter(cmd)
	if report.OK() {
		return out.Success(summary, text)
	}
	if err := out.Failure(summary, text, fmt.Sprintf("%d of %d checks failed", report.Failed, report.Total())); err != nil {
		return err
	}
	return NewExitError(ExitFailure, fmt.Sprintf("%d of %d checks failed", report.Failed, report.Total()))
}

func saveReport(opts *CheckOptions, cmd *cobra.Command, report *check.Report) error {
	st, err := store.Open(opts.DB)
	if err != nil {
		return WrapExitError(ExitCommandError, "open database", err)
	}
	defer st.Close()

	if err := st.SaveReport(cmd.Context(), report); err != nil {
		return WrapExitError(ExitCommandError, "save run", err)
	}
	opts.Logger.Info("saved run", "run_id", report.RunID, "db", opts.DB)
	return nil
}

func formatReport(r *check.Report, verbose bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "run %s: %d checked, %d passed, %d failed, %d skipped\n",
		r.RunID, r.Total(), r.Passed, r.Failed, r.Skipped)
	for _, res := range r.Results {
		switch {
		case res.Status == check.Failed:
			fmt.Fprintf(&b, "FAIL [%d] %s at x=%g: %s\n", res.Index, res.Expr, res.X, res.Reason)
		case res.Status == check.Skipped && verbose:
			fmt.Fprintf(&b, "SKIP [%d] %s: %s\n", res.Index, res.Expr, res.Reason)
		}
	}
	return b.String()
}
