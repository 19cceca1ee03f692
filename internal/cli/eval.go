package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/born-ml/dualdiff/internal/expr"
)

// EvalOptions holds flags for the eval command.
type EvalOptions struct {
	*RootOptions
	At       float64
	Symbolic bool // Also print the symbolic derivative
}

// EvalResult is the output of the eval command.
type EvalResult struct {
	Expr       string  `json:"expr"`
	X          float64 `json:"x"`
	Value      float64 `json:"value"`
	Derivative float64 `json:"derivative"`
	Symbolic   string  `json:"symbolic,omitempty"`
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvalOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "eval <expr>",
		Short: "Evaluate an expression and its derivative",
		Long: `Evaluate f(x) and f'(x) in one pass with dual numbers.

Examples:
  dualcheck eval "5*x**2 + 2*x + 2" --at 2
  dualcheck eval "x**x" --at 2 --symbolic`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(opts, args[0], cmd)
		},
	}

	cmd.Flags().Float64Var(&opts.At, "at", 0, "point at which to evaluate")
	cmd.Flags().BoolVar(&opts.Symbolic, "symbolic", false, "also print the symbolic derivative")

	return cmd
}

func runEval(opts *EvalOptions, input string, cmd *cobra.Command) error {
	n, err := expr.Parse(input)
	if err != nil {
		return WrapExitError(ExitCommandError, "parse", err)
	}

	value, deriv, err := expr.EvalDual(n, opts.At)
	if err != nil {
		return WrapExitError(ExitFailure, fmt.Sprintf("evaluate at %g", opts.At), err)
	}

	res := EvalResult{Expr: n.String(), X: opts.At, Value: value, Derivative: deriv}
	text := fmt.Sprintf("f(%g) = %g\nf'(%g) = %g\n", opts.At, value, opts.At, deriv)
	if opts.Symbolic {
		res.Symbolic = expr.Diff(n).String()
		text += fmt.Sprintf("f'(x) = %s\n", res.Symbolic)
	}
	return opts.formatter(cmd).Success(res, text)
}
