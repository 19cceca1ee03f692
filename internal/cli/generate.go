package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/born-ml/dualdiff/internal/expr"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	Count int
	Seed  uint64
	Out   string
}

// GenerateResult is the JSON form of the generate command.
type GenerateResult struct {
	Seed        uint64   `json:"seed"`
	Attempts    int      `json:"attempts"`
	Expressions []string `json:"expressions"`
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate random differentiable functions",
		Long: `Generate random single-variable expressions.

Expressions without any valid point in the sampled domain are dropped, so
fewer than --count expressions may be written.

Examples:
  dualcheck generate --count 100 --out functions.dat
  dualcheck generate --seed 7 --count 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.Config
			if !cmd.Flags().Changed("count") {
				opts.Count = cfg.Count
			}
			if !cmd.Flags().Changed("seed") {
				opts.Seed = cfg.Seed
			}
			return runGenerate(opts, cmd)
		},
	}

	cmd.Flags().IntVarP(&opts.Count, "count", "n", 100, "number of expressions to attempt")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 1, "random seed")
	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "output file (default stdout)")

	return cmd
}

func runGenerate(opts *GenerateOptions, cmd *cobra.Command) error {
	if opts.Count < 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("count %d is negative", opts.Count))
	}

	g := expr.NewGenerator(opts.Seed)
	exprs, err := g.Generate(cmd.Context(), opts.Count, opts.Config.GenerateOptions())
	if err != nil {
		return WrapExitError(ExitCommandError, "generate", err)
	}

	if opts.Out == "" {
		if opts.Format == "json" {
			return opts.formatter(cmd).Success(GenerateResult{Seed: opts.Seed, Attempts: opts.Count, Expressions: exprs}, "")
		}
		return expr.WriteFunctions(cmd.OutOrStdout(), exprs)
	}

	f, err := os.Create(opts.Out)
	if err != nil {
		return WrapExitError(ExitCommandError, "create output", err)
	}
	if err := expr.WriteFunctions(f, exprs); err != nil {
		f.Close()
		return WrapExitError(ExitCommandError, "write output", err)
	}
	if err := f.Close(); err != nil {
		return WrapExitError(ExitCommandError, "write output", err)
	}

	res := GenerateResult{Seed: opts.Seed, Attempts: opts.Count, Expressions: exprs}
	return opts.formatter(cmd).Success(res, fmt.Sprintf("wrote %d of %d expressions to %s\n", len(exprs), opts.Count, opts.Out))
}
