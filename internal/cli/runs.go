package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/born-ml/dualdiff/internal/store"
)

// RunsOptions holds flags for the runs command.
type RunsOptions struct {
	*RootOptions
	DB string
}

// NewRunsCommand creates the runs command.
func NewRunsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "runs [run-id]",
		Short: "List recorded check runs or show one",
		Long: `List the check runs recorded with "check --db", most recent first.
With a run id, print that run's report.

Examples:
  dualcheck runs --db runs.db
  dualcheck runs --db runs.db 1b4e28ba-2fa1-11d2-883f-0016d3cca427`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("db") {
				opts.DB = opts.Config.Database
			}
			if opts.DB == "" {
				return NewExitError(ExitCommandError, "no database: pass --db or set database in the config")
			}
			if len(args) == 1 {
				return runShowRun(opts, args[0], cmd)
			}
			return runListRuns(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "", "SQLite database with recorded runs")

	return cmd
}

func runListRuns(opts *RunsOptions, cmd *cobra.Command) error {
	st, err := store.Open(opts.DB)
	if err != nil {
		return WrapExitError(ExitCommandError, "open database", err)
	}
	defer st.Close()

	runs, err := st.ListRuns(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "list runs", err)
	}

	var b strings.Builder
	for _, r := range runs {
		fmt.Fprintf(&b, "%s  %s  passed=%d failed=%d skipped=%d\n",
			r.ID, r.Started.Format("2006-01-02 15:04:05"), r.Passed, r.Failed, r.Skipped)
	}
	return opts.formatter(cmd).Success(runs, b.String())
}

func runShowRun(opts *RunsOptions, arg string, cmd *cobra.Command) error {
	id, err := uuid.Parse(arg)
	if err != nil {
		return WrapExitError(ExitCommandError, "run id", err)
	}

	st, err := store.Open(opts.DB)
	if err != nil {
		return WrapExitError(ExitCommandError, "open database", err)
	}
	defer st.Close()

	report, err := st.LoadReport(cmd.Context(), id)
	if errors.Is(err, store.ErrRunNotFound) {
		return WrapExitError(ExitFailure, "show run", err)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "show run", err)
	}
	return opts.formatter(cmd).Success(report, formatReport(report, opts.Verbose))
}
