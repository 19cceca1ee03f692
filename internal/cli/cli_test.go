package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/dualdiff/internal/dual"
	"github.com/born-ml/dualdiff/internal/expr"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "dualcheck", cmd.Use)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"eval", "generate", "check", "runs", "version"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)

	format := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "text", format.DefValue)

	cfg := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, cfg)
	assert.Equal(t, "", cfg.DefValue)
}

func TestInvalidFormat(t *testing.T) {
	_, err := execute(t, "version", "--format", "yaml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, Version)
}

func TestEval_Text(t *testing.T) {
	out, err := execute(t, "eval", "5*x**2 + 2*x + 2", "--at", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "f(2) = 26")
	assert.Contains(t, out, "f'(2) = 22")
}

func TestEval_JSON(t *testing.T) {
	out, err := execute(t, "eval", "x**x", "--at", "2", "--symbolic", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   EvalResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 4.0, resp.Data.Value)
	assert.InDelta(t, 6.772588722239781, resp.Data.Derivative, 1e-12)
	assert.NotEmpty(t, resp.Data.Symbolic)
}

func TestEval_Errors(t *testing.T) {
	_, err := execute(t, "eval", "x + * 2")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.ErrorIs(t, err, expr.ErrSyntax)

	_, err = execute(t, "eval", "log(x)", "--at", "0")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.ErrorIs(t, err, dual.ErrDomain)

	_, err = execute(t, "eval", "1/x", "--at", "0")
	assert.ErrorIs(t, err, dual.ErrDivisionByZero)
}

func TestGenerate_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "functions.dat")

	_, err := execute(t, "generate", "--count", "5", "--seed", "3", "--out", path)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	exprs, err := expr.ReadFunctions(f)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(exprs), 5)
	for _, s := range exprs {
		_, err := expr.Parse(s)
		assert.NoError(t, err, s)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a, err := execute(t, "generate", "--count", "4", "--seed", "11")
	require.NoError(t, err)
	b, err := execute(t, "generate", "--count", "4", "--seed", "11")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerate_UsesConfig(t *testing.T) {
	cfg := writeTemp(t, "dualcheck.yaml", "seed: 11\ncount: 4\n")

	fromConfig, err := execute(t, "generate", "--config", cfg)
	require.NoError(t, err)
	fromFlags, err := execute(t, "generate", "--count", "4", "--seed", "11")
	require.NoError(t, err)
	assert.Equal(t, fromFlags, fromConfig)
}

func TestCheck_RepeatedMethodConfig(t *testing.T) {
	cfg := writeTemp(t, "dualcheck.yaml", "methods: [symbolic, symbolic]\n")
	functions := writeTemp(t, "functions.dat", sampleFunctions)

	_, err := execute(t, "check", functions, "--config", cfg, "--db", filepath.Join(t.TempDir(), "runs.db"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestCheck_NumericalFlagWithNumericalConfig(t *testing.T) {
	cfg := writeTemp(t, "dualcheck.yaml", "methods: [symbolic, numerical]\n")
	functions := writeTemp(t, "functions.dat", sampleFunctions)

	_, err := execute(t, "check", functions, "--config", cfg, "--numerical", "--db", filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
}

func TestConfig_Invalid(t *testing.T) {
	cfg := writeTemp(t, "dualcheck.yaml", "step: -1\n")
	_, err := execute(t, "version", "--config", cfg)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

const sampleFunctions = `# sample
5*x**2 + 2*x + 2
cos(x)**2 + x**3/1000

sin(x)*exp(x/100)
log(-1 - x**2)
`

func TestCheck_AndRuns(t *testing.T) {
	functions := writeTemp(t, "functions.dat", sampleFunctions)
	db := filepath.Join(t.TempDir(), "runs.db")

	out, err := execute(t, "check", functions, "--db", db, "--format", "json")
	require.NoError(t, err, out)

	var resp struct {
		Status string       `json:"status"`
		Data   CheckSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 4, resp.Data.Total)
	assert.Equal(t, 3, resp.Data.Passed)
	assert.Equal(t, 1, resp.Data.Skipped)
	assert.Zero(t, resp.Data.Failed)

	out, err = execute(t, "runs", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, resp.Data.RunID)
	assert.Contains(t, out, "passed=3 failed=0 skipped=1")

	out, err = execute(t, "runs", "--db", db, "-v", resp.Data.RunID)
	require.NoError(t, err)
	assert.Contains(t, out, "4 checked, 3 passed, 0 failed, 1 skipped")
	assert.Contains(t, out, "SKIP [3] log(-1 - x**2)")
}

func TestCheck_Text(t *testing.T) {
	functions := writeTemp(t, "functions.dat", sampleFunctions)

	out, err := execute(t, "check", functions, "--numerical", "--workers", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "4 checked, 3 passed, 0 failed, 1 skipped")
	assert.NotContains(t, out, "SKIP")
}

func TestCheck_Errors(t *testing.T) {
	_, err := execute(t, "check", filepath.Join(t.TempDir(), "missing.dat"))
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, err = execute(t, "check", writeTemp(t, "empty.dat", "# nothing\n"))
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.ErrorIs(t, err, errNoFunctions)
}

func TestRuns_Errors(t *testing.T) {
	_, err := execute(t, "runs")
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	db := filepath.Join(t.TempDir(), "runs.db")
	_, err = execute(t, "runs", "--db", db, "not-a-uuid")
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, err = execute(t, "runs", "--db", db, "1b4e28ba-2fa1-11d2-883f-0016d3cca427")
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad")))

	wrapped := WrapExitError(ExitFailure, "outer", os.ErrNotExist)
	assert.Equal(t, ExitFailure, GetExitCode(wrapped))
	assert.ErrorIs(t, wrapped, os.ErrNotExist)
	assert.True(t, strings.HasPrefix(wrapped.Error(), "outer: "))
}
