package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/dualdiff/internal/check"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dualcheck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault_Valid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 4, cfg.MinTerms)
	assert.Equal(t, 6, cfg.MaxTerms)
	assert.Equal(t, 5*time.Second, cfg.Domain.Budget)
	assert.Equal(t, []string{"symbolic"}, cfg.Methods)
}

func TestLoad_PartialOverridesDefaults(t *testing.T) {
	path := writeFile(t, `
seed: 42
count: 10
domain:
  min: -5
  max: 5
  budget: 250ms
methods: [symbolic, numerical]
tolerance:
  numerical:
    rel: 0.05
workers: 2
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, 10, cfg.Count)
	assert.Equal(t, -5.0, cfg.Domain.Min)
	assert.Equal(t, 5.0, cfg.Domain.Max)
	assert.Equal(t, 2001, cfg.Domain.Samples, "untouched key keeps default")
	assert.Equal(t, 250*time.Millisecond, cfg.Domain.Budget)
	assert.Equal(t, 0.05, cfg.Tolerance.Numerical.Rel)
	assert.Equal(t, Default().Tolerance.Numerical.Abs, cfg.Tolerance.Numerical.Abs)

	cc, err := cfg.CheckConfig()
	require.NoError(t, err)
	assert.Equal(t, []check.Method{check.Symbolic, check.Numerical}, cc.Methods)
	assert.Equal(t, uint64(42), cc.Seed)
	assert.Equal(t, 2, cc.Parallel.NumWorkers)
	assert.Equal(t, -5.0, cc.Domain.Min)

	g := cfg.GenerateOptions()
	assert.Equal(t, 4, g.MinTerms)
	assert.Equal(t, 250*time.Millisecond, g.Domain.Budget)
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeFile(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_UnknownKey(t *testing.T) {
	_, err := Load(writeFile(t, "sede: 1\n"))
	assert.Error(t, err)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_RepeatedMethod(t *testing.T) {
	_, err := Load(writeFile(t, "methods: [symbolic, symbolic]\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(writeFile(t, "min_terms: 5\nmax_terms: 2\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative count", func(c *Config) { c.Count = -1 }},
		{"zero min terms", func(c *Config) { c.MinTerms = 0 }},
		{"empty domain", func(c *Config) { c.Domain.Max = c.Domain.Min }},
		{"one sample", func(c *Config) { c.Domain.Samples = 1 }},
		{"negative budget", func(c *Config) { c.Domain.Budget = -time.Second }},
		{"zero step", func(c *Config) { c.Step = 0 }},
		{"negative workers", func(c *Config) { c.Workers = -2 }},
		{"no methods", func(c *Config) { c.Methods = nil }},
		{"unknown method", func(c *Config) { c.Methods = []string{"automatic"} }},
		{"repeated method", func(c *Config) { c.Methods = []string{"symbolic", "Symbolic"} }},
		{"negative tolerance", func(c *Config) { c.Tolerance.Symbolic.Rel = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	want := Default()
	want.Seed = 7
	want.Database = "runs.db"

	require.NoError(t, Write(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
