// Package config loads dualcheck settings from YAML.
//
// A config file only needs the keys it changes; everything else keeps the
// value from Default. Unknown keys are rejected.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/dualdiff/internal/check"
	"github.com/born-ml/dualdiff/internal/expr"
	"github.com/born-ml/dualdiff/internal/parallel"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds generator and harness settings.
type Config struct {
	Seed      uint64     `yaml:"seed"`
	Count     int        `yaml:"count"`
	MinTerms  int        `yaml:"min_terms"`
	MaxTerms  int        `yaml:"max_terms"`
	Domain    Domain     `yaml:"domain"`
	Methods   []string   `yaml:"methods"`
	Tolerance Tolerances `yaml:"tolerance"`
	Step      float64    `yaml:"step"`
	Workers   int        `yaml:"workers"` // 0 uses every CPU
	Database  string     `yaml:"database,omitempty"`
}

// Domain configures the sampled domain check.
type Domain struct {
	Min     float64       `yaml:"min"`
	Max     float64       `yaml:"max"`
	Samples int           `yaml:"samples"`
	Budget  time.Duration `yaml:"budget"`
}

// Tolerances holds one tolerance per reference method.
type Tolerances struct {
	Symbolic  Tolerance `yaml:"symbolic"`
	Numerical Tolerance `yaml:"numerical"`
}

// Tolerance mirrors check.Tolerance.
type Tolerance struct {
	Abs float64 `yaml:"abs"`
	Rel float64 `yaml:"rel"`
}

// Default returns the built-in settings.
func Default() Config {
	cc := check.DefaultConfig()
	d := expr.DefaultDomainOptions()
	g := expr.DefaultGenerateOptions()
	return Config{
		Seed:     cc.Seed,
		Count:    100,
		MinTerms: g.MinTerms,
		MaxTerms: g.MaxTerms,
		Domain: Domain{
			Min:     d.Min,
			Max:     d.Max,
			Samples: d.Samples,
			Budget:  d.Budget,
		},
		Methods: []string{check.Symbolic.String()},
		Tolerance: Tolerances{
			Symbolic:  Tolerance(cc.Symbolic),
			Numerical: Tolerance(cc.Numerical),
		},
		Step: cc.Step,
	}
}

// Load reads path over Default and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Write stores cfg as YAML at path.
func Write(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.Count < 0:
		return fmt.Errorf("%w: count %d is negative", ErrInvalidConfig, c.Count)
	case c.MinTerms < 1 || c.MaxTerms < c.MinTerms:
		return fmt.Errorf("%w: term range [%d, %d]", ErrInvalidConfig, c.MinTerms, c.MaxTerms)
	case c.Domain.Max <= c.Domain.Min:
		return fmt.Errorf("%w: domain [%g, %g] is empty", ErrInvalidConfig, c.Domain.Min, c.Domain.Max)
	case c.Domain.Samples < 2:
		return fmt.Errorf("%w: domain needs at least 2 samples, got %d", ErrInvalidConfig, c.Domain.Samples)
	case c.Domain.Budget < 0:
		return fmt.Errorf("%w: negative domain budget %s", ErrInvalidConfig, c.Domain.Budget)
	case c.Step <= 0:
		return fmt.Errorf("%w: step must be positive, got %g", ErrInvalidConfig, c.Step)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers %d is negative", ErrInvalidConfig, c.Workers)
	case len(c.Methods) == 0:
		return fmt.Errorf("%w: no methods", ErrInvalidConfig)
	}
	seen := make(map[check.Method]bool, len(c.Methods))
	for _, s := range c.Methods {
		m, err := check.ParseMethod(s)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		if seen[m] {
			return fmt.Errorf("%w: method %s listed twice", ErrInvalidConfig, m)
		}
		seen[m] = true
	}
	for name, t := range map[string]Tolerance{"symbolic": c.Tolerance.Symbolic, "numerical": c.Tolerance.Numerical} {
		if t.Abs < 0 || t.Rel < 0 {
			return fmt.Errorf("%w: %s tolerance must be non-negative", ErrInvalidConfig, name)
		}
	}
	return nil
}

// DomainOptions converts the domain settings.
func (c Config) DomainOptions() expr.DomainOptions {
	return expr.DomainOptions{
		Min:     c.Domain.Min,
		Max:     c.Domain.Max,
		Samples: c.Domain.Samples,
		Budget:  c.Domain.Budget,
	}
}

// GenerateOptions converts the generator settings.
func (c Config) GenerateOptions() expr.GenerateOptions {
	return expr.GenerateOptions{
		MinTerms: c.MinTerms,
		MaxTerms: c.MaxTerms,
		Domain:   c.DomainOptions(),
	}
}

// CheckConfig converts the harness settings.
func (c Config) CheckConfig() (check.Config, error) {
	methods := make([]check.Method, 0, len(c.Methods))
	for _, s := range c.Methods {
		m, err := check.ParseMethod(s)
		if err != nil {
			return check.Config{}, err
		}
		methods = append(methods, m)
	}
	return check.Config{
		Methods:   methods,
		Symbolic:  check.Tolerance(c.Tolerance.Symbolic),
		Numerical: check.Tolerance(c.Tolerance.Numerical),
		Step:      c.Step,
		Domain:    c.DomainOptions(),
		Seed:      c.Seed,
		Parallel:  parallel.DefaultConfig().WithWorkers(c.Workers),
	}, nil
}
