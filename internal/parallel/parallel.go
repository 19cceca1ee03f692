// Package parallel fans independent work items out over a pool of goroutines.
package parallel

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled    bool // Whether parallel execution is enabled.
	NumWorkers int  // Number of worker goroutines to use.
	MinItems   int  // Below this many items work runs sequentially.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:    n > 1,
		NumWorkers: n,
		MinItems:   8,
	}
}

// WithWorkers returns cfg using n workers. n <= 0 keeps the current setting,
// n == 1 disables parallelism.
func (cfg Config) WithWorkers(n int) Config {
	switch {
	case n <= 0:
	case n == 1:
		cfg.Enabled = false
		cfg.NumWorkers = 1
	default:
		cfg.Enabled = true
		cfg.NumWorkers = n
	}
	return cfg
}

// For executes f(ctx, i) for i in [0, n).
//
// Items are handed out one at a time from a shared counter, so slow items do
// not hold up a whole chunk. Once ctx is done no new items start and
// ctx.Err() is returned; items already running finish.
// Falls back to sequential execution if parallelism is disabled or n is small.
func For(ctx context.Context, n int, f func(ctx context.Context, i int), cfg Config) error {
	if !cfg.Enabled || cfg.NumWorkers < 2 || n < cfg.MinItems {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			f(ctx, i)
		}
		return nil
	}

	var (
		wg   sync.WaitGroup
		next atomic.Int64
	)
	workers := min(cfg.NumWorkers, n)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ctx.Err() == nil {
				i := int(next.Add(1) - 1)
				if i >= n {
					return
				}
				f(ctx, i)
			}
		}()
	}
	wg.Wait()

	return ctx.Err()
}
