// Package engine validates many functions concurrently. Each function's
// validation owns its own validate.Tables/Origins exclusively and never
// blocks, so functions can be handed to a bounded worker pool and
// validated in parallel, the same way the enclosing query engine this
// package does not implement is expected to.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"golang.org/x/sync/errgroup"

	"github.com/Veeupup/dada/internal/diag"
	"github.com/Veeupup/dada/internal/syntax"
	"github.com/Veeupup/dada/internal/validate"
)

// DefaultPoolSize mirrors the conservative default the rest of the
// example corpus uses for a general-purpose CPU-bound worker pool.
const DefaultPoolSize = 10

// workerExpiry is how long an idle pool worker goroutine is kept around
// before being cleaned up.
const workerExpiry = 10 * time.Second

// Unit is one function to validate, paired with the name it should be
// reported under.
type Unit struct {
	Name     string
	Function *syntax.Function
}

// FunctionResult is one Unit's validation outcome.
type FunctionResult struct {
	Name        string
	Result      validate.Result
	Diagnostics []diag.Diagnostic
}

// Engine runs many validate.Validate calls concurrently over a bounded
// goroutine pool.
type Engine struct {
	poolSize int
}

// New creates an Engine with the given pool size; a non-positive size
// falls back to DefaultPoolSize.
func New(poolSize int) *Engine {
	if poolSize <= 0 {
		poolSize = DefaultPoolSize
	}
	return &Engine{poolSize: poolSize}
}

// ValidateAll validates every Unit concurrently, bounded by the
// Engine's pool size, and returns one FunctionResult per Unit in the
// same order Units were given. It returns the first unexpected
// (programming) error any validation goroutine panicked with; user
// diagnostics never surface as an error here, only through each
// FunctionResult's Diagnostics.
func (e *Engine) ValidateAll(ctx context.Context, units []Unit) ([]FunctionResult, error) {
	results := make([]FunctionResult, len(units))

	pool, err := ants.NewPool(e.poolSize, ants.WithOptions(ants.Options{ExpiryDuration: workerExpiry}))
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	group, ctx := errgroup.WithContext(ctx)
	var mu sync.Mutex

	for i, unit := range units {
		i, unit := i, unit
		group.Go(func() error {
			done := make(chan struct{})
			var panicErr error
			submitErr := pool.Submit(func() {
				defer close(done)
				defer func() {
					if r := recover(); r != nil {
						panicErr = fmt.Errorf("engine: validating %s panicked: %v", unit.Name, r)
					}
				}()
				collector := &diag.Collector{}
				result := validate.Validate(unit.Function, collector)

				mu.Lock()
				results[i] = FunctionResult{
					Name:        unit.Name,
					Result:      result,
					Diagnostics: collector.Diagnostics,
				}
				mu.Unlock()
			})
			if submitErr != nil {
				return submitErr
			}
			select {
			case <-done:
				return panicErr
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
