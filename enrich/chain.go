// Package enrich runs the enrichment stages of an article. Each stage is a
// chain of strategies tried in order until one succeeds.
package enrich

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/scoop"
)

// Chain is an ordered list of fallback strategies for one stage.
type Chain[T any] struct {
	Stage      string
	Strategies []scoop.Strategy[T]

	// Timeout bounds each attempt. Zero means no extra bound.
	Timeout time.Duration
}

// Run tries each strategy in order and returns the first successful
// output. The report records every failed attempt. The boolean is false
// when no strategy succeeded.
func (c Chain[T]) Run(ctx context.Context, in scoop.StageInput) (T, scoop.StageReport, bool) {
	var zero T
	report := scoop.StageReport{Stage: c.Stage, State: scoop.StateNotAttempted}
	if len(c.Strategies) == 0 {
		return zero, report, false
	}

	for _, s := range c.Strategies {
		if err := ctx.Err(); err != nil {
			report.Attempts = append(report.Attempts, scoop.Attempt{Method: s.Name(), Err: err.Error()})
			break
		}
		out, err := c.attempt(ctx, s, in)
		if err == nil {
			report.State = scoop.StateSucceeded
			report.Method = s.Name()
			return out, report, true
		}
		report.Attempts = append(report.Attempts, scoop.Attempt{Method: s.Name(), Err: describe(err)})
	}

	report.State = scoop.StateExhausted
	return zero, report, false
}

type outcome[T any] struct {
	value T
	err   error
}

// attempt runs one strategy under the chain timeout. A panic is reported
// as a stage failure.
func (c Chain[T]) attempt(ctx context.Context, s scoop.Strategy[T], in scoop.StageInput) (T, error) {
	var zero T
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	done := make(chan outcome[T], 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome[T]{err: scoop.Errorf(scoop.ESTAGE, "%s panicked: %v", s.Name(), r)}
			}
		}()
		v, err := s.Attempt(ctx, in)
		done <- outcome[T]{value: v, err: err}
	}()

	select {
	case o := <-done:
		return o.value, o.err
	case <-ctx.Done():
		return zero, scoop.Errorf(scoop.ESTAGE, "%s: %v", s.Name(), ctx.Err())
	}
}

func describe(err error) string {
	if code := scoop.ErrorCode(err); code != scoop.EINTERNAL {
		return fmt.Sprintf("%s: %s", code, scoop.ErrorMessage(err))
	}
	return err.Error()
}
