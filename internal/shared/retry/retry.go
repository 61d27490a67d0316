// Package retry wraps operations with bounded retries and exponential backoff.
// Client faults (validation, not found, conflict) abort immediately and are
// re-raised unchanged; systemic errors are retried until attempts are
// exhausted, then wrapped into an internal AppError carrying the attempt
// count and the last cause.
package retry

import (
	"context"
	"fmt"
	"time"

	apperrors "subtrack/internal/shared/errors"
	"subtrack/internal/shared/logger"
)

const (
	// DefaultMaxAttempts is the total number of invocations before giving up.
	DefaultMaxAttempts = 3
	// DefaultBaseDelay is the delay before the first re-attempt; the delay
	// before attempt i is base * 2^(i-1).
	DefaultBaseDelay = time.Second
)

// Executor retries an operation with exponential backoff. Operations passed
// to Do must be idempotent with respect to re-execution.
type Executor struct {
	maxAttempts int
	baseDelay   time.Duration
	logger      logger.Interface
}

// Option configures an Executor.
type Option func(*Executor)

// WithMaxAttempts sets the total attempt budget.
func WithMaxAttempts(n int) Option {
	return func(e *Executor) {
		if n > 0 {
			e.maxAttempts = n
		}
	}
}

// WithBaseDelay sets the delay before the first re-attempt.
func WithBaseDelay(d time.Duration) Option {
	return func(e *Executor) {
		if d > 0 {
			e.baseDelay = d
		}
	}
}

// NewExecutor creates an Executor with the default attempt budget and backoff.
func NewExecutor(log logger.Interface, opts ...Option) *Executor {
	e := &Executor{
		maxAttempts: DefaultMaxAttempts,
		baseDelay:   DefaultBaseDelay,
		logger:      log,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MaxAttempts returns the configured attempt budget.
func (e *Executor) MaxAttempts() int {
	return e.maxAttempts
}

// Do invokes fn up to the attempt budget. The backoff sleep suspends only the
// calling goroutine and wakes early if ctx is cancelled.
func (e *Executor) Do(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 1; attempt <= e.maxAttempts; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}

		if apperrors.IsClientFault(err) {
			return err
		}

		lastErr = err
		if attempt == e.maxAttempts {
			break
		}

		delay := e.baseDelay << (attempt - 1)
		e.logger.Warnw("operation failed, retrying",
			"operation", operation,
			"attempt", attempt,
			"max_attempts", e.maxAttempts,
			"delay", delay,
			"error", err,
		)

		if err := sleep(ctx, delay); err != nil {
			return err
		}
	}

	e.logger.Errorw("operation failed, attempts exhausted",
		"operation", operation,
		"attempts", e.maxAttempts,
		"error", lastErr,
	)

	return apperrors.NewInternalError(
		fmt.Sprintf("operation failed after %d attempts", e.maxAttempts),
		lastErr.Error(),
	)
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
