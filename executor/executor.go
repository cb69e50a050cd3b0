// Package executor bounds otherwise-blocking calls with a wall-clock limit.
package executor

import (
	"context"
	"errors"
	"time"
)

// ErrTimeout is returned when an operation does not complete within its limit.
var ErrTimeout = errors.New("operation timed out")

// RunBounded runs op on its own goroutine and waits at most limit for it to
// finish. If op completes in time, its result and error are returned
// unchanged. If the limit elapses first, RunBounded returns ErrTimeout
// immediately and the in-flight operation is abandoned: its context is
// cancelled, but a backend that ignores cancellation keeps running in the
// background until it finishes on its own and its result is discarded. Callers
// should treat that as a resource-leak tradeoff, not a cancellation guarantee.
//
// RunBounded is reentrant; each call gets its own goroutine and channel.
func RunBounded[T any](ctx context.Context, limit time.Duration, op func(context.Context) (T, error)) (T, error) {
	type outcome struct {
		value T
		err   error
	}

	opCtx, cancel := context.WithCancel(ctx)

	// Buffered so the abandoned goroutine can deliver and exit.
	done := make(chan outcome, 1)
	go func() {
		value, err := op(opCtx)
		done <- outcome{value: value, err: err}
	}()

	timer := time.NewTimer(limit)
	defer timer.Stop()

	var zero T
	select {
	case out := <-done:
		cancel()
		return out.value, out.err
	case <-timer.C:
		cancel()
		return zero, ErrTimeout
	case <-ctx.Done():
		cancel()
		return zero, ctx.Err()
	}
}
