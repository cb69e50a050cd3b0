package executor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestRunBoundedReturnsResult(t *testing.T) {
	got, err := RunBounded(context.Background(), 5*time.Second, func(ctx context.Context) (string, error) {
		time.Sleep(10 * time.Millisecond)
		return "done", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "done" {
		t.Errorf("expected 'done', got '%s'", got)
	}
}

func TestRunBoundedPropagatesError(t *testing.T) {
	wantErr := errors.New("backend failed")
	_, err := RunBounded(context.Background(), 5*time.Second, func(ctx context.Context) (int, error) {
		return 0, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("expected operation error to pass through unchanged, got %v", err)
	}
}

func TestRunBoundedTimesOut(t *testing.T) {
	start := time.Now()
	_, err := RunBounded(context.Background(), 200*time.Millisecond, func(ctx context.Context) (string, error) {
		<-make(chan struct{}) // never completes
		return "", nil
	})
	elapsed := time.Since(start)

	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
	if elapsed < 150*time.Millisecond || elapsed > 2*time.Second {
		t.Errorf("timeout fired after %v, expected roughly 200ms", elapsed)
	}
}

func TestRunBoundedCancelsOperationContext(t *testing.T) {
	cancelled := make(chan struct{})
	_, err := RunBounded(context.Background(), 50*time.Millisecond, func(ctx context.Context) (string, error) {
		<-ctx.Done()
		close(cancelled)
		return "", ctx.Err()
	})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Error("abandoned operation never observed context cancellation")
	}
}

func TestRunBoundedConcurrentCallsAreIndependent(t *testing.T) {
	var wg sync.WaitGroup
	results := make([]int, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got, err := RunBounded(context.Background(), time.Second, func(ctx context.Context) (int, error) {
				return i * 2, nil
			})
			if err != nil {
				t.Errorf("call %d: unexpected error: %v", i, err)
				return
			}
			results[i] = got
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		if got != i*2 {
			t.Errorf("call %d: expected %d, got %d", i, i*2, got)
		}
	}
}
