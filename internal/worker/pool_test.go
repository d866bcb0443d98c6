package worker

import (
	"context"
	"slices"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewPool_Size(t *testing.T) {
	tests := []struct {
		input    int
		expected int
	}{
		{5, 5},
		{0, 1},
		{-3, 1},
	}
	for _, tt := range tests {
		p := NewPool[int](context.Background(), tt.input)
		if p.size != tt.expected {
			t.Errorf("NewPool(%d): expected %d workers, got %d", tt.input, tt.expected, p.size)
		}
	}
}

func TestPool_Drain(t *testing.T) {
	pool := NewPool[int](context.Background(), 3)
	pool.Start()

	// stays under queue plus result buffer capacity, so Go never blocks
	for i := range 6 {
		if !pool.Go(func(context.Context) int { return i * i }) {
			t.Fatalf("task %d rejected", i)
		}
	}

	got := pool.Drain()
	slices.Sort(got)
	want := []int{0, 1, 4, 9, 16, 25}
	if !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestPool_BoundedConcurrency(t *testing.T) {
	const workers = 3
	pool := NewPool[struct{}](context.Background(), workers)
	pool.Start()

	var running, peak atomic.Int32
	task := func(context.Context) struct{} {
		n := running.Add(1)
		for {
			old := peak.Load()
			if n <= old || peak.CompareAndSwap(old, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		running.Add(-1)
		return struct{}{}
	}

	go func() {
		defer pool.Close()
		for range 30 {
			pool.Go(task)
		}
	}()

	received := 0
	for range pool.Results() {
		received++
	}

	if received != 30 {
		t.Errorf("expected 30 results, got %d", received)
	}
	if p := peak.Load(); p > workers {
		t.Errorf("peak concurrency %d exceeded %d workers", p, workers)
	}
}

func TestPool_GoAfterStop(t *testing.T) {
	pool := NewPool[int](context.Background(), 2)
	pool.Start()
	pool.Stop()

	if pool.Go(func(context.Context) int { return 1 }) {
		t.Error("expected Go to be rejected after Stop")
	}
	if _, open := <-pool.Results(); open {
		t.Error("expected results to be closed after Stop")
	}
}

func TestPool_StopCancelsRunningTask(t *testing.T) {
	pool := NewPool[error](context.Background(), 1)
	pool.Start()

	started := make(chan struct{})
	pool.Go(func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	})
	<-started

	done := make(chan struct{})
	go func() {
		pool.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return")
	}
}

func TestPool_ParentCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pool := NewPool[int](ctx, 1)
	pool.Start()
	cancel()

	if pool.Go(func(context.Context) int { return 1 }) {
		t.Error("expected Go to be rejected after parent cancel")
	}

	done := make(chan struct{})
	go func() {
		pool.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop after parent cancel timed out")
	}
}
