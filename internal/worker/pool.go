package worker

import (
	"context"
	"sync"
)

// Task is one unit of pool work. It receives the pool context and must
// return promptly once that context is done.
type Task[R any] func(ctx context.Context) R

// Pool runs tasks on a fixed set of goroutines and streams their results
// in completion order.
type Pool[R any] struct {
	size    int
	tasks   chan Task[R]
	results chan R

	ctx    context.Context
	cancel context.CancelFunc

	running   sync.WaitGroup
	finalized sync.Once
}

// NewPool creates a pool of size workers bound to ctx. Cancelling ctx
// stops the workers; size below one is raised to one.
func NewPool[R any](ctx context.Context, size int) *Pool[R] {
	size = max(size, 1)
	poolCtx, cancel := context.WithCancel(ctx)
	return &Pool[R]{
		size:    size,
		tasks:   make(chan Task[R], size),
		results: make(chan R, size),
		ctx:     poolCtx,
		cancel:  cancel,
	}
}

// Start launches the workers
func (p *Pool[R]) Start() {
	p.running.Add(p.size)
	for range p.size {
		go p.run()
	}
}

func (p *Pool[R]) run() {
	defer p.running.Done()
	for {
		select {
		case <-p.ctx.Done():
			return
		case task, ok := <-p.tasks:
			if !ok {
				return
			}
			r := task(p.ctx)
			select {
			case p.results <- r:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Go queues task, blocking while the queue is full. It reports false once
// the pool is stopped. Go must not be called after Close.
func (p *Pool[R]) Go(task Task[R]) bool {
	if p.ctx.Err() != nil {
		return false
	}
	select {
	case p.tasks <- task:
		return true
	case <-p.ctx.Done():
		return false
	}
}

// Results streams results; it closes after Close or Stop once every
// worker has exited.
func (p *Pool[R]) Results() <-chan R {
	return p.results
}

// Close ends submission. Queued tasks still run.
func (p *Pool[R]) Close() {
	close(p.tasks)
	go p.finish()
}

// Drain closes the pool and collects every remaining result
func (p *Pool[R]) Drain() []R {
	p.Close()
	var out []R
	for r := range p.results {
		out = append(out, r)
	}
	return out
}

// Stop cancels queued and running tasks and waits for the workers
func (p *Pool[R]) Stop() {
	p.cancel()
	p.finish()
}

func (p *Pool[R]) finish() {
	p.running.Wait()
	p.finalized.Do(func() {
		close(p.results)
		p.cancel()
	})
}
