package channel

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// executor runs query tasks with at most workers in flight and at most
// queueSize more waiting. Work beyond that is rejected with ErrQueueFull.
type executor struct {
	sem     *semaphore.Weighted
	pending atomic.Int64
	limit   int64
}

func newExecutor(workers, queueSize int) *executor {
	return &executor{
		sem:   semaphore.NewWeighted(int64(workers)),
		limit: int64(workers + queueSize),
	}
}

func (e *executor) run(ctx context.Context, task func(context.Context) (any, error)) (any, error) {
	if e.pending.Add(1) > e.limit {
		e.pending.Add(-1)
		return nil, ErrQueueFull
	}
	defer e.pending.Add(-1)

	if err := e.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer e.sem.Release(1)

	return task(ctx)
}
