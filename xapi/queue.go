package xapi

import (
	"context"
	"sync"
)

// RequestQueue serializes platform API calls. The platform penalizes
// concurrent requests independently of the per-endpoint quota, so every call
// shares one worker that runs tasks strictly in submission order. This is
// pure serialization: no retries, no time-based throttling.
type RequestQueue struct {
	jobs   chan queueJob
	stopCh chan struct{}
	wg     sync.WaitGroup
}

type queueJob struct {
	ctx  context.Context
	fn   func(context.Context) error
	done chan error
}

// NewRequestQueue creates and starts a request queue. buffer bounds the
// number of tasks waiting for the worker.
func NewRequestQueue(buffer int) *RequestQueue {
	if buffer <= 0 {
		buffer = 64
	}
	q := &RequestQueue{
		jobs:   make(chan queueJob, buffer),
		stopCh: make(chan struct{}),
	}
	q.wg.Add(1)
	go q.run()
	return q
}

func (q *RequestQueue) run() {
	defer q.wg.Done()
	for {
		select {
		case <-q.stopCh:
			// Answer queued tasks so no caller blocks forever.
			for {
				select {
				case job := <-q.jobs:
					job.done <- ErrQueueStopped
				default:
					return
				}
			}
		case job := <-q.jobs:
			if job.ctx.Err() != nil {
				// Caller already gave up; don't waste the network call.
				job.done <- job.ctx.Err()
				continue
			}
			// A failing task only fails its own caller.
			job.done <- job.fn(job.ctx)
		}
	}
}

// Do runs fn on the queue worker and waits for its result. Tasks run one at
// a time in FIFO submission order. If ctx ends while the task is running,
// Do returns early and the task's eventual result is discarded.
func (q *RequestQueue) Do(ctx context.Context, fn func(context.Context) error) error {
	job := queueJob{ctx: ctx, fn: fn, done: make(chan error, 1)}

	select {
	case q.jobs <- job:
	case <-ctx.Done():
		return ctx.Err()
	case <-q.stopCh:
		return ErrQueueStopped
	}

	select {
	case err := <-job.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop shuts the worker down. Queued tasks fail with ErrQueueStopped.
func (q *RequestQueue) Stop() {
	close(q.stopCh)
	q.wg.Wait()
}
