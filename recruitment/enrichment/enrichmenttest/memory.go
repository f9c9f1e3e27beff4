// Package enrichmenttest provides an in-process JobQueue for tests.
package enrichmenttest

import (
	"context"
	"sync"
	"time"

	"github.com/Abraxas-365/hiresight/recruitment/enrichment"
)

type delayedJob struct {
	job enrichment.Job
	due time.Time
}

// MemoryQueue is a FIFO queue. An empty Dequeue waits briefly so that
// polling workers do not spin.
type MemoryQueue struct {
	mu      sync.Mutex
	ready   []enrichment.Job
	delayed []delayedJob
	Now     func() time.Time
}

var _ enrichment.JobQueue = (*MemoryQueue)(nil)

func NewMemoryQueue() *MemoryQueue {
	return &MemoryQueue{Now: time.Now}
}

func (q *MemoryQueue) Enqueue(_ context.Context, job enrichment.Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.ready = append(q.ready, job)
	return nil
}

func (q *MemoryQueue) Dequeue(ctx context.Context, timeout time.Duration) (*enrichment.Job, error) {
	q.mu.Lock()
	if len(q.ready) > 0 {
		job := q.ready[0]
		q.ready = q.ready[1:]
		q.mu.Unlock()
		return &job, nil
	}
	q.mu.Unlock()

	t := time.NewTimer(min(timeout, 5*time.Millisecond))
	defer t.Stop()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-t.C:
	}
	return nil, nil
}

func (q *MemoryQueue) EnqueueDelayed(_ context.Context, job enrichment.Job, delay time.Duration) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.delayed = append(q.delayed, delayedJob{job: job, due: q.Now().Add(delay)})
	return nil
}

func (q *MemoryQueue) MoveDelayedToReady(_ context.Context) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	now := q.Now()
	kept := q.delayed[:0]
	moved := 0
	for _, d := range q.delayed {
		if d.due.After(now) {
			kept = append(kept, d)
			continue
		}
		q.ready = append(q.ready, d.job)
		moved++
	}
	q.delayed = kept
	return moved, nil
}

func (q *MemoryQueue) Stats(_ context.Context) (enrichment.Stats, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return enrichment.Stats{Queue: "memory", Ready: int64(len(q.ready)), Delayed: int64(len(q.delayed))}, nil
}

// Delayed returns the jobs waiting for a retry
func (q *MemoryQueue) Delayed() []enrichment.Job {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]enrichment.Job, 0, len(q.delayed))
	for _, d := range q.delayed {
		out = append(out, d.job)
	}
	return out
}
