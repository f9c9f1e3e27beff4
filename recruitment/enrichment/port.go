package enrichment

import (
	"context"
	"time"
)

// JobQueue holds enrichment jobs. Retries wait in a delayed set until they
// are due.
type JobQueue interface {
	Enqueue(ctx context.Context, job Job) error

	// Dequeue blocks up to timeout; it returns nil, nil when nothing arrived
	Dequeue(ctx context.Context, timeout time.Duration) (*Job, error)

	EnqueueDelayed(ctx context.Context, job Job, delay time.Duration) error

	// MoveDelayedToReady promotes due retries and returns how many moved
	MoveDelayedToReady(ctx context.Context) (int, error)

	Stats(ctx context.Context) (Stats, error)
}
