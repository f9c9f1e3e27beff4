// Package worker runs enrichment jobs from the queue.
package worker

import (
	"context"
	"errors"
	"time"

	"github.com/Abraxas-365/hiresight/pkg/logx"
	"github.com/Abraxas-365/hiresight/recruitment/enrichment"
	"golang.org/x/sync/errgroup"
)

// Processor runs one job
type Processor interface {
	Process(ctx context.Context, job *enrichment.Job) error
}

type Config struct {
	Workers      int
	PollTimeout  time.Duration
	MoveInterval time.Duration
}

// Pool runs Workers goroutines dequeuing jobs plus one goroutine promoting
// due retries
type Pool struct {
	processor Processor
	queue     enrichment.JobQueue
	cfg       Config
}

func NewPool(processor Processor, queue enrichment.JobQueue, cfg Config) *Pool {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = 5 * time.Second
	}
	if cfg.MoveInterval <= 0 {
		cfg.MoveInterval = 30 * time.Second
	}
	return &Pool{processor: processor, queue: queue, cfg: cfg}
}

// Run blocks until ctx is cancelled and every worker has returned
func (p *Pool) Run(ctx context.Context) error {
	logx.Infof("Starting %d enrichment workers", p.cfg.Workers)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p.moveDelayedJobs(ctx)
		return nil
	})
	for i := range p.cfg.Workers {
		g.Go(func() error {
			p.processJobs(ctx, i)
			return nil
		})
	}
	return g.Wait()
}

func (p *Pool) processJobs(ctx context.Context, workerID int) {
	logx.Debugf("Worker %d started", workerID)

	for {
		select {
		case <-ctx.Done():
			logx.Debugf("Worker %d stopping", workerID)
			return
		default:
		}

		job, err := p.queue.Dequeue(ctx, p.cfg.PollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logx.Errorf("Worker %d dequeue error: %v", workerID, err)
			sleep(ctx, time.Second)
			continue
		}
		if job == nil {
			continue
		}

		if err := p.processor.Process(ctx, job); err != nil && !errors.Is(err, context.Canceled) {
			logx.With("worker", workerID, "job_id", job.ID).Warnf("enrichment job failed: %v", err)
		}
	}
}

func (p *Pool) moveDelayedJobs(ctx context.Context) {
	ticker := time.NewTicker(p.cfg.MoveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := p.queue.MoveDelayedToReady(ctx)
			if err != nil {
				logx.Errorf("Failed to move delayed jobs: %v", err)
			} else if count > 0 {
				logx.Infof("Moved %d delayed jobs to ready queue", count)
			}
		}
	}
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
