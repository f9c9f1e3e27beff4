package enrichmentsrv

import (
	"context"
	"time"

	"github.com/Abraxas-365/hiresight/internal/ai/scoring"
	"github.com/Abraxas-365/hiresight/pkg/errx"
	"github.com/Abraxas-365/hiresight/pkg/kernel"
	"github.com/Abraxas-365/hiresight/pkg/logx"
	"github.com/Abraxas-365/hiresight/recruitment/candidate"
	"github.com/Abraxas-365/hiresight/recruitment/enrichment"
	"github.com/google/uuid"
)

const DefaultRetryDelay = time.Minute

// Service schedules and runs candidate enrichment
type Service struct {
	queue         enrichment.JobQueue
	candidateRepo candidate.Repository
	engine        *scoring.Engine
	maxAttempts   int
	retryDelay    time.Duration
}

type Option func(*Service)

func WithMaxAttempts(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithRetryDelay sets the wait before the first retry; later retries double it
func WithRetryDelay(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.retryDelay = d
		}
	}
}

func NewService(queue enrichment.JobQueue, candidateRepo candidate.Repository, engine *scoring.Engine, opts ...Option) *Service {
	s := &Service{
		queue:         queue,
		candidateRepo: candidateRepo,
		engine:        engine,
		maxAttempts:   enrichment.DefaultMaxAttempts,
		retryDelay:    DefaultRetryDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ candidate.EnrichmentQueue = (*Service)(nil)

// Enqueue schedules enrichment of one candidate
func (s *Service) Enqueue(ctx context.Context, tenantID kernel.TenantID, candidateID kernel.CandidateID) error {
	job := enrichment.Job{
		ID:          kernel.NewEnrichmentJobID(uuid.NewString()),
		TenantID:    tenantID,
		CandidateID: candidateID,
		MaxAttempts: s.maxAttempts,
		EnqueuedAt:  time.Now(),
	}
	if err := s.queue.Enqueue(ctx, job); err != nil {
		return enrichment.ErrEnqueueFailed().WithCause(err).WithDetail("candidate_id", candidateID.String())
	}
	logx.With("job_id", job.ID, "candidate_id", candidateID).Debug("enrichment scheduled")
	return nil
}

// Process enriches the job's candidate. A candidate deleted in the meantime
// completes the job; other failures are retried with backoff.
func (s *Service) Process(ctx context.Context, job *enrichment.Job) error {
	job.Attempt++
	log := logx.With("job_id", job.ID, "candidate_id", job.CandidateID, "attempt", job.Attempt)

	c, err := s.candidateRepo.GetByID(ctx, job.CandidateID, job.TenantID)
	if err != nil {
		if errx.IsCode(err, candidate.CodeCandidateNotFound) {
			log.Info("candidate no longer exists, skipping enrichment")
			return nil
		}
		return s.handleFailure(ctx, job, err)
	}

	if !c.HasResume() {
		return nil
	}

	enriched := s.engine.EnrichCandidateData(c.Profile())
	if !c.ApplyEnrichment(enriched) {
		log.Debug("nothing to enrich")
		return nil
	}

	if err := s.candidateRepo.SaveEnrichment(ctx, c); err != nil {
		if errx.IsCode(err, candidate.CodeCandidateNotFound) {
			return nil
		}
		return s.handleFailure(ctx, job, err)
	}

	log.Infof("candidate enriched: skills=%q", c.Skills)
	return nil
}

func (s *Service) handleFailure(ctx context.Context, job *enrichment.Job, cause error) error {
	job.LastError = cause.Error()
	log := logx.With("job_id", job.ID, "candidate_id", job.CandidateID, "attempt", job.Attempt, "max_attempts", job.MaxAttempts)

	if !job.CanRetry() {
		log.Errorf("enrichment permanently failed: %v", cause)
		return enrichment.ErrAttemptsExhausted().WithCause(cause).WithDetail("attempts", job.Attempt)
	}

	delay := job.Backoff(s.retryDelay)
	if err := s.queue.EnqueueDelayed(ctx, *job, delay); err != nil {
		log.Errorf("failed to schedule retry: %v", err)
		return enrichment.ErrEnqueueFailed().WithCause(err)
	}

	log.Warnf("enrichment failed, retrying in %s: %v", delay, cause)
	return enrichment.ErrRetryScheduled().WithCause(cause).WithDetail("retry_in", delay.String())
}

// Stats exposes the queue backlog
func (s *Service) Stats(ctx context.Context) (enrichment.Stats, error) {
	return s.queue.Stats(ctx)
}
