package enrichmentsrv

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Abraxas-365/hiresight/internal/ai/scoring"
	"github.com/Abraxas-365/hiresight/pkg/errx"
	"github.com/Abraxas-365/hiresight/pkg/kernel"
	"github.com/Abraxas-365/hiresight/recruitment/candidate"
	"github.com/Abraxas-365/hiresight/recruitment/candidate/candidatetest"
	"github.com/Abraxas-365/hiresight/recruitment/enrichment"
	"github.com/Abraxas-365/hiresight/recruitment/enrichment/enrichmenttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyRepo fails lookups while failures > 0
type flakyRepo struct {
	*candidatetest.MemoryRepository
	failures int
}

func (r *flakyRepo) GetByID(ctx context.Context, id kernel.CandidateID, tenantID kernel.TenantID) (*candidate.Candidate, error) {
	if r.failures > 0 {
		r.failures--
		return nil, errors.New("connection reset")
	}
	return r.MemoryRepository.GetByID(ctx, id, tenantID)
}

func years(n int) *int { return &n }

func newCandidate(id kernel.CandidateID, skills string, exp *int) candidate.Candidate {
	return candidate.Candidate{
		ID:              id,
		TenantID:        "t1",
		FirstName:       "Ana",
		LastName:        "Souza",
		ResumeText:      "Backend developer with 6 years of experience in Go, PostgreSQL and Docker.",
		Skills:          skills,
		ExperienceYears: exp,
		CreatedAt:       time.Now(),
	}
}

func TestEnqueue(t *testing.T) {
	queue := enrichmenttest.NewMemoryQueue()
	svc := NewService(queue, candidatetest.NewMemoryRepository(), scoring.NewEngine(), WithMaxAttempts(5))

	require.NoError(t, svc.Enqueue(context.Background(), "t1", "c1"))

	job, err := queue.Dequeue(context.Background(), time.Millisecond)
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, kernel.CandidateID("c1"), job.CandidateID)
	assert.Equal(t, 5, job.MaxAttempts)
	assert.Zero(t, job.Attempt)
	assert.False(t, job.ID.IsEmpty())
}

func TestProcess(t *testing.T) {
	ctx := context.Background()

	t.Run("fills missing skills and experience", func(t *testing.T) {
		repo := candidatetest.NewMemoryRepository(newCandidate("c1", "", nil))
		svc := NewService(enrichmenttest.NewMemoryQueue(), repo, scoring.NewEngine())

		require.NoError(t, svc.Process(ctx, &enrichment.Job{TenantID: "t1", CandidateID: "c1", MaxAttempts: 3}))

		got, err := repo.GetByID(ctx, "c1", "t1")
		require.NoError(t, err)
		assert.Equal(t, "docker, postgresql, sql", got.Skills)
		require.NotNil(t, got.ExperienceYears)
		assert.Equal(t, 6, *got.ExperienceYears)
	})

	t.Run("declared values win", func(t *testing.T) {
		repo := candidatetest.NewMemoryRepository(newCandidate("c1", "rust", years(2)))
		svc := NewService(enrichmenttest.NewMemoryQueue(), repo, scoring.NewEngine())

		require.NoError(t, svc.Process(ctx, &enrichment.Job{TenantID: "t1", CandidateID: "c1", MaxAttempts: 3}))

		got, _ := repo.GetByID(ctx, "c1", "t1")
		assert.Equal(t, "rust", got.Skills)
		assert.Equal(t, 2, *got.ExperienceYears)
	})

	t.Run("deleted candidate completes the job", func(t *testing.T) {
		queue := enrichmenttest.NewMemoryQueue()
		svc := NewService(queue, candidatetest.NewMemoryRepository(), scoring.NewEngine())

		assert.NoError(t, svc.Process(ctx, &enrichment.Job{TenantID: "t1", CandidateID: "gone", MaxAttempts: 3}))
		assert.Empty(t, queue.Delayed())
	})

	t.Run("failures are retried until attempts run out", func(t *testing.T) {
		queue := enrichmenttest.NewMemoryQueue()
		repo := &flakyRepo{MemoryRepository: candidatetest.NewMemoryRepository(newCandidate("c1", "", nil)), failures: 2}
		svc := NewService(queue, repo, scoring.NewEngine(), WithMaxAttempts(2), WithRetryDelay(time.Second))

		job := &enrichment.Job{ID: "j1", TenantID: "t1", CandidateID: "c1", MaxAttempts: 2}
		err := svc.Process(ctx, job)
		assert.True(t, errx.IsCode(err, enrichment.CodeRetryScheduled))
		delayed := queue.Delayed()
		require.Len(t, delayed, 1)
		assert.Equal(t, 1, delayed[0].Attempt)
		assert.Equal(t, "connection reset", delayed[0].LastError)

		err = svc.Process(ctx, job)
		assert.True(t, errx.IsCode(err, enrichment.CodeAttemptsExhausted))
		assert.Len(t, queue.Delayed(), 1)
	})
}
