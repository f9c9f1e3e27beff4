// Package enrichment fills gaps in candidate profiles from their resume text
// in the background.
package enrichment

import (
	"time"

	"github.com/Abraxas-365/hiresight/pkg/kernel"
)

const DefaultMaxAttempts = 3

// Job asks for one candidate to be enriched
type Job struct {
	ID          kernel.EnrichmentJobID `json:"id"`
	TenantID    kernel.TenantID        `json:"tenant_id"`
	CandidateID kernel.CandidateID     `json:"candidate_id"`
	Attempt     int                    `json:"attempt"`
	MaxAttempts int                    `json:"max_attempts"`
	EnqueuedAt  time.Time              `json:"enqueued_at"`
	LastError   string                 `json:"last_error,omitempty"`
}

// CanRetry reports whether another attempt is allowed after the current one
func (j *Job) CanRetry() bool {
	return j.Attempt < j.MaxAttempts
}

// Backoff doubles base for each attempt already made: base, 2*base, 4*base...
func (j *Job) Backoff(base time.Duration) time.Duration {
	if j.Attempt <= 1 {
		return base
	}
	return base * time.Duration(1<<uint(j.Attempt-1))
}

// Stats describes the queue backlog
type Stats struct {
	Queue   string `json:"queue"`
	Ready   int64  `json:"ready"`
	Delayed int64  `json:"delayed"`
}
