package candidate

import (
	"context"

	"github.com/Abraxas-365/hiresight/pkg/kernel"
)

// Repository persists candidates. Every method is scoped to one tenant.
type Repository interface {
	// Create fails with EMAIL_ALREADY_EXISTS when the email is taken in the tenant
	Create(ctx context.Context, candidate *Candidate) error

	Update(ctx context.Context, candidate *Candidate) error

	// SaveEnrichment writes skills and experience_years only where the stored
	// row still has no value, so concurrent edits are not overwritten
	SaveEnrichment(ctx context.Context, candidate *Candidate) error

	// GetByID loads the candidate with its tags
	GetByID(ctx context.Context, id kernel.CandidateID, tenantID kernel.TenantID) (*Candidate, error)

	GetByEmail(ctx context.Context, email kernel.Email, tenantID kernel.TenantID) (*Candidate, error)

	Delete(ctx context.Context, id kernel.CandidateID, tenantID kernel.TenantID) error

	// Search filters by free text, status and tag, newest first
	Search(ctx context.Context, tenantID kernel.TenantID, req SearchCandidatesRequest) (*kernel.Paginated[Candidate], error)

	// ListAll returns every candidate of the tenant in creation order
	ListAll(ctx context.Context, tenantID kernel.TenantID) ([]Candidate, error)

	Count(ctx context.Context, tenantID kernel.TenantID) (int, error)

	AddTag(ctx context.Context, id kernel.CandidateID, tagID kernel.TagID, tenantID kernel.TenantID) error
	RemoveTag(ctx context.Context, id kernel.CandidateID, tagID kernel.TagID, tenantID kernel.TenantID) error
}

// EnrichmentQueue schedules background enrichment of a candidate's resume
type EnrichmentQueue interface {
	Enqueue(ctx context.Context, tenantID kernel.TenantID, id kernel.CandidateID) error
}

// ResumeReader turns an uploaded resume file into plain text
type ResumeReader interface {
	ExtractText(ctx context.Context, fileName string, data []byte) (string, error)
}
