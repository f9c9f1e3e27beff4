package job

import (
	"context"

	"github.com/Abraxas-365/hiresight/pkg/kernel"
)

// Repository persists job postings. Every method is scoped to one tenant.
type Repository interface {
	Create(ctx context.Context, job *Job) error

	Update(ctx context.Context, job *Job) error

	GetByID(ctx context.Context, id kernel.JobID, tenantID kernel.TenantID) (*Job, error)

	// Delete removes the job and its matches
	Delete(ctx context.Context, id kernel.JobID, tenantID kernel.TenantID) error

	// List filters and paginates, newest first
	List(ctx context.Context, tenantID kernel.TenantID, req ListJobsRequest) (*kernel.Paginated[Job], error)

	Count(ctx context.Context, tenantID kernel.TenantID) (int, error)
}
