package matching

import (
	"context"

	"github.com/Abraxas-365/hiresight/pkg/kernel"
)

// Repository persists matches. Every method is scoped to one tenant.
type Repository interface {
	// Upsert inserts the match, or rescores the existing one for the same
	// candidate and job. m is updated with the stored row.
	Upsert(ctx context.Context, m *Match) error

	Update(ctx context.Context, m *Match) error

	GetByID(ctx context.Context, id kernel.MatchID, tenantID kernel.TenantID) (*Match, error)

	List(ctx context.Context, tenantID kernel.TenantID, req ListMatchesRequest) (*kernel.Paginated[Match], error)

	Count(ctx context.Context, tenantID kernel.TenantID) (int, error)

	// Scores returns the compatibility score of every match of the tenant
	Scores(ctx context.Context, tenantID kernel.TenantID) ([]float64, error)
}
