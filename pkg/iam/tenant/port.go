package tenant

import (
	"context"

	"github.com/Abraxas-365/hiresight/pkg/kernel"
)

type Repository interface {
	Create(ctx context.Context, t *Tenant) error
	FindByID(ctx context.Context, id kernel.TenantID) (*Tenant, error)
	Update(ctx context.Context, t *Tenant) error
}
