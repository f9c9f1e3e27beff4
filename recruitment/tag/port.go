package tag

import (
	"context"

	"github.com/Abraxas-365/hiresight/pkg/kernel"
)

type Repository interface {
	Create(ctx context.Context, t *Tag) error
	GetByID(ctx context.Context, id kernel.TagID, tenantID kernel.TenantID) (*Tag, error)
	GetByName(ctx context.Context, name string, tenantID kernel.TenantID) (*Tag, error)

	// List returns every tag of the tenant with its candidate count, by name
	List(ctx context.Context, tenantID kernel.TenantID) ([]Tag, error)

	Update(ctx context.Context, t *Tag) error
	Delete(ctx context.Context, id kernel.TagID, tenantID kernel.TenantID) error
}
