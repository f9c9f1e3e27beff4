package audit

import (
	"context"

	"github.com/Abraxas-365/hiresight/pkg/kernel"
)

type Repository interface {
	Create(ctx context.Context, e *Entry) error
	List(ctx context.Context, tenantID kernel.TenantID, filter ListFilter, opts kernel.PaginationOptions) (*kernel.Paginated[Entry], error)
}
