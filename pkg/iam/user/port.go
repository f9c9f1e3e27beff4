package user

import (
	"context"

	"github.com/Abraxas-365/hiresight/pkg/kernel"
)

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id kernel.UserID, tenantID kernel.TenantID) (*User, error)
	// FindByEmail looks across tenants; emails are globally unique
	FindByEmail(ctx context.Context, email kernel.Email) (*User, error)
	ListByTenant(ctx context.Context, tenantID kernel.TenantID, opts kernel.PaginationOptions) (*kernel.Paginated[User], error)
	Update(ctx context.Context, u *User) error
}
