package usersrv

import (
	"context"
	"time"

	"github.com/Abraxas-365/hiresight/pkg/errx"
	"github.com/Abraxas-365/hiresight/pkg/iam/user"
	"github.com/Abraxas-365/hiresight/pkg/kernel"
)

// UserService manages the members of a tenant
type UserService struct {
	userRepo user.UserRepository
}

func NewUserService(userRepo user.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) ListUsers(ctx context.Context, tenantID kernel.TenantID, opts kernel.PaginationOptions) (*kernel.Paginated[user.UserResponse], error) {
	page, err := s.userRepo.ListByTenant(ctx, tenantID, opts.Normalize())
	if err != nil {
		return nil, errx.Wrap(err, "failed to list users", errx.TypeInternal)
	}
	return kernel.MapPaginated(page, func(u user.User) user.UserResponse { return u.ToResponse() }), nil
}

func (s *UserService) GetUser(ctx context.Context, id kernel.UserID, tenantID kernel.TenantID) (*user.UserResponse, error) {
	u, err := s.userRepo.FindByID(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}
	resp := u.ToResponse()
	return &resp, nil
}

// UpdateUser changes a member's role or status. Only admins may do this and
// never on their own account.
func (s *UserService) UpdateUser(ctx context.Context, id kernel.UserID, req user.UpdateUserRequest, actorID kernel.UserID, tenantID kernel.TenantID) (*user.UserResponse, error) {
	actor, err := s.userRepo.FindByID(ctx, actorID, tenantID)
	if err != nil {
		return nil, user.ErrUserNotFound().WithDetail("user_id", actorID.String())
	}
	if !actor.IsActive() {
		return nil, user.ErrUserSuspended()
	}
	if !actor.IsAdmin() {
		return nil, user.ErrInsufficientPermissions().WithDetail("required_role", user.RoleAdmin)
	}
	if actorID == id {
		return nil, user.ErrCannotModifySelf()
	}

	target, err := s.userRepo.FindByID(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}

	if req.Role != nil {
		target.Role = *req.Role
	}
	if req.Status != nil {
		target.Status = *req.Status
	}
	target.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, target); err != nil {
		return nil, errx.Wrap(err, "failed to update user", errx.TypeInternal)
	}
	resp := target.ToResponse()
	return &resp, nil
}
