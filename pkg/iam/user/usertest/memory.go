// Package usertest provides an in-memory user repository for tests.
package usertest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Abraxas-365/hiresight/pkg/iam/user"
	"github.com/Abraxas-365/hiresight/pkg/kernel"
)

type MemoryRepository struct {
	mu    sync.Mutex
	users map[kernel.UserID]user.User
}

var _ user.UserRepository = (*MemoryRepository)(nil)

func NewMemoryRepository(users ...user.User) *MemoryRepository {
	r := &MemoryRepository{users: map[kernel.UserID]user.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

// Seed adds an active user with the given role and returns it
func (r *MemoryRepository) Seed(id kernel.UserID, tenantID kernel.TenantID, role user.Role) user.User {
	u := user.User{
		ID:        id,
		TenantID:  tenantID,
		Email:     kernel.NewEmail(string(id) + "@example.com"),
		FirstName: string(id),
		Role:      role,
		Status:    user.StatusActive,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	r.mu.Lock()
	r.users[id] = u
	r.mu.Unlock()
	return u
}

func (r *MemoryRepository) Create(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return user.ErrEmailAlreadyExists()
		}
	}
	r.users[u.ID] = *u
	return nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id kernel.UserID, tenantID kernel.TenantID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.TenantID != tenantID {
		return nil, user.ErrUserNotFound()
	}
	return &u, nil
}

func (r *MemoryRepository) FindByEmail(_ context.Context, email kernel.Email) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email.Normalized() {
			return &u, nil
		}
	}
	return nil, user.ErrUserNotFound()
}

func (r *MemoryRepository) ListByTenant(_ context.Context, tenantID kernel.TenantID, opts kernel.PaginationOptions) (*kernel.Paginated[user.User], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]user.User, 0)
	for _, u := range r.users {
		if u.TenantID == tenantID {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	opts = opts.Normalize()
	total := len(out)
	start := min(opts.Offset(), total)
	end := min(start+opts.PageSize, total)
	return kernel.NewPaginated(out[start:end], opts, total), nil
}

func (r *MemoryRepository) Update(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.users[u.ID]
	if !ok || existing.TenantID != u.TenantID {
		return user.ErrUserNotFound()
	}
	r.users[u.ID] = *u
	return nil
}
