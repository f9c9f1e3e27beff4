package user

import (
	"time"

	"github.com/Abraxas-365/hiresight/pkg/iam/auth"
	"github.com/Abraxas-365/hiresight/pkg/kernel"
)

type Role string

const (
	RoleAdmin   Role = auth.RoleAdmin
	RoleManager Role = auth.RoleManager
	RoleUser    Role = auth.RoleUser
)

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleManager || r == RoleUser
}

type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
)

type User struct {
	ID           kernel.UserID   `db:"id" json:"id"`
	TenantID     kernel.TenantID `db:"tenant_id" json:"tenant_id"`
	Email        kernel.Email    `db:"email" json:"email"`
	PasswordHash string          `db:"password_hash" json:"-"`
	FirstName    string          `db:"first_name" json:"first_name"`
	LastName     string          `db:"last_name" json:"last_name"`
	Role         Role            `db:"role" json:"role"`
	Status       Status          `db:"status" json:"status"`
	LastLoginAt  *time.Time      `db:"last_login_at" json:"last_login_at,omitempty"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanManage reports whether the user is an admin or a manager
func (u *User) CanManage() bool {
	return u.Role == RoleAdmin || u.Role == RoleManager
}

// Scopes derives the user's scopes from their role
func (u *User) Scopes() []string {
	return auth.ScopesForRole(string(u.Role))
}

func (u *User) HasAnyScope(scopes ...string) bool {
	return auth.HasAnyScope(u.Scopes(), scopes...)
}

func (u *User) FullName() string {
	return kernel.FullName(kernel.FirstName(u.FirstName), kernel.LastName(u.LastName))
}

func (u *User) RecordLogin(at time.Time) {
	u.LastLoginAt = &at
	u.UpdatedAt = at
}

func (u *User) Suspend() {
	u.Status = StatusSuspended
	u.UpdatedAt = time.Now()
}

func (u *User) Activate() {
	u.Status = StatusActive
	u.UpdatedAt = time.Now()
}

// UserResponse is the public view of a user
type UserResponse struct {
	ID          kernel.UserID   `json:"id"`
	TenantID    kernel.TenantID `json:"tenant_id"`
	Email       kernel.Email    `json:"email"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	Role        Role            `json:"role"`
	Status      Status          `json:"status"`
	Scopes      []string        `json:"scopes"`
	LastLoginAt *time.Time      `json:"last_login_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:          u.ID,
		TenantID:    u.TenantID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Role:        u.Role,
		Status:      u.Status,
		Scopes:      u.Scopes(),
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

type UpdateUserRequest struct {
	Role   *Role   `json:"role,omitempty" validate:"omitempty,oneof=admin manager user"`
	Status *Status `json:"status,omitempty" validate:"omitempty,oneof=active suspended"`
}
