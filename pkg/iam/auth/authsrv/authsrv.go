package authsrv

import (
	"context"
	"strings"
	"time"

	"github.com/Abraxas-365/hiresight/pkg/audit"
	"github.com/Abraxas-365/hiresight/pkg/errx"
	"github.com/Abraxas-365/hiresight/pkg/iam/auth"
	"github.com/Abraxas-365/hiresight/pkg/iam/tenant"
	"github.com/Abraxas-365/hiresight/pkg/iam/user"
	"github.com/Abraxas-365/hiresight/pkg/kernel"
	"github.com/google/uuid"
)

// AuthResponse is returned by register and login
type AuthResponse struct {
	auth.TokenResponse
	User   user.UserResponse `json:"user"`
	Tenant *tenant.Tenant    `json:"tenant"`
}

type MeResponse struct {
	User   user.UserResponse `json:"user"`
	Tenant *tenant.Tenant    `json:"tenant"`
}

type AuthService struct {
	tenantRepo tenant.Repository
	userRepo   user.UserRepository
	passwords  *auth.PasswordService
	tokens     auth.TokenService
	denylist   auth.TokenDenylist
	audit      audit.Recorder
	now        func() time.Time
}

func NewAuthService(
	tenantRepo tenant.Repository,
	userRepo user.UserRepository,
	passwords *auth.PasswordService,
	tokens auth.TokenService,
	denylist auth.TokenDenylist,
	recorder audit.Recorder,
) *AuthService {
	if recorder == nil {
		recorder = audit.NopRecorder{}
	}
	return &AuthService{
		tenantRepo: tenantRepo,
		userRepo:   userRepo,
		passwords:  passwords,
		tokens:     tokens,
		denylist:   denylist,
		audit:      recorder,
		now:        time.Now,
	}
}

// Register creates a tenant together with its first admin user
func (s *AuthService) Register(ctx context.Context, req auth.RegisterRequest) (*AuthResponse, error) {
	email := kernel.NewEmail(req.Email)
	if !email.IsValid() {
		return nil, auth.ErrInvalidRequest().WithDetail("email", "invalid")
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, auth.ErrEmailTaken().WithDetail("email", email.String())
	} else if !errx.IsCode(err, user.CodeUserNotFound) {
		return nil, errx.Wrap(err, "failed to check email", errx.TypeInternal)
	}

	hash, err := s.passwords.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	t := &tenant.Tenant{
		ID:               kernel.NewTenantID(uuid.NewString()),
		Name:             strings.TrimSpace(req.CompanyName),
		SubscriptionPlan: tenant.PlanBasic,
		Status:           tenant.StatusActive,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.tenantRepo.Create(ctx, t); err != nil {
		return nil, errx.Wrap(err, "failed to create tenant", errx.TypeInternal)
	}

	u := &user.User{
		ID:           kernel.NewUserID(uuid.NewString()),
		TenantID:     t.ID,
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Role:         user.RoleAdmin,
		Status:       user.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, errx.Wrap(err, "failed to create user", errx.TypeInternal)
	}

	resp, err := s.issue(u, t)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Event{
		TenantID:     t.ID,
		UserID:       u.ID,
		Action:       audit.ActionUserRegistered,
		ResourceType: audit.ResourceUser,
		ResourceID:   u.ID.String(),
		Details:      audit.Details{"company_name": t.Name},
	})
	return resp, nil
}

// Login checks credentials and issues an access token
func (s *AuthService) Login(ctx context.Context, req auth.LoginRequest) (*AuthResponse, error) {
	u, err := s.userRepo.FindByEmail(ctx, kernel.NewEmail(req.Email))
	if err != nil {
		if errx.IsCode(err, user.CodeUserNotFound) {
			return nil, auth.ErrInvalidCredentials()
		}
		return nil, errx.Wrap(err, "failed to load user", errx.TypeInternal)
	}

	ok, err := s.passwords.Verify(u.PasswordHash, req.Password)
	if err != nil {
		return nil, errx.Wrap(err, "failed to verify password", errx.TypeInternal)
	}
	if !ok {
		return nil, auth.ErrInvalidCredentials()
	}
	if !u.IsActive() {
		return nil, auth.ErrAccountDisabled()
	}

	t, err := s.tenantRepo.FindByID(ctx, u.TenantID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to load tenant", errx.TypeInternal)
	}
	if !t.IsActive() {
		return nil, auth.ErrTenantInactive().WithDetail("status", t.Status)
	}

	u.RecordLogin(s.now())
	if err := s.userRepo.Update(ctx, u); err != nil {
		return nil, errx.Wrap(err, "failed to record login", errx.TypeInternal)
	}

	resp, err := s.issue(u, t)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Event{
		TenantID:     u.TenantID,
		UserID:       u.ID,
		Action:       audit.ActionUserLogin,
		ResourceType: audit.ResourceUser,
		ResourceID:   u.ID.String(),
	})
	return resp, nil
}

// Logout revokes the caller's token until it would have expired
func (s *AuthService) Logout(ctx context.Context, ac *auth.AuthContext) error {
	if s.denylist != nil && ac.TokenID != "" {
		if err := s.denylist.Revoke(ctx, ac.TokenID, ac.ExpiresAt); err != nil {
			return errx.Wrap(err, "failed to revoke token", errx.TypeInternal)
		}
	}

	var userID kernel.UserID
	if ac.UserID != nil {
		userID = *ac.UserID
	}
	s.audit.Record(ctx, audit.Event{
		TenantID:     ac.TenantID,
		UserID:       userID,
		Action:       audit.ActionUserLogout,
		ResourceType: audit.ResourceUser,
		ResourceID:   userID.String(),
	})
	return nil
}

// Me returns the caller's profile and tenant
func (s *AuthService) Me(ctx context.Context, userID kernel.UserID, tenantID kernel.TenantID) (*MeResponse, error) {
	u, err := s.userRepo.FindByID(ctx, userID, tenantID)
	if err != nil {
		return nil, err
	}
	t, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return &MeResponse{User: u.ToResponse(), Tenant: t}, nil
}

func (s *AuthService) issue(u *user.User, t *tenant.Tenant) (*AuthResponse, error) {
	token, claims, err := s.tokens.GenerateAccessToken(auth.TokenSubject{
		UserID:   u.ID,
		TenantID: u.TenantID,
		Email:    u.Email,
		Role:     string(u.Role),
		Scopes:   u.Scopes(),
	})
	if err != nil {
		return nil, errx.Wrap(err, "failed to issue token", errx.TypeInternal)
	}
	return &AuthResponse{
		TokenResponse: auth.TokenResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresAt:   claims.Expiry(),
		},
		User:   u.ToResponse(),
		Tenant: t,
	}, nil
}
