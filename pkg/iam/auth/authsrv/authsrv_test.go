package authsrv

import (
	"context"
	"testing"
	"time"

	"github.com/Abraxas-365/hiresight/pkg/audit"
	"github.com/Abraxas-365/hiresight/pkg/errx"
	"github.com/Abraxas-365/hiresight/pkg/iam/auth"
	"github.com/Abraxas-365/hiresight/pkg/iam/tenant"
	"github.com/Abraxas-365/hiresight/pkg/iam/user"
	"github.com/Abraxas-365/hiresight/pkg/iam/user/usertest"
	"github.com/Abraxas-365/hiresight/pkg/kernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memTenants struct {
	tenants map[kernel.TenantID]tenant.Tenant
}

func (m *memTenants) Create(_ context.Context, t *tenant.Tenant) error {
	m.tenants[t.ID] = *t
	return nil
}

func (m *memTenants) FindByID(_ context.Context, id kernel.TenantID) (*tenant.Tenant, error) {
	t, ok := m.tenants[id]
	if !ok {
		return nil, tenant.ErrTenantNotFound()
	}
	return &t, nil
}

func (m *memTenants) Update(_ context.Context, t *tenant.Tenant) error {
	m.tenants[t.ID] = *t
	return nil
}

type memDenylist struct{ revoked map[string]time.Time }

func (m *memDenylist) Revoke(_ context.Context, id string, exp time.Time) error {
	m.revoked[id] = exp
	return nil
}

func (m *memDenylist) IsRevoked(_ context.Context, id string) (bool, error) {
	_, ok := m.revoked[id]
	return ok, nil
}

type recorder struct{ events []audit.Event }

func (r *recorder) Record(_ context.Context, e audit.Event) { r.events = append(r.events, e) }

type fixture struct {
	svc     *AuthService
	tenants *memTenants
	users   *usertest.MemoryRepository
	deny    *memDenylist
	audit   *recorder
	tokens  *auth.JWTTokenService
}

func newFixture() *fixture {
	f := &fixture{
		tenants: &memTenants{tenants: map[kernel.TenantID]tenant.Tenant{}},
		users:   usertest.NewMemoryRepository(),
		deny:    &memDenylist{revoked: map[string]time.Time{}},
		audit:   &recorder{},
		tokens:  auth.NewJWTTokenService("secret", "hiresight", time.Hour),
	}
	f.svc = NewAuthService(f.tenants, f.users, auth.NewPasswordService(4, ""), f.tokens, f.deny, f.audit)
	return f
}

var registerReq = auth.RegisterRequest{
	CompanyName: "Acme",
	Email:       "Owner@Acme.io",
	Password:    "s3cure-pass",
	FirstName:   "Olga",
	LastName:    "Owner",
}

func TestRegister(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	resp, err := f.svc.Register(ctx, registerReq)
	require.NoError(t, err)

	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, kernel.Email("owner@acme.io"), resp.User.Email)
	assert.Equal(t, user.RoleAdmin, resp.User.Role)
	assert.Equal(t, tenant.PlanBasic, resp.Tenant.SubscriptionPlan)

	claims, err := f.tokens.ValidateAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.Tenant.ID, claims.TenantID)
	assert.True(t, auth.HasScope(claims.Scopes, auth.ScopeAuditRead))

	require.Len(t, f.audit.events, 1)
	assert.Equal(t, audit.ActionUserRegistered, f.audit.events[0].Action)

	_, err = f.svc.Register(ctx, registerReq)
	assert.True(t, errx.IsCode(err, auth.CodeEmailTaken))

	weak := registerReq
	weak.Email = "other@acme.io"
	weak.Password = "short"
	_, err = f.svc.Register(ctx, weak)
	assert.True(t, errx.IsCode(err, auth.CodeWeakPassword))
}

func TestLogin(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	reg, err := f.svc.Register(ctx, registerReq)
	require.NoError(t, err)

	t.Run("success records last login", func(t *testing.T) {
		resp, err := f.svc.Login(ctx, auth.LoginRequest{Email: "OWNER@acme.io", Password: "s3cure-pass"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotNil(t, resp.User.LastLoginAt)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := f.svc.Login(ctx, auth.LoginRequest{Email: "owner@acme.io", Password: "nope-nope"})
		assert.True(t, errx.IsCode(err, auth.CodeInvalidCredentials))
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := f.svc.Login(ctx, auth.LoginRequest{Email: "ghost@acme.io", Password: "s3cure-pass"})
		assert.True(t, errx.IsCode(err, auth.CodeInvalidCredentials))
	})

	t.Run("suspended tenant", func(t *testing.T) {
		tn := f.tenants.tenants[reg.Tenant.ID]
		tn.Suspend()
		f.tenants.tenants[tn.ID] = tn
		defer func() {
			tn.Status = tenant.StatusActive
			f.tenants.tenants[tn.ID] = tn
		}()

		_, err := f.svc.Login(ctx, auth.LoginRequest{Email: "owner@acme.io", Password: "s3cure-pass"})
		assert.True(t, errx.IsCode(err, auth.CodeTenantInactive))
	})

	t.Run("suspended user", func(t *testing.T) {
		u, err := f.users.FindByID(ctx, reg.User.ID, reg.Tenant.ID)
		require.NoError(t, err)
		u.Suspend()
		require.NoError(t, f.users.Update(ctx, u))

		_, err = f.svc.Login(ctx, auth.LoginRequest{Email: "owner@acme.io", Password: "s3cure-pass"})
		assert.True(t, errx.IsCode(err, auth.CodeAccountDisabled))
	})
}

func TestLogoutAndMe(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	reg, err := f.svc.Register(ctx, registerReq)
	require.NoError(t, err)

	claims, err := f.tokens.ValidateAccessToken(reg.AccessToken)
	require.NoError(t, err)
	uid := claims.UserID

	me, err := f.svc.Me(ctx, uid, claims.TenantID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", me.Tenant.Name)

	ac := &auth.AuthContext{UserID: &uid, TenantID: claims.TenantID, TokenID: claims.TokenID(), ExpiresAt: claims.Expiry()}
	require.NoError(t, f.svc.Logout(ctx, ac))
	revoked, _ := f.deny.IsRevoked(ctx, claims.TokenID())
	assert.True(t, revoked)
	assert.Equal(t, audit.ActionUserLogout, f.audit.events[len(f.audit.events)-1].Action)
}
