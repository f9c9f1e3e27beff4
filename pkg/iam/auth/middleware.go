package auth

import (
	"strings"
	"time"

	"github.com/Abraxas-365/hiresight/pkg/kernel"
	"github.com/Abraxas-365/hiresight/pkg/logx"
	"github.com/gofiber/fiber/v2"
)

const authContextKey = "auth_context"

// AuthContext is the authenticated caller attached to a request
type AuthContext struct {
	UserID    *kernel.UserID
	TenantID  kernel.TenantID
	Email     string
	Role      string
	Scopes    []string
	TokenID   string
	ExpiresAt time.Time
}

func (a *AuthContext) HasScope(scope string) bool { return HasScope(a.Scopes, scope) }

func (a *AuthContext) HasAnyScope(scopes ...string) bool { return HasAnyScope(a.Scopes, scopes...) }

func (a *AuthContext) IsAdmin() bool { return a.Role == RoleAdmin }

// CanManage reports whether the caller is an admin or a manager
func (a *AuthContext) CanManage() bool { return a.Role == RoleAdmin || a.Role == RoleManager }

// GetAuthContext returns the caller set by Authenticate
func GetAuthContext(c *fiber.Ctx) (*AuthContext, bool) {
	ac, ok := c.Locals(authContextKey).(*AuthContext)
	return ac, ok && ac != nil
}

// SetAuthContext attaches a caller to the request
func SetAuthContext(c *fiber.Ctx, ac *AuthContext) {
	c.Locals(authContextKey, ac)
}

// UnifiedAuthMiddleware authenticates bearer tokens and enforces scopes
type UnifiedAuthMiddleware struct {
	tokens   TokenService
	denylist TokenDenylist
}

// NewUnifiedAuthMiddleware builds the middleware; denylist may be nil
func NewUnifiedAuthMiddleware(tokens TokenService, denylist TokenDenylist) *UnifiedAuthMiddleware {
	return &UnifiedAuthMiddleware{tokens: tokens, denylist: denylist}
}

// Authenticate requires a valid, unrevoked bearer token
func (m *UnifiedAuthMiddleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := bearerToken(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return err
		}

		claims, err := m.tokens.ValidateAccessToken(token)
		if err != nil {
			return err
		}

		if m.denylist != nil && claims.TokenID() != "" {
			revoked, err := m.denylist.IsRevoked(c.UserContext(), claims.TokenID())
			if err != nil {
				logx.Errorf("token denylist lookup failed: %v", err)
			} else if revoked {
				return ErrTokenRevoked()
			}
		}

		userID := claims.UserID
		SetAuthContext(c, &AuthContext{
			UserID:    &userID,
			TenantID:  claims.TenantID,
			Email:     claims.Email,
			Role:      claims.Role,
			Scopes:    claims.Scopes,
			TokenID:   claims.TokenID(),
			ExpiresAt: claims.Expiry(),
		})
		return c.Next()
	}
}

// RequireScope passes when the caller holds any of scopes
func (m *UnifiedAuthMiddleware) RequireScope(scopes ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ac, ok := GetAuthContext(c)
		if !ok {
			return ErrMissingToken()
		}
		if !ac.HasAnyScope(scopes...) {
			return ErrInsufficientScope().WithDetail("required_scopes", scopes)
		}
		return c.Next()
	}
}

// RequireRole passes when the caller has one of roles
func (m *UnifiedAuthMiddleware) RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ac, ok := GetAuthContext(c)
		if !ok {
			return ErrMissingToken()
		}
		for _, r := range roles {
			if ac.Role == r {
				return c.Next()
			}
		}
		return ErrInsufficientScope().WithDetail("required_roles", roles)
	}
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrMissingToken()
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrInvalidToken().WithDetail("reason", "authorization header must be 'Bearer <token>'")
	}
	return parts[1], nil
}
