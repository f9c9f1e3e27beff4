package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Abraxas-365/hiresight/pkg/kernel"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenSubject is what an access token is issued for
type TokenSubject struct {
	UserID   kernel.UserID
	TenantID kernel.TenantID
	Email    kernel.Email
	Role     string
	Scopes   []string
}

// TokenClaims are the claims carried by an access token
type TokenClaims struct {
	UserID   kernel.UserID   `json:"user_id"`
	TenantID kernel.TenantID `json:"tenant_id"`
	Email    string          `json:"email"`
	Role     string          `json:"role"`
	Scopes   []string        `json:"scopes"`
	jwt.RegisteredClaims
}

// TokenID is the jti used for revocation
func (c *TokenClaims) TokenID() string { return c.ID }

// Expiry returns the expiration time or the zero time
func (c *TokenClaims) Expiry() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

type TokenService interface {
	GenerateAccessToken(subject TokenSubject) (string, *TokenClaims, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
}

// TokenDenylist remembers revoked token ids until they expire
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// JWTTokenService issues HS256 access tokens
type JWTTokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

var _ TokenService = (*JWTTokenService)(nil)

func NewJWTTokenService(secret, issuer string, ttl time.Duration) *JWTTokenService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTTokenService{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}
}

func (s *JWTTokenService) GenerateAccessToken(subject TokenSubject) (string, *TokenClaims, error) {
	now := s.now()
	claims := &TokenClaims{
		UserID:   subject.UserID,
		TenantID: subject.TenantID,
		Email:    subject.Email.String(),
		Role:     subject.Role,
		Scopes:   subject.Scopes,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   subject.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, claims, nil
}

func (s *JWTTokenService) ValidateAccessToken(token string) (*TokenClaims, error) {
	if token == "" {
		return nil, ErrMissingToken()
	}

	claims := &TokenClaims{}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		reason := "invalid"
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			reason = "expired"
		case errors.Is(err, jwt.ErrTokenMalformed):
			reason = "malformed"
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			reason = "bad_signature"
		}
		return nil, ErrInvalidToken().WithDetail("reason", reason).WithCause(err)
	}
	if !parsed.Valid || claims.UserID.IsEmpty() || claims.TenantID.IsEmpty() {
		return nil, ErrInvalidToken()
	}
	return claims, nil
}
