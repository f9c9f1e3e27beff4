package auth

import (
	"net/http"

	"github.com/Abraxas-365/hiresight/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("AUTH")

var (
	CodeMissingToken       = ErrRegistry.Register("MISSING_TOKEN", errx.TypeAuthentication, http.StatusUnauthorized, "Missing authorization token")
	CodeInvalidToken       = ErrRegistry.Register("INVALID_TOKEN", errx.TypeAuthentication, http.StatusUnauthorized, "Invalid or expired token")
	CodeTokenRevoked       = ErrRegistry.Register("TOKEN_REVOKED", errx.TypeAuthentication, http.StatusUnauthorized, "Token has been revoked")
	CodeInvalidCredentials = ErrRegistry.Register("INVALID_CREDENTIALS", errx.TypeAuthentication, http.StatusUnauthorized, "Invalid email or password")
	CodeInsufficientScope  = ErrRegistry.Register("INSUFFICIENT_SCOPE", errx.TypeAuthorization, http.StatusForbidden, "Insufficient permissions")
	CodeAccountDisabled    = ErrRegistry.Register("ACCOUNT_DISABLED", errx.TypeAuthorization, http.StatusForbidden, "Account is disabled")
	CodeTenantInactive     = ErrRegistry.Register("TENANT_INACTIVE", errx.TypeAuthorization, http.StatusForbidden, "Organization is not active")
	CodeEmailTaken         = ErrRegistry.Register("EMAIL_TAKEN", errx.TypeConflict, http.StatusConflict, "Email already registered")
	CodeWeakPassword       = ErrRegistry.Register("WEAK_PASSWORD", errx.TypeValidation, http.StatusBadRequest, "Password does not meet requirements")
	CodeInvalidRequest     = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
)

func ErrMissingToken() *errx.Error       { return ErrRegistry.New(CodeMissingToken) }
func ErrInvalidToken() *errx.Error       { return ErrRegistry.New(CodeInvalidToken) }
func ErrTokenRevoked() *errx.Error       { return ErrRegistry.New(CodeTokenRevoked) }
func ErrInvalidCredentials() *errx.Error { return ErrRegistry.New(CodeInvalidCredentials) }
func ErrInsufficientScope() *errx.Error  { return ErrRegistry.New(CodeInsufficientScope) }
func ErrAccountDisabled() *errx.Error    { return ErrRegistry.New(CodeAccountDisabled) }
func ErrTenantInactive() *errx.Error     { return ErrRegistry.New(CodeTenantInactive) }
func ErrEmailTaken() *errx.Error         { return ErrRegistry.New(CodeEmailTaken) }
func ErrWeakPassword() *errx.Error       { return ErrRegistry.New(CodeWeakPassword) }
func ErrInvalidRequest() *errx.Error     { return ErrRegistry.New(CodeInvalidRequest) }
