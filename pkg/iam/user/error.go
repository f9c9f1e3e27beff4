package user

import (
	"net/http"

	"github.com/Abraxas-365/hiresight/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("USER")

var (
	CodeUserNotFound           = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "User not found")
	CodeUserSuspended          = ErrRegistry.Register("SUSPENDED", errx.TypeAuthorization, http.StatusForbidden, "User is suspended")
	CodeEmailAlreadyExists     = ErrRegistry.Register("EMAIL_ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "Email already registered")
	CodeInsufficientPermission = ErrRegistry.Register("INSUFFICIENT_PERMISSIONS", errx.TypeAuthorization, http.StatusForbidden, "Insufficient permissions")
	CodeCannotModifySelf       = ErrRegistry.Register("CANNOT_MODIFY_SELF", errx.TypeBusiness, http.StatusConflict, "Admins cannot change their own role or status")
)

func ErrUserNotFound() *errx.Error            { return ErrRegistry.New(CodeUserNotFound) }
func ErrUserSuspended() *errx.Error           { return ErrRegistry.New(CodeUserSuspended) }
func ErrEmailAlreadyExists() *errx.Error      { return ErrRegistry.New(CodeEmailAlreadyExists) }
func ErrInsufficientPermissions() *errx.Error { return ErrRegistry.New(CodeInsufficientPermission) }
func ErrCannotModifySelf() *errx.Error        { return ErrRegistry.New(CodeCannotModifySelf) }
