package tag

import (
	"net/http"

	"github.com/Abraxas-365/hiresight/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("TAG")

var (
	CodeTagNotFound             = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Tag not found")
	CodeTagAlreadyExists        = ErrRegistry.Register("ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "A tag with this name already exists")
	CodeInvalidName             = ErrRegistry.Register("INVALID_NAME", errx.TypeValidation, http.StatusBadRequest, "Tag name is required")
	CodeInvalidColor            = ErrRegistry.Register("INVALID_COLOR", errx.TypeValidation, http.StatusBadRequest, "Tag color must be a hex color")
	CodeInsufficientPermissions = ErrRegistry.Register("INSUFFICIENT_PERMISSIONS", errx.TypeAuthorization, http.StatusForbidden, "Insufficient permissions")
)

func ErrTagNotFound() *errx.Error {
	return ErrRegistry.New(CodeTagNotFound)
}

func ErrTagAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeTagAlreadyExists)
}

func ErrInvalidName() *errx.Error {
	return ErrRegistry.New(CodeInvalidName)
}

func ErrInvalidColor() *errx.Error {
	return ErrRegistry.New(CodeInvalidColor)
}

func ErrInsufficientPermissions() *errx.Error {
	return ErrRegistry.New(CodeInsufficientPermissions)
}
