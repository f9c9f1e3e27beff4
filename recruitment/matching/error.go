package matching

import (
	"net/http"

	"github.com/Abraxas-365/hiresight/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("MATCH")

// Error codes
var (
	CodeMatchNotFound           = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Match not found")
	CodeInvalidStatus           = ErrRegistry.Register("INVALID_STATUS", errx.TypeValidation, http.StatusBadRequest, "Invalid match status")
	CodeInvalidThreshold        = ErrRegistry.Register("INVALID_THRESHOLD", errx.TypeValidation, http.StatusBadRequest, "Threshold must be greater than 0 and at most 1")
	CodeNoResume                = ErrRegistry.Register("NO_RESUME", errx.TypeBusiness, http.StatusUnprocessableEntity, "Candidate has no resume text to analyze")
	CodeInvalidRequest          = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
	CodeInsufficientPermissions = ErrRegistry.Register("INSUFFICIENT_PERMISSIONS", errx.TypeAuthorization, http.StatusForbidden, "Insufficient permissions")
)

// Helper functions
func ErrMatchNotFound() *errx.Error {
	return ErrRegistry.New(CodeMatchNotFound)
}

func ErrInvalidStatus() *errx.Error {
	return ErrRegistry.New(CodeInvalidStatus)
}

func ErrInvalidThreshold() *errx.Error {
	return ErrRegistry.New(CodeInvalidThreshold)
}

func ErrNoResume() *errx.Error {
	return ErrRegistry.New(CodeNoResume)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}

func ErrInsufficientPermissions() *errx.Error {
	return ErrRegistry.New(CodeInsufficientPermissions)
}
