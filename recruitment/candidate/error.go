package candidate

import (
	"net/http"

	"github.com/Abraxas-365/hiresight/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("CANDIDATE")

// Error codes
var (
	CodeCandidateNotFound       = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Candidate not found")
	CodeEmailAlreadyExists      = ErrRegistry.Register("EMAIL_ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "A candidate with this email already exists")
	CodeInsufficientPermissions = ErrRegistry.Register("INSUFFICIENT_PERMISSIONS", errx.TypeAuthorization, http.StatusForbidden, "Insufficient permissions")
	CodeInvalidEmail            = ErrRegistry.Register("INVALID_EMAIL", errx.TypeValidation, http.StatusBadRequest, "Invalid email format")
	CodeInvalidRequest          = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
	CodeInvalidStatus           = ErrRegistry.Register("INVALID_STATUS", errx.TypeValidation, http.StatusBadRequest, "Invalid candidate status")
	CodeTagAlreadyAssigned      = ErrRegistry.Register("TAG_ALREADY_ASSIGNED", errx.TypeConflict, http.StatusConflict, "Tag already assigned to candidate")
	CodeTagNotAssigned          = ErrRegistry.Register("TAG_NOT_ASSIGNED", errx.TypeNotFound, http.StatusNotFound, "Tag is not assigned to candidate")
	CodeResumeMissing           = ErrRegistry.Register("RESUME_MISSING", errx.TypeValidation, http.StatusBadRequest, "No resume file received")
	CodeResumeTooLarge          = ErrRegistry.Register("RESUME_TOO_LARGE", errx.TypeValidation, http.StatusRequestEntityTooLarge, "Resume file is too large")
	CodeResumeUnreadable        = ErrRegistry.Register("RESUME_UNREADABLE", errx.TypeValidation, http.StatusUnprocessableEntity, "Could not read text from resume")
	CodeResumeStorageFailed     = ErrRegistry.Register("RESUME_STORAGE_FAILED", errx.TypeExternal, http.StatusBadGateway, "Failed to store resume file")
	CodeExportFailed            = ErrRegistry.Register("EXPORT_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to export candidates")
)

// Helper functions
func ErrCandidateNotFound() *errx.Error {
	return ErrRegistry.New(CodeCandidateNotFound)
}

func ErrEmailAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeEmailAlreadyExists)
}

func ErrInsufficientPermissions() *errx.Error {
	return ErrRegistry.New(CodeInsufficientPermissions)
}

func ErrInvalidEmail() *errx.Error {
	return ErrRegistry.New(CodeInvalidEmail)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}

func ErrInvalidStatus() *errx.Error {
	return ErrRegistry.New(CodeInvalidStatus)
}

func ErrTagAlreadyAssigned() *errx.Error {
	return ErrRegistry.New(CodeTagAlreadyAssigned)
}

func ErrTagNotAssigned() *errx.Error {
	return ErrRegistry.New(CodeTagNotAssigned)
}

func ErrResumeMissing() *errx.Error {
	return ErrRegistry.New(CodeResumeMissing)
}

func ErrResumeTooLarge() *errx.Error {
	return ErrRegistry.New(CodeResumeTooLarge)
}

func ErrResumeUnreadable() *errx.Error {
	return ErrRegistry.New(CodeResumeUnreadable)
}

func ErrResumeStorageFailed() *errx.Error {
	return ErrRegistry.New(CodeResumeStorageFailed)
}

func ErrExportFailed() *errx.Error {
	return ErrRegistry.New(CodeExportFailed)
}
