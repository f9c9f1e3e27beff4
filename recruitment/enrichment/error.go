package enrichment

import (
	"net/http"

	"github.com/Abraxas-365/hiresight/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("ENRICHMENT")

var (
	CodeEnqueueFailed     = ErrRegistry.Register("ENQUEUE_FAILED", errx.TypeExternal, http.StatusServiceUnavailable, "Failed to schedule enrichment")
	CodeRetryScheduled    = ErrRegistry.Register("RETRY_SCHEDULED", errx.TypeInternal, http.StatusInternalServerError, "Enrichment failed and will be retried")
	CodeAttemptsExhausted = ErrRegistry.Register("ATTEMPTS_EXHAUSTED", errx.TypeInternal, http.StatusInternalServerError, "Enrichment failed permanently")
)

func ErrEnqueueFailed() *errx.Error {
	return ErrRegistry.New(CodeEnqueueFailed)
}

func ErrRetryScheduled() *errx.Error {
	return ErrRegistry.New(CodeRetryScheduled)
}

func ErrAttemptsExhausted() *errx.Error {
	return ErrRegistry.New(CodeAttemptsExhausted)
}
