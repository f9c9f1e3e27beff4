package audit

import (
	"net/http"

	"github.com/Abraxas-365/hiresight/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("AUDIT")

var CodeListFailed = ErrRegistry.Register("LIST_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to list audit logs")

func ErrListFailed() *errx.Error { return ErrRegistry.New(CodeListFailed) }
