package tenant

import (
	"net/http"

	"github.com/Abraxas-365/hiresight/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("TENANT")

var CodeTenantNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Tenant not found")

func ErrTenantNotFound() *errx.Error {
	return ErrRegistry.New(CodeTenantNotFound)
}
