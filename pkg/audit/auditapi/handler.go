package auditapi

import (
	"github.com/Abraxas-365/hiresight/pkg/audit"
	"github.com/Abraxas-365/hiresight/pkg/audit/auditsrv"
	"github.com/Abraxas-365/hiresight/pkg/iam/auth"
	"github.com/Abraxas-365/hiresight/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	service *auditsrv.Service
}

func NewHandlers(service *auditsrv.Service) *Handlers {
	return &Handlers{service: service}
}

// CaptureRequestMeta stores the caller's IP and user agent in the request
// context so services can attach them to audit entries.
func CaptureRequestMeta() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.SetUserContext(audit.WithMeta(c.UserContext(), audit.Meta{
			IPAddress: c.IP(),
			UserAgent: c.Get(fiber.HeaderUserAgent),
		}))
		return c.Next()
	}
}

// ListAuditLogs lists the tenant's audit trail
// GET /api/audit-logs
func (h *Handlers) ListAuditLogs(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var filter audit.ListFilter
	if err := c.QueryParser(&filter); err != nil {
		return auth.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	page, err := h.service.List(c.UserContext(), authContext.TenantID, filter, kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", kernel.DefaultPageSize),
	})
	if err != nil {
		return err
	}
	return c.JSON(page)
}

func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.UnifiedAuthMiddleware) {
	app.Get("/api/audit-logs",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.RoleAdmin),
		authMiddleware.RequireScope(auth.ScopeAuditRead),
		handlers.ListAuditLogs,
	)
}
