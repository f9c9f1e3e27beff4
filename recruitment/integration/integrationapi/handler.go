package integrationapi

import (
	"github.com/Abraxas-365/hiresight/pkg/iam/auth"
	"github.com/Abraxas-365/hiresight/pkg/validatex"
	"github.com/Abraxas-365/hiresight/recruitment/integration"
	"github.com/Abraxas-365/hiresight/recruitment/integration/integrationsrv"
	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	service *integrationsrv.IntegrationService
}

func NewHandlers(service *integrationsrv.IntegrationService) *Handlers {
	return &Handlers{service: service}
}

// IntegrateCandidate imports a candidate pushed by an external ATS or CRM.
// Duplicates answer 200 with duplicate_of; new candidates answer 201.
// POST /api/integrations/candidates
func (h *Handlers) IntegrateCandidate(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return integration.ErrInsufficientPermissions()
	}

	var req integration.IntegrateCandidateRequest
	if err := c.BodyParser(&req); err != nil {
		return integration.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}
	if err := validatex.Struct(req); err != nil {
		return err
	}

	result, err := h.service.IntegrateCandidate(c.UserContext(), req, *authContext.UserID, authContext.TenantID)
	if err != nil {
		return err
	}
	if result.Status == integration.StatusCreated {
		return c.Status(fiber.StatusCreated).JSON(result)
	}
	return c.JSON(result)
}

func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.UnifiedAuthMiddleware) {
	app.Post("/api/integrations/candidates",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeIntegrationsWrite),
		handlers.IntegrateCandidate,
	)
}
