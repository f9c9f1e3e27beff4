package tagapi

import (
	"github.com/Abraxas-365/hiresight/pkg/iam/auth"
	"github.com/Abraxas-365/hiresight/pkg/kernel"
	"github.com/Abraxas-365/hiresight/pkg/validatex"
	"github.com/Abraxas-365/hiresight/recruitment/tag"
	"github.com/Abraxas-365/hiresight/recruitment/tag/tagsrv"
	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	service *tagsrv.TagService
}

func NewHandlers(service *tagsrv.TagService) *Handlers {
	return &Handlers{service: service}
}

// ListTags lists the tenant's tags
// GET /api/tags
func (h *Handlers) ListTags(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return tag.ErrInsufficientPermissions()
	}

	tags, err := h.service.ListTags(c.UserContext(), authContext.TenantID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"tags": tags})
}

// GetTag
// GET /api/tags/:id
func (h *Handlers) GetTag(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return tag.ErrInsufficientPermissions()
	}

	t, err := h.service.GetTag(c.UserContext(), kernel.TagID(c.Params("id")), authContext.TenantID)
	if err != nil {
		return err
	}
	return c.JSON(t)
}

// CreateTag
// POST /api/tags
func (h *Handlers) CreateTag(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return tag.ErrInsufficientPermissions()
	}

	var req tag.CreateTagRequest
	if err := c.BodyParser(&req); err != nil {
		return auth.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}
	if err := validatex.Struct(req); err != nil {
		return err
	}

	t, err := h.service.CreateTag(c.UserContext(), req, *authContext.UserID, authContext.TenantID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(t)
}

// UpdateTag
// PUT /api/tags/:id
func (h *Handlers) UpdateTag(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return tag.ErrInsufficientPermissions()
	}

	var req tag.UpdateTagRequest
	if err := c.BodyParser(&req); err != nil {
		return auth.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}
	if err := validatex.Struct(req); err != nil {
		return err
	}

	t, err := h.service.UpdateTag(c.UserContext(), kernel.TagID(c.Params("id")), req, *authContext.UserID, authContext.TenantID)
	if err != nil {
		return err
	}
	return c.JSON(t)
}

// DeleteTag
// DELETE /api/tags/:id
func (h *Handlers) DeleteTag(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return tag.ErrInsufficientPermissions()
	}

	if err := h.service.DeleteTag(c.UserContext(), kernel.TagID(c.Params("id")), *authContext.UserID, authContext.TenantID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.UnifiedAuthMiddleware) {
	api := app.Group("/api/tags", authMiddleware.Authenticate())

	api.Get("/", authMiddleware.RequireScope(auth.ScopeTagsRead), handlers.ListTags)
	api.Get("/:id", authMiddleware.RequireScope(auth.ScopeTagsRead), handlers.GetTag)
	api.Post("/", authMiddleware.RequireScope(auth.ScopeTagsWrite), handlers.CreateTag)
	api.Put("/:id", authMiddleware.RequireScope(auth.ScopeTagsWrite), handlers.UpdateTag)
	api.Delete("/:id", authMiddleware.RequireScope(auth.ScopeTagsWrite), handlers.DeleteTag)
}
