package userapi

import (
	"github.com/Abraxas-365/hiresight/pkg/iam/auth"
	"github.com/Abraxas-365/hiresight/pkg/iam/user"
	"github.com/Abraxas-365/hiresight/pkg/iam/user/usersrv"
	"github.com/Abraxas-365/hiresight/pkg/kernel"
	"github.com/Abraxas-365/hiresight/pkg/validatex"
	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	service *usersrv.UserService
}

func NewHandlers(service *usersrv.UserService) *Handlers {
	return &Handlers{service: service}
}

// ListUsers lists the members of the caller's tenant
// GET /api/users
func (h *Handlers) ListUsers(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return user.ErrInsufficientPermissions()
	}

	page, err := h.service.ListUsers(c.UserContext(), authContext.TenantID, kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", kernel.DefaultPageSize),
	})
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// GetUser returns one member
// GET /api/users/:id
func (h *Handlers) GetUser(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return user.ErrInsufficientPermissions()
	}

	resp, err := h.service.GetUser(c.UserContext(), kernel.UserID(c.Params("id")), authContext.TenantID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// UpdateUser changes a member's role or status
// PATCH /api/users/:id
func (h *Handlers) UpdateUser(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return user.ErrInsufficientPermissions()
	}

	var req user.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return auth.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}
	if err := validatex.Struct(req); err != nil {
		return err
	}

	resp, err := h.service.UpdateUser(c.UserContext(), kernel.UserID(c.Params("id")), req, *authContext.UserID, authContext.TenantID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.UnifiedAuthMiddleware) {
	api := app.Group("/api/users", authMiddleware.Authenticate())

	api.Get("/", authMiddleware.RequireScope(auth.ScopeUsersRead), handlers.ListUsers)
	api.Get("/:id", authMiddleware.RequireScope(auth.ScopeUsersRead), handlers.GetUser)
	api.Patch("/:id", authMiddleware.RequireScope(auth.ScopeUsersWrite), handlers.UpdateUser)
}
