package authapi

import (
	"github.com/Abraxas-365/hiresight/pkg/iam/auth"
	"github.com/Abraxas-365/hiresight/pkg/iam/auth/authsrv"
	"github.com/Abraxas-365/hiresight/pkg/validatex"
	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	service *authsrv.AuthService
}

func NewHandlers(service *authsrv.AuthService) *Handlers {
	return &Handlers{service: service}
}

// Register creates an organization and its admin account
// POST /api/auth/register
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req auth.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return auth.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}
	if err := validatex.Struct(req); err != nil {
		return err
	}

	resp, err := h.service.Register(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Login exchanges credentials for an access token
// POST /api/auth/login
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req auth.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return auth.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}
	if err := validatex.Struct(req); err != nil {
		return err
	}

	resp, err := h.service.Login(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Logout revokes the current token
// POST /api/auth/logout
func (h *Handlers) Logout(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}
	if err := h.service.Logout(c.UserContext(), authContext); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

// Me returns the current user
// GET /api/auth/me
func (h *Handlers) Me(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}
	resp, err := h.service.Me(c.UserContext(), *authContext.UserID, authContext.TenantID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.UnifiedAuthMiddleware) {
	api := app.Group("/api/auth")

	api.Post("/register", handlers.Register)
	api.Post("/login", handlers.Login)
	api.Post("/logout", authMiddleware.Authenticate(), handlers.Logout)
	api.Get("/me", authMiddleware.Authenticate(), handlers.Me)
}
