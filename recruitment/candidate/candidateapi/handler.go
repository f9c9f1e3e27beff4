package candidateapi

import (
	"fmt"
	"io"
	"strings"

	"github.com/Abraxas-365/hiresight/pkg/iam/auth"
	"github.com/Abraxas-365/hiresight/pkg/kernel"
	"github.com/Abraxas-365/hiresight/pkg/validatex"
	"github.com/Abraxas-365/hiresight/recruitment/candidate"
	"github.com/Abraxas-365/hiresight/recruitment/candidate/candidatesrv"
	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	service *candidatesrv.CandidateService
}

func NewHandlers(service *candidatesrv.CandidateService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// CreateCandidate creates a new candidate
// POST /api/candidates
func (h *Handlers) CreateCandidate(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return candidate.ErrInsufficientPermissions()
	}

	var req candidate.CreateCandidateRequest
	if err := c.BodyParser(&req); err != nil {
		return candidate.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}
	if err := validatex.Struct(req); err != nil {
		return err
	}

	newCandidate, err := h.service.CreateCandidate(
		c.UserContext(),
		req,
		*authContext.UserID,
		authContext.TenantID,
	)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(newCandidate)
}

// GetCandidate retrieves a candidate by ID
// GET /api/candidates/:id
func (h *Handlers) GetCandidate(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return candidate.ErrInsufficientPermissions()
	}

	found, err := h.service.GetCandidate(c.UserContext(), kernel.CandidateID(c.Params("id")), authContext.TenantID)
	if err != nil {
		return err
	}

	return c.JSON(found)
}

// SearchCandidates lists candidates, optionally filtered by text, status and tag
// GET /api/candidates?search=&status=&tag_id=&page=&page_size=
func (h *Handlers) SearchCandidates(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return candidate.ErrInsufficientPermissions()
	}

	req := candidate.SearchCandidatesRequest{
		Query:      c.Query("search", c.Query("q")),
		Status:     candidate.CandidateStatus(c.Query("status")),
		TagID:      kernel.TagID(c.Query("tag_id")),
		Pagination: parsePaginationOptions(c),
	}

	page, err := h.service.SearchCandidates(c.UserContext(), authContext.TenantID, req)
	if err != nil {
		return err
	}

	return c.JSON(page)
}

// UpdateCandidate updates an existing candidate
// PUT /api/candidates/:id
func (h *Handlers) UpdateCandidate(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return candidate.ErrInsufficientPermissions()
	}

	var req candidate.UpdateCandidateRequest
	if err := c.BodyParser(&req); err != nil {
		return candidate.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}
	if err := validatex.Struct(req); err != nil {
		return err
	}

	updated, err := h.service.UpdateCandidate(
		c.UserContext(),
		kernel.CandidateID(c.Params("id")),
		req,
		*authContext.UserID,
		authContext.TenantID,
	)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

// DeleteCandidate deletes a candidate
// DELETE /api/candidates/:id
func (h *Handlers) DeleteCandidate(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return candidate.ErrInsufficientPermissions()
	}

	if err := h.service.DeleteCandidate(
		c.UserContext(),
		kernel.CandidateID(c.Params("id")),
		*authContext.UserID,
		authContext.TenantID,
	); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}

// AddTag attaches a tag to the candidate
// POST /api/candidates/:id/tags
func (h *Handlers) AddTag(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return candidate.ErrInsufficientPermissions()
	}

	var req candidate.AddTagRequest
	if err := c.BodyParser(&req); err != nil {
		return candidate.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}
	if err := validatex.Struct(req); err != nil {
		return err
	}

	updated, err := h.service.AddTag(c.UserContext(), kernel.CandidateID(c.Params("id")), req.TagID, *authContext.UserID, authContext.TenantID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(updated)
}

// RemoveTag detaches a tag from the candidate
// DELETE /api/candidates/:id/tags/:tagId
func (h *Handlers) RemoveTag(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return candidate.ErrInsufficientPermissions()
	}

	if err := h.service.RemoveTag(
		c.UserContext(),
		kernel.CandidateID(c.Params("id")),
		kernel.TagID(c.Params("tagId")),
		*authContext.UserID,
		authContext.TenantID,
	); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}

// UploadResume accepts a multipart "file" field with a PDF, text or image resume
// POST /api/candidates/:id/resume
func (h *Handlers) UploadResume(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return candidate.ErrInsufficientPermissions()
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return candidate.ErrResumeMissing().WithDetail("parse_error", err.Error())
	}
	if fileHeader.Size > candidatesrv.MaxResumeSize {
		return candidate.ErrResumeTooLarge().
			WithDetail("size", fileHeader.Size).
			WithDetail("max_size", candidatesrv.MaxResumeSize)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return candidate.ErrResumeMissing().WithDetail("parse_error", err.Error())
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, candidatesrv.MaxResumeSize+1))
	if err != nil {
		return candidate.ErrResumeMissing().WithDetail("parse_error", err.Error())
	}

	updated, err := h.service.UploadResume(
		c.UserContext(),
		kernel.CandidateID(c.Params("id")),
		candidate.ResumeUpload{FileName: fileHeader.Filename, Data: data},
		*authContext.UserID,
		authContext.TenantID,
	)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

// ExportCandidates exports candidate data as a file download
// POST /api/candidates/export
// GET /api/candidates/export?format=csv&status=new
func (h *Handlers) ExportCandidates(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return candidate.ErrInsufficientPermissions()
	}

	var req candidate.ExportCandidatesRequest
	if c.Method() == fiber.MethodPost {
		if err := c.BodyParser(&req); err != nil {
			return candidate.ErrInvalidRequest().WithDetail("parse_error", err.Error())
		}
	} else {
		req.Format = c.Query("format", "csv")
		req.Status = candidate.CandidateStatus(c.Query("status"))
		for _, id := range strings.Split(c.Query("ids"), ",") {
			if id = strings.TrimSpace(id); id != "" {
				req.CandidateIDs = append(req.CandidateIDs, kernel.CandidateID(id))
			}
		}
	}
	if err := validatex.Struct(req); err != nil {
		return err
	}

	file, err := h.service.ExportCandidates(c.UserContext(), req, *authContext.UserID, authContext.TenantID)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, file.FileName))
	c.Set("X-Total-Count", fmt.Sprint(file.Count))
	return c.Send(file.Data)
}

// ============================================================================
// Helper Functions
// ============================================================================

// parsePaginationOptions extracts pagination options from query parameters;
// per_page is accepted as an alias of page_size
func parsePaginationOptions(c *fiber.Ctx) kernel.PaginationOptions {
	return kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", c.QueryInt("per_page", kernel.DefaultPageSize)),
	}.Normalize()
}

// RegisterRoutes registers all candidate routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.UnifiedAuthMiddleware) {
	api := app.Group("/api/candidates")

	api.Get("/",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCandidatesRead),
		handlers.SearchCandidates,
	)

	// Export routes come before /:id
	api.Get("/export",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCandidatesExport),
		handlers.ExportCandidates,
	)
	api.Post("/export",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCandidatesExport),
		handlers.ExportCandidates,
	)

	api.Get("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCandidatesRead),
		handlers.GetCandidate,
	)

	api.Post("/",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCandidatesWrite),
		handlers.CreateCandidate,
	)

	api.Put("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCandidatesWrite),
		handlers.UpdateCandidate,
	)

	api.Delete("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCandidatesDelete),
		handlers.DeleteCandidate,
	)

	api.Post("/:id/resume",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCandidatesWrite),
		handlers.UploadResume,
	)

	api.Post("/:id/tags",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCandidatesWrite),
		handlers.AddTag,
	)

	api.Delete("/:id/tags/:tagId",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCandidatesWrite),
		handlers.RemoveTag,
	)
}
