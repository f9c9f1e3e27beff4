package jobapi

import (
	"github.com/Abraxas-365/hiresight/pkg/iam/auth"
	"github.com/Abraxas-365/hiresight/pkg/kernel"
	"github.com/Abraxas-365/hiresight/pkg/validatex"
	"github.com/Abraxas-365/hiresight/recruitment/job"
	"github.com/Abraxas-365/hiresight/recruitment/job/jobsrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for job operations
type Handlers struct {
	service *jobsrv.JobService
}

// NewHandlers creates a new job handlers instance
func NewHandlers(service *jobsrv.JobService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// CreateJob creates a new job posting
// POST /api/jobs
func (h *Handlers) CreateJob(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return job.ErrInsufficientPermissions()
	}

	var req job.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return job.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}
	if err := validatex.Struct(req); err != nil {
		return err
	}

	newJob, err := h.service.CreateJob(
		c.UserContext(),
		req,
		*authContext.UserID,
		authContext.TenantID,
	)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(newJob)
}

// GetJob retrieves a job by ID
// GET /api/jobs/:id
func (h *Handlers) GetJob(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return job.ErrInsufficientPermissions()
	}

	found, err := h.service.GetJob(c.UserContext(), kernel.JobID(c.Params("id")), authContext.TenantID)
	if err != nil {
		return err
	}

	return c.JSON(found)
}

// ListJobs lists job postings
// GET /api/jobs?status=&department=&experience_level=&remote_work=&search=&page=&page_size=
func (h *Handlers) ListJobs(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return job.ErrInsufficientPermissions()
	}

	req := job.ListJobsRequest{
		Query:           c.Query("search", c.Query("q")),
		Status:          job.JobStatus(c.Query("status")),
		Department:      c.Query("department"),
		ExperienceLevel: job.ExperienceLevel(c.Query("experience_level")),
		Pagination:      parsePaginationOptions(c),
	}
	if raw := c.Query("remote_work"); raw != "" {
		remote := c.QueryBool("remote_work")
		req.RemoteWork = &remote
	}

	jobs, err := h.service.ListJobs(c.UserContext(), authContext.TenantID, req)
	if err != nil {
		return err
	}

	return c.JSON(jobs)
}

// UpdateJob updates an existing job
// PUT /api/jobs/:id
func (h *Handlers) UpdateJob(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return job.ErrInsufficientPermissions()
	}

	var req job.UpdateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return job.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}
	if err := validatex.Struct(req); err != nil {
		return err
	}

	updated, err := h.service.UpdateJob(
		c.UserContext(),
		kernel.JobID(c.Params("id")),
		req,
		*authContext.UserID,
		authContext.TenantID,
	)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

// ChangeStatus activates, pauses or closes a job
// PATCH /api/jobs/:id/status
func (h *Handlers) ChangeStatus(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return job.ErrInsufficientPermissions()
	}

	var req job.ChangeStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return job.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}
	if err := validatex.Struct(req); err != nil {
		return err
	}

	updated, err := h.service.ChangeStatus(
		c.UserContext(),
		kernel.JobID(c.Params("id")),
		req.Status,
		*authContext.UserID,
		authContext.TenantID,
	)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

// DeleteJob deletes a job
// DELETE /api/jobs/:id
func (h *Handlers) DeleteJob(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return job.ErrInsufficientPermissions()
	}

	if err := h.service.DeleteJob(
		c.UserContext(),
		kernel.JobID(c.Params("id")),
		*authContext.UserID,
		authContext.TenantID,
	); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ============================================================================
// Helper Functions
// ============================================================================

func parsePaginationOptions(c *fiber.Ctx) kernel.PaginationOptions {
	return kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", c.QueryInt("per_page", kernel.DefaultPageSize)),
	}.Normalize()
}

// RegisterRoutes registers all job routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.UnifiedAuthMiddleware) {
	api := app.Group("/api/jobs")

	// Read routes
	api.Get("/",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeJobsRead),
		handlers.ListJobs,
	)

	api.Get("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeJobsRead),
		handlers.GetJob,
	)

	// Write routes
	api.Post("/",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeJobsWrite),
		handlers.CreateJob,
	)

	api.Put("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeJobsWrite),
		handlers.UpdateJob,
	)

	api.Patch("/:id/status",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeJobsWrite),
		handlers.ChangeStatus,
	)

	api.Delete("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeJobsDelete),
		handlers.DeleteJob,
	)
}
