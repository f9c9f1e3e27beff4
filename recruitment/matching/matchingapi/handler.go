package matchingapi

import (
	"fmt"

	"github.com/Abraxas-365/hiresight/pkg/iam/auth"
	"github.com/Abraxas-365/hiresight/pkg/kernel"
	"github.com/Abraxas-365/hiresight/pkg/validatex"
	"github.com/Abraxas-365/hiresight/recruitment/matching"
	"github.com/Abraxas-365/hiresight/recruitment/matching/matchingsrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for scoring, matches and analytics
type Handlers struct {
	service *matchingsrv.MatchingService
}

func NewHandlers(service *matchingsrv.MatchingService) *Handlers {
	return &Handlers{service: service}
}

// AnalyzeCandidate extracts signal from a candidate's resume
// POST /api/ai/candidates/:id/analyze
func (h *Handlers) AnalyzeCandidate(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return matching.ErrInsufficientPermissions()
	}

	analysis, err := h.service.AnalyzeCandidate(c.UserContext(), kernel.CandidateID(c.Params("id")), authContext.TenantID)
	if err != nil {
		return err
	}
	return c.JSON(analysis)
}

// RecommendCandidates ranks candidates for a job
// GET /api/ai/jobs/:id/recommendations?limit=10
func (h *Handlers) RecommendCandidates(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return matching.ErrInsufficientPermissions()
	}

	recs, err := h.service.RecommendCandidates(c.UserContext(), kernel.JobID(c.Params("id")), c.QueryInt("limit", 0), authContext.TenantID)
	if err != nil {
		return err
	}
	return c.JSON(recs)
}

// ExportRecommendations downloads the recommendations for a job as XLSX
// GET /api/ai/jobs/:id/recommendations/export?limit=10
func (h *Handlers) ExportRecommendations(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return matching.ErrInsufficientPermissions()
	}

	file, err := h.service.ExportRecommendations(
		c.UserContext(),
		kernel.JobID(c.Params("id")),
		c.QueryInt("limit", 0),
		*authContext.UserID,
		authContext.TenantID,
	)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, file.FileName))
	c.Set("X-Total-Count", fmt.Sprint(file.Count))
	return c.Send(file.Data)
}

// Compatibility scores a candidate against a job and stores the match
// POST /api/ai/candidates/:id/compatibility/:jobId
func (h *Handlers) Compatibility(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return matching.ErrInsufficientPermissions()
	}

	m, err := h.service.Compatibility(
		c.UserContext(),
		kernel.CandidateID(c.Params("id")),
		kernel.JobID(c.Params("jobId")),
		authContext.TenantID,
	)
	if err != nil {
		return err
	}
	return c.JSON(m)
}

// DetectDuplicates groups likely duplicate candidates
// GET /api/ai/duplicates?threshold=0.8
func (h *Handlers) DetectDuplicates(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return matching.ErrInsufficientPermissions()
	}

	threshold := c.QueryFloat("threshold", 0)
	if threshold < 0 {
		return matching.ErrInvalidThreshold().WithDetail("threshold", c.Query("threshold"))
	}

	groups, err := h.service.DetectDuplicates(c.UserContext(), threshold, *authContext.UserID, authContext.TenantID)
	if err != nil {
		return err
	}
	return c.JSON(groups)
}

// ListMatches lists stored matches, best score first
// GET /api/ai/matches?job_id=&candidate_id=&status=
func (h *Handlers) ListMatches(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return matching.ErrInsufficientPermissions()
	}

	req := matching.ListMatchesRequest{
		JobID:       kernel.JobID(c.Query("job_id")),
		CandidateID: kernel.CandidateID(c.Query("candidate_id")),
		Status:      matching.MatchStatus(c.Query("status")),
		Pagination:  parsePaginationOptions(c),
	}

	matches, err := h.service.ListMatches(c.UserContext(), authContext.TenantID, req)
	if err != nil {
		return err
	}
	return c.JSON(matches)
}

// ReviewMatch records a verdict on a match
// PATCH /api/ai/matches/:id/review
func (h *Handlers) ReviewMatch(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return matching.ErrInsufficientPermissions()
	}

	var req matching.ReviewMatchRequest
	if err := c.BodyParser(&req); err != nil {
		return matching.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}
	if err := validatex.Struct(req); err != nil {
		return err
	}

	m, err := h.service.ReviewMatch(
		c.UserContext(),
		kernel.MatchID(c.Params("id")),
		matching.MatchStatus(req.Status),
		*authContext.UserID,
		authContext.TenantID,
	)
	if err != nil {
		return err
	}
	return c.JSON(m)
}

// Dashboard returns tenant totals, top skills and the score distribution
// GET /api/analytics/dashboard
func (h *Handlers) Dashboard(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return matching.ErrInsufficientPermissions()
	}

	dashboard, err := h.service.Dashboard(c.UserContext(), authContext.TenantID)
	if err != nil {
		return err
	}
	return c.JSON(dashboard)
}

func parsePaginationOptions(c *fiber.Ctx) kernel.PaginationOptions {
	return kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", c.QueryInt("per_page", kernel.DefaultPageSize)),
	}.Normalize()
}

func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.UnifiedAuthMiddleware) {
	ai := app.Group("/api/ai", authMiddleware.Authenticate())

	ai.Post("/candidates/:id/analyze",
		authMiddleware.RequireScope(auth.ScopeAIAnalyze),
		handlers.AnalyzeCandidate,
	)
	ai.Post("/candidates/:id/compatibility/:jobId",
		authMiddleware.RequireScope(auth.ScopeAIAnalyze),
		handlers.Compatibility,
	)
	ai.Get("/jobs/:id/recommendations",
		authMiddleware.RequireScope(auth.ScopeAIRecommend),
		handlers.RecommendCandidates,
	)
	ai.Get("/jobs/:id/recommendations/export",
		authMiddleware.RequireScope(auth.ScopeAIRecommend),
		handlers.ExportRecommendations,
	)
	ai.Get("/duplicates",
		authMiddleware.RequireScope(auth.ScopeAIDuplicates),
		handlers.DetectDuplicates,
	)
	ai.Get("/matches",
		authMiddleware.RequireScope(auth.ScopeMatchesRead),
		handlers.ListMatches,
	)
	ai.Patch("/matches/:id/review",
		authMiddleware.RequireScope(auth.ScopeMatchesReview),
		handlers.ReviewMatch,
	)

	app.Get("/api/analytics/dashboard",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeAnalyticsView),
		handlers.Dashboard,
	)
}
