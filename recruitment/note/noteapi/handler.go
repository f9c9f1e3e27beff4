package noteapi

import (
	"github.com/Abraxas-365/hiresight/pkg/iam/auth"
	"github.com/Abraxas-365/hiresight/pkg/kernel"
	"github.com/Abraxas-365/hiresight/pkg/validatex"
	"github.com/Abraxas-365/hiresight/recruitment/note"
	"github.com/Abraxas-365/hiresight/recruitment/note/notesrv"
	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	service *notesrv.NoteService
}

func NewHandlers(service *notesrv.NoteService) *Handlers {
	return &Handlers{service: service}
}

// ListNotes lists the notes of a candidate visible to the caller
// GET /api/candidates/:id/notes
func (h *Handlers) ListNotes(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return note.ErrNotAuthor()
	}

	notes, err := h.service.ListNotes(c.UserContext(), kernel.CandidateID(c.Params("id")), *authContext.UserID, authContext.TenantID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"notes": notes})
}

// CreateNote adds a note to a candidate
// POST /api/candidates/:id/notes
func (h *Handlers) CreateNote(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return note.ErrNotAuthor()
	}

	var req note.CreateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return note.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}
	if err := validatex.Struct(req); err != nil {
		return err
	}

	created, err := h.service.CreateNote(c.UserContext(), kernel.CandidateID(c.Params("id")), req, *authContext.UserID, authContext.TenantID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateNote edits a note
// PUT /api/notes/:id
func (h *Handlers) UpdateNote(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return note.ErrNotAuthor()
	}

	var req note.UpdateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return note.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}
	if err := validatex.Struct(req); err != nil {
		return err
	}

	updated, err := h.service.UpdateNote(c.UserContext(), kernel.NoteID(c.Params("id")), req, *authContext.UserID, authContext.TenantID)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

// DeleteNote removes a note
// DELETE /api/notes/:id
func (h *Handlers) DeleteNote(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return note.ErrNotAuthor()
	}

	if err := h.service.DeleteNote(c.UserContext(), kernel.NoteID(c.Params("id")), *authContext.UserID, authContext.TenantID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.UnifiedAuthMiddleware) {
	candidates := app.Group("/api/candidates")
	candidates.Get("/:id/notes",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeNotesRead),
		handlers.ListNotes,
	)
	candidates.Post("/:id/notes",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeNotesWrite),
		handlers.CreateNote,
	)

	notes := app.Group("/api/notes")
	notes.Put("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeNotesWrite),
		handlers.UpdateNote,
	)
	notes.Delete("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeNotesWrite),
		handlers.DeleteNote,
	)
}
