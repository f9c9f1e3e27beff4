package notesrv

import (
	"context"
	"time"

	"github.com/Abraxas-365/hiresight/pkg/errx"
	"github.com/Abraxas-365/hiresight/pkg/iam/user"
	"github.com/Abraxas-365/hiresight/pkg/kernel"
	"github.com/Abraxas-365/hiresight/recruitment/candidate"
	"github.com/Abraxas-365/hiresight/recruitment/note"
	"github.com/google/uuid"
)

type NoteService struct {
	noteRepo      note.Repository
	candidateRepo candidate.Repository
	userRepo      user.UserRepository
}

func NewNoteService(noteRepo note.Repository, candidateRepo candidate.Repository, userRepo user.UserRepository) *NoteService {
	return &NoteService{
		noteRepo:      noteRepo,
		candidateRepo: candidateRepo,
		userRepo:      userRepo,
	}
}

// ListNotes returns what viewerID may see on the candidate
func (s *NoteService) ListNotes(ctx context.Context, candidateID kernel.CandidateID, viewerID kernel.UserID, tenantID kernel.TenantID) ([]note.Note, error) {
	if _, err := s.candidateRepo.GetByID(ctx, candidateID, tenantID); err != nil {
		return nil, err
	}
	notes, err := s.noteRepo.ListVisible(ctx, candidateID, viewerID, tenantID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list notes", errx.TypeInternal)
	}
	return notes, nil
}

func (s *NoteService) CreateNote(ctx context.Context, candidateID kernel.CandidateID, req note.CreateNoteRequest, authorID kernel.UserID, tenantID kernel.TenantID) (*note.Note, error) {
	if _, err := s.actor(ctx, authorID, tenantID); err != nil {
		return nil, err
	}
	if _, err := s.candidateRepo.GetByID(ctx, candidateID, tenantID); err != nil {
		return nil, err
	}

	noteType := note.NoteTypeGeneral
	if req.Type != "" {
		noteType = note.NoteType(req.Type)
	}
	if !noteType.IsValid() {
		return nil, note.ErrInvalidType().WithDetail("note_type", req.Type)
	}

	now := time.Now()
	n := &note.Note{
		ID:          kernel.NewNoteID(uuid.NewString()),
		TenantID:    tenantID,
		CandidateID: candidateID,
		AuthorID:    authorID,
		Type:        noteType,
		IsPrivate:   req.IsPrivate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := n.SetContent(req.Content); err != nil {
		return nil, err
	}

	if err := s.noteRepo.Create(ctx, n); err != nil {
		return nil, errx.Wrap(err, "failed to create note", errx.TypeInternal)
	}
	return n, nil
}

// UpdateNote edits a note; only its author or an admin may do so
func (s *NoteService) UpdateNote(ctx context.Context, id kernel.NoteID, req note.UpdateNoteRequest, actorID kernel.UserID, tenantID kernel.TenantID) (*note.Note, error) {
	n, err := s.editable(ctx, id, actorID, tenantID)
	if err != nil {
		return nil, err
	}

	if req.Content != nil {
		if err := n.SetContent(*req.Content); err != nil {
			return nil, err
		}
	}
	if req.Type != nil {
		t := note.NoteType(*req.Type)
		if !t.IsValid() {
			return nil, note.ErrInvalidType().WithDetail("note_type", *req.Type)
		}
		n.Type = t
	}
	if req.IsPrivate != nil {
		n.IsPrivate = *req.IsPrivate
	}
	n.UpdatedAt = time.Now()

	if err := s.noteRepo.Update(ctx, n); err != nil {
		if errx.IsCode(err, note.CodeNoteNotFound) {
			return nil, err
		}
		return nil, errx.Wrap(err, "failed to update note", errx.TypeInternal)
	}
	return n, nil
}

func (s *NoteService) DeleteNote(ctx context.Context, id kernel.NoteID, actorID kernel.UserID, tenantID kernel.TenantID) error {
	if _, err := s.editable(ctx, id, actorID, tenantID); err != nil {
		return err
	}
	return s.noteRepo.Delete(ctx, id, tenantID)
}

func (s *NoteService) editable(ctx context.Context, id kernel.NoteID, actorID kernel.UserID, tenantID kernel.TenantID) (*note.Note, error) {
	actor, err := s.actor(ctx, actorID, tenantID)
	if err != nil {
		return nil, err
	}
	n, err := s.noteRepo.GetByID(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}
	if !n.EditableBy(actorID, actor.IsAdmin()) {
		return nil, note.ErrNotAuthor().WithDetail("note_id", id.String())
	}
	return n, nil
}

func (s *NoteService) actor(ctx context.Context, userID kernel.UserID, tenantID kernel.TenantID) (*user.User, error) {
	u, err := s.userRepo.FindByID(ctx, userID, tenantID)
	if err != nil {
		return nil, user.ErrUserNotFound().WithDetail("user_id", userID.String())
	}
	if !u.IsActive() {
		return nil, user.ErrUserSuspended().WithDetail("user_id", userID.String())
	}
	return u, nil
}
