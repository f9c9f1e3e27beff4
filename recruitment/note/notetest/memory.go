// Package notetest provides an in-memory note repository for tests.
package notetest

import (
	"context"
	"sync"

	"github.com/Abraxas-365/hiresight/pkg/kernel"
	"github.com/Abraxas-365/hiresight/recruitment/note"
)

type MemoryRepository struct {
	mu    sync.Mutex
	notes []note.Note
}

var _ note.Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Create(_ context.Context, n *note.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, *n)
	return nil
}

func (r *MemoryRepository) Update(_ context.Context, n *note.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.notes {
		if r.notes[i].ID == n.ID && r.notes[i].TenantID == n.TenantID {
			r.notes[i] = *n
			return nil
		}
	}
	return note.ErrNoteNotFound()
}

func (r *MemoryRepository) GetByID(_ context.Context, id kernel.NoteID, tenantID kernel.TenantID) (*note.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notes {
		if n.ID == id && n.TenantID == tenantID {
			return &n, nil
		}
	}
	return nil, note.ErrNoteNotFound()
}

func (r *MemoryRepository) Delete(_ context.Context, id kernel.NoteID, tenantID kernel.TenantID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, n := range r.notes {
		if n.ID == id && n.TenantID == tenantID {
			r.notes = append(r.notes[:i], r.notes[i+1:]...)
			return nil
		}
	}
	return note.ErrNoteNotFound()
}

func (r *MemoryRepository) ListVisible(_ context.Context, candidateID kernel.CandidateID, viewerID kernel.UserID, tenantID kernel.TenantID) ([]note.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []note.Note{}
	for i := len(r.notes) - 1; i >= 0; i-- {
		n := r.notes[i]
		if n.TenantID == tenantID && n.CandidateID == candidateID && n.VisibleTo(viewerID) {
			out = append(out, n)
		}
	}
	return out, nil
}
