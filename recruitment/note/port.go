package note

import (
	"context"

	"github.com/Abraxas-365/hiresight/pkg/kernel"
)

type Repository interface {
	Create(ctx context.Context, note *Note) error
	Update(ctx context.Context, note *Note) error
	GetByID(ctx context.Context, id kernel.NoteID, tenantID kernel.TenantID) (*Note, error)
	Delete(ctx context.Context, id kernel.NoteID, tenantID kernel.TenantID) error

	// ListVisible returns the candidate's public notes plus viewer's private
	// ones, newest first
	ListVisible(ctx context.Context, candidateID kernel.CandidateID, viewerID kernel.UserID, tenantID kernel.TenantID) ([]Note, error)
}
