package noteinfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Abraxas-365/hiresight/pkg/kernel"
	"github.com/Abraxas-365/hiresight/recruitment/note"
	"github.com/jmoiron/sqlx"
)

const noteColumns = `id, tenant_id, candidate_id, author_id, content, note_type, is_private, created_at, updated_at`

type PostgresNoteRepository struct {
	db *sqlx.DB
}

func NewPostgresNoteRepository(db *sqlx.DB) *PostgresNoteRepository {
	return &PostgresNoteRepository{db: db}
}

func (r *PostgresNoteRepository) Create(ctx context.Context, n *note.Note) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO notes (`+noteColumns+`)
		VALUES (:id, :tenant_id, :candidate_id, :author_id, :content, :note_type, :is_private, :created_at, :updated_at)
	`, n)
	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}
	return nil
}

func (r *PostgresNoteRepository) Update(ctx context.Context, n *note.Note) error {
	result, err := r.db.NamedExecContext(ctx, `
		UPDATE notes SET
			content = :content,
			note_type = :note_type,
			is_private = :is_private,
			updated_at = :updated_at
		WHERE id = :id AND tenant_id = :tenant_id
	`, n)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return note.ErrNoteNotFound()
	}
	return nil
}

func (r *PostgresNoteRepository) GetByID(ctx context.Context, id kernel.NoteID, tenantID kernel.TenantID) (*note.Note, error) {
	var n note.Note
	err := r.db.GetContext(ctx, &n, `SELECT `+noteColumns+` FROM notes WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, note.ErrNoteNotFound().WithDetail("note_id", id.String())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	return &n, nil
}

func (r *PostgresNoteRepository) Delete(ctx context.Context, id kernel.NoteID, tenantID kernel.TenantID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return note.ErrNoteNotFound().WithDetail("note_id", id.String())
	}
	return nil
}

func (r *PostgresNoteRepository) ListVisible(ctx context.Context, candidateID kernel.CandidateID, viewerID kernel.UserID, tenantID kernel.TenantID) ([]note.Note, error) {
	notes := make([]note.Note, 0)
	err := r.db.SelectContext(ctx, &notes, `
		SELECT `+noteColumns+`
		FROM notes
		WHERE tenant_id = $1 AND candidate_id = $2 AND (NOT is_private OR author_id = $3)
		ORDER BY created_at DESC
	`, tenantID, candidateID, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}
