package taginfra

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Abraxas-365/hiresight/pkg/dbx"
	"github.com/Abraxas-365/hiresight/pkg/kernel"
	"github.com/Abraxas-365/hiresight/recruitment/tag"
	"github.com/jmoiron/sqlx"
)

const tagSelect = `
	SELECT t.id, t.tenant_id, t.name, t.color, t.description, t.created_at,
		(SELECT COUNT(*) FROM candidate_tags ct WHERE ct.tag_id = t.id) AS candidate_count
	FROM tags t`

type PostgresTagRepository struct {
	db *sqlx.DB
}

func NewPostgresTagRepository(db *sqlx.DB) tag.Repository {
	return &PostgresTagRepository{db: db}
}

func (r *PostgresTagRepository) Create(ctx context.Context, t *tag.Tag) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO tags (id, tenant_id, name, color, description, created_at)
		VALUES (:id, :tenant_id, :name, :color, :description, :created_at)
	`, t)
	if dbx.IsUniqueViolation(err) {
		return tag.ErrTagAlreadyExists().WithDetail("name", t.Name)
	}
	return err
}

func (r *PostgresTagRepository) GetByID(ctx context.Context, id kernel.TagID, tenantID kernel.TenantID) (*tag.Tag, error) {
	return r.get(ctx, tagSelect+` WHERE t.id = $1 AND t.tenant_id = $2`, id, tenantID)
}

func (r *PostgresTagRepository) GetByName(ctx context.Context, name string, tenantID kernel.TenantID) (*tag.Tag, error) {
	return r.get(ctx, tagSelect+` WHERE t.name = $1 AND t.tenant_id = $2`, name, tenantID)
}

func (r *PostgresTagRepository) get(ctx context.Context, query string, args ...any) (*tag.Tag, error) {
	var t tag.Tag
	err := r.db.GetContext(ctx, &t, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, tag.ErrTagNotFound()
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PostgresTagRepository) List(ctx context.Context, tenantID kernel.TenantID) ([]tag.Tag, error) {
	tags := make([]tag.Tag, 0)
	if err := r.db.SelectContext(ctx, &tags, tagSelect+` WHERE t.tenant_id = $1 ORDER BY t.name`, tenantID); err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *PostgresTagRepository) Update(ctx context.Context, t *tag.Tag) error {
	result, err := r.db.NamedExecContext(ctx, `
		UPDATE tags SET name = :name, color = :color, description = :description
		WHERE id = :id AND tenant_id = :tenant_id
	`, t)
	if dbx.IsUniqueViolation(err) {
		return tag.ErrTagAlreadyExists().WithDetail("name", t.Name)
	}
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return tag.ErrTagNotFound()
	}
	return nil
}

// Delete relies on ON DELETE CASCADE to drop candidate assignments
func (r *PostgresTagRepository) Delete(ctx context.Context, id kernel.TagID, tenantID kernel.TenantID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tags WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return tag.ErrTagNotFound()
	}
	return nil
}
