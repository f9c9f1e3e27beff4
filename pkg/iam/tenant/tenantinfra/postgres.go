package tenantinfra

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Abraxas-365/hiresight/pkg/iam/tenant"
	"github.com/Abraxas-365/hiresight/pkg/kernel"
	"github.com/jmoiron/sqlx"
)

type PostgresTenantRepository struct {
	db *sqlx.DB
}

func NewPostgresTenantRepository(db *sqlx.DB) tenant.Repository {
	return &PostgresTenantRepository{db: db}
}

func (r *PostgresTenantRepository) Create(ctx context.Context, t *tenant.Tenant) error {
	query := `
		INSERT INTO tenants (id, name, subscription_plan, status, created_at, updated_at)
		VALUES (:id, :name, :subscription_plan, :status, :created_at, :updated_at)
	`
	_, err := r.db.NamedExecContext(ctx, query, t)
	return err
}

func (r *PostgresTenantRepository) FindByID(ctx context.Context, id kernel.TenantID) (*tenant.Tenant, error) {
	var t tenant.Tenant
	err := r.db.GetContext(ctx, &t, `
		SELECT id, name, subscription_plan, status, created_at, updated_at
		FROM tenants WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, tenant.ErrTenantNotFound()
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PostgresTenantRepository) Update(ctx context.Context, t *tenant.Tenant) error {
	result, err := r.db.NamedExecContext(ctx, `
		UPDATE tenants
		SET name = :name, subscription_plan = :subscription_plan, status = :status, updated_at = :updated_at
		WHERE id = :id
	`, t)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return tenant.ErrTenantNotFound()
	}
	return nil
}
