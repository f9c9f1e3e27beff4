package auditinfra

import (
	"context"
	"fmt"
	"strings"

	"github.com/Abraxas-365/hiresight/pkg/audit"
	"github.com/Abraxas-365/hiresight/pkg/kernel"
	"github.com/jmoiron/sqlx"
)

type PostgresAuditRepository struct {
	db *sqlx.DB
}

func NewPostgresAuditRepository(db *sqlx.DB) audit.Repository {
	return &PostgresAuditRepository{db: db}
}

func (r *PostgresAuditRepository) Create(ctx context.Context, e *audit.Entry) error {
	query := `
		INSERT INTO audit_logs (
			id, tenant_id, user_id, action, resource_type, resource_id,
			details, ip_address, user_agent, created_at
		) VALUES (
			:id, :tenant_id, :user_id, :action, :resource_type, :resource_id,
			:details, :ip_address, :user_agent, :created_at
		)
	`
	_, err := r.db.NamedExecContext(ctx, query, e)
	return err
}

func (r *PostgresAuditRepository) List(ctx context.Context, tenantID kernel.TenantID, filter audit.ListFilter, opts kernel.PaginationOptions) (*kernel.Paginated[audit.Entry], error) {
	whereClauses := []string{"tenant_id = $1"}
	args := []any{tenantID}
	argCount := 2

	if filter.Action != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("action = $%d", argCount))
		args = append(args, filter.Action)
		argCount++
	}
	if filter.ResourceType != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("resource_type = $%d", argCount))
		args = append(args, filter.ResourceType)
		argCount++
	}
	if filter.ResourceID != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("resource_id = $%d", argCount))
		args = append(args, filter.ResourceID)
		argCount++
	}
	if filter.UserID != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("user_id = $%d", argCount))
		args = append(args, filter.UserID)
		argCount++
	}
	whereSQL := "WHERE " + strings.Join(whereClauses, " AND ")

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM audit_logs `+whereSQL, args...); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT id, tenant_id, user_id, action, resource_type, resource_id,
			details, ip_address, user_agent, created_at
		FROM audit_logs
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, whereSQL, argCount, argCount+1)
	args = append(args, opts.PageSize, opts.Offset())

	entries := make([]audit.Entry, 0)
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, err
	}
	return kernel.NewPaginated(entries, opts, total), nil
}
