package userinfra

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Abraxas-365/hiresight/pkg/dbx"
	"github.com/Abraxas-365/hiresight/pkg/iam/user"
	"github.com/Abraxas-365/hiresight/pkg/kernel"
	"github.com/jmoiron/sqlx"
)

const userColumns = `id, tenant_id, email, password_hash, first_name, last_name,
	role, status, last_login_at, created_at, updated_at`

type PostgresUserRepository struct {
	db *sqlx.DB
}

func NewPostgresUserRepository(db *sqlx.DB) user.UserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, u *user.User) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (:id, :tenant_id, :email, :password_hash, :first_name, :last_name,
			:role, :status, :last_login_at, :created_at, :updated_at)
	`, u)
	if dbx.IsUniqueViolation(err) {
		return user.ErrEmailAlreadyExists().WithDetail("email", u.Email.String())
	}
	return err
}

func (r *PostgresUserRepository) FindByID(ctx context.Context, id kernel.UserID, tenantID kernel.TenantID) (*user.User, error) {
	return r.get(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 AND tenant_id = $2`, id, tenantID)
}

func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email kernel.Email) (*user.User, error) {
	return r.get(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email.Normalized())
}

func (r *PostgresUserRepository) get(ctx context.Context, query string, args ...any) (*user.User, error) {
	var u user.User
	err := r.db.GetContext(ctx, &u, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, user.ErrUserNotFound()
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *PostgresUserRepository) ListByTenant(ctx context.Context, tenantID kernel.TenantID, opts kernel.PaginationOptions) (*kernel.Paginated[user.User], error) {
	opts = opts.Normalize()

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM users WHERE tenant_id = $1`, tenantID); err != nil {
		return nil, err
	}

	users := make([]user.User, 0)
	err := r.db.SelectContext(ctx, &users, `
		SELECT `+userColumns+`
		FROM users
		WHERE tenant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, tenantID, opts.PageSize, opts.Offset())
	if err != nil {
		return nil, err
	}
	return kernel.NewPaginated(users, opts, total), nil
}

func (r *PostgresUserRepository) Update(ctx context.Context, u *user.User) error {
	result, err := r.db.NamedExecContext(ctx, `
		UPDATE users
		SET first_name = :first_name, last_name = :last_name, role = :role, status = :status,
			password_hash = :password_hash, last_login_at = :last_login_at, updated_at = :updated_at
		WHERE id = :id AND tenant_id = :tenant_id
	`, u)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return user.ErrUserNotFound()
	}
	return nil
}
