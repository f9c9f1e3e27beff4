package jobinfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Abraxas-365/hiresight/pkg/dbx"
	"github.com/Abraxas-365/hiresight/pkg/kernel"
	"github.com/Abraxas-365/hiresight/recruitment/job"
	"github.com/jmoiron/sqlx"
)

const jobColumns = `
	id, tenant_id, title, description, requirements, responsibilities,
	department, location, employment_type, experience_level, salary_min,
	salary_max, currency, remote_work, status, priority, deadline,
	external_job_id, created_by, created_at, updated_at`

// PostgresJobRepository implements job.Repository using PostgreSQL
type PostgresJobRepository struct {
	db *sqlx.DB
}

// NewPostgresJobRepository creates a new PostgreSQL job repository
func NewPostgresJobRepository(db *sqlx.DB) *PostgresJobRepository {
	return &PostgresJobRepository{
		db: db,
	}
}

// Create creates a new job
func (r *PostgresJobRepository) Create(ctx context.Context, j *job.Job) error {
	query := `
		INSERT INTO job_postings (
			id, tenant_id, title, description, requirements, responsibilities,
			department, location, employment_type, experience_level, salary_min,
			salary_max, currency, remote_work, status, priority, deadline,
			external_job_id, created_by, created_at, updated_at
		) VALUES (
			:id, :tenant_id, :title, :description, :requirements, :responsibilities,
			:department, :location, :employment_type, :experience_level, :salary_min,
			:salary_max, :currency, :remote_work, :status, :priority, :deadline,
			:external_job_id, :created_by, :created_at, :updated_at
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, j); err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return fmt.Errorf("invalid created_by user_id: %w", err)
		}
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

// Update updates an existing job
func (r *PostgresJobRepository) Update(ctx context.Context, j *job.Job) error {
	query := `
		UPDATE job_postings SET
			title = :title,
			description = :description,
			requirements = :requirements,
			responsibilities = :responsibilities,
			department = :department,
			location = :location,
			employment_type = :employment_type,
			experience_level = :experience_level,
			salary_min = :salary_min,
			salary_max = :salary_max,
			currency = :currency,
			remote_work = :remote_work,
			status = :status,
			priority = :priority,
			deadline = :deadline,
			external_job_id = :external_job_id,
			updated_at = :updated_at
		WHERE id = :id AND tenant_id = :tenant_id
	`

	result, err := r.db.NamedExecContext(ctx, query, j)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return job.ErrJobNotFound().WithDetail("job_id", j.ID.String())
	}
	return nil
}

// GetByID retrieves a job by ID
func (r *PostgresJobRepository) GetByID(ctx context.Context, id kernel.JobID, tenantID kernel.TenantID) (*job.Job, error) {
	var j job.Job
	err := r.db.GetContext(ctx, &j,
		`SELECT `+jobColumns+` FROM job_postings WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, job.ErrJobNotFound().WithDetail("job_id", id.String())
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &j, nil
}

// Delete deletes a job; matches go with it through ON DELETE CASCADE
func (r *PostgresJobRepository) Delete(ctx context.Context, id kernel.JobID, tenantID kernel.TenantID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM job_postings WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return job.ErrJobNotFound().WithDetail("job_id", id.String())
	}
	return nil
}

// List filters jobs by status, department, experience level, remote flag and
// free text
func (r *PostgresJobRepository) List(ctx context.Context, tenantID kernel.TenantID, req job.ListJobsRequest) (*kernel.Paginated[job.Job], error) {
	opts := req.Pagination.Normalize()

	whereClauses := []string{"tenant_id = $1"}
	args := []any{tenantID}
	argCount := 2

	if req.Query != "" {
		whereClauses = append(whereClauses, fmt.Sprintf(
			"(title ILIKE $%d OR description ILIKE $%d OR department ILIKE $%d)", argCount, argCount, argCount))
		args = append(args, dbx.LikePattern(req.Query))
		argCount++
	}

	if req.Status != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("status = $%d", argCount))
		args = append(args, req.Status)
		argCount++
	}

	if req.Department != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("LOWER(department) = LOWER($%d)", argCount))
		args = append(args, req.Department)
		argCount++
	}

	if req.ExperienceLevel != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("experience_level = $%d", argCount))
		args = append(args, req.ExperienceLevel)
		argCount++
	}

	if req.RemoteWork != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("remote_work = $%d", argCount))
		args = append(args, *req.RemoteWork)
		argCount++
	}

	whereSQL := "WHERE " + strings.Join(whereClauses, " AND ")

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM job_postings "+whereSQL, args...); err != nil {
		return nil, fmt.Errorf("failed to count jobs: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM job_postings
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, jobColumns, whereSQL, argCount, argCount+1)
	args = append(args, opts.PageSize, opts.Offset())

	jobs := make([]job.Job, 0)
	if err := r.db.SelectContext(ctx, &jobs, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	return kernel.NewPaginated(jobs, opts, total), nil
}

func (r *PostgresJobRepository) Count(ctx context.Context, tenantID kernel.TenantID) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM job_postings WHERE tenant_id = $1`, tenantID)
	return n, err
}
