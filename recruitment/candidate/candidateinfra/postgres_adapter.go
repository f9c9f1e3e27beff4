package candidateinfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Abraxas-365/hiresight/pkg/dbx"
	"github.com/Abraxas-365/hiresight/pkg/kernel"
	"github.com/Abraxas-365/hiresight/recruitment/candidate"
	"github.com/Abraxas-365/hiresight/recruitment/tag"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// email is nullable so that candidates without one do not collide on the
// (tenant_id, lower(email)) unique index
const candidateColumns = `
	c.id, c.tenant_id, c.first_name, c.last_name, COALESCE(c.email, '') AS email,
	c.phone, c.linkedin_url, c.resume_text, c.resume_file_url, c.skills,
	c.experience_years, c.current_position, c.current_company, c.location,
	c.salary_expectation, c.availability, c.source, c.status, c.created_at, c.updated_at`

type PostgresCandidateRepository struct {
	db *sqlx.DB
}

func NewPostgresCandidateRepository(db *sqlx.DB) candidate.Repository {
	return &PostgresCandidateRepository{db: db}
}

// Create creates a new candidate
func (r *PostgresCandidateRepository) Create(ctx context.Context, c *candidate.Candidate) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO candidates (
			id, tenant_id, first_name, last_name, email, phone, linkedin_url,
			resume_text, resume_file_url, skills, experience_years, current_position,
			current_company, location, salary_expectation, availability, source,
			status, created_at, updated_at
		) VALUES (
			:id, :tenant_id, :first_name, :last_name, NULLIF(:email, ''), :phone, :linkedin_url,
			:resume_text, :resume_file_url, :skills, :experience_years, :current_position,
			:current_company, :location, :salary_expectation, :availability, :source,
			:status, :created_at, :updated_at
		)
	`, c)
	if dbx.IsUniqueViolation(err) {
		return candidate.ErrEmailAlreadyExists().WithDetail("email", c.Email.String())
	}
	return err
}

// Update updates an existing candidate
func (r *PostgresCandidateRepository) Update(ctx context.Context, c *candidate.Candidate) error {
	result, err := r.db.NamedExecContext(ctx, `
		UPDATE candidates SET
			first_name = :first_name,
			last_name = :last_name,
			email = NULLIF(:email, ''),
			phone = :phone,
			linkedin_url = :linkedin_url,
			resume_text = :resume_text,
			resume_file_url = :resume_file_url,
			skills = :skills,
			experience_years = :experience_years,
			current_position = :current_position,
			current_company = :current_company,
			location = :location,
			salary_expectation = :salary_expectation,
			availability = :availability,
			source = :source,
			status = :status,
			updated_at = :updated_at
		WHERE id = :id AND tenant_id = :tenant_id
	`, c)
	if dbx.IsUniqueViolation(err) {
		return candidate.ErrEmailAlreadyExists().WithDetail("email", c.Email.String())
	}
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return candidate.ErrCandidateNotFound().WithDetail("candidate_id", c.ID.String())
	}
	return nil
}

func (r *PostgresCandidateRepository) SaveEnrichment(ctx context.Context, c *candidate.Candidate) error {
	result, err := r.db.NamedExecContext(ctx, `
		UPDATE candidates SET
			skills = CASE WHEN TRIM(skills) = '' THEN :skills ELSE skills END,
			experience_years = CASE WHEN COALESCE(experience_years, 0) = 0 THEN :experience_years ELSE experience_years END,
			updated_at = :updated_at
		WHERE id = :id AND tenant_id = :tenant_id
	`, c)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return candidate.ErrCandidateNotFound().WithDetail("candidate_id", c.ID.String())
	}
	return nil
}

// GetByID retrieves a candidate by ID
func (r *PostgresCandidateRepository) GetByID(ctx context.Context, id kernel.CandidateID, tenantID kernel.TenantID) (*candidate.Candidate, error) {
	c, err := r.get(ctx, `SELECT `+candidateColumns+` FROM candidates c WHERE c.id = $1 AND c.tenant_id = $2`, id, tenantID)
	if err != nil {
		return nil, err
	}
	if err := r.attachTags(ctx, []*candidate.Candidate{c}); err != nil {
		return nil, err
	}
	return c, nil
}

// GetByEmail matches case-insensitively within the tenant
func (r *PostgresCandidateRepository) GetByEmail(ctx context.Context, email kernel.Email, tenantID kernel.TenantID) (*candidate.Candidate, error) {
	return r.get(ctx, `SELECT `+candidateColumns+` FROM candidates c WHERE lower(c.email) = $1 AND c.tenant_id = $2`, email.Normalized(), tenantID)
}

func (r *PostgresCandidateRepository) get(ctx context.Context, query string, args ...any) (*candidate.Candidate, error) {
	var c candidate.Candidate
	err := r.db.GetContext(ctx, &c, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, candidate.ErrCandidateNotFound()
	}
	if err != nil {
		return nil, err
	}
	c.Tags = []tag.Tag{}
	return &c, nil
}

// Delete removes the candidate; notes, tag links and matches cascade
func (r *PostgresCandidateRepository) Delete(ctx context.Context, id kernel.CandidateID, tenantID kernel.TenantID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM candidates WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return candidate.ErrCandidateNotFound().WithDetail("candidate_id", id.String())
	}
	return nil
}

func (r *PostgresCandidateRepository) Search(ctx context.Context, tenantID kernel.TenantID, req candidate.SearchCandidatesRequest) (*kernel.Paginated[candidate.Candidate], error) {
	opts := req.Pagination.Normalize()

	whereClauses := []string{"c.tenant_id = $1"}
	args := []any{tenantID}
	argCount := 2

	if req.Query != "" {
		whereClauses = append(whereClauses, fmt.Sprintf(`(
			c.first_name ILIKE $%d OR
			c.last_name ILIKE $%d OR
			c.email ILIKE $%d OR
			c.current_position ILIKE $%d OR
			c.current_company ILIKE $%d
		)`, argCount, argCount, argCount, argCount, argCount))
		args = append(args, dbx.LikePattern(req.Query))
		argCount++
	}

	if req.Status != "" {
		whereClauses = append(whereClauses, fmt.Sprintf(`c.status = $%d`, argCount))
		args = append(args, req.Status)
		argCount++
	}

	if req.TagID != "" {
		whereClauses = append(whereClauses, fmt.Sprintf(
			`EXISTS (SELECT 1 FROM candidate_tags ct WHERE ct.candidate_id = c.id AND ct.tag_id = $%d)`, argCount))
		args = append(args, req.TagID)
		argCount++
	}

	whereSQL := "WHERE " + strings.Join(whereClauses, " AND ")

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM candidates c `+whereSQL, args...); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM candidates c
		%s
		ORDER BY c.created_at DESC
		LIMIT $%d OFFSET $%d
	`, candidateColumns, whereSQL, argCount, argCount+1)
	args = append(args, opts.PageSize, opts.Offset())

	candidates := make([]candidate.Candidate, 0)
	if err := r.db.SelectContext(ctx, &candidates, query, args...); err != nil {
		return nil, err
	}
	if err := r.attachTags(ctx, pointers(candidates)); err != nil {
		return nil, err
	}

	return kernel.NewPaginated(candidates, opts, total), nil
}

func (r *PostgresCandidateRepository) ListAll(ctx context.Context, tenantID kernel.TenantID) ([]candidate.Candidate, error) {
	candidates := make([]candidate.Candidate, 0)
	err := r.db.SelectContext(ctx, &candidates,
		`SELECT `+candidateColumns+` FROM candidates c WHERE c.tenant_id = $1 ORDER BY c.created_at, c.id`, tenantID)
	if err != nil {
		return nil, err
	}
	if err := r.attachTags(ctx, pointers(candidates)); err != nil {
		return nil, err
	}
	return candidates, nil
}

func (r *PostgresCandidateRepository) Count(ctx context.Context, tenantID kernel.TenantID) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM candidates WHERE tenant_id = $1`, tenantID)
	return n, err
}

// AddTag links a tag of the same tenant to the candidate
func (r *PostgresCandidateRepository) AddTag(ctx context.Context, id kernel.CandidateID, tagID kernel.TagID, tenantID kernel.TenantID) error {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO candidate_tags (candidate_id, tag_id, created_at)
		SELECT c.id, t.id, NOW()
		FROM candidates c
		JOIN tags t ON t.tenant_id = c.tenant_id
		WHERE c.id = $1 AND t.id = $2 AND c.tenant_id = $3
	`, id, tagID, tenantID)
	if dbx.IsUniqueViolation(err) {
		return candidate.ErrTagAlreadyAssigned().WithDetail("tag_id", tagID.String())
	}
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return candidate.ErrCandidateNotFound().WithDetail("candidate_id", id.String())
	}
	return nil
}

func (r *PostgresCandidateRepository) RemoveTag(ctx context.Context, id kernel.CandidateID, tagID kernel.TagID, tenantID kernel.TenantID) error {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM candidate_tags ct
		USING candidates c
		WHERE ct.candidate_id = c.id AND c.id = $1 AND ct.tag_id = $2 AND c.tenant_id = $3
	`, id, tagID, tenantID)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return candidate.ErrTagNotAssigned().WithDetail("tag_id", tagID.String())
	}
	return nil
}

type candidateTagRow struct {
	CandidateID kernel.CandidateID `db:"candidate_id"`
	tag.Tag
}

// attachTags loads the tags of all given candidates with one query
func (r *PostgresCandidateRepository) attachTags(ctx context.Context, candidates []*candidate.Candidate) error {
	if len(candidates) == 0 {
		return nil
	}
	ids := make([]string, 0, len(candidates))
	byID := make(map[kernel.CandidateID]*candidate.Candidate, len(candidates))
	for _, c := range candidates {
		c.Tags = []tag.Tag{}
		ids = append(ids, c.ID.String())
		byID[c.ID] = c
	}

	rows := make([]candidateTagRow, 0)
	err := r.db.SelectContext(ctx, &rows, `
		SELECT ct.candidate_id, t.id, t.tenant_id, t.name, t.color, t.description, t.created_at
		FROM candidate_tags ct
		JOIN tags t ON t.id = ct.tag_id
		WHERE ct.candidate_id = ANY($1)
		ORDER BY t.name
	`, pq.Array(ids))
	if err != nil {
		return err
	}
	for _, row := range rows {
		if c, ok := byID[row.CandidateID]; ok {
			c.Tags = append(c.Tags, row.Tag)
		}
	}
	return nil
}

func pointers(cs []candidate.Candidate) []*candidate.Candidate {
	out := make([]*candidate.Candidate, len(cs))
	for i := range cs {
		out[i] = &cs[i]
	}
	return out
}
