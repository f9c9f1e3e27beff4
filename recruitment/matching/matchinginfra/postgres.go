package matchinginfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Abraxas-365/hiresight/pkg/kernel"
	"github.com/Abraxas-365/hiresight/recruitment/matching"
	"github.com/jmoiron/sqlx"
)

const matchColumns = `
	id, tenant_id, candidate_id, job_id, compatibility_score, score_breakdown,
	status, reviewed_by, reviewed_at, created_at, updated_at`

// PostgresMatchRepository implements matching.Repository using PostgreSQL
type PostgresMatchRepository struct {
	db *sqlx.DB
}

func NewPostgresMatchRepository(db *sqlx.DB) *PostgresMatchRepository {
	return &PostgresMatchRepository{db: db}
}

// Upsert relies on the (candidate_id, job_id) unique constraint. A rescore
// keeps the stored id, status and review fields.
func (r *PostgresMatchRepository) Upsert(ctx context.Context, m *matching.Match) error {
	rows, err := r.db.NamedQueryContext(ctx, `
		INSERT INTO candidate_job_matches (
			id, tenant_id, candidate_id, job_id, compatibility_score, score_breakdown,
			status, created_at, updated_at
		) VALUES (
			:id, :tenant_id, :candidate_id, :job_id, :compatibility_score, :score_breakdown,
			:status, :created_at, :updated_at
		)
		ON CONFLICT (candidate_id, job_id) DO UPDATE SET
			compatibility_score = EXCLUDED.compatibility_score,
			score_breakdown = EXCLUDED.score_breakdown,
			updated_at = EXCLUDED.updated_at
		RETURNING `+matchColumns, m)
	if err != nil {
		return err
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return err
		}
		return matching.ErrMatchNotFound()
	}
	return rows.StructScan(m)
}

func (r *PostgresMatchRepository) Update(ctx context.Context, m *matching.Match) error {
	result, err := r.db.NamedExecContext(ctx, `
		UPDATE candidate_job_matches SET
			compatibility_score = :compatibility_score,
			score_breakdown = :score_breakdown,
			status = :status,
			reviewed_by = :reviewed_by,
			reviewed_at = :reviewed_at,
			updated_at = :updated_at
		WHERE id = :id AND tenant_id = :tenant_id
	`, m)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return matching.ErrMatchNotFound().WithDetail("match_id", m.ID.String())
	}
	return nil
}

func (r *PostgresMatchRepository) GetByID(ctx context.Context, id kernel.MatchID, tenantID kernel.TenantID) (*matching.Match, error) {
	var m matching.Match
	err := r.db.GetContext(ctx, &m,
		`SELECT `+matchColumns+` FROM candidate_job_matches WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, matching.ErrMatchNotFound().WithDetail("match_id", id.String())
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PostgresMatchRepository) List(ctx context.Context, tenantID kernel.TenantID, req matching.ListMatchesRequest) (*kernel.Paginated[matching.Match], error) {
	opts := req.Pagination.Normalize()

	whereClauses := []string{"tenant_id = $1"}
	args := []any{tenantID}
	argCount := 2

	if req.JobID != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("job_id = $%d", argCount))
		args = append(args, req.JobID)
		argCount++
	}
	if req.CandidateID != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("candidate_id = $%d", argCount))
		args = append(args, req.CandidateID)
		argCount++
	}
	if req.Status != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("status = $%d", argCount))
		args = append(args, req.Status)
		argCount++
	}

	whereSQL := "WHERE " + strings.Join(whereClauses, " AND ")

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM candidate_job_matches `+whereSQL, args...); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM candidate_job_matches
		%s
		ORDER BY compatibility_score DESC, created_at
		LIMIT $%d OFFSET $%d
	`, matchColumns, whereSQL, argCount, argCount+1)
	args = append(args, opts.PageSize, opts.Offset())

	matches := make([]matching.Match, 0)
	if err := r.db.SelectContext(ctx, &matches, query, args...); err != nil {
		return nil, err
	}
	return kernel.NewPaginated(matches, opts, total), nil
}

func (r *PostgresMatchRepository) Count(ctx context.Context, tenantID kernel.TenantID) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM candidate_job_matches WHERE tenant_id = $1`, tenantID)
	return n, err
}

func (r *PostgresMatchRepository) Scores(ctx context.Context, tenantID kernel.TenantID) ([]float64, error) {
	scores := make([]float64, 0)
	err := r.db.SelectContext(ctx, &scores,
		`SELECT COALESCE(compatibility_score, 0) FROM candidate_job_matches WHERE tenant_id = $1`, tenantID)
	return scores, err
}
