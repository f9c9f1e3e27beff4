package matchingsrv

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Abraxas-365/hiresight/internal/ai/scoring"
	"github.com/Abraxas-365/hiresight/internal/export"
	"github.com/Abraxas-365/hiresight/pkg/audit"
	"github.com/Abraxas-365/hiresight/pkg/errx"
	"github.com/Abraxas-365/hiresight/pkg/iam/auth"
	"github.com/Abraxas-365/hiresight/pkg/iam/user"
	"github.com/Abraxas-365/hiresight/pkg/kernel"
	"github.com/Abraxas-365/hiresight/pkg/logx"
	"github.com/Abraxas-365/hiresight/recruitment/candidate"
	"github.com/Abraxas-365/hiresight/recruitment/job"
	"github.com/Abraxas-365/hiresight/recruitment/matching"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const topSkillsLimit = 10

// MatchingService connects stored candidates and jobs to the scoring engine
type MatchingService struct {
	matchRepo     matching.Repository
	candidateRepo candidate.Repository
	jobRepo       job.Repository
	userRepo      user.UserRepository
	engine        *scoring.Engine
	audit         audit.Recorder
	limit         int
}

type Option func(*MatchingService)

// WithRecommendationLimit sets the limit used when a caller passes none
func WithRecommendationLimit(n int) Option {
	return func(s *MatchingService) {
		if n > 0 {
			s.limit = n
		}
	}
}

func NewMatchingService(
	matchRepo matching.Repository,
	candidateRepo candidate.Repository,
	jobRepo job.Repository,
	userRepo user.UserRepository,
	engine *scoring.Engine,
	recorder audit.Recorder,
	opts ...Option,
) *MatchingService {
	if recorder == nil {
		recorder = audit.NopRecorder{}
	}
	s := &MatchingService{
		matchRepo:     matchRepo,
		candidateRepo: candidateRepo,
		jobRepo:       jobRepo,
		userRepo:      userRepo,
		engine:        engine,
		audit:         recorder,
		limit:         scoring.DefaultRecommendationLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AnalyzeCandidate extracts skills, experience and credentials from the
// candidate's resume text
func (s *MatchingService) AnalyzeCandidate(ctx context.Context, candidateID kernel.CandidateID, tenantID kernel.TenantID) (*matching.CandidateAnalysis, error) {
	c, err := s.candidateRepo.GetByID(ctx, candidateID, tenantID)
	if err != nil {
		return nil, err
	}
	if !c.HasResume() {
		return nil, matching.ErrNoResume().WithDetail("candidate_id", candidateID.String())
	}

	enriched := s.engine.EnrichCandidateData(c.Profile())
	return &matching.CandidateAnalysis{
		CandidateID:  c.ID,
		Analysis:     enriched.AIAnalysis,
		EnrichedData: enriched,
	}, nil
}

// RecommendCandidates ranks the tenant's candidates for a job
func (s *MatchingService) RecommendCandidates(ctx context.Context, jobID kernel.JobID, limit int, tenantID kernel.TenantID) (*matching.RecommendationsResponse, error) {
	j, err := s.jobRepo.GetByID(ctx, jobID, tenantID)
	if err != nil {
		return nil, err
	}
	candidates, err := s.candidateRepo.ListAll(ctx, tenantID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list candidates", errx.TypeInternal)
	}
	if limit <= 0 {
		limit = s.limit
	}

	recs := s.engine.RecommendCandidates(j.Requirement(), candidate.Profiles(candidates), limit)
	logx.Debugf("recommended %d of %d candidates for job %s", len(recs), len(candidates), jobID)

	return &matching.RecommendationsResponse{
		JobID:           j.ID,
		JobTitle:        j.Title,
		Recommendations: recs,
		Total:           len(candidates),
	}, nil
}

// Compatibility scores one candidate against one job and stores the result.
// Scoring the same pair again rescores the existing match.
func (s *MatchingService) Compatibility(ctx context.Context, candidateID kernel.CandidateID, jobID kernel.JobID, tenantID kernel.TenantID) (*matching.Match, error) {
	c, err := s.candidateRepo.GetByID(ctx, candidateID, tenantID)
	if err != nil {
		return nil, err
	}
	j, err := s.jobRepo.GetByID(ctx, jobID, tenantID)
	if err != nil {
		return nil, err
	}

	breakdown := s.engine.CalculateCompatibilityScore(c.Profile(), j.Requirement())
	now := time.Now()
	m := &matching.Match{
		ID:          kernel.NewMatchID(uuid.NewString()),
		TenantID:    tenantID,
		CandidateID: c.ID,
		JobID:       j.ID,
		Status:      matching.MatchStatusPending,
		CreatedAt:   now,
	}
	m.Rescore(breakdown)

	if err := s.matchRepo.Upsert(ctx, m); err != nil {
		return nil, errx.Wrap(err, "failed to save match", errx.TypeInternal)
	}
	return m, nil
}

// DetectDuplicates groups the tenant's candidates that look like the same
// person. threshold <= 0 uses the engine's configured threshold.
func (s *MatchingService) DetectDuplicates(ctx context.Context, threshold float64, actorID kernel.UserID, tenantID kernel.TenantID) (*matching.DuplicatesResponse, error) {
	u, err := s.actor(ctx, actorID, tenantID, auth.ScopeAIDuplicates, auth.ScopeAIAll)
	if err != nil {
		return nil, err
	}
	if !u.CanManage() {
		return nil, matching.ErrInsufficientPermissions().WithDetail("role", u.Role)
	}

	if threshold <= 0 {
		threshold = s.engine.DuplicateThreshold()
	}
	if threshold > 1 {
		return nil, matching.ErrInvalidThreshold().WithDetail("threshold", threshold)
	}

	candidates, err := s.candidateRepo.ListAll(ctx, tenantID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list candidates", errx.TypeInternal)
	}
	groups := s.engine.DetectDuplicateCandidates(candidate.Profiles(candidates), threshold)

	return &matching.DuplicatesResponse{
		Threshold:       threshold,
		DuplicateGroups: groups,
		TotalGroups:     len(groups),
	}, nil
}

// ReviewMatch records a reviewer's verdict on a match
func (s *MatchingService) ReviewMatch(ctx context.Context, id kernel.MatchID, status matching.MatchStatus, reviewerID kernel.UserID, tenantID kernel.TenantID) (*matching.Match, error) {
	if _, err := s.actor(ctx, reviewerID, tenantID, auth.ScopeMatchesReview, auth.ScopeMatchesAll); err != nil {
		return nil, err
	}

	m, err := s.matchRepo.GetByID(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}
	previous := m.Status
	if err := m.Review(status, reviewerID); err != nil {
		return nil, err
	}
	if err := s.matchRepo.Update(ctx, m); err != nil {
		if errx.IsCode(err, matching.CodeMatchNotFound) {
			return nil, err
		}
		return nil, errx.Wrap(err, "failed to review match", errx.TypeInternal)
	}

	s.audit.Record(ctx, audit.Event{
		TenantID:     tenantID,
		UserID:       reviewerID,
		Action:       audit.ActionMatchReviewed,
		ResourceType: audit.ResourceMatch,
		ResourceID:   m.ID.String(),
		Details:      audit.Details{"from": previous, "to": m.Status},
	})
	return m, nil
}

func (s *MatchingService) ListMatches(ctx context.Context, tenantID kernel.TenantID, req matching.ListMatchesRequest) (*matching.PaginatedMatchesResponse, error) {
	if req.Status != "" && !req.Status.IsValid() {
		return nil, matching.ErrInvalidStatus().WithDetail("status", req.Status)
	}
	result, err := s.matchRepo.List(ctx, tenantID, req)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list matches", errx.TypeInternal)
	}
	return result, nil
}

// Dashboard aggregates tenant totals, the most common skills and the
// distribution of match scores
func (s *MatchingService) Dashboard(ctx context.Context, tenantID kernel.TenantID) (*matching.Dashboard, error) {
	var (
		stats      matching.BasicStats
		candidates []candidate.Candidate
		scores     []float64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalCandidates, err = s.candidateRepo.Count(gctx, tenantID)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalJobs, err = s.jobRepo.Count(gctx, tenantID)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalMatches, err = s.matchRepo.Count(gctx, tenantID)
		return err
	})
	g.Go(func() (err error) {
		candidates, err = s.candidateRepo.ListAll(gctx, tenantID)
		return err
	})
	g.Go(func() (err error) {
		scores, err = s.matchRepo.Scores(gctx, tenantID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, errx.Wrap(err, "failed to build dashboard", errx.TypeInternal)
	}

	distribution := make(map[string]int, len(matching.ScoreBuckets))
	for _, b := range matching.ScoreBuckets {
		distribution[b] = 0
	}
	for _, score := range scores {
		distribution[matching.ScoreBucket(score)]++
	}

	return &matching.Dashboard{
		BasicStats:        stats,
		TopSkills:         topSkills(candidates, topSkillsLimit),
		ScoreDistribution: distribution,
	}, nil
}

// ExportRecommendations renders the recommendations for a job as a workbook
func (s *MatchingService) ExportRecommendations(ctx context.Context, jobID kernel.JobID, limit int, actorID kernel.UserID, tenantID kernel.TenantID) (*candidate.ExportFile, error) {
	if _, err := s.actor(ctx, actorID, tenantID, auth.ScopeCandidatesExport, auth.ScopeCandidatesAll); err != nil {
		return nil, err
	}

	resp, err := s.RecommendCandidates(ctx, jobID, limit, tenantID)
	if err != nil {
		return nil, err
	}

	table := export.Table{
		Sheet: "Recommendations",
		Title: "Recommended candidates for " + resp.JobTitle,
		Columns: []export.Column{
			{Key: "rank", Header: "Rank", Width: 8},
			{Key: "candidate_id", Header: "Candidate ID", Width: 38},
			{Key: "name", Header: "Name", Width: 28},
			{Key: "email", Header: "Email", Width: 30},
			{Key: "overall", Header: "Overall", Width: 10},
			{Key: "skills", Header: "Skills", Width: 10},
			{Key: "experience", Header: "Experience", Width: 12},
			{Key: "location", Header: "Location", Width: 10},
			{Key: "salary", Header: "Salary", Width: 10},
		},
		Summary: [][2]any{
			{"Job", resp.JobTitle},
			{"Candidates analyzed", resp.Total},
			{"Generated at", time.Now().UTC()},
		},
	}
	for i, r := range resp.Recommendations {
		table.Rows = append(table.Rows, map[string]any{
			"rank":         i + 1,
			"candidate_id": r.Candidate.ID,
			"name":         strings.TrimSpace(r.Candidate.FirstName + " " + r.Candidate.LastName),
			"email":        r.Candidate.Email,
			"overall":      r.CompatibilityScore,
			"skills":       r.ScoreBreakdown.SkillsMatch,
			"experience":   r.ScoreBreakdown.ExperienceMatch,
			"location":     r.ScoreBreakdown.LocationMatch,
			"salary":       r.ScoreBreakdown.SalaryMatch,
		})
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, export.FormatExcel, table); err != nil {
		return nil, errx.Wrap(err, "failed to render recommendations", errx.TypeInternal)
	}
	return &candidate.ExportFile{
		FileName:    fmt.Sprintf("recommendations_%s_%s%s", jobID, time.Now().UTC().Format("20060102_150405"), export.FormatExcel.Extension()),
		ContentType: export.FormatExcel.ContentType(),
		Data:        buf.Bytes(),
		Count:       len(resp.Recommendations),
	}, nil
}

// ============================================================================
// Helper Methods
// ============================================================================

func (s *MatchingService) actor(ctx context.Context, userID kernel.UserID, tenantID kernel.TenantID, scopes ...string) (*user.User, error) {
	u, err := s.userRepo.FindByID(ctx, userID, tenantID)
	if err != nil {
		return nil, user.ErrUserNotFound().WithDetail("user_id", userID.String())
	}
	if !u.IsActive() {
		return nil, user.ErrUserSuspended().WithDetail("user_id", userID.String())
	}
	if !u.HasAnyScope(append(scopes, auth.ScopeAll)...) {
		return nil, matching.ErrInsufficientPermissions().
			WithDetail("required_scope", scopes[0]).
			WithDetail("role", u.Role)
	}
	return u, nil
}

// topSkills counts comma-separated skills across candidates. Ties keep the
// order in which skills were first seen.
func topSkills(candidates []candidate.Candidate, n int) []matching.SkillCount {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, c := range candidates {
		for _, raw := range strings.Split(c.Skills, ",") {
			skill := strings.ToLower(strings.TrimSpace(raw))
			if skill == "" {
				continue
			}
			if _, seen := counts[skill]; !seen {
				order = append(order, skill)
			}
			counts[skill]++
		}
	}

	out := make([]matching.SkillCount, 0, len(order))
	for _, skill := range order {
		out = append(out, matching.SkillCount{Skill: skill, Count: counts[skill]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > n {
		out = out[:n]
	}
	return out
}
