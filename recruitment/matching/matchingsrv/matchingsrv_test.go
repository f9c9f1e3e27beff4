package matchingsrv

import (
	"context"
	"testing"
	"time"

	"github.com/Abraxas-365/hiresight/internal/ai/scoring"
	"github.com/Abraxas-365/hiresight/pkg/audit"
	"github.com/Abraxas-365/hiresight/pkg/errx"
	"github.com/Abraxas-365/hiresight/pkg/iam/user"
	"github.com/Abraxas-365/hiresight/pkg/iam/user/usertest"
	"github.com/Abraxas-365/hiresight/pkg/kernel"
	"github.com/Abraxas-365/hiresight/recruitment/candidate"
	"github.com/Abraxas-365/hiresight/recruitment/candidate/candidatetest"
	"github.com/Abraxas-365/hiresight/recruitment/job"
	"github.com/Abraxas-365/hiresight/recruitment/job/jobtest"
	"github.com/Abraxas-365/hiresight/recruitment/matching"
	"github.com/Abraxas-365/hiresight/recruitment/matching/matchingtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct{ events []audit.Event }

func (r *recorder) Record(_ context.Context, e audit.Event) { r.events = append(r.events, e) }

type fixture struct {
	svc       *MatchingService
	matches   *matchingtest.MemoryRepository
	audit     *recorder
	manager   user.User
	recruiter user.User
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func setup(t *testing.T) fixture {
	t.Helper()
	now := time.Now()
	candidates := candidatetest.NewMemoryRepository(
		candidate.Candidate{
			ID: "c1", TenantID: "t1", FirstName: "Ana", LastName: "Diaz", Email: "ana@acme.io",
			LinkedInURL: "https://linkedin.com/in/ana", Skills: "Python, Docker, PostgreSQL",
			ExperienceYears: intPtr(4), Location: "Lima", SalaryExpectation: floatPtr(5000),
			ResumeText: "Backend engineer with 5 years of experience using Kubernetes.",
			Status:     candidate.CandidateStatusNew, CreatedAt: now,
		},
		candidate.Candidate{
			ID: "c2", TenantID: "t1", FirstName: "Bo", LastName: "Li", Email: "bo@acme.io",
			Skills: "java, python", Location: "Berlin", SalaryExpectation: floatPtr(9000),
			Status: candidate.CandidateStatusNew, CreatedAt: now.Add(time.Second),
		},
		candidate.Candidate{
			ID: "c3", TenantID: "t1", FirstName: "ana", LastName: "diaz", Email: "ANA@acme.io",
			LinkedInURL: "https://linkedin.com/in/ana", Skills: "python , docker",
			Status: candidate.CandidateStatusNew, CreatedAt: now.Add(2 * time.Second),
		},
		candidate.Candidate{
			ID: "other", TenantID: "t2", FirstName: "Ana", LastName: "Diaz", Skills: "python",
			Status: candidate.CandidateStatusNew, CreatedAt: now,
		},
	)
	jobs := jobtest.NewMemoryRepository(job.Job{
		ID: "j1", TenantID: "t1", Title: "Backend Engineer", Description: "Build APIs",
		Requirements: "Python, Docker, PostgreSQL", ExperienceLevel: job.LevelMid,
		Location: "Lima", SalaryMin: floatPtr(3000), SalaryMax: floatPtr(6000),
		Status: job.JobStatusActive, CreatedAt: now,
	})
	users := usertest.NewMemoryRepository()
	manager := users.Seed("manager", "t1", user.RoleManager)
	recruiter := users.Seed("recruiter", "t1", user.RoleUser)
	matches := matchingtest.NewMemoryRepository()
	rec := &recorder{}

	svc := NewMatchingService(matches, candidates, jobs, users, scoring.NewEngine(), rec)
	return fixture{svc: svc, matches: matches, audit: rec, manager: manager, recruiter: recruiter}
}

func TestAnalyzeCandidate(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	analysis, err := f.svc.AnalyzeCandidate(ctx, "c1", "t1")
	require.NoError(t, err)
	require.NotNil(t, analysis.Analysis.ExperienceYears)
	assert.Equal(t, 5, *analysis.Analysis.ExperienceYears)
	assert.Contains(t, analysis.Analysis.Skills, "kubernetes")
	require.NotNil(t, analysis.EnrichedData.ExperienceYears)
	assert.Equal(t, 4, *analysis.EnrichedData.ExperienceYears)

	_, err = f.svc.AnalyzeCandidate(ctx, "c2", "t1")
	assert.True(t, errx.IsCode(err, matching.CodeNoResume))

	_, err = f.svc.AnalyzeCandidate(ctx, "other", "t1")
	assert.True(t, errx.IsCode(err, candidate.CodeCandidateNotFound))
}

func TestRecommendCandidates(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	resp, err := f.svc.RecommendCandidates(ctx, "j1", 0, "t1")
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Total)
	require.Len(t, resp.Recommendations, 3)
	assert.Equal(t, "c1", resp.Recommendations[0].Candidate.ID)
	assert.Equal(t, 100.0, resp.Recommendations[0].CompatibilityScore)
	assert.Equal(t, "c3", resp.Recommendations[1].Candidate.ID)
	assert.Equal(t, "c2", resp.Recommendations[2].Candidate.ID)

	limited, err := f.svc.RecommendCandidates(ctx, "j1", 2, "t1")
	require.NoError(t, err)
	assert.Len(t, limited.Recommendations, 2)

	_, err = f.svc.RecommendCandidates(ctx, "missing", 0, "t1")
	assert.True(t, errx.IsCode(err, job.CodeJobNotFound))
}

func TestCompatibility(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	first, err := f.svc.Compatibility(ctx, "c1", "j1", "t1")
	require.NoError(t, err)
	assert.Equal(t, 100.0, first.CompatibilityScore)
	assert.Equal(t, 100.0, first.ScoreBreakdown.SkillsMatch)
	assert.Equal(t, matching.MatchStatusPending, first.Status)

	_, err = f.svc.ReviewMatch(ctx, first.ID, matching.MatchStatusApproved, f.manager.ID, "t1")
	require.NoError(t, err)

	again, err := f.svc.Compatibility(ctx, "c1", "j1", "t1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, matching.MatchStatusApproved, again.Status, "rescoring keeps the review")

	n, err := f.matches.Count(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = f.svc.Compatibility(ctx, "other", "j1", "t1")
	assert.True(t, errx.IsCode(err, candidate.CodeCandidateNotFound))
}

func TestDetectDuplicates(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	resp, err := f.svc.DetectDuplicates(ctx, 0, f.manager.ID, "t1")
	require.NoError(t, err)
	assert.Equal(t, scoring.DefaultDuplicateThreshold, resp.Threshold)
	require.Equal(t, 1, resp.TotalGroups)
	assert.Equal(t, []string{"c1", "c3"}, resp.DuplicateGroups[0].IDs())

	_, err = f.svc.DetectDuplicates(ctx, 0, f.recruiter.ID, "t1")
	assert.True(t, errx.IsCode(err, matching.CodeInsufficientPermissions))

	_, err = f.svc.DetectDuplicates(ctx, 1.5, f.manager.ID, "t1")
	assert.True(t, errx.IsCode(err, matching.CodeInvalidThreshold))
}

func TestReviewMatch(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	m, err := f.svc.Compatibility(ctx, "c2", "j1", "t1")
	require.NoError(t, err)

	_, err = f.svc.ReviewMatch(ctx, m.ID, matching.MatchStatusRejected, f.recruiter.ID, "t1")
	assert.True(t, errx.IsCode(err, matching.CodeInsufficientPermissions))

	_, err = f.svc.ReviewMatch(ctx, m.ID, matching.MatchStatusPending, f.manager.ID, "t1")
	assert.True(t, errx.IsCode(err, matching.CodeInvalidStatus))

	_, err = f.svc.ReviewMatch(ctx, "missing", matching.MatchStatusRejected, f.manager.ID, "t1")
	assert.True(t, errx.IsCode(err, matching.CodeMatchNotFound))

	reviewed, err := f.svc.ReviewMatch(ctx, m.ID, matching.MatchStatusRejected, f.manager.ID, "t1")
	require.NoError(t, err)
	assert.Equal(t, matching.MatchStatusRejected, reviewed.Status)
	require.NotNil(t, reviewed.ReviewedBy)
	assert.Equal(t, f.manager.ID, *reviewed.ReviewedBy)
	assert.NotNil(t, reviewed.ReviewedAt)

	require.Len(t, f.audit.events, 1)
	assert.Equal(t, audit.ActionMatchReviewed, f.audit.events[0].Action)
	assert.Equal(t, audit.ResourceMatch, f.audit.events[0].ResourceType)
	assert.Equal(t, matching.MatchStatusPending, f.audit.events[0].Details["from"])
}

func TestListMatches(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	for _, id := range []kernel.CandidateID{"c1", "c2", "c3"} {
		_, err := f.svc.Compatibility(ctx, id, "j1", "t1")
		require.NoError(t, err)
	}

	all, err := f.svc.ListMatches(ctx, "t1", matching.ListMatchesRequest{JobID: "j1"})
	require.NoError(t, err)
	require.Len(t, all.Items, 3)
	assert.Equal(t, kernel.CandidateID("c1"), all.Items[0].CandidateID)

	one, err := f.svc.ListMatches(ctx, "t1", matching.ListMatchesRequest{CandidateID: "c2"})
	require.NoError(t, err)
	assert.Len(t, one.Items, 1)

	_, err = f.svc.ListMatches(ctx, "t1", matching.ListMatchesRequest{Status: "bogus"})
	assert.True(t, errx.IsCode(err, matching.CodeInvalidStatus))
}

func TestDashboard(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	for _, id := range []kernel.CandidateID{"c1", "c2"} {
		_, err := f.svc.Compatibility(ctx, id, "j1", "t1")
		require.NoError(t, err)
	}

	d, err := f.svc.Dashboard(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, matching.BasicStats{TotalCandidates: 3, TotalJobs: 1, TotalMatches: 2}, d.BasicStats)
	assert.Equal(t, []matching.SkillCount{
		{Skill: "python", Count: 3},
		{Skill: "docker", Count: 2},
		{Skill: "postgresql", Count: 1},
		{Skill: "java", Count: 1},
	}, d.TopSkills)
	assert.Equal(t, 1, d.ScoreDistribution["90-100"])
	assert.Equal(t, 1, d.ScoreDistribution["0-49"])
	assert.Equal(t, 0, d.ScoreDistribution["70-79"])
	assert.Len(t, d.ScoreDistribution, 6)
}

func TestExportRecommendations(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	file, err := f.svc.ExportRecommendations(ctx, "j1", 0, f.manager.ID, "t1")
	require.NoError(t, err)
	assert.Equal(t, 3, file.Count)
	assert.Equal(t, "PK", string(file.Data[:2]))
	assert.Contains(t, file.FileName, ".xlsx")

	_, err = f.svc.ExportRecommendations(ctx, "j1", 0, f.recruiter.ID, "t1")
	assert.True(t, errx.IsCode(err, matching.CodeInsufficientPermissions))
}
