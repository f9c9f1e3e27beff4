package matching

import (
	"github.com/Abraxas-365/hiresight/internal/ai/scoring"
	"github.com/Abraxas-365/hiresight/pkg/kernel"
)

// CandidateAnalysis is the resume analysis of a stored candidate
type CandidateAnalysis struct {
	CandidateID  kernel.CandidateID        `json:"candidate_id"`
	Analysis     scoring.ResumeAnalysis    `json:"analysis"`
	EnrichedData scoring.EnrichedCandidate `json:"enriched_data"`
}

type RecommendationsResponse struct {
	JobID           kernel.JobID             `json:"job_id"`
	JobTitle        string                   `json:"job_title"`
	Recommendations []scoring.Recommendation `json:"recommendations"`
	Total           int                      `json:"total_candidates_analyzed"`
}

type DuplicatesResponse struct {
	Threshold       float64                  `json:"threshold"`
	DuplicateGroups []scoring.DuplicateGroup `json:"duplicate_groups"`
	TotalGroups     int                      `json:"total_groups"`
}

type ReviewMatchRequest struct {
	Status string `json:"status" validate:"required,oneof=reviewed approved rejected"`
}

// ListMatchesRequest filters matches by job, candidate and status, best score first
type ListMatchesRequest struct {
	JobID       kernel.JobID             `json:"job_id,omitempty" query:"job_id"`
	CandidateID kernel.CandidateID       `json:"candidate_id,omitempty" query:"candidate_id"`
	Status      MatchStatus              `json:"status,omitempty" query:"status"`
	Pagination  kernel.PaginationOptions `json:"pagination"`
}

type PaginatedMatchesResponse = kernel.Paginated[Match]

type BasicStats struct {
	TotalCandidates int `json:"total_candidates"`
	TotalJobs       int `json:"total_jobs"`
	TotalMatches    int `json:"total_matches"`
}

type SkillCount struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

type Dashboard struct {
	BasicStats        BasicStats     `json:"basic_stats"`
	TopSkills         []SkillCount   `json:"top_skills"`
	ScoreDistribution map[string]int `json:"score_distribution"`
}
