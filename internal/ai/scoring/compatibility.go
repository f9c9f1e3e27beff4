package scoring

import (
	"math"
	"sort"
	"strings"
)

// CalculateCompatibilityScore scores candidate against job
func (e *Engine) CalculateCompatibilityScore(c CandidateProfile, j JobRequirement) ScoreBreakdown {
	b := ScoreBreakdown{
		SkillsMatch:     e.skillsScore(c, j),
		ExperienceMatch: e.experienceScore(c, j),
		LocationMatch:   locationScore(c, j),
		SalaryMatch:     salaryScore(c, j),
	}
	overall := b.SkillsMatch*e.weights.Skills +
		b.ExperienceMatch*e.weights.Experience +
		b.LocationMatch*e.weights.Location +
		b.SalaryMatch*e.weights.Salary
	b.OverallScore = clamp(round2(overall), 0, 100)
	return b
}

func (e *Engine) skillsScore(c CandidateProfile, j JobRequirement) float64 {
	candidateSkills := e.extractor.ExtractSkills(c.Skills + " " + c.ResumeText)
	jobSkills := e.extractor.ExtractSkills(j.Requirements + " " + j.Description)
	if len(candidateSkills) == 0 || len(jobSkills) == 0 {
		return 0
	}

	have := make(map[string]struct{}, len(candidateSkills))
	for _, s := range candidateSkills {
		have[s] = struct{}{}
	}
	common := 0
	for _, s := range jobSkills {
		if _, ok := have[s]; ok {
			common++
		}
	}
	ratio := float64(common) / float64(len(jobSkills))
	return math.Min(ratio*100, 100)
}

// candidateYears prefers a positive declared value, then the resume
func (e *Engine) candidateYears(c CandidateProfile) int {
	if c.ExperienceYears != nil && *c.ExperienceYears != 0 {
		return *c.ExperienceYears
	}
	if y := e.extractor.ExtractExperienceYears(c.ResumeText); y != nil {
		return *y
	}
	return 0
}

func (e *Engine) band(level ExperienceLevel) Band {
	if b, ok := e.bands[ExperienceLevel(strings.ToLower(string(level)))]; ok {
		return b
	}
	return e.bands[LevelEntry]
}

func (e *Engine) experienceScore(c CandidateProfile, j JobRequirement) float64 {
	years := e.candidateYears(c)
	band := e.band(j.ExperienceLevel)

	switch {
	case years >= band.Min && years <= band.Max:
		return 100
	case years > band.Max:
		return math.Max(100-float64(years-band.Max)*10, 50)
	case band.Min > 0:
		return clamp(float64(years)/float64(band.Min)*100, 0, 100)
	default:
		return 0
	}
}

// locationScore gives partial credit on mismatch since location text is
// free-form. An empty location is a substring of any other.
func locationScore(c CandidateProfile, j JobRequirement) float64 {
	if j.RemoteWork {
		return 100
	}
	cl := strings.ToLower(c.Location)
	jl := strings.ToLower(j.Location)
	if strings.Contains(jl, cl) || strings.Contains(cl, jl) {
		return 100
	}
	return 50
}

func salaryScore(c CandidateProfile, j JobRequirement) float64 {
	expectation := valueOrZero(c.SalaryExpectation)
	lo := valueOrZero(j.SalaryMin)
	hi := valueOrZero(j.SalaryMax)

	switch {
	case expectation == 0 || (lo == 0 && hi == 0):
		return 75
	case expectation >= lo && expectation <= hi:
		return 100
	case expectation < lo:
		return 100
	case hi > 0:
		overage := (expectation - hi) / hi
		return math.Max(100-overage*100, 0)
	default:
		// a floor without a ceiling leaves no overage to penalize
		return 100
	}
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// Recommendation pairs a candidate with its score
type Recommendation struct {
	Candidate          CandidateProfile `json:"candidate"`
	CompatibilityScore float64          `json:"compatibility_score"`
	ScoreBreakdown     ScoreBreakdown   `json:"score_breakdown"`
}

// RecommendCandidates ranks candidates for job by descending aggregate
// score, keeping input order among equal scores, and returns at most limit.
func (e *Engine) RecommendCandidates(j JobRequirement, candidates []CandidateProfile, limit int) []Recommendation {
	if limit <= 0 {
		limit = DefaultRecommendationLimit
	}
	recs := make([]Recommendation, 0, len(candidates))
	for _, c := range candidates {
		b := e.CalculateCompatibilityScore(c, j)
		recs = append(recs, Recommendation{
			Candidate:          c,
			CompatibilityScore: b.OverallScore,
			ScoreBreakdown:     b,
		})
	}
	sort.SliceStable(recs, func(a, b int) bool {
		return recs[a].CompatibilityScore > recs[b].CompatibilityScore
	})
	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs
}
