package scoring

import "strings"

// MergeOptional prefers declared and falls back to derived. A pointer to the
// zero value counts as absent on either side.
func MergeOptional[T comparable](declared, derived *T) *T {
	var zero T
	if declared != nil && *declared != zero {
		return declared
	}
	if derived != nil && *derived != zero {
		return derived
	}
	return declared
}

// EnrichedCandidate is a candidate with gaps filled from its resume
type EnrichedCandidate struct {
	CandidateProfile
	AIAnalysis ResumeAnalysis `json:"ai_analysis"`
}

// EnrichCandidateData fills skills and experience years that the candidate
// did not declare from the analysis of the resume text. Declared values are
// never replaced; the input is not mutated.
func (e *Engine) EnrichCandidateData(c CandidateProfile) EnrichedCandidate {
	analysis := e.extractor.AnalyzeResumeText(c.ResumeText)
	out := c

	var derivedSkills *string
	if len(analysis.Skills) > 0 {
		joined := strings.Join(analysis.Skills, ", ")
		derivedSkills = &joined
	}
	declaredSkills := strings.TrimSpace(c.Skills)
	if merged := MergeOptional(&declaredSkills, derivedSkills); merged != nil && *merged != declaredSkills {
		out.Skills = *merged
	}

	out.ExperienceYears = MergeOptional(c.ExperienceYears, analysis.ExperienceYears)

	return EnrichedCandidate{CandidateProfile: out, AIAnalysis: analysis}
}
