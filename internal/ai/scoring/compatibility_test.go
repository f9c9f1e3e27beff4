package scoring

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateCompatibilityScore_EndToEnd(t *testing.T) {
	engine := NewEngine()

	candidate := CandidateProfile{
		Skills:            "python, react",
		ExperienceYears:   intPtr(4),
		Location:          "Remote",
		SalaryExpectation: floatPtr(0),
	}
	job := JobRequirement{
		Requirements:    "python needed",
		ExperienceLevel: LevelMid,
		Location:        "NYC",
		RemoteWork:      true,
		SalaryMin:       floatPtr(0),
		SalaryMax:       floatPtr(0),
	}

	got := engine.CalculateCompatibilityScore(candidate, job)

	assert.Equal(t, 100.0, got.SkillsMatch)
	assert.Equal(t, 100.0, got.ExperienceMatch)
	assert.Equal(t, 100.0, got.LocationMatch)
	assert.Equal(t, 75.0, got.SalaryMatch)
	// 100*0.4 + 100*0.3 + 100*0.15 + 75*0.15
	assert.InDelta(t, 96.25, got.OverallScore, 1e-9)
}

func TestCalculateCompatibilityScore_Deterministic(t *testing.T) {
	engine := NewEngine()
	candidate := CandidateProfile{
		ResumeText:        "Go and Docker engineer, 7 years of experience with Kubernetes and AWS",
		Location:          "Lisbon, Portugal",
		SalaryExpectation: floatPtr(90000),
	}
	job := JobRequirement{
		Description:     "Platform team",
		Requirements:    "Docker, Kubernetes, Terraform, Python",
		ExperienceLevel: LevelSenior,
		Location:        "Lisbon",
		SalaryMin:       floatPtr(60000),
		SalaryMax:       floatPtr(80000),
	}

	first := engine.CalculateCompatibilityScore(candidate, job)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, engine.CalculateCompatibilityScore(candidate, job))
	}
}

func TestSkillsScore(t *testing.T) {
	engine := NewEngine()

	t.Run("job without vocabulary terms scores zero", func(t *testing.T) {
		got := engine.CalculateCompatibilityScore(
			CandidateProfile{Skills: "python, docker, kubernetes, leadership"},
			JobRequirement{Requirements: "must be friendly", Description: "warehouse role"},
		)
		assert.Equal(t, 0.0, got.SkillsMatch)
	})

	t.Run("candidate without skills scores zero", func(t *testing.T) {
		got := engine.CalculateCompatibilityScore(
			CandidateProfile{},
			JobRequirement{Requirements: "python"},
		)
		assert.Equal(t, 0.0, got.SkillsMatch)
	})

	t.Run("partial coverage", func(t *testing.T) {
		got := engine.CalculateCompatibilityScore(
			CandidateProfile{Skills: "docker", ResumeText: "I also use redis"},
			JobRequirement{Requirements: "docker, redis, figma, flask"},
		)
		assert.Equal(t, 50.0, got.SkillsMatch)
	})

	t.Run("description counts as job text", func(t *testing.T) {
		got := engine.CalculateCompatibilityScore(
			CandidateProfile{Skills: "figma"},
			JobRequirement{Description: "Design with Figma"},
		)
		assert.Equal(t, 100.0, got.SkillsMatch)
	})
}

func TestExperienceScore(t *testing.T) {
	engine := NewEngine()

	tests := []struct {
		name     string
		declared *int
		resume   string
		level    ExperienceLevel
		want     float64
	}{
		{"above band decays", intPtr(6), "", LevelMid, 90},
		{"far above band floors at 50", intPtr(30), "", LevelMid, 50},
		{"band lower bound inclusive", intPtr(2), "", LevelMid, 100},
		{"band upper bound inclusive", intPtr(5), "", LevelMid, 100},
		{"below band ramps", intPtr(1), "", LevelMid, 50},
		{"below senior band", intPtr(4), "", LevelSenior, 80},
		{"executive in band", intPtr(15), "", LevelExecutive, 100},
		{"unknown tier uses entry", intPtr(1), "", ExperienceLevel("principal"), 100},
		{"empty tier uses entry", intPtr(4), "", "", 80},
		{"tier is case insensitive", intPtr(3), "", ExperienceLevel("MID"), 100},
		{"extracted from resume", nil, "8 years of experience", LevelSenior, 100},
		{"declared wins over resume", intPtr(1), "8 years of experience", LevelSenior, 20},
		{"declared zero falls back to resume", intPtr(0), "3 years in retail", LevelMid, 100},
		{"nothing known counts as zero", nil, "", LevelMid, 0},
		{"nothing known entry band", nil, "", LevelEntry, 100},
		{"negative declared clamps", intPtr(-3), "", LevelMid, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.CalculateCompatibilityScore(
				CandidateProfile{ExperienceYears: tt.declared, ResumeText: tt.resume},
				JobRequirement{ExperienceLevel: tt.level},
			)
			assert.InDelta(t, tt.want, got.ExperienceMatch, 1e-9)
		})
	}
}

func TestLocationScore(t *testing.T) {
	engine := NewEngine()

	tests := []struct {
		name      string
		candidate string
		job       string
		remote    bool
		want      float64
	}{
		{"remote ignores mismatch", "Tokyo", "NYC", true, 100},
		{"candidate inside job", "lisbon", "Lisbon, Portugal", false, 100},
		{"job inside candidate", "São Paulo, SP, Brazil", "são paulo", false, 100},
		{"mismatch gets partial credit", "Berlin", "Madrid", false, 50},
		{"empty candidate location is a substring", "", "Madrid", false, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.CalculateCompatibilityScore(
				CandidateProfile{Location: tt.candidate},
				JobRequirement{Location: tt.job, RemoteWork: tt.remote},
			)
			assert.Equal(t, tt.want, got.LocationMatch)
		})
	}
}

func TestSalaryScore(t *testing.T) {
	engine := NewEngine()

	tests := []struct {
		name        string
		expectation *float64
		min, max    *float64
		want        float64
	}{
		{"asks less than min", floatPtr(50000), floatPtr(60000), floatPtr(80000), 100},
		{"within range", floatPtr(70000), floatPtr(60000), floatPtr(80000), 100},
		{"range bounds inclusive", floatPtr(80000), floatPtr(60000), floatPtr(80000), 100},
		{"ten percent over", floatPtr(88000), floatPtr(60000), floatPtr(80000), 90},
		{"double the max floors at zero", floatPtr(200000), floatPtr(60000), floatPtr(80000), 0},
		{"unset expectation is neutral", nil, floatPtr(60000), floatPtr(80000), 75},
		{"zero expectation is neutral", floatPtr(0), floatPtr(60000), floatPtr(80000), 75},
		{"no range is neutral", floatPtr(70000), nil, nil, 75},
		{"zero range is neutral", floatPtr(70000), floatPtr(0), floatPtr(0), 75},
		{"only max", floatPtr(40000), nil, floatPtr(50000), 100},
		{"only min below", floatPtr(40000), floatPtr(50000), nil, 100},
		{"only min above has no ceiling", floatPtr(60000), floatPtr(50000), nil, 100},
		{"only min with zero max", floatPtr(60000), floatPtr(50000), floatPtr(0), 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.CalculateCompatibilityScore(
				CandidateProfile{SalaryExpectation: tt.expectation},
				JobRequirement{SalaryMin: tt.min, SalaryMax: tt.max},
			)
			assert.InDelta(t, tt.want, got.SalaryMatch, 1e-9)
		})
	}
}

func TestScoresStayInRange(t *testing.T) {
	engine := NewEngine()
	levels := []ExperienceLevel{LevelEntry, LevelMid, LevelSenior, LevelExecutive, "other"}
	years := []*int{nil, intPtr(-5), intPtr(0), intPtr(1), intPtr(3), intPtr(12), intPtr(60)}
	salaries := []*float64{nil, floatPtr(-1), floatPtr(1), floatPtr(55000), floatPtr(1e9)}

	for _, level := range levels {
		for _, y := range years {
			for _, s := range salaries {
				b := engine.CalculateCompatibilityScore(
					CandidateProfile{Skills: "python, sql", ExperienceYears: y, SalaryExpectation: s, Location: "x"},
					JobRequirement{Requirements: "python, java", ExperienceLevel: level, SalaryMin: floatPtr(50000), SalaryMax: floatPtr(60000), Location: "y"},
				)
				for _, v := range []float64{b.SkillsMatch, b.ExperienceMatch, b.LocationMatch, b.SalaryMatch, b.OverallScore} {
					assert.GreaterOrEqual(t, v, 0.0)
					assert.LessOrEqual(t, v, 100.0)
				}
			}
		}
	}
}

func TestCustomScoreWeights(t *testing.T) {
	engine := NewEngine(WithScoreWeights(ScoreWeights{Skills: 1}))
	got := engine.CalculateCompatibilityScore(
		CandidateProfile{Skills: "docker"},
		JobRequirement{Requirements: "docker, redis, figma"},
	)
	assert.InDelta(t, 33.33, got.OverallScore, 1e-9)
}

func TestRecommendCandidates(t *testing.T) {
	engine := NewEngine()
	job := JobRequirement{Requirements: "python, docker", ExperienceLevel: LevelMid, RemoteWork: true}

	candidates := []CandidateProfile{
		{ID: "none", Skills: "figma"},
		{ID: "half-a", Skills: "python", ExperienceYears: intPtr(3)},
		{ID: "full", Skills: "python, docker", ExperienceYears: intPtr(3)},
		{ID: "half-b", Skills: "docker", ExperienceYears: intPtr(3)},
	}

	t.Run("sorted descending with stable ties", func(t *testing.T) {
		recs := engine.RecommendCandidates(job, candidates, 10)
		require.Len(t, recs, 4)

		ids := make([]string, len(recs))
		for i, r := range recs {
			ids[i] = r.Candidate.ID
			if i > 0 {
				assert.GreaterOrEqual(t, recs[i-1].CompatibilityScore, r.CompatibilityScore)
			}
			assert.Equal(t, r.ScoreBreakdown.OverallScore, r.CompatibilityScore)
		}
		assert.Equal(t, []string{"full", "half-a", "half-b", "none"}, ids)
	})

	t.Run("length is min of limit and input", func(t *testing.T) {
		for _, limit := range []int{1, 2, 4, 7} {
			recs := engine.RecommendCandidates(job, candidates, limit)
			assert.Len(t, recs, min(limit, len(candidates)), fmt.Sprintf("limit %d", limit))
		}
	})

	t.Run("default limit", func(t *testing.T) {
		many := make([]CandidateProfile, 15)
		for i := range many {
			many[i] = CandidateProfile{ID: fmt.Sprint(i)}
		}
		assert.Len(t, engine.RecommendCandidates(job, many, 0), DefaultRecommendationLimit)
	})

	t.Run("input is not reordered", func(t *testing.T) {
		engine.RecommendCandidates(job, candidates, 2)
		assert.Equal(t, "none", candidates[0].ID)
		assert.Equal(t, "half-b", candidates[3].ID)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, engine.RecommendCandidates(job, nil, 5))
	})
}
