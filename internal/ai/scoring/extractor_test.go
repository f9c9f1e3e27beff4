package scoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int            { return &v }
func floatPtr(v float64) *float64  { return &v }
func newTestExtractor() *Extractor { return NewExtractor(nil) }

func TestExtractSkills(t *testing.T) {
	ex := newTestExtractor()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"case insensitive", "I know Python and React", []string{"python", "react"}},
		{"empty", "", []string{}},
		{"whitespace", "   ", []string{}},
		{"deduplicated", "python PYTHON Python", []string{"python"}},
		{"misspelling does not match", "pyhton and reakt", []string{}},
		{"soft skills", "Strong Leadership and Communication", []string{"communication", "leadership"}},
		{"multi word term", "experience with machine learning", []string{"machine learning"}},
		// substring semantics: javascript also contains java
		{"substring overlap", "javascript", []string{"java", "javascript"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ex.ExtractSkills(tt.text))
		})
	}
}

func TestExtractExperienceYears(t *testing.T) {
	ex := newTestExtractor()

	tests := []struct {
		name string
		text string
		want *int
	}{
		{"years of experience", "5 years of experience in backend", intPtr(5)},
		{"portuguese", "Tenho 7 anos de experiência", nil},
		{"portuguese em", "3 anos em desenvolvimento", intPtr(3)},
		{"plus form", "10+ years building APIs", intPtr(10)},
		{"in form", "4 years in fintech", intPtr(4)},
		{"singular", "1 year experience", intPtr(1)},
		{"no match", "senior engineer", nil},
		{"empty", "", nil},
		// first pattern wins over an earlier occurrence of a later pattern
		{"pattern order", "2+ years with Go, 6 years of experience overall", intPtr(6)},
		{"first match of a pattern", "3 years of experience here, 9 years of experience there", intPtr(3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ex.ExtractExperienceYears(tt.text)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestExtractExperienceYears_Overflow(t *testing.T) {
	ex := newTestExtractor()
	got := ex.ExtractExperienceYears(strings.Repeat("9", 40) + " years of experience")
	assert.Nil(t, got)
}

func TestAnalyzeResumeText(t *testing.T) {
	ex := newTestExtractor()

	t.Run("empty input yields empty analysis", func(t *testing.T) {
		a := ex.AnalyzeResumeText("")
		assert.Empty(t, a.Skills)
		assert.NotNil(t, a.Skills)
		assert.Nil(t, a.ExperienceYears)
		assert.Empty(t, a.EducationKeywords)
		assert.Empty(t, a.Certifications)
	})

	t.Run("full resume", func(t *testing.T) {
		text := `Backend developer with 6 years of experience.
Bachelor degree from State University.
AWS certified solutions architect. Certification in Kubernetes.
Skills: Go, Docker, PostgreSQL, teamwork.`

		a := ex.AnalyzeResumeText(text)
		require.NotNil(t, a.ExperienceYears)
		assert.Equal(t, 6, *a.ExperienceYears)
		assert.Equal(t, []string{"bachelor", "degree", "university"}, a.EducationKeywords)
		assert.Subset(t, a.Skills, []string{"aws", "docker", "postgresql", "kubernetes", "teamwork", "sql"})
		assert.Equal(t, []string{"aws", "kubernetes", "solutions"}, a.Certifications)
	})
}

func TestExtractCertifications_NonASCII(t *testing.T) {
	ex := newTestExtractor()

	assert.Equal(t, []string{"especialização"}, ex.ExtractCertifications("Certified especialização em dados"))
	assert.Equal(t, []string{"gestão"}, ex.ExtractCertifications("Certification in Gestão de projetos"))
}

func TestLoadVocabulary(t *testing.T) {
	t.Run("normalizes entries", func(t *testing.T) {
		v, err := LoadVocabulary(strings.NewReader(`
technical_skills: [" Go ", rust, RUST, ""]
soft_skills: [Mentoring]
education_keywords: [diploma]
`))
		require.NoError(t, err)
		assert.Equal(t, []string{"go", "rust"}, v.TechnicalSkills)
		assert.Equal(t, []string{"go", "rust", "mentoring"}, v.Skills())

		ex := NewExtractor(v)
		assert.Equal(t, []string{"go", "mentoring"}, ex.ExtractSkills("Go developer who enjoys mentoring"))
		assert.Equal(t, []string{"diploma"}, ex.ExtractEducation("Diploma in CS"))
	})

	t.Run("rejects empty list", func(t *testing.T) {
		_, err := LoadVocabulary(strings.NewReader(`education_keywords: [phd]`))
		assert.Error(t, err)
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		_, err := LoadVocabulary(strings.NewReader("technical_skills: [unterminated"))
		assert.Error(t, err)
	})

	t.Run("embedded default", func(t *testing.T) {
		v := DefaultVocabulary()
		assert.Len(t, v.TechnicalSkills, 40)
		assert.Len(t, v.SoftSkills, 12)
		assert.Len(t, v.EducationKeywords, 7)
	})
}
