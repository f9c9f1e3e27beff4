package scoring

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Patterns are tried in order; the first one that matches wins.
var experiencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\s*(?:years?|anos?)\s*(?:of\s*)?(?:experience|experiência)`),
	regexp.MustCompile(`(\d+)\+\s*(?:years?|anos?)`),
	regexp.MustCompile(`(\d+)\s*(?:years?|anos?)\s*(?:in|em)`),
}

var certificationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`certified?\s+([\p{L}\p{N}_]+)`),
	regexp.MustCompile(`certification\s+in\s+([\p{L}\p{N}_]+)`),
	regexp.MustCompile(`([\p{L}\p{N}_]+)\s+certified?`),
}

// ResumeAnalysis is the structured signal pulled out of a resume body
type ResumeAnalysis struct {
	Skills            []string `json:"skills"`
	ExperienceYears   *int     `json:"experience_years"`
	EducationKeywords []string `json:"education_keywords"`
	Certifications    []string `json:"certifications"`
}

func emptyAnalysis() ResumeAnalysis {
	return ResumeAnalysis{
		Skills:            []string{},
		EducationKeywords: []string{},
		Certifications:    []string{},
	}
}

// Extractor derives skills, experience and credentials from free text
type Extractor struct {
	skills    []string
	education []string
}

// NewExtractor builds an extractor over vocab. A nil vocab uses the
// embedded default.
func NewExtractor(vocab *Vocabulary) *Extractor {
	if vocab == nil {
		vocab = DefaultVocabulary()
	}
	return &Extractor{
		skills:    vocab.Skills(),
		education: append([]string(nil), vocab.EducationKeywords...),
	}
}

// ExtractSkills returns the vocabulary skills that occur in text, sorted
func (e *Extractor) ExtractSkills(text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}
	return matchTerms(strings.ToLower(text), e.skills)
}

// ExtractExperienceYears returns the first year count stated in text
func (e *Extractor) ExtractExperienceYears(text string) *int {
	if text == "" {
		return nil
	}
	lower := strings.ToLower(text)
	for _, re := range experiencePatterns {
		m := re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		years, err := strconv.Atoi(m[1])
		if err != nil {
			// digits overflowing int cannot be a year count
			continue
		}
		return &years
	}
	return nil
}

// ExtractEducation returns the education keywords present in text
func (e *Extractor) ExtractEducation(text string) []string {
	if text == "" {
		return []string{}
	}
	return matchTerms(strings.ToLower(text), e.education)
}

// ExtractCertifications returns the words following or preceding
// "certified"/"certification in", deduplicated and sorted
func (e *Extractor) ExtractCertifications(text string) []string {
	if text == "" {
		return []string{}
	}
	lower := strings.ToLower(text)
	seen := make(map[string]struct{})
	for _, re := range certificationPatterns {
		for _, m := range re.FindAllStringSubmatch(lower, -1) {
			seen[m[1]] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// AnalyzeResumeText composes every extraction over one resume body
func (e *Extractor) AnalyzeResumeText(text string) ResumeAnalysis {
	if strings.TrimSpace(text) == "" {
		return emptyAnalysis()
	}
	return ResumeAnalysis{
		Skills:            e.ExtractSkills(text),
		ExperienceYears:   e.ExtractExperienceYears(text),
		EducationKeywords: e.ExtractEducation(text),
		Certifications:    e.ExtractCertifications(text),
	}
}

func matchTerms(lower string, terms []string) []string {
	seen := make(map[string]struct{})
	for _, t := range terms {
		if strings.Contains(lower, t) {
			seen[t] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
