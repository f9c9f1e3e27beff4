package scoring

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed vocabulary.yaml
var defaultVocabulary []byte

// Vocabulary is the reference word list used by the extractor. It is read
// only once built.
type Vocabulary struct {
	TechnicalSkills   []string `yaml:"technical_skills"`
	SoftSkills        []string `yaml:"soft_skills"`
	EducationKeywords []string `yaml:"education_keywords"`
}

// LoadVocabulary decodes a YAML word list. Entries are lower-cased and
// trimmed; blanks and repeats are dropped.
func LoadVocabulary(r io.Reader) (*Vocabulary, error) {
	var v Vocabulary
	if err := yaml.NewDecoder(r).Decode(&v); err != nil {
		return nil, fmt.Errorf("decode vocabulary: %w", err)
	}
	v.TechnicalSkills = normalizeTerms(v.TechnicalSkills)
	v.SoftSkills = normalizeTerms(v.SoftSkills)
	v.EducationKeywords = normalizeTerms(v.EducationKeywords)

	if len(v.TechnicalSkills)+len(v.SoftSkills) == 0 {
		return nil, fmt.Errorf("vocabulary has no skills")
	}
	return &v, nil
}

// LoadVocabularyFile reads a word list from disk
func LoadVocabularyFile(path string) (*Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vocabulary %s: %w", path, err)
	}
	defer f.Close()
	return LoadVocabulary(f)
}

// DefaultVocabulary returns the embedded word list. The embedded file is
// part of the binary, so a decode failure is a build defect and panics.
func DefaultVocabulary() *Vocabulary {
	v, err := LoadVocabulary(strings.NewReader(string(defaultVocabulary)))
	if err != nil {
		panic(fmt.Sprintf("scoring: embedded vocabulary: %v", err))
	}
	return v
}

// Skills returns technical and soft skills in declaration order
func (v *Vocabulary) Skills() []string {
	out := make([]string, 0, len(v.TechnicalSkills)+len(v.SoftSkills))
	out = append(out, v.TechnicalSkills...)
	return append(out, v.SoftSkills...)
}

func normalizeTerms(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
