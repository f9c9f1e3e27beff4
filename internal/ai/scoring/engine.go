// Package scoring estimates candidate/job compatibility and groups likely
// duplicate candidate records. It works on plain value records and holds no
// mutable state, so one Engine can serve concurrent callers.
package scoring

import "math"

// ExperienceLevel is the seniority tier of a job posting
type ExperienceLevel string

const (
	LevelEntry     ExperienceLevel = "entry"
	LevelMid       ExperienceLevel = "mid"
	LevelSenior    ExperienceLevel = "senior"
	LevelExecutive ExperienceLevel = "executive"
)

// Band is the inclusive range of years admitted by a tier
type Band struct {
	Min int
	Max int
}

// DefaultBands maps each tier to its band; unknown tiers use entry's
var DefaultBands = map[ExperienceLevel]Band{
	LevelEntry:     {Min: 0, Max: 2},
	LevelMid:       {Min: 2, Max: 5},
	LevelSenior:    {Min: 5, Max: 10},
	LevelExecutive: {Min: 10, Max: 20},
}

// CandidateProfile is the candidate view the engine scores. Nil pointers
// and empty strings mean "no value".
type CandidateProfile struct {
	ID                string   `json:"id,omitempty"`
	FirstName         string   `json:"first_name,omitempty"`
	LastName          string   `json:"last_name,omitempty"`
	Email             string   `json:"email,omitempty"`
	Phone             string   `json:"phone,omitempty"`
	LinkedInURL       string   `json:"linkedin_url,omitempty"`
	ResumeText        string   `json:"resume_text,omitempty"`
	Skills            string   `json:"skills,omitempty"`
	ExperienceYears   *int     `json:"experience_years,omitempty"`
	Location          string   `json:"location,omitempty"`
	SalaryExpectation *float64 `json:"salary_expectation,omitempty"`
}

// JobRequirement is the job view the engine scores against
type JobRequirement struct {
	Description     string          `json:"description,omitempty"`
	Requirements    string          `json:"requirements,omitempty"`
	ExperienceLevel ExperienceLevel `json:"experience_level,omitempty"`
	Location        string          `json:"location,omitempty"`
	RemoteWork      bool            `json:"remote_work"`
	SalaryMin       *float64        `json:"salary_min,omitempty"`
	SalaryMax       *float64        `json:"salary_max,omitempty"`
}

// ScoreBreakdown holds the four component scores and their weighted aggregate
type ScoreBreakdown struct {
	SkillsMatch     float64 `json:"skills_match"`
	ExperienceMatch float64 `json:"experience_match"`
	LocationMatch   float64 `json:"location_match"`
	SalaryMatch     float64 `json:"salary_match"`
	OverallScore    float64 `json:"overall_score"`
}

// ScoreWeights weighs the compatibility components
type ScoreWeights struct {
	Skills     float64 `json:"skills" mapstructure:"skills"`
	Experience float64 `json:"experience" mapstructure:"experience"`
	Location   float64 `json:"location" mapstructure:"location"`
	Salary     float64 `json:"salary" mapstructure:"salary"`
}

// DefaultScoreWeights are the business weights of the compatibility score
var DefaultScoreWeights = ScoreWeights{Skills: 0.40, Experience: 0.30, Location: 0.15, Salary: 0.15}

// SimilarityWeights weighs the duplicate indicators
type SimilarityWeights struct {
	Email    float64 `json:"email" mapstructure:"email"`
	Name     float64 `json:"name" mapstructure:"name"`
	LinkedIn float64 `json:"linkedin" mapstructure:"linkedin"`
	Phone    float64 `json:"phone" mapstructure:"phone"`
}

// DefaultSimilarityWeights and DefaultDuplicateThreshold are tunable business
// constants.
var DefaultSimilarityWeights = SimilarityWeights{Email: 0.4, Name: 0.2, LinkedIn: 0.3, Phone: 0.1}

const DefaultDuplicateThreshold = 0.8

// DefaultRecommendationLimit applies when a caller passes limit <= 0
const DefaultRecommendationLimit = 10

// Engine scores candidates against jobs and detects duplicates
type Engine struct {
	extractor  *Extractor
	weights    ScoreWeights
	similarity SimilarityWeights
	threshold  float64
	bands      map[ExperienceLevel]Band
}

type Option func(*Engine)

// WithVocabulary replaces the embedded word list
func WithVocabulary(v *Vocabulary) Option {
	return func(e *Engine) {
		if v != nil {
			e.extractor = NewExtractor(v)
		}
	}
}

// WithScoreWeights overrides the compatibility weights
func WithScoreWeights(w ScoreWeights) Option {
	return func(e *Engine) { e.weights = w }
}

// WithSimilarityWeights overrides the duplicate indicator weights
func WithSimilarityWeights(w SimilarityWeights) Option {
	return func(e *Engine) { e.similarity = w }
}

// WithDuplicateThreshold sets the threshold used when callers pass <= 0
func WithDuplicateThreshold(t float64) Option {
	return func(e *Engine) {
		if t > 0 {
			e.threshold = t
		}
	}
}

// NewEngine builds an engine with the default vocabulary and weights
func NewEngine(opts ...Option) *Engine {
	bands := make(map[ExperienceLevel]Band, len(DefaultBands))
	for k, v := range DefaultBands {
		bands[k] = v
	}
	e := &Engine{
		weights:    DefaultScoreWeights,
		similarity: DefaultSimilarityWeights,
		threshold:  DefaultDuplicateThreshold,
		bands:      bands,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.extractor == nil {
		e.extractor = NewExtractor(nil)
	}
	return e
}

// Extractor exposes the feature extractor the engine uses
func (e *Engine) Extractor() *Extractor { return e.extractor }

// DuplicateThreshold is the threshold applied when none is requested
func (e *Engine) DuplicateThreshold() float64 { return e.threshold }

// AnalyzeResumeText delegates to the extractor
func (e *Engine) AnalyzeResumeText(text string) ResumeAnalysis {
	return e.extractor.AnalyzeResumeText(text)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
