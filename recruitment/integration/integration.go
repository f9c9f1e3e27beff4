// Package integration imports candidates pushed by external ATS and CRM
// systems, whose payloads name the same fields differently.
package integration

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/Abraxas-365/hiresight/internal/ai/scoring"
	"github.com/Abraxas-365/hiresight/recruitment/candidate"
	"github.com/mitchellh/mapstructure"
)

const DefaultSource = "external"

// UnifiedCandidate is an external candidate record in our field names
type UnifiedCandidate struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email,omitempty"`
	Phone           string `json:"phone,omitempty"`
	LinkedInURL     string `json:"linkedin_url,omitempty"`
	ResumeText      string `json:"resume_text,omitempty"`
	Skills          string `json:"skills,omitempty"`
	ExperienceYears *int   `json:"experience_years,omitempty"`
	Location        string `json:"location,omitempty"`
	CurrentCompany  string `json:"current_company,omitempty"`
	CurrentPosition string `json:"current_position,omitempty"`
	Source          string `json:"source"`
	SourceID        string `json:"source_id,omitempty"`
}

// rawCandidate lists every key name we accept. The first of each pair wins
// when both are present.
type rawCandidate struct {
	FirstName         string `mapstructure:"firstName"`
	GivenName         string `mapstructure:"givenName"`
	LastName          string `mapstructure:"lastName"`
	FamilyName        string `mapstructure:"familyName"`
	Email             string `mapstructure:"email"`
	EmailAddress      string `mapstructure:"emailAddress"`
	Phone             string `mapstructure:"phone"`
	PhoneNumber       string `mapstructure:"phoneNumber"`
	LinkedInURL       string `mapstructure:"linkedinUrl"`
	LinkedInProfile   string `mapstructure:"linkedinProfile"`
	ResumeText        string `mapstructure:"resumeText"`
	CVContent         string `mapstructure:"cvContent"`
	Skills            string `mapstructure:"skills"`
	SkillSet          string `mapstructure:"skillSet"`
	ExperienceYears   int    `mapstructure:"experienceYears"`
	YearsOfExperience int    `mapstructure:"yearsOfExperience"`
	Location          string `mapstructure:"location"`
	Address           string `mapstructure:"address"`
	CurrentCompany    string `mapstructure:"currentCompany"`
	Employer          string `mapstructure:"employer"`
	CurrentPosition   string `mapstructure:"currentPosition"`
	JobTitle          string `mapstructure:"jobTitle"`
	Source            string `mapstructure:"source"`
	ID                string `mapstructure:"id"`
	CandidateID       string `mapstructure:"candidateId"`
}

// Unify maps an external payload onto UnifiedCandidate. Values are decoded
// weakly, so numbers may arrive as strings and skills as a list. fallback
// is used as the source when the payload names none.
func Unify(raw map[string]any, fallbackSource string) (UnifiedCandidate, error) {
	var r rawCandidate
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       joinList,
		WeaklyTypedInput: true,
		Result:           &r,
	})
	if err != nil {
		return UnifiedCandidate{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return UnifiedCandidate{}, ErrInvalidPayload().WithCause(err)
	}

	u := UnifiedCandidate{
		FirstName:       first(r.FirstName, r.GivenName),
		LastName:        first(r.LastName, r.FamilyName),
		Email:           first(r.Email, r.EmailAddress),
		Phone:           first(r.Phone, r.PhoneNumber),
		LinkedInURL:     first(r.LinkedInURL, r.LinkedInProfile),
		ResumeText:      first(r.ResumeText, r.CVContent),
		Skills:          first(r.Skills, r.SkillSet),
		Location:        first(r.Location, r.Address),
		CurrentCompany:  first(r.CurrentCompany, r.Employer),
		CurrentPosition: first(r.CurrentPosition, r.JobTitle),
		Source:          first(r.Source, fallbackSource, DefaultSource),
		SourceID:        first(r.ID, r.CandidateID),
	}
	years := r.ExperienceYears
	if years == 0 {
		years = r.YearsOfExperience
	}
	if years > 0 {
		u.ExperienceYears = &years
	}
	return u, nil
}

// Profile is the view the scoring engine works on
func (u UnifiedCandidate) Profile() scoring.CandidateProfile {
	return scoring.CandidateProfile{
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Email:           u.Email,
		Phone:           u.Phone,
		LinkedInURL:     u.LinkedInURL,
		ResumeText:      u.ResumeText,
		Skills:          u.Skills,
		ExperienceYears: u.ExperienceYears,
		Location:        u.Location,
	}
}

// CreateRequest builds the candidate to store, taking skills and
// experience from the enriched profile
func (u UnifiedCandidate) CreateRequest(enriched scoring.EnrichedCandidate) candidate.CreateCandidateRequest {
	return candidate.CreateCandidateRequest{
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Email:           u.Email,
		Phone:           u.Phone,
		LinkedInURL:     u.LinkedInURL,
		ResumeText:      u.ResumeText,
		Skills:          enriched.Skills,
		ExperienceYears: enriched.ExperienceYears,
		CurrentPosition: u.CurrentPosition,
		CurrentCompany:  u.CurrentCompany,
		Location:        u.Location,
		Source:          u.Source,
	}
}

// joinList lets list-valued fields such as skillSet decode into strings
func joinList(from, to reflect.Kind, data any) (any, error) {
	if to != reflect.String || (from != reflect.Slice && from != reflect.Array) {
		return data, nil
	}
	v := reflect.ValueOf(data)
	parts := make([]string, 0, v.Len())
	for i := range v.Len() {
		if s := strings.TrimSpace(fmt.Sprint(v.Index(i).Interface())); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", "), nil
}

func first(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
