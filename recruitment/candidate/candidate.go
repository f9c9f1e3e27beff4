package candidate

import (
	"strings"
	"time"

	"github.com/Abraxas-365/hiresight/internal/ai/scoring"
	"github.com/Abraxas-365/hiresight/pkg/kernel"
	"github.com/Abraxas-365/hiresight/recruitment/tag"
)

// CandidateStatus tracks where a candidate is in the hiring pipeline
type CandidateStatus string

const (
	CandidateStatusNew         CandidateStatus = "new"
	CandidateStatusContacted   CandidateStatus = "contacted"
	CandidateStatusInterviewed CandidateStatus = "interviewed"
	CandidateStatusHired       CandidateStatus = "hired"
	CandidateStatusRejected    CandidateStatus = "rejected"
)

func (s CandidateStatus) IsValid() bool {
	switch s {
	case CandidateStatusNew, CandidateStatusContacted, CandidateStatusInterviewed,
		CandidateStatusHired, CandidateStatusRejected:
		return true
	}
	return false
}

const (
	SourceManual    = "manual"
	SourceUpload    = "upload"
	SourceExtension = "extension"
)

type Candidate struct {
	ID                kernel.CandidateID `db:"id" json:"id"`
	TenantID          kernel.TenantID    `db:"tenant_id" json:"tenant_id"`
	FirstName         kernel.FirstName   `db:"first_name" json:"first_name"`
	LastName          kernel.LastName    `db:"last_name" json:"last_name"`
	Email             kernel.Email       `db:"email" json:"email,omitempty"`
	Phone             kernel.Phone       `db:"phone" json:"phone,omitempty"`
	LinkedInURL       string             `db:"linkedin_url" json:"linkedin_url,omitempty"`
	ResumeText        string             `db:"resume_text" json:"resume_text,omitempty"`
	ResumeFileURL     string             `db:"resume_file_url" json:"resume_file_url,omitempty"`
	Skills            string             `db:"skills" json:"skills,omitempty"`
	ExperienceYears   *int               `db:"experience_years" json:"experience_years"`
	CurrentPosition   string             `db:"current_position" json:"current_position,omitempty"`
	CurrentCompany    string             `db:"current_company" json:"current_company,omitempty"`
	Location          string             `db:"location" json:"location,omitempty"`
	SalaryExpectation *float64           `db:"salary_expectation" json:"salary_expectation"`
	Availability      string             `db:"availability" json:"availability,omitempty"`
	Source            string             `db:"source" json:"source"`
	Status            CandidateStatus    `db:"status" json:"status"`
	Tags              []tag.Tag          `db:"-" json:"tags"`
	CreatedAt         time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time          `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

func (c *Candidate) FullName() string {
	return kernel.FullName(c.FirstName, c.LastName)
}

// HasResume reports whether there is resume text to analyse
func (c *Candidate) HasResume() bool {
	return strings.TrimSpace(c.ResumeText) != ""
}

// ChangeStatus moves the candidate through the pipeline
func (c *Candidate) ChangeStatus(status CandidateStatus) error {
	if !status.IsValid() {
		return ErrInvalidStatus().WithDetail("status", status)
	}
	c.Status = status
	c.UpdatedAt = time.Now()
	return nil
}

// AttachResume records a stored resume file and its extracted text
func (c *Candidate) AttachResume(fileURL, text string) {
	c.ResumeFileURL = fileURL
	c.ResumeText = text
	c.UpdatedAt = time.Now()
}

// Profile is the view of the candidate the scoring engine works on
func (c *Candidate) Profile() scoring.CandidateProfile {
	return scoring.CandidateProfile{
		ID:                c.ID.String(),
		FirstName:         c.FirstName.String(),
		LastName:          c.LastName.String(),
		Email:             c.Email.String(),
		Phone:             c.Phone.String(),
		LinkedInURL:       c.LinkedInURL,
		ResumeText:        c.ResumeText,
		Skills:            c.Skills,
		ExperienceYears:   c.ExperienceYears,
		Location:          c.Location,
		SalaryExpectation: c.SalaryExpectation,
	}
}

// ApplyEnrichment copies gap-filled skills and experience from an enriched
// profile. Declared values are kept. It reports whether anything changed.
func (c *Candidate) ApplyEnrichment(e scoring.EnrichedCandidate) bool {
	changed := false
	if strings.TrimSpace(c.Skills) == "" && e.Skills != "" {
		c.Skills = e.Skills
		changed = true
	}
	if (c.ExperienceYears == nil || *c.ExperienceYears == 0) && e.ExperienceYears != nil && *e.ExperienceYears > 0 {
		years := *e.ExperienceYears
		c.ExperienceYears = &years
		changed = true
	}
	if changed {
		c.UpdatedAt = time.Now()
	}
	return changed
}

// Profiles converts candidates for the scoring engine, keeping order
func Profiles(candidates []Candidate) []scoring.CandidateProfile {
	out := make([]scoring.CandidateProfile, 0, len(candidates))
	for i := range candidates {
		out = append(out, candidates[i].Profile())
	}
	return out
}
