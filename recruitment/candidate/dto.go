package candidate

import (
	"github.com/Abraxas-365/hiresight/pkg/kernel"
)

// CreateCandidateRequest - DTO for creating a new candidate
type CreateCandidateRequest struct {
	FirstName         string   `json:"first_name" validate:"required,max=100"`
	LastName          string   `json:"last_name" validate:"required,max=100"`
	Email             string   `json:"email,omitempty" validate:"omitempty,email,max=120"`
	Phone             string   `json:"phone,omitempty" validate:"max=20"`
	LinkedInURL       string   `json:"linkedin_url,omitempty" validate:"omitempty,url,max=500"`
	ResumeText        string   `json:"resume_text,omitempty"`
	Skills            string   `json:"skills,omitempty"`
	ExperienceYears   *int     `json:"experience_years,omitempty" validate:"omitempty,min=0,max=80"`
	CurrentPosition   string   `json:"current_position,omitempty" validate:"max=200"`
	CurrentCompany    string   `json:"current_company,omitempty" validate:"max=200"`
	Location          string   `json:"location,omitempty" validate:"max=200"`
	SalaryExpectation *float64 `json:"salary_expectation,omitempty" validate:"omitempty,min=0"`
	Availability      string   `json:"availability,omitempty" validate:"max=50"`
	Source            string   `json:"source,omitempty" validate:"max=100"`
	Status            string   `json:"status,omitempty" validate:"omitempty,oneof=new contacted interviewed hired rejected"`
}

// UpdateCandidateRequest - partial update, nil fields are left untouched
type UpdateCandidateRequest struct {
	FirstName         *string  `json:"first_name,omitempty" validate:"omitempty,min=1,max=100"`
	LastName          *string  `json:"last_name,omitempty" validate:"omitempty,min=1,max=100"`
	Email             *string  `json:"email,omitempty" validate:"omitempty,email,max=120"`
	Phone             *string  `json:"phone,omitempty" validate:"omitempty,max=20"`
	LinkedInURL       *string  `json:"linkedin_url,omitempty" validate:"omitempty,max=500"`
	ResumeText        *string  `json:"resume_text,omitempty"`
	Skills            *string  `json:"skills,omitempty"`
	ExperienceYears   *int     `json:"experience_years,omitempty" validate:"omitempty,min=0,max=80"`
	CurrentPosition   *string  `json:"current_position,omitempty" validate:"omitempty,max=200"`
	CurrentCompany    *string  `json:"current_company,omitempty" validate:"omitempty,max=200"`
	Location          *string  `json:"location,omitempty" validate:"omitempty,max=200"`
	SalaryExpectation *float64 `json:"salary_expectation,omitempty" validate:"omitempty,min=0"`
	Availability      *string  `json:"availability,omitempty" validate:"omitempty,max=50"`
	Status            *string  `json:"status,omitempty" validate:"omitempty,oneof=new contacted interviewed hired rejected"`
}

// SearchCandidatesRequest - DTO for searching candidates. Query matches
// name, email, position and company.
type SearchCandidatesRequest struct {
	Query      string                   `json:"query,omitempty" query:"search"`
	Status     CandidateStatus          `json:"status,omitempty" query:"status"`
	TagID      kernel.TagID             `json:"tag_id,omitempty" query:"tag_id"`
	Pagination kernel.PaginationOptions `json:"pagination"`
}

// Response type alias for paginated candidates
type PaginatedCandidatesResponse = kernel.Paginated[Candidate]

type AddTagRequest struct {
	TagID kernel.TagID `json:"tag_id" validate:"required"`
}

// ExportCandidatesRequest - Request for exporting candidates
type ExportCandidatesRequest struct {
	CandidateIDs []kernel.CandidateID `json:"candidate_ids,omitempty"` // Specific candidates, or empty for all
	Format       string               `json:"format" validate:"required,oneof=csv json excel xlsx"`
	Status       CandidateStatus      `json:"status,omitempty"`
}

// ExportFile is a rendered export ready to be sent as an attachment
type ExportFile struct {
	FileName    string
	ContentType string
	Data        []byte
	Count       int
}

// ResumeUpload is a resume file received from a client
type ResumeUpload struct {
	FileName string
	Data     []byte
}
