package job

import (
	"time"

	"github.com/Abraxas-365/hiresight/pkg/kernel"
)

// CreateJobRequest - DTO for creating a new job posting
type CreateJobRequest struct {
	Title            string     `json:"title" validate:"required,max=200"`
	Description      string     `json:"description" validate:"required"`
	Requirements     string     `json:"requirements,omitempty"`
	Responsibilities string     `json:"responsibilities,omitempty"`
	Department       string     `json:"department,omitempty" validate:"max=100"`
	Location         string     `json:"location,omitempty" validate:"max=200"`
	EmploymentType   string     `json:"employment_type,omitempty" validate:"omitempty,oneof=full-time part-time contract internship"`
	ExperienceLevel  string     `json:"experience_level,omitempty" validate:"omitempty,oneof=entry mid senior executive"`
	SalaryMin        *float64   `json:"salary_min,omitempty" validate:"omitempty,min=0"`
	SalaryMax        *float64   `json:"salary_max,omitempty" validate:"omitempty,min=0"`
	Currency         string     `json:"currency,omitempty" validate:"omitempty,len=3,alpha"`
	RemoteWork       bool       `json:"remote_work"`
	Status           string     `json:"status,omitempty" validate:"omitempty,oneof=draft active paused closed"`
	Priority         string     `json:"priority,omitempty" validate:"omitempty,oneof=low medium high urgent"`
	Deadline         *time.Time `json:"deadline,omitempty"`
	ExternalJobID    string     `json:"external_job_id,omitempty" validate:"max=100"`
}

// UpdateJobRequest - partial update, nil fields are left untouched. Status
// changes go through ChangeStatusRequest.
type UpdateJobRequest struct {
	Title            *string    `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description      *string    `json:"description,omitempty" validate:"omitempty,min=1"`
	Requirements     *string    `json:"requirements,omitempty"`
	Responsibilities *string    `json:"responsibilities,omitempty"`
	Department       *string    `json:"department,omitempty" validate:"omitempty,max=100"`
	Location         *string    `json:"location,omitempty" validate:"omitempty,max=200"`
	EmploymentType   *string    `json:"employment_type,omitempty" validate:"omitempty,oneof=full-time part-time contract internship"`
	ExperienceLevel  *string    `json:"experience_level,omitempty" validate:"omitempty,oneof=entry mid senior executive"`
	SalaryMin        *float64   `json:"salary_min,omitempty" validate:"omitempty,min=0"`
	SalaryMax        *float64   `json:"salary_max,omitempty" validate:"omitempty,min=0"`
	Currency         *string    `json:"currency,omitempty" validate:"omitempty,len=3,alpha"`
	RemoteWork       *bool      `json:"remote_work,omitempty"`
	Priority         *string    `json:"priority,omitempty" validate:"omitempty,oneof=low medium high urgent"`
	Deadline         *time.Time `json:"deadline,omitempty"`
	ExternalJobID    *string    `json:"external_job_id,omitempty" validate:"omitempty,max=100"`
}

type ChangeStatusRequest struct {
	Status JobStatus `json:"status" validate:"required,oneof=draft active paused closed"`
}

// ListJobsRequest - filters for listing job postings. Query matches title,
// description and department.
type ListJobsRequest struct {
	Query           string                   `json:"query,omitempty"`
	Status          JobStatus                `json:"status,omitempty"`
	Department      string                   `json:"department,omitempty"`
	ExperienceLevel ExperienceLevel          `json:"experience_level,omitempty"`
	RemoteWork      *bool                    `json:"remote_work,omitempty"`
	Pagination      kernel.PaginationOptions `json:"pagination"`
}

// Response type alias for paginated jobs
type PaginatedJobsResponse = kernel.Paginated[Job]
