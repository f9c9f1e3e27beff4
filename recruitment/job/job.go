package job

import (
	"strings"
	"time"

	"github.com/Abraxas-365/hiresight/internal/ai/scoring"
	"github.com/Abraxas-365/hiresight/pkg/kernel"
)

// JobStatus represents the lifecycle state of a job posting
type JobStatus string

const (
	JobStatusDraft  JobStatus = "draft"  // Created but not published
	JobStatusActive JobStatus = "active" // Open and used for recommendations
	JobStatusPaused JobStatus = "paused" // Temporarily on hold
	JobStatusClosed JobStatus = "closed" // Filled or cancelled
)

func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusDraft, JobStatusActive, JobStatusPaused, JobStatusClosed:
		return true
	}
	return false
}

type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "full-time"
	EmploymentPartTime   EmploymentType = "part-time"
	EmploymentContract   EmploymentType = "contract"
	EmploymentInternship EmploymentType = "internship"
)

type ExperienceLevel string

const (
	LevelEntry     ExperienceLevel = "entry"
	LevelMid       ExperienceLevel = "mid"
	LevelSenior    ExperienceLevel = "senior"
	LevelExecutive ExperienceLevel = "executive"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

const DefaultCurrency = "USD"

type Job struct {
	ID               kernel.JobID    `db:"id" json:"id"`
	TenantID         kernel.TenantID `db:"tenant_id" json:"tenant_id"`
	Title            string          `db:"title" json:"title"`
	Description      string          `db:"description" json:"description"`
	Requirements     string          `db:"requirements" json:"requirements"`
	Responsibilities string          `db:"responsibilities" json:"responsibilities"`
	Department       string          `db:"department" json:"department"`
	Location         string          `db:"location" json:"location"`
	EmploymentType   EmploymentType  `db:"employment_type" json:"employment_type"`
	ExperienceLevel  ExperienceLevel `db:"experience_level" json:"experience_level"`
	SalaryMin        *float64        `db:"salary_min" json:"salary_min"`
	SalaryMax        *float64        `db:"salary_max" json:"salary_max"`
	Currency         string          `db:"currency" json:"currency"`
	RemoteWork       bool            `db:"remote_work" json:"remote_work"`
	Status           JobStatus       `db:"status" json:"status"`
	Priority         Priority        `db:"priority" json:"priority"`
	Deadline         *time.Time      `db:"deadline" json:"deadline,omitempty"`
	ExternalJobID    string          `db:"external_job_id" json:"external_job_id,omitempty"`
	CreatedBy        kernel.UserID   `db:"created_by" json:"created_by"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

func (j *Job) IsActive() bool {
	return j.Status == JobStatusActive
}

func (j *Job) IsClosed() bool {
	return j.Status == JobStatusClosed
}

// CheckSalaryRange fails when min exceeds max or either bound is negative
func (j *Job) CheckSalaryRange() error {
	if (j.SalaryMin != nil && *j.SalaryMin < 0) || (j.SalaryMax != nil && *j.SalaryMax < 0) {
		return ErrInvalidSalaryRange().WithDetail("reason", "salary cannot be negative")
	}
	if j.SalaryMin != nil && j.SalaryMax != nil && *j.SalaryMin > *j.SalaryMax {
		return ErrInvalidSalaryRange().
			WithDetail("salary_min", *j.SalaryMin).
			WithDetail("salary_max", *j.SalaryMax)
	}
	return nil
}

// Activate publishes a draft or resumes a paused job
func (j *Job) Activate() error {
	if j.Status != JobStatusDraft && j.Status != JobStatusPaused {
		return j.transitionError(JobStatusActive)
	}
	j.setStatus(JobStatusActive)
	return nil
}

// Pause puts an active job on hold
func (j *Job) Pause() error {
	if j.Status != JobStatusActive {
		return j.transitionError(JobStatusPaused)
	}
	j.setStatus(JobStatusPaused)
	return nil
}

// Close ends the posting. Closed is terminal.
func (j *Job) Close() error {
	if j.IsClosed() {
		return j.transitionError(JobStatusClosed)
	}
	j.setStatus(JobStatusClosed)
	return nil
}

// ChangeStatus applies the transition leading to target
func (j *Job) ChangeStatus(target JobStatus) error {
	switch target {
	case JobStatusActive:
		return j.Activate()
	case JobStatusPaused:
		return j.Pause()
	case JobStatusClosed:
		return j.Close()
	case JobStatusDraft:
		return j.transitionError(target)
	}
	return ErrInvalidStatus().WithDetail("status", target)
}

func (j *Job) setStatus(s JobStatus) {
	j.Status = s
	j.UpdatedAt = time.Now()
}

func (j *Job) transitionError(target JobStatus) error {
	return ErrInvalidTransition().
		WithDetail("current_status", j.Status).
		WithDetail("target_status", target)
}

// Requirement is the view used to score candidates against this job
func (j *Job) Requirement() scoring.JobRequirement {
	return scoring.JobRequirement{
		Description:     j.Description,
		Requirements:    j.Requirements,
		ExperienceLevel: scoring.ExperienceLevel(j.ExperienceLevel),
		Location:        j.Location,
		RemoteWork:      j.RemoteWork,
		SalaryMin:       j.SalaryMin,
		SalaryMax:       j.SalaryMax,
	}
}

// NormalizeCurrency upper-cases the ISO code, defaulting to USD
func NormalizeCurrency(c string) string {
	c = strings.ToUpper(strings.TrimSpace(c))
	if c == "" {
		return DefaultCurrency
	}
	return c
}
