package jobsrv

import (
	"context"
	"strings"
	"time"

	"github.com/Abraxas-365/hiresight/pkg/audit"
	"github.com/Abraxas-365/hiresight/pkg/errx"
	"github.com/Abraxas-365/hiresight/pkg/iam/auth"
	"github.com/Abraxas-365/hiresight/pkg/iam/user"
	"github.com/Abraxas-365/hiresight/pkg/kernel"
	"github.com/Abraxas-365/hiresight/recruitment/job"
	"github.com/google/uuid"
)

// JobService provides business operations for job postings
type JobService struct {
	jobRepo  job.Repository
	userRepo user.UserRepository
	audit    audit.Recorder
}

// NewJobService creates a new instance of the job service
func NewJobService(
	jobRepo job.Repository,
	userRepo user.UserRepository,
	recorder audit.Recorder,
) *JobService {
	if recorder == nil {
		recorder = audit.NopRecorder{}
	}
	return &JobService{
		jobRepo:  jobRepo,
		userRepo: userRepo,
		audit:    recorder,
	}
}

// CreateJob creates a new job posting
func (s *JobService) CreateJob(ctx context.Context, req job.CreateJobRequest, creatorID kernel.UserID, tenantID kernel.TenantID) (*job.Job, error) {
	if err := s.authorize(ctx, creatorID, tenantID, auth.ScopeJobsWrite); err != nil {
		return nil, err
	}

	status := job.JobStatusDraft
	if req.Status != "" {
		status = job.JobStatus(req.Status)
	}
	if !status.IsValid() {
		return nil, job.ErrInvalidStatus().WithDetail("status", req.Status)
	}
	priority := job.PriorityMedium
	if req.Priority != "" {
		priority = job.Priority(req.Priority)
	}
	employment := job.EmploymentFullTime
	if req.EmploymentType != "" {
		employment = job.EmploymentType(req.EmploymentType)
	}

	now := time.Now()
	newJob := &job.Job{
		ID:               kernel.NewJobID(uuid.NewString()),
		TenantID:         tenantID,
		Title:            strings.TrimSpace(req.Title),
		Description:      req.Description,
		Requirements:     req.Requirements,
		Responsibilities: req.Responsibilities,
		Department:       strings.TrimSpace(req.Department),
		Location:         strings.TrimSpace(req.Location),
		EmploymentType:   employment,
		ExperienceLevel:  job.ExperienceLevel(req.ExperienceLevel),
		SalaryMin:        req.SalaryMin,
		SalaryMax:        req.SalaryMax,
		Currency:         job.NormalizeCurrency(req.Currency),
		RemoteWork:       req.RemoteWork,
		Status:           status,
		Priority:         priority,
		Deadline:         req.Deadline,
		ExternalJobID:    strings.TrimSpace(req.ExternalJobID),
		CreatedBy:        creatorID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if newJob.Title == "" {
		return nil, job.ErrInvalidRequest().WithDetail("title", "required")
	}
	if err := newJob.CheckSalaryRange(); err != nil {
		return nil, err
	}

	if err := s.jobRepo.Create(ctx, newJob); err != nil {
		return nil, errx.Wrap(err, "failed to create job", errx.TypeInternal)
	}

	s.record(ctx, creatorID, audit.ActionJobCreated, newJob, audit.Details{"title": newJob.Title})
	return newJob, nil
}

// GetJob retrieves a job posting by ID
func (s *JobService) GetJob(ctx context.Context, jobID kernel.JobID, tenantID kernel.TenantID) (*job.Job, error) {
	return s.jobRepo.GetByID(ctx, jobID, tenantID)
}

// ListJobs lists the tenant's job postings with optional filters
func (s *JobService) ListJobs(ctx context.Context, tenantID kernel.TenantID, req job.ListJobsRequest) (*job.PaginatedJobsResponse, error) {
	if req.Status != "" && !req.Status.IsValid() {
		return nil, job.ErrInvalidStatus().WithDetail("status", req.Status)
	}
	req.Query = strings.TrimSpace(req.Query)
	req.Department = strings.TrimSpace(req.Department)
	req.Pagination = req.Pagination.Normalize()

	jobs, err := s.jobRepo.List(ctx, tenantID, req)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list jobs", errx.TypeInternal)
	}
	return jobs, nil
}

// UpdateJob applies a partial update. The salary range is checked after
// merging so that one bound can be changed on its own.
func (s *JobService) UpdateJob(ctx context.Context, jobID kernel.JobID, req job.UpdateJobRequest, updaterID kernel.UserID, tenantID kernel.TenantID) (*job.Job, error) {
	if err := s.authorize(ctx, updaterID, tenantID, auth.ScopeJobsWrite); err != nil {
		return nil, err
	}

	j, err := s.jobRepo.GetByID(ctx, jobID, tenantID)
	if err != nil {
		return nil, err
	}

	changed := []string{}
	setString := func(field string, dst *string, src *string) {
		if src != nil && *src != *dst {
			*dst = *src
			changed = append(changed, field)
		}
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, job.ErrInvalidRequest().WithDetail("title", "required")
		}
		setString("title", &j.Title, &title)
	}
	setString("description", &j.Description, req.Description)
	setString("requirements", &j.Requirements, req.Requirements)
	setString("responsibilities", &j.Responsibilities, req.Responsibilities)
	setString("department", &j.Department, req.Department)
	setString("location", &j.Location, req.Location)
	setString("external_job_id", &j.ExternalJobID, req.ExternalJobID)

	if req.EmploymentType != nil && job.EmploymentType(*req.EmploymentType) != j.EmploymentType {
		j.EmploymentType = job.EmploymentType(*req.EmploymentType)
		changed = append(changed, "employment_type")
	}
	if req.ExperienceLevel != nil && job.ExperienceLevel(*req.ExperienceLevel) != j.ExperienceLevel {
		j.ExperienceLevel = job.ExperienceLevel(*req.ExperienceLevel)
		changed = append(changed, "experience_level")
	}
	if req.Priority != nil && job.Priority(*req.Priority) != j.Priority {
		j.Priority = job.Priority(*req.Priority)
		changed = append(changed, "priority")
	}
	if req.Currency != nil {
		currency := job.NormalizeCurrency(*req.Currency)
		setString("currency", &j.Currency, &currency)
	}
	if req.SalaryMin != nil {
		v := *req.SalaryMin
		j.SalaryMin = &v
		changed = append(changed, "salary_min")
	}
	if req.SalaryMax != nil {
		v := *req.SalaryMax
		j.SalaryMax = &v
		changed = append(changed, "salary_max")
	}
	if req.RemoteWork != nil && *req.RemoteWork != j.RemoteWork {
		j.RemoteWork = *req.RemoteWork
		changed = append(changed, "remote_work")
	}
	if req.Deadline != nil {
		d := *req.Deadline
		j.Deadline = &d
		changed = append(changed, "deadline")
	}

	if err := j.CheckSalaryRange(); err != nil {
		return nil, err
	}
	if len(changed) == 0 {
		return j, nil
	}

	j.UpdatedAt = time.Now()
	if err := s.jobRepo.Update(ctx, j); err != nil {
		if errx.IsCode(err, job.CodeJobNotFound) {
			return nil, err
		}
		return nil, errx.Wrap(err, "failed to update job", errx.TypeInternal)
	}

	s.record(ctx, updaterID, audit.ActionJobUpdated, j, audit.Details{"fields": changed})
	return j, nil
}

// ChangeStatus moves the job through draft → active ⇄ paused → closed
func (s *JobService) ChangeStatus(ctx context.Context, jobID kernel.JobID, status job.JobStatus, actorID kernel.UserID, tenantID kernel.TenantID) (*job.Job, error) {
	if err := s.authorize(ctx, actorID, tenantID, auth.ScopeJobsWrite); err != nil {
		return nil, err
	}

	j, err := s.jobRepo.GetByID(ctx, jobID, tenantID)
	if err != nil {
		return nil, err
	}

	previous := j.Status
	if err := j.ChangeStatus(status); err != nil {
		return nil, err
	}

	if err := s.jobRepo.Update(ctx, j); err != nil {
		return nil, errx.Wrap(err, "failed to update job status", errx.TypeInternal)
	}

	s.record(ctx, actorID, audit.ActionJobUpdated, j, audit.Details{
		"fields": []string{"status"},
		"from":   previous,
		"to":     j.Status,
	})
	return j, nil
}

// DeleteJob deletes a job posting together with its matches
func (s *JobService) DeleteJob(ctx context.Context, jobID kernel.JobID, deleterID kernel.UserID, tenantID kernel.TenantID) error {
	if err := s.authorize(ctx, deleterID, tenantID, auth.ScopeJobsDelete); err != nil {
		return err
	}

	j, err := s.jobRepo.GetByID(ctx, jobID, tenantID)
	if err != nil {
		return err
	}

	if err := s.jobRepo.Delete(ctx, jobID, tenantID); err != nil {
		if errx.IsCode(err, job.CodeJobNotFound) {
			return err
		}
		return errx.Wrap(err, "failed to delete job", errx.TypeInternal)
	}

	s.record(ctx, deleterID, audit.ActionJobDeleted, j, audit.Details{"title": j.Title})
	return nil
}

// ============================================================================
// Helper Methods
// ============================================================================

// authorize admits active admins and managers holding scope
func (s *JobService) authorize(ctx context.Context, userID kernel.UserID, tenantID kernel.TenantID, scope string) error {
	u, err := s.userRepo.FindByID(ctx, userID, tenantID)
	if err != nil {
		return user.ErrUserNotFound().WithDetail("user_id", userID.String())
	}
	if !u.IsActive() {
		return user.ErrUserSuspended().WithDetail("user_id", userID.String())
	}
	if !u.CanManage() || !u.HasAnyScope(scope, auth.ScopeJobsAll, auth.ScopeAll) {
		return job.ErrInsufficientPermissions().
			WithDetail("required_scope", scope).
			WithDetail("role", u.Role)
	}
	return nil
}

func (s *JobService) record(ctx context.Context, userID kernel.UserID, action audit.Action, j *job.Job, details audit.Details) {
	s.audit.Record(ctx, audit.Event{
		TenantID:     j.TenantID,
		UserID:       userID,
		Action:       action,
		ResourceType: audit.ResourceJob,
		ResourceID:   j.ID.String(),
		Details:      details,
	})
}
