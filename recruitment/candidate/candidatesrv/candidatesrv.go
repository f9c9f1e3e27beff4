package candidatesrv

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Abraxas-365/hiresight/internal/ai/resumereader"
	"github.com/Abraxas-365/hiresight/internal/export"
	"github.com/Abraxas-365/hiresight/pkg/audit"
	"github.com/Abraxas-365/hiresight/pkg/errx"
	"github.com/Abraxas-365/hiresight/pkg/fsx"
	"github.com/Abraxas-365/hiresight/pkg/iam/auth"
	"github.com/Abraxas-365/hiresight/pkg/iam/user"
	"github.com/Abraxas-365/hiresight/pkg/kernel"
	"github.com/Abraxas-365/hiresight/pkg/logx"
	"github.com/Abraxas-365/hiresight/recruitment/candidate"
	"github.com/Abraxas-365/hiresight/recruitment/tag"
	"github.com/google/uuid"
)

// MaxResumeSize is the largest resume file accepted for upload
const MaxResumeSize = 10 << 20

// exportLimit caps the number of candidates in one export
const exportLimit = 5000

// CandidateService provides business operations for candidates
type CandidateService struct {
	candidateRepo candidate.Repository
	tagRepo       tag.Repository
	userRepo      user.UserRepository
	storage       fsx.FileSystem
	reader        candidate.ResumeReader
	queue         candidate.EnrichmentQueue
	audit         audit.Recorder
}

// NewCandidateService creates a new instance of the candidate service.
// queue and recorder may be nil.
func NewCandidateService(
	candidateRepo candidate.Repository,
	tagRepo tag.Repository,
	userRepo user.UserRepository,
	storage fsx.FileSystem,
	reader candidate.ResumeReader,
	queue candidate.EnrichmentQueue,
	recorder audit.Recorder,
) *CandidateService {
	if recorder == nil {
		recorder = audit.NopRecorder{}
	}
	return &CandidateService{
		candidateRepo: candidateRepo,
		tagRepo:       tagRepo,
		userRepo:      userRepo,
		storage:       storage,
		reader:        reader,
		queue:         queue,
		audit:         recorder,
	}
}

// CreateCandidate creates a new candidate and schedules enrichment when a
// resume text was supplied
func (s *CandidateService) CreateCandidate(ctx context.Context, req candidate.CreateCandidateRequest, creatorID kernel.UserID, tenantID kernel.TenantID) (*candidate.Candidate, error) {
	if _, err := s.actor(ctx, creatorID, tenantID, auth.ScopeCandidatesWrite, auth.ScopeCandidatesAll); err != nil {
		return nil, err
	}

	email := kernel.NewEmail(req.Email)
	if err := s.ensureEmailFree(ctx, email, "", tenantID); err != nil {
		return nil, err
	}

	status := candidate.CandidateStatusNew
	if req.Status != "" {
		status = candidate.CandidateStatus(req.Status)
	}
	source := strings.TrimSpace(req.Source)
	if source == "" {
		source = candidate.SourceManual
	}

	now := time.Now()
	newCandidate := &candidate.Candidate{
		ID:                kernel.NewCandidateID(uuid.NewString()),
		TenantID:          tenantID,
		FirstName:         kernel.FirstName(strings.TrimSpace(req.FirstName)),
		LastName:          kernel.LastName(strings.TrimSpace(req.LastName)),
		Email:             email,
		Phone:             kernel.Phone(strings.TrimSpace(req.Phone)),
		LinkedInURL:       strings.TrimSpace(req.LinkedInURL),
		ResumeText:        req.ResumeText,
		Skills:            strings.TrimSpace(req.Skills),
		ExperienceYears:   req.ExperienceYears,
		CurrentPosition:   strings.TrimSpace(req.CurrentPosition),
		CurrentCompany:    strings.TrimSpace(req.CurrentCompany),
		Location:          strings.TrimSpace(req.Location),
		SalaryExpectation: req.SalaryExpectation,
		Availability:      strings.TrimSpace(req.Availability),
		Source:            source,
		Status:            status,
		Tags:              []tag.Tag{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if !status.IsValid() {
		return nil, candidate.ErrInvalidStatus().WithDetail("status", req.Status)
	}

	if err := s.candidateRepo.Create(ctx, newCandidate); err != nil {
		if errx.IsCode(err, candidate.CodeEmailAlreadyExists) {
			return nil, err
		}
		return nil, errx.Wrap(err, "failed to create candidate", errx.TypeInternal)
	}

	s.audit.Record(ctx, audit.Event{
		TenantID:     tenantID,
		UserID:       creatorID,
		Action:       audit.ActionCandidateCreated,
		ResourceType: audit.ResourceCandidate,
		ResourceID:   newCandidate.ID.String(),
		Details:      audit.Details{"name": newCandidate.FullName(), "source": newCandidate.Source},
	})

	if newCandidate.HasResume() {
		s.enqueue(ctx, tenantID, newCandidate.ID)
	}
	return newCandidate, nil
}

// GetCandidate retrieves a candidate by ID
func (s *CandidateService) GetCandidate(ctx context.Context, candidateID kernel.CandidateID, tenantID kernel.TenantID) (*candidate.Candidate, error) {
	return s.candidateRepo.GetByID(ctx, candidateID, tenantID)
}

// SearchCandidates searches candidates by various criteria
func (s *CandidateService) SearchCandidates(ctx context.Context, tenantID kernel.TenantID, req candidate.SearchCandidatesRequest) (*candidate.PaginatedCandidatesResponse, error) {
	if req.Status != "" && !req.Status.IsValid() {
		return nil, candidate.ErrInvalidStatus().WithDetail("status", req.Status)
	}
	req.Query = strings.TrimSpace(req.Query)
	req.Pagination = req.Pagination.Normalize()

	page, err := s.candidateRepo.Search(ctx, tenantID, req)
	if err != nil {
		return nil, errx.Wrap(err, "failed to search candidates", errx.TypeInternal)
	}
	return page, nil
}

// UpdateCandidate applies a partial update. A changed resume text schedules
// a new enrichment.
func (s *CandidateService) UpdateCandidate(ctx context.Context, candidateID kernel.CandidateID, req candidate.UpdateCandidateRequest, updaterID kernel.UserID, tenantID kernel.TenantID) (*candidate.Candidate, error) {
	if _, err := s.actor(ctx, updaterID, tenantID, auth.ScopeCandidatesWrite, auth.ScopeCandidatesAll); err != nil {
		return nil, err
	}

	c, err := s.candidateRepo.GetByID(ctx, candidateID, tenantID)
	if err != nil {
		return nil, err
	}

	changed := []string{}
	resumeChanged := false

	setString := func(field string, dst *string, src *string) {
		if src == nil {
			return
		}
		v := strings.TrimSpace(*src)
		if v != *dst {
			*dst = v
			changed = append(changed, field)
		}
	}

	if req.FirstName != nil && strings.TrimSpace(*req.FirstName) != c.FirstName.String() {
		c.FirstName = kernel.FirstName(strings.TrimSpace(*req.FirstName))
		changed = append(changed, "first_name")
	}
	if req.LastName != nil && strings.TrimSpace(*req.LastName) != c.LastName.String() {
		c.LastName = kernel.LastName(strings.TrimSpace(*req.LastName))
		changed = append(changed, "last_name")
	}
	if req.Email != nil {
		email := kernel.NewEmail(*req.Email)
		if email != c.Email {
			if err := s.ensureEmailFree(ctx, email, c.ID, tenantID); err != nil {
				return nil, err
			}
			c.Email = email
			changed = append(changed, "email")
		}
	}
	if req.Phone != nil && strings.TrimSpace(*req.Phone) != c.Phone.String() {
		c.Phone = kernel.Phone(strings.TrimSpace(*req.Phone))
		changed = append(changed, "phone")
	}
	setString("linkedin_url", &c.LinkedInURL, req.LinkedInURL)
	setString("skills", &c.Skills, req.Skills)
	setString("current_position", &c.CurrentPosition, req.CurrentPosition)
	setString("current_company", &c.CurrentCompany, req.CurrentCompany)
	setString("location", &c.Location, req.Location)
	setString("availability", &c.Availability, req.Availability)

	if req.ResumeText != nil && *req.ResumeText != c.ResumeText {
		c.ResumeText = *req.ResumeText
		changed = append(changed, "resume_text")
		resumeChanged = true
	}
	if req.ExperienceYears != nil {
		years := *req.ExperienceYears
		c.ExperienceYears = &years
		changed = append(changed, "experience_years")
	}
	if req.SalaryExpectation != nil {
		salary := *req.SalaryExpectation
		c.SalaryExpectation = &salary
		changed = append(changed, "salary_expectation")
	}
	if req.Status != nil && candidate.CandidateStatus(*req.Status) != c.Status {
		if err := c.ChangeStatus(candidate.CandidateStatus(*req.Status)); err != nil {
			return nil, err
		}
		changed = append(changed, "status")
	}

	if len(changed) == 0 {
		return c, nil
	}

	c.UpdatedAt = time.Now()
	if err := s.candidateRepo.Update(ctx, c); err != nil {
		if errx.IsCode(err, candidate.CodeEmailAlreadyExists) {
			return nil, err
		}
		return nil, errx.Wrap(err, "failed to update candidate", errx.TypeInternal)
	}

	s.audit.Record(ctx, audit.Event{
		TenantID:     tenantID,
		UserID:       updaterID,
		Action:       audit.ActionCandidateUpdated,
		ResourceType: audit.ResourceCandidate,
		ResourceID:   c.ID.String(),
		Details:      audit.Details{"fields": changed},
	})

	if resumeChanged && c.HasResume() {
		s.enqueue(ctx, tenantID, c.ID)
	}
	return c, nil
}

// DeleteCandidate deletes a candidate together with its notes, tags and matches
func (s *CandidateService) DeleteCandidate(ctx context.Context, candidateID kernel.CandidateID, deleterID kernel.UserID, tenantID kernel.TenantID) error {
	if _, err := s.actor(ctx, deleterID, tenantID, auth.ScopeCandidatesDelete, auth.ScopeCandidatesAll); err != nil {
		return err
	}

	c, err := s.candidateRepo.GetByID(ctx, candidateID, tenantID)
	if err != nil {
		return err
	}

	if err := s.candidateRepo.Delete(ctx, candidateID, tenantID); err != nil {
		if errx.IsCode(err, candidate.CodeCandidateNotFound) {
			return err
		}
		return errx.Wrap(err, "failed to delete candidate", errx.TypeInternal)
	}

	if c.ResumeFileURL != "" && s.storage != nil {
		if err := s.storage.DeleteFile(ctx, c.ResumeFileURL); err != nil && !errors.Is(err, fsx.ErrNotFound) {
			logx.With("candidate_id", candidateID, "path", c.ResumeFileURL).Warnf("failed to delete resume file: %v", err)
		}
	}

	s.audit.Record(ctx, audit.Event{
		TenantID:     tenantID,
		UserID:       deleterID,
		Action:       audit.ActionCandidateDeleted,
		ResourceType: audit.ResourceCandidate,
		ResourceID:   candidateID.String(),
		Details:      audit.Details{"name": c.FullName()},
	})
	return nil
}

// AddTag attaches a tenant tag to the candidate
func (s *CandidateService) AddTag(ctx context.Context, candidateID kernel.CandidateID, tagID kernel.TagID, actorID kernel.UserID, tenantID kernel.TenantID) (*candidate.Candidate, error) {
	if _, err := s.actor(ctx, actorID, tenantID, auth.ScopeCandidatesWrite, auth.ScopeCandidatesAll); err != nil {
		return nil, err
	}

	c, err := s.candidateRepo.GetByID(ctx, candidateID, tenantID)
	if err != nil {
		return nil, err
	}
	if _, err := s.tagRepo.GetByID(ctx, tagID, tenantID); err != nil {
		return nil, err
	}
	for _, t := range c.Tags {
		if t.ID == tagID {
			return nil, candidate.ErrTagAlreadyAssigned().WithDetail("tag_id", tagID.String())
		}
	}

	if err := s.candidateRepo.AddTag(ctx, candidateID, tagID, tenantID); err != nil {
		if errx.IsCode(err, candidate.CodeTagAlreadyAssigned) {
			return nil, err
		}
		return nil, errx.Wrap(err, "failed to assign tag", errx.TypeInternal)
	}
	return s.candidateRepo.GetByID(ctx, candidateID, tenantID)
}

// RemoveTag detaches a tag from the candidate
func (s *CandidateService) RemoveTag(ctx context.Context, candidateID kernel.CandidateID, tagID kernel.TagID, actorID kernel.UserID, tenantID kernel.TenantID) error {
	if _, err := s.actor(ctx, actorID, tenantID, auth.ScopeCandidatesWrite, auth.ScopeCandidatesAll); err != nil {
		return err
	}
	if _, err := s.candidateRepo.GetByID(ctx, candidateID, tenantID); err != nil {
		return err
	}
	return s.candidateRepo.RemoveTag(ctx, candidateID, tagID, tenantID)
}

// UploadResume stores the file, extracts its text and schedules enrichment
func (s *CandidateService) UploadResume(ctx context.Context, candidateID kernel.CandidateID, upload candidate.ResumeUpload, actorID kernel.UserID, tenantID kernel.TenantID) (*candidate.Candidate, error) {
	if _, err := s.actor(ctx, actorID, tenantID, auth.ScopeCandidatesWrite, auth.ScopeCandidatesAll); err != nil {
		return nil, err
	}
	if len(upload.Data) == 0 {
		return nil, candidate.ErrResumeMissing()
	}
	if len(upload.Data) > MaxResumeSize {
		return nil, candidate.ErrResumeTooLarge().
			WithDetail("size", len(upload.Data)).
			WithDetail("max_size", MaxResumeSize)
	}

	c, err := s.candidateRepo.GetByID(ctx, candidateID, tenantID)
	if err != nil {
		return nil, err
	}

	text, err := s.reader.ExtractText(ctx, upload.FileName, upload.Data)
	if err != nil {
		return nil, resumeError(err, upload.FileName)
	}

	ext := strings.ToLower(filepath.Ext(upload.FileName))
	path := s.storage.Join(tenantID.String(), "candidates", candidateID.String(), uuid.NewString()+ext)
	if err := s.storage.WriteFile(ctx, path, upload.Data); err != nil {
		return nil, candidate.ErrResumeStorageFailed().WithCause(err)
	}

	previous := c.ResumeFileURL
	c.AttachResume(path, text)
	if err := s.candidateRepo.Update(ctx, c); err != nil {
		return nil, errx.Wrap(err, "failed to save resume", errx.TypeInternal)
	}

	if previous != "" && previous != path {
		if err := s.storage.DeleteFile(ctx, previous); err != nil && !errors.Is(err, fsx.ErrNotFound) {
			logx.With("candidate_id", candidateID, "path", previous).Warnf("failed to delete previous resume: %v", err)
		}
	}

	s.audit.Record(ctx, audit.Event{
		TenantID:     tenantID,
		UserID:       actorID,
		Action:       audit.ActionCandidateUpdated,
		ResourceType: audit.ResourceCandidate,
		ResourceID:   c.ID.String(),
		Details:      audit.Details{"fields": []string{"resume_file_url", "resume_text"}, "file_name": upload.FileName},
	})

	if c.HasResume() {
		s.enqueue(ctx, tenantID, c.ID)
	}
	return c, nil
}

// ExportCandidates renders the selected candidates as csv, json or excel
func (s *CandidateService) ExportCandidates(ctx context.Context, req candidate.ExportCandidatesRequest, exporterID kernel.UserID, tenantID kernel.TenantID) (*candidate.ExportFile, error) {
	if _, err := s.actor(ctx, exporterID, tenantID, auth.ScopeCandidatesExport, auth.ScopeCandidatesAll); err != nil {
		return nil, err
	}

	format, err := export.ParseFormat(req.Format)
	if err != nil {
		return nil, candidate.ErrInvalidRequest().WithDetail("format", req.Format)
	}

	var items []candidate.Candidate
	if len(req.CandidateIDs) > 0 {
		items = make([]candidate.Candidate, 0, len(req.CandidateIDs))
		for _, id := range req.CandidateIDs {
			c, err := s.candidateRepo.GetByID(ctx, id, tenantID)
			if err == nil {
				items = append(items, *c)
			}
		}
	} else {
		all, err := s.candidateRepo.ListAll(ctx, tenantID)
		if err != nil {
			return nil, errx.Wrap(err, "failed to fetch candidates for export", errx.TypeInternal)
		}
		items = all
	}

	if req.Status != "" {
		filtered := items[:0]
		for _, c := range items {
			if c.Status == req.Status {
				filtered = append(filtered, c)
			}
		}
		items = filtered
	}
	if len(items) > exportLimit {
		items = items[:exportLimit]
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, candidateTable(items)); err != nil {
		return nil, candidate.ErrExportFailed().WithCause(err)
	}

	return &candidate.ExportFile{
		FileName:    fmt.Sprintf("candidates_%s%s", time.Now().UTC().Format("20060102_150405"), format.Extension()),
		ContentType: format.ContentType(),
		Data:        buf.Bytes(),
		Count:       len(items),
	}, nil
}

// ============================================================================
// Helper Methods
// ============================================================================

func (s *CandidateService) actor(ctx context.Context, userID kernel.UserID, tenantID kernel.TenantID, scopes ...string) (*user.User, error) {
	u, err := s.userRepo.FindByID(ctx, userID, tenantID)
	if err != nil {
		return nil, user.ErrUserNotFound().WithDetail("user_id", userID.String())
	}
	if !u.IsActive() {
		return nil, user.ErrUserSuspended().WithDetail("user_id", userID.String())
	}
	if !u.HasAnyScope(append(scopes, auth.ScopeAll)...) {
		return nil, candidate.ErrInsufficientPermissions().
			WithDetail("required_scope", scopes[0]).
			WithDetail("user_id", userID.String())
	}
	return u, nil
}

func (s *CandidateService) ensureEmailFree(ctx context.Context, email kernel.Email, self kernel.CandidateID, tenantID kernel.TenantID) error {
	if email.IsEmpty() {
		return nil
	}
	if !email.IsValid() {
		return candidate.ErrInvalidEmail().WithDetail("email", email.String())
	}
	existing, err := s.candidateRepo.GetByEmail(ctx, email, tenantID)
	switch {
	case err == nil && existing.ID != self:
		return candidate.ErrEmailAlreadyExists().
			WithDetail("email", email.String()).
			WithDetail("existing_id", existing.ID.String())
	case err != nil && !errx.IsCode(err, candidate.CodeCandidateNotFound):
		return errx.Wrap(err, "failed to check email", errx.TypeInternal)
	}
	return nil
}

// enqueue schedules enrichment; failures are logged because the candidate
// is already saved
func (s *CandidateService) enqueue(ctx context.Context, tenantID kernel.TenantID, id kernel.CandidateID) {
	if s.queue == nil {
		return
	}
	if err := s.queue.Enqueue(ctx, tenantID, id); err != nil {
		logx.With("tenant_id", tenantID, "candidate_id", id).Warnf("failed to enqueue enrichment: %v", err)
	}
}

func resumeError(err error, fileName string) error {
	switch {
	case errors.Is(err, resumereader.ErrEmptyFile):
		return candidate.ErrResumeMissing()
	case errors.Is(err, resumereader.ErrUnsupportedFormat):
		return candidate.ErrResumeUnreadable().
			WithDetail("reason", "unsupported format").
			WithDetail("file_name", fileName)
	case errors.Is(err, resumereader.ErrOCRUnavailable):
		return candidate.ErrResumeUnreadable().
			WithDetail("reason", "scanned document and OCR is disabled").
			WithDetail("file_name", fileName)
	}
	return candidate.ErrResumeUnreadable().WithCause(err).WithDetail("file_name", fileName)
}

var exportColumns = []export.Column{
	{Key: "id", Header: "ID", Width: 38},
	{Key: "first_name", Header: "First name", Width: 16},
	{Key: "last_name", Header: "Last name", Width: 16},
	{Key: "email", Header: "Email", Width: 28},
	{Key: "phone", Header: "Phone", Width: 16},
	{Key: "linkedin_url", Header: "LinkedIn", Width: 30},
	{Key: "current_position", Header: "Position", Width: 22},
	{Key: "current_company", Header: "Company", Width: 22},
	{Key: "location", Header: "Location", Width: 18},
	{Key: "experience_years", Header: "Experience (years)", Width: 12},
	{Key: "salary_expectation", Header: "Salary expectation", Width: 14},
	{Key: "skills", Header: "Skills", Width: 40},
	{Key: "availability", Header: "Availability", Width: 14},
	{Key: "source", Header: "Source", Width: 12},
	{Key: "status", Header: "Status", Width: 12},
	{Key: "tags", Header: "Tags", Width: 24},
	{Key: "created_at", Header: "Created at", Width: 20},
}

func candidateTable(items []candidate.Candidate) export.Table {
	rows := make([]map[string]any, 0, len(items))
	for _, c := range items {
		tagNames := make([]string, 0, len(c.Tags))
		for _, t := range c.Tags {
			tagNames = append(tagNames, t.Name)
		}
		rows = append(rows, map[string]any{
			"id":                 c.ID.String(),
			"first_name":         c.FirstName.String(),
			"last_name":          c.LastName.String(),
			"email":              c.Email.String(),
			"phone":              c.Phone.String(),
			"linkedin_url":       c.LinkedInURL,
			"current_position":   c.CurrentPosition,
			"current_company":    c.CurrentCompany,
			"location":           c.Location,
			"experience_years":   c.ExperienceYears,
			"salary_expectation": c.SalaryExpectation,
			"skills":             c.Skills,
			"availability":       c.Availability,
			"source":             c.Source,
			"status":             string(c.Status),
			"tags":               strings.Join(tagNames, ", "),
			"created_at":         c.CreatedAt,
		})
	}
	return export.Table{
		Sheet:   "Candidates",
		Title:   "Candidates",
		Columns: exportColumns,
		Rows:    rows,
		Summary: [][2]any{{"Total candidates", len(items)}, {"Exported at", time.Now().UTC()}},
	}
}
