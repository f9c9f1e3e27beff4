package candidatesrv

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"testing"

	"github.com/Abraxas-365/hiresight/internal/ai/resumereader"
	"github.com/Abraxas-365/hiresight/pkg/audit"
	"github.com/Abraxas-365/hiresight/pkg/errx"
	"github.com/Abraxas-365/hiresight/pkg/fsx/fsxlocal"
	"github.com/Abraxas-365/hiresight/pkg/iam/user"
	"github.com/Abraxas-365/hiresight/pkg/iam/user/usertest"
	"github.com/Abraxas-365/hiresight/pkg/kernel"
	"github.com/Abraxas-365/hiresight/recruitment/candidate"
	"github.com/Abraxas-365/hiresight/recruitment/candidate/candidatetest"
	"github.com/Abraxas-365/hiresight/recruitment/tag"
	"github.com/Abraxas-365/hiresight/recruitment/tag/tagtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQueue struct{ enqueued []kernel.CandidateID }

func (q *fakeQueue) Enqueue(_ context.Context, _ kernel.TenantID, id kernel.CandidateID) error {
	q.enqueued = append(q.enqueued, id)
	return nil
}

type fakeRecorder struct{ events []audit.Event }

func (r *fakeRecorder) Record(_ context.Context, e audit.Event) { r.events = append(r.events, e) }

func (r *fakeRecorder) actions() []audit.Action {
	out := make([]audit.Action, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Action)
	}
	return out
}

type fixture struct {
	svc        *CandidateService
	candidates *candidatetest.MemoryRepository
	tags       *tagtest.MemoryRepository
	storage    *fsxlocal.LocalFileSystem
	queue      *fakeQueue
	audit      *fakeRecorder
	admin      user.User
	recruiter  user.User
}

func newFixture(t *testing.T) *fixture {
	users := usertest.NewMemoryRepository()
	f := &fixture{
		candidates: candidatetest.NewMemoryRepository(),
		tags:       tagtest.NewMemoryRepository(),
		storage:    fsxlocal.NewLocalFileSystem(t.TempDir()),
		queue:      &fakeQueue{},
		audit:      &fakeRecorder{},
		admin:      users.Seed("admin", "t1", user.RoleAdmin),
		recruiter:  users.Seed("recruiter", "t1", user.RoleUser),
	}
	f.svc = NewCandidateService(f.candidates, f.tags, users, f.storage, resumereader.New(nil), f.queue, f.audit)
	return f
}

func (f *fixture) create(t *testing.T, req candidate.CreateCandidateRequest) *candidate.Candidate {
	t.Helper()
	c, err := f.svc.CreateCandidate(context.Background(), req, f.recruiter.ID, "t1")
	require.NoError(t, err)
	return c
}

func TestCreateCandidate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c := f.create(t, candidate.CreateCandidateRequest{
		FirstName:  "Ana",
		LastName:   "Souza",
		Email:      "Ana@Example.com",
		ResumeText: "Go developer with 6 years of experience",
	})
	assert.Equal(t, kernel.Email("ana@example.com"), c.Email)
	assert.Equal(t, candidate.CandidateStatusNew, c.Status)
	assert.Equal(t, candidate.SourceManual, c.Source)
	assert.Equal(t, []kernel.CandidateID{c.ID}, f.queue.enqueued)
	assert.Equal(t, []audit.Action{audit.ActionCandidateCreated}, f.audit.actions())

	t.Run("email unique per tenant", func(t *testing.T) {
		_, err := f.svc.CreateCandidate(ctx, candidate.CreateCandidateRequest{FirstName: "B", LastName: "C", Email: "ANA@example.com"}, f.recruiter.ID, "t1")
		assert.True(t, errx.IsCode(err, candidate.CodeEmailAlreadyExists))
	})

	t.Run("candidates without email never collide", func(t *testing.T) {
		f.create(t, candidate.CreateCandidateRequest{FirstName: "No", LastName: "Email"})
		f.create(t, candidate.CreateCandidateRequest{FirstName: "Also", LastName: "None"})
	})

	t.Run("no resume means no enrichment", func(t *testing.T) {
		assert.Len(t, f.queue.enqueued, 1)
	})
}

func TestUpdateCandidate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.create(t, candidate.CreateCandidateRequest{FirstName: "Ana", LastName: "Souza", Email: "ana@example.com"})
	other := f.create(t, candidate.CreateCandidateRequest{FirstName: "Bia", LastName: "Lima", Email: "bia@example.com"})

	t.Run("partial update keeps other fields", func(t *testing.T) {
		status, resume := "contacted", "Python and Docker, 3 years of experience"
		updated, err := f.svc.UpdateCandidate(ctx, c.ID, candidate.UpdateCandidateRequest{Status: &status, ResumeText: &resume}, f.recruiter.ID, "t1")
		require.NoError(t, err)
		assert.Equal(t, candidate.CandidateStatusContacted, updated.Status)
		assert.Equal(t, kernel.FirstName("Ana"), updated.FirstName)
		assert.Equal(t, []kernel.CandidateID{c.ID}, f.queue.enqueued)
	})

	t.Run("email taken by another candidate", func(t *testing.T) {
		email := "BIA@example.com"
		_, err := f.svc.UpdateCandidate(ctx, c.ID, candidate.UpdateCandidateRequest{Email: &email}, f.recruiter.ID, "t1")
		assert.True(t, errx.IsCode(err, candidate.CodeEmailAlreadyExists))
	})

	t.Run("keeping the same email is fine", func(t *testing.T) {
		email := "bia@example.com"
		_, err := f.svc.UpdateCandidate(ctx, other.ID, candidate.UpdateCandidateRequest{Email: &email}, f.recruiter.ID, "t1")
		assert.NoError(t, err)
	})

	t.Run("other tenant", func(t *testing.T) {
		_, err := f.svc.GetCandidate(ctx, c.ID, "t2")
		assert.True(t, errx.IsCode(err, candidate.CodeCandidateNotFound))
	})
}

func TestDeleteCandidate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.create(t, candidate.CreateCandidateRequest{FirstName: "Ana", LastName: "Souza"})

	err := f.svc.DeleteCandidate(ctx, c.ID, f.recruiter.ID, "t1")
	assert.True(t, errx.IsCode(err, candidate.CodeInsufficientPermissions))

	require.NoError(t, f.svc.DeleteCandidate(ctx, c.ID, f.admin.ID, "t1"))
	_, err = f.svc.GetCandidate(ctx, c.ID, "t1")
	assert.True(t, errx.IsCode(err, candidate.CodeCandidateNotFound))
	assert.Contains(t, f.audit.actions(), audit.ActionCandidateDeleted)
}

func TestSearchCandidates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.create(t, candidate.CreateCandidateRequest{FirstName: "Ana", LastName: "Souza", CurrentCompany: "Acme"})
	f.create(t, candidate.CreateCandidateRequest{FirstName: "Bia", LastName: "Lima", Status: "hired"})
	f.create(t, candidate.CreateCandidateRequest{FirstName: "Caio", LastName: "Reis", CurrentPosition: "Backend at ACME"})

	page, err := f.svc.SearchCandidates(ctx, "t1", candidate.SearchCandidatesRequest{Query: " acme "})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Page.Total)

	page, err = f.svc.SearchCandidates(ctx, "t1", candidate.SearchCandidatesRequest{Status: candidate.CandidateStatusHired})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, kernel.FirstName("Bia"), page.Items[0].FirstName)

	_, err = f.svc.SearchCandidates(ctx, "t1", candidate.SearchCandidatesRequest{Status: "archived"})
	assert.True(t, errx.IsCode(err, candidate.CodeInvalidStatus))
}

func TestCandidateTags(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.create(t, candidate.CreateCandidateRequest{FirstName: "Ana", LastName: "Souza"})

	senior := tag.Tag{ID: "tag-1", TenantID: "t1", Name: "Senior", Color: tag.DefaultColor}
	foreign := tag.Tag{ID: "tag-2", TenantID: "t2", Name: "Foreign", Color: tag.DefaultColor}
	require.NoError(t, f.tags.Create(ctx, &senior))
	require.NoError(t, f.tags.Create(ctx, &foreign))
	f.candidates.RegisterTag(senior)
	f.candidates.RegisterTag(foreign)

	updated, err := f.svc.AddTag(ctx, c.ID, senior.ID, f.recruiter.ID, "t1")
	require.NoError(t, err)
	require.Len(t, updated.Tags, 1)
	assert.Equal(t, "Senior", updated.Tags[0].Name)

	_, err = f.svc.AddTag(ctx, c.ID, senior.ID, f.recruiter.ID, "t1")
	assert.True(t, errx.IsCode(err, candidate.CodeTagAlreadyAssigned))

	_, err = f.svc.AddTag(ctx, c.ID, foreign.ID, f.recruiter.ID, "t1")
	assert.True(t, errx.IsCode(err, tag.CodeTagNotFound))

	page, err := f.svc.SearchCandidates(ctx, "t1", candidate.SearchCandidatesRequest{TagID: senior.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page.Total)

	require.NoError(t, f.svc.RemoveTag(ctx, c.ID, senior.ID, f.recruiter.ID, "t1"))
	err = f.svc.RemoveTag(ctx, c.ID, senior.ID, f.recruiter.ID, "t1")
	assert.True(t, errx.IsCode(err, candidate.CodeTagNotAssigned))
}

func TestUploadResume(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.create(t, candidate.CreateCandidateRequest{FirstName: "Ana", LastName: "Souza"})

	t.Run("plain text resume", func(t *testing.T) {
		updated, err := f.svc.UploadResume(ctx, c.ID, candidate.ResumeUpload{
			FileName: "ana.txt",
			Data:     []byte("Senior Go engineer, 7 years of experience with Kubernetes"),
		}, f.recruiter.ID, "t1")
		require.NoError(t, err)

		assert.Contains(t, updated.ResumeText, "Kubernetes")
		assert.Contains(t, updated.ResumeFileURL, "t1/candidates/"+c.ID.String())
		stored, err := f.storage.ReadFile(ctx, updated.ResumeFileURL)
		require.NoError(t, err)
		assert.Contains(t, string(stored), "Go engineer")
		assert.Equal(t, []kernel.CandidateID{c.ID}, f.queue.enqueued)
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := f.svc.UploadResume(ctx, c.ID, candidate.ResumeUpload{FileName: "x.txt"}, f.recruiter.ID, "t1")
		assert.True(t, errx.IsCode(err, candidate.CodeResumeMissing))
	})

	t.Run("unsupported format", func(t *testing.T) {
		_, err := f.svc.UploadResume(ctx, c.ID, candidate.ResumeUpload{FileName: "cv.docx", Data: []byte("PK\x03\x04")}, f.recruiter.ID, "t1")
		assert.True(t, errx.IsCode(err, candidate.CodeResumeUnreadable))
	})

	t.Run("too large", func(t *testing.T) {
		_, err := f.svc.UploadResume(ctx, c.ID, candidate.ResumeUpload{FileName: "big.txt", Data: make([]byte, MaxResumeSize+1)}, f.recruiter.ID, "t1")
		assert.True(t, errx.IsCode(err, candidate.CodeResumeTooLarge))
	})
}

func TestExportCandidates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for i := range 3 {
		f.create(t, candidate.CreateCandidateRequest{FirstName: fmt.Sprintf("C%d", i), LastName: "X"})
	}

	_, err := f.svc.ExportCandidates(ctx, candidate.ExportCandidatesRequest{Format: "csv"}, f.recruiter.ID, "t1")
	assert.True(t, errx.IsCode(err, candidate.CodeInsufficientPermissions))

	file, err := f.svc.ExportCandidates(ctx, candidate.ExportCandidatesRequest{Format: "csv"}, f.admin.ID, "t1")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", file.ContentType)
	assert.Equal(t, 3, file.Count)

	records, err := csv.NewReader(bytes.NewReader(file.Data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "id", records[0][0])
	assert.Equal(t, "C0", records[1][1])

	xlsx, err := f.svc.ExportCandidates(ctx, candidate.ExportCandidatesRequest{Format: "excel"}, f.admin.ID, "t1")
	require.NoError(t, err)
	assert.Equal(t, ".xlsx", xlsx.FileName[len(xlsx.FileName)-5:])
	assert.True(t, bytes.HasPrefix(xlsx.Data, []byte("PK")))
}
