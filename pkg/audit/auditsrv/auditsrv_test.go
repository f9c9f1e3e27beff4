package auditsrv

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Abraxas-365/hiresight/pkg/audit"
	"github.com/Abraxas-365/hiresight/pkg/kernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	entries []audit.Entry
	fail    error
}

func (m *memRepo) Create(_ context.Context, e *audit.Entry) error {
	if m.fail != nil {
		return m.fail
	}
	m.entries = append(m.entries, *e)
	return nil
}

func (m *memRepo) List(_ context.Context, tenantID kernel.TenantID, f audit.ListFilter, opts kernel.PaginationOptions) (*kernel.Paginated[audit.Entry], error) {
	if m.fail != nil {
		return nil, m.fail
	}
	var out []audit.Entry
	for _, e := range m.entries {
		if e.TenantID == tenantID && (f.Action == "" || e.Action == f.Action) {
			out = append(out, e)
		}
	}
	return kernel.NewPaginated(out, opts, len(out)), nil
}

func TestRecord(t *testing.T) {
	repo := &memRepo{}
	svc := NewService(repo)
	svc.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	ctx := audit.WithMeta(context.Background(), audit.Meta{IPAddress: "10.0.0.1", UserAgent: "curl"})
	svc.Record(ctx, audit.Event{
		TenantID:     "t1",
		UserID:       "u1",
		Action:       audit.ActionCandidateCreated,
		ResourceType: audit.ResourceCandidate,
		ResourceID:   "c1",
	})
	svc.Record(context.Background(), audit.Event{TenantID: "t1", Action: audit.ActionUserLogin})

	require.Len(t, repo.entries, 2)
	first := repo.entries[0]
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, "10.0.0.1", first.IPAddress)
	assert.Equal(t, "curl", first.UserAgent)
	require.NotNil(t, first.UserID)
	assert.Equal(t, kernel.UserID("u1"), *first.UserID)
	assert.NotNil(t, first.Details)
	assert.Equal(t, 2024, first.Timestamp.Year())

	assert.Nil(t, repo.entries[1].UserID)
}

func TestRecord_SwallowsErrors(t *testing.T) {
	svc := NewService(&memRepo{fail: errors.New("db down")})
	assert.NotPanics(t, func() {
		svc.Record(context.Background(), audit.Event{TenantID: "t1", Action: audit.ActionUserLogin})
	})
}

func TestList(t *testing.T) {
	repo := &memRepo{}
	svc := NewService(repo)
	svc.Record(context.Background(), audit.Event{TenantID: "t1", Action: audit.ActionUserLogin})
	svc.Record(context.Background(), audit.Event{TenantID: "t1", Action: audit.ActionJobCreated})
	svc.Record(context.Background(), audit.Event{TenantID: "t2", Action: audit.ActionUserLogin})

	page, err := svc.List(context.Background(), "t1", audit.ListFilter{Action: audit.ActionUserLogin}, kernel.PaginationOptions{})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, kernel.DefaultPageSize, page.Page.Size)

	repo.fail = errors.New("boom")
	_, err = svc.List(context.Background(), "t1", audit.ListFilter{}, kernel.PaginationOptions{})
	assert.ErrorIs(t, err, audit.ErrListFailed())
}
