package auditsrv

import (
	"context"
	"time"

	"github.com/Abraxas-365/hiresight/pkg/audit"
	"github.com/Abraxas-365/hiresight/pkg/kernel"
	"github.com/Abraxas-365/hiresight/pkg/logx"
	"github.com/google/uuid"
)

type Service struct {
	repo audit.Repository
	now  func() time.Time
}

var _ audit.Recorder = (*Service)(nil)

func NewService(repo audit.Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Record stores e. Failures are logged and swallowed so auditing never
// breaks the operation being audited.
func (s *Service) Record(ctx context.Context, e audit.Event) {
	meta := audit.MetaFrom(ctx)
	entry := &audit.Entry{
		ID:           kernel.NewAuditLogID(uuid.NewString()),
		TenantID:     e.TenantID,
		Action:       e.Action,
		ResourceType: e.ResourceType,
		ResourceID:   e.ResourceID,
		Details:      e.Details,
		IPAddress:    meta.IPAddress,
		UserAgent:    meta.UserAgent,
		Timestamp:    s.now().UTC(),
	}
	if !e.UserID.IsEmpty() {
		uid := e.UserID
		entry.UserID = &uid
	}
	if entry.Details == nil {
		entry.Details = audit.Details{}
	}

	if err := s.repo.Create(context.WithoutCancel(ctx), entry); err != nil {
		logx.With(
			"action", e.Action,
			"resource_type", e.ResourceType,
			"resource_id", e.ResourceID,
			"tenant_id", e.TenantID,
		).Errorf("failed to record audit entry: %v", err)
	}
}

// List returns the tenant's audit trail, newest first
func (s *Service) List(ctx context.Context, tenantID kernel.TenantID, filter audit.ListFilter, opts kernel.PaginationOptions) (*kernel.Paginated[audit.Entry], error) {
	page, err := s.repo.List(ctx, tenantID, filter, opts.Normalize())
	if err != nil {
		return nil, audit.ErrListFailed().WithCause(err)
	}
	return page, nil
}
