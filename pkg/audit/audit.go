// Package audit records who did what to which resource inside a tenant.
package audit

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Abraxas-365/hiresight/pkg/kernel"
)

type Action string

const (
	ActionUserRegistered      Action = "user_registered"
	ActionUserLogin           Action = "user_login"
	ActionUserLogout          Action = "user_logout"
	ActionCandidateCreated    Action = "candidate_created"
	ActionCandidateUpdated    Action = "candidate_updated"
	ActionCandidateDeleted    Action = "candidate_deleted"
	ActionCandidateIntegrated Action = "candidate_integrated"
	ActionJobCreated          Action = "job_created"
	ActionJobUpdated          Action = "job_updated"
	ActionJobDeleted          Action = "job_deleted"
	ActionMatchReviewed       Action = "match_reviewed"
)

const (
	ResourceUser      = "user"
	ResourceCandidate = "candidate"
	ResourceJob       = "job_posting"
	ResourceMatch     = "match"
)

// Details is free-form JSON stored alongside an entry
type Details map[string]any

func (d Details) Value() (driver.Value, error) {
	if d == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(d)
}

func (d *Details) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*d = Details{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("audit: cannot scan %T into Details", src)
	}
	return json.Unmarshal(raw, d)
}

type Entry struct {
	ID           kernel.AuditLogID `db:"id" json:"id"`
	TenantID     kernel.TenantID   `db:"tenant_id" json:"tenant_id"`
	UserID       *kernel.UserID    `db:"user_id" json:"user_id,omitempty"`
	Action       Action            `db:"action" json:"action"`
	ResourceType string            `db:"resource_type" json:"resource_type"`
	ResourceID   string            `db:"resource_id" json:"resource_id"`
	Details      Details           `db:"details" json:"details"`
	IPAddress    string            `db:"ip_address" json:"ip_address,omitempty"`
	UserAgent    string            `db:"user_agent" json:"user_agent,omitempty"`
	Timestamp    time.Time         `db:"created_at" json:"timestamp"`
}

// Event is what services report; request metadata is taken from the context
type Event struct {
	TenantID     kernel.TenantID
	UserID       kernel.UserID
	Action       Action
	ResourceType string
	ResourceID   string
	Details      Details
}

// Recorder records events on a best-effort basis
type Recorder interface {
	Record(ctx context.Context, e Event)
}

// NopRecorder discards events
type NopRecorder struct{}

func (NopRecorder) Record(context.Context, Event) {}

type Meta struct {
	IPAddress string
	UserAgent string
}

type metaKey struct{}

func WithMeta(ctx context.Context, m Meta) context.Context {
	return context.WithValue(ctx, metaKey{}, m)
}

func MetaFrom(ctx context.Context) Meta {
	m, _ := ctx.Value(metaKey{}).(Meta)
	return m
}

// ListFilter narrows an audit log listing
type ListFilter struct {
	Action       Action `query:"action"`
	ResourceType string `query:"resource_type"`
	ResourceID   string `query:"resource_id"`
	UserID       string `query:"user_id"`
}
