package tenant

import (
	"time"

	"github.com/Abraxas-365/hiresight/pkg/kernel"
)

type SubscriptionPlan string

const (
	PlanBasic      SubscriptionPlan = "basic"
	PlanPremium    SubscriptionPlan = "premium"
	PlanEnterprise SubscriptionPlan = "enterprise"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
	StatusCancelled Status = "cancelled"
)

type Tenant struct {
	ID               kernel.TenantID  `db:"id" json:"id"`
	Name             string           `db:"name" json:"name"`
	SubscriptionPlan SubscriptionPlan `db:"subscription_plan" json:"subscription_plan"`
	Status           Status           `db:"status" json:"status"`
	CreatedAt        time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time        `db:"updated_at" json:"updated_at"`
}

// IsActive reports whether users of the tenant may sign in
func (t *Tenant) IsActive() bool {
	return t.Status == StatusActive
}

func (t *Tenant) Suspend() {
	t.Status = StatusSuspended
	t.UpdatedAt = time.Now()
}
