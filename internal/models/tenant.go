package models

import (
	"time"

	"github.com/google/uuid"
)

// JSONB represents a free-form JSON column value
type JSONB map[string]interface{}

// Tenant statuses
const (
	TenantStatusActive    = "active"
	TenantStatusSuspended = "suspended"
)

// Tenant represents a customer organization. Slug is unique and immutable
// once assigned; Domain, when set, is unique across all tenants.
type Tenant struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Slug      string    `json:"slug" db:"slug"`
	Domain    *string   `json:"domain" db:"domain"`
	Plan      string    `json:"plan" db:"plan"`
	Settings  JSONB     `json:"settings" db:"settings"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// Features is populated by full resolution, not by every read path.
	Features []*TenantFeature `json:"features,omitempty" db:"-"`
}

// TenantSnapshot is the cached, resolution-relevant view of a tenant.
// It is a time-bounded read replica and never authoritative for writes.
type TenantSnapshot struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Slug     string    `json:"slug"`
	Domain   *string   `json:"domain"`
	Plan     string    `json:"plan"`
	Settings JSONB     `json:"settings"`
	Status   string    `json:"status"`
}

// Snapshot copies the resolution-relevant fields of a tenant.
func (t *Tenant) Snapshot() *TenantSnapshot {
	return &TenantSnapshot{
		ID:       t.ID,
		Name:     t.Name,
		Slug:     t.Slug,
		Domain:   t.Domain,
		Plan:     t.Plan,
		Settings: t.Settings,
		Status:   t.Status,
	}
}

// Tenant reconstructs a tenant from a cached snapshot. The feature list is
// left empty; entitlement checks fall back to the association store.
func (s *TenantSnapshot) Tenant() *Tenant {
	return &Tenant{
		ID:       s.ID,
		Name:     s.Name,
		Slug:     s.Slug,
		Domain:   s.Domain,
		Plan:     s.Plan,
		Settings: s.Settings,
		Status:   s.Status,
	}
}
