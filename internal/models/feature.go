package models

import (
	"time"

	"github.com/google/uuid"
)

// Well-known feature names
const (
	FeatureRoomBooking     = "room_booking"
	FeatureAnalytics       = "analytics"
	FeatureMultiSite       = "multi_site"
	FeatureCustomBranding  = "custom_branding"
	FeatureAPIAccess       = "api_access"
	FeatureAuditExport     = "audit_export"
	FeaturePrioritySupport = "priority_support"
)

// Feature is a globally defined capability flag referenced by many tenants.
type Feature struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description" db:"description"`
	Icon        *string   `json:"icon" db:"icon"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// TenantFeature binds a tenant to a feature. At most one row exists per
// (tenant, feature) pair. Disabling toggles Enabled rather than deleting,
// so per-tenant settings survive a downgrade.
type TenantFeature struct {
	ID          uuid.UUID `json:"id" db:"id"`
	TenantID    uuid.UUID `json:"tenant_id" db:"tenant_id"`
	FeatureID   uuid.UUID `json:"feature_id" db:"feature_id"`
	FeatureName string    `json:"feature_name" db:"feature_name"`
	Enabled     bool      `json:"enabled" db:"enabled"`
	Settings    JSONB     `json:"settings" db:"settings"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
