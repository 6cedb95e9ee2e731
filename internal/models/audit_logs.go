package models

import (
	"time"

	"github.com/google/uuid"
)

// Action constants for audit logs
const (
	ActionCreate           = "CREATE"
	ActionUpdate           = "UPDATE"
	ActionDelete           = "DELETE"
	ActionLogin            = "LOGIN"
	ActionLoginFailed      = "LOGIN_FAILED"
	ActionPermissionDenied = "PERMISSION_DENIED"
	ActionBulkImport       = "BULK_IMPORT"
	ActionBulkDelete       = "BULK_DELETE"
)

// AuditLog is an immutable record of a state-changing action. Entries are
// write-once; there is no update path.
type AuditLog struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	TenantID   uuid.UUID  `json:"tenant_id" db:"tenant_id"`
	UserID     *uuid.UUID `json:"user_id" db:"user_id"`
	Action     string     `json:"action" db:"action"`
	EntityType string     `json:"entity_type" db:"entity_type"`
	EntityID   string     `json:"entity_id" db:"entity_id"`
	Metadata   JSONB      `json:"metadata" db:"metadata"`
	IPAddress  *string    `json:"ip_address" db:"ip_address"`
	UserAgent  *string    `json:"user_agent" db:"user_agent"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}

// AuditLogFilters narrows audit log queries. Nil fields are ignored.
type AuditLogFilters struct {
	UserID     *uuid.UUID `json:"user_id"`
	Action     *string    `json:"action"`
	EntityType *string    `json:"entity_type"`
	StartDate  *time.Time `json:"start_date"`
	EndDate    *time.Time `json:"end_date"`
}

// SuspiciousActivity holds coarse 24-hour counts used as a heuristic
// signal. It drives no automated action.
type SuspiciousActivity struct {
	TenantID          uuid.UUID `json:"tenant_id"`
	FailedLogins      int       `json:"failed_logins"`
	AfterHoursActions int       `json:"after_hours_actions"`
	BulkOperations    int       `json:"bulk_operations"`
	PermissionDenials int       `json:"permission_denials"`
	WindowStart       time.Time `json:"window_start"`
	WindowEnd         time.Time `json:"window_end"`
}
