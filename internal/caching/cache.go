package caching

import (
	"context"
	"time"

	"roomly/internal/models"
)

// TenantCache is a keyed, TTL-bounded cache of tenant snapshots. It is an
// optimization only: every caller must fall back to the tenant store on a
// miss or cache error, so a broken cache can never block resolution.
type TenantCache interface {
	// GetTenant returns the cached snapshot for a lookup key (slug or
	// custom domain), or nil on a miss. Expired entries count as misses.
	GetTenant(ctx context.Context, key string) (*models.TenantSnapshot, error)

	// SetTenant inserts or overwrites the entry with expiry now + ttl.
	SetTenant(ctx context.Context, key string, snapshot *models.TenantSnapshot, ttl time.Duration) error

	// DeleteTenant removes the entry immediately. Called after the
	// authoritative record changes so stale data is not served.
	DeleteTenant(ctx context.Context, key string) error
}
