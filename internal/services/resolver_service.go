package services

import (
	"context"
	"fmt"
	"log"
	"net"
	"strings"
	"time"

	"roomly/internal/caching"
	"roomly/internal/common"
	"roomly/internal/models"
	"roomly/internal/repositories"
)

// ReservedSlugs are subdomains that never resolve to a tenant (marketing
// site, API endpoints, infrastructure). They short-circuit resolution
// before any storage call and are rejected as tenant slugs at creation.
var ReservedSlugs = map[string]bool{
	"www":    true,
	"app":    true,
	"api":    true,
	"admin":  true,
	"mail":   true,
	"status": true,
}

// TenantResolver maps an inbound request to exactly one tenant or to none.
// A (nil, nil) return means "no tenant resolved" and is an expected
// outcome; a non-nil error means the lookup infrastructure failed.
type TenantResolver interface {
	Resolve(ctx context.Context, host, explicitSlug string) (*models.Tenant, error)

	// Invalidate drops the tenant's cache entries (slug and domain keys).
	// Called after the authoritative record changes.
	Invalidate(ctx context.Context, tenant *models.Tenant)
}

type tenantResolver struct {
	tenantRepo        repositories.TenantRepository
	tenantFeatureRepo repositories.TenantFeatureRepository
	cache             caching.TenantCache
	baseDomain        string
	cacheTTL          time.Duration
}

func NewTenantResolver(
	tenantRepo repositories.TenantRepository,
	tenantFeatureRepo repositories.TenantFeatureRepository,
	cache caching.TenantCache,
	baseDomain string,
	cacheTTL time.Duration,
) TenantResolver {
	return &tenantResolver{
		tenantRepo:        tenantRepo,
		tenantFeatureRepo: tenantFeatureRepo,
		cache:             cache,
		baseDomain:        strings.ToLower(baseDomain),
		cacheTTL:          cacheTTL,
	}
}

func slugCacheKey(slug string) string     { return "slug:" + slug }
func domainCacheKey(domain string) string { return "domain:" + domain }

func (r *tenantResolver) Resolve(ctx context.Context, host, explicitSlug string) (*models.Tenant, error) {
	// An explicit slug always wins over host-derived resolution, so
	// previews and deep links work without DNS changes.
	if explicitSlug != "" {
		slug := strings.ToLower(strings.TrimSpace(explicitSlug))
		if ReservedSlugs[slug] {
			return nil, nil
		}
		return r.resolveBySlug(ctx, slug)
	}

	hostname := normalizeHost(host)
	if hostname == "" || hostname == r.baseDomain {
		return nil, nil
	}

	if slug, ok := r.subdomainOf(hostname); ok {
		if slug == "" || ReservedSlugs[slug] {
			return nil, nil
		}
		return r.resolveBySlug(ctx, slug)
	}

	return r.resolveByDomain(ctx, hostname)
}

func (r *tenantResolver) resolveBySlug(ctx context.Context, slug string) (*models.Tenant, error) {
	if slug == "" {
		return nil, nil
	}

	if snapshot := r.cacheGet(ctx, slugCacheKey(slug)); snapshot != nil {
		return snapshot.Tenant(), nil
	}

	tenant, err := r.tenantRepo.GetBySlug(ctx, slug)
	if err != nil {
		if common.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("tenant resolution by slug %q failed: %w", slug, err)
	}

	r.finishResolution(ctx, slugCacheKey(slug), tenant)
	return tenant, nil
}

func (r *tenantResolver) resolveByDomain(ctx context.Context, domain string) (*models.Tenant, error) {
	if snapshot := r.cacheGet(ctx, domainCacheKey(domain)); snapshot != nil {
		return snapshot.Tenant(), nil
	}

	tenant, err := r.tenantRepo.GetByDomain(ctx, domain)
	if err != nil {
		if common.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("tenant resolution by domain %q failed: %w", domain, err)
	}

	r.finishResolution(ctx, domainCacheKey(domain), tenant)
	return tenant, nil
}

// finishResolution loads the tenant's feature associations and populates
// the cache. Both are best-effort relative to the resolution result itself:
// a failed feature load leaves Features nil (entitlement checks fall back
// to the store) and a failed cache write only costs the next request a
// store round trip.
func (r *tenantResolver) finishResolution(ctx context.Context, key string, tenant *models.Tenant) {
	features, err := r.tenantFeatureRepo.ListByTenant(ctx, tenant.ID)
	if err != nil {
		log.Printf("resolver: failed to load features for tenant %s: %v", tenant.ID, err)
	} else {
		tenant.Features = features
	}

	if err := r.cache.SetTenant(ctx, key, tenant.Snapshot(), r.cacheTTL); err != nil {
		log.Printf("resolver: failed to cache tenant %s: %v", tenant.ID, err)
	}
}

func (r *tenantResolver) cacheGet(ctx context.Context, key string) *models.TenantSnapshot {
	snapshot, err := r.cache.GetTenant(ctx, key)
	if err != nil {
		// Cache failure degrades to a store lookup, never blocks.
		log.Printf("resolver: cache lookup for %s failed: %v", key, err)
		return nil
	}
	return snapshot
}

func (r *tenantResolver) Invalidate(ctx context.Context, tenant *models.Tenant) {
	if tenant == nil {
		return
	}
	if err := r.cache.DeleteTenant(ctx, slugCacheKey(tenant.Slug)); err != nil {
		log.Printf("resolver: failed to invalidate slug cache for %s: %v", tenant.Slug, err)
	}
	if tenant.Domain != nil && *tenant.Domain != "" {
		if err := r.cache.DeleteTenant(ctx, domainCacheKey(*tenant.Domain)); err != nil {
			log.Printf("resolver: failed to invalidate domain cache for %s: %v", *tenant.Domain, err)
		}
	}
}

// subdomainOf returns the label immediately left of the base domain when
// the hostname sits under it: "demo.example.com" -> "demo". A hostname not
// under the base domain is a custom-domain candidate instead.
func (r *tenantResolver) subdomainOf(hostname string) (string, bool) {
	if r.baseDomain == "" {
		return "", false
	}
	prefix, found := strings.CutSuffix(hostname, "."+r.baseDomain)
	if !found {
		return "", false
	}
	labels := strings.Split(prefix, ".")
	return labels[len(labels)-1], true
}

// normalizeHost lowercases the host header and strips any port. A host that
// cannot be parsed resolves to no tenant, never to an error.
func normalizeHost(host string) string {
	host = strings.TrimSpace(strings.ToLower(host))
	if host == "" {
		return ""
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return strings.TrimSuffix(host, ".")
}
