package caching

import (
	"context"
	"sync"
	"time"

	"roomly/internal/models"
)

type memoryEntry struct {
	snapshot  *models.TenantSnapshot
	expiresAt time.Time
}

type memoryTenantCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryTenantCache returns a process-local TenantCache. Entries are
// whole-value replacements, so concurrent readers never observe a partial
// entry; expiry is checked on read and eviction is lazy.
func NewMemoryTenantCache() TenantCache {
	return newMemoryTenantCache(time.Now)
}

// newMemoryTenantCache takes the clock as a parameter for tests.
func newMemoryTenantCache(now func() time.Time) *memoryTenantCache {
	return &memoryTenantCache{
		entries: make(map[string]memoryEntry),
		now:     now,
	}
}

func (m *memoryTenantCache) GetTenant(_ context.Context, key string) (*models.TenantSnapshot, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if m.now().After(entry.expiresAt) {
		m.mu.Lock()
		// Re-check under the write lock; a fresher entry may have landed.
		if current, ok := m.entries[key]; ok && m.now().After(current.expiresAt) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return nil, nil
	}
	return entry.snapshot, nil
}

func (m *memoryTenantCache) SetTenant(_ context.Context, key string, snapshot *models.TenantSnapshot, ttl time.Duration) error {
	m.mu.Lock()
	m.entries[key] = memoryEntry{
		snapshot:  snapshot,
		expiresAt: m.now().Add(ttl),
	}
	m.mu.Unlock()
	return nil
}

func (m *memoryTenantCache) DeleteTenant(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}
