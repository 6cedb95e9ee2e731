package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"roomly/internal/models"

	"github.com/redis/go-redis/v9"
)

type redisTenantCache struct {
	client *redis.Client
}

// NewRedisTenantCache connects a TenantCache to Redis so multiple processes
// share one snapshot pool. A failed ping is logged, not fatal; the resolver
// degrades to store lookups.
func NewRedisTenantCache(addr, password string, db int) TenantCache {
	// Accept redis://host:port and rediss://host:port forms as well
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisTenantCache{client: client}
}

func tenantKey(key string) string {
	return fmt.Sprintf("roomly:tenant:%s", key)
}

func (r *redisTenantCache) GetTenant(ctx context.Context, key string) (*models.TenantSnapshot, error) {
	data, err := r.client.Get(ctx, tenantKey(key)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var snapshot models.TenantSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (r *redisTenantCache) SetTenant(ctx context.Context, key string, snapshot *models.TenantSnapshot, ttl time.Duration) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, tenantKey(key), data, ttl).Err()
}

func (r *redisTenantCache) DeleteTenant(ctx context.Context, key string) error {
	return r.client.Del(ctx, tenantKey(key)).Err()
}
