package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kingrain94/realty-api/internal/domain"
)

const keyPrefix = "tenant:"

// ErrMiss is returned when the key is not cached.
var ErrMiss = errors.New("cache miss")

// cachedTenant keeps the api key, which the public JSON form of a tenant hides.
type cachedTenant struct {
	domain.Tenant
	APIKey string `json:"api_key"`
}

type TenantCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewTenantCache(client *redis.Client, ttl time.Duration) *TenantCache {
	return &TenantCache{client: client, ttl: ttl}
}

func APIKeyKey(apiKey string) string {
	return keyPrefix + "key:" + apiKey
}

func HostKey(host string) string {
	return keyPrefix + "host:" + host
}

func (c *TenantCache) Get(ctx context.Context, key string) (*domain.Tenant, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read tenant cache: %w", err)
	}

	var cached cachedTenant
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, fmt.Errorf("failed to decode cached tenant: %w", err)
	}
	tenant := cached.Tenant
	tenant.APIKey = cached.APIKey
	return &tenant, nil
}

func (c *TenantCache) Set(ctx context.Context, key string, tenant *domain.Tenant) error {
	raw, err := json.Marshal(cachedTenant{Tenant: *tenant, APIKey: tenant.APIKey})
	if err != nil {
		return fmt.Errorf("failed to encode tenant: %w", err)
	}
	return c.client.Set(ctx, key, raw, c.ttl).Err()
}

func (c *TenantCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
