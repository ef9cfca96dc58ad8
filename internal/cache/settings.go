// Package cache holds the Redis-backed caches and locks used by the API.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"amorlias/internal/domain"
	"amorlias/internal/port"
)

const settingsKey = "amorlias:settings:business"

type settingsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSettingsCache returns a JSON cache of the business settings row.
func NewSettingsCache(client *redis.Client, ttl time.Duration) port.SettingsCache {
	return &settingsCache{client: client, ttl: ttl}
}

func (c *settingsCache) Get(ctx context.Context) (*domain.BusinessSettings, error) {
	data, err := c.client.Get(ctx, settingsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("settingsCache.Get: %w", err)
	}
	var s domain.BusinessSettings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("settingsCache.Get decode: %w", err)
	}
	return &s, nil
}

func (c *settingsCache) Set(ctx context.Context, settings *domain.BusinessSettings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("settingsCache.Set encode: %w", err)
	}
	if err := c.client.Set(ctx, settingsKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("settingsCache.Set: %w", err)
	}
	return nil
}

func (c *settingsCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, settingsKey).Err(); err != nil {
		return fmt.Errorf("settingsCache.Invalidate: %w", err)
	}
	return nil
}

// Nop is a SettingsCache that never hits. Used when Redis is not configured.
type Nop struct{}

func (Nop) Get(context.Context) (*domain.BusinessSettings, error) { return nil, domain.ErrNotFound }
func (Nop) Set(context.Context, *domain.BusinessSettings) error   { return nil }
func (Nop) Invalidate(context.Context) error                      { return nil }
