package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"makanApa/domain"

	"github.com/redis/go-redis/v9"
)

const venueCacheKey = "venues:master"

// VenueCache keeps the current cleaned venue master in Redis so the serving
// path does not hit the lake on every request. The master is a single
// overwritten snapshot, so a short TTL is enough to pick up reruns.
type VenueCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewVenueCache(client *redis.Client, ttl time.Duration) *VenueCache {
	return &VenueCache{
		client: client,
		ttl:    ttl,
	}
}

// GetVenues returns the cached master, or (nil, nil) on a cache miss.
func (c *VenueCache) GetVenues(ctx context.Context) ([]domain.VenueRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	val, err := c.client.Get(ctx, venueCacheKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get venue cache: %w", err)
	}

	var venues []domain.VenueRecord
	if err := json.Unmarshal([]byte(val), &venues); err != nil {
		return nil, fmt.Errorf("failed to unmarshal venue cache: %w", err)
	}

	return venues, nil
}

func (c *VenueCache) SetVenues(ctx context.Context, venues []domain.VenueRecord) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	data, err := json.Marshal(venues)
	if err != nil {
		return fmt.Errorf("failed to marshal venue cache: %w", err)
	}

	if err := c.client.Set(ctx, venueCacheKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set venue cache: %w", err)
	}

	return nil
}
