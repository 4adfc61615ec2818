package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/OtlotlengMajuja/storefront/internal/domain"
)

const categoriesKey = "catalog:categories"

// ErrCacheMiss is returned when the category list is not cached.
var ErrCacheMiss = redis.Nil

// CategoryCache caches the distinct-category scan result in Redis.
type CategoryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCategoryCache creates a new Redis-backed category cache.
func NewCategoryCache(client *redis.Client, ttl time.Duration) *CategoryCache {
	return &CategoryCache{
		client: client,
		ttl:    ttl,
	}
}

// Get retrieves the cached category list. Returns ErrCacheMiss when the key
// is absent or expired.
func (c *CategoryCache) Get(ctx context.Context) ([]domain.Category, error) {
	data, err := c.client.Get(ctx, categoriesKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get categories: %w", err)
	}

	var categories []domain.Category
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("unmarshal categories: %w", err)
	}

	return categories, nil
}

// Set stores the category list with the configured TTL.
func (c *CategoryCache) Set(ctx context.Context, categories []domain.Category) error {
	data, err := json.Marshal(categories)
	if err != nil {
		return fmt.Errorf("marshal categories: %w", err)
	}

	if err := c.client.Set(ctx, categoriesKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set categories: %w", err)
	}

	return nil
}

// Invalidate drops the cached category list.
func (c *CategoryCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, categoriesKey).Err(); err != nil {
		return fmt.Errorf("redis del categories: %w", err)
	}
	return nil
}
