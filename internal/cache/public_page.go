// Package cache holds the Redis read-through cache for public booking pages.
// Only the slow-moving profile+catalog payload is cached; availability reads
// bypass it entirely so booked slots show up immediately.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"marcai/internal/domain"
)

type PublicPageCache interface {
	Get(ctx context.Context, slug string) (*domain.PublicPage, error)
	Set(ctx context.Context, slug string, page *domain.PublicPage) error
	Invalidate(ctx context.Context, slug string) error
}

type RedisPublicPageCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisPublicPageCache(client *redis.Client, ttl time.Duration) *RedisPublicPageCache {
	return &RedisPublicPageCache{
		client: client,
		ttl:    ttl,
	}
}

func publicPageKey(slug string) string {
	return "public_page:" + slug
}

// Get returns nil, nil on a cache miss.
func (c *RedisPublicPageCache) Get(ctx context.Context, slug string) (*domain.PublicPage, error) {
	raw, err := c.client.Get(ctx, publicPageKey(slug)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading public page cache: %w", err)
	}

	var page domain.PublicPage
	if err := json.Unmarshal(raw, &page); err != nil {
		// A corrupt entry is treated as a miss; the next Set overwrites it.
		return nil, nil
	}

	return &page, nil
}

func (c *RedisPublicPageCache) Set(ctx context.Context, slug string, page *domain.PublicPage) error {
	raw, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("encoding public page: %w", err)
	}

	if err := c.client.Set(ctx, publicPageKey(slug), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("writing public page cache: %w", err)
	}

	return nil
}

func (c *RedisPublicPageCache) Invalidate(ctx context.Context, slug string) error {
	if err := c.client.Del(ctx, publicPageKey(slug)).Err(); err != nil {
		return fmt.Errorf("invalidating public page cache: %w", err)
	}

	return nil
}
