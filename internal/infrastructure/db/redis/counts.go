package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const countTTL = 5 * time.Minute

// CountCache caches per-course enrollment counts in Redis.
// Key format: enrollcount:<course_id>
type CountCache struct {
	client *redis.Client
}

// NewCountCache creates a CountCache wrapping the given Redis client.
func NewCountCache(client *redis.Client) *CountCache {
	return &CountCache{client: client}
}

// Get returns the cached count for the course and whether it was present.
func (c *CountCache) Get(ctx context.Context, courseID string) (int64, bool, error) {
	n, err := c.client.Get(ctx, c.key(courseID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("count cache get: %w", err)
	}
	return n, true, nil
}

// Set stores the count (expires after countTTL).
func (c *CountCache) Set(ctx context.Context, courseID string, count int64) error {
	return c.client.Set(ctx, c.key(courseID), count, countTTL).Err()
}

// Invalidate drops the cached count after an enrollment mutation.
func (c *CountCache) Invalidate(ctx context.Context, courseID string) error {
	return c.client.Del(ctx, c.key(courseID)).Err()
}

func (c *CountCache) key(courseID string) string {
	return fmt.Sprintf("enrollcount:%s", courseID)
}
