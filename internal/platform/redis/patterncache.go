package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// PatternCache stores rendered SVG documents in redis with a TTL. It
// implements the profile service's cache contract.
type PatternCache struct {
	client *Client
	ttl    time.Duration
}

// NewPatternCache wraps a connected client. TTL of zero means entries never
// expire.
func NewPatternCache(client *Client, ttl time.Duration) *PatternCache {
	return &PatternCache{client: client, ttl: ttl}
}

func (c *PatternCache) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("pattern cache get: %w", err)
	}
	return value, true, nil
}

func (c *PatternCache) Set(ctx context.Context, key, value string) error {
	if err := c.client.Set(ctx, key, value, c.ttl).Err(); err != nil {
		return fmt.Errorf("pattern cache set: %w", err)
	}
	return nil
}
