package status

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"mortgageportal/internal/platform/redis"
)

// Cache keeps the latest report per user in Redis so the portal can render
// progress without touching Postgres. Cache failures never fail a save; they
// are logged and the caller moves on.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *Cache {
	return &Cache{client: client, ttl: ttl, logger: logger}
}

func cacheKey(userID string) string {
	return "status:" + userID
}

// Put stores the report under status:{userID}. A nil client (Redis not
// configured) makes this a no-op.
func (c *Cache) Put(ctx context.Context, userID string, report Report) {
	if c == nil || c.client == nil {
		return
	}
	payload, err := json.Marshal(report)
	if err != nil {
		c.logger.ErrorContext(ctx, "marshal status report", "error", err, "user_id", userID)
		return
	}
	if err := c.client.Set(ctx, cacheKey(userID), payload, c.ttl).Err(); err != nil {
		c.logger.ErrorContext(ctx, "cache status report", "error", err, "user_id", userID)
	}
}

// Get loads the cached report. The second return is false on miss.
func (c *Cache) Get(ctx context.Context, userID string) (Report, bool, error) {
	if c == nil || c.client == nil {
		return nil, false, nil
	}
	payload, err := c.client.Get(ctx, cacheKey(userID)).Bytes()
	if err == goredis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get cached status: %w", err)
	}
	var report Report
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, false, fmt.Errorf("decode cached status: %w", err)
	}
	return report, true, nil
}
