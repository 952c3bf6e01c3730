package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/andresuchdata/salesboard/internal/config"
)

const (
	reportKeyPrefix = "salesboard:report"
	scanBatchSize   = 100
)

// ReportCache stores computed reports as JSON. Keys come from Key and embed the
// payload hash, so a changed export never hits a stale entry.
type ReportCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	InvalidateAll(ctx context.Context) error
	Close() error
}

type redisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopReportCache struct{}

// NewReportCache connects to redis when caching is enabled and returns a no-op
// cache otherwise.
func NewReportCache(ctx context.Context, cfg config.CacheConfig) (ReportCache, error) {
	if !cfg.Enabled {
		return &noopReportCache{}, nil
	}

	client, ttl, err := newRedisClient(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &redisReportCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopReportCache() ReportCache {
	return &noopReportCache{}
}

// Key builds a report cache key from a report kind and its discriminating parts.
func Key(kind string, parts ...string) string {
	raw := strings.Join(parts, "|")
	hash := sha1.Sum([]byte(raw))
	return fmt.Sprintf("%s:%s:%s", reportKeyPrefix, kind, hex.EncodeToString(hash[:]))
}

func (c *redisReportCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get failed: %w", err)
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		return false, fmt.Errorf("decode report cache %s: %w", key, err)
	}
	return true, nil
}

func (c *redisReportCache) Set(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode report cache %s: %w", key, err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisReportCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, reportKeyPrefix, scanBatchSize)
}

func (c *redisReportCache) Close() error {
	return c.client.Close()
}

func (n *noopReportCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, nil
}

func (n *noopReportCache) Set(ctx context.Context, key string, value interface{}) error {
	return nil
}

func (n *noopReportCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func (n *noopReportCache) Close() error {
	return nil
}
