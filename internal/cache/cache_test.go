package cache

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/salesboard/internal/config"
)

func TestKey(t *testing.T) {
	a := Key("table", "abc", "brand", "name", "asc")
	b := Key("table", "abc", "brand", "name", "asc")
	c := Key("table", "abd", "brand", "name", "asc")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.True(t, strings.HasPrefix(a, "salesboard:report:table:"))
	assert.Len(t, strings.TrimPrefix(a, "salesboard:report:table:"), 40)
}

func TestBuildRedisOptions(t *testing.T) {
	opts, err := buildRedisOptions(config.CacheConfig{RedisHost: "cache", RedisPort: "6380", RedisDB: 2, RedisPassword: "s"})
	require.NoError(t, err)
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, "s", opts.Password)

	opts, err = buildRedisOptions(config.CacheConfig{})
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:6379", opts.Addr)

	opts, err = buildRedisOptions(config.CacheConfig{RedisURL: "redis://:pw@redis.local:6390/3"})
	require.NoError(t, err)
	assert.Equal(t, "redis.local:6390", opts.Addr)
	assert.Equal(t, 3, opts.DB)

	_, err = buildRedisOptions(config.CacheConfig{RedisURL: "mysql://nope"})
	assert.Error(t, err)
}

func TestNewReportCache_Disabled(t *testing.T) {
	c, err := NewReportCache(context.Background(), config.CacheConfig{Enabled: false})
	require.NoError(t, err)

	var dest map[string]int
	hit, err := c.Get(context.Background(), Key("x"), &dest)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, c.Set(context.Background(), Key("x"), map[string]int{"a": 1}))
	assert.NoError(t, c.InvalidateAll(context.Background()))
	assert.NoError(t, c.Close())
}

func TestNewReportCache_Unreachable(t *testing.T) {
	_, err := NewReportCache(context.Background(), config.CacheConfig{Enabled: true, RedisHost: "127.0.0.1", RedisPort: "1"})
	assert.Error(t, err)
}
