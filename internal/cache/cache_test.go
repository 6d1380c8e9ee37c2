package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"shareit/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisCache(t *testing.T) (*miniredis.Miniredis, *RedisSearchCache) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewRedisSearchCache(client, time.Minute)
}

var testItems = []models.Item{
	{ID: 1, Name: "Drill", Description: "power drill", Available: true, OwnerID: 1},
	{ID: 2, Name: "Drill press", Description: "bench tool", Available: true, OwnerID: 2},
}

func TestRedisCacheRoundTrip(t *testing.T) {
	_, c := setupRedisCache(t)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "drill")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "drill", testItems))

	got, ok, err := c.Get(ctx, "drill")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, testItems, got)

	// Lookups are case-insensitive like the search itself.
	got, ok, err = c.Get(ctx, "DRILL")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, testItems, got)
}

func TestRedisCacheInvalidate(t *testing.T) {
	_, c := setupRedisCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "drill", testItems))
	require.NoError(t, c.Invalidate(ctx))

	_, ok, err := c.Get(ctx, "drill")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCacheExpiry(t *testing.T) {
	mr, c := setupRedisCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "drill", testItems))
	mr.FastForward(2 * time.Minute)

	_, ok, err := c.Get(ctx, "drill")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCache(t *testing.T) {
	c := NewMemorySearchCache(time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "drill", testItems))

	got, ok, err := c.Get(ctx, "Drill")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, testItems, got)

	require.NoError(t, c.Invalidate(ctx))
	_, ok, err = c.Get(ctx, "drill")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFailoverFallsBackToMemory(t *testing.T) {
	mr, primary := setupRedisCache(t)
	fallback := NewMemorySearchCache(time.Minute)
	logger := zerolog.New(os.Stdout)
	c := NewFailoverSearchCache(primary, fallback, &logger)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "drill", testItems))

	// Kill redis; the failover should keep serving through memory.
	mr.Close()

	require.NoError(t, c.Set(ctx, "saw", testItems))
	got, ok, err := c.Get(ctx, "saw")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, testItems, got)
}

func TestFailoverInvalidateClearsFallback(t *testing.T) {
	mr, primary := setupRedisCache(t)
	fallback := NewMemorySearchCache(time.Minute)
	logger := zerolog.New(os.Stdout)
	c := NewFailoverSearchCache(primary, fallback, &logger)
	ctx := context.Background()

	mr.Close()
	require.NoError(t, c.Set(ctx, "drill", testItems))
	require.NoError(t, c.Invalidate(ctx))

	_, ok, err := c.Get(ctx, "drill")
	require.NoError(t, err)
	assert.False(t, ok)
}
