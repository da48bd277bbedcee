// AngelaMos | 2026
// cache_test.go

package product

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCache(client, time.Minute), mr
}

func TestRedisCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t)

	_, err := cache.Get(ctx, "p1")
	require.ErrorIs(t, err, ErrCacheMiss)

	p := &Product{ID: "p1", Name: "Cardigan", Price: decimal.RequireFromString("42.50"), Stock: 7}
	require.NoError(t, cache.Set(ctx, p))

	ttl := mr.TTL(cacheKey("p1"))
	assert.GreaterOrEqual(t, ttl, time.Minute)
	assert.LessOrEqual(t, ttl, time.Minute+time.Minute/7)

	got, err := cache.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Cardigan", got.Name)
	assert.True(t, p.Price.Equal(got.Price))

	require.NoError(t, cache.Delete(ctx, "p1"))
	_, err = cache.Get(ctx, "p1")
	require.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCacheMissesDoNotTripBreaker(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t)

	for range 10 {
		_, err := cache.Get(ctx, "absent")
		require.ErrorIs(t, err, ErrCacheMiss)
	}

	assert.Equal(t, gobreaker.StateClosed, cache.breaker.State())
}

func TestRedisCacheBreakerOpensOnOutage(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t)
	mr.Close()

	for range 5 {
		_, err := cache.Get(ctx, "p1")
		require.Error(t, err)
	}

	assert.Equal(t, gobreaker.StateOpen, cache.breaker.State())

	_, err := cache.Get(ctx, "p1")
	require.ErrorIs(t, err, gobreaker.ErrOpenState)
}
