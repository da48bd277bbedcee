// AngelaMos | 2026
// redis_test.go

package core

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ans-khaled/clothes-ecommerce-backend/internal/config"
)

func TestRedisKey(t *testing.T) {
	assert.Equal(t, "storefront:product:abc", RedisKey("product", "abc"))
	assert.Equal(t, "storefront:auth:deny:jti", RedisKey("auth", "deny", "jti"))
}

func TestRedisOptions(t *testing.T) {
	t.Run("config overrides pool settings", func(t *testing.T) {
		opts, err := redisOptions(config.RedisConfig{
			URL:             "redis://localhost:6379/2",
			PoolSize:        7,
			MinIdleConns:    2,
			PoolTimeout:     time.Second,
			ConnMaxIdleTime: time.Minute,
		})
		require.NoError(t, err)
		assert.Equal(t, 2, opts.DB)
		assert.Equal(t, 7, opts.PoolSize)
		assert.Equal(t, 2, opts.MinIdleConns)
		assert.Equal(t, time.Second, opts.PoolTimeout)
		assert.Equal(t, time.Minute, opts.ConnMaxIdleTime)
		assert.Equal(t, RedisNamespace, opts.ClientName)
	})

	t.Run("zero values fall back", func(t *testing.T) {
		opts, err := redisOptions(config.RedisConfig{URL: "redis://localhost:6379/0"})
		require.NoError(t, err)
		assert.Equal(t, redisPoolTimeout, opts.PoolTimeout)
		assert.Equal(t, redisConnIdleTimeout, opts.ConnMaxIdleTime)
	})

	t.Run("bad url", func(t *testing.T) {
		_, err := redisOptions(config.RedisConfig{URL: "http://nope"})
		require.Error(t, err)
	})
}

func TestNewRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	store, err := NewRedis(ctx, config.RedisConfig{URL: "redis://" + mr.Addr()})
	require.NoError(t, err)
	assert.Equal(t, "redis", store.Name())
	require.NoError(t, store.Ping(ctx))
	assert.NotNil(t, store.PoolStats())

	mr.Close()
	require.Error(t, store.Ping(ctx))
	require.NoError(t, store.Close())
}

func TestNewRedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedis(context.Background(), config.RedisConfig{URL: "redis://" + addr})
	require.Error(t, err)
}
