// AngelaMos | 2026
// redis.go

package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ans-khaled/clothes-ecommerce-backend/internal/config"
)

// RedisNamespace prefixes every key the storefront writes, so the
// instance can be shared with other apps.
const RedisNamespace = "storefront"

const (
	redisPingTimeout     = 5 * time.Second
	redisPoolTimeout     = 30 * time.Second
	redisConnIdleTimeout = 5 * time.Minute
)

// RedisKey joins parts under the storefront namespace:
// RedisKey("product", id) is "storefront:product:<id>".
func RedisKey(parts ...string) string {
	return RedisNamespace + ":" + strings.Join(parts, ":")
}

// Redis backs the product cache, the token deny list and the rate
// limiter. It also reports to the readiness and admin stats endpoints.
type Redis struct {
	Client *redis.Client
}

func NewRedis(ctx context.Context, cfg config.RedisConfig) (*Redis, error) {
	opts, err := redisOptions(cfg)
	if err != nil {
		return nil, err
	}

	store := &Redis{Client: redis.NewClient(opts)}
	if err := store.Ping(ctx); err != nil {
		_ = store.Close() //nolint:errcheck // cleanup on connection failure
		return nil, err
	}

	return store, nil
}

// redisOptions layers the pool settings from config over the URL. Zero
// values keep the go-redis defaults, except the pool wait and idle
// timeouts which default to storefront values.
func redisOptions(cfg config.RedisConfig) (*redis.Options, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	opts.ClientName = RedisNamespace
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if cfg.MinIdleConns > 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}

	opts.PoolTimeout = redisPoolTimeout
	if cfg.PoolTimeout > 0 {
		opts.PoolTimeout = cfg.PoolTimeout
	}
	opts.ConnMaxIdleTime = redisConnIdleTimeout
	if cfg.ConnMaxIdleTime > 0 {
		opts.ConnMaxIdleTime = cfg.ConnMaxIdleTime
	}

	return opts, nil
}

func (r *Redis) Close() error {
	if r.Client == nil {
		return nil
	}
	return r.Client.Close()
}

func (r *Redis) Name() string {
	return "redis"
}

func (r *Redis) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()

	if err := r.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	return nil
}

func (r *Redis) PoolStats() *redis.PoolStats {
	return r.Client.PoolStats()
}
