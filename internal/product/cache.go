// AngelaMos | 2026
// cache.go

package product

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"

	"github.com/ans-khaled/clothes-ecommerce-backend/internal/core"
)

var ErrCacheMiss = errors.New("cache miss")

type Cache interface {
	Get(ctx context.Context, id string) (*Product, error)
	Set(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) error
}

// RedisCache stores products as JSON. Calls go through a circuit breaker
// so a failing Redis is skipped quickly instead of adding latency to
// every catalog read.
type RedisCache struct {
	client  *redis.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
	baseTTL time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "product-cache",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, redis.Nil)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state change",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})

	return &RedisCache{
		client:  client,
		breaker: breaker,
		baseTTL: ttl,
	}
}

func (c *RedisCache) Get(ctx context.Context, id string) (*Product, error) {
	data, err := c.breaker.Execute(func() ([]byte, error) {
		return c.client.Get(ctx, cacheKey(id)).Bytes()
	})
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("product cache get: %w", err)
	}

	var p Product
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("product cache decode: %w", err)
	}

	return &p, nil
}

func (c *RedisCache) Set(ctx context.Context, p *Product) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("product cache encode: %w", err)
	}

	_, err = c.breaker.Execute(func() ([]byte, error) {
		return nil, c.client.Set(ctx, cacheKey(p.ID), data, core.JitteredDuration(c.baseTTL)).Err()
	})
	if err != nil {
		return fmt.Errorf("product cache set: %w", err)
	}

	return nil
}

func (c *RedisCache) Delete(ctx context.Context, id string) error {
	_, err := c.breaker.Execute(func() ([]byte, error) {
		return nil, c.client.Del(ctx, cacheKey(id)).Err()
	})
	if err != nil {
		return fmt.Errorf("product cache delete: %w", err)
	}
	return nil
}

func cacheKey(id string) string {
	return core.RedisKey("product", id)
}
