// AngelaMos | 2026
// ratelimit_test.go

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func hit(h http.Handler, remoteAddr, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func newLimiter(t *testing.T, rdb *redis.Client, cfg RateLimitConfig) http.Handler {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return NewRateLimiter(ctx, rdb, cfg).Handler(http.HandlerFunc(okHandler))
}

func TestRateLimiterRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	h := newLimiter(t, rdb, RateLimitConfig{Limit: PerWindow(2, 2, time.Minute)})

	for range 2 {
		rec := hit(h, "10.0.0.1:5000", "/api/products")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	}

	rec := hit(h, "10.0.0.1:5000", "/api/products")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.2:5000", "/api/products").Code)
}

func TestRateLimiterFallsBackWhenRedisIsDown(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })

	h := newLimiter(t, rdb, RateLimitConfig{Limit: PerWindow(2, 2, time.Minute)})

	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.1:5000", "/").Code)
	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.1:5000", "/").Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(h, "10.0.0.1:5000", "/").Code)
}

func TestRateLimiterBypass(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	h := newLimiter(t, rdb, RateLimitConfig{
		Limit:      PerWindow(1, 1, time.Minute),
		BypassFunc: func(r *http.Request) bool { return r.URL.Path == "/healthz" },
	})

	for range 3 {
		assert.Equal(t, http.StatusOK, hit(h, "10.0.0.1:5000", "/healthz").Code)
	}
}

func TestKeyByIPAndEndpoint(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/users/login", nil)
	req.RemoteAddr = "192.0.2.7:4431"
	assert.Equal(t, "storefront:rl:ip:192.0.2.7:ep:/api/users/login", KeyByIPAndEndpoint(req))

	req = httptest.NewRequest(
		http.MethodGet,
		"/api/orders/3f1c2a9e-6c1b-4c55-9d9e-2b0f7f0a8b11",
		nil,
	)
	req.RemoteAddr = "192.0.2.7:4431"
	assert.Equal(t, "storefront:rl:ip:192.0.2.7:ep:/api/orders/{id}", KeyByIPAndEndpoint(req))
}
