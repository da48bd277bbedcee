// AngelaMos | 2026
// server_test.go

package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ans-khaled/clothes-ecommerce-backend/internal/config"
	"github.com/ans-khaled/clothes-ecommerce-backend/internal/health"
)

func testServer(h *health.Handler) *Server {
	srv := New(Config{
		ServerConfig: config.ServerConfig{
			Host:         "127.0.0.1",
			Port:         0,
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		},
		HealthHandler: h,
	})
	h.RegisterRoutes(srv.Router())
	return srv
}

func status(srv *Server, path string) int {
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec.Code
}

func TestShutdownFlipsProbes(t *testing.T) {
	h := health.NewHandler()
	srv := testServer(h)

	require.Equal(t, http.StatusOK, status(srv, "/readyz"))
	require.Equal(t, http.StatusOK, status(srv, "/livez"))

	require.NoError(t, srv.Shutdown(context.Background(), 0))

	assert.Equal(t, http.StatusServiceUnavailable, status(srv, "/readyz"))
	assert.Equal(t, http.StatusServiceUnavailable, status(srv, "/livez"))
}

func TestShutdownHonoursDeadlineDuringDrain(t *testing.T) {
	srv := testServer(health.NewHandler())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := srv.Shutdown(ctx, time.Minute)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
