// AngelaMos | 2026
// logger.go

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/ans-khaled/clothes-ecommerce-backend/internal/core"
)

type contextKey string

const requestMetaKey contextKey = "request_meta"

// requestMeta lets handlers deeper in the chain report back to Logger,
// whose request context never sees values added downstream.
type requestMeta struct {
	userID string
}

func withRequestMeta(ctx context.Context) (context.Context, *requestMeta) {
	meta := &requestMeta{}
	return context.WithValue(ctx, requestMetaKey, meta), meta
}

func recordUser(ctx context.Context, userID string) {
	if meta, ok := ctx.Value(requestMetaKey).(*requestMeta); ok {
		meta.userID = userID
	}
}

// Logger writes one structured line per request once the handler returns.
func Logger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			ctx, meta := withRequestMeta(r.Context())
			r = r.WithContext(ctx)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			attrs := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"remote_ip", r.RemoteAddr,
				"request_id", chimw.GetReqID(r.Context()),
			}
			if traceID := core.TraceIDFromContext(r.Context()); traceID != "" {
				attrs = append(attrs, "trace_id", traceID)
			}
			if meta.userID != "" {
				attrs = append(attrs, "user_id", meta.userID)
			}

			switch {
			case status >= http.StatusInternalServerError:
				logger.Error("request", attrs...)
			case status >= http.StatusBadRequest:
				logger.Warn("request", attrs...)
			default:
				logger.Info("request", attrs...)
			}
		})
	}
}
