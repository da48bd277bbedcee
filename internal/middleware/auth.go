// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/ans-khaled/clothes-ecommerce-backend/internal/core"
)

const (
	identityKey contextKey = "identity"

	RoleAdmin = "admin"
)

type TokenVerifier interface {
	VerifyAccessToken(ctx context.Context, token string) (*Identity, error)
}

// Identity is the authenticated caller attached to the request context.
type Identity struct {
	UserID    string
	UserName  string
	Role      string
	TokenID   string
	ExpiresAt time.Time
}

func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}

func Authenticator(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)
			if token == "" {
				core.Unauthorized(w, "access denied, no token provided")
				return
			}

			identity, err := verifier.VerifyAccessToken(r.Context(), token)
			if err != nil {
				if appErr := core.FromError(err); appErr != nil {
					core.JSONError(w, appErr)
					return
				}
				core.JSONError(w, core.TokenInvalidError())
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

func RequireRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := GetIdentity(r.Context())
			if identity == nil {
				core.Unauthorized(w, "")
				return
			}

			if _, ok := allowed[identity.Role]; !ok {
				core.Forbidden(w, "access denied, admins only")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(RoleAdmin)(next)
}

func ExtractToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return ""
	}

	return strings.TrimSpace(token)
}

func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	if identity != nil {
		recordUser(ctx, identity.UserID)
	}
	return context.WithValue(ctx, identityKey, identity)
}

func GetIdentity(ctx context.Context) *Identity {
	if identity, ok := ctx.Value(identityKey).(*Identity); ok {
		return identity
	}
	return nil
}

func GetUserID(ctx context.Context) string {
	if identity := GetIdentity(ctx); identity != nil {
		return identity.UserID
	}
	return ""
}

func IsAdmin(ctx context.Context) bool {
	return GetIdentity(ctx).IsAdmin()
}
