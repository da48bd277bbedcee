// AngelaMos | 2026
// auth_test.go

package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ans-khaled/clothes-ecommerce-backend/internal/core"
)

type fakeVerifier struct {
	tokens map[string]*Identity
	err    error
}

func (f fakeVerifier) VerifyAccessToken(_ context.Context, token string) (*Identity, error) {
	if f.err != nil {
		return nil, f.err
	}
	if id, ok := f.tokens[token]; ok {
		return id, nil
	}
	return nil, errors.New("unknown token")
}

func testVerifier() fakeVerifier {
	return fakeVerifier{tokens: map[string]*Identity{
		"customer-token": {UserID: "u-1", UserName: "Mona", Role: "user", ExpiresAt: time.Now().Add(time.Hour)},
		"admin-token":    {UserID: "a-1", UserName: "Super Admin", Role: RoleAdmin, ExpiresAt: time.Now().Add(time.Hour)},
	}}
}

func echoUser(w http.ResponseWriter, r *http.Request) {
	core.OK(w, "ok", map[string]any{"userId": GetUserID(r.Context()), "admin": IsAdmin(r.Context())})
}

func call(h http.Handler, authorization string) (*httptest.ResponseRecorder, core.Envelope) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env core.Envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

func TestAuthenticator(t *testing.T) {
	h := Authenticator(testVerifier())(http.HandlerFunc(echoUser))

	t.Run("missing header", func(t *testing.T) {
		rec, env := call(h, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "access denied, no token provided", env.Message)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		rec, _ := call(h, "Basic customer-token")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown token", func(t *testing.T) {
		rec, env := call(h, "Bearer forged")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "TOKEN_INVALID", env.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		rec, env := call(h, "bearer customer-token")
		require.Equal(t, http.StatusOK, rec.Code)
		data, ok := env.Data.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "u-1", data["userId"])
		assert.Equal(t, false, data["admin"])
	})
}

func TestAuthenticatorMapsTaxonomyErrors(t *testing.T) {
	h := Authenticator(fakeVerifier{err: core.ErrTokenRevoked})(http.HandlerFunc(echoUser))

	rec, env := call(h, "Bearer anything")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "TOKEN_REVOKED", env.Code)
}

func TestRequireAdmin(t *testing.T) {
	h := Authenticator(testVerifier())(RequireAdmin(http.HandlerFunc(echoUser)))

	rec, env := call(h, "Bearer customer-token")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "access denied, admins only", env.Message)

	rec, _ = call(h, "Bearer admin-token")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdminWithoutIdentity(t *testing.T) {
	rec, _ := call(RequireAdmin(http.HandlerFunc(echoUser)), "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
