// AngelaMos | 2026
// handler_test.go

package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ans-khaled/clothes-ecommerce-backend/internal/middleware"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Code    string          `json:"code"`
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	svc, _, _ := newTestService(t)

	passthrough := func(next http.Handler) http.Handler { return next }

	r := chi.NewRouter()
	NewHandler(svc).RegisterRoutes(r, middleware.Authenticator(svc), passthrough)
	return r
}

func do(t *testing.T, h http.Handler, method, path, body, token string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec.Code, env
}

func TestHandlerRegisterLoginLogout(t *testing.T) {
	h := newTestRouter(t)
	register := `{"userName":"Mona","email":"mona@shop.com","password":"hunter2hunter2"}`

	code, env := do(t, h, http.MethodPost, "/register", register, "")
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "Registration done successfully", env.Message)
	assert.NotContains(t, string(env.Data), "password")

	code, env = do(t, h, http.MethodPost, "/register", register, "")
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "User with email mona@shop.com already exists", env.Message)

	code, env = do(t, h, http.MethodPost, "/login",
		`{"email":"mona@shop.com","password":"hunter2hunter2"}`, "")
	require.Equal(t, http.StatusOK, code)
	var login LoginResponse
	require.NoError(t, json.Unmarshal(env.Data, &login))
	assert.Equal(t, "Bearer", login.TokenType)
	assert.Equal(t, "user", login.User.Role)

	code, _ = do(t, h, http.MethodPost, "/logout", "", login.AccessToken)
	require.Equal(t, http.StatusOK, code)

	code, env = do(t, h, http.MethodPost, "/logout", "", login.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "TOKEN_REVOKED", env.Code)
}

func TestHandlerLoginErrors(t *testing.T) {
	h := newTestRouter(t)
	_, _ = do(t, h, http.MethodPost, "/register",
		`{"userName":"Mona","email":"mona@shop.com","password":"hunter2hunter2"}`, "")

	cases := []struct {
		name    string
		body    string
		status  int
		message string
	}{
		{"missing password", `{"email":"mona@shop.com"}`, http.StatusBadRequest,
			"Email and Password are required, please try again"},
		{"unknown email", `{"email":"nobody@shop.com","password":"x"}`, http.StatusNotFound,
			"User not found, please register first"},
		{"wrong password", `{"email":"mona@shop.com","password":"wrong"}`, http.StatusUnauthorized,
			"Invalid credentials!"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, env := do(t, h, http.MethodPost, "/login", tc.body, "")
			assert.Equal(t, tc.status, code)
			assert.Equal(t, tc.message, env.Message)
			assert.False(t, env.Success)
		})
	}
}

func TestHandlerRegisterValidation(t *testing.T) {
	h := newTestRouter(t)

	code, env := do(t, h, http.MethodPost, "/register",
		`{"userName":"M","email":"not-an-email","password":"short"}`, "")

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, env.Message, "email must be a valid email")
	assert.Equal(t, "VALIDATION_ERROR", env.Code)
}
