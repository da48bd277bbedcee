// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ans-khaled/clothes-ecommerce-backend/internal/core"
	"github.com/ans-khaled/clothes-ecommerce-backend/internal/middleware"
)

type fakeRepository struct {
	mu    sync.Mutex
	users map[string]*User
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{users: map[string]*User{}}
}

func (f *fakeRepository) Create(_ context.Context, u *User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	clone := *u
	f.users[u.ID] = &clone
	return nil
}

func (f *fakeRepository) GetByID(_ context.Context, id string) (*User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
}

func (f *fakeRepository) GetByEmail(_ context.Context, email string) (*User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
}

func (f *fakeRepository) UpdatePassword(_ context.Context, id, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return fmt.Errorf("update password: %w", core.ErrNotFound)
	}
	u.PasswordHash = hash
	return nil
}

func (f *fakeRepository) List(_ context.Context, p ListUsersParams) ([]User, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []User
	for _, u := range f.users {
		if p.Role != "" && u.Role != p.Role {
			continue
		}
		if p.Search != "" && !strings.Contains(strings.ToLower(u.UserName), strings.ToLower(p.Search)) {
			continue
		}
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })

	total := len(out)
	start := min(p.Offset(), total)
	end := min(start+p.PageSize, total)
	return out[start:end], total, nil
}

func (f *fakeRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(context.Background(), email)
	return err == nil, nil
}

func TestCreateNormalizesAndNeverGrantsAdmin(t *testing.T) {
	svc := NewService(newFakeRepository())

	info, err := svc.Create(context.Background(), "  Mona  ", "  Mona@Shop.COM ", "hash")
	require.NoError(t, err)

	assert.Equal(t, "Mona", info.UserName)
	assert.Equal(t, "mona@shop.com", info.Email)
	assert.Equal(t, RoleUser, info.Role)

	found, err := svc.GetByEmail(context.Background(), "MONA@shop.com")
	require.NoError(t, err)
	assert.Equal(t, info.ID, found.ID)
}

func TestCreateDuplicateEmail(t *testing.T) {
	svc := NewService(newFakeRepository())
	ctx := context.Background()

	_, err := svc.Create(ctx, "a", "dup@shop.com", "h")
	require.NoError(t, err)

	_, err = svc.Create(ctx, "b", "DUP@shop.com", "h")
	assert.ErrorIs(t, err, core.ErrDuplicateKey)
}

func TestEnsureAdmin(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.EnsureAdmin(ctx, "Admin@Shop.com", "s3cret", "Super Admin")
	require.NoError(t, err)
	assert.True(t, created)

	admin, err := repo.GetByEmail(ctx, "admin@shop.com")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin())
	ok, err := core.VerifyPassword("s3cret", admin.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)

	created, err = svc.EnsureAdmin(ctx, "admin@shop.com", "other", "Super Admin")
	require.NoError(t, err)
	assert.False(t, created)

	_, err = svc.EnsureAdmin(ctx, "", "pw", "x")
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestListUsers(t *testing.T) {
	svc := NewService(newFakeRepository())
	ctx := context.Background()

	_, _, err := svc.ListUsers(ctx, ListUsersParams{PageParams: core.PageParams{Page: 1, PageSize: 10}})
	assert.ErrorIs(t, err, core.ErrNotFound)

	for i := range 3 {
		_, err := svc.Create(ctx, fmt.Sprintf("user%d", i), fmt.Sprintf("u%d@shop.com", i), "h")
		require.NoError(t, err)
	}
	_, err = svc.EnsureAdmin(ctx, "admin@shop.com", "pw", "Super Admin")
	require.NoError(t, err)

	users, total, err := svc.ListUsers(ctx, ListUsersParams{
		PageParams: core.PageParams{Page: 1, PageSize: 2},
		Role:       RoleUser,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, users, 2)

	_, _, err = svc.ListUsers(ctx, ListUsersParams{
		PageParams: core.PageParams{Page: 1, PageSize: 2},
		Role:       "owner",
	})
	appErr := core.FromError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)
}

func TestGetMeRequiresUser(t *testing.T) {
	svc := NewService(newFakeRepository())

	_, err := svc.GetMe(context.Background(), "")
	assert.ErrorIs(t, err, core.ErrUnauthorized)
}

func withIdentity(identity *middleware.Identity) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithIdentity(r.Context(), identity)))
		})
	}
}

func TestHandlerMeAndAdminList(t *testing.T) {
	svc := NewService(newFakeRepository())
	ctx := context.Background()
	me, err := svc.Create(ctx, "Mona", "mona@shop.com", "h")
	require.NoError(t, err)

	serve := func(identity *middleware.Identity, path string) (*httptest.ResponseRecorder, core.Envelope) {
		r := chi.NewRouter()
		NewHandler(svc).RegisterRoutes(r, withIdentity(identity), middleware.RequireAdmin)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		var env core.Envelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
		return rec, env
	}

	customer := &middleware.Identity{UserID: me.ID, Role: RoleUser}
	rec, env := serve(customer, "/me")
	require.Equal(t, http.StatusOK, rec.Code)
	data, ok := env.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "mona@shop.com", data["email"])
	assert.NotContains(t, data, "passwordHash")

	rec, _ = serve(customer, "/getAllUsers")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, env = serve(&middleware.Identity{UserID: "a", Role: RoleAdmin}, "/getAllUsers?page=1&pageSize=5")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Users fetched successfully", env.Message)
}
