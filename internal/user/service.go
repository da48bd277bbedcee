// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/ans-khaled/clothes-ecommerce-backend/internal/auth"
	"github.com/ans-khaled/clothes-ecommerce-backend/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(ctx context.Context, id string) (*auth.UserInfo, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUserInfo(user), nil
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	return toUserInfo(user), nil
}

// Create registers a regular user. Registration can never grant admin.
func (s *Service) Create(
	ctx context.Context,
	userName, email, passwordHash string,
) (*auth.UserInfo, error) {
	user := &User{
		ID:           uuid.New().String(),
		UserName:     strings.TrimSpace(userName),
		Email:        normalizeEmail(email),
		PasswordHash: passwordHash,
		Role:         RoleUser,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	return s.repo.UpdatePassword(ctx, userID, passwordHash)
}

func (s *Service) GetMe(ctx context.Context, userID string) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("get me: %w", core.ErrUnauthorized)
	}
	return s.repo.GetByID(ctx, userID)
}

// ListUsers returns a page of users. An empty store is reported as
// ErrNotFound.
func (s *Service) ListUsers(ctx context.Context, params ListUsersParams) ([]User, int, error) {
	if params.Role != "" && params.Role != RoleUser && params.Role != RoleAdmin {
		return nil, 0, fmt.Errorf("list users: %w", core.ValidationError("role must be one of [user admin]"))
	}

	users, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return nil, 0, fmt.Errorf("list users: %w", core.ErrNotFound)
	}

	return users, total, nil
}

// EnsureAdmin creates the seed admin account unless a user with that
// email already exists. It reports whether an account was created.
func (s *Service) EnsureAdmin(ctx context.Context, email, password, userName string) (bool, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return false, fmt.Errorf("ensure admin: %w", core.ErrInvalidInput)
	}

	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if exists {
		slog.InfoContext(ctx, "admin already exists", "email", email)
		return false, nil
	}

	hash, err := core.HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("ensure admin: hash password: %w", err)
	}

	admin := &User{
		ID:           uuid.New().String(),
		UserName:     userName,
		Email:        email,
		PasswordHash: hash,
		Role:         RoleAdmin,
	}

	if err := s.repo.Create(ctx, admin); err != nil {
		// Another replica seeded concurrently.
		if errors.Is(err, core.ErrDuplicateKey) {
			return false, nil
		}
		return false, err
	}

	slog.InfoContext(ctx, "admin created", "email", email, "user_id", admin.ID)
	return true, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		UserName:     u.UserName,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		CreatedAt:    u.CreatedAt,
	}
}

var _ auth.UserProvider = (*Service)(nil)
