// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ans-khaled/clothes-ecommerce-backend/internal/core"
	"github.com/ans-khaled/clothes-ecommerce-backend/internal/middleware"
)

func denyListKey(tokenID string) string {
	return core.RedisKey("auth", "deny", tokenID)
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already exists")
	ErrUnknownEmail       = errors.New("no account with that email")
)

type UserInfo struct {
	ID           string
	UserName     string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

// UserProvider is the slice of the user store the auth flow needs.
type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	GetByID(ctx context.Context, id string) (*UserInfo, error)
	Create(ctx context.Context, userName, email, passwordHash string) (*UserInfo, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}

type Service struct {
	tokens *TokenManager
	users  UserProvider
	redis  *redis.Client
}

func NewService(
	tokens *TokenManager,
	users UserProvider,
	redisClient *redis.Client,
) *Service {
	return &Service{
		tokens: tokens,
		users:  users,
		redis:  redisClient,
	}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*UserInfo, error) {
	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, req.UserName, req.Email, passwordHash)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrUnknownEmail
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	valid, newHash, err := core.VerifyPasswordWithRehash(req.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !valid {
		return nil, ErrInvalidCredentials
	}

	if newHash != "" {
		if err := s.users.UpdatePassword(ctx, user.ID, newHash); err != nil {
			slog.WarnContext(ctx, "password rehash not persisted",
				"user_id", user.ID,
				"error", err,
			)
		}
	}

	issued, err := s.tokens.Issue(user.ID, user.UserName, user.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &LoginResponse{
		AccessToken: issued.Token,
		TokenType:   "Bearer",
		ExpiresIn:   int(time.Until(issued.ExpiresAt).Seconds()),
		ExpiresAt:   issued.ExpiresAt,
		User:        toUserResponse(user),
	}, nil
}

// Logout deny-lists the token until its natural expiry.
func (s *Service) Logout(ctx context.Context, identity *middleware.Identity) error {
	if identity == nil || identity.TokenID == "" {
		return fmt.Errorf("logout: %w", core.ErrUnauthorized)
	}

	ttl := time.Until(identity.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	if err := s.redis.Set(ctx, denyListKey(identity.TokenID), identity.UserID, ttl).Err(); err != nil {
		return fmt.Errorf("deny-list token: %w", err)
	}

	return nil
}

func (s *Service) VerifyAccessToken(
	ctx context.Context,
	token string,
) (*middleware.Identity, error) {
	identity, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	revoked, err := s.redis.Exists(ctx, denyListKey(identity.TokenID)).Result()
	if err != nil {
		// Redis down: tokens stay valid until expiry rather than locking
		// every user out.
		slog.WarnContext(ctx, "token deny-list unavailable", "error", err)
		return identity, nil
	}
	if revoked > 0 {
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenRevoked)
	}

	return identity, nil
}

var _ middleware.TokenVerifier = (*Service)(nil)
