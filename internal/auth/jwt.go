// AngelaMos | 2026
// jwt.go

package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/ans-khaled/clothes-ecommerce-backend/internal/config"
	"github.com/ans-khaled/clothes-ecommerce-backend/internal/core"
	"github.com/ans-khaled/clothes-ecommerce-backend/internal/middleware"
)

const (
	claimUserName = "user_name"
	claimRole     = "role"
)

// TokenManager issues and verifies HS256 access tokens.
type TokenManager struct {
	secret []byte
	config config.JWTConfig
	now    func() time.Time
}

func NewTokenManager(cfg config.JWTConfig) (*TokenManager, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret is empty")
	}

	return &TokenManager{
		secret: []byte(cfg.Secret),
		config: cfg,
		now:    time.Now,
	}, nil
}

type IssuedToken struct {
	Token     string
	TokenID   string
	ExpiresAt time.Time
}

func (m *TokenManager) Issue(userID, userName, role string) (*IssuedToken, error) {
	now := m.now()
	expiresAt := now.Add(m.config.AccessTokenExpire)
	tokenID := uuid.New().String()

	token, err := jwt.NewBuilder().
		JwtID(tokenID).
		Issuer(m.config.Issuer).
		Audience([]string{m.config.Audience}).
		Subject(userID).
		IssuedAt(now).
		NotBefore(now).
		Expiration(expiresAt).
		Claim(claimUserName, userName).
		Claim(claimRole, role).
		Build()
	if err != nil {
		return nil, fmt.Errorf("build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), m.secret))
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &IssuedToken{
		Token:     string(signed),
		TokenID:   tokenID,
		ExpiresAt: expiresAt,
	}, nil
}

// Parse verifies signature, issuer, audience and time claims and returns
// the identity carried by the token. Deny-list checks happen in Service.
func (m *TokenManager) Parse(tokenString string) (*middleware.Identity, error) {
	token, err := jwt.Parse(
		[]byte(tokenString),
		jwt.WithKey(jwa.HS256(), m.secret),
		jwt.WithValidate(true),
		jwt.WithIssuer(m.config.Issuer),
		jwt.WithAudience(m.config.Audience),
		jwt.WithClock(jwt.ClockFunc(m.now)),
	)
	if err != nil {
		if isTokenExpiredError(err) {
			return nil, fmt.Errorf("verify token: %w", core.ErrTokenExpired)
		}
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenInvalid)
	}

	subject, ok := token.Subject()
	if !ok || subject == "" {
		return nil, fmt.Errorf("verify token: missing subject: %w", core.ErrTokenInvalid)
	}

	tokenID, ok := token.JwtID()
	if !ok || tokenID == "" {
		return nil, fmt.Errorf("verify token: missing jti: %w", core.ErrTokenInvalid)
	}

	var role string
	if err := token.Get(claimRole, &role); err != nil || role == "" {
		return nil, fmt.Errorf("verify token: missing role claim: %w", core.ErrTokenInvalid)
	}

	var userName string
	//nolint:errcheck // user_name is informational
	_ = token.Get(claimUserName, &userName)

	expiresAt, _ := token.Expiration()

	return &middleware.Identity{
		UserID:    subject,
		UserName:  userName,
		Role:      role,
		TokenID:   tokenID,
		ExpiresAt: expiresAt,
	}, nil
}

func isTokenExpiredError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "token is expired") ||
		(strings.Contains(msg, `"exp"`) && strings.Contains(msg, "not satisfied"))
}
