package session

import (
	"context"
	"fmt"
	"time"

	"fastfast-logistics/apperror"
	"fastfast-logistics/logger"
	"fastfast-logistics/models/user"
	"fastfast-logistics/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	CookieName = "access"
	issuer     = "fastfast-logistics"
	DefaultTTL = 8 * time.Hour
)

// Claims is the payload of an access token. Subject holds the user UUID and
// ID a per-token identifier used for revocation.
type Claims struct {
	UserID uint      `json:"uid"`
	Email  string    `json:"email"`
	Role   user.Role `json:"role"`
	jwt.RegisteredClaims
}

// Manager issues and verifies HS256 access tokens.
type Manager struct {
	secret      []byte
	ttl         time.Duration
	revocations Revocation
	now         func() time.Time
}

func NewManager(secret string, ttl time.Duration, revocations Revocation) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if revocations == nil {
		revocations = NewMemoryRevocation()
	}
	return &Manager{
		secret:      []byte(secret),
		ttl:         ttl,
		revocations: revocations,
		now:         time.Now,
	}
}

// NewManagerFromEnv reads JWT_SECRET, JWT_TTL_HOURS and REDIS_ADDR. Without
// REDIS_ADDR revoked tokens are only tracked in this process.
func NewManagerFromEnv() (*Manager, error) {
	secret := utils.GetEnv("JWT_SECRET", "")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}
	ttl := time.Duration(utils.GetEnvInt("JWT_TTL_HOURS", 8)) * time.Hour

	var revocations Revocation
	if addr := utils.GetEnv("REDIS_ADDR", ""); addr != "" {
		client, err := NewRedisClient(addr)
		if err != nil {
			return nil, err
		}
		revocations = NewRedisRevocation(client)
		logger.Info("Session revocations stored in Redis at " + addr)
	} else {
		logger.Warning("REDIS_ADDR not set, session revocations kept in memory")
		revocations = NewMemoryRevocation()
	}

	return NewManager(secret, ttl, revocations), nil
}

func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a token for u.
func (m *Manager) Issue(u user.User) (string, *Claims, error) {
	issuedAt := m.now()
	claims := &Claims{
		UserID: u.ID,
		Email:  u.Email,
		Role:   u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   u.Uuid,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(m.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token for user %d: %w", u.ID, err)
	}
	return token, claims, nil
}

// Parse verifies signature, expiry and revocation.
func (m *Manager) Parse(ctx context.Context, tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, apperror.Authentication("authorization token missing")
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, apperror.Authentication("session expired, login again")
	}
	if claims.Subject == "" || claims.ID == "" {
		return nil, apperror.Authentication("invalid session token")
	}

	revoked, err := m.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, apperror.Internal("failed to check session", err)
	}
	if revoked {
		return nil, apperror.Authentication("session has been logged out")
	}
	return claims, nil
}

// Revoke blocks the token until it would have expired anyway.
func (m *Manager) Revoke(ctx context.Context, claims *Claims) error {
	if claims == nil || claims.ID == "" {
		return nil
	}
	ttl := time.Minute
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Sub(m.now())
	}
	if ttl <= 0 {
		return nil
	}
	if err := m.revocations.Revoke(ctx, claims.ID, ttl); err != nil {
		return apperror.Internal("failed to revoke session", err)
	}
	return nil
}
