package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/svuportal/portal-backend/internal/config"
	"github.com/svuportal/portal-backend/internal/model"
	"github.com/svuportal/portal-backend/internal/repository"
)

// Common auth errors.
var (
	// ErrInvalidCredentials is deliberately opaque: it never reveals
	// which of email, password or role failed to match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrLoginInFlight      = errors.New("another login attempt is already in progress")
)

// Claims extends JWT standard claims with the portal identity fields the
// middleware chain needs. Subject carries the account ID.
type Claims struct {
	jwt.RegisteredClaims
	Role model.Role `json:"role"`
	Name string     `json:"name"`
}

// AuthService is the mock authenticator: it validates login attempts
// against the static credential table and issues JWTs. There is no real
// identity provider behind it.
type AuthService struct {
	cfg      *config.Config
	creds    *repository.CredentialRepository
	log      zerolog.Logger
	inFlight atomic.Bool
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, creds *repository.CredentialRepository, log zerolog.Logger) *AuthService {
	return &AuthService{
		cfg:   cfg,
		creds: creds,
		log:   log.With().Str("component", "auth_service").Logger(),
	}
}

// Authenticate resolves a login attempt. It matches email, password and
// role by exact, case-sensitive equality against exactly one credential
// entry and returns the identity with no password attached.
//
// The configured LoginDelay is applied first to model the backend
// round-trip the SPA expects; the wait honors ctx cancellation. While one
// attempt is pending, any concurrent attempt fails with ErrLoginInFlight.
func (s *AuthService) Authenticate(ctx context.Context, email, password string, role model.Role) (*model.Identity, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, ErrLoginInFlight
	}
	defer s.inFlight.Store(false)

	if s.cfg.LoginDelay > 0 {
		timer := time.NewTimer(s.cfg.LoginDelay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	for _, cred := range s.creds.All(ctx) {
		if cred.Email == email && cred.Password == password && cred.Role == role {
			identity := cred.Identity
			s.log.Info().Str("email", email).Str("role", string(role)).Msg("Login succeeded")
			return &identity, nil
		}
	}

	s.log.Warn().Str("email", email).Msg("Login rejected")
	return nil, ErrInvalidCredentials
}

// GenerateToken creates a signed JWT for an authenticated identity.
func (s *AuthService) GenerateToken(identity *model.Identity) (string, error) {
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   identity.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
		},
		Role: identity.Role,
		Name: identity.Name,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and validates a JWT, returning the claims.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}
