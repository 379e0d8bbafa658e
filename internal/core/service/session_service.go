package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/playverse/gamestore/internal/core/domain"
	"github.com/playverse/gamestore/internal/core/ports"
)

var ErrInvalidSession = errors.New("invalid session")

type sessionClaims struct {
	Username  string `json:"username"`
	Role      string `json:"role"`
	Superuser bool   `json:"superuser,omitempty"`
	jwt.RegisteredClaims
}

// SessionService issues and resolves signed session tokens. Logged-out
// sessions are remembered in a revocation store until they expire.
type SessionService struct {
	secret      []byte
	ttl         time.Duration
	revocations ports.SessionRevocations
	now         func() time.Time
	log         zerolog.Logger
}

func NewSessionService(secret string, ttl time.Duration, revocations ports.SessionRevocations, log zerolog.Logger) *SessionService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionService{
		secret:      []byte(secret),
		ttl:         ttl,
		revocations: revocations,
		now:         time.Now,
		log:         log,
	}
}

// Issue signs a new session for user.
func (s *SessionService) Issue(user *domain.User) (string, *domain.Principal, error) {
	now := s.now()
	p := &domain.Principal{
		SessionID:   uuid.NewString(),
		UserID:      user.ID,
		Username:    user.Username,
		Role:        user.Role,
		IsSuperuser: user.IsSuperuser,
		ExpiresAt:   now.Add(s.ttl).Truncate(time.Second),
	}

	claims := sessionClaims{
		Username:  p.Username,
		Role:      string(p.Role),
		Superuser: p.IsSuperuser,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        p.SessionID,
			Subject:   p.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(p.ExpiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign session: %w", err)
	}
	return signed, p, nil
}

// Resolve verifies token and returns its principal. Expired, tampered or
// revoked tokens yield ErrInvalidSession.
func (s *SessionService) Resolve(ctx context.Context, token string) (*domain.Principal, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidSession
	}

	role := domain.Role(claims.Role)
	if claims.Subject == "" || claims.ID == "" || !role.Valid() {
		return nil, ErrInvalidSession
	}

	revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		s.log.Warn().Err(err).Str("session_id", claims.ID).Msg("revocation check failed, accepting session")
	} else if revoked {
		return nil, ErrInvalidSession
	}

	p := &domain.Principal{
		SessionID:   claims.ID,
		UserID:      claims.Subject,
		Username:    claims.Username,
		Role:        role,
		IsSuperuser: claims.Superuser,
	}
	if claims.ExpiresAt != nil {
		p.ExpiresAt = claims.ExpiresAt.Time
	}
	return p, nil
}

// Revoke ends the session for the rest of its lifetime.
func (s *SessionService) Revoke(ctx context.Context, p *domain.Principal) error {
	ttl := p.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.revocations.Revoke(ctx, p.SessionID, ttl); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	s.log.Info().Str("user_id", p.UserID).Str("session_id", p.SessionID).Msg("session revoked")
	return nil
}

// TTL is the lifetime of newly issued sessions.
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}
