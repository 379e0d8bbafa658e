package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/rs/zerolog"

	"github.com/playverse/gamestore/internal/core/domain"
	"github.com/playverse/gamestore/internal/core/ports"
)

const (
	resetTokenLength   = 50
	resetTokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// PasswordHasher turns a plaintext password into its stored form.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

// TokenStore manages the password reset token lifecycle.
type TokenStore struct {
	tokens ports.ResetTokenRepository
	users  ports.UserRepository
	hasher PasswordHasher
	ttl    time.Duration
	now    func() time.Time
	log    zerolog.Logger
}

func NewTokenStore(tokens ports.ResetTokenRepository, users ports.UserRepository, hasher PasswordHasher, ttl time.Duration, log zerolog.Logger) *TokenStore {
	if ttl <= 0 {
		ttl = domain.ResetTokenTTL
	}
	return &TokenStore{
		tokens: tokens,
		users:  users,
		hasher: hasher,
		ttl:    ttl,
		now:    func() time.Time { return time.Now().UTC() },
		log:    log,
	}
}

// Issue replaces every unconsumed token of user with a fresh one and returns
// its plaintext. Only the digest is stored.
func (s *TokenStore) Issue(ctx context.Context, user *domain.User) (string, error) {
	token, err := generateResetToken()
	if err != nil {
		return "", fmt.Errorf("issue reset token: %w", err)
	}

	rec := &domain.ResetToken{
		UserID:    user.ID,
		TokenHash: hashResetToken(token),
		CreatedAt: s.now(),
	}
	if err := s.tokens.Replace(ctx, rec); err != nil {
		return "", fmt.Errorf("issue reset token: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("reset token issued")
	return token, nil
}

// Validate returns the owner of a usable token. It has no side effects.
func (s *TokenStore) Validate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrTokenNotFound
	}

	rec, err := s.tokens.FindByHash(ctx, hashResetToken(token))
	if err != nil {
		return nil, err
	}
	if err := rec.Check(s.now(), s.ttl); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, rec.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, fmt.Errorf("validate reset token: %w", err)
	}
	return user, nil
}

// Consume re-validates token, then sets the owner's password and marks the
// token consumed in one step. Of two concurrent consumers of the same token
// only one succeeds; the other gets ErrTokenAlreadyUsed.
func (s *TokenStore) Consume(ctx context.Context, token, newPassword string) error {
	user, err := s.Validate(ctx, token)
	if err != nil {
		return err
	}

	hash, err := s.hasher.HashPassword(newPassword)
	if err != nil {
		return err
	}

	now := s.now()
	if err := s.tokens.ConsumeAndSetPassword(ctx, hashResetToken(token), hash, now.Add(-s.ttl), now); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("reset token consume rejected")
		return err
	}

	s.log.Info().Str("user_id", user.ID).Msg("password reset completed")
	return nil
}

// generateResetToken draws resetTokenLength symbols uniformly from
// resetTokenAlphabet using crypto/rand.
func generateResetToken() (string, error) {
	max := big.NewInt(int64(len(resetTokenAlphabet)))
	b := make([]byte, resetTokenLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = resetTokenAlphabet[n.Int64()]
	}
	return string(b), nil
}

func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
