package ports

import (
	"context"
	"time"

	"github.com/playverse/gamestore/internal/core/domain"
)

// ResetTokenRepository persists password reset tokens by their SHA-256 digest.
type ResetTokenRepository interface {
	// Replace deletes every unconsumed token of token.UserID and inserts token,
	// as one transaction.
	Replace(ctx context.Context, token *domain.ResetToken) error
	FindByHash(ctx context.Context, tokenHash string) (*domain.ResetToken, error)
	// ConsumeAndSetPassword marks the token consumed and stores passwordHash
	// on its owner in one atomic step. The token is only flipped while it is
	// unconsumed and was created after notBefore; otherwise the reason is
	// returned (ErrTokenNotFound, ErrTokenAlreadyUsed or ErrTokenExpired).
	ConsumeAndSetPassword(ctx context.Context, tokenHash, passwordHash string, notBefore, now time.Time) error
}
