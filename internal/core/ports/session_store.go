package ports

import (
	"context"
	"time"

	"github.com/playverse/gamestore/internal/core/domain"
)

// SessionRevocations remembers logged-out session ids until they expire.
type SessionRevocations interface {
	Revoke(ctx context.Context, sessionID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}

// FlashStore queues messages for the next page rendered for a browser.
type FlashStore interface {
	Push(ctx context.Context, key string, msgs ...domain.Flash) error
	// Pop returns and clears the queued messages in insertion order.
	Pop(ctx context.Context, key string) ([]domain.Flash, error)
}

// MailMessage is a rendered outbound email.
type MailMessage struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Mailer hands a message to the outbound mail subsystem.
type Mailer interface {
	Send(ctx context.Context, msg MailMessage) error
}
