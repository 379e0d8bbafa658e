package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionRevocations records logged-out session ids until the session would
// have expired anyway.
// Key format: session:revoked:<session id>
type SessionRevocations struct {
	client *redis.Client
}

func NewSessionRevocations(client *redis.Client) *SessionRevocations {
	return &SessionRevocations{client: client}
}

// Revoke marks sessionID as logged out for ttl.
func (s *SessionRevocations) Revoke(ctx context.Context, sessionID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, s.key(sessionID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

// IsRevoked reports whether sessionID was logged out.
func (s *SessionRevocations) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(sessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

func (s *SessionRevocations) key(id string) string {
	return "session:revoked:" + id
}
