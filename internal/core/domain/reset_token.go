package domain

import "time"

// ResetTokenTTL is how long a password reset token stays usable.
const ResetTokenTTL = 24 * time.Hour

// ResetToken is a single-use credential proving control of an email address.
// Only the SHA-256 digest of the token is persisted.
type ResetToken struct {
	ID         string
	UserID     string
	TokenHash  string
	CreatedAt  time.Time
	Consumed   bool
	ConsumedAt *time.Time
}

// Check reports why the token cannot be used at now, or nil if it can.
func (t *ResetToken) Check(now time.Time, ttl time.Duration) error {
	if t.Consumed {
		return ErrTokenAlreadyUsed
	}
	if now.Sub(t.CreatedAt) >= ttl {
		return ErrTokenExpired
	}
	return nil
}
