package domain

import "time"

// Principal is the identity carried by a session cookie.
type Principal struct {
	SessionID   string
	UserID      string
	Username    string
	Role        Role
	IsSuperuser bool
	ExpiresAt   time.Time
}

// Flash levels.
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashWarning = "warning"
	FlashInfo    = "info"
)

// Flash is a user-visible message queued for the next rendered page.
type Flash struct {
	Level string `json:"level"`
	Text  string `json:"text"`
}
