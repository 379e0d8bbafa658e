package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/playverse/gamestore/internal/core/domain"
)

// PrincipalKey is the echo context key holding the resolved *domain.Principal.
const PrincipalKey = "principal"

// SessionIssuer signs, resolves and revokes session tokens.
type SessionIssuer interface {
	Issue(user *domain.User) (string, *domain.Principal, error)
	Resolve(ctx context.Context, token string) (*domain.Principal, error)
	Revoke(ctx context.Context, p *domain.Principal) error
}

// Sessions moves the session token between the cookie and the echo context.
type Sessions struct {
	svc    SessionIssuer
	cookie string
	secure bool
	log    zerolog.Logger
}

func NewSessions(svc SessionIssuer, cookieName string, secure bool, log zerolog.Logger) *Sessions {
	return &Sessions{svc: svc, cookie: cookieName, secure: secure, log: log}
}

// Middleware resolves the session cookie, if any. Requests with a missing,
// tampered, expired or revoked session continue as anonymous.
func (s *Sessions) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ck, err := c.Cookie(s.cookie)
			if err != nil || ck.Value == "" {
				return next(c)
			}

			p, err := s.svc.Resolve(c.Request().Context(), ck.Value)
			if err != nil {
				s.log.Debug().Err(err).Str("path", c.Request().URL.Path).Msg("discarding session cookie")
				s.clear(c)
				return next(c)
			}

			c.Set(PrincipalKey, p)
			return next(c)
		}
	}
}

// Start signs a session for user and sets the cookie.
func (s *Sessions) Start(c echo.Context, user *domain.User) (*domain.Principal, error) {
	token, p, err := s.svc.Issue(user)
	if err != nil {
		return nil, err
	}
	c.SetCookie(&http.Cookie{
		Name:     s.cookie,
		Value:    token,
		Path:     "/",
		Expires:  p.ExpiresAt,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	c.Set(PrincipalKey, p)
	return p, nil
}

// End revokes the current session, if any, and clears the cookie.
func (s *Sessions) End(c echo.Context) error {
	if p := PrincipalFrom(c); p != nil {
		if err := s.svc.Revoke(c.Request().Context(), p); err != nil {
			return err
		}
	}
	s.clear(c)
	c.Set(PrincipalKey, nil)
	return nil
}

func (s *Sessions) clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     s.cookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// PrincipalFrom returns the authenticated caller, or nil for anonymous
// requests.
func PrincipalFrom(c echo.Context) *domain.Principal {
	p, _ := c.Get(PrincipalKey).(*domain.Principal)
	return p
}
