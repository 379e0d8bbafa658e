package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/playverse/gamestore/internal/api/metrics"
	"github.com/playverse/gamestore/internal/core/access"
	"github.com/playverse/gamestore/internal/core/domain"
)

// DecisionKey is the echo context key holding the allow access.Decision.
const DecisionKey = "access_decision"

// Flasher queues flash messages for the next rendered page.
type Flasher interface {
	Add(c echo.Context, level, text string)
}

// Gate runs policy before every handler. A denial queues the decision message
// and redirects; the handler is never invoked.
func Gate(policy *access.Policy, flashes Flasher, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := access.Request{Path: c.Request().URL.Path}
			if p := PrincipalFrom(c); p != nil {
				req.Authenticated = true
				req.Role = p.Role
				req.IsSuperuser = p.IsSuperuser
			}

			d := policy.Decide(req)
			if !d.Allowed {
				metrics.AccessDecisionsTotal.WithLabelValues(d.Stage, "deny").Inc()
				log.Info().
					Str("path", req.Path).
					Str("stage", d.Stage).
					Bool("authenticated", req.Authenticated).
					Msg("access denied")
				if d.Message != "" {
					flashes.Add(c, domain.FlashError, d.Message)
				}
				return c.Redirect(http.StatusFound, d.RedirectTo)
			}

			metrics.AccessDecisionsTotal.WithLabelValues("none", "allow").Inc()
			c.Set(DecisionKey, d)
			return next(c)
		}
	}
}
