package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/playverse/gamestore/internal/core/domain"
	"github.com/playverse/gamestore/internal/core/ports"
)

const flashCookie = "playverse_flash"

// Flashes binds a browser to its queue in the FlashStore through a random
// cookie id. Store failures are logged and never fail the request.
type Flashes struct {
	store  ports.FlashStore
	secure bool
	log    zerolog.Logger
}

func NewFlashes(store ports.FlashStore, secure bool, log zerolog.Logger) *Flashes {
	return &Flashes{store: store, secure: secure, log: log}
}

// Add queues a message for the next page rendered for this browser.
func (f *Flashes) Add(c echo.Context, level, text string) {
	key := f.key(c, true)
	if err := f.store.Push(c.Request().Context(), key, domain.Flash{Level: level, Text: text}); err != nil {
		f.log.Warn().Err(err).Str("path", c.Request().URL.Path).Msg("flash push failed")
	}
}

// Pop returns and clears the queued messages.
func (f *Flashes) Pop(c echo.Context) []domain.Flash {
	key := f.key(c, false)
	if key == "" {
		return []domain.Flash{}
	}
	msgs, err := f.store.Pop(c.Request().Context(), key)
	if err != nil {
		f.log.Warn().Err(err).Str("path", c.Request().URL.Path).Msg("flash pop failed")
		return []domain.Flash{}
	}
	return msgs
}

func (f *Flashes) key(c echo.Context, create bool) string {
	if v, ok := c.Get(flashCookie).(string); ok && v != "" {
		return v
	}
	if ck, err := c.Cookie(flashCookie); err == nil {
		if _, perr := uuid.Parse(ck.Value); perr == nil {
			c.Set(flashCookie, ck.Value)
			return ck.Value
		}
	}
	if !create {
		return ""
	}

	id := uuid.NewString()
	c.SetCookie(&http.Cookie{
		Name:     flashCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   f.secure,
		SameSite: http.SameSiteLaxMode,
	})
	c.Set(flashCookie, id)
	return id
}
