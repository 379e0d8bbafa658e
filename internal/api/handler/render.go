package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/playverse/gamestore/internal/core/domain"
)

// Flashes queues and drains per-browser flash messages.
type Flashes interface {
	Add(c echo.Context, level, text string)
	Pop(c echo.Context) []domain.Flash
}

// Page is the envelope every page route answers with. Messages holds the
// flash messages queued for this browser since the last rendered page.
type Page struct {
	Page     string         `json:"page"`
	Data     any            `json:"data,omitempty"`
	Messages []domain.Flash `json:"messages"`
}

type renderer struct {
	flashes Flashes
}

func (r renderer) render(c echo.Context, page string, data any) error {
	return r.renderStatus(c, http.StatusOK, page, data)
}

func (r renderer) renderStatus(c echo.Context, status int, page string, data any) error {
	return c.JSON(status, Page{Page: page, Data: data, Messages: r.flashes.Pop(c)})
}

// redirect queues an optional message and answers 302 to target.
func (r renderer) redirect(c echo.Context, target, level, text string) error {
	if text != "" {
		r.flashes.Add(c, level, text)
	}
	return c.Redirect(http.StatusFound, target)
}

// ErrorBody is the JSON error envelope. Fields is set for form validation
// failures and keyed by form field name.
type ErrorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}
