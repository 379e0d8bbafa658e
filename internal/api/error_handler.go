package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/playverse/gamestore/internal/api/handler"
	"github.com/playverse/gamestore/internal/core/domain"
)

const msgPermissionDenied = "You do not have permission to perform this action."

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Renders form validation failures as 422 with per-field messages.
//   - Turns permission denials into a flash message and a redirect home.
//   - Maps the remaining domain errors to their HTTP status codes.
//   - Logs unexpected errors without leaking details to the client.
func NewHTTPErrorHandler(flashes handler.Flashes, log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if errors.Is(err, domain.ErrPermissionDenied) {
			log.Info().Str("path", c.Request().URL.Path).Msg("permission denied")
			flashes.Add(c, domain.FlashError, msgPermissionDenied)
			_ = c.Redirect(http.StatusFound, "/")
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, handler.ErrorBody) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, handler.ErrorBody{Error: fmt.Sprintf("%v", he.Message)}
	}

	var fe domain.FieldErrors
	if errors.As(err, &fe) {
		return http.StatusUnprocessableEntity, handler.ErrorBody{Error: "validation failed", Fields: fe}
	}

	switch {
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusUnprocessableEntity, handler.ErrorBody{
			Error:  "validation failed",
			Fields: map[string]string{"email": "This email address is already registered."},
		}
	case errors.Is(err, domain.ErrDuplicateUsername):
		return http.StatusUnprocessableEntity, handler.ErrorBody{
			Error:  "validation failed",
			Fields: map[string]string{"username": "A user with that username already exists."},
		}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, handler.ErrorBody{Error: "invalid email or password"}
	case errors.Is(err, domain.ErrTokenNotFound), errors.Is(err, domain.ErrTokenExpired):
		return http.StatusBadRequest, handler.ErrorBody{Error: "invalid or expired reset link"}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, handler.ErrorBody{Error: err.Error()}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Request().URL.Path).
		Msg("unhandled error")

	return http.StatusInternalServerError, handler.ErrorBody{Error: "internal server error"}
}
