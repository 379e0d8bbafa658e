package handler

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/playverse/gamestore/internal/api/metrics"
	"github.com/playverse/gamestore/internal/core/domain"
)

const (
	resetRequestPath = "/password-reset/"
	resetDonePath    = "/password-reset/done/"

	msgResetSent     = "An email has been sent with instructions to reset your password."
	msgResetInvalid  = "The recovery link is invalid."
	msgResetExpired  = "The recovery link has expired or is invalid."
	msgResetComplete = "Your password has been reset. You can now sign in."
)

// ResetRequester starts the password reset flow for an email address.
type ResetRequester interface {
	RequestReset(ctx context.Context, email, baseURL string) error
}

// ResetTokens validates and consumes password reset tokens.
type ResetTokens interface {
	Validate(ctx context.Context, token string) (*domain.User, error)
	Consume(ctx context.Context, token, newPassword string) error
}

type PasswordResetHandler struct {
	renderer
	requester ResetRequester
	tokens    ResetTokens
	baseURL   string
}

// NewPasswordResetHandler builds the reset handlers. When baseURL is empty,
// links in the mail point at the scheme and host of the incoming request.
func NewPasswordResetHandler(requester ResetRequester, tokens ResetTokens, flashes Flashes, baseURL string) *PasswordResetHandler {
	return &PasswordResetHandler{
		renderer:  renderer{flashes: flashes},
		requester: requester,
		tokens:    tokens,
		baseURL:   baseURL,
	}
}

type resetRequest struct {
	Email string `form:"email" json:"email" validate:"required,email,max=254"`
}

type resetConfirmRequest struct {
	NewPassword1 string `form:"new_password1" json:"new_password1" validate:"required,password"`
	NewPassword2 string `form:"new_password2" json:"new_password2" validate:"required,eqfield=NewPassword1"`
}

func (h *PasswordResetHandler) RequestPage(c echo.Context) error {
	return h.render(c, "password_reset", nil)
}

// Request issues a reset token and mails the link.
//
// @Summary      Request a password reset
// @Tags         password-reset
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        email  formData  string  true  "Account email"
// @Success      302
// @Failure      422  {object}  ErrorBody
// @Router       /password-reset/ [post]
func (h *PasswordResetHandler) Request(c echo.Context) error {
	var req resetRequest
	if err := bindForm(c, &req); err != nil {
		return err
	}

	if err := h.requester.RequestReset(c.Request().Context(), req.Email, h.linkBase(c)); err != nil {
		var fe domain.FieldErrors
		if errors.As(err, &fe) {
			metrics.ResetRequestsTotal.WithLabelValues("unknown_email").Inc()
		} else {
			metrics.ResetRequestsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.ResetRequestsTotal.WithLabelValues("issued").Inc()
	return h.redirect(c, resetDonePath, domain.FlashSuccess, msgResetSent)
}

func (h *PasswordResetHandler) Done(c echo.Context) error {
	return h.render(c, "password_reset_done", nil)
}

// ConfirmPage shows the new password form when the token is usable.
//
// @Summary      Open a password reset link
// @Tags         password-reset
// @Produce      json
// @Param        token  path  string  true  "Reset token"
// @Success      200  {object}  Page
// @Success      302
// @Router       /password-reset/confirm/{token}/ [get]
func (h *PasswordResetHandler) ConfirmPage(c echo.Context) error {
	token := c.Param("token")
	user, err := h.tokens.Validate(c.Request().Context(), token)
	if err != nil {
		return h.rejectToken(c, err)
	}
	return h.render(c, "password_reset_confirm", map[string]string{
		"token":    token,
		"username": user.Username,
	})
}

// Confirm sets the new password and consumes the token.
//
// @Summary      Set a new password
// @Tags         password-reset
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        token          path      string  true  "Reset token"
// @Param        new_password1  formData  string  true  "New password"
// @Param        new_password2  formData  string  true  "New password confirmation"
// @Success      302
// @Failure      422  {object}  ErrorBody
// @Router       /password-reset/confirm/{token}/ [post]
func (h *PasswordResetHandler) Confirm(c echo.Context) error {
	ctx := c.Request().Context()
	token := c.Param("token")

	if _, err := h.tokens.Validate(ctx, token); err != nil {
		return h.rejectToken(c, err)
	}

	var req resetConfirmRequest
	if err := bindForm(c, &req); err != nil {
		metrics.ResetConsumesTotal.WithLabelValues("invalid").Inc()
		return err
	}

	if err := h.tokens.Consume(ctx, token, req.NewPassword1); err != nil {
		return h.rejectToken(c, err)
	}

	metrics.ResetConsumesTotal.WithLabelValues("success").Inc()
	return h.redirect(c, "/login/", domain.FlashSuccess, msgResetComplete)
}

func (h *PasswordResetHandler) Complete(c echo.Context) error {
	return h.render(c, "password_reset_complete", nil)
}

// rejectToken sends token failures back to the request form. Anything else
// goes to the error handler.
func (h *PasswordResetHandler) rejectToken(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrTokenNotFound):
		metrics.ResetConsumesTotal.WithLabelValues("not_found").Inc()
		return h.redirect(c, resetRequestPath, domain.FlashError, msgResetInvalid)
	case errors.Is(err, domain.ErrTokenAlreadyUsed):
		metrics.ResetConsumesTotal.WithLabelValues("already_used").Inc()
		return h.redirect(c, resetRequestPath, domain.FlashError, msgResetExpired)
	case errors.Is(err, domain.ErrTokenExpired):
		metrics.ResetConsumesTotal.WithLabelValues("expired").Inc()
		return h.redirect(c, resetRequestPath, domain.FlashError, msgResetExpired)
	}
	metrics.ResetConsumesTotal.WithLabelValues("error").Inc()
	return err
}

func (h *PasswordResetHandler) linkBase(c echo.Context) string {
	if h.baseURL != "" {
		return h.baseURL
	}
	return c.Scheme() + "://" + c.Request().Host
}
