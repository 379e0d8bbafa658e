package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"github.com/rs/zerolog"

	"github.com/playverse/gamestore/internal/core/domain"
	"github.com/playverse/gamestore/internal/core/ports"
)

const resetSubject = "Password recovery - PlayVerse"

var (
	resetText = texttemplate.Must(texttemplate.New("reset.txt").Parse(
		`Hello {{.Username}},

We received a request to reset the password of your PlayVerse account.
Open the link below to choose a new password. It is valid for 24 hours.

{{.Link}}

If you did not ask for this, you can ignore this message.
`))

	resetHTML = htmltemplate.Must(htmltemplate.New("reset.html").Parse(
		`<p>Hello {{.Username}},</p>
<p>We received a request to reset the password of your PlayVerse account.
Open the link below to choose a new password. It is valid for 24 hours.</p>
<p><a href="{{.Link}}">Reset my password</a></p>
<p>If you did not ask for this, you can ignore this message.</p>
`))
)

// ResetTokenIssuer issues password reset tokens.
type ResetTokenIssuer interface {
	Issue(ctx context.Context, user *domain.User) (string, error)
}

// PasswordResetService runs the "forgot my password" request step.
type PasswordResetService struct {
	users  ports.UserRepository
	tokens ResetTokenIssuer
	mailer ports.Mailer
	log    zerolog.Logger
}

func NewPasswordResetService(users ports.UserRepository, tokens ResetTokenIssuer, mailer ports.Mailer, log zerolog.Logger) *PasswordResetService {
	return &PasswordResetService{users: users, tokens: tokens, mailer: mailer, log: log}
}

// RequestReset issues a token for the account registered under email and
// mails the confirmation link built on baseURL. Delivery is attempted once,
// after the token is persisted; a delivery failure is logged, not returned.
func (s *PasswordResetService) RequestReset(ctx context.Context, email, baseURL string) error {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.FieldErrors{"email": "No account exists with this email address."}
		}
		return fmt.Errorf("request reset: %w", err)
	}

	token, err := s.tokens.Issue(ctx, user)
	if err != nil {
		return err
	}

	msg, err := renderResetMessage(user, ResetLink(baseURL, token))
	if err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("render reset email")
		return nil
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("reset email delivery failed")
	}
	return nil
}

// ResetLink is the confirmation URL for token.
func ResetLink(baseURL, token string) string {
	return strings.TrimSuffix(baseURL, "/") + "/password-reset/confirm/" + token + "/"
}

func renderResetMessage(user *domain.User, link string) (ports.MailMessage, error) {
	data := struct {
		Username string
		Link     string
	}{Username: user.Username, Link: link}

	var text, html bytes.Buffer
	if err := resetText.Execute(&text, data); err != nil {
		return ports.MailMessage{}, err
	}
	if err := resetHTML.Execute(&html, data); err != nil {
		return ports.MailMessage{}, err
	}

	return ports.MailMessage{
		To:      user.Email,
		Subject: resetSubject,
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}
