package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/playverse/gamestore/internal/core/domain"
)

func newResetFixture(t *testing.T) (*PasswordResetService, *TokenStore, *stubMailer, *domain.User) {
	t.Helper()
	users := newStubUserRepo()
	user, _ := users.Create(context.Background(), &domain.User{Username: "eve", Email: "eve@x.com", Role: domain.RoleClient})
	store := NewTokenStore(newStubTokenRepo(users), users, stubHasher{}, 0, zerolog.Nop())
	mailer := &stubMailer{}
	return NewPasswordResetService(users, store, mailer, zerolog.Nop()), store, mailer, user
}

func TestPasswordResetService_RequestReset(t *testing.T) {
	svc, store, mailer, user := newResetFixture(t)
	ctx := context.Background()

	if err := svc.RequestReset(ctx, "eve@x.com", "http://shop.test/"); err != nil {
		t.Fatalf("RequestReset failed: %v", err)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected one message, got %d", len(mailer.sent))
	}
	msg := mailer.sent[0]
	if msg.To != user.Email || msg.Subject == "" {
		t.Fatalf("unexpected message header: %+v", msg)
	}

	const prefix = "http://shop.test/password-reset/confirm/"
	i := strings.Index(msg.Text, prefix)
	if i < 0 {
		t.Fatalf("link missing from body: %s", msg.Text)
	}
	token := msg.Text[i+len(prefix) : i+len(prefix)+resetTokenLength]
	if !strings.Contains(msg.HTML, prefix+token+"/") {
		t.Fatalf("html body does not carry the same link")
	}

	owner, err := store.Validate(ctx, token)
	if err != nil || owner.ID != user.ID {
		t.Fatalf("mailed token is not valid: %v", err)
	}
}

func TestPasswordResetService_UnknownEmail(t *testing.T) {
	svc, _, mailer, _ := newResetFixture(t)

	err := svc.RequestReset(context.Background(), "ghost@x.com", "http://shop.test")
	var fe domain.FieldErrors
	if !errors.As(err, &fe) || fe["email"] == "" {
		t.Fatalf("expected inline email error, got %v", err)
	}
	if len(mailer.sent) != 0 {
		t.Fatalf("no message expected for unknown email")
	}
}

func TestPasswordResetService_DeliveryFailureIsNotFatal(t *testing.T) {
	svc, _, mailer, _ := newResetFixture(t)
	mailer.err = errors.New("smtp down")

	if err := svc.RequestReset(context.Background(), "eve@x.com", "http://shop.test"); err != nil {
		t.Fatalf("delivery failure must not fail the request, got %v", err)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected exactly one delivery attempt, got %d", len(mailer.sent))
	}
}

func TestResetLink(t *testing.T) {
	if got := ResetLink("http://a.test/", "tok"); got != "http://a.test/password-reset/confirm/tok/" {
		t.Fatalf("unexpected link %s", got)
	}
}
