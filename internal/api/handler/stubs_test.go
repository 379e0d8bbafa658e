package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/playverse/gamestore/internal/api/middleware"
	"github.com/playverse/gamestore/internal/core/domain"
	"github.com/playverse/gamestore/internal/core/service"
)

type stubFlashes struct {
	queued []domain.Flash
}

func (f *stubFlashes) Add(_ echo.Context, level, text string) {
	f.queued = append(f.queued, domain.Flash{Level: level, Text: text})
}

func (f *stubFlashes) Pop(echo.Context) []domain.Flash {
	out := f.queued
	f.queued = nil
	if out == nil {
		out = []domain.Flash{}
	}
	return out
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func formRequest(method, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

func withPrincipal(c echo.Context, id string, role domain.Role) {
	c.Set(middleware.PrincipalKey, &domain.Principal{UserID: id, Username: id, Role: role})
}

type stubCredentials struct {
	authenticateFn func(ctx context.Context, identifier, password string) (*domain.User, error)
	registerFn     func(ctx context.Context, in service.RegisterInput) (*domain.User, error)
	users          map[string]*domain.User
}

func (s *stubCredentials) Authenticate(ctx context.Context, identifier, password string) (*domain.User, error) {
	return s.authenticateFn(ctx, identifier, password)
}

func (s *stubCredentials) Register(ctx context.Context, in service.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubCredentials) UserByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

type stubSessionControl struct {
	started []*domain.User
	ended   int
}

func (s *stubSessionControl) Start(c echo.Context, user *domain.User) (*domain.Principal, error) {
	s.started = append(s.started, user)
	p := &domain.Principal{UserID: user.ID, Username: user.Username, Role: user.Role}
	c.Set(middleware.PrincipalKey, p)
	return p, nil
}

func (s *stubSessionControl) End(echo.Context) error {
	s.ended++
	return nil
}

type stubResetRequester struct {
	err     error
	email   string
	baseURL string
}

func (s *stubResetRequester) RequestReset(_ context.Context, email, baseURL string) error {
	s.email, s.baseURL = email, baseURL
	return s.err
}

type stubResetTokens struct {
	validateErr error
	consumeErr  error
	consumed    []string
}

func (s *stubResetTokens) Validate(_ context.Context, token string) (*domain.User, error) {
	if s.validateErr != nil {
		return nil, s.validateErr
	}
	return &domain.User{ID: "u1", Username: "ana"}, nil
}

func (s *stubResetTokens) Consume(_ context.Context, token, newPassword string) error {
	if s.consumeErr != nil {
		return s.consumeErr
	}
	s.consumed = append(s.consumed, token+":"+newPassword)
	return nil
}

type stubCarts struct {
	cart    *domain.Cart
	addErr  error
	removed []string
}

func (s *stubCarts) View(_ context.Context, userID string) (*domain.Cart, error) {
	return s.cart, nil
}

func (s *stubCarts) Add(_ context.Context, userID, gameID string) (*domain.CartItem, error) {
	if s.addErr != nil {
		return nil, s.addErr
	}
	return &domain.CartItem{ID: "i1", GameID: gameID, Name: "Halo 3", Quantity: 1, Price: 20}, nil
}

func (s *stubCarts) UpdateQuantity(_ context.Context, userID, itemID string, quantity int) (*domain.CartItem, error) {
	return &domain.CartItem{ID: itemID, Quantity: quantity}, nil
}

func (s *stubCarts) Remove(_ context.Context, userID, itemID string) error {
	s.removed = append(s.removed, userID+"/"+itemID)
	return nil
}

type stubReservations struct {
	created []string
}

func (s *stubReservations) List(_ context.Context, userID string) ([]*domain.Reservation, error) {
	return []*domain.Reservation{{ID: "r1", UserID: userID, Activity: "Torneo", Status: domain.ReservationPending}}, nil
}

func (s *stubReservations) Create(_ context.Context, userID, activity string, date time.Time) (*domain.Reservation, error) {
	s.created = append(s.created, userID+"/"+activity+"/"+date.Format("2006-01-02"))
	return &domain.Reservation{ID: "r2", UserID: userID, Activity: activity, Date: date}, nil
}

func (s *stubReservations) Get(_ context.Context, id, userID string) (*domain.Reservation, error) {
	if id != "r1" {
		return nil, domain.ErrReservationNotFound
	}
	return &domain.Reservation{ID: id, UserID: userID}, nil
}

func (s *stubReservations) Cancel(_ context.Context, id, userID string) error {
	if id != "r1" {
		return domain.ErrReservationNotFound
	}
	return nil
}
