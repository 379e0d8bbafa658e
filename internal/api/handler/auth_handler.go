package handler

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/playverse/gamestore/internal/api/metrics"
	"github.com/playverse/gamestore/internal/core/domain"
	"github.com/playverse/gamestore/internal/core/service"
)

// Credentials authenticates and registers users.
type Credentials interface {
	Authenticate(ctx context.Context, identifier, password string) (*domain.User, error)
	Register(ctx context.Context, in service.RegisterInput) (*domain.User, error)
	UserByID(ctx context.Context, id string) (*domain.User, error)
}

// SessionControl starts and ends browser sessions.
type SessionControl interface {
	Start(c echo.Context, user *domain.User) (*domain.Principal, error)
	End(c echo.Context) error
}

type AuthHandler struct {
	renderer
	credentials Credentials
	sessions    SessionControl
}

func NewAuthHandler(credentials Credentials, sessions SessionControl, flashes Flashes) *AuthHandler {
	return &AuthHandler{renderer: renderer{flashes: flashes}, credentials: credentials, sessions: sessions}
}

type loginRequest struct {
	Email    string `form:"email" json:"email" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
}

type registerRequest struct {
	Username  string `form:"username" json:"username" validate:"required,max=150"`
	Email     string `form:"email" json:"email" validate:"required,email,max=254"`
	Birthdate string `form:"fecha_nacimiento" json:"fecha_nacimiento" validate:"required,datetime=2006-01-02"`
	Password1 string `form:"password1" json:"password1" validate:"required,min=8"`
	Password2 string `form:"password2" json:"password2" validate:"required,eqfield=Password1"`
	Address   string `form:"direccion" json:"direccion" validate:"max=255"`
	Phone     string `form:"telefono" json:"telefono" validate:"max=20"`
}

func (h *AuthHandler) LoginPage(c echo.Context) error {
	return h.render(c, "login", nil)
}

// Login authenticates by email (or username) and starts a session.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        email     formData  string  true  "Email or username"
// @Param        password  formData  string  true  "Password"
// @Success      302
// @Failure      401  {object}  ErrorBody
// @Failure      422  {object}  ErrorBody
// @Router       /login/ [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindForm(c, &req); err != nil {
		return err
	}

	user, err := h.credentials.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return err
	}
	if user == nil {
		metrics.LoginsTotal.WithLabelValues("invalid").Inc()
		return domain.ErrInvalidCredentials
	}

	if _, err := h.sessions.Start(c, user); err != nil {
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return h.redirect(c, "/", "", "")
}

func (h *AuthHandler) RegisterPage(c echo.Context) error {
	return h.render(c, "registro", nil)
}

// Register creates a client account and signs it in.
//
// @Summary      Register
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username          formData  string  true   "Username"
// @Param        email             formData  string  true   "Email"
// @Param        fecha_nacimiento  formData  string  true   "Birthdate (YYYY-MM-DD)"
// @Param        password1         formData  string  true   "Password"
// @Param        password2         formData  string  true   "Password confirmation"
// @Param        direccion         formData  string  false  "Address"
// @Param        telefono          formData  string  false  "Phone"
// @Success      302
// @Failure      422  {object}  ErrorBody
// @Router       /registro/ [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindForm(c, &req); err != nil {
		return err
	}

	birthdate, err := time.Parse("2006-01-02", req.Birthdate)
	if err != nil {
		return domain.FieldErrors{"fecha_nacimiento": "enter a valid date"}
	}

	user, err := h.credentials.Register(c.Request().Context(), service.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password1,
		Birthdate: &birthdate,
		Address:   req.Address,
		Phone:     req.Phone,
	})
	if err != nil {
		return err
	}
	metrics.RegistrationsTotal.Inc()

	if _, err := h.sessions.Start(c, user); err != nil {
		return err
	}
	return h.redirect(c, "/", domain.FlashSuccess, "Registration successful. Welcome to PlayVerse!")
}

// Logout ends the session and returns to the home page.
//
// @Summary      Sign out
// @Tags         auth
// @Success      302
// @Router       /logout/ [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.sessions.End(c); err != nil {
		return err
	}
	return h.redirect(c, "/", "", "")
}

// Profile shows the signed-in user.
//
// @Summary      Current user profile
// @Tags         auth
// @Produce      json
// @Success      200  {object}  Page
// @Router       /perfil/ [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	p, err := currentUser(c)
	if err != nil {
		return err
	}
	user, err := h.credentials.UserByID(c.Request().Context(), p.UserID)
	if err != nil {
		return err
	}
	return h.render(c, "perfil", user)
}
