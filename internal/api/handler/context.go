package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/playverse/gamestore/internal/api/middleware"
	"github.com/playverse/gamestore/internal/core/domain"
)

// currentUser returns the caller's principal. The gate already sends
// anonymous callers to the login page; handlers still refuse to run without
// an identity.
func currentUser(c echo.Context) (*domain.Principal, error) {
	p := middleware.PrincipalFrom(c)
	if p == nil {
		return nil, domain.ErrPermissionDenied
	}
	return p, nil
}

// currentClient is currentUser restricted to the client role.
func currentClient(c echo.Context) (*domain.Principal, error) {
	p, err := currentUser(c)
	if err != nil {
		return nil, err
	}
	if p.Role != domain.RoleClient {
		return nil, domain.ErrPermissionDenied
	}
	return p, nil
}

// bindForm binds and validates a submitted form.
func bindForm(c echo.Context, form any) error {
	if err := c.Bind(form); err != nil {
		return domain.FieldErrors{"__all__": "invalid form submission"}
	}
	return c.Validate(form)
}
