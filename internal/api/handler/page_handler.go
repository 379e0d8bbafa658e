package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/playverse/gamestore/internal/core/domain"
	"github.com/playverse/gamestore/internal/core/service"
)

// Catalog serves the public game pages.
type Catalog interface {
	Catalog(ctx context.Context, category domain.Category) ([]*domain.Game, error)
	Detail(ctx context.Context, slug string) (*domain.Game, error)
}

// Dashboard summarises the store for administrators.
type Dashboard interface {
	Summary(ctx context.Context) (*service.DashboardSummary, error)
}

// PageHandler serves the informational pages, the category listings, game
// detail pages and the administration dashboard.
type PageHandler struct {
	renderer
	catalog   Catalog
	dashboard Dashboard
}

func NewPageHandler(catalog Catalog, dashboard Dashboard, flashes Flashes) *PageHandler {
	return &PageHandler{renderer: renderer{flashes: flashes}, catalog: catalog, dashboard: dashboard}
}

func (h *PageHandler) Home(c echo.Context) error {
	return h.render(c, "inicio", map[string]any{"categories": domain.Categories})
}

func (h *PageHandler) Activities(c echo.Context) error {
	return h.render(c, "actividades", nil)
}

func (h *PageHandler) Offers(c echo.Context) error {
	return h.render(c, "ofertas", nil)
}

func (h *PageHandler) Reservations(c echo.Context) error {
	return h.render(c, "reservas", nil)
}

// Administration renders the admin dashboard.
//
// @Summary      Administration dashboard
// @Tags         admin
// @Produce      json
// @Success      200  {object}  Page
// @Router       /administracion/ [get]
func (h *PageHandler) Administration(c echo.Context) error {
	sum, err := h.dashboard.Summary(c.Request().Context())
	if err != nil {
		return err
	}
	return h.render(c, "administracion", sum)
}

// Category lists the active games of one category.
func (h *PageHandler) Category(category domain.Category) echo.HandlerFunc {
	return func(c echo.Context) error {
		games, err := h.catalog.Catalog(c.Request().Context(), category)
		if err != nil {
			return err
		}
		return h.render(c, string(category), map[string]any{
			"category": category,
			"games":    games,
		})
	}
}

// GameDetail renders an active game by slug.
//
// @Summary      Game detail
// @Tags         catalog
// @Produce      json
// @Param        slug  path  string  true  "Game slug"
// @Success      200  {object}  Page
// @Failure      404  {object}  ErrorBody
// @Router       /{slug}/ [get]
func (h *PageHandler) GameDetail(c echo.Context) error {
	g, err := h.catalog.Detail(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return h.render(c, "juego", g)
}
