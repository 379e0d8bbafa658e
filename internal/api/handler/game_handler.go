package handler

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/playverse/gamestore/internal/core/domain"
	"github.com/playverse/gamestore/internal/core/service"
)

const gameListPath = "/juegos/"

// GameAdmin is the admin side of the catalog.
type GameAdmin interface {
	List(ctx context.Context) ([]*domain.Game, error)
	Get(ctx context.Context, id string) (*domain.Game, error)
	Create(ctx context.Context, in service.GameInput) (*domain.Game, error)
	Update(ctx context.Context, id string, in service.GameInput) (*domain.Game, error)
	Delete(ctx context.Context, id string) error
}

type GameHandler struct {
	renderer
	games GameAdmin
}

func NewGameHandler(games GameAdmin, flashes Flashes) *GameHandler {
	return &GameHandler{renderer: renderer{flashes: flashes}, games: games}
}

type gameRequest struct {
	Name        string  `form:"nombre" json:"nombre" validate:"required,max=200"`
	Slug        string  `form:"slug" json:"slug" validate:"max=200"`
	Description string  `form:"descripcion" json:"descripcion"`
	Price       float64 `form:"precio" json:"precio" validate:"gt=0"`
	Category    string  `form:"categoria" json:"categoria" validate:"required,oneof=terror accion carreras mundoabierto suspenso"`
	Image       string  `form:"imagen" json:"imagen" validate:"max=500"`
	Stock       int     `form:"stock" json:"stock" validate:"gte=0"`
	// Active follows HTML checkbox semantics: "on", "true" or "1".
	Active string `form:"activo" json:"activo"`
}

func (r gameRequest) input() service.GameInput {
	active := strings.ToLower(strings.TrimSpace(r.Active))
	return service.GameInput{
		Name:        r.Name,
		Slug:        strings.TrimSpace(r.Slug),
		Description: r.Description,
		Price:       r.Price,
		Category:    r.Category,
		Image:       r.Image,
		Stock:       r.Stock,
		Active:      active == "on" || active == "true" || active == "1",
	}
}

// List shows every game, active or not.
//
// @Summary      List games (admin)
// @Tags         admin
// @Produce      json
// @Success      200  {object}  Page
// @Router       /juegos/ [get]
func (h *GameHandler) List(c echo.Context) error {
	games, err := h.games.List(c.Request().Context())
	if err != nil {
		return err
	}
	return h.render(c, "lista_juegos", games)
}

func (h *GameHandler) CreatePage(c echo.Context) error {
	return h.render(c, "form_juego", map[string]any{
		"title":      "Create game",
		"categories": domain.Categories,
	})
}

// Create adds a game to the catalog.
//
// @Summary      Create game
// @Tags         admin
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        nombre       formData  string   true   "Name"
// @Param        precio       formData  number   true   "Price"
// @Param        categoria    formData  string   true   "Category"
// @Param        stock        formData  integer  true   "Stock"
// @Param        descripcion  formData  string   false  "Description"
// @Param        imagen       formData  string   false  "Image path"
// @Param        activo       formData  string   false  "Active checkbox"
// @Success      302
// @Failure      422  {object}  ErrorBody
// @Router       /juegos/crear/ [post]
func (h *GameHandler) Create(c echo.Context) error {
	var req gameRequest
	if err := bindForm(c, &req); err != nil {
		return err
	}
	if _, err := h.games.Create(c.Request().Context(), req.input()); err != nil {
		return err
	}
	return h.redirect(c, gameListPath, domain.FlashSuccess, "Game created.")
}

func (h *GameHandler) EditPage(c echo.Context) error {
	g, err := h.games.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return h.render(c, "form_juego", map[string]any{
		"title":      "Edit game",
		"game":       g,
		"categories": domain.Categories,
	})
}

func (h *GameHandler) Edit(c echo.Context) error {
	var req gameRequest
	if err := bindForm(c, &req); err != nil {
		return err
	}
	if _, err := h.games.Update(c.Request().Context(), c.Param("id"), req.input()); err != nil {
		return err
	}
	return h.redirect(c, gameListPath, domain.FlashSuccess, "Game updated.")
}

func (h *GameHandler) DeletePage(c echo.Context) error {
	g, err := h.games.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return h.render(c, "confirmar_eliminacion", g)
}

func (h *GameHandler) Delete(c echo.Context) error {
	if err := h.games.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return h.redirect(c, gameListPath, domain.FlashSuccess, "Game deleted.")
}
