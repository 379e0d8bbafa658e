package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/playverse/gamestore/internal/api/metrics"
	"github.com/playverse/gamestore/internal/core/domain"
)

const cartPath = "/carrito/"

// Carts manages the caller's cart. Every operation is scoped to userID.
type Carts interface {
	View(ctx context.Context, userID string) (*domain.Cart, error)
	Add(ctx context.Context, userID, gameID string) (*domain.CartItem, error)
	UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) (*domain.CartItem, error)
	Remove(ctx context.Context, userID, itemID string) error
}

type CartHandler struct {
	renderer
	carts Carts
}

func NewCartHandler(carts Carts, flashes Flashes) *CartHandler {
	return &CartHandler{renderer: renderer{flashes: flashes}, carts: carts}
}

type cartView struct {
	Items []domain.CartItem `json:"items"`
	Total float64           `json:"total"`
}

type cartQuantityRequest struct {
	Quantity int `form:"cantidad" json:"cantidad" validate:"gte=1"`
}

// View shows the cart and its total.
//
// @Summary      View cart
// @Tags         cart
// @Produce      json
// @Success      200  {object}  Page
// @Router       /carrito/ [get]
func (h *CartHandler) View(c echo.Context) error {
	p, err := currentClient(c)
	if err != nil {
		return err
	}
	cart, err := h.carts.View(c.Request().Context(), p.UserID)
	if err != nil {
		return err
	}
	items := cart.Items
	if items == nil {
		items = []domain.CartItem{}
	}
	return h.render(c, "carrito", cartView{Items: items, Total: cart.Total()})
}

// Add puts a game in the cart, or bumps its quantity.
//
// @Summary      Add to cart
// @Tags         cart
// @Param        game_id  path  string  true  "Game id"
// @Success      302
// @Failure      404  {object}  ErrorBody
// @Router       /carrito/agregar/{game_id}/ [post]
func (h *CartHandler) Add(c echo.Context) error {
	p, err := currentClient(c)
	if err != nil {
		return err
	}
	item, err := h.carts.Add(c.Request().Context(), p.UserID, c.Param("game_id"))
	if err != nil {
		return err
	}
	metrics.CartItemsAddedTotal.Inc()
	return h.redirect(c, cartPath, domain.FlashSuccess, item.Name+" added to cart.")
}

func (h *CartHandler) Update(c echo.Context) error {
	p, err := currentClient(c)
	if err != nil {
		return err
	}
	var req cartQuantityRequest
	if err := bindForm(c, &req); err != nil {
		return err
	}
	if _, err := h.carts.UpdateQuantity(c.Request().Context(), p.UserID, c.Param("item_id"), req.Quantity); err != nil {
		return err
	}
	return h.redirect(c, cartPath, domain.FlashSuccess, "Cart updated.")
}

func (h *CartHandler) Remove(c echo.Context) error {
	p, err := currentClient(c)
	if err != nil {
		return err
	}
	if err := h.carts.Remove(c.Request().Context(), p.UserID, c.Param("item_id")); err != nil {
		return err
	}
	return h.redirect(c, cartPath, domain.FlashSuccess, "Item removed from cart.")
}
