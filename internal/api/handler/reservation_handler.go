package handler

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/playverse/gamestore/internal/api/metrics"
	"github.com/playverse/gamestore/internal/core/domain"
)

const reservationListPath = "/reservas/lista/"

// Reservations manages the caller's reservations.
type Reservations interface {
	List(ctx context.Context, userID string) ([]*domain.Reservation, error)
	Create(ctx context.Context, userID, activity string, date time.Time) (*domain.Reservation, error)
	Get(ctx context.Context, id, userID string) (*domain.Reservation, error)
	Cancel(ctx context.Context, id, userID string) error
}

type ReservationHandler struct {
	renderer
	reservations Reservations
}

func NewReservationHandler(reservations Reservations, flashes Flashes) *ReservationHandler {
	return &ReservationHandler{renderer: renderer{flashes: flashes}, reservations: reservations}
}

type reservationRequest struct {
	Activity string `form:"actividad" json:"actividad" validate:"required,max=100"`
	Date     string `form:"fecha" json:"fecha" validate:"required,datetime=2006-01-02"`
}

// List shows the caller's reservations.
//
// @Summary      List my reservations
// @Tags         reservations
// @Produce      json
// @Success      200  {object}  Page
// @Router       /reservas/lista/ [get]
func (h *ReservationHandler) List(c echo.Context) error {
	p, err := currentClient(c)
	if err != nil {
		return err
	}
	list, err := h.reservations.List(c.Request().Context(), p.UserID)
	if err != nil {
		return err
	}
	return h.render(c, "lista_reservas", list)
}

// CreatePage renders the reservation form, pre-filled from ?actividad=.
func (h *ReservationHandler) CreatePage(c echo.Context) error {
	if _, err := currentClient(c); err != nil {
		return err
	}
	return h.render(c, "crear_reserva", map[string]string{"actividad": c.QueryParam("actividad")})
}

// Create books an activity with status "pendiente".
//
// @Summary      Create reservation
// @Tags         reservations
// @Accept       x-www-form-urlencoded
// @Param        actividad  formData  string  true  "Activity"
// @Param        fecha      formData  string  true  "Date (YYYY-MM-DD)"
// @Success      302
// @Failure      422  {object}  ErrorBody
// @Router       /reservas/crear/ [post]
func (h *ReservationHandler) Create(c echo.Context) error {
	p, err := currentClient(c)
	if err != nil {
		return err
	}
	var req reservationRequest
	if err := bindForm(c, &req); err != nil {
		return err
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return domain.FieldErrors{"fecha": "enter a valid date"}
	}
	if _, err := h.reservations.Create(c.Request().Context(), p.UserID, req.Activity, date); err != nil {
		return err
	}
	metrics.ReservationsCreatedTotal.Inc()
	return h.redirect(c, reservationListPath, domain.FlashSuccess, "Reservation created.")
}

func (h *ReservationHandler) CancelPage(c echo.Context) error {
	p, err := currentClient(c)
	if err != nil {
		return err
	}
	r, err := h.reservations.Get(c.Request().Context(), c.Param("id"), p.UserID)
	if err != nil {
		return err
	}
	return h.render(c, "confirmar_cancelacion", r)
}

func (h *ReservationHandler) Cancel(c echo.Context) error {
	p, err := currentClient(c)
	if err != nil {
		return err
	}
	if err := h.reservations.Cancel(c.Request().Context(), c.Param("id"), p.UserID); err != nil {
		return err
	}
	return h.redirect(c, reservationListPath, domain.FlashSuccess, "Reservation cancelled.")
}
