package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brincapark/reservations-api/internal/model"
	"github.com/brincapark/reservations-api/internal/service"
)

// ReservationHandler exposes the public booking endpoints and the admin
// edit endpoint.  Validation and the slot-uniqueness invariant live in
// the service; the handler binds JSON, maps errors to status codes and
// serializes results.
type ReservationHandler struct {
	Svc *service.ReservationService
}

// NewReservationHandler constructs a ReservationHandler.
func NewReservationHandler(svc *service.ReservationService) *ReservationHandler {
	if svc == nil {
		panic("nil service passed to NewReservationHandler")
	}
	return &ReservationHandler{Svc: svc}
}

// Create handles POST /api/reservations.  It accepts a public booking
// request and returns the created reservation with 201.  A malformed
// field yields 400 naming the field; an occupied slot yields 409.
func (h *ReservationHandler) Create(c echo.Context) error {
	var body struct {
		CustomerName   string `json:"customerName"`
		Email          string `json:"email"`
		Phone          string `json:"phone"`
		Package        string `json:"package"`
		ServiceDate    string `json:"serviceDate"`
		TimeSlot       string `json:"timeSlot"`
		Park           string `json:"park"`
		LocationRegion string `json:"locationRegion"`
		EventType      string `json:"eventType"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	res := &model.Reservation{
		CustomerName:   body.CustomerName,
		Email:          body.Email,
		Phone:          body.Phone,
		Package:        body.Package,
		ServiceDate:    body.ServiceDate,
		TimeSlot:       body.TimeSlot,
		Park:           body.Park,
		LocationRegion: body.LocationRegion,
		EventType:      body.EventType,
	}
	created, err := h.Svc.Create(c.Request().Context(), res)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// List handles GET /api/reservations.  It returns all reservations,
// newest first.
func (h *ReservationHandler) List(c echo.Context) error {
	items, err := h.Svc.GetAll(c.Request().Context())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /api/reservations/:id.
func (h *ReservationHandler) Get(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	res, err := h.Svc.GetByID(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": res})
}

// Update handles PUT /api/reservations/:id (admin only).  It edits the
// editable fields of a reservation; the status field is not part of the
// payload and cannot be changed here.  Moving the reservation onto a slot
// occupied by a different reservation yields 409; saving it back onto its
// own slot succeeds.
func (h *ReservationHandler) Update(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var upd model.ReservationUpdate
	if err := c.Bind(&upd); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	res, err := h.Svc.Update(c.Request().Context(), id, upd)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": res})
}

// Availability handles GET /api/availability?date=YYYY-MM-DD&park=NAME.
// It returns the time slots already booked for the date and park so the
// booking form can disable them.
func (h *ReservationHandler) Availability(c echo.Context) error {
	date := c.QueryParam("date")
	park := c.QueryParam("park")
	slots, err := h.Svc.OccupiedSlots(c.Request().Context(), date, park)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"date":     date,
		"park":     park,
		"occupied": slots,
	})
}
