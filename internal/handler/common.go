package handler

import (
	"errors"   // for errors.Is / errors.As comparisons
	"net/http" // HTTP status codes

	"github.com/labstack/echo/v4"

	"github.com/brincapark/reservations-api/internal/repository"
	"github.com/brincapark/reservations-api/internal/service"
)

// serviceError translates an error from the service layer into the HTTP
// response the dashboard expects: 400 for validation failures (with the
// offending field in the message), 409 for a slot conflict, 404 for an
// unknown reservation and 500 for anything infrastructural.
func serviceError(c echo.Context, err error) error {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Error()})
	case errors.Is(err, repository.ErrSlotTaken):
		return c.JSON(http.StatusConflict, echo.Map{"error": "slot already booked"})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
}
