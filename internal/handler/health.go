package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health answers liveness probes.  It deliberately checks nothing
// downstream: the API keeps serving bookings even when Redis or the
// broker are away, so only the process itself is reported.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
