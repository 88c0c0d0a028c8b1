package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/brincapark/reservations-api/internal/service"
)

// AnalyticsHandler serves the admin dashboard aggregates.  All routes are
// behind the admin guard; the handler itself only forwards to the
// analytics service and serializes the result.
type AnalyticsHandler struct {
	Svc *service.AnalyticsService
}

// NewAnalyticsHandler constructs an AnalyticsHandler.
func NewAnalyticsHandler(svc *service.AnalyticsService) *AnalyticsHandler {
	if svc == nil {
		panic("nil service passed to NewAnalyticsHandler")
	}
	return &AnalyticsHandler{Svc: svc}
}

// Stats handles GET /api/analytics/stats.
func (h *AnalyticsHandler) Stats(c echo.Context) error {
	stats, err := h.Svc.GetStats(c.Request().Context())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

// Monthly handles GET /api/analytics/monthly: six months of booking
// volume and revenue for the dashboard chart.
func (h *AnalyticsHandler) Monthly(c echo.Context) error {
	trend, err := h.Svc.GetMonthlyTrend(c.Request().Context())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, trend)
}

// TopClients handles GET /api/analytics/top-clients?limit=N (default 10).
func (h *AnalyticsHandler) TopClients(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid limit"})
		}
		limit = n
	}
	clients, err := h.Svc.GetTopClients(c.Request().Context(), limit)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": clients})
}

// Cancellations handles GET /api/analytics/cancellations.
func (h *AnalyticsHandler) Cancellations(c echo.Context) error {
	report, err := h.Svc.GetCancellationBreakdown(c.Request().Context())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, report)
}
