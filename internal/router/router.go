package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/brincapark/reservations-api/internal/handler"    // handlers implementing the endpoints
	"github.com/brincapark/reservations-api/internal/middleware" // JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not belong to the API surface.
// Currently it exposes only a health check, which load balancers and
// monitoring systems use to verify that the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterPublic registers the unauthenticated booking endpoints.  The
// rate limiter guards the write path (booking creation and admin login);
// the response cache accelerates the read-mostly pricing and
// availability views.  Both middlewares degrade to passthroughs when
// Redis is unavailable.
func RegisterPublic(e *echo.Echo, r *handler.ReservationHandler, cfg *handler.ConfigHandler, a *handler.AdminHandler, limiter, cache echo.MiddlewareFunc) {
	g := e.Group("/api")
	g.POST("/reservations", r.Create, limiter)
	g.GET("/reservations", r.List)
	g.GET("/reservations/:id", r.Get)
	g.GET("/availability", r.Availability, cache)
	g.GET("/config/prices", cfg.Prices, cache)
	g.POST("/admin/login", a.Login, limiter)
}

// RegisterAdmin registers the dashboard endpoints.  Every route in this
// group requires a valid bearer token with the admin role; the JWTAuth
// middleware validates the token and RequireRole rejects anything that
// is not the admin principal.
func RegisterAdmin(e *echo.Echo, r *handler.ReservationHandler, cfg *handler.ConfigHandler, a *handler.AdminHandler, an *handler.AnalyticsHandler, jwtSecret string) {
	g := e.Group("/api")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("admin"))

	g.GET("/config", cfg.Get)
	g.PUT("/config", cfg.Update)

	g.PUT("/reservations/:id", r.Update)
	g.PATCH("/admin/reservations/:id", a.ChangeStatus)
	g.DELETE("/admin/reservations/:id", a.Delete)

	g.GET("/analytics/stats", an.Stats)
	g.GET("/analytics/monthly", an.Monthly)
	g.GET("/analytics/top-clients", an.TopClients)
	g.GET("/analytics/cancellations", an.Cancellations)
}
