package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brincapark/reservations-api/internal/service"
	"github.com/brincapark/reservations-api/internal/utils"
)

// AdminHandler covers the dashboard-only operations: exchanging the
// shared secret for a JWT, changing a reservation's status and deleting
// reservations.
type AdminHandler struct {
	Svc             *service.ReservationService
	JWTSecret       string
	TokenTTLMin     int
	AdminSecretHash string
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(svc *service.ReservationService, jwtSecret, adminSecretHash string, tokenTTLMin int) *AdminHandler {
	if svc == nil {
		panic("nil service passed to NewAdminHandler")
	}
	return &AdminHandler{
		Svc:             svc,
		JWTSecret:       jwtSecret,
		TokenTTLMin:     tokenTTLMin,
		AdminSecretHash: adminSecretHash,
	}
}

// Login handles POST /api/admin/login.  The body carries the shared
// admin secret; when it matches the stored bcrypt hash, a short-lived
// HS256 token with role=admin is returned.  Wrong or missing secrets get
// an undifferentiated 401.
func (h *AdminHandler) Login(c echo.Context) error {
	var body struct {
		Secret string `json:"secret"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Secret == "" || !utils.VerifySecret(h.AdminSecretHash, body.Secret) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	tok, err := utils.NewAdminToken(h.JWTSecret, h.TokenTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to issue token"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"token":      tok.Token,
		"expires_at": tok.Exp,
	})
}

// ChangeStatus handles PATCH /api/admin/reservations/:id.  The body
// carries the new status; any known status may replace any other.
func (h *AdminHandler) ChangeStatus(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	res, err := h.Svc.ChangeStatus(c.Request().Context(), id, body.Status)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": res})
}

// Delete handles DELETE /api/admin/reservations/:id and returns the
// removed reservation.
func (h *AdminHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	res, err := h.Svc.Delete(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": res})
}
