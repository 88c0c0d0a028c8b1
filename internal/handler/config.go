package handler

import (
	"math"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brincapark/reservations-api/internal/model"
	"github.com/brincapark/reservations-api/internal/service"
)

// ConfigHandler serves the pricing configuration singleton and the
// derived converted-price view.  Updates are validated here, before the
// store is touched, so the store is never called with invalid data.
type ConfigHandler struct {
	Store service.ConfigStore
}

// NewConfigHandler constructs a ConfigHandler.
func NewConfigHandler(store service.ConfigStore) *ConfigHandler {
	if store == nil {
		panic("nil store passed to NewConfigHandler")
	}
	return &ConfigHandler{Store: store}
}

// Get handles GET /api/config.  The singleton is created lazily with
// defaults on first access, so this never 404s.
func (h *ConfigHandler) Get(c echo.Context) error {
	cfg, err := h.Store.Get(c.Request().Context())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, cfg)
}

// Update handles PUT /api/config (admin only).  The body is a partial
// configuration: only supplied top-level fields change, and a supplied
// tickets or packages object replaces the stored one wholesale.  Every
// supplied value is validated before the store is called.
func (h *ConfigHandler) Update(c echo.Context) error {
	var upd model.ConfigUpdate
	if err := c.Bind(&upd); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := validateConfigUpdate(upd); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	cfg, err := h.Store.Update(c.Request().Context(), upd)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, cfg)
}

// Prices handles GET /api/config/prices.  It returns every ticket and
// package price in USD, in BS and in the active display currency.
func (h *ConfigHandler) Prices(c echo.Context) error {
	cfg, err := h.Store.Get(c.Request().Context())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, service.BuildPriceTable(cfg))
}

// validateConfigUpdate returns an error message for the first invalid
// field of a partial configuration update, or "" when everything checks
// out.  Prices and the exchange rate must be non-negative finite numbers;
// the currency must be one of the two supported codes.
func validateConfigUpdate(upd model.ConfigUpdate) string {
	if upd.Currency != nil && !model.ValidCurrency(*upd.Currency) {
		return "currency: must be USD or BS"
	}
	if upd.ExchangeRate != nil && !validPrice(*upd.ExchangeRate) {
		return "exchangeRate: must be a non-negative number"
	}
	if t := upd.Tickets; t != nil {
		for _, v := range []float64{t.Min15, t.Min30, t.Min60, t.FullDay, t.Combo} {
			if !validPrice(v) {
				return "tickets: prices must be non-negative numbers"
			}
		}
	}
	if p := upd.Packages; p != nil {
		for _, pair := range []model.PackagePrice{p.Mini, p.Medium, p.Full} {
			if !validPrice(pair.Weekday) || !validPrice(pair.Weekend) {
				return "packages: prices must be non-negative numbers"
			}
		}
	}
	return ""
}

func validPrice(v float64) bool {
	return v >= 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}
