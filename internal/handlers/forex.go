package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// GetForexRate returns the display conversion rate for a currency pair,
// optionally as of a date. Missing pairs resolve to the identity rate.
func (h *Handler) GetForexRate(c echo.Context) error {
	from := c.QueryParam("from")
	to := c.QueryParam("to")
	if from == "" || to == "" {
		return badRequest(c, "from and to currencies are required")
	}

	var asOf *time.Time
	if s := c.QueryParam("date"); s != "" {
		d, err := time.Parse(dateLayout, s)
		if err != nil {
			return badRequest(c, "date must be YYYY-MM-DD")
		}
		asOf = &d
	}

	rate, err := h.forex.GetRate(c.Request().Context(), from, to, asOf)
	if err != nil {
		return h.dataError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"from": from,
		"to":   to,
		"rate": rate,
	})
}

// ListCurrencies returns the currencies available for conversion.
func (h *Handler) ListCurrencies(c echo.Context) error {
	currencies, err := h.forex.ListCurrencies(c.Request().Context())
	if err != nil {
		return h.dataError(c, err)
	}
	return c.JSON(http.StatusOK, currencies)
}
