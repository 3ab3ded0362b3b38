package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ListCompanies returns the selectable companies, ordered by display name.
func (h *Handler) ListCompanies(c echo.Context) error {
	companies, err := h.companies.ListCompanies(c.Request().Context())
	if err != nil {
		return h.dataError(c, err)
	}
	return c.JSON(http.StatusOK, companies)
}

// GetCompany resolves one ticker to its display identity.
func (h *Handler) GetCompany(c echo.Context) error {
	company, err := h.companies.GetByTicker(c.Request().Context(), c.Param("ticker"))
	if err != nil {
		return h.dataError(c, err)
	}
	return c.JSON(http.StatusOK, company)
}

// ListSectors returns the distinct company sectors.
func (h *Handler) ListSectors(c echo.Context) error {
	sectors, err := h.companies.ListSectors(c.Request().Context())
	if err != nil {
		return h.dataError(c, err)
	}
	return c.JSON(http.StatusOK, sectors)
}
