package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/coresight-research/coreiq/internal/db"
)

// Handler serves the JSON API consumed by the page-rendering layer.
type Handler struct {
	companies  *db.CompanyRepository
	statements *db.StatementRepository
	news       *db.NewsRepository
	earnings   *db.EarningsRepository
	forex      *db.ForexRepository
	log        *zap.Logger
}

// New creates a handler bound to the given repositories.
func New(
	companies *db.CompanyRepository,
	statements *db.StatementRepository,
	news *db.NewsRepository,
	earnings *db.EarningsRepository,
	forex *db.ForexRepository,
	log *zap.Logger,
) *Handler {
	return &Handler{
		companies:  companies,
		statements: statements,
		news:       news,
		earnings:   earnings,
		forex:      forex,
		log:        log,
	}
}

// Health returns application health status
// @Summary Health check
// @Description Returns the health status of the application
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// dataError maps repository errors onto HTTP responses: unknown tickers are
// user-visible 404s, everything else surfaces as a 500.
func (h *Handler) dataError(c echo.Context, err error) error {
	if errors.Is(err, db.ErrCompanyNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": err.Error(),
		})
	}
	h.log.Error("data access failed", zap.String("path", c.Path()), zap.Error(err))
	return c.JSON(http.StatusInternalServerError, map[string]string{
		"error": "internal error",
	})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
}
