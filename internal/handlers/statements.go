package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/coresight-research/coreiq/internal/models"
)

const dateLayout = "2006-01-02"

// GetStatement returns the normalized statement matrix for a ticker. The
// statement type is one of income, balance, cashflow. Missing start/end
// default to the ticker's full available fiscal range.
func (h *Handler) GetStatement(c echo.Context) error {
	ctx := c.Request().Context()
	ticker := c.Param("ticker")

	start, end, err := parseRangeParams(c)
	if err != nil {
		return badRequest(c, "start/end must be YYYY-MM-DD")
	}
	if start.IsZero() || end.IsZero() {
		start, end, err = h.fillRange(c, ticker, start, end)
		if err != nil {
			return h.dataError(c, err)
		}
	}

	var data *models.StatementData
	switch c.Param("type") {
	case "income":
		data, err = h.statements.GetIncomeStatement(ctx, ticker, start, end)
	case "balance":
		data, err = h.statements.GetBalanceSheet(ctx, ticker, start, end)
	case "cashflow":
		data, err = h.statements.GetCashFlow(ctx, ticker, start, end)
	default:
		return badRequest(c, "unknown statement type: "+c.Param("type"))
	}
	if err != nil {
		return h.dataError(c, err)
	}
	return c.JSON(http.StatusOK, data)
}

// GetAvailableDates returns the distinct annual fiscal dates for a ticker.
func (h *Handler) GetAvailableDates(c echo.Context) error {
	dates, err := h.statements.GetAvailableDates(c.Request().Context(), c.Param("ticker"))
	if err != nil {
		return h.dataError(c, err)
	}
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.Format(dateLayout))
	}
	return c.JSON(http.StatusOK, out)
}

// GetReportedCurrency returns the reporting currency for one fiscal period,
// defaulting to USD.
func (h *Handler) GetReportedCurrency(c echo.Context) error {
	fiscalDate, err := time.Parse(dateLayout, c.QueryParam("date"))
	if err != nil {
		return badRequest(c, "date must be YYYY-MM-DD")
	}
	currency, err := h.statements.GetReportedCurrency(c.Request().Context(), c.Param("ticker"), fiscalDate)
	if err != nil {
		return h.dataError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"currency": currency})
}

func parseRangeParams(c echo.Context) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error
	if s := c.QueryParam("start"); s != "" {
		if start, err = time.Parse(dateLayout, s); err != nil {
			return start, end, err
		}
	}
	if s := c.QueryParam("end"); s != "" {
		if end, err = time.Parse(dateLayout, s); err != nil {
			return start, end, err
		}
	}
	return start, end, nil
}

// fillRange defaults missing bounds to the ticker's available fiscal range. A
// ticker with no rows gets a degenerate range that yields an empty aggregate.
func (h *Handler) fillRange(c echo.Context, ticker string, start, end time.Time) (time.Time, time.Time, error) {
	minDate, maxDate, err := h.statements.GetDateRange(c.Request().Context(), ticker)
	if err != nil {
		return start, end, err
	}
	if start.IsZero() {
		if minDate != nil {
			start = *minDate
		} else {
			start = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)
		}
	}
	if end.IsZero() {
		if maxDate != nil {
			end = *maxDate
		} else {
			end = time.Now().UTC()
		}
	}
	return start, end, nil
}
