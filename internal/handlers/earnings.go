package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/coresight-research/coreiq/internal/models"
	"github.com/coresight-research/coreiq/internal/transcript"
)

// ListEarningsCalls returns a ticker's earnings calls, most recent first.
func (h *Handler) ListEarningsCalls(c echo.Context) error {
	calls, err := h.earnings.ListCalls(c.Request().Context(), c.Param("ticker"))
	if err != nil {
		return h.dataError(c, err)
	}
	return c.JSON(http.StatusOK, calls)
}

// transcriptResponse is an earnings call plus its segmented transcript.
type transcriptResponse struct {
	Ticker        string                  `json:"ticker"`
	Year          int                     `json:"year"`
	Quarter       int                     `json:"quarter"`
	HasTranscript bool                    `json:"has_transcript"`
	Segments      []models.SpeakerSegment `json:"segments"`
}

// GetTranscript returns the segmented transcript for one earnings call.
func (h *Handler) GetTranscript(c echo.Context) error {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return badRequest(c, "year must be an integer")
	}
	quarter, err := strconv.Atoi(c.Param("quarter"))
	if err != nil || quarter < 1 || quarter > 4 {
		return badRequest(c, "quarter must be between 1 and 4")
	}

	call, err := h.earnings.GetCall(c.Request().Context(), c.Param("ticker"), year, quarter)
	if err != nil {
		return h.dataError(c, err)
	}
	if call == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "earnings call not found"})
	}

	return c.JSON(http.StatusOK, transcriptResponse{
		Ticker:        call.Ticker,
		Year:          call.Year,
		Quarter:       call.Quarter,
		HasTranscript: call.HasTranscript,
		Segments:      transcript.Parse(call.Transcript),
	})
}
