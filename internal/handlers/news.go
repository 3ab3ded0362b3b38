package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/coresight-research/coreiq/internal/db"
)

// ListNews returns articles matching the from/to/sector/ticker filters,
// newest first.
func (h *Handler) ListNews(c echo.Context) error {
	filter := db.NewsFilter{
		Sector: c.QueryParam("sector"),
		Ticker: c.QueryParam("ticker"),
		Limit:  50,
	}

	if s := c.QueryParam("from"); s != "" {
		from, err := time.Parse(dateLayout, s)
		if err != nil {
			return badRequest(c, "from must be YYYY-MM-DD")
		}
		filter.From = &from
	}
	if s := c.QueryParam("to"); s != "" {
		to, err := time.Parse(dateLayout, s)
		if err != nil {
			return badRequest(c, "to must be YYYY-MM-DD")
		}
		filter.To = &to
	}
	if s := c.QueryParam("limit"); s != "" {
		limit, err := strconv.Atoi(s)
		if err != nil || limit < 1 {
			return badRequest(c, "limit must be a positive integer")
		}
		filter.Limit = limit
	}

	articles, err := h.news.GetArticles(c.Request().Context(), filter)
	if err != nil {
		return h.dataError(c, err)
	}
	return c.JSON(http.StatusOK, articles)
}

// GetNewsArticle returns one article by id.
func (h *Handler) GetNewsArticle(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "id must be an integer")
	}

	article, err := h.news.GetArticle(c.Request().Context(), id)
	if err != nil {
		return h.dataError(c, err)
	}
	if article == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "article not found"})
	}
	return c.JSON(http.StatusOK, article)
}

// ListFeaturedNews returns the strongest-sentiment articles.
func (h *Handler) ListFeaturedNews(c echo.Context) error {
	limit := 3
	if s := c.QueryParam("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return badRequest(c, "limit must be a positive integer")
		}
		limit = n
	}

	articles, err := h.news.GetFeaturedArticles(c.Request().Context(), limit)
	if err != nil {
		return h.dataError(c, err)
	}
	return c.JSON(http.StatusOK, articles)
}

// ListNewsSources returns the distinct article sources.
func (h *Handler) ListNewsSources(c echo.Context) error {
	sources, err := h.news.GetSources(c.Request().Context())
	if err != nil {
		return h.dataError(c, err)
	}
	return c.JSON(http.StatusOK, sources)
}
