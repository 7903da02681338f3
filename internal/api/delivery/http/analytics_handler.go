package http

import (
	"net/http"
	"strconv"

	"mediascope/internal/api/dto"
	"mediascope/internal/api/service"
	"mediascope/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AnalyticsHandler handles HTTP requests for aggregate analytics.
type AnalyticsHandler struct {
	analyticsService service.AnalyticsService
	summaryService   service.SummaryService
	logger           *logger.Logger
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService service.AnalyticsService, summaryService service.SummaryService, logger *logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		summaryService:   summaryService,
		logger:           logger,
	}
}

// RegisterRoutes registers the analytics routes to the Echo group.
func (h *AnalyticsHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/top-entities", h.TopEntities)
	g.GET("/sentiment-by-entity", h.SentimentByEntity)
	g.GET("/entity-cooccurrence", h.Cooccurrence)
	g.GET("/top-keywords", h.TopKeywords)
	g.GET("/topic-distribution", h.TopicDistribution)
	g.GET("/sentiment-overview", h.SentimentOverview)
	g.GET("/articles-over-time", h.ArticlesOverTime)
	g.GET("/sentiment-over-time", h.SentimentOverTime)
	g.POST("/keyword-trend", h.KeywordTrend)
	g.GET("/entity-trend", h.EntityTrend)
	g.POST("/compare-entities", h.CompareEntities)
	g.GET("/locations", h.Locations)
	g.POST("/ai-summary", h.AISummary)
}

// TopEntities godoc
// @Summary Top entities
// @Description Rank normalized entities by mention count
// @Tags analytics
// @Produce  json
// @Param   entity_type query   string  false   "Entity type filter (GPE, PERSON, ORG, ...)"
// @Param   start_date  query   string  false   "Start date (YYYY-MM-DD)"
// @Param   end_date    query   string  false   "End date (YYYY-MM-DD)"
// @Param   limit       query   int     false   "Maximum rows"
// @Success 200 {object} dto.TopEntitiesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /analytics/top-entities [get]
func (h *AnalyticsHandler) TopEntities(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	resp, err := h.analyticsService.TopEntities(
		c.Request().Context(),
		c.QueryParam("entity_type"),
		c.QueryParam("start_date"),
		c.QueryParam("end_date"),
		limit,
	)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// SentimentByEntity godoc
// @Summary Sentiment by entity
// @Description Average sentiment per entity, noise entities dropped
// @Tags analytics
// @Produce  json
// @Param   entity_type query   string  false   "Entity type filter"
// @Param   limit       query   int     false   "Maximum rows"
// @Success 200 {object} dto.SentimentByEntityResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /analytics/sentiment-by-entity [get]
func (h *AnalyticsHandler) SentimentByEntity(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	resp, err := h.analyticsService.SentimentByEntity(c.Request().Context(), c.QueryParam("entity_type"), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// Cooccurrence godoc
// @Summary Entity co-occurrence
// @Description Entity pairs that appear in the same articles
// @Tags analytics
// @Produce  json
// @Param   entity_type query   string  false   "Entity type filter"
// @Param   min_count   query   int     false   "Minimum shared articles"
// @Param   limit       query   int     false   "Maximum rows"
// @Success 200 {object} dto.CooccurrenceResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /analytics/entity-cooccurrence [get]
func (h *AnalyticsHandler) Cooccurrence(c echo.Context) error {
	minCount, _ := strconv.Atoi(c.QueryParam("min_count"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	resp, err := h.analyticsService.Cooccurrence(c.Request().Context(), c.QueryParam("entity_type"), minCount, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// TopKeywords godoc
// @Summary Top keywords
// @Description Rank content keywords by frequency, stopwords removed
// @Tags analytics
// @Produce  json
// @Param   limit   query   int false   "Maximum rows"
// @Success 200 {object} dto.TopKeywordsResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /analytics/top-keywords [get]
func (h *AnalyticsHandler) TopKeywords(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	resp, err := h.analyticsService.TopKeywords(c.Request().Context(), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// TopicDistribution godoc
// @Summary Topic distribution
// @Description Article share per topic label
// @Tags analytics
// @Produce  json
// @Success 200 {object} dto.TopicDistributionResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /analytics/topic-distribution [get]
func (h *AnalyticsHandler) TopicDistribution(c echo.Context) error {
	resp, err := h.analyticsService.TopicDistribution(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// SentimentOverview godoc
// @Summary Sentiment overview
// @Description Corpus-wide sentiment label counts and averages
// @Tags analytics
// @Produce  json
// @Param   start_date  query   string  false   "Start date (YYYY-MM-DD)"
// @Param   end_date    query   string  false   "End date (YYYY-MM-DD)"
// @Success 200 {object} analytics.SentimentOverview
// @Failure 400 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /analytics/sentiment-overview [get]
func (h *AnalyticsHandler) SentimentOverview(c echo.Context) error {
	resp, err := h.analyticsService.SentimentOverview(
		c.Request().Context(),
		c.QueryParam("start_date"),
		c.QueryParam("end_date"),
	)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// ArticlesOverTime godoc
// @Summary Articles over time
// @Description Monthly article counts
// @Tags analytics
// @Produce  json
// @Success 200 {array} analytics.MonthCount
// @Failure 503 {object} dto.ErrorResponse
// @Router /analytics/articles-over-time [get]
func (h *AnalyticsHandler) ArticlesOverTime(c echo.Context) error {
	resp, err := h.analyticsService.ArticlesOverTime(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// SentimentOverTime godoc
// @Summary Sentiment over time
// @Description Monthly sentiment label counts and averages
// @Tags analytics
// @Produce  json
// @Success 200 {array} analytics.MonthSentiment
// @Failure 503 {object} dto.ErrorResponse
// @Router /analytics/sentiment-over-time [get]
func (h *AnalyticsHandler) SentimentOverTime(c echo.Context) error {
	resp, err := h.analyticsService.SentimentOverTime(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// KeywordTrend godoc
// @Summary Keyword trend
// @Description Time series of keyword occurrences per bucket
// @Tags analytics
// @Accept  json
// @Produce  json
// @Param   request body    dto.KeywordTrendRequest true    "Trend parameters"
// @Success 200 {object} dto.KeywordTrendResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /analytics/keyword-trend [post]
func (h *AnalyticsHandler) KeywordTrend(c echo.Context) error {
	var req dto.KeywordTrendRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}

	resp, err := h.analyticsService.KeywordTrend(c.Request().Context(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// EntityTrend godoc
// @Summary Entity trend
// @Description Time series of entity mentions with sentiment breakdown
// @Tags analytics
// @Produce  json
// @Param   entity      query   string  true    "Entity name"
// @Param   start_date  query   string  false   "Start date (YYYY-MM-DD)"
// @Param   end_date    query   string  false   "End date (YYYY-MM-DD)"
// @Param   granularity query   string  false   "day, week or month"
// @Success 200 {object} dto.EntityTrendResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /analytics/entity-trend [get]
func (h *AnalyticsHandler) EntityTrend(c echo.Context) error {
	resp, err := h.analyticsService.EntityTrend(
		c.Request().Context(),
		c.QueryParam("entity"),
		c.QueryParam("start_date"),
		c.QueryParam("end_date"),
		c.QueryParam("granularity"),
	)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// CompareEntities godoc
// @Summary Compare entities
// @Description Side-by-side mention, sentiment and topic profile per entity
// @Tags analytics
// @Accept  json
// @Produce  json
// @Param   request body    dto.CompareEntitiesRequest  true    "Entities to compare"
// @Success 200 {object} dto.CompareEntitiesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /analytics/compare-entities [post]
func (h *AnalyticsHandler) CompareEntities(c echo.Context) error {
	var req dto.CompareEntitiesRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}

	resp, err := h.analyticsService.CompareEntities(c.Request().Context(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// Locations godoc
// @Summary Location analytics
// @Description Mention counts, sentiment and timelines for geopolitical entities
// @Tags analytics
// @Produce  json
// @Param   start_date  query   string  false   "Start date (YYYY-MM-DD)"
// @Param   end_date    query   string  false   "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.LocationAnalyticsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /analytics/locations [get]
func (h *AnalyticsHandler) Locations(c echo.Context) error {
	resp, err := h.analyticsService.LocationAnalytics(
		c.Request().Context(),
		c.QueryParam("start_date"),
		c.QueryParam("end_date"),
	)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// AISummary godoc
// @Summary AI summary
// @Description Generate an AI digest of articles in a period
// @Tags analytics
// @Accept  json
// @Produce  json
// @Param   request body    dto.AISummaryRequest    true    "Digest parameters"
// @Success 200 {object} dto.AISummaryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /analytics/ai-summary [post]
func (h *AnalyticsHandler) AISummary(c echo.Context) error {
	var req dto.AISummaryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}

	resp, err := h.summaryService.Generate(c.Request().Context(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}
