package http

import (
	"net/http"
	"strconv"

	"mediascope/internal/api/dto"
	"mediascope/internal/api/service"
	"mediascope/pkg/logger"

	"github.com/labstack/echo/v4"
)

// SearchHandler handles HTTP requests for search and discovery.
type SearchHandler struct {
	searchService service.SearchService
	logger        *logger.Logger
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(searchService service.SearchService, logger *logger.Logger) *SearchHandler {
	return &SearchHandler{searchService: searchService, logger: logger}
}

// RegisterRoutes registers the search routes to the Echo group.
func (h *SearchHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/keyword", h.SearchKeyword)
	g.POST("/entity", h.SearchEntity)
	g.GET("/topics", h.ListTopics)
}

// SearchKeyword godoc
// @Summary Search articles by keyword
// @Description Full-text keyword search over headlines and content
// @Tags search
// @Accept  json
// @Produce  json
// @Param   request body    dto.KeywordSearchRequest    true    "Search parameters"
// @Success 200 {object} dto.KeywordSearchResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /search/keyword [post]
func (h *SearchHandler) SearchKeyword(c echo.Context) error {
	var req dto.KeywordSearchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}

	resp, err := h.searchService.SearchKeyword(c.Request().Context(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// SearchEntity godoc
// @Summary Search articles by entity
// @Description Find articles mentioning a named entity
// @Tags search
// @Accept  json
// @Produce  json
// @Param   request body    dto.EntitySearchRequest true    "Search parameters"
// @Success 200 {object} dto.EntitySearchResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /search/entity [post]
func (h *SearchHandler) SearchEntity(c echo.Context) error {
	var req dto.EntitySearchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}

	resp, err := h.searchService.SearchEntity(c.Request().Context(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// ListTopics godoc
// @Summary List discovered topics
// @Description List the topic catalogue with keywords and article counts
// @Tags search
// @Produce  json
// @Success 200 {array} dto.TopicDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /search/topics [get]
func (h *SearchHandler) ListTopics(c echo.Context) error {
	topics, err := h.searchService.ListTopics(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, topics)
}

// SuggestKeywords godoc
// @Summary Suggest search keywords
// @Description Suggest keywords derived from entity frequency
// @Tags search
// @Produce  json
// @Param   limit   query   int false   "Maximum suggestions"
// @Success 200 {array} dto.KeywordSuggestion
// @Failure 500 {object} dto.ErrorResponse
// @Router /suggestions/keywords [get]
func (h *SearchHandler) SuggestKeywords(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	suggestions, err := h.searchService.SuggestKeywords(c.Request().Context(), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, suggestions)
}
