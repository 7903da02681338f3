package http

import (
	"net/http"

	"mediascope/internal/api/dto"
	"mediascope/internal/api/service"
	"mediascope/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ArticleHandler handles HTTP requests for articles.
type ArticleHandler struct {
	articleService service.ArticleService
	logger         *logger.Logger
}

// NewArticleHandler creates a new ArticleHandler.
func NewArticleHandler(articleService service.ArticleService, logger *logger.Logger) *ArticleHandler {
	return &ArticleHandler{articleService: articleService, logger: logger}
}

// RegisterRoutes registers the article routes to the Echo group.
func (h *ArticleHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.ListArticles)
	g.GET("/:id", h.GetArticleByID)
}

// ListArticles godoc
// @Summary List articles
// @Description List stored articles with optional date, topic and sentiment filters
// @Tags articles
// @Produce  json
// @Param   start_date  query   string  false   "Start date (YYYY-MM-DD)"
// @Param   end_date    query   string  false   "End date (YYYY-MM-DD)"
// @Param   topic       query   string  false   "Topic label"
// @Param   sentiment   query   string  false   "Sentiment label"
// @Param   limit       query   int     false   "Page size"
// @Param   offset      query   int     false   "Page offset"
// @Success 200 {object} dto.ListArticlesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /articles [get]
func (h *ArticleHandler) ListArticles(c echo.Context) error {
	var req dto.ListArticlesRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request parameters"})
	}

	resp, err := h.articleService.List(c.Request().Context(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetArticleByID godoc
// @Summary Get an article by ID
// @Description Get a single article with its named entities
// @Tags articles
// @Produce  json
// @Param   id  path    string  true    "Article ID"
// @Success 200 {object} dto.ArticleResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /articles/{id} [get]
func (h *ArticleHandler) GetArticleByID(c echo.Context) error {
	resp, err := h.articleService.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}
