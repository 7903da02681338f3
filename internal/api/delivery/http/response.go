package http

import (
	"errors"
	"net/http"

	"mediascope/internal/analytics"
	"mediascope/internal/api/dto"
	"mediascope/internal/api/service"

	"github.com/labstack/echo/v4"
)

// respondError maps service errors to HTTP status codes. Validation failures
// become 400, a missing article 404, an unreachable store 503, everything
// else 500.
func respondError(c echo.Context, err error) error {
	var validationErr *dto.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: validationErr.Message})
	case errors.Is(err, service.ErrArticleNotFound):
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "article not found"})
	case errors.Is(err, analytics.ErrSourceUnavailable):
		return c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: "document store unavailable"})
	}
	return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
}
