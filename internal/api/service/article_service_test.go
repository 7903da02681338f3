package service

import (
	"strings"
	"testing"

	"mediascope/internal/api/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewContent(t *testing.T) {
	short := "A short body."
	assert.Equal(t, short, previewContent(short))

	long := strings.Repeat("x", 300)
	preview := previewContent(long)
	assert.Len(t, preview, contentPreviewLength+3)
	assert.True(t, strings.HasSuffix(preview, "..."))
}

func TestClampPageSize(t *testing.T) {
	assert.Equal(t, defaultPageSize, clampPageSize(0))
	assert.Equal(t, defaultPageSize, clampPageSize(-5))
	assert.Equal(t, 40, clampPageSize(40))
	assert.Equal(t, maxPageSize, clampPageSize(5000))
}

func TestToFiltersValidation(t *testing.T) {
	filters, err := toFilters("1990-01-01", "1990-12-31", "diplomacy", "positive")
	require.NoError(t, err)
	assert.Equal(t, "1990-01-01", filters.StartDate)
	assert.Equal(t, "diplomacy", filters.Topic)

	_, err = toFilters("01/01/1990", "", "", "")
	var validationErr *dto.ValidationError
	require.ErrorAs(t, err, &validationErr)

	_, err = toFilters("1990-12-31", "1990-01-01", "", "")
	require.ErrorAs(t, err, &validationErr)
}
