package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePageMetadata(t *testing.T) {
	text := `MONTH: March
DAY: 15
YEAR: 1990
PAGE: 3`

	meta := parsePageMetadata(text)
	assert.Equal(t, 1990, meta.Year)
	assert.Equal(t, 3, meta.Month)
	assert.Equal(t, 15, meta.Day)
	assert.Equal(t, 3, meta.PageNumber)
}

func TestParsePageMetadataCaseInsensitive(t *testing.T) {
	text := `month: november
day: 2
year: 1991
page: 12`

	meta := parsePageMetadata(text)
	assert.Equal(t, 1991, meta.Year)
	assert.Equal(t, 11, meta.Month)
	assert.Equal(t, 2, meta.Day)
	assert.Equal(t, 12, meta.PageNumber)
}

func TestParsePageMetadataDefaults(t *testing.T) {
	meta := parsePageMetadata("MONTH: UNKNOWN\nDAY: UNKNOWN\nYEAR: UNKNOWN\nPAGE: UNKNOWN")
	assert.Equal(t, 1990, meta.Year)
	assert.Equal(t, 1, meta.Month)
	assert.Equal(t, 1, meta.Day)
	assert.Equal(t, 1, meta.PageNumber)

	meta = parsePageMetadata("garbage reply")
	assert.Equal(t, 1990, meta.Year)
	assert.Equal(t, 1, meta.PageNumber)
}

func TestParsePageMetadataRejectsImplausibleValues(t *testing.T) {
	meta := parsePageMetadata("MONTH: March\nDAY: 45\nYEAR: 90\nPAGE: 0")
	assert.Equal(t, 1990, meta.Year)
	assert.Equal(t, 3, meta.Month)
	assert.Equal(t, 1, meta.Day)
	assert.Equal(t, 1, meta.PageNumber)
}

func TestParseArticleBlocks(t *testing.T) {
	text := `Some preamble from the model.

ARTICLE_START
NUMBER: 1
HEADLINE: Talks resume at the border
CONTENT: Officials met on Tuesday to resume stalled negotiations.
The meeting lasted three hours.
ARTICLE_END

ARTICLE_START
NUMBER: 2
HEADLINE: Wheat prices climb
CONTENT: Prices rose sharply in local markets.
ARTICLE_END`

	articles := parseArticleBlocks(text)
	require.Len(t, articles, 2)

	assert.Equal(t, 1, articles[0].Number)
	assert.Equal(t, "Talks resume at the border", articles[0].Headline)
	assert.Contains(t, articles[0].Content, "The meeting lasted three hours.")

	assert.Equal(t, 2, articles[1].Number)
	assert.Equal(t, "Wheat prices climb", articles[1].Headline)
}

func TestParseArticleBlocksDropsIncompleteBlocks(t *testing.T) {
	text := `ARTICLE_START
NUMBER: 1
HEADLINE: Headline without content
ARTICLE_END

ARTICLE_START
NUMBER: 2
HEADLINE: Complete article
CONTENT: Body text.
ARTICLE_END`

	articles := parseArticleBlocks(text)
	require.Len(t, articles, 1)
	assert.Equal(t, "Complete article", articles[0].Headline)
}

func TestParseArticleBlocksNumbersMissingBlocks(t *testing.T) {
	text := `ARTICLE_START
HEADLINE: No number given
CONTENT: Body text.
ARTICLE_END`

	articles := parseArticleBlocks(text)
	require.Len(t, articles, 1)
	assert.Equal(t, 1, articles[0].Number)
}

func TestParseArticleBlocksEmptyReply(t *testing.T) {
	assert.Empty(t, parseArticleBlocks("no articles here"))
}
