package repository

import (
	"fmt"
	"strings"

	"mediascope/internal/entity"
)

// BuildDigestPrompt composes the historical digest prompt for a batch of
// articles. Content is clipped so large batches stay inside token limits.
func BuildDigestPrompt(dateRange, topic string, articles []entity.Article) string {
	var sb strings.Builder
	for i, article := range articles {
		content := article.Content
		if len(content) > 500 {
			content = content[:500]
		}
		sb.WriteString(fmt.Sprintf("%d. %s\n%s\n\n", i+1, article.Headline, content))
	}

	scope := "the selected period"
	if dateRange != "" {
		scope = dateRange
	}
	topicClause := ""
	if topic != "" {
		topicClause = fmt.Sprintf(" about %q", topic)
	}

	return fmt.Sprintf(`You are a historian summarizing digitized newspaper coverage.

Below are %d newspaper articles%s published during %s.

Articles:
%s
Write a concise digest (3 to 5 paragraphs) of this coverage. Describe the major stories, the recurring people, places and organizations, and the overall tone of the reporting. Write plain prose, no markdown, no bullet points.`,
		len(articles), topicClause, scope, sb.String())
}
