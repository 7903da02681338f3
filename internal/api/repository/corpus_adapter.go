package repository

import (
	"context"

	"mediascope/internal/analytics"
	"mediascope/internal/entity"
	"mediascope/pkg/utils"
)

// NewCorpusAdapter exposes the article store as an analytics corpus.
func NewCorpusAdapter(articles ArticleRepository) analytics.Corpus {
	return &corpusAdapter{articles: articles}
}

type corpusAdapter struct {
	articles ArticleRepository
}

// Scan loads up to limit articles and maps them into the aggregation
// engine's flat representation.
func (c *corpusAdapter) Scan(ctx context.Context, limit int) ([]analytics.Article, error) {
	records, err := c.articles.FindAll(ctx, limit)
	if err != nil {
		return nil, err
	}

	out := make([]analytics.Article, 0, len(records))
	for _, record := range records {
		out = append(out, mapArticle(record))
	}
	return out, nil
}

func mapArticle(record entity.Article) analytics.Article {
	article := analytics.Article{
		ID:             record.ID,
		Headline:       record.Headline,
		Content:        record.Content,
		SentimentLabel: record.SentimentLabel,
		SentimentScore: record.SentimentScore,
		TopicLabel:     record.TopicLabel,
	}
	if record.Newspaper != nil {
		article.PublicationDate = utils.DateOnly(record.Newspaper.PublicationDate)
	}
	for _, mention := range record.Entities {
		article.Entities = append(article.Entities, analytics.EntityMention{
			Text: mention.EntityText,
			Type: mention.EntityType,
		})
	}
	return article
}
