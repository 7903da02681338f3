package service

import (
	"context"
	"strings"

	"mediascope/internal/analytics"
	"mediascope/internal/api/dto"
	"mediascope/internal/api/repository"
	"mediascope/pkg/logger"
)

const (
	maxSearchResults       = 300
	defaultSuggestionCount = 50
)

// SearchService exposes article search, the topic catalogue and keyword
// suggestions.
type SearchService interface {
	SearchKeyword(ctx context.Context, req *dto.KeywordSearchRequest) (*dto.KeywordSearchResponse, error)
	SearchEntity(ctx context.Context, req *dto.EntitySearchRequest) (*dto.EntitySearchResponse, error)
	ListTopics(ctx context.Context) ([]dto.TopicDTO, error)
	SuggestKeywords(ctx context.Context, limit int) ([]dto.KeywordSuggestion, error)
}

type searchService struct {
	articles repository.ArticleRepository
	topics   repository.TopicRepository
	logger   *logger.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(articles repository.ArticleRepository, topics repository.TopicRepository, log *logger.Logger) SearchService {
	return &searchService{articles: articles, topics: topics, logger: log}
}

func (s *searchService) SearchKeyword(ctx context.Context, req *dto.KeywordSearchRequest) (*dto.KeywordSearchResponse, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, dto.NewValidationError("query must not be empty")
	}
	filters, err := toFilters(req.StartDate, req.EndDate, req.Topic, req.Sentiment)
	if err != nil {
		return nil, err
	}
	limit := clampPageSize(req.Limit)
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}
	if offset+limit > maxSearchResults {
		return nil, dto.NewValidationError("search window exceeds %d results, narrow the query", maxSearchResults)
	}

	articles, total, err := s.articles.SearchKeyword(ctx, query, filters, limit, offset)
	if err != nil {
		return nil, err
	}
	return &dto.KeywordSearchResponse{
		Total:    int(total),
		Query:    query,
		Articles: toListItems(articles),
	}, nil
}

func (s *searchService) SearchEntity(ctx context.Context, req *dto.EntitySearchRequest) (*dto.EntitySearchResponse, error) {
	entityName := strings.TrimSpace(req.EntityName)
	if entityName == "" {
		return nil, dto.NewValidationError("entity_name must not be empty")
	}
	filters, err := toFilters(req.StartDate, req.EndDate, "", "")
	if err != nil {
		return nil, err
	}
	limit := req.Limit
	if limit <= 0 || limit > maxSearchResults {
		limit = maxSearchResults
	}

	articles, err := s.articles.SearchByEntity(ctx, entityName, req.EntityType, filters, limit)
	if err != nil {
		return nil, err
	}
	return &dto.EntitySearchResponse{
		Total:    len(articles),
		Entity:   analytics.Normalize(entityName),
		Articles: toListItems(articles),
	}, nil
}

func (s *searchService) ListTopics(ctx context.Context) ([]dto.TopicDTO, error) {
	topics, err := s.topics.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TopicDTO, 0, len(topics))
	for _, topic := range topics {
		out = append(out, dto.TopicDTO{
			TopicID:      topic.TopicID,
			TopicName:    topic.TopicName,
			Keywords:     topic.Keywords,
			ArticleCount: topic.ArticleCount,
		})
	}
	return out, nil
}

func (s *searchService) SuggestKeywords(ctx context.Context, limit int) ([]dto.KeywordSuggestion, error) {
	if limit <= 0 || limit > maxResultLimit {
		limit = defaultSuggestionCount
	}
	rows, err := s.articles.SuggestKeywords(ctx, limit)
	if err != nil {
		return nil, err
	}
	suggestions := make([]dto.KeywordSuggestion, 0, len(rows))
	for _, row := range rows {
		suggestions = append(suggestions, dto.KeywordSuggestion{
			Keyword:   row.Keyword,
			Type:      row.Type,
			Frequency: row.Frequency,
		})
	}
	return suggestions, nil
}
