package service

import (
	"context"
	"errors"
	"strings"

	"mediascope/internal/api/dto"
	"mediascope/internal/api/repository"
	"mediascope/internal/entity"
	"mediascope/pkg/logger"
	"mediascope/pkg/utils"

	"gorm.io/gorm"
)

const (
	contentPreviewLength = 200
	defaultPageSize      = 20
	maxPageSize          = 100
)

// ErrArticleNotFound is returned when the requested article does not exist.
var ErrArticleNotFound = errors.New("article not found")

// ArticleService exposes article retrieval and listing.
type ArticleService interface {
	GetByID(ctx context.Context, id string) (*dto.ArticleResponse, error)
	List(ctx context.Context, req *dto.ListArticlesRequest) (*dto.ListArticlesResponse, error)
}

type articleService struct {
	articles repository.ArticleRepository
	logger   *logger.Logger
}

// NewArticleService creates a new article service.
func NewArticleService(articles repository.ArticleRepository, log *logger.Logger) ArticleService {
	return &articleService{articles: articles, logger: log}
}

func (s *articleService) GetByID(ctx context.Context, id string) (*dto.ArticleResponse, error) {
	if strings.TrimSpace(id) == "" {
		return nil, dto.NewValidationError("article id must not be empty")
	}
	article, err := s.articles.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}
	return toArticleResponse(article), nil
}

func (s *articleService) List(ctx context.Context, req *dto.ListArticlesRequest) (*dto.ListArticlesResponse, error) {
	filters, err := toFilters(req.StartDate, req.EndDate, req.Topic, req.Sentiment)
	if err != nil {
		return nil, err
	}
	limit := clampPageSize(req.Limit)
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	articles, total, err := s.articles.List(ctx, filters, limit, offset)
	if err != nil {
		return nil, err
	}
	return &dto.ListArticlesResponse{
		Total:    int(total),
		Articles: toListItems(articles),
	}, nil
}

func clampPageSize(limit int) int {
	if limit <= 0 {
		return defaultPageSize
	}
	if limit > maxPageSize {
		return maxPageSize
	}
	return limit
}

// toFilters validates the shared date/topic/sentiment query filters.
func toFilters(startDate, endDate, topic, sentiment string) (repository.ArticleFilters, error) {
	var filters repository.ArticleFilters
	if startDate != "" {
		if _, err := utils.ParseDateOnly(startDate); err != nil {
			return filters, dto.NewValidationError("invalid start_date %q, expected YYYY-MM-DD", startDate)
		}
	}
	if endDate != "" {
		if _, err := utils.ParseDateOnly(endDate); err != nil {
			return filters, dto.NewValidationError("invalid end_date %q, expected YYYY-MM-DD", endDate)
		}
	}
	if startDate != "" && endDate != "" && startDate > endDate {
		return filters, dto.NewValidationError("start_date %s is after end_date %s", startDate, endDate)
	}
	filters.StartDate = startDate
	filters.EndDate = endDate
	filters.Topic = topic
	filters.Sentiment = sentiment
	return filters, nil
}

func toArticleResponse(article *entity.Article) *dto.ArticleResponse {
	resp := &dto.ArticleResponse{
		ID:             article.ID,
		Headline:       article.Headline,
		Content:        article.Content,
		WordCount:      article.WordCount,
		SentimentScore: article.SentimentScore,
		SentimentLabel: article.SentimentLabel,
		TopicLabel:     article.TopicLabel,
		CreatedAt:      article.CreatedAt,
	}
	if article.Newspaper != nil {
		resp.PublicationDate = utils.DateOnly(article.Newspaper.PublicationDate)
		resp.PageNumber = article.Newspaper.PageNumber
		resp.Section = article.Newspaper.Section
	}
	resp.Entities = make([]dto.EntityDTO, 0, len(article.Entities))
	for _, mention := range article.Entities {
		resp.Entities = append(resp.Entities, dto.EntityDTO{
			Text: mention.EntityText,
			Type: mention.EntityType,
		})
	}
	return resp
}

func toListItems(articles []entity.Article) []dto.ArticleListItem {
	items := make([]dto.ArticleListItem, 0, len(articles))
	for _, article := range articles {
		item := dto.ArticleListItem{
			ID:             article.ID,
			Headline:       article.Headline,
			ContentPreview: previewContent(article.Content),
			SentimentScore: article.SentimentScore,
			SentimentLabel: article.SentimentLabel,
			TopicLabel:     article.TopicLabel,
		}
		if article.Newspaper != nil {
			item.PublicationDate = utils.DateOnly(article.Newspaper.PublicationDate)
			item.PageNumber = article.Newspaper.PageNumber
		}
		items = append(items, item)
	}
	return items
}

func previewContent(content string) string {
	if len(content) <= contentPreviewLength {
		return content
	}
	return content[:contentPreviewLength] + "..."
}
