package service

import (
	"context"
	"fmt"

	"mediascope/internal/api/dto"
	"mediascope/internal/api/repository"
	"mediascope/pkg/logger"
)

const summaryArticleLimit = 50

// SummaryService generates AI digests of article batches.
type SummaryService interface {
	Generate(ctx context.Context, req *dto.AISummaryRequest) (*dto.AISummaryResponse, error)
}

type summaryService struct {
	articles repository.ArticleRepository
	ai       repository.AIRepository
	logger   *logger.Logger
}

// NewSummaryService creates a new summary service.
func NewSummaryService(articles repository.ArticleRepository, ai repository.AIRepository, log *logger.Logger) SummaryService {
	return &summaryService{articles: articles, ai: ai, logger: log}
}

func (s *summaryService) Generate(ctx context.Context, req *dto.AISummaryRequest) (*dto.AISummaryResponse, error) {
	filters, err := toFilters(req.StartDate, req.EndDate, req.Topic, "")
	if err != nil {
		return nil, err
	}

	articles, err := s.articles.FindForSummary(ctx, filters, summaryArticleLimit)
	if err != nil {
		return nil, err
	}
	if len(articles) == 0 {
		return nil, dto.NewValidationError("no articles found for the requested period")
	}

	dateRange := describeRange(req.StartDate, req.EndDate)
	prompt := repository.BuildDigestPrompt(dateRange, req.Topic, articles)

	summary, err := s.ai.GenerateDigest(ctx, prompt)
	if err != nil {
		s.logger.Error("Failed to generate digest", logger.ErrorField(err))
		return nil, err
	}

	return &dto.AISummaryResponse{
		Summary:      summary,
		ArticleCount: len(articles),
		DateRange:    dateRange,
		Topic:        req.Topic,
	}, nil
}

func describeRange(startDate, endDate string) string {
	switch {
	case startDate != "" && endDate != "":
		return fmt.Sprintf("%s to %s", startDate, endDate)
	case startDate != "":
		return fmt.Sprintf("from %s", startDate)
	case endDate != "":
		return fmt.Sprintf("until %s", endDate)
	}
	return ""
}
