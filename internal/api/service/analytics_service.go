package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mediascope/internal/analytics"
	"mediascope/internal/api/config"
	"mediascope/internal/api/dto"
	"mediascope/pkg/logger"
	"mediascope/pkg/utils"

	gocache "github.com/patrickmn/go-cache"
)

const (
	defaultResultLimit = 20
	maxResultLimit     = 100
	defaultMinCooccur  = 2
)

// AnalyticsService validates analytics requests, serves cached results,
// and delegates aggregation to the engine.
type AnalyticsService interface {
	TopEntities(ctx context.Context, entityType, startDate, endDate string, limit int) (*dto.TopEntitiesResponse, error)
	SentimentByEntity(ctx context.Context, entityType string, limit int) (*dto.SentimentByEntityResponse, error)
	Cooccurrence(ctx context.Context, entityType string, minCount, limit int) (*dto.CooccurrenceResponse, error)
	TopKeywords(ctx context.Context, limit int) (*dto.TopKeywordsResponse, error)
	TopicDistribution(ctx context.Context) (*dto.TopicDistributionResponse, error)
	SentimentOverview(ctx context.Context, startDate, endDate string) (*analytics.SentimentOverview, error)
	ArticlesOverTime(ctx context.Context) ([]analytics.MonthCount, error)
	SentimentOverTime(ctx context.Context) ([]analytics.MonthSentiment, error)
	KeywordTrend(ctx context.Context, req *dto.KeywordTrendRequest) (*dto.KeywordTrendResponse, error)
	EntityTrend(ctx context.Context, entityName, startDate, endDate, granularity string) (*dto.EntityTrendResponse, error)
	CompareEntities(ctx context.Context, req *dto.CompareEntitiesRequest) (*dto.CompareEntitiesResponse, error)
	LocationAnalytics(ctx context.Context, startDate, endDate string) (*dto.LocationAnalyticsResponse, error)
}

type analyticsService struct {
	engine     *analytics.Engine
	cache      *gocache.Cache
	cfg        config.Analytics
	maxCompare int
	logger     *logger.Logger
}

// NewAnalyticsService creates a new analytics facade service.
func NewAnalyticsService(engine *analytics.Engine, cfg config.Analytics, log *logger.Logger) AnalyticsService {
	ttl, err := time.ParseDuration(cfg.CacheTTL)
	if err != nil || ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &analyticsService{
		engine:     engine,
		cache:      gocache.New(ttl, 2*ttl),
		cfg:        cfg,
		maxCompare: cfg.MaxCompareEntities,
		logger:     log,
	}
}

// clampLimit forces a result limit into [1, maxResultLimit], substituting
// the default when the caller passed nothing.
func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultResultLimit
	}
	if limit > maxResultLimit {
		return maxResultLimit
	}
	return limit
}

// parseDateRange validates both bounds and returns nil when neither is set.
func parseDateRange(startDate, endDate string) (*analytics.DateRange, error) {
	if startDate == "" && endDate == "" {
		return nil, nil
	}
	if startDate != "" {
		if _, err := utils.ParseDateOnly(startDate); err != nil {
			return nil, dto.NewValidationError("invalid start_date %q, expected YYYY-MM-DD", startDate)
		}
	}
	if endDate != "" {
		if _, err := utils.ParseDateOnly(endDate); err != nil {
			return nil, dto.NewValidationError("invalid end_date %q, expected YYYY-MM-DD", endDate)
		}
	}
	if startDate != "" && endDate != "" && startDate > endDate {
		return nil, dto.NewValidationError("start_date %s is after end_date %s", startDate, endDate)
	}
	return &analytics.DateRange{Start: startDate, End: endDate}, nil
}

func parseGranularity(raw string) (analytics.Granularity, error) {
	if raw == "" {
		return analytics.GranularityMonth, nil
	}
	g := analytics.Granularity(strings.ToLower(raw))
	if !g.Valid() {
		return "", dto.NewValidationError("invalid granularity %q, expected day, week or month", raw)
	}
	return g, nil
}

// cached runs compute through the read-through cache. Errors are never
// cached so a recovering store is retried immediately.
func cached[T any](s *analyticsService, key string, compute func() (T, error)) (T, error) {
	if hit, found := s.cache.Get(key); found {
		if value, ok := hit.(T); ok {
			return value, nil
		}
	}
	value, err := compute()
	if err != nil {
		var zero T
		return zero, err
	}
	s.cache.Set(key, value, gocache.DefaultExpiration)
	return value, nil
}

func (s *analyticsService) TopEntities(ctx context.Context, entityType, startDate, endDate string, limit int) (*dto.TopEntitiesResponse, error) {
	dateRange, err := parseDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	limit = clampLimit(limit)

	key := fmt.Sprintf("top-entities:%s:%s:%s:%d", entityType, startDate, endDate, limit)
	return cached(s, key, func() (*dto.TopEntitiesResponse, error) {
		rows, err := s.engine.TopEntities(ctx, entityType, dateRange, limit)
		if err != nil {
			return nil, err
		}
		return &dto.TopEntitiesResponse{Entities: rows}, nil
	})
}

func (s *analyticsService) SentimentByEntity(ctx context.Context, entityType string, limit int) (*dto.SentimentByEntityResponse, error) {
	limit = clampLimit(limit)

	key := fmt.Sprintf("sentiment-by-entity:%s:%d", entityType, limit)
	return cached(s, key, func() (*dto.SentimentByEntityResponse, error) {
		rows, err := s.engine.SentimentByEntity(ctx, entityType, limit)
		if err != nil {
			return nil, err
		}
		return &dto.SentimentByEntityResponse{Entities: rows}, nil
	})
}

func (s *analyticsService) Cooccurrence(ctx context.Context, entityType string, minCount, limit int) (*dto.CooccurrenceResponse, error) {
	limit = clampLimit(limit)
	if minCount <= 0 {
		minCount = defaultMinCooccur
	}

	key := fmt.Sprintf("cooccurrence:%s:%d:%d", entityType, minCount, limit)
	return cached(s, key, func() (*dto.CooccurrenceResponse, error) {
		pairs, err := s.engine.Cooccurrence(ctx, entityType, minCount, limit)
		if err != nil {
			return nil, err
		}
		return &dto.CooccurrenceResponse{Pairs: pairs}, nil
	})
}

func (s *analyticsService) TopKeywords(ctx context.Context, limit int) (*dto.TopKeywordsResponse, error) {
	limit = clampLimit(limit)

	key := fmt.Sprintf("top-keywords:%d", limit)
	return cached(s, key, func() (*dto.TopKeywordsResponse, error) {
		rows, err := s.engine.TopKeywords(ctx, limit)
		if err != nil {
			return nil, err
		}
		return &dto.TopKeywordsResponse{Keywords: rows}, nil
	})
}

func (s *analyticsService) TopicDistribution(ctx context.Context) (*dto.TopicDistributionResponse, error) {
	return cached(s, "topic-distribution", func() (*dto.TopicDistributionResponse, error) {
		shares, err := s.engine.TopicDistribution(ctx)
		if err != nil {
			return nil, err
		}
		return &dto.TopicDistributionResponse{Distribution: shares}, nil
	})
}

func (s *analyticsService) SentimentOverview(ctx context.Context, startDate, endDate string) (*analytics.SentimentOverview, error) {
	dateRange, err := parseDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("sentiment-overview:%s:%s", startDate, endDate)
	return cached(s, key, func() (*analytics.SentimentOverview, error) {
		return s.engine.Overview(ctx, dateRange)
	})
}

func (s *analyticsService) ArticlesOverTime(ctx context.Context) ([]analytics.MonthCount, error) {
	return cached(s, "articles-over-time", func() ([]analytics.MonthCount, error) {
		return s.engine.ArticlesOverTime(ctx)
	})
}

func (s *analyticsService) SentimentOverTime(ctx context.Context) ([]analytics.MonthSentiment, error) {
	return cached(s, "sentiment-over-time", func() ([]analytics.MonthSentiment, error) {
		return s.engine.SentimentOverTime(ctx)
	})
}

func (s *analyticsService) KeywordTrend(ctx context.Context, req *dto.KeywordTrendRequest) (*dto.KeywordTrendResponse, error) {
	if len(req.Keywords) == 0 {
		return nil, dto.NewValidationError("keywords must not be empty")
	}
	keywords := dedupKeywords(req.Keywords)
	if len(keywords) > s.maxCompare {
		keywords = keywords[:s.maxCompare]
	}
	dateRange, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	granularity, err := parseGranularity(req.Granularity)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("keyword-trend:%s:%s:%s:%s", strings.Join(keywords, ","), req.StartDate, req.EndDate, granularity)
	return cached(s, key, func() (*dto.KeywordTrendResponse, error) {
		trends := make(map[string][]analytics.TimeBucket, len(keywords))
		for _, keyword := range keywords {
			series, err := s.engine.KeywordTimeSeries(ctx, keyword, dateRange, granularity)
			if err != nil {
				return nil, err
			}
			trends[keyword] = series
		}
		return &dto.KeywordTrendResponse{
			StartDate: req.StartDate,
			EndDate:   req.EndDate,
			Trends:    trends,
		}, nil
	})
}

func (s *analyticsService) EntityTrend(ctx context.Context, entityName, startDate, endDate, granularity string) (*dto.EntityTrendResponse, error) {
	if strings.TrimSpace(entityName) == "" {
		return nil, dto.NewValidationError("entity must not be empty")
	}
	dateRange, err := parseDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	g, err := parseGranularity(granularity)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("entity-trend:%s:%s:%s:%s", entityName, startDate, endDate, g)
	return cached(s, key, func() (*dto.EntityTrendResponse, error) {
		trend, err := s.engine.EntityTimeSeries(ctx, entityName, dateRange, g)
		if err != nil {
			return nil, err
		}
		return &dto.EntityTrendResponse{
			Entity: analytics.Normalize(entityName),
			Trend:  trend,
		}, nil
	})
}

func (s *analyticsService) CompareEntities(ctx context.Context, req *dto.CompareEntitiesRequest) (*dto.CompareEntitiesResponse, error) {
	if len(req.Entities) == 0 {
		return nil, dto.NewValidationError("entities must not be empty")
	}
	entities := dedupKeywords(req.Entities)
	if len(entities) > s.maxCompare {
		entities = entities[:s.maxCompare]
	}
	dateRange, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("compare-entities:%s:%s:%s", strings.Join(entities, ","), req.StartDate, req.EndDate)
	return cached(s, key, func() (*dto.CompareEntitiesResponse, error) {
		comparison, err := s.engine.CompareEntities(ctx, entities, dateRange)
		if err != nil {
			return nil, err
		}
		return &dto.CompareEntitiesResponse{Comparison: comparison}, nil
	})
}

func (s *analyticsService) LocationAnalytics(ctx context.Context, startDate, endDate string) (*dto.LocationAnalyticsResponse, error) {
	dateRange, err := parseDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("locations:%s:%s", startDate, endDate)
	return cached(s, key, func() (*dto.LocationAnalyticsResponse, error) {
		locations, err := s.engine.LocationAnalytics(ctx, dateRange)
		if err != nil {
			return nil, err
		}
		return &dto.LocationAnalyticsResponse{Locations: locations}, nil
	})
}

// dedupKeywords trims entries and drops blanks and duplicates while
// preserving the caller's order.
func dedupKeywords(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, entry := range raw {
		trimmed := strings.TrimSpace(entry)
		if trimmed == "" {
			continue
		}
		lowered := strings.ToLower(trimmed)
		if _, ok := seen[lowered]; ok {
			continue
		}
		seen[lowered] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}
