package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"mediascope/internal/analytics"
	"mediascope/internal/api/config"
	"mediascope/internal/api/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCorpus struct {
	articles []analytics.Article
	calls    int
	err      error
}

func (c *countingCorpus) Scan(ctx context.Context, limit int) ([]analytics.Article, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	if limit < len(c.articles) {
		return c.articles[:limit], nil
	}
	return c.articles, nil
}

func fixtureArticles() []analytics.Article {
	return []analytics.Article{
		{
			ID:              "a",
			Headline:        "Pakistan and India resume talks",
			Content:         "Officials from Pakistan met Indian negotiators.",
			PublicationDate: "1990-03-15",
			SentimentLabel:  "positive",
			SentimentScore:  0.8,
			TopicLabel:      "diplomacy",
			Entities: []analytics.EntityMention{
				{Text: "Pakistan", Type: "GPE"},
				{Text: "India", Type: "GPE"},
			},
		},
		{
			ID:              "b",
			Headline:        "Pakistani delegation visits Delhi",
			Content:         "The delegation arrived for border discussions.",
			PublicationDate: "1990-04-02",
			SentimentLabel:  "neutral",
			SentimentScore:  0.0,
			TopicLabel:      "diplomacy",
			Entities: []analytics.EntityMention{
				{Text: "Pakistani", Type: "GPE"},
			},
		},
	}
}

func newTestService(t *testing.T, corpus analytics.Corpus, cacheTTL string) AnalyticsService {
	t.Helper()
	engine := analytics.NewEngine(corpus, analytics.NewFilter(), analytics.Config{}, nil)
	cfg := config.Analytics{MaxScan: 1000, CacheTTL: cacheTTL, MaxCompareEntities: 5}
	return NewAnalyticsService(engine, cfg, nil)
}

func TestTopEntitiesRejectsBadDates(t *testing.T) {
	svc := newTestService(t, &countingCorpus{articles: fixtureArticles()}, "5m")

	_, err := svc.TopEntities(context.Background(), "", "15/03/1990", "", 10)
	var validationErr *dto.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Message, "start_date")

	_, err = svc.TopEntities(context.Background(), "", "1990-05-01", "1990-01-01", 10)
	require.ErrorAs(t, err, &validationErr)
}

func TestTopEntitiesClampsLimit(t *testing.T) {
	svc := newTestService(t, &countingCorpus{articles: fixtureArticles()}, "5m")

	resp, err := svc.TopEntities(context.Background(), "", "", "", -3)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Entities)

	resp, err = svc.TopEntities(context.Background(), "", "", "", 10_000)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(resp.Entities), maxResultLimit)
}

func TestCachedResultSkipsSecondScan(t *testing.T) {
	corpus := &countingCorpus{articles: fixtureArticles()}
	svc := newTestService(t, corpus, "5m")

	first, err := svc.TopEntities(context.Background(), "GPE", "", "", 10)
	require.NoError(t, err)
	second, err := svc.TopEntities(context.Background(), "GPE", "", "", 10)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, corpus.calls)
}

func TestCacheExpiryTriggersRescan(t *testing.T) {
	corpus := &countingCorpus{articles: fixtureArticles()}
	svc := newTestService(t, corpus, "20ms")

	_, err := svc.TopKeywords(context.Background(), 10)
	require.NoError(t, err)
	time.Sleep(50 * time.Millisecond)
	_, err = svc.TopKeywords(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, 2, corpus.calls)
}

func TestDifferentParamsUseDifferentCacheKeys(t *testing.T) {
	corpus := &countingCorpus{articles: fixtureArticles()}
	svc := newTestService(t, corpus, "5m")

	_, err := svc.TopEntities(context.Background(), "GPE", "", "", 10)
	require.NoError(t, err)
	_, err = svc.TopEntities(context.Background(), "PERSON", "", "", 10)
	require.NoError(t, err)

	assert.Equal(t, 2, corpus.calls)
}

func TestUnavailableStoreIsNotCached(t *testing.T) {
	corpus := &countingCorpus{err: errors.New("connection refused")}
	svc := newTestService(t, corpus, "5m")

	_, err := svc.TopEntities(context.Background(), "", "", "", 10)
	require.ErrorIs(t, err, analytics.ErrSourceUnavailable)
	_, err = svc.TopEntities(context.Background(), "", "", "", 10)
	require.ErrorIs(t, err, analytics.ErrSourceUnavailable)

	assert.Equal(t, 2, corpus.calls)
}

func TestKeywordTrendValidation(t *testing.T) {
	svc := newTestService(t, &countingCorpus{articles: fixtureArticles()}, "5m")

	_, err := svc.KeywordTrend(context.Background(), &dto.KeywordTrendRequest{})
	var validationErr *dto.ValidationError
	require.ErrorAs(t, err, &validationErr)

	_, err = svc.KeywordTrend(context.Background(), &dto.KeywordTrendRequest{
		Keywords:    []string{"talks"},
		Granularity: "fortnight",
	})
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Message, "granularity")
}

func TestKeywordTrendDefaultsToMonthly(t *testing.T) {
	svc := newTestService(t, &countingCorpus{articles: fixtureArticles()}, "5m")

	resp, err := svc.KeywordTrend(context.Background(), &dto.KeywordTrendRequest{
		Keywords: []string{"delegation"},
	})
	require.NoError(t, err)
	require.Len(t, resp.Trends["delegation"], 1)
	assert.Equal(t, "1990-04", resp.Trends["delegation"][0].Bucket)
}

func TestCompareEntitiesTruncatesList(t *testing.T) {
	corpus := &countingCorpus{articles: fixtureArticles()}
	svc := newTestService(t, corpus, "5m")

	resp, err := svc.CompareEntities(context.Background(), &dto.CompareEntitiesRequest{
		Entities: []string{"Pakistan", "India", "China", "Japan", "Iran", "Iraq", "Israel"},
	})
	require.NoError(t, err)
	assert.Len(t, resp.Comparison, 5)
}

func TestCompareEntitiesDropsDuplicatesAndBlanks(t *testing.T) {
	svc := newTestService(t, &countingCorpus{articles: fixtureArticles()}, "5m")

	resp, err := svc.CompareEntities(context.Background(), &dto.CompareEntitiesRequest{
		Entities: []string{"Pakistan", " ", "pakistan", "India"},
	})
	require.NoError(t, err)
	assert.Len(t, resp.Comparison, 2)
}

func TestEntityTrendNormalizesEntityName(t *testing.T) {
	svc := newTestService(t, &countingCorpus{articles: fixtureArticles()}, "5m")

	resp, err := svc.EntityTrend(context.Background(), "Pakistani", "", "", "month")
	require.NoError(t, err)
	assert.Equal(t, "Pakistan", resp.Entity)
	require.Len(t, resp.Trend, 2)
}
