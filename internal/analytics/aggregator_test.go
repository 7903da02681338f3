package analytics

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticCorpus serves a fixed article slice, honoring the scan cap.
type staticCorpus struct {
	articles []Article
	err      error
}

func (c *staticCorpus) Scan(_ context.Context, limit int) ([]Article, error) {
	if c.err != nil {
		return nil, c.err
	}
	if limit > 0 && len(c.articles) > limit {
		return c.articles[:limit], nil
	}
	return c.articles, nil
}

func newTestEngine(articles ...Article) *Engine {
	return NewEngine(&staticCorpus{articles: articles}, NewFilter(), Config{}, nil)
}

func gpe(text string) EntityMention {
	return EntityMention{Text: text, Type: "GPE"}
}

// talksCorpus is the shared three-article fixture: two articles pairing
// Pakistan and India (one via the demonym "Pakistani"), one about China.
func talksCorpus() []Article {
	return []Article{
		{
			ID:              "a",
			Headline:        "Pakistan and India talks",
			Content:         "Officials from Pakistan met Indian counterparts.",
			PublicationDate: "1990-03-15",
			SentimentLabel:  "positive",
			SentimentScore:  0.8,
			TopicLabel:      "diplomacy",
			Entities:        []EntityMention{gpe("Pakistan"), gpe("India")},
		},
		{
			ID:              "b",
			Headline:        "Pakistani officials visit India",
			Content:         "A delegation arrived in Delhi on Monday.",
			PublicationDate: "1990-04-02",
			SentimentLabel:  "neutral",
			SentimentScore:  0.0,
			TopicLabel:      "diplomacy",
			Entities:        []EntityMention{gpe("Pakistani"), gpe("India")},
		},
		{
			ID:              "c",
			Headline:        "Trade figures released",
			Content:         "Quarterly export numbers were announced in Beijing.",
			PublicationDate: "1990-04-10",
			SentimentLabel:  "negative",
			SentimentScore:  -0.6,
			TopicLabel:      "economy",
			Entities:        []EntityMention{gpe("China")},
		},
	}
}

func TestTopEntitiesCountsPerMention(t *testing.T) {
	// Pakistan appears 5 times across 3 articles, India 3 times.
	engine := newTestEngine(
		Article{ID: "1", PublicationDate: "1990-01-01", Entities: []EntityMention{gpe("Pakistan"), gpe("Pakistani"), gpe("India")}},
		Article{ID: "2", PublicationDate: "1990-01-02", Entities: []EntityMention{gpe("Pakistanis"), gpe("Pakistan"), gpe("India")}},
		Article{ID: "3", PublicationDate: "1990-01-03", Entities: []EntityMention{gpe("Pakistan"), gpe("India")}},
	)

	result, err := engine.TopEntities(context.Background(), "", nil, 10)
	require.NoError(t, err)
	require.Len(t, result, 2)

	assert.Equal(t, "Pakistan", result[0].Text)
	assert.Equal(t, 5, result[0].Count)
	assert.Equal(t, "India", result[1].Text)
	assert.Equal(t, 3, result[1].Count)
}

func TestTopEntitiesTypeAndDateFilter(t *testing.T) {
	engine := newTestEngine(
		Article{ID: "1", PublicationDate: "1990-01-10", Entities: []EntityMention{gpe("Pakistan"), {Text: "Benazir Bhutto", Type: "PERSON"}}},
		Article{ID: "2", PublicationDate: "1991-06-01", Entities: []EntityMention{gpe("Pakistan")}},
	)

	result, err := engine.TopEntities(context.Background(), "PERSON", nil, 10)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "Benazir Bhutto", result[0].Text)

	result, err = engine.TopEntities(context.Background(), "GPE", &DateRange{Start: "1990-01-01", End: "1990-12-31"}, 10)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, 1, result[0].Count)
}

func TestTopEntitiesExcludesFilteredMentions(t *testing.T) {
	engine := newTestEngine(Article{
		ID:              "1",
		PublicationDate: "1990-01-01",
		Entities: []EntityMention{
			gpe("Pakistan"),
			{Text: "1990", Type: "DATE"},
			{Text: "12", Type: "CARDINAL"},
			{Text: "Mr", Type: "PERSON"},
		},
	})

	result, err := engine.TopEntities(context.Background(), "", nil, 10)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "Pakistan", result[0].Text)
}

func TestSentimentByEntityNoiseThreshold(t *testing.T) {
	engine := newTestEngine(talksCorpus()...)

	result, err := engine.SentimentByEntity(context.Background(), "", 10)
	require.NoError(t, err)
	require.Len(t, result, 2, "China has a single contributing article and must be excluded")

	byName := make(map[string]EntitySentiment)
	for _, r := range result {
		byName[r.EntityText] = r
	}

	pakistan, ok := byName["Pakistan"]
	require.True(t, ok, "Pakistani in article b must normalize into Pakistan")
	assert.Equal(t, 2, pakistan.ArticleCount)
	assert.Equal(t, 1, pakistan.PositiveCount)
	assert.Equal(t, 1, pakistan.NeutralCount)
	assert.Equal(t, 0, pakistan.NegativeCount)
	assert.InDelta(t, 0.4, pakistan.AvgSentiment, 1e-9)

	india, ok := byName["India"]
	require.True(t, ok)
	assert.Equal(t, 2, india.ArticleCount)
}

func TestSentimentByEntityCountsPresenceNotMentions(t *testing.T) {
	engine := newTestEngine(
		Article{ID: "1", SentimentLabel: "positive", SentimentScore: 1, Entities: []EntityMention{gpe("Pakistan"), gpe("Pakistan"), gpe("Pakistani")}},
		Article{ID: "2", SentimentLabel: "negative", SentimentScore: -1, Entities: []EntityMention{gpe("Pakistan")}},
	)

	result, err := engine.SentimentByEntity(context.Background(), "", 10)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, 2, result[0].ArticleCount, "three mentions in one article count once")
	assert.InDelta(t, 0.0, result[0].AvgSentiment, 1e-9)
}

func TestCooccurrencePairOrderingAndMinCount(t *testing.T) {
	engine := newTestEngine(talksCorpus()...)

	result, err := engine.Cooccurrence(context.Background(), "", 2, 10)
	require.NoError(t, err)
	require.Len(t, result, 1)

	pair := result[0]
	assert.Equal(t, "India", pair.Text1, "pairs are ordered alphabetically")
	assert.Equal(t, "Pakistan", pair.Text2)
	assert.Equal(t, 2, pair.Count)
}

func TestCooccurrenceDeduplicatesWithinArticle(t *testing.T) {
	engine := newTestEngine(Article{
		ID:       "1",
		Entities: []EntityMention{gpe("Pakistan"), gpe("Pakistani"), gpe("India"), gpe("India")},
	})

	result, err := engine.Cooccurrence(context.Background(), "", 1, 10)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, 1, result[0].Count, "duplicates within one article contribute one pair")
}

func TestTopKeywordsRejectsNoiseTokens(t *testing.T) {
	engine := newTestEngine(Article{
		ID:       "1",
		Headline: "Talks resume",
		Content:  "The peace talks resumed in 1990 on 11/03 with the 3rd round at camp7 venue",
	})

	result, err := engine.TopKeywords(context.Background(), 50)
	require.NoError(t, err)

	words := make(map[string]int)
	for _, kw := range result {
		words[kw.Keyword] = kw.Frequency
	}

	assert.NotContains(t, words, "1990")
	assert.NotContains(t, words, "11/03")
	assert.NotContains(t, words, "the")
	assert.NotContains(t, words, "3rd")
	assert.NotContains(t, words, "camp7")
	assert.Equal(t, 2, words["talks"])
	assert.Contains(t, words, "peace")
	assert.Contains(t, words, "venue")
}

func TestTopicDistributionPercentagesSum(t *testing.T) {
	engine := newTestEngine(
		Article{ID: "1", TopicLabel: "diplomacy"},
		Article{ID: "2", TopicLabel: "diplomacy"},
		Article{ID: "3", TopicLabel: "economy"},
		Article{ID: "4"},
	)

	result, err := engine.TopicDistribution(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 3)

	assert.Equal(t, "diplomacy", result[0].Topic)
	assert.Equal(t, 2, result[0].Count)

	var sum float64
	seen := make(map[string]struct{})
	for _, share := range result {
		sum += share.Percentage
		seen[share.Topic] = struct{}{}
	}
	assert.Contains(t, seen, "Uncategorized")
	assert.InDelta(t, 100.0, sum, 0.1)
}

func TestOverviewBreakdown(t *testing.T) {
	engine := newTestEngine(talksCorpus()...)

	overview, err := engine.Overview(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, overview.TotalArticles)
	require.Len(t, overview.Breakdown, 3)

	assert.Equal(t, "positive", overview.Breakdown[0].Label)
	assert.Equal(t, 1, overview.Breakdown[0].Count)
	assert.InDelta(t, 33.33, overview.Breakdown[0].Percentage, 0.01)
	assert.InDelta(t, 0.8, overview.Breakdown[0].AvgScore, 1e-9)
}

func TestArticlesOverTime(t *testing.T) {
	engine := newTestEngine(talksCorpus()...)

	result, err := engine.ArticlesOverTime(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, MonthCount{Month: "1990-03", Count: 1}, result[0])
	assert.Equal(t, MonthCount{Month: "1990-04", Count: 2}, result[1])
}

func TestMalformedDateSkipsRecordOnly(t *testing.T) {
	articles := talksCorpus()
	articles = append(articles, Article{ID: "bad", PublicationDate: "not a date", Entities: []EntityMention{gpe("Pakistan")}})
	engine := newTestEngine(articles...)

	// Date-dependent aggregation skips the bad record and keeps scanning.
	result, err := engine.ArticlesOverTime(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 2)

	// Date-independent aggregation still counts it.
	top, err := engine.TopEntities(context.Background(), "", nil, 10)
	require.NoError(t, err)
	assert.Equal(t, "Pakistan", top[0].Text)
	assert.Equal(t, 3, top[0].Count)
}

func TestSourceUnavailable(t *testing.T) {
	engine := NewEngine(&staticCorpus{err: errors.New("connection refused")}, NewFilter(), Config{}, nil)

	_, err := engine.TopEntities(context.Background(), "", nil, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceUnavailable)

	_, err = engine.TopicDistribution(context.Background())
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestScanCapBoundsCorpus(t *testing.T) {
	var articles []Article
	for i := 0; i < 10; i++ {
		articles = append(articles, Article{ID: string(rune('a' + i)), Entities: []EntityMention{gpe("Pakistan")}})
	}
	engine := NewEngine(&staticCorpus{articles: articles}, NewFilter(), Config{MaxScan: 4}, nil)

	result, err := engine.TopEntities(context.Background(), "", nil, 10)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, 4, result[0].Count)
}

func TestAggregationIsIdempotent(t *testing.T) {
	engine := newTestEngine(talksCorpus()...)

	first, err := engine.TopEntities(context.Background(), "", nil, 10)
	require.NoError(t, err)
	second, err := engine.TopEntities(context.Background(), "", nil, 10)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	pairs1, err := engine.Cooccurrence(context.Background(), "", 1, 10)
	require.NoError(t, err)
	pairs2, err := engine.Cooccurrence(context.Background(), "", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, pairs1, pairs2)
}
