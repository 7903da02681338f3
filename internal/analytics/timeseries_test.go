package analytics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketKeyGranularities(t *testing.T) {
	day, err := bucketKey("1990-03-15", GranularityDay)
	require.NoError(t, err)
	assert.Equal(t, "1990-03-15", day)

	month, err := bucketKey("1990-03-15", GranularityMonth)
	require.NoError(t, err)
	assert.Equal(t, "1990-03", month)

	week, err := bucketKey("1990-03-15", GranularityWeek)
	require.NoError(t, err)
	assert.Equal(t, "1990-W11", week)
}

func TestBucketKeyISOWeekYearBoundary(t *testing.T) {
	// 1991-12-30 belongs to ISO week 1 of 1992.
	week, err := bucketKey("1991-12-30", GranularityWeek)
	require.NoError(t, err)
	assert.Equal(t, "1992-W01", week)
}

func TestKeywordTimeSeries(t *testing.T) {
	engine := newTestEngine(talksCorpus()...)

	series, err := engine.KeywordTimeSeries(context.Background(), "india", nil, GranularityMonth)
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.Equal(t, TimeBucket{Bucket: "1990-03", Count: 1}, series[0])
	assert.Equal(t, TimeBucket{Bucket: "1990-04", Count: 1}, series[1])
}

func TestKeywordTimeSeriesDateRange(t *testing.T) {
	engine := newTestEngine(talksCorpus()...)

	series, err := engine.KeywordTimeSeries(context.Background(), "india",
		&DateRange{Start: "1990-04-01", End: "1990-04-30"}, GranularityDay)
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Equal(t, "1990-04-02", series[0].Bucket)
}

func TestEntityTimeSeriesNormalizedMatchAndSentiment(t *testing.T) {
	engine := newTestEngine(talksCorpus()...)

	// Querying the demonym matches mentions normalized to Pakistan.
	series, err := engine.EntityTimeSeries(context.Background(), "Pakistani", nil, GranularityMonth)
	require.NoError(t, err)
	require.Len(t, series, 2)

	march := series[0]
	assert.Equal(t, "1990-03", march.Bucket)
	assert.Equal(t, 1, march.Count)
	assert.Equal(t, 1, march.Positive)
	assert.InDelta(t, 1.0, march.SentimentScore, 1e-9)

	april := series[1]
	assert.Equal(t, "1990-04", april.Bucket)
	assert.Equal(t, 1, april.Neutral)
	assert.InDelta(t, 0.0, april.SentimentScore, 1e-9)
}

func TestCompareEntities(t *testing.T) {
	engine := newTestEngine(talksCorpus()...)

	result, err := engine.CompareEntities(context.Background(), []string{"Pakistani", "India", "China"}, nil)
	require.NoError(t, err)
	require.Len(t, result, 3)

	pakistan := result[0]
	assert.Equal(t, "Pakistan", pakistan.Entity)
	assert.Equal(t, 2, pakistan.Mentions)
	assert.Equal(t, 1, pakistan.Sentiment.Positive)
	assert.Equal(t, 1, pakistan.Sentiment.Neutral)
	require.NotEmpty(t, pakistan.TopTopics)
	assert.Equal(t, LabelCount{Label: "diplomacy", Count: 2}, pakistan.TopTopics[0])
	require.Len(t, pakistan.CoMentions, 1)
	assert.Equal(t, LabelCount{Label: "India", Count: 2}, pakistan.CoMentions[0])

	china := result[2]
	assert.Equal(t, "China", china.Entity)
	assert.Equal(t, 1, china.Mentions)
	assert.Equal(t, 1, china.Sentiment.Negative)
	assert.Empty(t, china.CoMentions)
}

func TestCompareEntitiesDeduplicatesRequests(t *testing.T) {
	engine := newTestEngine(talksCorpus()...)

	result, err := engine.CompareEntities(context.Background(), []string{"Pakistan", "Pakistani", "Pakistanis"}, nil)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "Pakistan", result[0].Entity)
}

func TestLocationAnalytics(t *testing.T) {
	articles := talksCorpus()
	// A non-GPE mention must never appear as a location.
	articles[0].Entities = append(articles[0].Entities, EntityMention{Text: "Benazir Bhutto", Type: "PERSON"})
	engine := newTestEngine(articles...)

	result, err := engine.LocationAnalytics(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, result, 3)

	first := result[0]
	assert.Equal(t, "India", first.Location, "India and Pakistan tie on mentions; alphabetical order wins")
	assert.Equal(t, 2, first.Mentions)
	require.NotEmpty(t, first.Timeline)
	assert.Equal(t, TimeBucket{Bucket: "1990-03", Count: 1}, first.Timeline[0])
	require.NotEmpty(t, first.TopTopics)
	assert.Equal(t, "diplomacy", first.TopTopics[0].Label)

	for _, loc := range result {
		assert.NotEqual(t, "Benazir Bhutto", loc.Location)
	}
}
