package analytics

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"mediascope/pkg/common"
)

// Granularity is the time-bucket width of a trend series.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// Valid reports whether the granularity is one of day, week or month.
func (g Granularity) Valid() bool {
	switch g {
	case GranularityDay, GranularityWeek, GranularityMonth:
		return true
	}
	return false
}

// TimeBucket is one point of a keyword trend series.
type TimeBucket struct {
	Bucket string `json:"bucket"`
	Count  int    `json:"count"`
}

// EntityTimeBucket is one point of an entity trend series, with the per-label
// article counts and a derived (positive - negative) / count score.
type EntityTimeBucket struct {
	Bucket         string  `json:"bucket"`
	Count          int     `json:"count"`
	Positive       int     `json:"positive"`
	Neutral        int     `json:"neutral"`
	Negative       int     `json:"negative"`
	SentimentScore float64 `json:"sentiment_score"`
}

// LabelCount is a generic (label, count) pair used for topic and co-mention
// rankings inside comparison results.
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// SentimentBreakdown holds per-article sentiment label counts.
type SentimentBreakdown struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// EntityComparison is one entity's row in a compare-entities result.
type EntityComparison struct {
	Entity     string             `json:"entity"`
	Mentions   int                `json:"mentions"`
	Sentiment  SentimentBreakdown `json:"sentiment"`
	TopTopics  []LabelCount       `json:"top_topics"`
	CoMentions []LabelCount       `json:"co_mentions"`
}

// LocationStats is one location's row in a location-analytics result.
type LocationStats struct {
	Location  string             `json:"location"`
	Mentions  int                `json:"mentions"`
	Sentiment SentimentBreakdown `json:"sentiment"`
	TopTopics []LabelCount       `json:"top_topics"`
	Timeline  []TimeBucket       `json:"timeline"`
}

// bucketKey maps a canonical YYYY-MM-DD date key to its granularity bucket.
func bucketKey(dateKey string, g Granularity) (string, error) {
	switch g {
	case GranularityDay:
		return dateKey, nil
	case GranularityMonth:
		return dateKey[:7], nil
	case GranularityWeek:
		t, err := parseDate(dateKey)
		if err != nil {
			return "", err
		}
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week), nil
	}
	return "", fmt.Errorf("unknown granularity %q", g)
}

// KeywordTimeSeries counts articles whose headline or content contains the
// keyword (case-insensitive substring), bucketed by granularity and sorted
// ascending by bucket key.
func (e *Engine) KeywordTimeSeries(ctx context.Context, keyword string, dateRange *DateRange, g Granularity) ([]TimeBucket, error) {
	articles, err := e.scan(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(keyword)
	buckets := make(map[string]int)
	for _, a := range articles {
		key, ok := e.articleDateKey(a)
		if !ok || !dateRange.inRange(key) {
			continue
		}
		haystack := strings.ToLower(a.Headline + " " + a.Content)
		if !strings.Contains(haystack, needle) {
			continue
		}
		bucket, err := bucketKey(key, g)
		if err != nil {
			continue
		}
		buckets[bucket]++
	}

	result := make([]TimeBucket, 0, len(buckets))
	for b, c := range buckets {
		result = append(result, TimeBucket{Bucket: b, Count: c})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Bucket < result[j].Bucket })
	return result, nil
}

// EntityTimeSeries counts articles containing the normalized entity,
// bucketed by granularity with per-label sub-counts.
func (e *Engine) EntityTimeSeries(ctx context.Context, entityName string, dateRange *DateRange, g Granularity) ([]EntityTimeBucket, error) {
	articles, err := e.scan(ctx)
	if err != nil {
		return nil, err
	}

	target := Normalize(entityName)
	buckets := make(map[string]*EntityTimeBucket)
	for _, a := range articles {
		key, ok := e.articleDateKey(a)
		if !ok || !dateRange.inRange(key) {
			continue
		}
		if !e.containsEntity(a, target) {
			continue
		}
		name, err := bucketKey(key, g)
		if err != nil {
			continue
		}
		bucket, ok := buckets[name]
		if !ok {
			bucket = &EntityTimeBucket{Bucket: name}
			buckets[name] = bucket
		}
		bucket.Count++
		switch a.SentimentLabel {
		case common.SentimentPositive:
			bucket.Positive++
		case common.SentimentNegative:
			bucket.Negative++
		default:
			bucket.Neutral++
		}
	}

	result := make([]EntityTimeBucket, 0, len(buckets))
	for _, bucket := range buckets {
		if bucket.Count > 0 {
			bucket.SentimentScore = float64(bucket.Positive-bucket.Negative) / float64(bucket.Count)
		}
		result = append(result, *bucket)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Bucket < result[j].Bucket })
	return result, nil
}

// containsEntity reports whether the article has a surviving mention that
// normalizes to the target canonical text.
func (e *Engine) containsEntity(a Article, target string) bool {
	for _, m := range a.Entities {
		if !e.filter.Relevant(m) {
			continue
		}
		if strings.EqualFold(Normalize(m.Text), target) {
			return true
		}
	}
	return false
}

// CompareEntities accumulates mention counts, sentiment, topics and mutual
// co-mentions for the requested entities. Requested names are matched via
// normalization, so "Pakistani" matches mentions normalized to "Pakistan".
// The facade bounds the list to five names.
func (e *Engine) CompareEntities(ctx context.Context, entityNames []string, dateRange *DateRange) ([]EntityComparison, error) {
	articles, err := e.scan(ctx)
	if err != nil {
		return nil, err
	}

	type accum struct {
		mentions   int
		sentiment  SentimentBreakdown
		topics     map[string]int
		coMentions map[string]int
	}

	var targets []string
	stats := make(map[string]*accum)
	for _, name := range entityNames {
		target := Normalize(name)
		if _, dup := stats[target]; dup {
			continue
		}
		targets = append(targets, target)
		stats[target] = &accum{topics: make(map[string]int), coMentions: make(map[string]int)}
	}

	for _, a := range articles {
		if dateRange != nil {
			key, ok := e.articleDateKey(a)
			if !ok || !dateRange.inRange(key) {
				continue
			}
		}

		// Mention counts per requested entity within this article.
		present := make(map[string]int)
		for _, m := range a.Entities {
			if !e.filter.Relevant(m) {
				continue
			}
			text := Normalize(m.Text)
			if _, wanted := stats[text]; wanted {
				present[text]++
			}
		}
		if len(present) == 0 {
			continue
		}

		topic := a.TopicLabel
		if topic == "" {
			topic = common.TopicUncategorized
		}
		for text, mentions := range present {
			s := stats[text]
			s.mentions += mentions
			switch a.SentimentLabel {
			case common.SentimentPositive:
				s.sentiment.Positive++
			case common.SentimentNegative:
				s.sentiment.Negative++
			default:
				s.sentiment.Neutral++
			}
			s.topics[topic]++
			for other := range present {
				if other != text {
					s.coMentions[other]++
				}
			}
		}
	}

	result := make([]EntityComparison, 0, len(targets))
	for _, target := range targets {
		s := stats[target]
		result = append(result, EntityComparison{
			Entity:     target,
			Mentions:   s.mentions,
			Sentiment:  s.sentiment,
			TopTopics:  topLabels(s.topics, 5),
			CoMentions: topLabels(s.coMentions, 5),
		})
	}
	return result, nil
}

// LocationAnalytics aggregates GPE entities: mention counts, sentiment,
// top topics and a monthly timeline for the top 20 locations.
func (e *Engine) LocationAnalytics(ctx context.Context, dateRange *DateRange) ([]LocationStats, error) {
	articles, err := e.scan(ctx)
	if err != nil {
		return nil, err
	}

	type accum struct {
		mentions  int
		sentiment SentimentBreakdown
		topics    map[string]int
		timeline  map[string]int
	}
	stats := make(map[string]*accum)

	for _, a := range articles {
		key, hasDate := e.articleDateKey(a)
		if dateRange != nil && (!hasDate || !dateRange.inRange(key)) {
			continue
		}

		present := make(map[string]int)
		for _, m := range a.Entities {
			if m.Type != "GPE" || !e.filter.Relevant(m) {
				continue
			}
			present[Normalize(m.Text)]++
		}

		topic := a.TopicLabel
		if topic == "" {
			topic = common.TopicUncategorized
		}
		for location, mentions := range present {
			s, ok := stats[location]
			if !ok {
				s = &accum{topics: make(map[string]int), timeline: make(map[string]int)}
				stats[location] = s
			}
			s.mentions += mentions
			switch a.SentimentLabel {
			case common.SentimentPositive:
				s.sentiment.Positive++
			case common.SentimentNegative:
				s.sentiment.Negative++
			default:
				s.sentiment.Neutral++
			}
			s.topics[topic]++
			if hasDate {
				s.timeline[key[:7]]++
			}
		}
	}

	result := make([]LocationStats, 0, len(stats))
	for location, s := range stats {
		timeline := make([]TimeBucket, 0, len(s.timeline))
		for month, c := range s.timeline {
			timeline = append(timeline, TimeBucket{Bucket: month, Count: c})
		}
		sort.Slice(timeline, func(i, j int) bool { return timeline[i].Bucket < timeline[j].Bucket })
		result = append(result, LocationStats{
			Location:  location,
			Mentions:  s.mentions,
			Sentiment: s.sentiment,
			TopTopics: topLabels(s.topics, 3),
			Timeline:  timeline,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Mentions != result[j].Mentions {
			return result[i].Mentions > result[j].Mentions
		}
		return result[i].Location < result[j].Location
	})
	return truncate(result, 20), nil
}

// topLabels ranks a label counter descending by count with an ascending
// label tie-break and truncates to n.
func topLabels(counts map[string]int, n int) []LabelCount {
	result := make([]LabelCount, 0, len(counts))
	for label, c := range counts {
		result = append(result, LabelCount{Label: label, Count: c})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Label < result[j].Label
	})
	return truncate(result, n)
}
