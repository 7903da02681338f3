package dto

import "mediascope/internal/analytics"

// KeywordTrendRequest is the body of the keyword trend endpoint.
type KeywordTrendRequest struct {
	Keywords    []string `json:"keywords"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Granularity string   `json:"granularity,omitempty"`
}

// KeywordTrendResponse maps each requested keyword to its trend series.
type KeywordTrendResponse struct {
	StartDate string                            `json:"start_date"`
	EndDate   string                            `json:"end_date"`
	Trends    map[string][]analytics.TimeBucket `json:"trends"`
}

// EntityTrendResponse is the entity trend endpoint payload.
type EntityTrendResponse struct {
	Entity string                       `json:"entity"`
	Trend  []analytics.EntityTimeBucket `json:"trend"`
}

// CompareEntitiesRequest is the body of the compare-entities endpoint.
type CompareEntitiesRequest struct {
	Entities  []string `json:"entities"`
	StartDate string   `json:"start_date,omitempty"`
	EndDate   string   `json:"end_date,omitempty"`
}

// CompareEntitiesResponse wraps per-entity comparison rows.
type CompareEntitiesResponse struct {
	Comparison []analytics.EntityComparison `json:"comparison"`
}

// TopEntitiesResponse wraps the top-entities rows.
type TopEntitiesResponse struct {
	Entities []analytics.EntityCount `json:"entities"`
}

// SentimentByEntityResponse wraps per-entity sentiment rows.
type SentimentByEntityResponse struct {
	Entities []analytics.EntitySentiment `json:"entities"`
}

// CooccurrenceResponse wraps co-occurring entity pairs.
type CooccurrenceResponse struct {
	Pairs []analytics.EntityPair `json:"pairs"`
}

// TopKeywordsResponse wraps keyword frequency rows.
type TopKeywordsResponse struct {
	Keywords []analytics.KeywordCount `json:"keywords"`
}

// TopicDistributionResponse wraps the topic distribution buckets.
type TopicDistributionResponse struct {
	Distribution []analytics.TopicShare `json:"distribution"`
}

// LocationAnalyticsResponse wraps per-location aggregation rows.
type LocationAnalyticsResponse struct {
	Locations []analytics.LocationStats `json:"locations"`
}

// AISummaryRequest is the body of the AI summary endpoint.
type AISummaryRequest struct {
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	Topic     string `json:"topic,omitempty"`
}

// AISummaryResponse is the AI summary payload.
type AISummaryResponse struct {
	Summary      string `json:"summary"`
	ArticleCount int    `json:"article_count"`
	DateRange    string `json:"date_range"`
	Topic        string `json:"topic,omitempty"`
}
