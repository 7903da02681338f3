package dto

import "time"

// EntityDTO is one named-entity mention attached to an article response.
type EntityDTO struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

// ArticleResponse is the full article payload with entities.
type ArticleResponse struct {
	ID              string      `json:"id"`
	Headline        string      `json:"headline"`
	Content         string      `json:"content"`
	WordCount       int         `json:"word_count"`
	PublicationDate string      `json:"publication_date"`
	PageNumber      int         `json:"page_number"`
	Section         string      `json:"section,omitempty"`
	SentimentScore  float64     `json:"sentiment_score"`
	SentimentLabel  string      `json:"sentiment_label"`
	TopicLabel      string      `json:"topic_label"`
	CreatedAt       time.Time   `json:"created_at"`
	Entities        []EntityDTO `json:"entities"`
}

// ArticleListItem is the truncated article payload for list endpoints.
type ArticleListItem struct {
	ID              string  `json:"id"`
	Headline        string  `json:"headline"`
	ContentPreview  string  `json:"content_preview"`
	PublicationDate string  `json:"publication_date"`
	PageNumber      int     `json:"page_number"`
	SentimentScore  float64 `json:"sentiment_score"`
	SentimentLabel  string  `json:"sentiment_label"`
	TopicLabel      string  `json:"topic_label"`
}

// ListArticlesRequest carries the list endpoint filters.
type ListArticlesRequest struct {
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
	Topic     string `query:"topic"`
	Sentiment string `query:"sentiment"`
	Limit     int    `query:"limit"`
	Offset    int    `query:"offset"`
}

// ListArticlesResponse wraps a page of article list items.
type ListArticlesResponse struct {
	Total    int               `json:"total"`
	Articles []ArticleListItem `json:"articles"`
}
