package dto

// KeywordSearchRequest is the body of the keyword search endpoint. The query
// is matched against headlines and content.
type KeywordSearchRequest struct {
	Query     string `json:"query"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	Sentiment string `json:"sentiment,omitempty"`
	Topic     string `json:"topic,omitempty"`
	Limit     int    `json:"limit,omitempty"`
	Offset    int    `json:"offset,omitempty"`
}

// KeywordSearchResponse wraps keyword search hits.
type KeywordSearchResponse struct {
	Total    int               `json:"total"`
	Query    string            `json:"query"`
	Articles []ArticleListItem `json:"articles"`
}

// EntitySearchRequest is the body of the entity search endpoint.
type EntitySearchRequest struct {
	EntityName string `json:"entity_name"`
	EntityType string `json:"entity_type,omitempty"`
	StartDate  string `json:"start_date,omitempty"`
	EndDate    string `json:"end_date,omitempty"`
	Limit      int    `json:"limit,omitempty"`
}

// EntitySearchResponse wraps entity search hits.
type EntitySearchResponse struct {
	Total    int               `json:"total"`
	Entity   string            `json:"entity"`
	Articles []ArticleListItem `json:"articles"`
}

// TopicDTO is one row of the topic catalogue.
type TopicDTO struct {
	TopicID      int      `json:"topic_id"`
	TopicName    string   `json:"topic_name"`
	Keywords     []string `json:"keywords"`
	ArticleCount int      `json:"article_count"`
}

// KeywordSuggestion is one entry of the keyword suggestion list, derived
// from entity frequency.
type KeywordSuggestion struct {
	Keyword   string `json:"keyword"`
	Type      string `json:"type"`
	Frequency int    `json:"frequency"`
}
