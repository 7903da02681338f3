package common

const (
	RedisStreamPageScan = "newspaper.page.scan"

	RedisStreamGroup    = "ingestion-group"
	RedisStreamConsumer = "ingestion-consumer"
)

// Sentiment labels produced by the annotator.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// TopicUncategorized is the fallback topic label for unclassified articles.
const TopicUncategorized = "Uncategorized"
