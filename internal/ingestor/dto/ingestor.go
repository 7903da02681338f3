package dto

// PageScanTask is the payload enqueued for every scanned page image.
type PageScanTask struct {
	ImagePath string `json:"image_path"`
}

// PageMetadata is the publication metadata extracted from a page scan.
type PageMetadata struct {
	Year       int `json:"year"`
	Month      int `json:"month"`
	Day        int `json:"day"`
	PageNumber int `json:"page_number"`
}

// OCRArticle is one article segmented out of a page scan.
type OCRArticle struct {
	Number   int    `json:"number"`
	Headline string `json:"headline"`
	Content  string `json:"content"`
}

// EntityAnnotation is one named entity found in an article.
type EntityAnnotation struct {
	Text      string `json:"text"`
	Type      string `json:"type"`
	StartChar int    `json:"start_char"`
	EndChar   int    `json:"end_char"`
}

// AnnotationResult is the NLP annotation of a single article.
type AnnotationResult struct {
	Entities       []EntityAnnotation `json:"entities"`
	SentimentScore float64            `json:"sentiment_score"`
	SentimentLabel string             `json:"sentiment_label"`
	TopicLabel     string             `json:"topic_label"`
}

// PageResult summarizes the processing of one page image.
type PageResult struct {
	ImagePath       string `json:"image_path"`
	PublicationDate string `json:"publication_date"`
	PageNumber      int    `json:"page_number"`
	ArticlesStored  int    `json:"articles_stored"`
	ArticlesFailed  int    `json:"articles_failed"`
}
