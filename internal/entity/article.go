package entity

import (
	"time"

	"gorm.io/datatypes"
)

// Article represents one extracted article from a newspaper page.
type Article struct {
	ID             string          `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	NewspaperID    string          `gorm:"type:uuid;not null;index" json:"newspaper_id"`
	ArticleNumber  int             `json:"article_number"`
	Headline       string          `gorm:"not null" json:"headline"`
	Content        string          `json:"content"`
	WordCount      int             `json:"word_count"`
	BoundingBox    datatypes.JSON  `json:"bounding_box,omitempty"`
	SentimentScore float64         `json:"sentiment_score"`
	SentimentLabel string          `gorm:"index" json:"sentiment_label"`
	TopicLabel     string          `json:"topic_label"`
	TopicID        *int            `json:"topic_id,omitempty"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	Entities       []ArticleEntity `gorm:"foreignKey:ArticleID" json:"entities,omitempty"`
	Newspaper      *Newspaper      `gorm:"foreignKey:NewspaperID;references:ID" json:"-"`
}

// TableName specifies the table name for the Article model.
func (Article) TableName() string {
	return "articles"
}

// ArticleEntity represents one named-entity mention extracted from an article.
// Duplicates within one article are kept; extraction order is preserved by ID.
type ArticleEntity struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ArticleID  string    `gorm:"type:uuid;not null;index" json:"article_id"`
	EntityText string    `gorm:"not null" json:"text"`
	EntityType string    `gorm:"not null;index" json:"type"`
	StartChar  int       `json:"start_char"`
	EndChar    int       `json:"end_char"`
	Confidence float64   `gorm:"default:1.0" json:"confidence"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the ArticleEntity model.
func (ArticleEntity) TableName() string {
	return "article_entities"
}
