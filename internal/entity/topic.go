package entity

import (
	"time"

	"github.com/lib/pq"
)

// Topic represents a discovered topic cluster.
type Topic struct {
	TopicID      int            `gorm:"primaryKey" json:"topic_id"`
	TopicName    string         `gorm:"not null" json:"topic_name"`
	Keywords     pq.StringArray `gorm:"type:text[]" json:"keywords"`
	ArticleCount int            `json:"article_count"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the Topic model.
func (Topic) TableName() string {
	return "topics"
}
