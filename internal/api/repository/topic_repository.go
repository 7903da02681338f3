package repository

import (
	"context"

	"mediascope/internal/entity"

	"gorm.io/gorm"
)

// TopicRepository defines read access to discovered topics.
type TopicRepository interface {
	FindAll(ctx context.Context) ([]entity.Topic, error)
}

// NewTopicRepository creates a new GORM-based topic repository.
func NewTopicRepository(db *gorm.DB) TopicRepository {
	return &topicRepository{db: db}
}

type topicRepository struct {
	db *gorm.DB
}

func (r *topicRepository) FindAll(ctx context.Context) ([]entity.Topic, error) {
	var topics []entity.Topic
	err := r.db.WithContext(ctx).
		Order("article_count DESC, topic_name ASC").
		Find(&topics).Error
	if err != nil {
		return nil, err
	}
	return topics, nil
}
