package repository

import (
	"context"
	"errors"

	"mediascope/internal/entity"

	"gorm.io/gorm"
)

// TopicRepository maintains the topic catalogue.
type TopicRepository interface {
	IncrementArticleCount(ctx context.Context, topicName string) error
}

// NewTopicRepository creates a new GORM-based topic repository.
func NewTopicRepository(db *gorm.DB) TopicRepository {
	return &topicRepository{db: db}
}

type topicRepository struct {
	db *gorm.DB
}

// IncrementArticleCount bumps the article count for the topic, creating the
// topic row on first sight.
func (r *topicRepository) IncrementArticleCount(ctx context.Context, topicName string) error {
	var topic entity.Topic
	err := r.db.WithContext(ctx).
		Where("topic_name = ?", topicName).
		First(&topic).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			topic = entity.Topic{TopicName: topicName, ArticleCount: 1}
			return r.db.WithContext(ctx).Create(&topic).Error
		}
		return err
	}

	return r.db.WithContext(ctx).
		Model(&entity.Topic{}).
		Where("topic_id = ?", topic.TopicID).
		UpdateColumn("article_count", gorm.Expr("article_count + 1")).Error
}
