package repository

import (
	"context"

	"mediascope/internal/entity"

	"gorm.io/gorm"
)

// ArticleRepository persists annotated articles and their entities.
type ArticleRepository interface {
	Create(ctx context.Context, article *entity.Article) error
}

// NewArticleRepository creates a new GORM-based article repository.
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

type articleRepository struct {
	db *gorm.DB
}

// Create stores the article together with its entity mentions.
func (r *articleRepository) Create(ctx context.Context, article *entity.Article) error {
	return r.db.WithContext(ctx).Create(article).Error
}
