package repository

import (
	"context"

	"mediascope/internal/entity"

	"gorm.io/gorm"
)

// ArticleFilters narrows article list and search queries.
type ArticleFilters struct {
	StartDate string
	EndDate   string
	Topic     string
	Sentiment string
}

// ArticleRepository defines read access to stored articles.
type ArticleRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Article, error)
	List(ctx context.Context, filters ArticleFilters, limit, offset int) ([]entity.Article, int64, error)
	SearchKeyword(ctx context.Context, query string, filters ArticleFilters, limit, offset int) ([]entity.Article, int64, error)
	SearchByEntity(ctx context.Context, entityName, entityType string, filters ArticleFilters, limit int) ([]entity.Article, error)
	FindForSummary(ctx context.Context, filters ArticleFilters, limit int) ([]entity.Article, error)
	FindAll(ctx context.Context, limit int) ([]entity.Article, error)
	SuggestKeywords(ctx context.Context, limit int) ([]KeywordFrequencyRow, error)
}

// KeywordFrequencyRow is one aggregated entity-frequency row used for
// keyword suggestions.
type KeywordFrequencyRow struct {
	Keyword   string `gorm:"column:keyword"`
	Type      string `gorm:"column:type"`
	Frequency int    `gorm:"column:frequency"`
}

// NewArticleRepository creates a new GORM-based article repository.
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

type articleRepository struct {
	db *gorm.DB
}

// FindByID retrieves one article with its entities and page metadata.
func (r *articleRepository) FindByID(ctx context.Context, id string) (*entity.Article, error) {
	var article entity.Article
	err := r.db.WithContext(ctx).
		Preload("Entities", func(db *gorm.DB) *gorm.DB { return db.Order("article_entities.id ASC") }).
		Preload("Newspaper").
		First(&article, "articles.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// baseQuery joins articles to their newspaper page and applies common filters.
func (r *articleRepository) baseQuery(ctx context.Context, filters ArticleFilters) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&entity.Article{}).
		Select("articles.*").
		Joins("JOIN newspapers ON newspapers.id = articles.newspaper_id")
	if filters.StartDate != "" {
		q = q.Where("newspapers.publication_date >= ?", filters.StartDate)
	}
	if filters.EndDate != "" {
		q = q.Where("newspapers.publication_date <= ?", filters.EndDate)
	}
	if filters.Topic != "" {
		q = q.Where("articles.topic_label = ?", filters.Topic)
	}
	if filters.Sentiment != "" {
		q = q.Where("articles.sentiment_label = ?", filters.Sentiment)
	}
	return q
}

// List retrieves a filtered page of articles ordered by publication date.
func (r *articleRepository) List(ctx context.Context, filters ArticleFilters, limit, offset int) ([]entity.Article, int64, error) {
	var total int64
	if err := r.baseQuery(ctx, filters).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var articles []entity.Article
	err := r.baseQuery(ctx, filters).
		Preload("Newspaper").
		Order("newspapers.publication_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&articles).Error
	if err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

// SearchKeyword matches the query against headlines and content with ILIKE.
func (r *articleRepository) SearchKeyword(ctx context.Context, query string, filters ArticleFilters, limit, offset int) ([]entity.Article, int64, error) {
	pattern := "%" + query + "%"
	matched := func() *gorm.DB {
		return r.baseQuery(ctx, filters).
			Where("articles.headline ILIKE ? OR articles.content ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := matched().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var articles []entity.Article
	err := matched().
		Preload("Newspaper").
		Order("newspapers.publication_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&articles).Error
	if err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

// SearchByEntity finds articles mentioning the entity surface form.
func (r *articleRepository) SearchByEntity(ctx context.Context, entityName, entityType string, filters ArticleFilters, limit int) ([]entity.Article, error) {
	q := r.baseQuery(ctx, filters).
		Joins("JOIN article_entities ON article_entities.article_id = articles.id").
		Where("article_entities.entity_text ILIKE ?", "%"+entityName+"%")
	if entityType != "" {
		q = q.Where("article_entities.entity_type = ?", entityType)
	}

	var articles []entity.Article
	err := q.
		Distinct("articles.*").
		Preload("Newspaper").
		Preload("Entities").
		Limit(limit).
		Find(&articles).Error
	if err != nil {
		return nil, err
	}
	return articles, nil
}

// FindForSummary retrieves articles for the AI digest, oldest first.
func (r *articleRepository) FindForSummary(ctx context.Context, filters ArticleFilters, limit int) ([]entity.Article, error) {
	var articles []entity.Article
	err := r.baseQuery(ctx, filters).
		Order("newspapers.publication_date ASC").
		Limit(limit).
		Find(&articles).Error
	if err != nil {
		return nil, err
	}
	return articles, nil
}

// FindAll retrieves up to limit articles with entities and page metadata.
// This is the full-scan feed for the aggregation engine.
func (r *articleRepository) FindAll(ctx context.Context, limit int) ([]entity.Article, error) {
	var articles []entity.Article
	err := r.db.WithContext(ctx).
		Preload("Entities", func(db *gorm.DB) *gorm.DB { return db.Order("article_entities.id ASC") }).
		Preload("Newspaper").
		Limit(limit).
		Find(&articles).Error
	if err != nil {
		return nil, err
	}
	return articles, nil
}

// SuggestKeywords aggregates entity frequency for the suggestion endpoint.
func (r *articleRepository) SuggestKeywords(ctx context.Context, limit int) ([]KeywordFrequencyRow, error) {
	var rows []KeywordFrequencyRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT entity_text AS keyword, entity_type AS type, COUNT(*) AS frequency
		FROM article_entities
		GROUP BY entity_text, entity_type
		ORDER BY frequency DESC, keyword ASC
		LIMIT ?`, limit).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
