package repository

import (
	"context"
	"errors"

	"mediascope/internal/entity"

	"gorm.io/gorm"
)

// NewspaperRepository persists scanned newspaper pages.
type NewspaperRepository interface {
	Create(ctx context.Context, newspaper *entity.Newspaper) error
	ExistsByImagePath(ctx context.Context, imagePath string) (bool, error)
}

// NewNewspaperRepository creates a new GORM-based newspaper repository.
func NewNewspaperRepository(db *gorm.DB) NewspaperRepository {
	return &newspaperRepository{db: db}
}

type newspaperRepository struct {
	db *gorm.DB
}

func (r *newspaperRepository) Create(ctx context.Context, newspaper *entity.Newspaper) error {
	return r.db.WithContext(ctx).Create(newspaper).Error
}

// ExistsByImagePath reports whether the page scan was already ingested.
func (r *newspaperRepository) ExistsByImagePath(ctx context.Context, imagePath string) (bool, error) {
	var newspaper entity.Newspaper
	err := r.db.WithContext(ctx).
		Select("id").
		Where("image_path = ?", imagePath).
		First(&newspaper).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
