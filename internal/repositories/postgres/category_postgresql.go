package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/DormLink-2025/repair-service/internal/cache"
	"github.com/DormLink-2025/repair-service/internal/models"
	"github.com/DormLink-2025/repair-service/internal/repositories"
)

type CategoryPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewCategoryPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.CategoryRepository {
	return &CategoryPostgreSQL{db: db, cacheManager: cacheManager}
}

func (r *CategoryPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &category, nil
}

// List returns the full taxonomy. Seed data, so it is cached with a
// long TTL.
func (r *CategoryPostgreSQL) List(ctx context.Context) ([]*models.Category, error) {
	var categories []*models.Category

	err := r.cacheManager.Category.CacheOrExecute(ctx, "list", &categories, cache.CategoryCacheConfig.TTL, func() (interface{}, error) {
		var dbCategories []*models.Category
		if err := r.db.WithContext(ctx).Order("id ASC").Find(&dbCategories).Error; err != nil {
			return nil, fmt.Errorf("failed to list categories: %w", err)
		}
		return dbCategories, nil
	})
	if err != nil {
		return nil, err
	}
	return categories, nil
}
