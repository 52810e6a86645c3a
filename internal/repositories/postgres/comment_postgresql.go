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

type CommentPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewCommentPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.CommentRepository {
	return &CommentPostgreSQL{db: db, cacheManager: cacheManager}
}

func (r *CommentPostgreSQL) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repositories.ErrDuplicate
		}
		return fmt.Errorf("failed to create comment: %w", err)
	}
	_ = r.cacheManager.Comment.Delete(ctx, fmt.Sprintf("order:%d", comment.RepairOrderID))
	return nil
}

func (r *CommentPostgreSQL) GetByOrderID(ctx context.Context, orderID uint) (*models.Comment, error) {
	cacheKey := fmt.Sprintf("order:%d", orderID)
	var comment models.Comment

	err := r.cacheManager.Comment.CacheOrExecute(ctx, cacheKey, &comment, cache.CommentCacheConfig.TTL, func() (interface{}, error) {
		var dbComment models.Comment
		err := r.db.WithContext(ctx).
			Preload("Student").
			Where("repair_order_id = ?", orderID).
			First(&dbComment).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, repositories.ErrNotFound
			}
			return nil, fmt.Errorf("failed to get comment: %w", err)
		}
		return &dbComment, nil
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *CommentPostgreSQL) ExistsByOrderID(ctx context.Context, orderID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Comment{}).Where("repair_order_id = ?", orderID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check comment existence: %w", err)
	}
	return count > 0, nil
}
