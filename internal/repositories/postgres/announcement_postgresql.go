package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/DormLink-2025/repair-service/internal/models"
	"github.com/DormLink-2025/repair-service/internal/repositories"
)

type AnnouncementPostgreSQL struct {
	db *gorm.DB
}

func NewAnnouncementPostgreSQL(db *gorm.DB) repositories.AnnouncementRepository {
	return &AnnouncementPostgreSQL{db: db}
}

func (r *AnnouncementPostgreSQL) Create(ctx context.Context, announcement *models.Announcement) error {
	if err := r.db.WithContext(ctx).Create(announcement).Error; err != nil {
		return fmt.Errorf("failed to create announcement: %w", err)
	}
	return nil
}

func (r *AnnouncementPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Announcement, error) {
	var announcement models.Announcement
	if err := r.db.WithContext(ctx).Preload("Author").First(&announcement, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get announcement: %w", err)
	}
	return &announcement, nil
}

func (r *AnnouncementPostgreSQL) List(ctx context.Context) ([]*models.Announcement, error) {
	var announcements []*models.Announcement
	if err := r.db.WithContext(ctx).Preload("Author").Order("created_at DESC").Find(&announcements).Error; err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	return announcements, nil
}

func (r *AnnouncementPostgreSQL) Update(ctx context.Context, announcement *models.Announcement) error {
	result := r.db.WithContext(ctx).Model(&models.Announcement{}).Where("id = ?", announcement.ID).Updates(map[string]interface{}{
		"title":      announcement.Title,
		"content":    announcement.Content,
		"updated_at": announcement.UpdatedAt,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update announcement: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *AnnouncementPostgreSQL) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Announcement{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete announcement: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
