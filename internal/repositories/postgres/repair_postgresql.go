package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/DormLink-2025/repair-service/internal/models"
	"github.com/DormLink-2025/repair-service/internal/repositories"
)

type RepairOrderPostgreSQL struct {
	db *gorm.DB
}

func NewRepairOrderPostgreSQL(db *gorm.DB) repositories.RepairOrderRepository {
	return &RepairOrderPostgreSQL{db: db}
}

// Create persists the order together with its attached images. Images
// ride along via the gorm association so the insert is atomic.
func (r *RepairOrderPostgreSQL) Create(ctx context.Context, order *models.RepairOrder) error {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("failed to create repair order: %w", err)
	}
	return nil
}

// GetByID loads the order with its related rows in one batched read.
// Names are resolved here, not lazily on field access.
func (r *RepairOrderPostgreSQL) GetByID(ctx context.Context, id uint) (*models.RepairOrder, error) {
	var order models.RepairOrder
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Repairman").
		Preload("Category").
		Preload("Images").
		First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get repair order: %w", err)
	}
	return &order, nil
}

func (r *RepairOrderPostgreSQL) List(ctx context.Context, filters repositories.RepairOrderFilters) ([]*models.RepairOrder, error) {
	query := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Repairman").
		Preload("Category").
		Preload("Images")

	if filters.StudentID != nil {
		query = query.Where("student_id = ?", *filters.StudentID)
	}
	if filters.RepairmanID != nil {
		query = query.Where("repairman_id = ?", *filters.RepairmanID)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}

	var orders []*models.RepairOrder
	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list repair orders: %w", err)
	}
	return orders, nil
}

// UpdateStatusFrom writes the transitioned fields guarded by the
// expected current status. Zero affected rows means another request
// transitioned the order first; the caller must treat its own read as
// stale.
func (r *RepairOrderPostgreSQL) UpdateStatusFrom(ctx context.Context, order *models.RepairOrder, from models.OrderStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.RepairOrder{}).
		Where("id = ? AND status = ?", order.ID, from).
		Updates(map[string]interface{}{
			"status":       order.Status,
			"repairman_id": order.RepairmanID,
			"completed_at": order.CompletedAt,
			"updated_at":   order.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update repair order status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrStaleStatus
	}
	return nil
}
