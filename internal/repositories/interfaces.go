package repositories

import (
	"context"

	"github.com/DormLink-2025/repair-service/internal/models"
)

// ===== FILTERS =====

// RepairOrderFilters narrows order listings. The service layer sets
// exactly one ownership filter according to the caller's role.
type RepairOrderFilters struct {
	StudentID   *uint
	RepairmanID *uint
	Status      *models.OrderStatus
}

// ===== ENTITY REPOSITORIES =====

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

type RepairOrderRepository interface {
	// Create persists the order and its attached images atomically.
	Create(ctx context.Context, order *models.RepairOrder) error

	// GetByID loads the order with student, repairman, category and
	// images resolved in one batched read.
	GetByID(ctx context.Context, id uint) (*models.RepairOrder, error)

	List(ctx context.Context, filters RepairOrderFilters) ([]*models.RepairOrder, error)

	// UpdateStatusFrom writes the order's mutated fields guarded by
	// `WHERE status = from`. Returns ErrStaleStatus when zero rows match,
	// meaning a concurrent transition committed first.
	UpdateStatusFrom(ctx context.Context, order *models.RepairOrder, from models.OrderStatus) error
}

type CommentRepository interface {
	// Create returns ErrDuplicate when the order already has a comment.
	Create(ctx context.Context, comment *models.Comment) error
	GetByOrderID(ctx context.Context, orderID uint) (*models.Comment, error)
	ExistsByOrderID(ctx context.Context, orderID uint) (bool, error)
}

type CategoryRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	List(ctx context.Context) ([]*models.Category, error)
}

type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *models.Announcement) error
	GetByID(ctx context.Context, id uint) (*models.Announcement, error)
	List(ctx context.Context) ([]*models.Announcement, error)
	Update(ctx context.Context, announcement *models.Announcement) error
	Delete(ctx context.Context, id uint) error
}

// ===== AGGREGATE =====

// Repository bundles the entity repositories behind one narrow store
// interface. It is constructed once and passed to the services; nothing
// reaches for a global database handle.
type Repository interface {
	User() UserRepository
	RepairOrder() RepairOrderRepository
	Comment() CommentRepository
	Category() CategoryRepository
	Announcement() AnnouncementRepository

	// WithTransaction runs fn against a transaction-scoped Repository.
	// fn returning an error rolls back everything it wrote.
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	Ping(ctx context.Context) error
	Close() error
}

// RepositoryManager manages repository lifecycle.
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
