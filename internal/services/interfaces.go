package services

import (
	"context"

	"github.com/DormLink-2025/repair-service/internal/models"
)

// ===== SERVICE INTERFACES =====

type AuthService interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	GetProfile(ctx context.Context, userID uint) (*models.UserInfo, error)
	ChangePassword(ctx context.Context, userID uint, req models.ChangePasswordRequest) error
	UpdateProfile(ctx context.Context, userID uint, req models.UpdateProfileRequest) (*models.UserInfo, error)
}

type RepairService interface {
	// Create files a new order for the acting student.
	Create(ctx context.Context, actor Actor, req models.CreateRepairOrderRequest) (*models.CreateRepairOrderResponse, error)

	// List returns orders scoped to what the actor may see.
	List(ctx context.Context, actor Actor) ([]models.RepairOrderSummary, error)

	// ListPending returns the triage queue of pending orders.
	ListPending(ctx context.Context, actor Actor) ([]models.RepairOrderSummary, error)

	Get(ctx context.Context, actor Actor, orderID uint) (*models.RepairOrderDetail, error)

	// Lifecycle transitions. Each runs as one atomic read-modify-write.
	Approve(ctx context.Context, actor Actor, orderID uint) error
	Reject(ctx context.Context, actor Actor, orderID uint) error
	Accept(ctx context.Context, actor Actor, orderID uint) error
	Complete(ctx context.Context, actor Actor, orderID uint) error
}

type CommentService interface {
	Create(ctx context.Context, actor Actor, req models.CreateCommentRequest) (*models.CommentInfo, error)
	GetByOrderID(ctx context.Context, actor Actor, orderID uint) (*models.CommentInfo, error)
}

type UserService interface {
	List(ctx context.Context, actor Actor) ([]*models.UserInfo, error)
	Create(ctx context.Context, actor Actor, req models.CreateUserRequest) (*models.UserInfo, error)
	Update(ctx context.Context, actor Actor, userID uint, req models.UpdateUserRequest) (*models.UserInfo, error)
	Delete(ctx context.Context, actor Actor, userID uint) error
}

type AnnouncementService interface {
	List(ctx context.Context) ([]*models.AnnouncementInfo, error)
	Create(ctx context.Context, actor Actor, req models.CreateAnnouncementRequest) (*models.AnnouncementInfo, error)
	Update(ctx context.Context, actor Actor, id uint, req models.UpdateAnnouncementRequest) (*models.AnnouncementInfo, error)
	Delete(ctx context.Context, actor Actor, id uint) error
}

type CategoryService interface {
	List(ctx context.Context) ([]*models.Category, error)
}

type ExportService interface {
	// ExportOrders renders all orders as an xlsx workbook.
	ExportOrders(ctx context.Context, actor Actor) ([]byte, error)
}

// ===== SERVICE MANAGER =====

// ServiceManager provides access to all services and manages their
// lifecycle.
type ServiceManager interface {
	Auth() AuthService
	Repair() RepairService
	Comment() CommentService
	User() UserService
	Announcement() AnnouncementService
	Category() CategoryService
	Export() ExportService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
