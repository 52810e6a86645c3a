package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DormLink-2025/repair-service/internal/auth"
	"github.com/DormLink-2025/repair-service/internal/repositories"
	"github.com/DormLink-2025/repair-service/internal/validator"
)

// DefaultServiceManager wires the concrete services over one shared
// repository.
type DefaultServiceManager struct {
	repo   repositories.Repository
	logger *slog.Logger

	authService         AuthService
	repairService       RepairService
	commentService      CommentService
	userService         UserService
	announcementService AnnouncementService
	categoryService     CategoryService
	exportService       ExportService
}

func NewDefaultServiceManager(repo repositories.Repository, tokens *auth.TokenManager, logger *slog.Logger, v *validator.Validator) *DefaultServiceManager {
	return &DefaultServiceManager{
		repo:   repo,
		logger: logger,

		authService:         NewAuthService(repo, tokens, v, logger),
		repairService:       NewRepairService(repo, v, logger),
		commentService:      NewCommentService(repo, v, logger),
		userService:         NewUserService(repo, v, logger),
		announcementService: NewAnnouncementService(repo, v, logger),
		categoryService:     NewCategoryService(repo),
		exportService:       NewExportService(repo, logger),
	}
}

func (m *DefaultServiceManager) Auth() AuthService                 { return m.authService }
func (m *DefaultServiceManager) Repair() RepairService             { return m.repairService }
func (m *DefaultServiceManager) Comment() CommentService           { return m.commentService }
func (m *DefaultServiceManager) User() UserService                 { return m.userService }
func (m *DefaultServiceManager) Announcement() AnnouncementService { return m.announcementService }
func (m *DefaultServiceManager) Category() CategoryService         { return m.categoryService }
func (m *DefaultServiceManager) Export() ExportService             { return m.exportService }

func (m *DefaultServiceManager) Initialize(ctx context.Context) error {
	if err := m.repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository not reachable: %w", err)
	}
	m.logger.Info("services initialized")
	return nil
}

func (m *DefaultServiceManager) HealthCheck(ctx context.Context) error {
	return m.repo.Ping(ctx)
}

func (m *DefaultServiceManager) Shutdown(ctx context.Context) error {
	m.logger.Info("services shut down")
	return nil
}
