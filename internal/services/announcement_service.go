package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DormLink-2025/repair-service/internal/models"
	"github.com/DormLink-2025/repair-service/internal/repositories"
	"github.com/DormLink-2025/repair-service/internal/validator"
)

type announcementService struct {
	repo      repositories.Repository
	validator *validator.Validator
	logger    *slog.Logger
}

func NewAnnouncementService(repo repositories.Repository, v *validator.Validator, logger *slog.Logger) AnnouncementService {
	return &announcementService{repo: repo, validator: v, logger: logger}
}

func (s *announcementService) List(ctx context.Context) ([]*models.AnnouncementInfo, error) {
	announcements, err := s.repo.Announcement().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}

	infos := make([]*models.AnnouncementInfo, 0, len(announcements))
	for _, a := range announcements {
		infos = append(infos, toAnnouncementInfo(a))
	}
	return infos, nil
}

func (s *announcementService) Create(ctx context.Context, actor Actor, req models.CreateAnnouncementRequest) (*models.AnnouncementInfo, error) {
	if err := Decide(actor, ActionManageNotices, Perspective{}); err != nil {
		return nil, err
	}
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	announcement := &models.Announcement{
		Title:     req.Title,
		Content:   req.Content,
		CreatedBy: actor.ID,
	}
	if err := s.repo.Announcement().Create(ctx, announcement); err != nil {
		return nil, fmt.Errorf("failed to create announcement: %w", err)
	}

	s.logger.Info("announcement created", "announcement_id", announcement.ID, "created_by", actor.ID)
	return toAnnouncementInfo(announcement), nil
}

func (s *announcementService) Update(ctx context.Context, actor Actor, id uint, req models.UpdateAnnouncementRequest) (*models.AnnouncementInfo, error) {
	if err := Decide(actor, ActionManageNotices, Perspective{}); err != nil {
		return nil, err
	}
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	announcement, err := s.repo.Announcement().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, fmt.Errorf("failed to load announcement: %w", err)
	}

	if req.Title != nil {
		announcement.Title = *req.Title
	}
	if req.Content != nil {
		announcement.Content = *req.Content
	}

	if err := s.repo.Announcement().Update(ctx, announcement); err != nil {
		return nil, fmt.Errorf("failed to update announcement: %w", err)
	}
	return toAnnouncementInfo(announcement), nil
}

func (s *announcementService) Delete(ctx context.Context, actor Actor, id uint) error {
	if err := Decide(actor, ActionManageNotices, Perspective{}); err != nil {
		return err
	}

	if err := s.repo.Announcement().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrAnnouncementNotFound
		}
		return fmt.Errorf("failed to delete announcement: %w", err)
	}

	s.logger.Info("announcement deleted", "announcement_id", id, "deleted_by", actor.ID)
	return nil
}

func toAnnouncementInfo(a *models.Announcement) *models.AnnouncementInfo {
	info := &models.AnnouncementInfo{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
	if a.Author != nil {
		info.CreatedBy = a.Author.Name
	}
	return info
}
