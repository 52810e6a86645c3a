package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DormLink-2025/repair-service/internal/models"
	"github.com/DormLink-2025/repair-service/internal/repositories"
	"github.com/DormLink-2025/repair-service/internal/validator"
)

type commentService struct {
	repo      repositories.Repository
	validator *validator.Validator
	logger    *slog.Logger
}

func NewCommentService(repo repositories.Repository, v *validator.Validator, logger *slog.Logger) CommentService {
	return &commentService{repo: repo, validator: v, logger: logger}
}

// Create submits the one rating a student may leave on a completed
// order. Guards run in order: order exists, order completed, caller
// owns it, rating valid, no prior comment. The uniqueness re-check and
// the insert share a transaction; a duplicate-key race still surfaces
// as a conflict.
func (s *commentService) Create(ctx context.Context, actor Actor, req models.CreateCommentRequest) (*models.CommentInfo, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	comment := &models.Comment{
		RepairOrderID: req.RepairOrderID,
		StudentID:     actor.ID,
		Rating:        req.Rating,
		Content:       req.Content,
	}

	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		order, err := tx.RepairOrder().GetByID(ctx, req.RepairOrderID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrOrderNotFound
			}
			return fmt.Errorf("failed to load repair order: %w", err)
		}

		if order.Status != models.StatusCompleted {
			return NewTransitionError(order.ID, order.Status, "comment on")
		}

		if err := Decide(actor, ActionCreateComment, Perspective{IsOwner: order.StudentID == actor.ID}); err != nil {
			return err
		}

		exists, err := tx.Comment().ExistsByOrderID(ctx, req.RepairOrderID)
		if err != nil {
			return fmt.Errorf("failed to check existing comment: %w", err)
		}
		if exists {
			return NewConflictError("comment", "order already has a comment")
		}

		if err := tx.Comment().Create(ctx, comment); err != nil {
			if repositories.IsDuplicateError(err) {
				return NewConflictError("comment", "order already has a comment")
			}
			return fmt.Errorf("failed to create comment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("comment created",
		"order_id", req.RepairOrderID,
		"student_id", actor.ID,
		"rating", req.Rating,
	)
	return toCommentInfo(comment), nil
}

func (s *commentService) GetByOrderID(ctx context.Context, actor Actor, orderID uint) (*models.CommentInfo, error) {
	order, err := s.repo.RepairOrder().GetByID(ctx, orderID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to load repair order: %w", err)
	}

	if err := Decide(actor, ActionViewOrder, Perspective{IsOwner: order.StudentID == actor.ID}); err != nil {
		return nil, err
	}

	comment, err := s.repo.Comment().GetByOrderID(ctx, orderID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to load comment: %w", err)
	}
	return toCommentInfo(comment), nil
}
