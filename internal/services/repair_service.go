package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/DormLink-2025/repair-service/internal/models"
	"github.com/DormLink-2025/repair-service/internal/repositories"
	"github.com/DormLink-2025/repair-service/internal/validator"
)

// repairService is the order lifecycle engine. Valid transitions:
//
//	pending -> approved  (approve, admin)
//	pending -> rejected  (reject, admin)
//	approved -> repairing (accept, repairman; binds the assignee)
//	repairing -> completed (complete, assigned repairman; stamps completed_at)
//
// completed and rejected are terminal. Every transition is one atomic
// read-modify-write: the order is re-read inside the transaction and
// the final write is guarded by the expected current status, so of two
// concurrent transitions exactly one commits.
type repairService struct {
	repo      repositories.Repository
	validator *validator.Validator
	logger    *slog.Logger
}

func NewRepairService(repo repositories.Repository, v *validator.Validator, logger *slog.Logger) RepairService {
	return &repairService{repo: repo, validator: v, logger: logger}
}

func (s *repairService) Create(ctx context.Context, actor Actor, req models.CreateRepairOrderRequest) (*models.CreateRepairOrderResponse, error) {
	if err := Decide(actor, ActionCreateOrder, Perspective{}); err != nil {
		return nil, err
	}
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	appointment, err := validator.ParseAppointmentTime(req.AppointmentTime)
	if err != nil {
		return nil, ValidationErrors{{
			Field:   "appointment_time",
			Message: "must match format " + validator.AppointmentTimeLayout,
			Value:   req.AppointmentTime,
			Rule:    "appointment_time",
		}}
	}

	if _, err := s.repo.Category().GetByID(ctx, req.Category); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to load category: %w", err)
	}

	order := &models.RepairOrder{
		StudentID:       actor.ID,
		CategoryID:      req.Category,
		Room:            req.Room,
		Description:     req.Description,
		AppointmentTime: appointment,
		Status:          models.StatusPending,
	}
	for _, path := range req.Images {
		order.Images = append(order.Images, models.RepairImage{ImagePath: path})
	}

	if err := s.repo.RepairOrder().Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create repair order: %w", err)
	}

	s.logger.Info("repair order created",
		"order_id", order.ID,
		"student_id", actor.ID,
		"category_id", req.Category,
	)
	return &models.CreateRepairOrderResponse{RepairOrderID: order.ID}, nil
}

func (s *repairService) List(ctx context.Context, actor Actor) ([]models.RepairOrderSummary, error) {
	orders, err := s.repo.RepairOrder().List(ctx, OrderListFilters(actor))
	if err != nil {
		return nil, fmt.Errorf("failed to list repair orders: %w", err)
	}
	return toSummaries(orders), nil
}

func (s *repairService) ListPending(ctx context.Context, actor Actor) ([]models.RepairOrderSummary, error) {
	if actor.Role != models.RoleAdmin && actor.Role != models.RoleRepairman {
		return nil, NewPermissionError(actor.ID, "repair_order", "list_pending", "admin or repairman only")
	}

	pending := models.StatusPending
	orders, err := s.repo.RepairOrder().List(ctx, repositories.RepairOrderFilters{Status: &pending})
	if err != nil {
		return nil, fmt.Errorf("failed to list pending repair orders: %w", err)
	}
	return toSummaries(orders), nil
}

func (s *repairService) Get(ctx context.Context, actor Actor, orderID uint) (*models.RepairOrderDetail, error) {
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

	detail := toDetail(order)

	comment, err := s.repo.Comment().GetByOrderID(ctx, orderID)
	switch {
	case err == nil:
		detail.Comment = toCommentInfo(comment)
	case repositories.IsNotFoundError(err):
		// No comment yet.
	default:
		return nil, fmt.Errorf("failed to load comment: %w", err)
	}

	return detail, nil
}

// ===== TRANSITIONS =====

func (s *repairService) Approve(ctx context.Context, actor Actor, orderID uint) error {
	return s.transition(ctx, actor, orderID, ActionApproveOrder, models.StatusPending,
		func(order *models.RepairOrder) {
			order.Status = models.StatusApproved
		})
}

func (s *repairService) Reject(ctx context.Context, actor Actor, orderID uint) error {
	return s.transition(ctx, actor, orderID, ActionRejectOrder, models.StatusPending,
		func(order *models.RepairOrder) {
			order.Status = models.StatusRejected
		})
}

func (s *repairService) Accept(ctx context.Context, actor Actor, orderID uint) error {
	return s.transition(ctx, actor, orderID, ActionAcceptOrder, models.StatusApproved,
		func(order *models.RepairOrder) {
			order.Status = models.StatusRepairing
			order.RepairmanID = &actor.ID
		})
}

func (s *repairService) Complete(ctx context.Context, actor Actor, orderID uint) error {
	return s.transition(ctx, actor, orderID, ActionCompleteOrder, models.StatusRepairing,
		func(order *models.RepairOrder) {
			now := time.Now()
			order.Status = models.StatusCompleted
			order.CompletedAt = &now
		})
}

// transition executes one lifecycle step atomically. Check order inside
// the transaction: order exists, current status matches the required
// from-status, then the authorization policy with the actor's relation
// to the order. The final write re-asserts the from-status, so a
// concurrent transition that committed first makes this one fail.
func (s *repairService) transition(ctx context.Context, actor Actor, orderID uint, action Action, from models.OrderStatus, apply func(*models.RepairOrder)) error {
	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		order, err := tx.RepairOrder().GetByID(ctx, orderID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrOrderNotFound
			}
			return fmt.Errorf("failed to load repair order: %w", err)
		}

		if order.Status != from {
			return NewTransitionError(orderID, order.Status, transitionVerb(action))
		}

		p := Perspective{
			IsOwner:    order.StudentID == actor.ID,
			IsAssignee: order.RepairmanID != nil && *order.RepairmanID == actor.ID,
		}
		if err := Decide(actor, action, p); err != nil {
			return err
		}

		apply(order)
		order.UpdatedAt = time.Now()

		if err := tx.RepairOrder().UpdateStatusFrom(ctx, order, from); err != nil {
			if repositories.IsStaleStatusError(err) {
				return NewTransitionError(orderID, from, transitionVerb(action))
			}
			return fmt.Errorf("failed to update repair order: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("repair order transitioned",
		"order_id", orderID,
		"action", string(action),
		"actor_id", actor.ID,
		"role", string(actor.Role),
	)
	return nil
}

func transitionVerb(action Action) string {
	switch action {
	case ActionApproveOrder:
		return "approve"
	case ActionRejectOrder:
		return "reject"
	case ActionAcceptOrder:
		return "accept"
	case ActionCompleteOrder:
		return "complete"
	default:
		return string(action)
	}
}

// ===== PROJECTIONS =====

func toSummaries(orders []*models.RepairOrder) []models.RepairOrderSummary {
	summaries := make([]models.RepairOrderSummary, 0, len(orders))
	for _, order := range orders {
		summaries = append(summaries, models.RepairOrderSummary{
			ID:            order.ID,
			Room:          order.Room,
			Description:   order.Description,
			Category:      categoryName(order),
			Status:        order.Status,
			CreatedAt:     order.CreatedAt,
			UpdatedAt:     order.UpdatedAt,
			StudentName:   userName(order.Student),
			RepairmanName: userName(order.Repairman),
			Images:        imagePaths(order.Images),
		})
	}
	return summaries
}

func toDetail(order *models.RepairOrder) *models.RepairOrderDetail {
	detail := &models.RepairOrderDetail{
		ID:            order.ID,
		Room:          order.Room,
		Description:   order.Description,
		Category:      categoryName(order),
		Status:        order.Status,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
		CompletedAt:   order.CompletedAt,
		StudentID:     order.StudentID,
		StudentName:   userName(order.Student),
		RepairmanID:   order.RepairmanID,
		RepairmanName: userName(order.Repairman),
		Images:        imagePaths(order.Images),
	}
	if order.Student != nil {
		detail.StudentPhone = order.Student.Phone
	}
	return detail
}

func toCommentInfo(comment *models.Comment) *models.CommentInfo {
	info := &models.CommentInfo{
		ID:        comment.ID,
		Rating:    comment.Rating,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
	if comment.Student != nil {
		info.StudentName = comment.Student.Name
	}
	return info
}

func categoryName(order *models.RepairOrder) string {
	if order.Category == nil {
		return ""
	}
	return order.Category.Name
}

func userName(u *models.User) string {
	if u == nil {
		return ""
	}
	return u.Name
}

func imagePaths(images []models.RepairImage) []string {
	paths := make([]string, 0, len(images))
	for _, img := range images {
		paths = append(paths, img.ImagePath)
	}
	return paths
}
