package services

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/DormLink-2025/repair-service/internal/models"
	"github.com/DormLink-2025/repair-service/internal/repositories"
	"github.com/DormLink-2025/repair-service/internal/validator"
)

type userService struct {
	repo      repositories.Repository
	validator *validator.Validator
	logger    *slog.Logger
}

func NewUserService(repo repositories.Repository, v *validator.Validator, logger *slog.Logger) UserService {
	return &userService{repo: repo, validator: v, logger: logger}
}

func (s *userService) List(ctx context.Context, actor Actor) ([]*models.UserInfo, error) {
	if err := Decide(actor, ActionManageUsers, Perspective{}); err != nil {
		return nil, err
	}

	users, err := s.repo.User().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	infos := make([]*models.UserInfo, 0, len(users))
	for _, u := range users {
		infos = append(infos, models.NewUserInfo(u))
	}
	return infos, nil
}

func (s *userService) Create(ctx context.Context, actor Actor, req models.CreateUserRequest) (*models.UserInfo, error) {
	if err := Decide(actor, ActionManageUsers, Perspective{}); err != nil {
		return nil, err
	}
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	taken, err := s.repo.User().ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		return nil, NewConflictError("user", "username already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: req.Username,
		Password: string(hash),
		Name:     req.Name,
		Role:     req.Role,
		Phone:    req.Phone,
		Email:    req.Email,
	}

	if err := s.repo.User().Create(ctx, user); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, NewConflictError("user", "username already taken")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user created", "user_id", user.ID, "role", string(user.Role), "created_by", actor.ID)
	return models.NewUserInfo(user), nil
}

func (s *userService) Update(ctx context.Context, actor Actor, userID uint, req models.UpdateUserRequest) (*models.UserInfo, error) {
	if err := Decide(actor, ActionManageUsers, Perspective{}); err != nil {
		return nil, err
	}
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hash)
	}

	if err := s.repo.User().Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("user updated", "user_id", userID, "updated_by", actor.ID)
	return models.NewUserInfo(user), nil
}

func (s *userService) Delete(ctx context.Context, actor Actor, userID uint) error {
	if err := Decide(actor, ActionManageUsers, Perspective{}); err != nil {
		return err
	}

	if userID == actor.ID {
		return NewConflictError("user", "cannot delete own account")
	}

	if err := s.repo.User().Delete(ctx, userID); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info("user deleted", "user_id", userID, "deleted_by", actor.ID)
	return nil
}
