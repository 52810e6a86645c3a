package services

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/DormLink-2025/repair-service/internal/auth"
	"github.com/DormLink-2025/repair-service/internal/models"
	"github.com/DormLink-2025/repair-service/internal/repositories"
	"github.com/DormLink-2025/repair-service/internal/validator"
)

type authService struct {
	repo      repositories.Repository
	tokens    *auth.TokenManager
	validator *validator.Validator
	logger    *slog.Logger
}

func NewAuthService(repo repositories.Repository, tokens *auth.TokenManager, v *validator.Validator, logger *slog.Logger) AuthService {
	return &authService{repo: repo, tokens: tokens, validator: v, logger: logger}
}

// Login checks the password against the stored bcrypt hash and issues a
// bearer token. Unknown username and wrong password return the same
// error.
func (s *authService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	user, err := s.repo.User().GetByUsername(ctx, req.Username)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID, "role", string(user.Role))
	return &models.LoginResponse{
		Token:    token,
		UserInfo: models.NewUserInfo(user),
	}, nil
}

func (s *authService) GetProfile(ctx context.Context, userID uint) (*models.UserInfo, error) {
	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return models.NewUserInfo(user), nil
}

func (s *authService) ChangePassword(ctx context.Context, userID uint, req models.ChangePasswordRequest) error {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return errs
	}

	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hash)

	if err := s.repo.User().Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.logger.Info("password changed", "user_id", userID)
	return nil
}

// UpdateProfile applies the self-service profile fields. Role is never
// self-mutable; role changes go through user management.
func (s *authService) UpdateProfile(ctx context.Context, userID uint, req models.UpdateProfileRequest) (*models.UserInfo, error) {
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
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}

	if err := s.repo.User().Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return models.NewUserInfo(user), nil
}
