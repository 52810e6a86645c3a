package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/DormLink-2025/repair-service/internal/models"
	"github.com/DormLink-2025/repair-service/internal/repositories/memory"
	"github.com/DormLink-2025/repair-service/internal/validator"
)

func TestUserService_Create(t *testing.T) {
	repo := memory.NewRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewUserService(repo, validator.New(), logger)
	ctx := context.Background()

	admin := &models.User{Username: "admin", Password: "x", Name: "admin", Role: models.RoleAdmin}
	if err := repo.User().Create(ctx, admin); err != nil {
		t.Fatalf("failed to create admin: %v", err)
	}
	actor := Actor{ID: admin.ID, Role: models.RoleAdmin}

	info, err := svc.Create(ctx, actor, models.CreateUserRequest{
		Username: "repair002",
		Password: "123456",
		Name:     "New Repairman",
		Role:     models.RoleRepairman,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if info.Role != models.RoleRepairman {
		t.Errorf("role = %q, want repairman", info.Role)
	}

	// Password hash never leaves the service layer.
	stored, err := repo.User().GetByUsername(ctx, "repair002")
	if err != nil {
		t.Fatalf("failed to load user: %v", err)
	}
	if stored.Password == "123456" {
		t.Error("password stored in plaintext")
	}

	t.Run("duplicate username conflicts", func(t *testing.T) {
		_, err := svc.Create(ctx, actor, models.CreateUserRequest{
			Username: "repair002",
			Password: "123456",
			Name:     "Imposter",
			Role:     models.RoleStudent,
		})
		var ce *ConflictError
		if !errors.As(err, &ce) {
			t.Fatalf("error = %v, want *ConflictError", err)
		}
	})

	t.Run("non-admin forbidden", func(t *testing.T) {
		_, err := svc.Create(ctx, Actor{ID: 99, Role: models.RoleStudent}, models.CreateUserRequest{
			Username: "user3",
			Password: "123456",
			Name:     "User",
			Role:     models.RoleStudent,
		})
		var pe *PermissionError
		if !errors.As(err, &pe) {
			t.Fatalf("error = %v, want *PermissionError", err)
		}
	})

	t.Run("admin changes role", func(t *testing.T) {
		role := models.RoleAdmin
		info, err := svc.Update(ctx, actor, stored.ID, models.UpdateUserRequest{Role: &role})
		if err != nil {
			t.Fatalf("update failed: %v", err)
		}
		if info.Role != models.RoleAdmin {
			t.Errorf("role = %q, want admin", info.Role)
		}
	})

	t.Run("admin cannot delete self", func(t *testing.T) {
		err := svc.Delete(ctx, actor, actor.ID)
		var ce *ConflictError
		if !errors.As(err, &ce) {
			t.Fatalf("error = %v, want *ConflictError", err)
		}
	})
}
