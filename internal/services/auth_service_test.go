package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/DormLink-2025/repair-service/internal/auth"
	"github.com/DormLink-2025/repair-service/internal/models"
	"github.com/DormLink-2025/repair-service/internal/repositories/memory"
	"github.com/DormLink-2025/repair-service/internal/validator"
)

func newAuthEnv(t *testing.T) (AuthService, *memory.Repository, *auth.TokenManager) {
	t.Helper()

	repo := memory.NewRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	svc := NewAuthService(repo, tokens, validator.New(), logger)

	hash, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{
		Username: "20210001",
		Password: string(hash),
		Name:     "student",
		Role:     models.RoleStudent,
	}
	if err := repo.User().Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return svc, repo, tokens
}

func TestAuthService_Login(t *testing.T) {
	svc, _, tokens := newAuthEnv(t)
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := svc.Login(ctx, models.LoginRequest{Username: "20210001", Password: "123456"})
		if err != nil {
			t.Fatalf("login failed: %v", err)
		}
		if resp.Token == "" {
			t.Fatal("empty token")
		}
		if resp.UserInfo == nil || resp.UserInfo.Role != models.RoleStudent {
			t.Fatalf("user info = %+v, want student", resp.UserInfo)
		}

		claims, err := tokens.Parse(resp.Token)
		if err != nil {
			t.Fatalf("issued token does not parse: %v", err)
		}
		if claims.UserID != resp.UserInfo.ID || claims.Role != models.RoleStudent {
			t.Errorf("claims = %+v, want user %d student", claims, resp.UserInfo.ID)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, models.LoginRequest{Username: "20210001", Password: "wrong"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown username", func(t *testing.T) {
		_, err := svc.Login(ctx, models.LoginRequest{Username: "ghost", Password: "123456"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("error = %v, want ErrInvalidCredentials", err)
		}
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	svc, repo, _ := newAuthEnv(t)
	ctx := context.Background()

	user, err := repo.User().GetByUsername(ctx, "20210001")
	if err != nil {
		t.Fatalf("failed to load user: %v", err)
	}

	t.Run("wrong current password", func(t *testing.T) {
		err := svc.ChangePassword(ctx, user.ID, models.ChangePasswordRequest{
			CurrentPassword: "wrong",
			NewPassword:     "new-password",
		})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("success then login with new password", func(t *testing.T) {
		if err := svc.ChangePassword(ctx, user.ID, models.ChangePasswordRequest{
			CurrentPassword: "123456",
			NewPassword:     "new-password",
		}); err != nil {
			t.Fatalf("change password failed: %v", err)
		}

		if _, err := svc.Login(ctx, models.LoginRequest{Username: "20210001", Password: "123456"}); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("old password still accepted: %v", err)
		}
		if _, err := svc.Login(ctx, models.LoginRequest{Username: "20210001", Password: "new-password"}); err != nil {
			t.Fatalf("new password rejected: %v", err)
		}
	})
}

func TestAuthService_UpdateProfile(t *testing.T) {
	svc, repo, _ := newAuthEnv(t)
	ctx := context.Background()

	user, err := repo.User().GetByUsername(ctx, "20210001")
	if err != nil {
		t.Fatalf("failed to load user: %v", err)
	}

	name := "Updated Name"
	phone := "13800138000"
	info, err := svc.UpdateProfile(ctx, user.ID, models.UpdateProfileRequest{
		Name:  &name,
		Phone: &phone,
	})
	if err != nil {
		t.Fatalf("update profile failed: %v", err)
	}
	if info.Name != name || info.Phone != phone {
		t.Errorf("info = %+v, want name/phone updated", info)
	}
	// Role untouched by profile updates.
	if info.Role != models.RoleStudent {
		t.Errorf("role = %q, want student", info.Role)
	}
}
