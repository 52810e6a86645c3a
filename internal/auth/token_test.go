package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/DormLink-2025/repair-service/internal/models"
)

func TestTokenManager_IssueAndParse(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	user := &models.User{ID: 42, Role: models.RoleRepairman}

	token, err := tm.Issue(user)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	claims, err := tm.Parse(token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("user id = %d, want 42", claims.UserID)
	}
	if claims.Role != models.RoleRepairman {
		t.Errorf("role = %q, want repairman", claims.Role)
	}
}

func TestTokenManager_ParseRejects(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-token"},
		{name: "empty", token: ""},
		{name: "wrong secret", token: mustIssue(t, NewTokenManager("other-secret", time.Hour))},
		{name: "expired", token: mustIssue(t, NewTokenManager("secret", -time.Minute))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tm.Parse(tt.token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func mustIssue(t *testing.T, tm *TokenManager) string {
	t.Helper()
	token, err := tm.Issue(&models.User{ID: 1, Role: models.RoleStudent})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	return token
}
