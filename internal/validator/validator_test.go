package validator

import (
	"testing"

	"github.com/DormLink-2025/repair-service/internal/models"
)

func TestValidate_UserRole(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		role    models.UserRole
		wantErr bool
	}{
		{name: "student", role: models.RoleStudent, wantErr: false},
		{name: "repairman", role: models.RoleRepairman, wantErr: false},
		{name: "admin", role: models.RoleAdmin, wantErr: false},
		{name: "unknown role", role: "superuser", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := models.CreateUserRequest{
				Username: "user1",
				Password: "123456",
				Name:     "User",
				Role:     tt.role,
			}
			errs := v.Validate(req)
			if (len(errs) > 0) != tt.wantErr {
				t.Errorf("Validate() errors = %v, wantErr %v", errs, tt.wantErr)
			}
		})
	}
}

func TestValidate_Rating(t *testing.T) {
	v := New()

	for rating, wantErr := range map[int]bool{1: false, 3: false, 5: false, 0: true, 6: true} {
		req := models.CreateCommentRequest{RepairOrderID: 1, Rating: rating}
		errs := v.Validate(req)
		if (len(errs) > 0) != wantErr {
			t.Errorf("rating %d: errors = %v, wantErr %v", rating, errs, wantErr)
		}
	}
}

func TestParseAppointmentTime(t *testing.T) {
	valid := "2026-09-01 14:30"
	invalid := "September 1st"
	empty := ""

	t.Run("nil input", func(t *testing.T) {
		got, err := ParseAppointmentTime(nil)
		if err != nil || got != nil {
			t.Errorf("got %v, %v; want nil, nil", got, err)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		got, err := ParseAppointmentTime(&empty)
		if err != nil || got != nil {
			t.Errorf("got %v, %v; want nil, nil", got, err)
		}
	})

	t.Run("valid input", func(t *testing.T) {
		got, err := ParseAppointmentTime(&valid)
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		if got == nil || got.Format(AppointmentTimeLayout) != valid {
			t.Errorf("got %v, want %s", got, valid)
		}
	})

	t.Run("invalid input", func(t *testing.T) {
		if _, err := ParseAppointmentTime(&invalid); err == nil {
			t.Error("expected error for invalid input")
		}
	})
}
