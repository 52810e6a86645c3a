package services

import (
	"context"
	"errors"
	"testing"

	"github.com/DormLink-2025/repair-service/internal/models"
)

func completeOrder(t *testing.T, env *testEnv, orderID uint) {
	t.Helper()
	ctx := context.Background()
	if err := env.repairs.Approve(ctx, env.admin, orderID); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if err := env.repairs.Accept(ctx, env.repairman, orderID); err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if err := env.repairs.Complete(ctx, env.repairman, orderID); err != nil {
		t.Fatalf("complete failed: %v", err)
	}
}

func TestCommentService_Create(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	orderID := env.createOrder(t)
	completeOrder(t, env, orderID)

	info, err := env.comments.Create(ctx, env.student, models.CreateCommentRequest{
		RepairOrderID: orderID,
		Rating:        5,
		Content:       "fast and clean",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if info.Rating != 5 {
		t.Errorf("rating = %d, want 5", info.Rating)
	}

	t.Run("second comment conflicts", func(t *testing.T) {
		_, err := env.comments.Create(ctx, env.student, models.CreateCommentRequest{
			RepairOrderID: orderID,
			Rating:        1,
		})
		var ce *ConflictError
		if !errors.As(err, &ce) {
			t.Fatalf("error = %v, want *ConflictError", err)
		}

		// The first comment stays untouched.
		stored, err := env.comments.GetByOrderID(ctx, env.student, orderID)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if stored.Rating != 5 || stored.Content != "fast and clean" {
			t.Errorf("first comment mutated: %+v", stored)
		}
	})
}

func TestCommentService_CreateGuards(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Run("missing order", func(t *testing.T) {
		_, err := env.comments.Create(ctx, env.student, models.CreateCommentRequest{
			RepairOrderID: 9999,
			Rating:        4,
		})
		if !errors.Is(err, ErrOrderNotFound) {
			t.Fatalf("error = %v, want ErrOrderNotFound", err)
		}
	})

	t.Run("order not completed", func(t *testing.T) {
		orderID := env.createOrder(t)
		_, err := env.comments.Create(ctx, env.student, models.CreateCommentRequest{
			RepairOrderID: orderID,
			Rating:        4,
		})
		var te *TransitionError
		if !errors.As(err, &te) {
			t.Fatalf("error = %v, want *TransitionError", err)
		}
	})

	t.Run("non-owner student", func(t *testing.T) {
		orderID := env.createOrder(t)
		completeOrder(t, env, orderID)

		_, err := env.comments.Create(ctx, env.studentB, models.CreateCommentRequest{
			RepairOrderID: orderID,
			Rating:        4,
		})
		var pe *PermissionError
		if !errors.As(err, &pe) {
			t.Fatalf("error = %v, want *PermissionError", err)
		}
	})

	t.Run("rating out of range", func(t *testing.T) {
		orderID := env.createOrder(t)
		completeOrder(t, env, orderID)

		for _, rating := range []int{0, 6, -1} {
			_, err := env.comments.Create(ctx, env.student, models.CreateCommentRequest{
				RepairOrderID: orderID,
				Rating:        rating,
			})
			var ve ValidationErrors
			if !errors.As(err, &ve) {
				t.Errorf("rating %d: error = %v, want ValidationErrors", rating, err)
			}
		}
	})
}

func TestCommentService_GetByOrderID(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	orderID := env.createOrder(t)

	t.Run("no comment yet", func(t *testing.T) {
		_, err := env.comments.GetByOrderID(ctx, env.student, orderID)
		if !errors.Is(err, ErrCommentNotFound) {
			t.Fatalf("error = %v, want ErrCommentNotFound", err)
		}
	})

	t.Run("foreign student forbidden", func(t *testing.T) {
		_, err := env.comments.GetByOrderID(ctx, env.studentB, orderID)
		var pe *PermissionError
		if !errors.As(err, &pe) {
			t.Fatalf("error = %v, want *PermissionError", err)
		}
	})
}

func TestRepairService_DetailIncludesComment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	orderID := env.createOrder(t)
	completeOrder(t, env, orderID)

	if _, err := env.comments.Create(ctx, env.student, models.CreateCommentRequest{
		RepairOrderID: orderID,
		Rating:        3,
		Content:       "ok",
	}); err != nil {
		t.Fatalf("comment create failed: %v", err)
	}

	detail, err := env.repairs.Get(ctx, env.student, orderID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if detail.Comment == nil {
		t.Fatal("detail.Comment is nil after commenting")
	}
	if detail.Comment.Rating != 3 {
		t.Errorf("detail comment rating = %d, want 3", detail.Comment.Rating)
	}
}
