package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/DormLink-2025/repair-service/internal/models"
	"github.com/DormLink-2025/repair-service/internal/repositories/memory"
	"github.com/DormLink-2025/repair-service/internal/validator"
)

type testEnv struct {
	repo     *memory.Repository
	repairs  RepairService
	comments CommentService

	student    Actor
	studentB   Actor
	repairman  Actor
	repairmanB Actor
	admin      Actor
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	repo := memory.NewRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	v := validator.New()

	env := &testEnv{
		repo:     repo,
		repairs:  NewRepairService(repo, v, logger),
		comments: NewCommentService(repo, v, logger),
	}

	ctx := context.Background()
	users := []struct {
		username string
		role     models.UserRole
		actor    *Actor
	}{
		{"student_a", models.RoleStudent, &env.student},
		{"student_b", models.RoleStudent, &env.studentB},
		{"repairman_a", models.RoleRepairman, &env.repairman},
		{"repairman_b", models.RoleRepairman, &env.repairmanB},
		{"admin", models.RoleAdmin, &env.admin},
	}
	for _, u := range users {
		user := &models.User{Username: u.username, Password: "x", Name: u.username, Role: u.role}
		if err := repo.User().Create(ctx, user); err != nil {
			t.Fatalf("failed to create user %s: %v", u.username, err)
		}
		*u.actor = Actor{ID: user.ID, Role: u.role}
	}

	repo.AddCategory(&models.Category{Name: "plumbing"})
	return env
}

func (env *testEnv) createOrder(t *testing.T) uint {
	t.Helper()
	resp, err := env.repairs.Create(context.Background(), env.student, models.CreateRepairOrderRequest{
		Category:    1,
		Room:        "A101",
		Description: "leak",
	})
	if err != nil {
		t.Fatalf("failed to create order: %v", err)
	}
	return resp.RepairOrderID
}

func (env *testEnv) orderStatus(t *testing.T, id uint) models.OrderStatus {
	t.Helper()
	order, err := env.repo.RepairOrder().GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("failed to load order %d: %v", id, err)
	}
	return order.Status
}

func TestRepairService_FullLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	orderID := env.createOrder(t)
	if got := env.orderStatus(t, orderID); got != models.StatusPending {
		t.Fatalf("status after create = %q, want pending", got)
	}

	if err := env.repairs.Approve(ctx, env.admin, orderID); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if got := env.orderStatus(t, orderID); got != models.StatusApproved {
		t.Fatalf("status after approve = %q, want approved", got)
	}

	if err := env.repairs.Accept(ctx, env.repairman, orderID); err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	order, _ := env.repo.RepairOrder().GetByID(ctx, orderID)
	if order.Status != models.StatusRepairing {
		t.Fatalf("status after accept = %q, want repairing", order.Status)
	}
	if order.RepairmanID == nil || *order.RepairmanID != env.repairman.ID {
		t.Fatalf("repairman_id after accept = %v, want %d", order.RepairmanID, env.repairman.ID)
	}

	if err := env.repairs.Complete(ctx, env.repairman, orderID); err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	order, _ = env.repo.RepairOrder().GetByID(ctx, orderID)
	if order.Status != models.StatusCompleted {
		t.Fatalf("status after complete = %q, want completed", order.Status)
	}
	if order.CompletedAt == nil {
		t.Fatal("completed_at not set after complete")
	}
	if order.RepairmanID == nil {
		t.Fatal("repairman_id cleared by complete")
	}
}

func TestRepairService_InvariantAfterEveryTransition(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	orderID := env.createOrder(t)
	steps := []func() error{
		func() error { return env.repairs.Approve(ctx, env.admin, orderID) },
		func() error { return env.repairs.Accept(ctx, env.repairman, orderID) },
		func() error { return env.repairs.Complete(ctx, env.repairman, orderID) },
	}

	checkInvariants := func() {
		t.Helper()
		order, err := env.repo.RepairOrder().GetByID(ctx, orderID)
		if err != nil {
			t.Fatalf("failed to load order: %v", err)
		}
		assigned := order.Status == models.StatusRepairing || order.Status == models.StatusCompleted
		if (order.RepairmanID != nil) != assigned {
			t.Errorf("status %q: repairman_id = %v, violates assignment invariant", order.Status, order.RepairmanID)
		}
		if (order.CompletedAt != nil) != (order.Status == models.StatusCompleted) {
			t.Errorf("status %q: completed_at = %v, violates completion invariant", order.Status, order.CompletedAt)
		}
	}

	checkInvariants()
	for _, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("transition failed: %v", err)
		}
		checkInvariants()
	}
}

func TestRepairService_InvalidTransitions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Run("approve non-pending", func(t *testing.T) {
		orderID := env.createOrder(t)
		if err := env.repairs.Approve(ctx, env.admin, orderID); err != nil {
			t.Fatalf("first approve failed: %v", err)
		}

		err := env.repairs.Approve(ctx, env.admin, orderID)
		var te *TransitionError
		if !errors.As(err, &te) {
			t.Fatalf("second approve error = %v, want *TransitionError", err)
		}
		if got := env.orderStatus(t, orderID); got != models.StatusApproved {
			t.Errorf("status changed to %q by failed approve", got)
		}
	})

	t.Run("accept pending order", func(t *testing.T) {
		orderID := env.createOrder(t)

		err := env.repairs.Accept(ctx, env.repairman, orderID)
		var te *TransitionError
		if !errors.As(err, &te) {
			t.Fatalf("accept error = %v, want *TransitionError", err)
		}
	})

	t.Run("accept rejected order", func(t *testing.T) {
		orderID := env.createOrder(t)
		if err := env.repairs.Reject(ctx, env.admin, orderID); err != nil {
			t.Fatalf("reject failed: %v", err)
		}
		if got := env.orderStatus(t, orderID); got != models.StatusRejected {
			t.Fatalf("status after reject = %q, want rejected", got)
		}

		err := env.repairs.Accept(ctx, env.repairman, orderID)
		var te *TransitionError
		if !errors.As(err, &te) {
			t.Fatalf("accept after reject error = %v, want *TransitionError", err)
		}
	})

	t.Run("complete approved order", func(t *testing.T) {
		orderID := env.createOrder(t)
		if err := env.repairs.Approve(ctx, env.admin, orderID); err != nil {
			t.Fatalf("approve failed: %v", err)
		}

		err := env.repairs.Complete(ctx, env.repairman, orderID)
		var te *TransitionError
		if !errors.As(err, &te) {
			t.Fatalf("complete error = %v, want *TransitionError", err)
		}
	})
}

func TestRepairService_CompleteByNonAssignee(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	orderID := env.createOrder(t)
	if err := env.repairs.Approve(ctx, env.admin, orderID); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if err := env.repairs.Accept(ctx, env.repairman, orderID); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	// The state is correct, so the wrong actor is a permission failure,
	// not a transition failure.
	err := env.repairs.Complete(ctx, env.repairmanB, orderID)
	var pe *PermissionError
	if !errors.As(err, &pe) {
		t.Fatalf("complete by non-assignee error = %v, want *PermissionError", err)
	}
	if got := env.orderStatus(t, orderID); got != models.StatusRepairing {
		t.Errorf("status changed to %q by forbidden complete", got)
	}
}

func TestRepairService_ConcurrentAccept(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	orderID := env.createOrder(t)
	if err := env.repairs.Approve(ctx, env.admin, orderID); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	actors := []Actor{env.repairman, env.repairmanB}
	for i := range actors {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = env.repairs.Accept(ctx, actors[i], orderID)
		}(i)
	}
	wg.Wait()

	var succeeded, failed int
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		failed++
		var te *TransitionError
		if !errors.As(err, &te) {
			t.Errorf("loser error = %v, want *TransitionError", err)
		}
	}
	if succeeded != 1 || failed != 1 {
		t.Fatalf("concurrent accept: %d succeeded, %d failed, want exactly one of each", succeeded, failed)
	}

	order, _ := env.repo.RepairOrder().GetByID(ctx, orderID)
	if order.Status != models.StatusRepairing {
		t.Fatalf("status = %q, want repairing", order.Status)
	}
	if order.RepairmanID == nil {
		t.Fatal("repairman_id not set")
	}
}

func TestRepairService_Get(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	orderID := env.createOrder(t)

	t.Run("owner sees detail", func(t *testing.T) {
		detail, err := env.repairs.Get(ctx, env.student, orderID)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if detail.StudentID != env.student.ID {
			t.Errorf("student_id = %d, want %d", detail.StudentID, env.student.ID)
		}
		if detail.Category != "plumbing" {
			t.Errorf("category = %q, want plumbing", detail.Category)
		}
	})

	t.Run("other student forbidden", func(t *testing.T) {
		_, err := env.repairs.Get(ctx, env.studentB, orderID)
		var pe *PermissionError
		if !errors.As(err, &pe) {
			t.Fatalf("error = %v, want *PermissionError", err)
		}
	})

	t.Run("missing order is not found", func(t *testing.T) {
		_, err := env.repairs.Get(ctx, env.admin, 9999)
		if !errors.Is(err, ErrOrderNotFound) {
			t.Fatalf("error = %v, want ErrOrderNotFound", err)
		}
	})
}

func TestRepairService_ListScoping(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	own := env.createOrder(t)
	if _, err := env.repairs.Create(ctx, env.studentB, models.CreateRepairOrderRequest{
		Category: 1, Room: "B202", Description: "broken chair",
	}); err != nil {
		t.Fatalf("failed to create second order: %v", err)
	}

	t.Run("student sees only own", func(t *testing.T) {
		orders, err := env.repairs.List(ctx, env.student)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(orders) != 1 || orders[0].ID != own {
			t.Fatalf("student list = %+v, want only order %d", orders, own)
		}
	})

	t.Run("repairman sees only assigned", func(t *testing.T) {
		orders, err := env.repairs.List(ctx, env.repairman)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(orders) != 0 {
			t.Fatalf("unassigned repairman list has %d orders, want 0", len(orders))
		}
	})

	t.Run("admin sees all", func(t *testing.T) {
		orders, err := env.repairs.List(ctx, env.admin)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(orders) != 2 {
			t.Fatalf("admin list has %d orders, want 2", len(orders))
		}
	})
}

func TestRepairService_CreateValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  models.CreateRepairOrderRequest
	}{
		{name: "missing room", req: models.CreateRepairOrderRequest{Category: 1, Description: "leak"}},
		{name: "missing description", req: models.CreateRepairOrderRequest{Category: 1, Room: "A101"}},
		{name: "missing category", req: models.CreateRepairOrderRequest{Room: "A101", Description: "leak"}},
		{name: "bad appointment time", req: models.CreateRepairOrderRequest{
			Category: 1, Room: "A101", Description: "leak",
			AppointmentTime: strPtr("not-a-time"),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.repairs.Create(ctx, env.student, tt.req)
			var ve ValidationErrors
			if !errors.As(err, &ve) {
				t.Fatalf("error = %v, want ValidationErrors", err)
			}
		})
	}

	t.Run("non-student forbidden", func(t *testing.T) {
		_, err := env.repairs.Create(ctx, env.repairman, models.CreateRepairOrderRequest{
			Category: 1, Room: "A101", Description: "leak",
		})
		var pe *PermissionError
		if !errors.As(err, &pe) {
			t.Fatalf("error = %v, want *PermissionError", err)
		}
	})

	t.Run("unknown category not found", func(t *testing.T) {
		_, err := env.repairs.Create(ctx, env.student, models.CreateRepairOrderRequest{
			Category: 42, Room: "A101", Description: "leak",
		})
		if !errors.Is(err, ErrCategoryNotFound) {
			t.Fatalf("error = %v, want ErrCategoryNotFound", err)
		}
	})

	t.Run("valid appointment time parsed", func(t *testing.T) {
		resp, err := env.repairs.Create(ctx, env.student, models.CreateRepairOrderRequest{
			Category: 1, Room: "A101", Description: "leak",
			AppointmentTime: strPtr("2026-09-01 14:30"),
		})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		order, _ := env.repo.RepairOrder().GetByID(ctx, resp.RepairOrderID)
		if order.AppointmentTime == nil {
			t.Fatal("appointment_time not persisted")
		}
	})
}

func strPtr(s string) *string { return &s }
