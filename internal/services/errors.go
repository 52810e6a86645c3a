package services

import (
	"errors"
	"fmt"

	"github.com/DormLink-2025/repair-service/internal/models"
	"github.com/DormLink-2025/repair-service/internal/validator"
)

// ValidationErrors is re-exported so handlers dispatch on one package.
type ValidationErrors = validator.ValidationErrors

// ===== SENTINEL ERRORS =====

var (
	ErrOrderNotFound        = errors.New("repair order not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrCommentNotFound      = errors.New("comment not found")
	ErrAnnouncementNotFound = errors.New("announcement not found")

	// ErrInvalidCredentials covers both unknown username and wrong
	// password; the two cases are indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// ===== TYPED ERRORS =====

// PermissionError reports a role or ownership check failure on an
// existing resource. A missing resource is NotFound, never this.
type PermissionError struct {
	UserID   uint
	Resource string
	Action   string
	Reason   string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: user %d cannot %s %s: %s", e.UserID, e.Action, e.Resource, e.Reason)
}

func NewPermissionError(userID uint, resource, action, reason string) *PermissionError {
	return &PermissionError{UserID: userID, Resource: resource, Action: action, Reason: reason}
}

// TransitionError reports an action attempted from a status it is not
// valid in, including the loser of a concurrent transition race.
type TransitionError struct {
	OrderID uint
	From    models.OrderStatus
	Action  string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s repair order %d in status %q", e.Action, e.OrderID, e.From)
}

func NewTransitionError(orderID uint, from models.OrderStatus, action string) *TransitionError {
	return &TransitionError{OrderID: orderID, From: from, Action: action}
}

// ConflictError reports a uniqueness violation (duplicate comment,
// taken username).
type ConflictError struct {
	Resource string
	Reason   string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict on %s: %s", e.Resource, e.Reason)
}

func NewConflictError(resource, reason string) *ConflictError {
	return &ConflictError{Resource: resource, Reason: reason}
}
