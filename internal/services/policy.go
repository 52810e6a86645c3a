package services

import (
	"github.com/DormLink-2025/repair-service/internal/models"
	"github.com/DormLink-2025/repair-service/internal/repositories"
)

// Actor is the authenticated caller as resolved by the auth gate.
type Actor struct {
	ID   uint
	Role models.UserRole
}

// Action names every policy-gated operation.
type Action string

const (
	ActionCreateOrder   Action = "create_order"
	ActionViewOrder     Action = "view_order"
	ActionApproveOrder  Action = "approve_order"
	ActionRejectOrder   Action = "reject_order"
	ActionAcceptOrder   Action = "accept_order"
	ActionCompleteOrder Action = "complete_order"
	ActionCreateComment Action = "create_comment"
	ActionManageUsers   Action = "manage_users"
	ActionManageNotices Action = "manage_announcements"
	ActionExportOrders  Action = "export_orders"
)

// Perspective carries the actor's relation to the resource, where the
// rule depends on it.
type Perspective struct {
	IsOwner    bool
	IsAssignee bool
}

// Decide is the authorization policy: a pure function from
// (role, action, perspective) to allow or a PermissionError.
// It assumes the resource exists; existence is checked by the caller
// first so that NotFound and Forbidden stay distinct.
func Decide(actor Actor, action Action, p Perspective) error {
	switch action {
	case ActionCreateOrder:
		if actor.Role != models.RoleStudent {
			return NewPermissionError(actor.ID, "repair_order", string(action), "only students create orders")
		}

	case ActionViewOrder:
		// Students see only their own orders; repairmen and admins are
		// unrestricted.
		if actor.Role == models.RoleStudent && !p.IsOwner {
			return NewPermissionError(actor.ID, "repair_order", string(action), "not the order owner")
		}

	case ActionApproveOrder, ActionRejectOrder:
		if actor.Role != models.RoleAdmin {
			return NewPermissionError(actor.ID, "repair_order", string(action), "admin only")
		}

	case ActionAcceptOrder:
		if actor.Role != models.RoleRepairman {
			return NewPermissionError(actor.ID, "repair_order", string(action), "repairman only")
		}

	case ActionCompleteOrder:
		if actor.Role != models.RoleRepairman {
			return NewPermissionError(actor.ID, "repair_order", string(action), "repairman only")
		}
		if !p.IsAssignee {
			return NewPermissionError(actor.ID, "repair_order", string(action), "not the assigned repairman")
		}

	case ActionCreateComment:
		if actor.Role != models.RoleStudent {
			return NewPermissionError(actor.ID, "comment", string(action), "only students comment")
		}
		if !p.IsOwner {
			return NewPermissionError(actor.ID, "comment", string(action), "not the order owner")
		}

	case ActionManageUsers, ActionManageNotices, ActionExportOrders:
		if actor.Role != models.RoleAdmin {
			return NewPermissionError(actor.ID, string(action), string(action), "admin only")
		}

	default:
		return NewPermissionError(actor.ID, string(action), string(action), "unknown action")
	}

	return nil
}

// OrderListFilters scopes a listing to what the actor may see:
// students their own orders, repairmen their assignments, admins all.
func OrderListFilters(actor Actor) repositories.RepairOrderFilters {
	switch actor.Role {
	case models.RoleStudent:
		return repositories.RepairOrderFilters{StudentID: &actor.ID}
	case models.RoleRepairman:
		return repositories.RepairOrderFilters{RepairmanID: &actor.ID}
	default:
		return repositories.RepairOrderFilters{}
	}
}
