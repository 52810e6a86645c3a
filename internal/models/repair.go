package models

import (
	"time"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusApproved  OrderStatus = "approved"
	StatusRepairing OrderStatus = "repairing"
	StatusCompleted OrderStatus = "completed"
	StatusRejected  OrderStatus = "rejected"
)

// Terminal reports whether no further transition may leave this status.
func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusRejected
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRepairing, StatusCompleted, StatusRejected:
		return true
	}
	return false
}

// RepairOrder is the unit of work tracked through the lifecycle
// pending -> approved -> repairing -> completed, with pending -> rejected
// as the side branch.
//
// Invariants (hold after every transition):
//   - RepairmanID is non-nil iff Status is repairing or completed.
//   - CompletedAt is non-nil iff Status is completed.
//   - StudentID never changes after creation.
type RepairOrder struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	StudentID   uint        `json:"student_id" gorm:"not null;index"`
	RepairmanID *uint       `json:"repairman_id" gorm:"index"`
	CategoryID  uint        `json:"category_id" gorm:"not null"`
	Room        string      `json:"room" gorm:"not null;size:50"`
	Description string      `json:"description" gorm:"not null;type:text"`
	Status      OrderStatus `json:"status" gorm:"not null;default:pending;size:20;index"`

	AppointmentTime *time.Time `json:"appointment_time"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	CompletedAt     *time.Time `json:"completed_at"`

	// Relations
	Student   *User         `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Repairman *User         `json:"repairman,omitempty" gorm:"foreignKey:RepairmanID"`
	Category  *Category     `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Images    []RepairImage `json:"images,omitempty" gorm:"foreignKey:RepairOrderID"`
}

func (RepairOrder) TableName() string {
	return "repair_orders"
}

// RepairImage is an image reference attached at order creation.
// The list is immutable after creation.
type RepairImage struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	RepairOrderID uint   `json:"repair_order_id" gorm:"not null;index"`
	ImagePath     string `json:"image_path" gorm:"not null;size:200"`
}

func (RepairImage) TableName() string {
	return "repair_images"
}
