package models

import (
	"time"
)

type UserRole string

const (
	RoleStudent   UserRole = "student"
	RoleRepairman UserRole = "repairman"
	RoleAdmin     UserRole = "admin"
)

// Valid reports whether the role belongs to the closed role set.
// Role arrives as a free-form string on the wire and must be validated
// at every boundary before use.
func (r UserRole) Valid() bool {
	switch r {
	case RoleStudent, RoleRepairman, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID       uint     `json:"id" gorm:"primaryKey"`
	Username string   `json:"username" gorm:"uniqueIndex;not null;size:50"`
	Password string   `json:"-" gorm:"not null;size:200"`
	Name     string   `json:"name" gorm:"not null;size:50"`
	Role     UserRole `json:"role" gorm:"not null;size:20;index"`

	// Contact info
	Phone  string `json:"phone" gorm:"size:20"`
	Email  string `json:"email" gorm:"size:100"`
	Avatar string `json:"avatar" gorm:"size:200"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
