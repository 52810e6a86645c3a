package models

import (
	"time"
)

// ===== AUTH DTOs =====

type LoginRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token    string    `json:"token"`
	UserInfo *UserInfo `json:"userInfo"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6,max=72"`
}

type UpdateProfileRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=1,max=50"`
	Phone  *string `json:"phone" validate:"omitempty,max=20"`
	Email  *string `json:"email" validate:"omitempty,email,max=100"`
	Avatar *string `json:"avatar" validate:"omitempty,max=200"`
}

// UserInfo is the public projection of a User (no password hash).
type UserInfo struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Role      UserRole  `json:"role"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserInfo(u *User) *UserInfo {
	if u == nil {
		return nil
	}
	return &UserInfo{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name,
		Role:      u.Role,
		Phone:     u.Phone,
		Email:     u.Email,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
	}
}

// ===== USER MANAGEMENT DTOs =====

type CreateUserRequest struct {
	Username string   `json:"username" validate:"required,min=1,max=50"`
	Password string   `json:"password" validate:"required,min=6,max=72"`
	Name     string   `json:"name" validate:"required,min=1,max=50"`
	Role     UserRole `json:"role" validate:"required,user_role"`
	Phone    string   `json:"phone" validate:"omitempty,max=20"`
	Email    string   `json:"email" validate:"omitempty,email,max=100"`
}

type UpdateUserRequest struct {
	Name     *string   `json:"name" validate:"omitempty,min=1,max=50"`
	Role     *UserRole `json:"role" validate:"omitempty,user_role"`
	Phone    *string   `json:"phone" validate:"omitempty,max=20"`
	Email    *string   `json:"email" validate:"omitempty,email,max=100"`
	Password *string   `json:"password" validate:"omitempty,min=6,max=72"`
}

// ===== REPAIR ORDER DTOs =====

type CreateRepairOrderRequest struct {
	Category        uint     `json:"category" validate:"required"`
	Room            string   `json:"room" validate:"required,max=50"`
	Description     string   `json:"description" validate:"required"`
	AppointmentTime *string  `json:"appointment_time" validate:"omitempty,appointment_time"`
	Images          []string `json:"images" validate:"omitempty,dive,max=200"`
}

// RepairOrderSummary is the list projection. Related names are resolved
// with the order in one batched load, not lazily per row.
type RepairOrderSummary struct {
	ID            uint        `json:"id"`
	Room          string      `json:"room"`
	Description   string      `json:"description"`
	Category      string      `json:"category"`
	Status        OrderStatus `json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
	StudentName   string      `json:"student_name"`
	RepairmanName string      `json:"repairman_name"`
	Images        []string    `json:"images"`
}

type RepairOrderDetail struct {
	ID            uint         `json:"id"`
	Room          string       `json:"room"`
	Description   string       `json:"description"`
	Category      string       `json:"category"`
	Status        OrderStatus  `json:"status"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
	CompletedAt   *time.Time   `json:"completed_at"`
	StudentID     uint         `json:"student_id"`
	StudentName   string       `json:"student_name"`
	StudentPhone  string       `json:"student_phone"`
	RepairmanID   *uint        `json:"repairman_id"`
	RepairmanName string       `json:"repairman_name"`
	Images        []string     `json:"images"`
	Comment       *CommentInfo `json:"comment"`
}

type CreateRepairOrderResponse struct {
	RepairOrderID uint `json:"repair_order_id"`
}

// ===== COMMENT DTOs =====

type CreateCommentRequest struct {
	RepairOrderID uint   `json:"repair_order_id" validate:"required"`
	Rating        int    `json:"rating" validate:"required,min=1,max=5"`
	Content       string `json:"content" validate:"omitempty,max=2000"`
}

type CommentInfo struct {
	ID          uint      `json:"id"`
	Rating      int       `json:"rating"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
	StudentName string    `json:"student_name,omitempty"`
}

// ===== ANNOUNCEMENT DTOs =====

type CreateAnnouncementRequest struct {
	Title   string `json:"title" validate:"required,min=1,max=100"`
	Content string `json:"content" validate:"required"`
}

type UpdateAnnouncementRequest struct {
	Title   *string `json:"title" validate:"omitempty,min=1,max=100"`
	Content *string `json:"content" validate:"omitempty,min=1"`
}

type AnnouncementInfo struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
