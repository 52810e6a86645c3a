package models

import (
	"time"
)

// Comment is a student's rating of completed repair work.
// At most one comment exists per repair order, enforced by the unique
// index and re-checked before insert.
type Comment struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	RepairOrderID uint      `json:"repair_order_id" gorm:"uniqueIndex;not null"`
	StudentID     uint      `json:"student_id" gorm:"not null;index"`
	Rating        int       `json:"rating" gorm:"not null"`
	Content       string    `json:"content" gorm:"type:text"`
	CreatedAt     time.Time `json:"created_at"`

	Student *User `json:"student,omitempty" gorm:"foreignKey:StudentID"`
}

func (Comment) TableName() string {
	return "comments"
}
