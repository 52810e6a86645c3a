package models

import (
	"time"
)

type Announcement struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"not null;size:100"`
	Content   string    `json:"content" gorm:"not null;type:text"`
	CreatedBy uint      `json:"created_by" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Author *User `json:"author,omitempty" gorm:"foreignKey:CreatedBy"`
}

func (Announcement) TableName() string {
	return "announcements"
}
