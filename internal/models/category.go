package models

// Category is the fixed fault taxonomy, seeded at bootstrap and
// read-only from the API's perspective.
type Category struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"not null;size:50"`
	Description string `json:"description" gorm:"size:200"`
}

func (Category) TableName() string {
	return "categories"
}
