package postgres

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/DormLink-2025/repair-service/internal/models"
)

var seedCategories = []models.Category{
	{Name: "水电", Description: "水管、电路、开关插座等故障"},
	{Name: "家具", Description: "床、桌椅、柜子等家具损坏"},
	{Name: "门窗", Description: "门锁、窗户、纱窗等问题"},
	{Name: "网络", Description: "网络端口、无线信号等问题"},
	{Name: "其他", Description: "其他类型的报修"},
}

var seedUsers = []struct {
	Username string
	Name     string
	Role     models.UserRole
}{
	{Username: "admin", Name: "系统管理员", Role: models.RoleAdmin},
	{Username: "20210001", Name: "张三", Role: models.RoleStudent},
	{Username: "repair001", Name: "李师傅", Role: models.RoleRepairman},
}

const seedPassword = "123456"

// Seed inserts the default accounts and the fault taxonomy. Each row is
// keyed on a natural unique attribute and skipped when already present,
// so running it on every startup is safe.
func Seed(ctx context.Context, db *gorm.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range seedUsers {
			var count int64
			if err := tx.Model(&models.User{}).Where("username = ?", u.Username).Count(&count).Error; err != nil {
				return fmt.Errorf("failed to check seed user %s: %w", u.Username, err)
			}
			if count > 0 {
				continue
			}
			user := models.User{
				Username: u.Username,
				Password: string(hash),
				Name:     u.Name,
				Role:     u.Role,
			}
			if err := tx.Create(&user).Error; err != nil {
				return fmt.Errorf("failed to seed user %s: %w", u.Username, err)
			}
		}

		for _, c := range seedCategories {
			var count int64
			if err := tx.Model(&models.Category{}).Where("name = ?", c.Name).Count(&count).Error; err != nil {
				return fmt.Errorf("failed to check seed category %s: %w", c.Name, err)
			}
			if count > 0 {
				continue
			}
			category := c
			if err := tx.Create(&category).Error; err != nil {
				return fmt.Errorf("failed to seed category %s: %w", c.Name, err)
			}
		}

		return nil
	})
}
