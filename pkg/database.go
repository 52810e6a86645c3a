package pkg

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/DormLink-2025/repair-service/internal/config"
	"github.com/DormLink-2025/repair-service/internal/models"
	postgresrepo "github.com/DormLink-2025/repair-service/internal/repositories/postgres"
)

// InitDatabase opens the PostgreSQL connection. TranslateError turns
// driver unique-violation errors into gorm.ErrDuplicatedKey so the
// repositories can map them to their own sentinel.
func InitDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the schema for all tracked entities.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.RepairOrder{},
		&models.RepairImage{},
		&models.Comment{},
		&models.Announcement{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Seed inserts the default accounts and fault categories, skipping rows
// that already exist.
func Seed(ctx context.Context, db *gorm.DB) error {
	return postgresrepo.Seed(ctx, db)
}
