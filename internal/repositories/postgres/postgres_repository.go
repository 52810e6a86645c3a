package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/DormLink-2025/repair-service/internal/cache"
	"github.com/DormLink-2025/repair-service/internal/repositories"
)

// PostgreSQLRepository implements the aggregate Repository interface.
type PostgreSQLRepository struct {
	db           *gorm.DB
	redisClient  *redis.Client
	cacheManager *cache.CacheManager

	user         repositories.UserRepository
	repairOrder  repositories.RepairOrderRepository
	comment      repositories.CommentRepository
	category     repositories.CategoryRepository
	announcement repositories.AnnouncementRepository
}

// RepositoryConfig holds configuration for repository initialization.
type RepositoryConfig struct {
	DB          *gorm.DB
	RedisClient *redis.Client
}

func NewPostgreSQLRepository(config RepositoryConfig) repositories.Repository {
	cacheManager := cache.NewCacheManager(config.RedisClient)
	return newWithDB(config.DB, config.RedisClient, cacheManager)
}

func newWithDB(db *gorm.DB, redisClient *redis.Client, cacheManager *cache.CacheManager) *PostgreSQLRepository {
	repo := &PostgreSQLRepository{
		db:           db,
		redisClient:  redisClient,
		cacheManager: cacheManager,
	}

	repo.user = NewUserPostgreSQL(db)
	repo.repairOrder = NewRepairOrderPostgreSQL(db)
	repo.comment = NewCommentPostgreSQL(db, cacheManager)
	repo.category = NewCategoryPostgreSQL(db, cacheManager)
	repo.announcement = NewAnnouncementPostgreSQL(db)

	return repo
}

func (r *PostgreSQLRepository) User() repositories.UserRepository                 { return r.user }
func (r *PostgreSQLRepository) RepairOrder() repositories.RepairOrderRepository  { return r.repairOrder }
func (r *PostgreSQLRepository) Comment() repositories.CommentRepository          { return r.comment }
func (r *PostgreSQLRepository) Category() repositories.CategoryRepository        { return r.category }
func (r *PostgreSQLRepository) Announcement() repositories.AnnouncementRepository {
	return r.announcement
}

// WithTransaction executes fn against a transaction-scoped repository.
// Any error from fn rolls back every write made through it.
func (r *PostgreSQLRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newWithDB(tx, r.redisClient, r.cacheManager))
	})
}

// Ping checks the health of database and cache connections.
func (r *PostgreSQLRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	if r.redisClient != nil {
		if err := r.cacheManager.HealthCheck(ctx); err != nil {
			return fmt.Errorf("cache ping failed: %w", err)
		}
	}
	return nil
}

// Close closes all connections.
func (r *PostgreSQLRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	if r.redisClient != nil {
		if err := r.redisClient.Close(); err != nil {
			return fmt.Errorf("failed to close Redis: %w", err)
		}
	}
	return nil
}

// Manager implements the RepositoryManager interface.
type Manager struct {
	config RepositoryConfig
	repo   repositories.Repository
}

func NewRepositoryManager(config RepositoryConfig) repositories.RepositoryManager {
	return &Manager{config: config}
}

func (m *Manager) Initialize() error {
	if m.config.DB == nil {
		return fmt.Errorf("database connection is required")
	}

	sqlDB, err := m.config.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}

	if m.config.RedisClient != nil {
		if _, err := m.config.RedisClient.Ping(ctx).Result(); err != nil {
			return fmt.Errorf("redis connection failed: %w", err)
		}
	}

	m.repo = NewPostgreSQLRepository(m.config)
	return nil
}

func (m *Manager) GetRepository() repositories.Repository {
	return m.repo
}

func (m *Manager) HealthCheck(ctx context.Context) error {
	if m.repo == nil {
		return fmt.Errorf("repository not initialized")
	}
	return m.repo.Ping(ctx)
}

func (m *Manager) Shutdown(ctx context.Context) error {
	if m.repo == nil {
		return nil
	}
	return m.repo.Close()
}
