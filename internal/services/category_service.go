package services

import (
	"context"
	"fmt"

	"github.com/DormLink-2025/repair-service/internal/models"
	"github.com/DormLink-2025/repair-service/internal/repositories"
)

type categoryService struct {
	repo repositories.Repository
}

func NewCategoryService(repo repositories.Repository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) List(ctx context.Context) ([]*models.Category, error) {
	categories, err := s.repo.Category().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}
