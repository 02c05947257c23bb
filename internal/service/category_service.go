package service

import (
	"context"

	"github.com/leandrochavesf/gofinances/ledger-backend/internal/domain"
)

// CategoryService handles category queries
type CategoryService struct {
	categoryRepo domain.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo domain.CategoryRepository) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
	}
}

// ListCategories returns all categories ordered by title
func (s *CategoryService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.categoryRepo.GetAll(ctx)
}
