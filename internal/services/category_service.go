package services

import (
	"context"
	"errors"
	"fmt"

	"auction-house/internal/auctionerrors"
	"auction-house/internal/models"
	"auction-house/internal/utils"

	"gorm.io/gorm"
)

// CategoryService handles the category taxonomy
type CategoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// List returns all categories ordered by name.
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// GetBySlug returns a category looked up by slug.
func (s *CategoryService) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error
	if err == gorm.ErrRecordNotFound {
		return nil, auctionerrors.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load category: %w", err)
	}
	return &category, nil
}

// Create adds a category. Staff only, enforced at the handler.
func (s *CategoryService) Create(ctx context.Context, name string) (*models.Category, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: category name required", auctionerrors.ErrValidation)
	}

	category := &models.Category{
		Name: name,
		Slug: utils.Slugify(name),
	}

	err := s.db.WithContext(ctx).Create(category).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, auctionerrors.ErrCategoryTaken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}
