package service

import (
	"context"
	"fmt"
	"strings"

	"shopfront/internal/model"
	"shopfront/internal/repository"

	"github.com/rs/zerolog"
)

// categoryService implements CategoryService.
type categoryService struct {
	categoryRepo repository.CategoryRepository
	logger       zerolog.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo repository.CategoryRepository, logger zerolog.Logger) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		logger:       logger.With().Str("service", "category").Logger(),
	}
}

func (s *categoryService) Create(ctx context.Context, req *model.CategoryRequest, actor *model.User) (*model.Category, error) {
	if req == nil || strings.TrimSpace(req.Title) == "" {
		return nil, model.NewValidationError("title is required")
	}

	category := &model.Category{
		Title:       req.Title,
		Description: req.Description,
		AddedByID:   actor.ID,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.logger.Info().Int64("category_id", category.ID).Msg("category created")

	return category, nil
}

func (s *categoryService) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	if category == nil {
		return nil, model.NewNotFound("Category", id)
	}
	return category, nil
}

func (s *categoryService) GetAll(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *categoryService) Update(ctx context.Context, id int64, req *model.CategoryRequest) (*model.Category, error) {
	category, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		category.Title = req.Title
	}
	if req.Description != "" {
		category.Description = req.Description
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, id int64) error {
	affected, err := s.categoryRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if affected == 0 {
		return model.NewNotFound("Category", id)
	}

	s.logger.Info().Int64("category_id", id).Msg("category deleted")

	return nil
}
