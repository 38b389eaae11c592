package service

import (
	"context"
	"fmt"
	"strings"

	"shopfront/internal/model"
	"shopfront/internal/repository"

	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	logger       zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		logger:       logger.With().Str("service", "product").Logger(),
	}
}

// Create adds a product; its category must exist.
func (s *productService) Create(ctx context.Context, req *model.ProductRequest, actor *model.User) (*model.Product, error) {
	if err := validateProductRequest(req); err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.GetByID(ctx, req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	if category == nil {
		return nil, model.NewNotFound("Category", req.CategoryID)
	}

	product := &model.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Images:      req.Images,
		CategoryID:  req.CategoryID,
		AddedByID:   actor.ID,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().
		Int64("product_id", product.ID).
		Str("name", product.Name).
		Msg("product created")

	return product, nil
}

// GetByID retrieves a single product by id.
func (s *productService) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.NewNotFound("Product", id)
	}
	return product, nil
}

// GetAll retrieves all products with pagination.
func (s *productService) GetAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	products, err := s.productRepo.GetAll(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// Update applies a partial update to a product. The acting user becomes the
// product's last editor.
func (s *productService) Update(ctx context.Context, id int64, req *model.UpdateProductRequest, actor *model.User) (*model.Product, error) {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, model.NewValidationError("price cannot be negative")
		}
		product.Price = *req.Price
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return nil, model.NewValidationError("quantity cannot be negative")
		}
		product.Quantity = *req.Quantity
	}
	if req.Images != nil {
		product.Images = *req.Images
	}
	if req.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *req.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("failed to update product: %w", err)
		}
		if category == nil {
			return nil, model.NewNotFound("Category", *req.CategoryID)
		}
		product.CategoryID = *req.CategoryID
	}
	product.AddedByID = actor.ID

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}

// Delete removes a product.
func (s *productService) Delete(ctx context.Context, id int64) error {
	affected, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if affected == 0 {
		return model.NewNotFound("Product", id)
	}

	s.logger.Info().Int64("product_id", id).Msg("product deleted")

	return nil
}

// validateProductRequest validates a product create request.
func validateProductRequest(req *model.ProductRequest) error {
	if req == nil {
		return model.NewValidationError("product request is required")
	}
	if strings.TrimSpace(req.Name) == "" {
		return model.NewValidationError("name is required")
	}
	if req.Price.IsNegative() {
		return model.NewValidationError("price cannot be negative")
	}
	if req.Quantity < 0 {
		return model.NewValidationError("quantity cannot be negative")
	}
	if req.CategoryID <= 0 {
		return model.NewValidationError("categoryId is required")
	}
	return nil
}
