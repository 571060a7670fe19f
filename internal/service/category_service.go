package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/tripova/tourbase/internal/domain"
	"github.com/tripova/tourbase/internal/dto"
	"github.com/tripova/tourbase/internal/repository"
	"github.com/tripova/tourbase/internal/slug"
)

// categoryService implements the CategoryService interface. The category
// name is the natural key; the slug exists for URLs only.
type categoryService struct {
	repo     repository.CategoryRepository
	registry TenantRegistryService
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(repo repository.CategoryRepository, registry TenantRegistryService) CategoryService {
	return &categoryService{repo: repo, registry: registry}
}

// CreateCategory creates a category unique by name within the tenant
func (s *categoryService) CreateCategory(ctx context.Context, req *dto.CreateCategoryRequest) (*domain.Category, error) {
	if valid, msg := req.Validate(); !valid {
		return nil, errors.New(msg)
	}
	if req.TenantID == "" {
		return nil, domain.ErrTenantScopeRequired
	}

	exists, err := s.repo.ExistsByName(ctx, req.TenantID, req.Name, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrSlugConflict
	}

	c := &domain.Category{
		ID:          uuid.New().String(),
		TenantID:    req.TenantID,
		Name:        req.Name,
		Slug:        slug.Generate(req.Name),
		Description: req.Description,
		ImageURL:    req.ImageURL,
		SortOrder:   req.SortOrder,
		IsActive:    req.IsActive,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetCategoryByName resolves a category with default-tenant fallback
func (s *categoryService) GetCategoryByName(ctx context.Context, tenantID, name string) (*domain.Category, error) {
	c, err := s.repo.GetByName(ctx, name, tenantID, s.registry.DefaultTenantID(ctx))
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// ListCategories lists the tenant's own categories
func (s *categoryService) ListCategories(ctx context.Context, tenantID string, activeOnly bool) ([]*domain.Category, error) {
	return s.repo.List(ctx, tenantID, activeOnly)
}

// UpdateCategory updates a category; a rename re-checks name uniqueness
func (s *categoryService) UpdateCategory(ctx context.Context, tenantID, id string, req *dto.UpdateCategoryRequest) (*domain.Category, error) {
	c, err := s.repo.GetByID(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}

	if req.Name != "" && req.Name != c.Name {
		exists, err := s.repo.ExistsByName(ctx, tenantID, req.Name, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrSlugConflict
		}
		c.Name = req.Name
		c.Slug = slug.Generate(req.Name)
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.ImageURL != nil {
		c.ImageURL = *req.ImageURL
	}
	if req.SortOrder != nil {
		c.SortOrder = *req.SortOrder
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCategory soft deletes a category
func (s *categoryService) DeleteCategory(ctx context.Context, tenantID, id string) error {
	return s.repo.SoftDelete(ctx, id, tenantID)
}
