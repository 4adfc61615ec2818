package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/OtlotlengMajuja/storefront/internal/domain"
	"github.com/OtlotlengMajuja/storefront/internal/repository"
)

// CategoryCache abstracts the cached category list.
type CategoryCache interface {
	Get(ctx context.Context) ([]domain.Category, error)
	Set(ctx context.Context, categories []domain.Category) error
	Invalidate(ctx context.Context) error
}

// CategoryService returns the distinct categories present in the catalog.
// The distinct scan over products is the canonical source; the cache is a
// read-through layer in front of it.
type CategoryService struct {
	repo   repository.CategoryRepository
	cache  CategoryCache
	logger *slog.Logger
}

// NewCategoryService creates a new category service. The cache may be nil,
// in which case every call hits the store.
func NewCategoryService(repo repository.CategoryRepository, cache CategoryCache, logger *slog.Logger) *CategoryService {
	return &CategoryService{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// ListCategories returns all categories, served from cache when possible.
// Cache failures degrade to the store; they never fail the request.
func (s *CategoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	if s.cache != nil {
		categories, err := s.cache.Get(ctx)
		if err == nil {
			return categories, nil
		}
	}

	categories, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, categories); err != nil {
			s.logger.WarnContext(ctx, "failed to cache categories",
				slog.String("error", err.Error()),
			)
		}
	}

	return categories, nil
}

// InvalidateCache drops the cached category list. Called when a catalog
// change notification arrives.
func (s *CategoryService) InvalidateCache(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		return fmt.Errorf("invalidate category cache: %w", err)
	}
	s.logger.InfoContext(ctx, "category cache invalidated")
	return nil
}
