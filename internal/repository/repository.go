package repository

import (
	"context"

	"github.com/OtlotlengMajuja/storefront/internal/domain"
)

// ProductFilter defines filter, sort, and pagination criteria for listing
// products. When HasCursor is set, LastID (and LastPrice for price sorts)
// take precedence over Page.
type ProductFilter struct {
	Category *string
	SortBy   string
	Order    string
	Page     int
	PerPage  int
	// Limit overrides PerPage as the fetch bound. The catalog service
	// overfetches with it when a fuzzy search will trim the batch.
	Limit     int
	LastID    string
	LastPrice int64
	HasCursor bool
}

// ProductRepository defines the interface for product read operations.
type ProductRepository interface {
	// GetByID retrieves a product by its identifier.
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// List returns products matching the filter. The total count is only
	// populated for offset pagination; cursor queries skip counting.
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, int, error)
}

// CategoryRepository defines the interface for category reads.
type CategoryRepository interface {
	// ListAll returns the distinct categories present in the catalog with
	// their product counts.
	ListAll(ctx context.Context) ([]domain.Category, error)
}

// ReviewRepository defines the interface for review persistence operations.
type ReviewRepository interface {
	// Create inserts a new review.
	Create(ctx context.Context, review *domain.Review) error

	// GetByID retrieves a review scoped to a product.
	GetByID(ctx context.Context, productID, reviewID string) (*domain.Review, error)

	// ListByProductID returns paginated reviews for a product with the
	// total count.
	ListByProductID(ctx context.Context, productID string, page, perPage int) ([]domain.Review, int, error)

	// Update overwrites the rating, comment, and date of an existing review.
	Update(ctx context.Context, review *domain.Review) error

	// Delete permanently removes a review.
	Delete(ctx context.Context, productID, reviewID string) error

	// GetSummary returns the average rating and total review count for a
	// product.
	GetSummary(ctx context.Context, productID string) (*domain.ReviewSummary, error)
}
