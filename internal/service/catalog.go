package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/OtlotlengMajuja/storefront/internal/domain"
	"github.com/OtlotlengMajuja/storefront/internal/repository"
	"github.com/OtlotlengMajuja/storefront/internal/search"
	"github.com/OtlotlengMajuja/storefront/pkg/pagination"
)

// searchOverfetchFactor controls how many extra rows to fetch when a
// free-text search will trim the batch after the store query.
const searchOverfetchFactor = 2

// CatalogService implements the product listing and lookup logic.
type CatalogService struct {
	repo   repository.ProductRepository
	logger *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(repo repository.ProductRepository, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:   repo,
		logger: logger,
	}
}

// ListProductsInput holds the parameters for listing products.
type ListProductsInput struct {
	Category   string
	Search     string
	SortBy     string
	Order      string
	Pagination pagination.Params
}

// ProductPage is a bounded, ordered slice of the catalog. TotalCount and
// TotalPages are only populated for offset pagination without search; the
// cursor and search paths rely on HasMore instead.
type ProductPage struct {
	Products   []domain.Product   `json:"products"`
	Page       int                `json:"page"`
	PerPage    int                `json:"per_page"`
	TotalCount int                `json:"total_count,omitempty"`
	TotalPages int                `json:"total_pages,omitempty"`
	HasMore    bool               `json:"has_more"`
	Next       *pagination.Cursor `json:"next_cursor,omitempty"`
}

// ListProducts returns a filtered, sorted, paginated product page,
// optionally narrowed by fuzzy search.
//
// Invalid sort and order values fall back to defaults rather than failing.
// Cursors only work for sorts whose key they carry (id and price); a cursor
// combined with a title sort degrades to offset pagination. When search is
// present the store is overfetched and the batch is trimmed after matching,
// so HasMore is a conservative heuristic, not an exact count.
func (s *CatalogService) ListProducts(ctx context.Context, input ListProductsInput) (*ProductPage, error) {
	sortBy := input.SortBy
	if !domain.IsValidSortBy(sortBy) {
		sortBy = domain.SortByPrice
	}
	order := input.Order
	if !domain.IsValidOrder(order) {
		order = domain.OrderAsc
	}

	params := input.Pagination
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.PerPage <= 0 {
		params.PerPage = 20
	}
	if params.PerPage > 100 {
		params.PerPage = 100
	}
	params.Offset = (params.Page - 1) * params.PerPage

	useCursor := params.HasCursor && sortBy != domain.SortByTitle

	filter := repository.ProductFilter{
		SortBy:  sortBy,
		Order:   order,
		Page:    params.Page,
		PerPage: params.PerPage,
	}
	if input.Category != "" {
		filter.Category = &input.Category
	}
	if useCursor {
		filter.HasCursor = true
		filter.LastID = params.LastID
		filter.LastPrice = params.LastPrice
	}
	if input.Search != "" {
		filter.Limit = searchOverfetchFactor * params.PerPage
	}

	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	if input.Search != "" {
		matched := search.Rank(input.Search, products, params.PerPage)
		page := &ProductPage{
			Products: matched,
			Page:     params.Page,
			PerPage:  params.PerPage,
			HasMore:  len(matched) == params.PerPage,
		}
		return page, nil
	}

	if useCursor {
		res := pagination.NewCursorResult(products, params, func(p domain.Product) pagination.Cursor {
			c := pagination.Cursor{LastID: p.ID}
			if sortBy == domain.SortByPrice {
				c.LastPrice = p.Price
			}
			return c
		})
		return &ProductPage{
			Products: res.Data,
			Page:     params.Page,
			PerPage:  params.PerPage,
			HasMore:  res.HasMore,
			Next:     res.Next,
		}, nil
	}

	res := pagination.NewResult(products, total, params)
	return &ProductPage{
		Products:   res.Data,
		Page:       res.Page,
		PerPage:    res.PerPage,
		TotalCount: res.TotalCount,
		TotalPages: res.TotalPages,
		HasMore:    res.HasNext,
	}, nil
}

// GetProduct retrieves a product by its ID.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product by id: %w", err)
	}
	return product, nil
}
