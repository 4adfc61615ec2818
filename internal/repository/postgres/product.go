package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/OtlotlengMajuja/storefront/internal/domain"
	"github.com/OtlotlengMajuja/storefront/internal/repository"
	"github.com/OtlotlengMajuja/storefront/pkg/database"
	apperrors "github.com/OtlotlengMajuja/storefront/pkg/errors"
)

const productColumns = "id, title, description, price, category, tags, rating, stock, images, created_at"

// sortColumns whitelists the fields a listing may be ordered by. Product IDs
// are zero-padded fixed-width strings, so lexicographic order matches
// numeric order.
var sortColumns = map[string]string{
	domain.SortByPrice: "price",
	domain.SortByTitle: "title",
	domain.SortByID:    "id",
}

// ProductRepository implements repository.ProductRepository using PostgreSQL.
type ProductRepository struct {
	pool database.DBTX
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool database.DBTX) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// GetByID retrieves a product by its ID.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns)

	var p domain.Product
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Price,
		&p.Category,
		&p.Tags,
		&p.Rating,
		&p.Stock,
		&p.Images,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("product", id)
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}

	return &p, nil
}

// List returns products matching the given filter. Cursor pagination orders
// with an id tie-break so continuation is deterministic; the total count is
// computed with count(*) OVER() on the offset path only.
func (r *ProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, int, error) {
	var (
		conditions []string
		args       []any
		argIndex   = 1
	)

	if filter.Category != nil {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argIndex))
		args = append(args, *filter.Category)
		argIndex++
	}

	sortCol, ok := sortColumns[filter.SortBy]
	if !ok {
		sortCol = "id"
	}
	dir := "ASC"
	if filter.Order == domain.OrderDesc {
		dir = "DESC"
	}
	cmp := ">"
	if dir == "DESC" {
		cmp = "<"
	}

	if filter.HasCursor {
		if sortCol == "id" {
			conditions = append(conditions, fmt.Sprintf("id %s $%d", cmp, argIndex))
			args = append(args, filter.LastID)
			argIndex++
		} else if sortCol == "price" {
			// Row comparison keeps the cursor exact across price ties.
			conditions = append(conditions, fmt.Sprintf("(price, id) %s ($%d, $%d)", cmp, argIndex, argIndex+1))
			args = append(args, filter.LastPrice, filter.LastID)
			argIndex += 2
		}
		// Title sorts have no usable cursor fields; the service routes
		// them through the offset path.
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	orderClause := fmt.Sprintf("ORDER BY %s %s", sortCol, dir)
	if sortCol != "id" {
		orderClause += fmt.Sprintf(", id %s", dir)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = filter.PerPage
	}
	if limit <= 0 {
		limit = 20
	}

	var query string
	if filter.HasCursor {
		query = fmt.Sprintf(`
			SELECT %s
			FROM products
			%s
			%s
			LIMIT $%d`,
			productColumns, whereClause, orderClause, argIndex,
		)
		args = append(args, limit)
	} else {
		offset := 0
		if filter.Page > 1 {
			perPage := filter.PerPage
			if perPage <= 0 {
				perPage = 20
			}
			offset = (filter.Page - 1) * perPage
		}
		query = fmt.Sprintf(`
			SELECT %s,
			       count(*) OVER() AS total_count
			FROM products
			%s
			%s
			LIMIT $%d OFFSET $%d`,
			productColumns, whereClause, orderClause, argIndex, argIndex+1,
		)
		args = append(args, limit, offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var (
		products   []domain.Product
		totalCount int
	)

	for rows.Next() {
		var p domain.Product

		dest := []any{
			&p.ID,
			&p.Title,
			&p.Description,
			&p.Price,
			&p.Category,
			&p.Tags,
			&p.Rating,
			&p.Stock,
			&p.Images,
			&p.CreatedAt,
		}
		if !filter.HasCursor {
			dest = append(dest, &totalCount)
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, 0, fmt.Errorf("scan product row: %w", err)
		}

		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate product rows: %w", err)
	}

	if products == nil {
		products = []domain.Product{}
	}

	return products, totalCount, nil
}
