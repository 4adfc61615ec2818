package postgres

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5"

	"github.com/OtlotlengMajuja/storefront/internal/domain"
	"github.com/OtlotlengMajuja/storefront/pkg/database"
	apperrors "github.com/OtlotlengMajuja/storefront/pkg/errors"
)

// ReviewRepository implements review persistence operations using PostgreSQL.
type ReviewRepository struct {
	pool database.DBTX
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(pool database.DBTX) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

// Create inserts a new product review into the database.
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	query := `
		INSERT INTO reviews (id, product_id, rating, comment, reviewer_email, reviewer_name, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		review.ID,
		review.ProductID,
		review.Rating,
		review.Comment,
		review.ReviewerEmail,
		review.ReviewerName,
		review.Date,
	)
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}

	return nil
}

// GetByID retrieves a review scoped to a product.
func (r *ReviewRepository) GetByID(ctx context.Context, productID, reviewID string) (*domain.Review, error) {
	query := `
		SELECT id, product_id, rating, comment, reviewer_email, reviewer_name, date
		FROM reviews
		WHERE id = $1 AND product_id = $2`

	var rv domain.Review
	err := r.pool.QueryRow(ctx, query, reviewID, productID).Scan(
		&rv.ID,
		&rv.ProductID,
		&rv.Rating,
		&rv.Comment,
		&rv.ReviewerEmail,
		&rv.ReviewerName,
		&rv.Date,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("review", reviewID)
		}
		return nil, fmt.Errorf("scan review: %w", err)
	}

	return &rv, nil
}

// ListByProductID returns paginated reviews for a product with the total count.
func (r *ReviewRepository) ListByProductID(ctx context.Context, productID string, page, perPage int) ([]domain.Review, int, error) {
	limit := perPage
	if limit <= 0 {
		limit = 20
	}
	offset := 0
	if page > 1 {
		offset = (page - 1) * limit
	}

	query := `
		SELECT id, product_id, rating, comment, reviewer_email, reviewer_name, date,
		       count(*) OVER() AS total_count
		FROM reviews
		WHERE product_id = $1
		ORDER BY date DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, productID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var (
		reviews    []domain.Review
		totalCount int
	)

	for rows.Next() {
		var rv domain.Review

		if err := rows.Scan(
			&rv.ID,
			&rv.ProductID,
			&rv.Rating,
			&rv.Comment,
			&rv.ReviewerEmail,
			&rv.ReviewerName,
			&rv.Date,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan review row: %w", err)
		}

		reviews = append(reviews, rv)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate review rows: %w", err)
	}

	if reviews == nil {
		reviews = []domain.Review{}
	}

	return reviews, totalCount, nil
}

// Update overwrites the rating, comment, and date of an existing review.
func (r *ReviewRepository) Update(ctx context.Context, review *domain.Review) error {
	query := `
		UPDATE reviews
		SET rating = $1, comment = $2, date = $3
		WHERE id = $4 AND product_id = $5`

	ct, err := r.pool.Exec(ctx, query,
		review.Rating,
		review.Comment,
		review.Date,
		review.ID,
		review.ProductID,
	)
	if err != nil {
		return fmt.Errorf("update review: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("review", review.ID)
	}

	return nil
}

// Delete permanently removes a review. There is no soft-delete.
func (r *ReviewRepository) Delete(ctx context.Context, productID, reviewID string) error {
	query := `DELETE FROM reviews WHERE id = $1 AND product_id = $2`

	ct, err := r.pool.Exec(ctx, query, reviewID, productID)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("review", reviewID)
	}

	return nil
}

// GetSummary returns the average rating and total count of reviews for a product.
func (r *ReviewRepository) GetSummary(ctx context.Context, productID string) (*domain.ReviewSummary, error) {
	query := `
		SELECT COALESCE(AVG(rating), 0), COUNT(*)
		FROM reviews
		WHERE product_id = $1`

	var summary domain.ReviewSummary

	err := r.pool.QueryRow(ctx, query, productID).Scan(
		&summary.AverageRating,
		&summary.TotalCount,
	)
	if err != nil {
		return nil, fmt.Errorf("get review summary: %w", err)
	}

	summary.AverageRating = math.Round(summary.AverageRating*10) / 10

	return &summary, nil
}
