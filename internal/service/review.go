package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/OtlotlengMajuja/storefront/internal/domain"
	"github.com/OtlotlengMajuja/storefront/internal/event"
	"github.com/OtlotlengMajuja/storefront/internal/repository"
	apperrors "github.com/OtlotlengMajuja/storefront/pkg/errors"
	"github.com/OtlotlengMajuja/storefront/pkg/pagination"
)

const maxCommentLength = 2000

// Identity is the verified caller identity extracted from a session token.
// It is never taken from the request body.
type Identity struct {
	Email string
	Name  string
}

// ReviewService implements review creation, mutation, and deletion with
// per-review ownership enforcement.
type ReviewService struct {
	reviews  repository.ReviewRepository
	products repository.ProductRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(reviews repository.ReviewRepository, products repository.ProductRepository, producer *event.Producer, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		reviews:  reviews,
		products: products,
		producer: producer,
		logger:   logger,
	}
}

// ReviewInput holds the client-supplied fields of a review. Reviewer
// identity comes from the verified session, never from the client.
type ReviewInput struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// validateReviewInput checks rating bounds and comment presence and length.
// It runs before any store access so an invalid review never reaches a write.
func validateReviewInput(input *ReviewInput) error {
	if input.Rating < 1 || input.Rating > 5 {
		return apperrors.InvalidInput("rating must be between 1 and 5")
	}
	if strings.TrimSpace(input.Comment) == "" {
		return apperrors.InvalidInput("comment is required")
	}
	if len(input.Comment) > maxCommentLength {
		return apperrors.InvalidInput(fmt.Sprintf("comment must not exceed %d characters", maxCommentLength))
	}
	return nil
}

// CreateReview validates the input, verifies the product exists, and
// persists a new review owned by the caller identity.
func (s *ReviewService) CreateReview(ctx context.Context, productID string, identity Identity, input *ReviewInput) (*domain.Review, error) {
	if err := validateReviewInput(input); err != nil {
		return nil, err
	}

	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, fmt.Errorf("get product for review: %w", err)
	}

	review := &domain.Review{
		ID:            uuid.New().String(),
		ProductID:     productID,
		Rating:        input.Rating,
		Comment:       input.Comment,
		ReviewerEmail: identity.Email,
		ReviewerName:  identity.Name,
		Date:          time.Now().UTC(),
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	if err := s.producer.PublishReviewCreated(ctx, review); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish review.created event",
			slog.String("review_id", review.ID),
			slog.String("error", err.Error()),
		)
		// Do not fail the operation if event publishing fails.
	}

	s.logger.InfoContext(ctx, "review created",
		slog.String("review_id", review.ID),
		slog.String("product_id", productID),
	)

	return review, nil
}

// GetReview retrieves a single review scoped to a product.
func (s *ReviewService) GetReview(ctx context.Context, productID, reviewID string) (*domain.Review, error) {
	review, err := s.reviews.GetByID(ctx, productID, reviewID)
	if err != nil {
		return nil, fmt.Errorf("get review by id: %w", err)
	}
	return review, nil
}

// ListReviews returns a paginated list of reviews for a product.
func (s *ReviewService) ListReviews(ctx context.Context, productID string, params pagination.Params) (*pagination.Result[domain.Review], error) {
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.PerPage <= 0 {
		params.PerPage = 20
	}
	if params.PerPage > 100 {
		params.PerPage = 100
	}

	reviews, total, err := s.reviews.ListByProductID(ctx, productID, params.Page, params.PerPage)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	result := pagination.NewResult(reviews, total, params)
	return &result, nil
}

// GetSummary returns the average rating and review count for a product.
func (s *ReviewService) GetSummary(ctx context.Context, productID string) (*domain.ReviewSummary, error) {
	summary, err := s.reviews.GetSummary(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("get review summary: %w", err)
	}
	return summary, nil
}

// UpdateReview overwrites the rating and comment of an existing review.
// Only the identity that created the review may update it.
func (s *ReviewService) UpdateReview(ctx context.Context, productID, reviewID string, identity Identity, input *ReviewInput) (*domain.Review, error) {
	if err := validateReviewInput(input); err != nil {
		return nil, err
	}

	review, err := s.reviews.GetByID(ctx, productID, reviewID)
	if err != nil {
		return nil, fmt.Errorf("get review for update: %w", err)
	}

	if review.ReviewerEmail != identity.Email {
		return nil, apperrors.Forbidden("you can only update your own reviews")
	}

	review.Rating = input.Rating
	review.Comment = input.Comment
	review.Date = time.Now().UTC()

	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}

	if err := s.producer.PublishReviewUpdated(ctx, review); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish review.updated event",
			slog.String("review_id", review.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "review updated",
		slog.String("review_id", review.ID),
		slog.String("product_id", productID),
	)

	return review, nil
}

// DeleteReview permanently removes a review. Only the identity that created
// the review may delete it.
func (s *ReviewService) DeleteReview(ctx context.Context, productID, reviewID string, identity Identity) error {
	review, err := s.reviews.GetByID(ctx, productID, reviewID)
	if err != nil {
		return fmt.Errorf("get review for delete: %w", err)
	}

	if review.ReviewerEmail != identity.Email {
		return apperrors.Forbidden("you can only delete your own reviews")
	}

	if err := s.reviews.Delete(ctx, productID, reviewID); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	if err := s.producer.PublishReviewDeleted(ctx, productID, reviewID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish review.deleted event",
			slog.String("review_id", reviewID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "review deleted",
		slog.String("review_id", reviewID),
		slog.String("product_id", productID),
	)

	return nil
}
