package event

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	pkgkafka "github.com/OtlotlengMajuja/storefront/pkg/kafka"

	"github.com/OtlotlengMajuja/storefront/internal/domain"
)

// Kafka topic constants for review domain events.
const (
	TopicReviewCreated = "storefront.review.created"
	TopicReviewUpdated = "storefront.review.updated"
	TopicReviewDeleted = "storefront.review.deleted"
)

// TopicCatalogChanged carries notifications that the product catalog was
// modified out of band. The storefront consumes it to invalidate the
// category cache.
const TopicCatalogChanged = "storefront.catalog.changed"

// Aggregate type constant.
const AggregateTypeReview = "review"

// Source identifier for events originating from the storefront service.
const SourceStorefront = "storefront"

// ReviewCreatedData is the payload for a review.created event.
type ReviewCreatedData struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"product_id"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment"`
	ReviewerEmail string    `json:"reviewer_email"`
	ReviewerName  string    `json:"reviewer_name"`
	Date          time.Time `json:"date"`
}

// ReviewUpdatedData is the payload for a review.updated event.
type ReviewUpdatedData struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Date      time.Time `json:"date"`
}

// ReviewDeletedData is the payload for a review.deleted event.
type ReviewDeletedData struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
}

// Producer publishes review domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the storefront service.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishReviewCreated publishes a review.created event.
func (p *Producer) PublishReviewCreated(ctx context.Context, review *domain.Review) error {
	data := ReviewCreatedData{
		ID:            review.ID,
		ProductID:     review.ProductID,
		Rating:        review.Rating,
		Comment:       review.Comment,
		ReviewerEmail: review.ReviewerEmail,
		ReviewerName:  review.ReviewerName,
		Date:          review.Date,
	}

	event, err := pkgkafka.NewEvent(TopicReviewCreated, review.ID, AggregateTypeReview, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create review.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicReviewCreated, event); err != nil {
		return fmt.Errorf("publish review.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published review.created event",
		slog.String("review_id", review.ID),
		slog.String("product_id", review.ProductID),
	)

	return nil
}

// PublishReviewUpdated publishes a review.updated event.
func (p *Producer) PublishReviewUpdated(ctx context.Context, review *domain.Review) error {
	data := ReviewUpdatedData{
		ID:        review.ID,
		ProductID: review.ProductID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		Date:      review.Date,
	}

	event, err := pkgkafka.NewEvent(TopicReviewUpdated, review.ID, AggregateTypeReview, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create review.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicReviewUpdated, event); err != nil {
		return fmt.Errorf("publish review.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published review.updated event",
		slog.String("review_id", review.ID),
		slog.String("product_id", review.ProductID),
	)

	return nil
}

// PublishReviewDeleted publishes a review.deleted event.
func (p *Producer) PublishReviewDeleted(ctx context.Context, productID, reviewID string) error {
	data := ReviewDeletedData{ID: reviewID, ProductID: productID}

	event, err := pkgkafka.NewEvent(TopicReviewDeleted, reviewID, AggregateTypeReview, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create review.deleted event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicReviewDeleted, event); err != nil {
		return fmt.Errorf("publish review.deleted event: %w", err)
	}

	p.logger.DebugContext(ctx, "published review.deleted event",
		slog.String("review_id", reviewID),
		slog.String("product_id", productID),
	)

	return nil
}
