package event

import (
	"context"
	"log/slog"

	pkgkafka "github.com/OtlotlengMajuja/storefront/pkg/kafka"
)

// ConsumerGroupID identifies the storefront's consumer group.
const ConsumerGroupID = "storefront"

// CategoryInvalidator drops the cached category list when the catalog
// changes out of band.
type CategoryInvalidator interface {
	InvalidateCache(ctx context.Context) error
}

// ConsumerHandler routes incoming Kafka events to the appropriate handler.
type ConsumerHandler struct {
	categories CategoryInvalidator
	logger     *slog.Logger
}

// NewConsumerHandler creates a new event consumer handler.
func NewConsumerHandler(categories CategoryInvalidator, logger *slog.Logger) *ConsumerHandler {
	return &ConsumerHandler{
		categories: categories,
		logger:     logger,
	}
}

// Handle processes an incoming Kafka event based on its event type.
func (h *ConsumerHandler) Handle(ctx context.Context, event *pkgkafka.Event) error {
	switch event.EventType {
	case TopicCatalogChanged:
		return h.handleCatalogChanged(ctx, event)
	default:
		h.logger.WarnContext(ctx, "unknown event type received",
			slog.String("event_type", event.EventType),
			slog.String("event_id", event.EventID),
		)
		return nil
	}
}

// handleCatalogChanged invalidates the category cache so the next listing
// reflects the modified catalog.
func (h *ConsumerHandler) handleCatalogChanged(ctx context.Context, event *pkgkafka.Event) error {
	h.logger.InfoContext(ctx, "received catalog.changed event",
		slog.String("event_id", event.EventID),
		slog.String("aggregate_id", event.AggregateID),
		slog.String("source", event.Source),
	)
	return h.categories.InvalidateCache(ctx)
}
