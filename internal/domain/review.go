package domain

import (
	"time"
)

// Review represents a product review submitted by an authenticated shopper.
// ReviewerEmail is the ownership key: only the identity that created a
// review may update or delete it.
type Review struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"product_id"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment"`
	ReviewerEmail string    `json:"reviewer_email"`
	ReviewerName  string    `json:"reviewer_name"`
	Date          time.Time `json:"date"`
}

// ReviewSummary contains aggregate review statistics for a product.
type ReviewSummary struct {
	AverageRating float64 `json:"average_rating"`
	TotalCount    int     `json:"total_count"`
}
