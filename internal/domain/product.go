package domain

import (
	"time"
)

// Product represents a product in the catalog. Prices are stored in minor
// currency units. Products are read-only through this service; catalog
// changes arrive through administrative channels and are announced on the
// catalog change topic.
type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags,omitempty"`
	Rating      float64   `json:"rating"`
	Stock       int       `json:"stock"`
	Images      []string  `json:"images,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Allowed sort fields for product listings.
const (
	SortByPrice = "price"
	SortByTitle = "title"
	SortByID    = "id"
)

// Sort orders.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// IsValidSortBy reports whether the given field can be sorted on.
func IsValidSortBy(field string) bool {
	switch field {
	case SortByPrice, SortByTitle, SortByID:
		return true
	}
	return false
}

// IsValidOrder reports whether the given sort order is recognized.
func IsValidOrder(order string) bool {
	return order == OrderAsc || order == OrderDesc
}
