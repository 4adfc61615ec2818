package domain

// Category is a product category name. The canonical source is a distinct
// scan over products; a Redis-backed cache sits in front of it and is
// invalidated when the catalog changes.
type Category struct {
	Name         string `json:"name"`
	ProductCount int    `json:"product_count"`
}
