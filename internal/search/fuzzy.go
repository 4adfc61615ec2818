package search

import (
	"github.com/sahilm/fuzzy"

	"github.com/OtlotlengMajuja/storefront/internal/domain"
)

// productSource adapts a product batch for fuzzy matching over title and
// description.
type productSource []domain.Product

func (s productSource) String(i int) string {
	return s[i].Title + " " + s[i].Description
}

func (s productSource) Len() int {
	return len(s)
}

// Rank runs approximate string matching over the fetched batch and returns
// the matching products in relevance order (best match first), trimmed to
// limit. Matching is typo-tolerant: a query matches when its characters
// appear in order within the product's title or description. A limit <= 0
// means no trimming.
func Rank(query string, products []domain.Product, limit int) []domain.Product {
	if query == "" {
		if limit > 0 && len(products) > limit {
			return products[:limit]
		}
		return products
	}

	matches := fuzzy.FindFrom(query, productSource(products))

	n := len(matches)
	if limit > 0 && n > limit {
		n = limit
	}

	ranked := make([]domain.Product, 0, n)
	for _, m := range matches[:n] {
		ranked = append(ranked, products[m.Index])
	}
	return ranked
}
