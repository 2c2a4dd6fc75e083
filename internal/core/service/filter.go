package service

import (
	"strings"

	"github.com/99minutos/storefront/internal/core/domain"
)

// DefaultWindowSize is how many products a collapsed list shows.
const DefaultWindowSize = 5

// Apply returns the products matching every predicate of criteria, in their
// original order. The input slice is not modified.
func Apply(products []domain.Product, criteria domain.FilterCriteria) []domain.Product {
	query := strings.ToLower(criteria.SearchQuery)

	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if criteria.Category != "" && p.Category != criteria.Category {
			continue
		}
		if p.Price < criteria.PriceRange.Min || p.Price > criteria.PriceRange.Max {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Window trims products to DefaultWindowSize unless expanded is set. The
// trimmed window has no spare capacity, so appending to it never writes into
// products.
func Window(products []domain.Product, expanded bool) []domain.Product {
	if expanded || len(products) <= DefaultWindowSize {
		return products
	}
	return products[:DefaultWindowSize:DefaultWindowSize]
}
