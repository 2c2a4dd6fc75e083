package domain

import "math"

// PriceRange is an inclusive [Min, Max] price interval.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// FilterCriteria is the view-local filter applied to the cached catalog.
type FilterCriteria struct {
	Category    string     `json:"category,omitempty"`
	PriceRange  PriceRange `json:"price_range"`
	SearchQuery string     `json:"search_query,omitempty"`
}

// DefaultPriceCeiling is the upper end of the price slider.
const DefaultPriceCeiling = 1000

// DefaultCriteria is the filter a fresh product view starts with.
func DefaultCriteria() FilterCriteria {
	return FilterCriteria{PriceRange: PriceRange{Min: 0, Max: DefaultPriceCeiling}}
}

// MatchAll is the identity filter: every product with a non-negative price
// passes.
func MatchAll() FilterCriteria {
	return FilterCriteria{PriceRange: PriceRange{Min: 0, Max: math.Inf(1)}}
}
