package model

import "math"

// PriceWindow is the price band derived from the user's target amount.
// Immutable once computed.
type PriceWindow struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// maxScaledAmount is the largest amount whose 11x scaling still fits in an
// int; anything above it uses float math instead.
const maxScaledAmount = math.MaxInt / 11

// NewPriceWindow derives the search band from a non-negative target amount:
// 10% below (floored at 0) to 10% above. Integer scaling keeps round
// amounts free of floating-point artifacts in the outgoing query.
func NewPriceWindow(amount int) PriceWindow {
	if amount > maxScaledAmount {
		return PriceWindow{
			Min: float64(amount) * 0.9,
			Max: float64(amount) * 1.1,
		}
	}
	min := float64(amount*9) / 10
	if min < 0 {
		min = 0
	}
	return PriceWindow{
		Min: min,
		Max: float64(amount*11) / 10,
	}
}

// ListingQuery is the complete request sent to the listings API. It is
// constructed once per invocation and not mutated afterwards.
type ListingQuery struct {
	Window         PriceWindow
	Filters        SearchFilters
	Page           int
	ExcludeNoPrice bool
}

// NewListingQuery builds a first-page query with no-price listings excluded.
func NewListingQuery(window PriceWindow, filters SearchFilters) ListingQuery {
	return ListingQuery{
		Window:         window,
		Filters:        filters,
		Page:           1,
		ExcludeNoPrice: true,
	}
}

// UnknownField is substituted for any listing field the upstream response
// does not carry.
const UnknownField = "unknown"

// Listing is one vehicle from the listings API response. Read-only; it
// lives only for the invocation that fetched it.
type Listing struct {
	Year     string `json:"year"`
	Make     string `json:"make"`
	Model    string `json:"model"`
	Price    string `json:"price,omitempty"`
	PhotoURL string `json:"photo_url,omitempty"`
}
