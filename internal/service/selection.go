package service

import (
	"fmt"
	"math/rand"

	"carbot/internal/model"
)

// Fallback thresholds for empty result sets.
const (
	betMoreBelow = 1000
	betLessAbove = 25000000
)

// noMatchMessage is sent when no listing matched and neither extreme-price
// fallback applies.
const noMatchMessage = "Sorry, I couldn't find any cars matching your criteria. Try adjusting your search parameters."

// Selector turns a result set into the user-facing reply
type Selector struct {
	betMoreImage string
	betLessImage string
}

// NewSelector creates a new selection policy with the given fallback images
func NewSelector(betMoreImage, betLessImage string) *Selector {
	return &Selector{
		betMoreImage: betMoreImage,
		betLessImage: betLessImage,
	}
}

// Select picks the reply for a result set. With matches it chooses one
// listing uniformly at random; otherwise it applies the price-based
// fallback. Safe for concurrent invocations; the only non-determinism is
// the top-level rand source.
func (s *Selector) Select(amount int, results []model.Listing) model.Reply {
	if len(results) == 0 {
		return s.fallback(amount)
	}

	listing := results[rand.Intn(len(results))]
	reply := model.Reply{
		Text: fmt.Sprintf("With your $%d, you could have bought a %s %s %s!",
			amount, listing.Year, listing.Make, listing.Model),
	}
	if listing.PhotoURL != "" {
		reply.PhotoURL = listing.PhotoURL
	}
	return reply
}

// fallback handles the empty result set. The two image replies carry no
// caption.
func (s *Selector) fallback(amount int) model.Reply {
	switch {
	case amount < betMoreBelow:
		return model.Reply{PhotoPath: s.betMoreImage}
	case amount > betLessAbove:
		return model.Reply{PhotoPath: s.betLessImage}
	default:
		return model.Reply{Text: noMatchMessage}
	}
}
