package service

import (
	"context"
	"log"
	"time"

	"carbot/internal/model"

	"github.com/google/uuid"
)

// CarFinder runs the full pipeline: translate the description, derive the
// price window, query the listings API and select a reply.
type CarFinder struct {
	translator *Translator
	listings   *ListingsClient
	selector   *Selector
}

// NewCarFinder creates a new car finder
func NewCarFinder(translator *Translator, listings *ListingsClient, selector *Selector) *CarFinder {
	return &CarFinder{
		translator: translator,
		listings:   listings,
		selector:   selector,
	}
}

// FindResult carries everything one invocation produced, for the HTTP
// surface and for log correlation.
type FindResult struct {
	SearchID string              `json:"search_id"`
	Window   model.PriceWindow   `json:"window"`
	Filters  model.SearchFilters `json:"filters"`
	Listings []model.Listing     `json:"listings"`
	Reply    model.Reply         `json:"reply"`
	Took     int64               `json:"took_ms"`
}

// Find performs one complete search. Every invocation is independent; the
// two upstream calls are sequential because the filters must be known
// before the listings query is issued. Translation failures degrade
// silently inside the translator; listings failures are returned.
func (f *CarFinder) Find(ctx context.Context, amount int, description string) (*FindResult, error) {
	startTime := time.Now()
	searchID := uuid.New().String()

	filters := f.translator.Translate(ctx, description)
	window := model.NewPriceWindow(amount)

	log.Printf("[%s] Searching listings: amount=%d window=[%.0f, %.0f] filters=%d",
		searchID, amount, window.Min, window.Max, len(filters))

	listings, err := f.listings.Search(ctx, model.NewListingQuery(window, filters))
	if err != nil {
		log.Printf("[%s] Listings search failed: %v", searchID, err)
		return nil, err
	}

	reply := f.selector.Select(amount, listings)
	took := time.Since(startTime).Milliseconds()

	log.Printf("[%s] Found %d listings in %dms", searchID, len(listings), took)

	return &FindResult{
		SearchID: searchID,
		Window:   window,
		Filters:  filters,
		Listings: listings,
		Reply:    reply,
		Took:     took,
	}, nil
}
