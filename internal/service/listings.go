package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"carbot/internal/config"
	"carbot/internal/model"
)

// ErrTimeout is returned when the listings API does not answer within the
// configured timeout.
var ErrTimeout = errors.New("listings request timed out")

// UpstreamError is returned when the listings API answers with a non-2xx
// status. The body is kept for diagnostics.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("listings API returned status %d: %s", e.StatusCode, e.Body)
}

// ListingsClient issues search requests against the auto.dev listings API
type ListingsClient struct {
	config     *config.AutoDevConfig
	httpClient *http.Client
}

// NewListingsClient creates a new listings API client
func NewListingsClient(cfg *config.AutoDevConfig) *ListingsClient {
	return &ListingsClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

// listingRecord mirrors one entry of the upstream "records" array. Only the
// fields the bot uses are decoded.
type listingRecord struct {
	Year            *int   `json:"year"`
	Make            string `json:"make"`
	Model           string `json:"model"`
	Price           string `json:"price"`
	PrimaryPhotoURL string `json:"primaryPhotoUrl"`
}

// listingsResponse mirrors the upstream search response envelope
type listingsResponse struct {
	Records []listingRecord `json:"records"`
}

// Search performs a single synchronous listings query. An empty or absent
// records array yields an empty, non-nil slice.
func (c *ListingsClient) Search(ctx context.Context, query model.ListingQuery) ([]model.Listing, error) {
	endpoint := fmt.Sprintf("%s/listings?%s", c.config.BaseURL, c.buildParams(query).Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var uerr *url.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &uerr) && uerr.Timeout()) {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var result listingsResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	listings := make([]model.Listing, 0, len(result.Records))
	for _, record := range result.Records {
		listings = append(listings, mapRecord(record))
	}

	return listings, nil
}

// buildParams assembles the query string: API key, price window, fixed
// pagination, the no-price exclusion and every normalized filter.
func (c *ListingsClient) buildParams(query model.ListingQuery) url.Values {
	params := url.Values{}
	params.Set("apikey", c.config.APIKey)
	params.Set("price_min", strconv.FormatFloat(query.Window.Min, 'f', -1, 64))
	params.Set("price_max", strconv.FormatFloat(query.Window.Max, 'f', -1, 64))
	params.Set("page", strconv.Itoa(query.Page))
	if query.ExcludeNoPrice {
		params.Set("exclude_no_price", "true")
	}
	query.Filters.Encode(params)
	return params
}

// mapRecord converts an upstream record into a Listing, substituting
// "unknown" for missing fields.
func mapRecord(record listingRecord) model.Listing {
	listing := model.Listing{
		Year:     model.UnknownField,
		Make:     model.UnknownField,
		Model:    model.UnknownField,
		Price:    record.Price,
		PhotoURL: record.PrimaryPhotoURL,
	}
	if record.Year != nil {
		listing.Year = strconv.Itoa(*record.Year)
	}
	if record.Make != "" {
		listing.Make = record.Make
	}
	if record.Model != "" {
		listing.Model = record.Model
	}
	return listing
}
