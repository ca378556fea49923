package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"carbot/internal/config"
	"carbot/internal/model"
)

func newTestListingsClient(serverURL string) *ListingsClient {
	cfg := &config.AutoDevConfig{
		APIKey:  "test-key",
		BaseURL: serverURL,
		Timeout: 5,
	}
	return NewListingsClient(cfg)
}

func TestListingsClient_Search_RequestParams(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/listings" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		gotQuery = map[string]string{}
		for key, values := range r.URL.Query() {
			gotQuery[key] = values[0]
		}
		fmt.Fprint(w, `{"records": []}`)
	}))
	defer server.Close()

	client := newTestListingsClient(server.URL)
	filters := model.SearchFilters{
		model.FilterMake:          "BMW",
		model.FilterExteriorColor: "red",
		model.FilterSortOrder:     "price:asc",
	}

	_, err := client.Search(context.Background(), model.NewListingQuery(model.NewPriceWindow(20000), filters))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := map[string]string{
		"apikey":           "test-key",
		"price_min":        "18000",
		"price_max":        "22000",
		"page":             "1",
		"exclude_no_price": "true",
		"make":             "BMW",
		"exterior_color[]": "red",
		"sort_filter":      "price:asc",
	}

	for param, want := range expected {
		if got := gotQuery[param]; got != want {
			t.Errorf("Expected %s=%s, got %q", param, want, got)
		}
	}
	if len(gotQuery) != len(expected) {
		t.Errorf("Expected %d parameters, got %d: %v", len(expected), len(gotQuery), gotQuery)
	}
}

func TestListingsClient_Search_MapsRecords(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"records": [
			{"year": 2019, "make": "BMW", "model": "M3", "price": "$45,000", "primaryPhotoUrl": "https://example.com/m3.jpg"},
			{"price": "$12,000"}
		]}`)
	}))
	defer server.Close()

	client := newTestListingsClient(server.URL)
	listings, err := client.Search(context.Background(), model.NewListingQuery(model.NewPriceWindow(40000), nil))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(listings) != 2 {
		t.Fatalf("Expected 2 listings, got %d", len(listings))
	}

	first := listings[0]
	if first.Year != "2019" || first.Make != "BMW" || first.Model != "M3" {
		t.Errorf("Unexpected first listing: %+v", first)
	}
	if first.PhotoURL != "https://example.com/m3.jpg" {
		t.Errorf("Expected photo URL to be carried, got %q", first.PhotoURL)
	}

	second := listings[1]
	if second.Year != model.UnknownField || second.Make != model.UnknownField || second.Model != model.UnknownField {
		t.Errorf("Expected missing fields to default to %q, got %+v", model.UnknownField, second)
	}
	if second.PhotoURL != "" {
		t.Errorf("Expected no photo URL, got %q", second.PhotoURL)
	}
}

func TestListingsClient_Search_EmptyResults(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "Empty records array",
			body: `{"records": []}`,
		},
		{
			name: "Records field absent",
			body: `{"totalCount": 0}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			client := newTestListingsClient(server.URL)
			listings, err := client.Search(context.Background(), model.NewListingQuery(model.NewPriceWindow(5000), nil))
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if listings == nil {
				t.Fatal("Expected non-nil empty slice")
			}
			if len(listings) != 0 {
				t.Errorf("Expected empty listings, got %d", len(listings))
			}
		})
	}
}

func TestListingsClient_Search_UpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error": "invalid api key"}`)
	}))
	defer server.Close()

	client := newTestListingsClient(server.URL)
	_, err := client.Search(context.Background(), model.NewListingQuery(model.NewPriceWindow(5000), nil))

	var upstreamErr *UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("Expected UpstreamError, got %v", err)
	}
	if upstreamErr.StatusCode != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", upstreamErr.StatusCode)
	}
	if upstreamErr.Body != `{"error": "invalid api key"}` {
		t.Errorf("Expected response body to be carried for diagnostics, got %q", upstreamErr.Body)
	}
}

func TestListingsClient_Search_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		fmt.Fprint(w, `{"records": []}`)
	}))
	defer server.Close()

	client := newTestListingsClient(server.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Search(ctx, model.NewListingQuery(model.NewPriceWindow(5000), nil))
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("Expected ErrTimeout, got %v", err)
	}
}
