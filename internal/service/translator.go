package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"carbot/internal/model"
	"carbot/internal/utils"
)

// translatorSystemPrompt constrains the completion service to the exact
// filter vocabulary of the listings API.
const translatorSystemPrompt = `You are a car search assistant. Convert the user's free-text car description into search filters for a vehicle listings API.

Respond with a single JSON object containing exactly these 10 keys, each set to an allowed value or null:
- make: car brand with proper capitalization (e.g., "BMW", "Toyota", "Mercedes-Benz"), or null
- model: car model with proper capitalization (e.g., "Corolla", "M3"), or null
- exterior_color: one of "black", "silver", "white", "gray", "red", "green", "yellow", "blue", "brown", "orange", "purple", "gold", or null
- body_style: one of "convertible", "coupe", "minivan", "crossover", "sedan", "suv", "truck", "wagon", or null
- category: one of "american", "classic", "commuter", "electric", "family", "fuel_efficient", "hybrid", "muscle", "sport", "supercar", or null
- condition: one of "new", "used", "certified pre-owned", or null
- features: one of "backup_camera", "bluetooth", "heated_seats", "leather", "navigation", "sunroof", or null
- transmission: one of "automatic", "manual", or null
- driveline: one of "RWD", "FWD", "4X4", "AWD", or null
- sort_order: one of "price:asc", "price:desc", "year:desc", "mileage:asc", or null

Important rules:
- Respond ONLY with the JSON object, no extra keys and no free text
- Use null for anything the user did not mention
- Never invent values outside the lists above

Examples:
Query: "red bmw convertible"
Response: {"make": "BMW", "model": null, "exterior_color": "red", "body_style": "convertible", "category": null, "condition": null, "features": null, "transmission": null, "driveline": null, "sort_order": null}

Query: "newest electric suv with a sunroof"
Response: {"make": null, "model": null, "exterior_color": null, "body_style": "suv", "category": "electric", "condition": null, "features": "sunroof", "transmission": null, "driveline": null, "sort_order": "year:desc"}

Query: "cheap manual muscle car, awd"
Response: {"make": null, "model": null, "exterior_color": null, "body_style": null, "category": "muscle", "condition": null, "features": null, "transmission": "manual", "driveline": "AWD", "sort_order": "price:asc"}`

// Translator converts free-text car descriptions into structured search
// filters using the completion service.
type Translator struct {
	aiClient *OpenAIClient
}

// NewTranslator creates a new query translator
func NewTranslator(aiClient *OpenAIClient) *Translator {
	return &Translator{
		aiClient: aiClient,
	}
}

// Translate extracts search filters from a free-text description. Any
// failure (call, empty output, unparseable JSON) degrades to an empty
// filter set so the search can proceed on price alone; it never fails.
func (t *Translator) Translate(ctx context.Context, freeText string) model.SearchFilters {
	freeText = strings.TrimSpace(freeText)
	if freeText == "" {
		return model.SearchFilters{}
	}

	if t.aiClient == nil {
		log.Printf("Completion client is not configured, searching on price alone")
		return model.SearchFilters{}
	}

	filters, err := t.translateWithAI(ctx, freeText)
	if err != nil {
		log.Printf("Query translation failed: %v, searching on price alone", err)
		return model.SearchFilters{}
	}

	return filters
}

// translateWithAI performs the completion call and normalizes its output.
func (t *Translator) translateWithAI(ctx context.Context, freeText string) (model.SearchFilters, error) {
	req := ChatCompletionRequest{
		Messages: []ChatMessage{
			{Role: "system", Content: translatorSystemPrompt},
			{Role: "user", Content: freeText},
		},
		ResponseFormat: &ResponseFormat{Type: "json_object"},
	}

	resp, err := t.aiClient.ChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("completion error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in completion response")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return nil, fmt.Errorf("empty completion output")
	}

	// Null markers decode to nil pointers and are dropped below.
	var raw map[string]*string
	if err := utils.ParseAIJSON(content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse completion output: %w", err)
	}

	filters := model.SearchFilters{}
	for key, value := range raw {
		if value == nil {
			continue
		}
		filters[key] = *value
	}

	// Drop unknown keys and out-of-enum values before anything reaches the
	// listings API.
	return filters.Normalize(), nil
}
