package model

import "net/url"

// Filter keys recognized by the auto.dev listings API.
const (
	FilterMake          = "make"
	FilterModel         = "model"
	FilterExteriorColor = "exterior_color"
	FilterBodyStyle     = "body_style"
	FilterCategory      = "category"
	FilterCondition     = "condition"
	FilterFeatures      = "features"
	FilterTransmission  = "transmission"
	FilterDriveline     = "driveline"
	FilterSortOrder     = "sort_order"
)

// FilterKeys is the full closed set of filter keys, in a stable order.
var FilterKeys = []string{
	FilterMake,
	FilterModel,
	FilterExteriorColor,
	FilterBodyStyle,
	FilterCategory,
	FilterCondition,
	FilterFeatures,
	FilterTransmission,
	FilterDriveline,
	FilterSortOrder,
}

// filterEnums holds the legal values per key. Keys with a nil entry
// (make, model) accept any non-empty value.
var filterEnums = map[string]map[string]bool{
	FilterMake:  nil,
	FilterModel: nil,
	FilterExteriorColor: enumSet(
		"black", "silver", "white", "gray", "red", "green",
		"yellow", "blue", "brown", "orange", "purple", "gold",
	),
	FilterBodyStyle: enumSet(
		"convertible", "coupe", "minivan", "crossover",
		"sedan", "suv", "truck", "wagon",
	),
	FilterCategory: enumSet(
		"american", "classic", "commuter", "electric", "family",
		"fuel_efficient", "hybrid", "muscle", "sport", "supercar",
	),
	FilterCondition:    enumSet("new", "used", "certified pre-owned"),
	FilterFeatures:     enumSet("backup_camera", "bluetooth", "heated_seats", "leather", "navigation", "sunroof"),
	FilterTransmission: enumSet("automatic", "manual"),
	FilterDriveline:    enumSet("RWD", "FWD", "4X4", "AWD"),
	FilterSortOrder:    enumSet("price:asc", "price:desc", "year:desc", "mileage:asc"),
}

// filterParams maps filter keys to their query-parameter names on the
// listings API. Multi-valued parameters carry a [] suffix; sort_order is
// exposed upstream as sort_filter.
var filterParams = map[string]string{
	FilterMake:          "make",
	FilterModel:         "model",
	FilterExteriorColor: "exterior_color[]",
	FilterBodyStyle:     "body_style[]",
	FilterCategory:      "category",
	FilterCondition:     "condition[]",
	FilterFeatures:      "features[]",
	FilterTransmission:  "transmission[]",
	FilterDriveline:     "driveline[]",
	FilterSortOrder:     "sort_filter",
}

func enumSet(values ...string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

// SearchFilters maps filter keys to a single value each. Absent keys mean
// "no constraint". Only normalized filters may reach the listings API.
type SearchFilters map[string]string

// Normalize returns a copy with unknown keys, empty values and values
// outside the key's enumeration dropped. Free-form keys (make, model) keep
// any non-empty value verbatim.
func (f SearchFilters) Normalize() SearchFilters {
	normalized := SearchFilters{}
	for key, value := range f {
		enum, known := filterEnums[key]
		if !known || value == "" {
			continue
		}
		if enum != nil && !enum[value] {
			continue
		}
		normalized[key] = value
	}
	return normalized
}

// Encode adds every filter to the given query values under its upstream
// parameter name. The receiver is expected to be normalized.
func (f SearchFilters) Encode(values url.Values) {
	for _, key := range FilterKeys {
		if value, ok := f[key]; ok {
			values.Set(filterParams[key], value)
		}
	}
}
