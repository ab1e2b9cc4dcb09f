package types

import (
	"fmt"
	"strings"
)

// Report identifies one entry of the query catalog.
type Report struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}

// Title returns the numbered label, e.g. "6. Total quantity of food available".
func (r Report) Title() string {
	return fmt.Sprintf("%d. %s", r.ID, r.Label)
}

// Row is one result row keyed by column name. Values are int64, float64,
// string or nil.
type Row map[string]any

// Result is the ordered output of a report.
type Result struct {
	Report  Report   `json:"report"`
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// Empty reports whether the result has no rows. An empty result is a normal
// outcome, distinct from an execution error.
func (r Result) Empty() bool {
	return len(r.Rows) == 0
}

// FilterField names a logical field a report can be filtered on.
type FilterField string

// Filterable logical fields. City matches a provider's City or a listing's
// Location.
const (
	FilterCity         FilterField = "city"
	FilterProviderName FilterField = "provider"
	FilterFoodType     FilterField = "food_type"
	FilterMealType     FilterField = "meal_type"
)

// FilterFields lists the filterable fields in composition order.
var FilterFields = []FilterField{FilterCity, FilterProviderName, FilterFoodType, FilterMealType}

// ParseFilterField maps a field name (case-insensitive, "-" or "_") to a
// FilterField. Returns ErrInvalidFilter for unknown names.
func ParseFilterField(name string) (FilterField, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	switch key {
	case "city", "location":
		return FilterCity, nil
	case "provider", "provider_name", "name":
		return FilterProviderName, nil
	case "food_type":
		return FilterFoodType, nil
	case "meal_type":
		return FilterMealType, nil
	default:
		return "", fmt.Errorf("%w: unknown field %q", ErrInvalidFilter, name)
	}
}

// Filter is a single equality constraint.
type Filter struct {
	Field FilterField `json:"field"`
	Value string      `json:"value"`
}

// Filters is an ordered conjunction of equality constraints.
type Filters []Filter

// Add appends an equality constraint. Empty values and the "All" sentinel
// used by filter pickers are skipped.
func (f Filters) Add(field FilterField, value string) Filters {
	if value == "" || value == FilterAll {
		return f
	}
	return append(f, Filter{Field: field, Value: value})
}

// FilterAll is the picker value meaning "no constraint on this field".
const FilterAll = "All"

// FilterOptions lists the distinct values available to each filter.
type FilterOptions struct {
	Cities        []string `json:"cities"`
	ProviderNames []string `json:"providers"`
	FoodTypes     []string `json:"food_types"`
	MealTypes     []string `json:"meal_types"`
}
