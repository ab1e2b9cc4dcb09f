package types

import "fmt"

// Food types.
const (
	FoodTypeVegetarian    = "Vegetarian"
	FoodTypeNonVegetarian = "Non-Vegetarian"
	FoodTypeVegan         = "Vegan"
)

// Meal types.
const (
	MealTypeBreakfast = "Breakfast"
	MealTypeLunch     = "Lunch"
	MealTypeDinner    = "Dinner"
	MealTypeSnacks    = "Snacks"
)

// FoodTypes lists the recognized food types in display order.
var FoodTypes = []string{FoodTypeVegetarian, FoodTypeNonVegetarian, FoodTypeVegan}

// MealTypes lists the recognized meal types in display order.
var MealTypes = []string{MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnacks}

var validFoodTypes = setOf(FoodTypes)

var validMealTypes = setOf(MealTypes)

// setOf returns a membership set of values.
func setOf(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

// FoodListing is a single donated food batch with quantity and expiry.
// Location is stored independently of the provider's City.
type FoodListing struct {
	FoodID       int64  `json:"Food_ID"`
	FoodName     string `json:"Food_Name"`
	Quantity     int    `json:"Quantity"`
	ExpiryDate   Date   `json:"Expiry_Date"`
	ProviderID   int64  `json:"Provider_ID"`
	ProviderType string `json:"Provider_Type"`
	Location     string `json:"Location"`
	FoodType     string `json:"Food_Type"`
	MealType     string `json:"Meal_Type"`
}

// Validate checks the field constraints of a listing. It does not check
// that ProviderID references an existing provider.
func (l FoodListing) Validate() error {
	if l.FoodID <= 0 {
		return fmt.Errorf("%w: Food_ID must be positive", ErrInvalidRecord)
	}
	if l.FoodName == "" {
		return fmt.Errorf("%w: Food_Name is required", ErrInvalidRecord)
	}
	if l.Quantity < 0 {
		return fmt.Errorf("%w: Quantity must not be negative", ErrInvalidRecord)
	}
	if l.ExpiryDate.IsZero() {
		return fmt.Errorf("%w: Expiry_Date is required", ErrInvalidRecord)
	}
	if l.ProviderID <= 0 {
		return fmt.Errorf("%w: Provider_ID must be positive", ErrInvalidRecord)
	}
	if !validFoodTypes[l.FoodType] {
		return fmt.Errorf("%w: unknown Food_Type %q", ErrInvalidRecord, l.FoodType)
	}
	if !validMealTypes[l.MealType] {
		return fmt.Errorf("%w: unknown Meal_Type %q", ErrInvalidRecord, l.MealType)
	}
	return nil
}

// ListingUpdate carries the mutable fields of a food listing.
type ListingUpdate struct {
	FoodName   string `json:"Food_Name"`
	Quantity   int    `json:"Quantity"`
	ExpiryDate Date   `json:"Expiry_Date"`
}

// Validate checks the update's field constraints.
func (u ListingUpdate) Validate() error {
	if u.FoodName == "" {
		return fmt.Errorf("%w: Food_Name is required", ErrInvalidRecord)
	}
	if u.Quantity < 0 {
		return fmt.Errorf("%w: Quantity must not be negative", ErrInvalidRecord)
	}
	if u.ExpiryDate.IsZero() {
		return fmt.Errorf("%w: Expiry_Date is required", ErrInvalidRecord)
	}
	return nil
}

// Apply copies the update's fields onto l.
func (u ListingUpdate) Apply(l *FoodListing) {
	l.FoodName = u.FoodName
	l.Quantity = u.Quantity
	l.ExpiryDate = u.ExpiryDate
}
