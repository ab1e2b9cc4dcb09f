package types

import "time"

// Sources holds the four record sets a rebuild loads, one per entity.
type Sources struct {
	Providers []Provider    `json:"providers"`
	Receivers []Receiver    `json:"receivers"`
	Listings  []FoodListing `json:"food_listings"`
	Claims    []Claim       `json:"claims"`
}

// RebuildInfo describes a completed rebuild.
type RebuildInfo struct {
	RebuildID string    `json:"rebuild_id"`
	RebuiltAt time.Time `json:"rebuilt_at"`
	Providers int       `json:"providers"`
	Receivers int       `json:"receivers"`
	Listings  int       `json:"food_listings"`
	Claims    int       `json:"claims"`
}
