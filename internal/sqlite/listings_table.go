package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// Compile-time interface check.
var _ types.ListingTable = (*listingsTable)(nil)

// listingsTable implements the Record Mutator for food listings. Every write
// is a single auto-committed statement, so it is durable when the call
// returns.
type listingsTable struct {
	backend *Backend
}

// Create inserts a listing after checking its fields, that Food_ID is free
// and that Provider_ID names a loaded provider.
func (lt *listingsTable) Create(listing types.FoodListing) error {
	if err := listing.Validate(); err != nil {
		return err
	}
	b := lt.backend
	if err := b.lock(); err != nil {
		return err
	}
	defer b.mu.Unlock()

	dup, err := exists(b.db, "SELECT 1 FROM food_listings WHERE Food_ID = ?", listing.FoodID)
	if err != nil {
		return fmt.Errorf("checking listing existence: %w", err)
	}
	if dup {
		return fmt.Errorf("food listing %d: %w", listing.FoodID, types.ErrDuplicateKey)
	}

	ok, err := exists(b.db, "SELECT 1 FROM providers WHERE Provider_ID = ?", listing.ProviderID)
	if err != nil {
		return fmt.Errorf("checking provider existence: %w", err)
	}
	if !ok {
		return fmt.Errorf("provider %d: %w", listing.ProviderID, types.ErrReferenceNotFound)
	}

	_, err = b.db.Exec(
		"INSERT INTO food_listings (Food_ID, Food_Name, Quantity, Expiry_Date, Provider_ID, Provider_Type, Location, Food_Type, Meal_Type) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		listingArgs(listing)...,
	)
	if err != nil {
		return fmt.Errorf("inserting food listing %d: %w", listing.FoodID, err)
	}

	b.logger.Debug("food listing created", "food_id", listing.FoodID)
	return nil
}

// Get returns one listing.
func (lt *listingsTable) Get(foodID int64) (types.FoodListing, error) {
	if foodID <= 0 {
		return types.FoodListing{}, types.ErrInvalidID
	}
	b := lt.backend
	if err := b.rlock(); err != nil {
		return types.FoodListing{}, err
	}
	defer b.mu.RUnlock()

	l, err := scanListing(b.db.QueryRow(selectListings+" WHERE Food_ID = ?", foodID))
	if err == sql.ErrNoRows {
		return types.FoodListing{}, fmt.Errorf("food listing %d: %w", foodID, types.ErrNotFound)
	}
	if err != nil {
		return types.FoodListing{}, fmt.Errorf("getting food listing %d: %w", foodID, err)
	}
	return l, nil
}

// ReadAll returns every listing ordered by Food_ID.
func (lt *listingsTable) ReadAll() ([]types.FoodListing, error) {
	b := lt.backend
	if err := b.rlock(); err != nil {
		return nil, err
	}
	defer b.mu.RUnlock()

	listings, err := collect(b.db, selectListings+" ORDER BY Food_ID", scanListing)
	if err != nil {
		return nil, fmt.Errorf("reading food listings: %w", err)
	}
	return listings, nil
}

// Update rewrites Food_Name, Quantity and Expiry_Date.
func (lt *listingsTable) Update(foodID int64, update types.ListingUpdate) error {
	if foodID <= 0 {
		return types.ErrInvalidID
	}
	if err := update.Validate(); err != nil {
		return err
	}
	b := lt.backend
	if err := b.lock(); err != nil {
		return err
	}
	defer b.mu.Unlock()

	res, err := b.db.Exec(
		"UPDATE food_listings SET Food_Name = ?, Quantity = ?, Expiry_Date = ? WHERE Food_ID = ?",
		update.FoodName, update.Quantity, update.ExpiryDate.String(), foodID,
	)
	if err != nil {
		return fmt.Errorf("updating food listing %d: %w", foodID, err)
	}
	if err := requireAffected(res, "food listing", foodID); err != nil {
		return err
	}

	b.logger.Debug("food listing updated", "food_id", foodID)
	return nil
}

// Delete removes the listing. Claims referencing it are kept.
func (lt *listingsTable) Delete(foodID int64) error {
	if foodID <= 0 {
		return types.ErrInvalidID
	}
	b := lt.backend
	if err := b.lock(); err != nil {
		return err
	}
	defer b.mu.Unlock()

	res, err := b.db.Exec("DELETE FROM food_listings WHERE Food_ID = ?", foodID)
	if err != nil {
		return fmt.Errorf("deleting food listing %d: %w", foodID, err)
	}
	if err := requireAffected(res, "food listing", foodID); err != nil {
		return err
	}

	b.logger.Debug("food listing deleted", "food_id", foodID)
	return nil
}

// requireAffected returns ErrNotFound when res touched no rows.
func requireAffected(res sql.Result, entity string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("counting affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", entity, id, types.ErrNotFound)
	}
	return nil
}
