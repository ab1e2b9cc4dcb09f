package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	QueryRow(query string, args ...any) *sql.Row
}

const (
	selectProviders = "SELECT Provider_ID, Name, Type, Address, City, Contact FROM providers"
	selectReceivers = "SELECT Receiver_ID, Name, Type, City, Contact FROM receivers"
	selectListings  = "SELECT Food_ID, Food_Name, Quantity, Expiry_Date, Provider_ID, Provider_Type, Location, Food_Type, Meal_Type FROM food_listings"
	selectClaims    = "SELECT Claim_ID, Food_ID, Receiver_ID, Status, Timestamp FROM claims"
)

func scanProvider(row rowScanner) (types.Provider, error) {
	var p types.Provider
	var typ, addr, city, contact sql.NullString
	if err := row.Scan(&p.ProviderID, &p.Name, &typ, &addr, &city, &contact); err != nil {
		return types.Provider{}, err
	}
	p.Type, p.Address, p.City, p.Contact = typ.String, addr.String, city.String, contact.String
	return p, nil
}

func scanReceiver(row rowScanner) (types.Receiver, error) {
	var r types.Receiver
	var typ, city, contact sql.NullString
	if err := row.Scan(&r.ReceiverID, &r.Name, &typ, &city, &contact); err != nil {
		return types.Receiver{}, err
	}
	r.Type, r.City, r.Contact = typ.String, city.String, contact.String
	return r, nil
}

func scanListing(row rowScanner) (types.FoodListing, error) {
	var l types.FoodListing
	var expiry string
	var providerType, location, foodType, mealType sql.NullString
	err := row.Scan(&l.FoodID, &l.FoodName, &l.Quantity, &expiry, &l.ProviderID,
		&providerType, &location, &foodType, &mealType)
	if err != nil {
		return types.FoodListing{}, err
	}
	l.ExpiryDate, err = types.ParseDate(expiry)
	if err != nil {
		return types.FoodListing{}, fmt.Errorf("parsing Expiry_Date of listing %d: %w", l.FoodID, err)
	}
	l.ProviderType, l.Location = providerType.String, location.String
	l.FoodType, l.MealType = foodType.String, mealType.String
	return l, nil
}

func scanClaim(row rowScanner) (types.Claim, error) {
	var c types.Claim
	var ts string
	if err := row.Scan(&c.ClaimID, &c.FoodID, &c.ReceiverID, &c.Status, &ts); err != nil {
		return types.Claim{}, err
	}
	var err error
	c.Timestamp, err = types.ParseTimestamp(ts)
	if err != nil {
		return types.Claim{}, fmt.Errorf("parsing Timestamp of claim %d: %w", c.ClaimID, err)
	}
	return c, nil
}

// collect runs query and scans every row with scan. It returns an empty
// slice, not nil, when no rows match.
func collect[T any](db *sql.DB, query string, scan func(rowScanner) (T, error), args ...any) ([]T, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// exists reports whether query returns a row.
func exists(db queryer, query string, args ...any) (bool, error) {
	var one int
	err := db.QueryRow(query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
