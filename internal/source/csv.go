package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// ReadCSVDir reads providers_data.csv, receivers_data.csv,
// food_listings_data.csv and claims_data.csv from dir.
func ReadCSVDir(dir string) (types.Sources, error) {
	var src types.Sources
	var err error
	if src.Providers, err = readCSVFile(dir, ProvidersCSV, providerFromCSV); err != nil {
		return types.Sources{}, err
	}
	if src.Receivers, err = readCSVFile(dir, ReceiversCSV, receiverFromCSV); err != nil {
		return types.Sources{}, err
	}
	if src.Listings, err = readCSVFile(dir, ListingsCSV, listingFromCSV); err != nil {
		return types.Sources{}, err
	}
	if src.Claims, err = readCSVFile(dir, ClaimsCSV, claimFromCSV); err != nil {
		return types.Sources{}, err
	}
	return src, nil
}

func readCSVFile[T any](dir, name string, parse func(csvRecord) (T, error)) ([]T, error) {
	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	defer f.Close()

	out, err := readCSV(f, name, parse)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// readCSV decodes a CSV stream whose first row is a header. Columns are
// addressed by header name, so column order and extra columns do not matter.
// name labels errors.
func readCSV[T any](r io.Reader, name string, parse func(csvRecord) (T, error)) ([]T, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []T{}, nil
	}
	if err != nil {
		return nil, recordErr(name, 1, err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		// Spreadsheet exports often lead with a byte order mark.
		index[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}

	out := []T{}
	for line := 2; ; line++ {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, recordErr(name, line, err)
		}
		v, err := parse(csvRecord{index: index, fields: fields})
		if err != nil {
			return nil, recordErr(name, line, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// csvRecord is one data row addressed by header name.
type csvRecord struct {
	index  map[string]int
	fields []string
}

func (r csvRecord) str(col string) (string, error) {
	i, ok := r.index[col]
	if !ok {
		return "", fmt.Errorf("missing column %s", col)
	}
	if i >= len(r.fields) {
		return "", nil
	}
	return strings.TrimSpace(r.fields[i]), nil
}

func (r csvRecord) id(col string) (int64, error) {
	s, err := r.str(col)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", col, err)
	}
	return n, nil
}

func (r csvRecord) number(col string) (int, error) {
	s, err := r.str(col)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", col, err)
	}
	return n, nil
}

// stringsOf reads each named column into the matching destination.
func (r csvRecord) stringsOf(cols []string, dst ...*string) error {
	for i, col := range cols {
		s, err := r.str(col)
		if err != nil {
			return err
		}
		*dst[i] = s
	}
	return nil
}

func providerFromCSV(r csvRecord) (types.Provider, error) {
	var p types.Provider
	var err error
	if p.ProviderID, err = r.id("Provider_ID"); err != nil {
		return types.Provider{}, err
	}
	err = r.stringsOf([]string{"Name", "Type", "Address", "City", "Contact"},
		&p.Name, &p.Type, &p.Address, &p.City, &p.Contact)
	if err != nil {
		return types.Provider{}, err
	}
	return p, nil
}

func receiverFromCSV(r csvRecord) (types.Receiver, error) {
	var rc types.Receiver
	var err error
	if rc.ReceiverID, err = r.id("Receiver_ID"); err != nil {
		return types.Receiver{}, err
	}
	err = r.stringsOf([]string{"Name", "Type", "City", "Contact"},
		&rc.Name, &rc.Type, &rc.City, &rc.Contact)
	if err != nil {
		return types.Receiver{}, err
	}
	return rc, nil
}

func listingFromCSV(r csvRecord) (types.FoodListing, error) {
	var l types.FoodListing
	var err error
	if l.FoodID, err = r.id("Food_ID"); err != nil {
		return types.FoodListing{}, err
	}
	if l.Quantity, err = r.number("Quantity"); err != nil {
		return types.FoodListing{}, err
	}
	if l.ProviderID, err = r.id("Provider_ID"); err != nil {
		return types.FoodListing{}, err
	}
	expiry, err := r.str("Expiry_Date")
	if err != nil {
		return types.FoodListing{}, err
	}
	if l.ExpiryDate, err = types.ParseDate(expiry); err != nil {
		return types.FoodListing{}, fmt.Errorf("Expiry_Date: %w", err)
	}
	err = r.stringsOf([]string{"Food_Name", "Provider_Type", "Location", "Food_Type", "Meal_Type"},
		&l.FoodName, &l.ProviderType, &l.Location, &l.FoodType, &l.MealType)
	if err != nil {
		return types.FoodListing{}, err
	}
	return l, nil
}

func claimFromCSV(r csvRecord) (types.Claim, error) {
	var c types.Claim
	var err error
	if c.ClaimID, err = r.id("Claim_ID"); err != nil {
		return types.Claim{}, err
	}
	if c.FoodID, err = r.id("Food_ID"); err != nil {
		return types.Claim{}, err
	}
	if c.ReceiverID, err = r.id("Receiver_ID"); err != nil {
		return types.Claim{}, err
	}
	if c.Status, err = r.str("Status"); err != nil {
		return types.Claim{}, err
	}
	ts, err := r.str("Timestamp")
	if err != nil {
		return types.Claim{}, err
	}
	if c.Timestamp, err = types.ParseTimestamp(ts); err != nil {
		return types.Claim{}, fmt.Errorf("Timestamp: %w", err)
	}
	return c, nil
}
