package sqlite

import (
	"fmt"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// validateSources checks every record of a rebuild before anything is
// written: field constraints, unique primary keys, and that each declared
// foreign key resolves within the sources. The first violation is returned
// wrapped in ErrSchema. Row numbers are 1-based.
func validateSources(src types.Sources) error {
	providers := make(map[int64]bool, len(src.Providers))
	for i, p := range src.Providers {
		if err := p.Validate(); err != nil {
			return schemaErr(tableProviders, i, err)
		}
		if providers[p.ProviderID] {
			return schemaErr(tableProviders, i, fmt.Errorf("%w: Provider_ID %d", types.ErrDuplicateKey, p.ProviderID))
		}
		providers[p.ProviderID] = true
	}

	receivers := make(map[int64]bool, len(src.Receivers))
	for i, r := range src.Receivers {
		if err := r.Validate(); err != nil {
			return schemaErr(tableReceivers, i, err)
		}
		if receivers[r.ReceiverID] {
			return schemaErr(tableReceivers, i, fmt.Errorf("%w: Receiver_ID %d", types.ErrDuplicateKey, r.ReceiverID))
		}
		receivers[r.ReceiverID] = true
	}

	listings := make(map[int64]bool, len(src.Listings))
	for i, l := range src.Listings {
		if err := l.Validate(); err != nil {
			return schemaErr(tableListings, i, err)
		}
		if listings[l.FoodID] {
			return schemaErr(tableListings, i, fmt.Errorf("%w: Food_ID %d", types.ErrDuplicateKey, l.FoodID))
		}
		if !providers[l.ProviderID] {
			return schemaErr(tableListings, i, fmt.Errorf("%w: Provider_ID %d", types.ErrReferenceNotFound, l.ProviderID))
		}
		listings[l.FoodID] = true
	}

	claims := make(map[int64]bool, len(src.Claims))
	for i, c := range src.Claims {
		if err := c.Validate(); err != nil {
			return schemaErr(tableClaims, i, err)
		}
		if claims[c.ClaimID] {
			return schemaErr(tableClaims, i, fmt.Errorf("%w: Claim_ID %d", types.ErrDuplicateKey, c.ClaimID))
		}
		if !listings[c.FoodID] {
			return schemaErr(tableClaims, i, fmt.Errorf("%w: Food_ID %d", types.ErrReferenceNotFound, c.FoodID))
		}
		if !receivers[c.ReceiverID] {
			return schemaErr(tableClaims, i, fmt.Errorf("%w: Receiver_ID %d", types.ErrReferenceNotFound, c.ReceiverID))
		}
		claims[c.ClaimID] = true
	}

	return nil
}

func schemaErr(table string, index int, err error) error {
	return fmt.Errorf("%w: %s row %d: %w", types.ErrSchema, table, index+1, err)
}
