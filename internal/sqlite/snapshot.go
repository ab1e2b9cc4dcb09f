package sqlite

import (
	"fmt"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// Snapshot reads all four entity tables, each ordered by primary key.
// Rebuilding from the snapshot reproduces the store, provided its rows still
// satisfy the rebuild's reference checks.
func (b *Backend) Snapshot() (types.Sources, error) {
	if err := b.rlock(); err != nil {
		return types.Sources{}, err
	}
	defer b.mu.RUnlock()

	var src types.Sources
	var err error
	if src.Providers, err = collect(b.db, selectProviders+" ORDER BY Provider_ID", scanProvider); err != nil {
		return types.Sources{}, fmt.Errorf("reading providers: %w", err)
	}
	if src.Receivers, err = collect(b.db, selectReceivers+" ORDER BY Receiver_ID", scanReceiver); err != nil {
		return types.Sources{}, fmt.Errorf("reading receivers: %w", err)
	}
	if src.Listings, err = collect(b.db, selectListings+" ORDER BY Food_ID", scanListing); err != nil {
		return types.Sources{}, fmt.Errorf("reading food listings: %w", err)
	}
	if src.Claims, err = collect(b.db, selectClaims+" ORDER BY Claim_ID", scanClaim); err != nil {
		return types.Sources{}, fmt.Errorf("reading claims: %w", err)
	}
	return src, nil
}
