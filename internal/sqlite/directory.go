package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// Compile-time interface checks.
var (
	_ types.ProviderTable = (*providersTable)(nil)
	_ types.ReceiverTable = (*receiversTable)(nil)
)

// providersTable reads the providers loaded by the last rebuild.
type providersTable struct {
	backend *Backend
}

func (pt *providersTable) Get(providerID int64) (types.Provider, error) {
	if providerID <= 0 {
		return types.Provider{}, types.ErrInvalidID
	}
	b := pt.backend
	if err := b.rlock(); err != nil {
		return types.Provider{}, err
	}
	defer b.mu.RUnlock()

	p, err := scanProvider(b.db.QueryRow(selectProviders+" WHERE Provider_ID = ?", providerID))
	if err == sql.ErrNoRows {
		return types.Provider{}, fmt.Errorf("provider %d: %w", providerID, types.ErrNotFound)
	}
	if err != nil {
		return types.Provider{}, fmt.Errorf("getting provider %d: %w", providerID, err)
	}
	return p, nil
}

func (pt *providersTable) ReadAll() ([]types.Provider, error) {
	b := pt.backend
	if err := b.rlock(); err != nil {
		return nil, err
	}
	defer b.mu.RUnlock()

	providers, err := collect(b.db, selectProviders+" ORDER BY Provider_ID", scanProvider)
	if err != nil {
		return nil, fmt.Errorf("reading providers: %w", err)
	}
	return providers, nil
}

// receiversTable reads the receivers loaded by the last rebuild.
type receiversTable struct {
	backend *Backend
}

func (rt *receiversTable) Get(receiverID int64) (types.Receiver, error) {
	if receiverID <= 0 {
		return types.Receiver{}, types.ErrInvalidID
	}
	b := rt.backend
	if err := b.rlock(); err != nil {
		return types.Receiver{}, err
	}
	defer b.mu.RUnlock()

	r, err := scanReceiver(b.db.QueryRow(selectReceivers+" WHERE Receiver_ID = ?", receiverID))
	if err == sql.ErrNoRows {
		return types.Receiver{}, fmt.Errorf("receiver %d: %w", receiverID, types.ErrNotFound)
	}
	if err != nil {
		return types.Receiver{}, fmt.Errorf("getting receiver %d: %w", receiverID, err)
	}
	return r, nil
}

func (rt *receiversTable) ReadAll() ([]types.Receiver, error) {
	b := rt.backend
	if err := b.rlock(); err != nil {
		return nil, err
	}
	defer b.mu.RUnlock()

	receivers, err := collect(b.db, selectReceivers+" ORDER BY Receiver_ID", scanReceiver)
	if err != nil {
		return nil, fmt.Errorf("reading receivers: %w", err)
	}
	return receivers, nil
}
