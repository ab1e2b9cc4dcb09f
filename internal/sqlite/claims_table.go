package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// Compile-time interface check.
var _ types.ClaimTable = (*claimsTable)(nil)

// claimsTable implements the Record Mutator for claims.
type claimsTable struct {
	backend *Backend
}

// Create inserts a claim after checking its fields, that Claim_ID is free
// and that Food_ID and Receiver_ID name existing rows.
func (ct *claimsTable) Create(claim types.Claim) error {
	if err := claim.Validate(); err != nil {
		return err
	}
	b := ct.backend
	if err := b.lock(); err != nil {
		return err
	}
	defer b.mu.Unlock()

	dup, err := exists(b.db, "SELECT 1 FROM claims WHERE Claim_ID = ?", claim.ClaimID)
	if err != nil {
		return fmt.Errorf("checking claim existence: %w", err)
	}
	if dup {
		return fmt.Errorf("claim %d: %w", claim.ClaimID, types.ErrDuplicateKey)
	}

	refs := []struct {
		query string
		id    int64
		name  string
	}{
		{"SELECT 1 FROM food_listings WHERE Food_ID = ?", claim.FoodID, "food listing"},
		{"SELECT 1 FROM receivers WHERE Receiver_ID = ?", claim.ReceiverID, "receiver"},
	}
	for _, ref := range refs {
		ok, err := exists(b.db, ref.query, ref.id)
		if err != nil {
			return fmt.Errorf("checking %s existence: %w", ref.name, err)
		}
		if !ok {
			return fmt.Errorf("%s %d: %w", ref.name, ref.id, types.ErrReferenceNotFound)
		}
	}

	_, err = b.db.Exec(
		"INSERT INTO claims (Claim_ID, Food_ID, Receiver_ID, Status, Timestamp) VALUES (?, ?, ?, ?, ?)",
		claimArgs(claim)...,
	)
	if err != nil {
		return fmt.Errorf("inserting claim %d: %w", claim.ClaimID, err)
	}

	b.logger.Debug("claim created", "claim_id", claim.ClaimID, "status", claim.Status)
	return nil
}

// Get returns one claim.
func (ct *claimsTable) Get(claimID int64) (types.Claim, error) {
	if claimID <= 0 {
		return types.Claim{}, types.ErrInvalidID
	}
	b := ct.backend
	if err := b.rlock(); err != nil {
		return types.Claim{}, err
	}
	defer b.mu.RUnlock()

	c, err := scanClaim(b.db.QueryRow(selectClaims+" WHERE Claim_ID = ?", claimID))
	if err == sql.ErrNoRows {
		return types.Claim{}, fmt.Errorf("claim %d: %w", claimID, types.ErrNotFound)
	}
	if err != nil {
		return types.Claim{}, fmt.Errorf("getting claim %d: %w", claimID, err)
	}
	return c, nil
}

// ReadAll returns every claim ordered by Claim_ID.
func (ct *claimsTable) ReadAll() ([]types.Claim, error) {
	b := ct.backend
	if err := b.rlock(); err != nil {
		return nil, err
	}
	defer b.mu.RUnlock()

	claims, err := collect(b.db, selectClaims+" ORDER BY Claim_ID", scanClaim)
	if err != nil {
		return nil, fmt.Errorf("reading claims: %w", err)
	}
	return claims, nil
}

// UpdateStatus sets the claim's status. The status is checked before the
// store is touched.
func (ct *claimsTable) UpdateStatus(claimID int64, status string) error {
	if claimID <= 0 {
		return types.ErrInvalidID
	}
	if err := types.ValidateStatus(status); err != nil {
		return err
	}
	b := ct.backend
	if err := b.lock(); err != nil {
		return err
	}
	defer b.mu.Unlock()

	res, err := b.db.Exec("UPDATE claims SET Status = ? WHERE Claim_ID = ?", status, claimID)
	if err != nil {
		return fmt.Errorf("updating claim %d: %w", claimID, err)
	}
	if err := requireAffected(res, "claim", claimID); err != nil {
		return err
	}

	b.logger.Debug("claim status updated", "claim_id", claimID, "status", status)
	return nil
}

// Delete removes the claim.
func (ct *claimsTable) Delete(claimID int64) error {
	if claimID <= 0 {
		return types.ErrInvalidID
	}
	b := ct.backend
	if err := b.lock(); err != nil {
		return err
	}
	defer b.mu.Unlock()

	res, err := b.db.Exec("DELETE FROM claims WHERE Claim_ID = ?", claimID)
	if err != nil {
		return fmt.Errorf("deleting claim %d: %w", claimID, err)
	}
	if err := requireAffected(res, "claim", claimID); err != nil {
		return err
	}

	b.logger.Debug("claim deleted", "claim_id", claimID)
	return nil
}
