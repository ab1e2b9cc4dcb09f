package types

// ListingTable provides the mutations and reads on food listings.
type ListingTable interface {
	// Create inserts a listing. Returns ErrDuplicateKey if Food_ID exists
	// and ErrReferenceNotFound if Provider_ID does not.
	Create(listing FoodListing) error

	// Get returns the listing with the given ID, or ErrNotFound.
	Get(foodID int64) (FoodListing, error)

	// ReadAll returns every listing ordered by Food_ID.
	ReadAll() ([]FoodListing, error)

	// Update sets Food_Name, Quantity and Expiry_Date. Returns ErrNotFound if
	// no listing has the ID.
	Update(foodID int64, update ListingUpdate) error

	// Delete removes the listing. Dependent claims are left in place.
	// Returns ErrNotFound if no listing has the ID.
	Delete(foodID int64) error
}

// ClaimTable provides the mutations and reads on claims.
type ClaimTable interface {
	// Create inserts a claim. Returns ErrDuplicateKey if Claim_ID exists and
	// ErrReferenceNotFound if Food_ID or Receiver_ID does not.
	Create(claim Claim) error

	// Get returns the claim with the given ID, or ErrNotFound.
	Get(claimID int64) (Claim, error)

	// ReadAll returns every claim ordered by Claim_ID.
	ReadAll() ([]Claim, error)

	// UpdateStatus changes a claim's status. Returns ErrInvalidStatus for a
	// status outside Pending/Completed/Cancelled and ErrNotFound for an
	// unknown claim.
	UpdateStatus(claimID int64, status string) error

	// Delete removes the claim, or returns ErrNotFound.
	Delete(claimID int64) error
}

// ProviderTable reads providers.
type ProviderTable interface {
	Get(providerID int64) (Provider, error)
	ReadAll() ([]Provider, error)
}

// ReceiverTable reads receivers.
type ReceiverTable interface {
	Get(receiverID int64) (Receiver, error)
	ReadAll() ([]Receiver, error)
}

// Reports runs the query catalog.
type Reports interface {
	// Catalog lists every report in id order.
	Catalog() []Report

	// Lookup resolves an id ("6") or a title ("6. Total quantity of food
	// available") to a report. Returns ErrQueryNotFound otherwise.
	Lookup(key string) (Report, error)

	// Execute runs report id restricted by filters. No filters runs the
	// report unchanged. Returns ErrQueryNotFound for an unknown id and
	// ErrQueryExecution when the engine fails.
	Execute(id int, filters Filters) (Result, error)

	// Options returns the distinct values each filter can take.
	Options() (FilterOptions, error)
}
