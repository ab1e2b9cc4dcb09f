package types

// Store is the backend-agnostic entry point to the donation data. Callers
// attach to a backend, use its tables and reports, and detach when done.
type Store interface {
	// Attach opens the backend described by config, creating the data
	// directory and an empty schema if needed. Returns ErrAlreadyAttached if
	// called while attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent.
	Detach() error

	// Rebuild discards all stored rows and loads sources in their place.
	// The replacement is atomic: on ErrSchema the previous contents remain.
	Rebuild(sources Sources) (RebuildInfo, error)

	// LastRebuild describes the most recent rebuild, or returns ErrNotFound
	// if the store has never been rebuilt.
	LastRebuild() (RebuildInfo, error)

	// Snapshot returns every stored row as a Sources value suitable for
	// a later Rebuild.
	Snapshot() (Sources, error)

	Listings() ListingTable
	Claims() ClaimTable
	Providers() ProviderTable
	Receivers() ReceiverTable
	Reports() Reports
}
