package types

import "errors"

// Config holds backend selection and parameters for Store.Attach.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// ExpiryWindowDays is how far ahead of now the wastage-risk report looks.
	// Zero means DefaultExpiryWindowDays.
	ExpiryWindowDays int `json:"expiry_window_days" yaml:"expiry_window_days"`

	// ContactCity is the city bound into the provider contact report.
	// Empty means DefaultContactCity.
	ContactCity string `json:"contact_city" yaml:"contact_city"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// Report defaults.
const (
	DefaultExpiryWindowDays = 2
	DefaultContactCity      = "Chennai"
)

// Config validation errors.
var (
	ErrBackendEmpty        = errors.New("backend must not be empty")
	ErrBackendUnknown      = errors.New("unknown backend")
	ErrExpiryWindowInvalid = errors.New("expiry window must not be negative")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.ExpiryWindowDays < 0 {
		return ErrExpiryWindowInvalid
	}
	return nil
}

// GetExpiryWindowDays returns the configured window or the default.
func (c Config) GetExpiryWindowDays() int {
	if c.ExpiryWindowDays == 0 {
		return DefaultExpiryWindowDays
	}
	return c.ExpiryWindowDays
}

// GetContactCity returns the configured contact city or the default.
func (c Config) GetContactCity() string {
	if c.ContactCity == "" {
		return DefaultContactCity
	}
	return c.ContactCity
}
