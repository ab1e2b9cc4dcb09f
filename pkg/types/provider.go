package types

import "fmt"

// Provider is an organization donating surplus food. Providers are loaded
// by a rebuild and are read-only afterwards.
type Provider struct {
	ProviderID int64  `json:"Provider_ID"`
	Name       string `json:"Name"`
	Type       string `json:"Type"`
	Address    string `json:"Address"`
	City       string `json:"City"`
	Contact    string `json:"Contact"`
}

// Validate checks the required fields of a provider.
func (p Provider) Validate() error {
	if p.ProviderID <= 0 {
		return fmt.Errorf("%w: Provider_ID must be positive", ErrInvalidRecord)
	}
	if p.Name == "" {
		return fmt.Errorf("%w: Name is required", ErrInvalidRecord)
	}
	return nil
}
