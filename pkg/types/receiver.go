package types

import "fmt"

// Receiver is an organization or individual claiming donated food.
type Receiver struct {
	ReceiverID int64  `json:"Receiver_ID"`
	Name       string `json:"Name"`
	Type       string `json:"Type"`
	City       string `json:"City"`
	Contact    string `json:"Contact"`
}

// Validate checks the required fields of a receiver.
func (r Receiver) Validate() error {
	if r.ReceiverID <= 0 {
		return fmt.Errorf("%w: Receiver_ID must be positive", ErrInvalidRecord)
	}
	if r.Name == "" {
		return fmt.Errorf("%w: Name is required", ErrInvalidRecord)
	}
	return nil
}
