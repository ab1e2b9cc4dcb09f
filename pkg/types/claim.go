package types

import (
	"fmt"
	"time"
)

// Claim statuses.
const (
	StatusPending   = "Pending"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

// ClaimStatuses lists the recognized statuses in display order.
var ClaimStatuses = []string{StatusPending, StatusCompleted, StatusCancelled}

var validStatuses = setOf(ClaimStatuses)

// ValidateStatus returns ErrInvalidStatus unless status is one of
// Pending, Completed or Cancelled. Matching is case-sensitive.
func ValidateStatus(status string) error {
	if !validStatuses[status] {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return nil
}

// Claim is a receiver's request against a food listing.
type Claim struct {
	ClaimID    int64     `json:"Claim_ID"`
	FoodID     int64     `json:"Food_ID"`
	ReceiverID int64     `json:"Receiver_ID"`
	Status     string    `json:"Status"`
	Timestamp  time.Time `json:"Timestamp"`
}

// Validate checks the field constraints of a claim. It does not check that
// FoodID and ReceiverID reference existing rows.
func (c Claim) Validate() error {
	if c.ClaimID <= 0 {
		return fmt.Errorf("%w: Claim_ID must be positive", ErrInvalidRecord)
	}
	if c.FoodID <= 0 {
		return fmt.Errorf("%w: Food_ID must be positive", ErrInvalidRecord)
	}
	if c.ReceiverID <= 0 {
		return fmt.Errorf("%w: Receiver_ID must be positive", ErrInvalidRecord)
	}
	if err := ValidateStatus(c.Status); err != nil {
		return err
	}
	if c.Timestamp.IsZero() {
		return fmt.Errorf("%w: Timestamp is required", ErrInvalidRecord)
	}
	return nil
}
