package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateStatus(t *testing.T) {
	for _, s := range ClaimStatuses {
		assert.NoError(t, ValidateStatus(s), s)
	}
	for _, s := range []string{"", "pending", "Done", "COMPLETED"} {
		assert.ErrorIs(t, ValidateStatus(s), ErrInvalidStatus, s)
	}
}

func TestClaimValidate(t *testing.T) {
	ts := time.Date(2025, time.January, 9, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		claim   Claim
		wantErr error
	}{
		{
			name:  "valid claim",
			claim: Claim{ClaimID: 1, FoodID: 2, ReceiverID: 3, Status: StatusPending, Timestamp: ts},
		},
		{
			name:    "bad status",
			claim:   Claim{ClaimID: 1, FoodID: 2, ReceiverID: 3, Status: "Lost", Timestamp: ts},
			wantErr: ErrInvalidStatus,
		},
		{
			name:    "missing food",
			claim:   Claim{ClaimID: 1, ReceiverID: 3, Status: StatusPending, Timestamp: ts},
			wantErr: ErrInvalidRecord,
		},
		{
			name:    "missing timestamp",
			claim:   Claim{ClaimID: 1, FoodID: 2, ReceiverID: 3, Status: StatusPending},
			wantErr: ErrInvalidRecord,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.claim.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
