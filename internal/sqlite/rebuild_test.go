package sqlite

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

func TestRebuild_LoadsAllTables(t *testing.T) {
	b := setupBackend(t)

	info, err := b.Rebuild(fixture())
	require.NoError(t, err)

	assert.Equal(t, 3, info.Providers)
	assert.Equal(t, 2, info.Receivers)
	assert.Equal(t, 4, info.Listings)
	assert.Equal(t, 4, info.Claims)
	assert.Equal(t, fixedNow, info.RebuiltAt)

	id, err := uuid.Parse(info.RebuildID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())

	last, err := b.LastRebuild()
	require.NoError(t, err)
	assert.Equal(t, info, last)

	got, err := b.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, fixture(), got)
}

func TestRebuild_Idempotent(t *testing.T) {
	b := setupBackend(t)

	_, err := b.Rebuild(fixture())
	require.NoError(t, err)
	first, err := b.Snapshot()
	require.NoError(t, err)

	_, err = b.Rebuild(fixture())
	require.NoError(t, err)
	second, err := b.Snapshot()
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRebuild_ReplacesPreviousContents(t *testing.T) {
	b := setupLoaded(t)

	src := fixture()
	src.Claims = nil
	src.Listings = src.Listings[:1]
	_, err := b.Rebuild(src)
	require.NoError(t, err)

	listings, err := b.Listings().ReadAll()
	require.NoError(t, err)
	assert.Len(t, listings, 1)

	claims, err := b.Claims().ReadAll()
	require.NoError(t, err)
	assert.Empty(t, claims)
}

func TestRebuild_SchemaErrorKeepsPreviousContents(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.Sources)
		cause  error
	}{
		{
			name:   "claim references missing listing",
			mutate: func(s *types.Sources) { s.Claims[0].FoodID = 99 },
			cause:  types.ErrReferenceNotFound,
		},
		{
			name:   "claim references missing receiver",
			mutate: func(s *types.Sources) { s.Claims[1].ReceiverID = 99 },
			cause:  types.ErrReferenceNotFound,
		},
		{
			name:   "listing references missing provider",
			mutate: func(s *types.Sources) { s.Listings[2].ProviderID = 42 },
			cause:  types.ErrReferenceNotFound,
		},
		{
			name:   "duplicate provider id",
			mutate: func(s *types.Sources) { s.Providers[1].ProviderID = 1 },
			cause:  types.ErrDuplicateKey,
		},
		{
			name:   "duplicate claim id",
			mutate: func(s *types.Sources) { s.Claims[3].ClaimID = 2 },
			cause:  types.ErrDuplicateKey,
		},
		{
			name:   "negative quantity",
			mutate: func(s *types.Sources) { s.Listings[0].Quantity = -1 },
			cause:  types.ErrInvalidRecord,
		},
		{
			name:   "unknown status",
			mutate: func(s *types.Sources) { s.Claims[0].Status = "Done" },
			cause:  types.ErrInvalidStatus,
		},
		{
			name:   "unknown meal type",
			mutate: func(s *types.Sources) { s.Listings[1].MealType = "Brunch" },
			cause:  types.ErrInvalidRecord,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := setupLoaded(t)
			before, err := b.Snapshot()
			require.NoError(t, err)
			info, err := b.LastRebuild()
			require.NoError(t, err)

			src := fixture()
			src.Providers = append(src.Providers, types.Provider{ProviderID: 9, Name: "Z"})
			tt.mutate(&src)

			_, err = b.Rebuild(src)
			require.Error(t, err)
			assert.ErrorIs(t, err, types.ErrSchema)
			assert.ErrorIs(t, err, tt.cause)

			after, err := b.Snapshot()
			require.NoError(t, err)
			assert.Equal(t, before, after)

			last, err := b.LastRebuild()
			require.NoError(t, err)
			assert.Equal(t, info.RebuildID, last.RebuildID)
		})
	}
}

func TestRebuild_ReferentialSanity(t *testing.T) {
	b := setupLoaded(t)

	checks := []string{
		"SELECT COUNT(*) FROM claims c LEFT JOIN food_listings f ON f.Food_ID = c.Food_ID WHERE f.Food_ID IS NULL",
		"SELECT COUNT(*) FROM claims c LEFT JOIN receivers r ON r.Receiver_ID = c.Receiver_ID WHERE r.Receiver_ID IS NULL",
		"SELECT COUNT(*) FROM food_listings f LEFT JOIN providers p ON p.Provider_ID = f.Provider_ID WHERE p.Provider_ID IS NULL",
	}
	for _, q := range checks {
		var orphans int
		require.NoError(t, b.db.QueryRow(q).Scan(&orphans))
		assert.Zero(t, orphans, q)
	}
}

func TestRebuild_EmptySources(t *testing.T) {
	b := setupLoaded(t)

	info, err := b.Rebuild(types.Sources{})
	require.NoError(t, err)
	assert.Zero(t, info.Providers+info.Receivers+info.Listings+info.Claims)

	result, err := b.Reports().Execute(1, nil)
	require.NoError(t, err)
	assert.True(t, result.Empty())
}
