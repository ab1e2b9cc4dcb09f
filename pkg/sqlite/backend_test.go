package sqlite_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/pantry/pkg/sqlite"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

func TestNewBackend_AttachDetach(t *testing.T) {
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	store := sqlite.NewBackend(sqlite.WithClock(func() time.Time { return now }))

	require.NoError(t, store.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	assert.ErrorIs(t, store.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}), types.ErrAlreadyAttached)

	listings, err := store.Listings().ReadAll()
	require.NoError(t, err)
	assert.Empty(t, listings)

	require.NoError(t, store.Detach())
	require.NoError(t, store.Detach())

	_, err = store.Listings().ReadAll()
	assert.ErrorIs(t, err, types.ErrStoreDetached)
}
