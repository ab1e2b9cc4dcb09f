// Package sqlite provides the public factory for the SQLite pantry backend.
// Implementation details stay in internal/sqlite.
package sqlite

import (
	"log/slog"
	"time"

	"github.com/mesh-intelligence/pantry/internal/sqlite"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

// Option configures a backend created by NewBackend.
type Option = sqlite.Option

// WithClock sets the clock used by time-dependent reports.
func WithClock(now func() time.Time) Option {
	return sqlite.WithClock(now)
}

// WithLogger sets the backend logger.
func WithLogger(logger *slog.Logger) Option {
	return sqlite.WithLogger(logger)
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
//
// Example:
//
//	store := sqlite.NewBackend()
//	err := store.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".pantry-db",
//	})
//	defer store.Detach()
func NewBackend(opts ...Option) types.Store {
	return sqlite.NewBackend(opts...)
}
