// Package sqlite implements the SQLite storage backend for pantry.
//
// The backend owns a single connection to one database file in the data
// directory. Foreign keys are declared in the schema but not enforced by the
// engine; the rebuild and the mutators check references themselves.
package sqlite

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// DatabaseFile is the name of the database file inside the data directory.
const DatabaseFile = "pantry.db"

// Compile-time interface check.
var _ types.Store = (*Backend)(nil)

// Backend implements types.Store on an embedded SQLite database.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	now      func() time.Time
	logger   *slog.Logger
}

// Option configures a Backend.
type Option func(*Backend)

// WithClock sets the clock used by time-dependent reports. Defaults to
// time.Now.
func WithClock(now func() time.Time) Option {
	return func(b *Backend) {
		b.now = now
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *Backend) {
		b.logger = logger
	}
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Attach opens (or creates) the database file in DataDir and ensures the
// schema exists. Existing rows are kept.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFile)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", dbPath, err)
	}
	// One connection for the process lifetime, so per-connection pragmas hold.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = OFF"); err != nil {
		db.Close()
		return fmt.Errorf("configuring foreign keys: %w", err)
	}
	if err := ensureSchema(db); err != nil {
		db.Close()
		return fmt.Errorf("ensuring schema: %w", err)
	}

	b.db = db
	b.config = config
	b.attached = true

	b.logger.Debug("store attached", "path", dbPath)
	return nil
}

// Detach closes the database connection. After Detach, all operations
// return ErrStoreDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}
	b.attached = false

	b.logger.Debug("store detached")
	return nil
}

// Listings returns the food listing table.
func (b *Backend) Listings() types.ListingTable {
	return &listingsTable{backend: b}
}

// Claims returns the claims table.
func (b *Backend) Claims() types.ClaimTable {
	return &claimsTable{backend: b}
}

// Providers returns the read-only providers table.
func (b *Backend) Providers() types.ProviderTable {
	return &providersTable{backend: b}
}

// Receivers returns the read-only receivers table.
func (b *Backend) Receivers() types.ReceiverTable {
	return &receiversTable{backend: b}
}

// Reports returns the query catalog runner.
func (b *Backend) Reports() types.Reports {
	return &reports{backend: b}
}

// rlock takes the read lock and checks the backend is attached. The caller
// must call b.mu.RUnlock when err is nil.
func (b *Backend) rlock() error {
	b.mu.RLock()
	if !b.attached {
		b.mu.RUnlock()
		return types.ErrStoreDetached
	}
	return nil
}

// lock takes the write lock and checks the backend is attached. The caller
// must call b.mu.Unlock when err is nil.
func (b *Backend) lock() error {
	b.mu.Lock()
	if !b.attached {
		b.mu.Unlock()
		return types.ErrStoreDetached
	}
	return nil
}
