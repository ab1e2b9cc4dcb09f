package sqlite

import (
	"database/sql"
	"fmt"
)

// Table names. Column names follow the source files exactly.
const (
	tableProviders = "providers"
	tableReceivers = "receivers"
	tableListings  = "food_listings"
	tableClaims    = "claims"
	tableMeta      = "store_meta"
)

// Schema DDL. Dates and timestamps are ISO-8601 TEXT.
const (
	createProviders = `CREATE TABLE IF NOT EXISTS providers (
    Provider_ID INTEGER PRIMARY KEY,
    Name TEXT NOT NULL,
    Type TEXT,
    Address TEXT,
    City TEXT,
    Contact TEXT
);`

	createReceivers = `CREATE TABLE IF NOT EXISTS receivers (
    Receiver_ID INTEGER PRIMARY KEY,
    Name TEXT NOT NULL,
    Type TEXT,
    City TEXT,
    Contact TEXT
);`

	createListings = `CREATE TABLE IF NOT EXISTS food_listings (
    Food_ID INTEGER PRIMARY KEY,
    Food_Name TEXT NOT NULL,
    Quantity INTEGER NOT NULL CHECK (Quantity >= 0),
    Expiry_Date TEXT NOT NULL,
    Provider_ID INTEGER NOT NULL,
    Provider_Type TEXT,
    Location TEXT,
    Food_Type TEXT,
    Meal_Type TEXT,
    FOREIGN KEY (Provider_ID) REFERENCES providers (Provider_ID)
);`

	createClaims = `CREATE TABLE IF NOT EXISTS claims (
    Claim_ID INTEGER PRIMARY KEY,
    Food_ID INTEGER NOT NULL,
    Receiver_ID INTEGER NOT NULL,
    Status TEXT NOT NULL CHECK (Status IN ('Pending', 'Completed', 'Cancelled')),
    Timestamp TEXT NOT NULL,
    FOREIGN KEY (Food_ID) REFERENCES food_listings (Food_ID),
    FOREIGN KEY (Receiver_ID) REFERENCES receivers (Receiver_ID)
);`

	createMeta = `CREATE TABLE IF NOT EXISTS store_meta (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);`
)

// Index DDL for the report joins.
const (
	idxListingsProvider = `CREATE INDEX IF NOT EXISTS idx_food_listings_provider ON food_listings(Provider_ID);`
	idxListingsExpiry   = `CREATE INDEX IF NOT EXISTS idx_food_listings_expiry ON food_listings(Expiry_Date);`
	idxClaimsFood       = `CREATE INDEX IF NOT EXISTS idx_claims_food ON claims(Food_ID);`
	idxClaimsReceiver   = `CREATE INDEX IF NOT EXISTS idx_claims_receiver ON claims(Receiver_ID);`
	idxClaimsStatus     = `CREATE INDEX IF NOT EXISTS idx_claims_status ON claims(Status);`
)

// schemaDDL lists the entity tables in dependency order.
var schemaDDL = []string{
	createProviders,
	createReceivers,
	createListings,
	createClaims,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxListingsProvider,
	idxListingsExpiry,
	idxClaimsFood,
	idxClaimsReceiver,
	idxClaimsStatus,
}

// dropDDL drops the entity tables, dependents first.
var dropDDL = []string{
	"DROP TABLE IF EXISTS claims",
	"DROP TABLE IF EXISTS food_listings",
	"DROP TABLE IF EXISTS receivers",
	"DROP TABLE IF EXISTS providers",
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// ensureSchema creates any missing table or index.
func ensureSchema(db execer) error {
	if err := createSchema(db); err != nil {
		return err
	}
	if _, err := db.Exec(createMeta); err != nil {
		return fmt.Errorf("creating %s: %w", tableMeta, err)
	}
	return nil
}

// createSchema runs the entity table and index DDL.
func createSchema(db execer) error {
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("creating table: %w", err)
		}
	}
	for _, ddl := range indexDDL {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("creating index: %w", err)
		}
	}
	return nil
}
