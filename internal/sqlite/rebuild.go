package sqlite

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// Column lists per table, in insert order.
var (
	providerColumns = []string{"Provider_ID", "Name", "Type", "Address", "City", "Contact"}
	receiverColumns = []string{"Receiver_ID", "Name", "Type", "City", "Contact"}
	listingColumns  = []string{"Food_ID", "Food_Name", "Quantity", "Expiry_Date", "Provider_ID", "Provider_Type", "Location", "Food_Type", "Meal_Type"}
	claimColumns    = []string{"Claim_ID", "Food_ID", "Receiver_ID", "Status", "Timestamp"}
)

// Keys written to store_meta by a rebuild.
const (
	metaRebuildID = "rebuild_id"
	metaRebuiltAt = "rebuilt_at"
	metaProviders = "providers"
	metaReceivers = "receivers"
	metaListings  = "food_listings"
	metaClaims    = "claims"
)

// Rebuild validates src, then drops and recreates the four entity tables and
// loads src into them in dependency order, all in one transaction. On any
// error the transaction is rolled back and the previous contents remain.
func (b *Backend) Rebuild(src types.Sources) (types.RebuildInfo, error) {
	if err := b.lock(); err != nil {
		return types.RebuildInfo{}, err
	}
	defer b.mu.Unlock()

	if err := validateSources(src); err != nil {
		return types.RebuildInfo{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return types.RebuildInfo{}, fmt.Errorf("generating rebuild ID: %w", err)
	}
	info := types.RebuildInfo{
		RebuildID: id.String(),
		RebuiltAt: b.now().UTC().Truncate(time.Second),
		Providers: len(src.Providers),
		Receivers: len(src.Receivers),
		Listings:  len(src.Listings),
		Claims:    len(src.Claims),
	}

	tx, err := b.db.Begin()
	if err != nil {
		return types.RebuildInfo{}, fmt.Errorf("beginning rebuild transaction: %w", err)
	}
	defer tx.Rollback()

	for _, ddl := range dropDDL {
		if _, err := tx.Exec(ddl); err != nil {
			return types.RebuildInfo{}, fmt.Errorf("dropping tables: %w", err)
		}
	}
	if err := createSchema(tx); err != nil {
		return types.RebuildInfo{}, err
	}

	rows := make([][]any, len(src.Providers))
	for i, p := range src.Providers {
		rows[i] = providerArgs(p)
	}
	if err := insertRows(tx, tableProviders, providerColumns, rows); err != nil {
		return types.RebuildInfo{}, err
	}

	rows = make([][]any, len(src.Receivers))
	for i, r := range src.Receivers {
		rows[i] = receiverArgs(r)
	}
	if err := insertRows(tx, tableReceivers, receiverColumns, rows); err != nil {
		return types.RebuildInfo{}, err
	}

	rows = make([][]any, len(src.Listings))
	for i, l := range src.Listings {
		rows[i] = listingArgs(l)
	}
	if err := insertRows(tx, tableListings, listingColumns, rows); err != nil {
		return types.RebuildInfo{}, err
	}

	rows = make([][]any, len(src.Claims))
	for i, c := range src.Claims {
		rows[i] = claimArgs(c)
	}
	if err := insertRows(tx, tableClaims, claimColumns, rows); err != nil {
		return types.RebuildInfo{}, err
	}

	if err := writeRebuildMeta(tx, info); err != nil {
		return types.RebuildInfo{}, err
	}

	if err := tx.Commit(); err != nil {
		return types.RebuildInfo{}, fmt.Errorf("committing rebuild: %w", err)
	}

	b.logger.Info("store rebuilt",
		"rebuild_id", info.RebuildID,
		"providers", info.Providers,
		"receivers", info.Receivers,
		"food_listings", info.Listings,
		"claims", info.Claims,
	)
	return info, nil
}

// LastRebuild reads the most recent rebuild's metadata.
func (b *Backend) LastRebuild() (types.RebuildInfo, error) {
	if err := b.rlock(); err != nil {
		return types.RebuildInfo{}, err
	}
	defer b.mu.RUnlock()

	rows, err := b.db.Query("SELECT key, value FROM store_meta")
	if err != nil {
		return types.RebuildInfo{}, fmt.Errorf("reading store_meta: %w", err)
	}
	defer rows.Close()

	meta := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return types.RebuildInfo{}, fmt.Errorf("scanning store_meta: %w", err)
		}
		meta[k] = v
	}
	if err := rows.Err(); err != nil {
		return types.RebuildInfo{}, fmt.Errorf("iterating store_meta: %w", err)
	}

	if meta[metaRebuildID] == "" {
		return types.RebuildInfo{}, types.ErrNotFound
	}

	info := types.RebuildInfo{RebuildID: meta[metaRebuildID]}
	if info.RebuiltAt, err = types.ParseTimestamp(meta[metaRebuiltAt]); err != nil {
		return types.RebuildInfo{}, fmt.Errorf("parsing %s: %w", metaRebuiltAt, err)
	}
	counts := []struct {
		key string
		dst *int
	}{
		{metaProviders, &info.Providers},
		{metaReceivers, &info.Receivers},
		{metaListings, &info.Listings},
		{metaClaims, &info.Claims},
	}
	for _, c := range counts {
		n, err := strconv.Atoi(meta[c.key])
		if err != nil {
			return types.RebuildInfo{}, fmt.Errorf("parsing %s count: %w", c.key, err)
		}
		*c.dst = n
	}
	return info, nil
}

func writeRebuildMeta(tx *sql.Tx, info types.RebuildInfo) error {
	values := [][2]string{
		{metaRebuildID, info.RebuildID},
		{metaRebuiltAt, types.FormatTimestamp(info.RebuiltAt)},
		{metaProviders, strconv.Itoa(info.Providers)},
		{metaReceivers, strconv.Itoa(info.Receivers)},
		{metaListings, strconv.Itoa(info.Listings)},
		{metaClaims, strconv.Itoa(info.Claims)},
	}
	for _, kv := range values {
		_, err := tx.Exec(
			"INSERT INTO store_meta (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
			kv[0], kv[1],
		)
		if err != nil {
			return fmt.Errorf("writing %s: %w", kv[0], err)
		}
	}
	return nil
}

// insertRows bulk-inserts rows into table through one prepared statement.
func insertRows(tx *sql.Tx, table string, columns []string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}

	placeholders := make([]string, len(columns))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	insertSQL := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)

	stmt, err := tx.Prepare(insertSQL)
	if err != nil {
		return fmt.Errorf("preparing insert for %s: %w", table, err)
	}
	defer stmt.Close()

	for i, args := range rows {
		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("%w: %s row %d: %w", types.ErrSchema, table, i+1, err)
		}
	}
	return nil
}

func providerArgs(p types.Provider) []any {
	return []any{p.ProviderID, p.Name, p.Type, p.Address, p.City, p.Contact}
}

func receiverArgs(r types.Receiver) []any {
	return []any{r.ReceiverID, r.Name, r.Type, r.City, r.Contact}
}

func listingArgs(l types.FoodListing) []any {
	return []any{
		l.FoodID, l.FoodName, l.Quantity, l.ExpiryDate.String(), l.ProviderID,
		l.ProviderType, l.Location, l.FoodType, l.MealType,
	}
}

func claimArgs(c types.Claim) []any {
	return []any{c.ClaimID, c.FoodID, c.ReceiverID, c.Status, types.FormatTimestamp(c.Timestamp)}
}
