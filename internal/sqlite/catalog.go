package sqlite

import (
	"time"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// Canonical aliases. Every catalog query binds each table it touches to
// these, which lets the filter composer extend any join graph.
var (
	refProviders = tableRef{tableProviders, "p"}
	refReceivers = tableRef{tableReceivers, "r"}
	refListings  = tableRef{tableListings, "f"}
	refClaims    = tableRef{tableClaims, "c"}
)

// Canonical join conditions.
const (
	onClaimListing    = "f.Food_ID = c.Food_ID"
	onClaimReceiver   = "r.Receiver_ID = c.Receiver_ID"
	onListingProvider = "p.Provider_ID = f.Provider_ID"
)

// catalogEnv carries the values bound at execution time.
type catalogEnv struct {
	now         time.Time
	windowDays  int
	contactCity string
}

// catalogEntry pairs a report with the function that builds its query.
type catalogEntry struct {
	report types.Report
	build  func(env catalogEnv) query
}

// Ordering of every grouped report ends with its grouping key ascending, and
// ungrouped row reports end with the base table's primary key, so ties are
// broken deterministically.
var catalog = []catalogEntry{
	{
		report: types.Report{ID: 1, Label: "Providers count by city"},
		build: func(catalogEnv) query {
			return query{
				from:    refProviders,
				columns: []column{{"p.City", "City"}, {"COUNT(*)", "total_providers"}},
				groupBy: []string{"p.City"},
				orderBy: []ordering{{"total_providers", true}, {"City", false}},
			}
		},
	},
	{
		report: types.Report{ID: 2, Label: "Receivers count by city"},
		build: func(catalogEnv) query {
			return query{
				from:    refReceivers,
				columns: []column{{"r.City", "City"}, {"COUNT(*)", "total_receivers"}},
				groupBy: []string{"r.City"},
				orderBy: []ordering{{"total_receivers", true}, {"City", false}},
			}
		},
	},
	{
		report: types.Report{ID: 3, Label: "Top provider types by contributions"},
		build: func(catalogEnv) query {
			return query{
				from:    refProviders,
				columns: []column{{"p.Type", "Type"}, {"COUNT(*)", "total"}},
				groupBy: []string{"p.Type"},
				orderBy: []ordering{{"total", true}, {"Type", false}},
			}
		},
	},
	{
		report: types.Report{ID: 4, Label: "Contact info of providers (example: Chennai)"},
		build: func(env catalogEnv) query {
			return query{
				from:    refProviders,
				columns: []column{{"p.Name", "Name"}, {"p.Contact", "Contact"}},
				where:   []predicate{{"p.City = ?", []any{env.contactCity}}},
				orderBy: []ordering{{"p.Provider_ID", false}},
			}
		},
	},
	{
		report: types.Report{ID: 5, Label: "Receivers who claimed the most food"},
		build: func(catalogEnv) query {
			return query{
				from:    refClaims,
				joins:   []join{{table: refReceivers, on: onClaimReceiver}},
				columns: []column{{"r.Name", "Name"}, {"COUNT(c.Claim_ID)", "total_claims"}},
				groupBy: []string{"r.Name"},
				orderBy: []ordering{{"total_claims", true}, {"Name", false}},
				limit:   5,
			}
		},
	},
	{
		report: types.Report{ID: 6, Label: "Total quantity of food available"},
		build: func(catalogEnv) query {
			return query{
				from:    refListings,
				columns: []column{{"SUM(f.Quantity)", "total_food_available"}},
			}
		},
	},
	{
		report: types.Report{ID: 7, Label: "City with highest number of food listings"},
		build: func(catalogEnv) query {
			return query{
				from:    refListings,
				columns: []column{{"f.Location", "Location"}, {"COUNT(*)", "listings"}},
				groupBy: []string{"f.Location"},
				orderBy: []ordering{{"listings", true}, {"Location", false}},
				limit:   1,
			}
		},
	},
	{
		report: types.Report{ID: 8, Label: "Most common food types"},
		build: func(catalogEnv) query {
			return query{
				from:    refListings,
				columns: []column{{"f.Food_Type", "Food_Type"}, {"COUNT(*)", "count"}},
				groupBy: []string{"f.Food_Type"},
				orderBy: []ordering{{"count", true}, {"Food_Type", false}},
			}
		},
	},
	{
		report: types.Report{ID: 9, Label: "Claims count per food item"},
		build: func(catalogEnv) query {
			return query{
				from:    refClaims,
				joins:   []join{{table: refListings, on: onClaimListing}},
				columns: []column{{"f.Food_Name", "Food_Name"}, {"COUNT(c.Claim_ID)", "total_claims"}},
				groupBy: []string{"f.Food_Name"},
				orderBy: []ordering{{"total_claims", true}, {"Food_Name", false}},
			}
		},
	},
	{
		report: types.Report{ID: 10, Label: "Provider with highest successful claims"},
		build: func(catalogEnv) query {
			return query{
				from: refClaims,
				joins: []join{
					{table: refListings, on: onClaimListing},
					{table: refProviders, on: onListingProvider},
				},
				columns: []column{{"p.Name", "Name"}, {"COUNT(c.Claim_ID)", "successful_claims"}},
				where:   []predicate{{"c.Status = ?", []any{types.StatusCompleted}}},
				groupBy: []string{"p.Name"},
				orderBy: []ordering{{"successful_claims", true}, {"Name", false}},
				limit:   1,
			}
		},
	},
	{
		report: types.Report{ID: 11, Label: "Claims status distribution"},
		build: func(catalogEnv) query {
			// The window total is taken over the same (possibly filtered)
			// rows as the groups, so percentages always sum to 100.
			return query{
				from: refClaims,
				columns: []column{
					{"c.Status", "Status"},
					{"COUNT(*) * 100.0 / SUM(COUNT(*)) OVER ()", "percentage"},
				},
				groupBy: []string{"c.Status"},
				orderBy: []ordering{{"Status", false}},
			}
		},
	},
	{
		report: types.Report{ID: 12, Label: "Avg quantity claimed per receiver"},
		build: func(catalogEnv) query {
			return query{
				from: refClaims,
				joins: []join{
					{table: refReceivers, on: onClaimReceiver},
					{table: refListings, on: onClaimListing},
				},
				columns: []column{{"r.Name", "Name"}, {"AVG(f.Quantity)", "avg_quantity"}},
				groupBy: []string{"r.Name"},
				orderBy: []ordering{{"avg_quantity", true}, {"Name", false}},
				limit:   5,
			}
		},
	},
	{
		report: types.Report{ID: 13, Label: "Most claimed meal type"},
		build: func(catalogEnv) query {
			return query{
				from:    refClaims,
				joins:   []join{{table: refListings, on: onClaimListing}},
				columns: []column{{"f.Meal_Type", "Meal_Type"}, {"COUNT(c.Claim_ID)", "claims"}},
				groupBy: []string{"f.Meal_Type"},
				orderBy: []ordering{{"claims", true}, {"Meal_Type", false}},
				limit:   1,
			}
		},
	},
	{
		report: types.Report{ID: 14, Label: "Total food donated per provider"},
		build: func(catalogEnv) query {
			return query{
				from:    refListings,
				joins:   []join{{table: refProviders, on: onListingProvider}},
				columns: []column{{"p.Name", "Name"}, {"SUM(f.Quantity)", "total_donated"}},
				groupBy: []string{"p.Name"},
				orderBy: []ordering{{"total_donated", true}, {"Name", false}},
			}
		},
	},
	{
		report: types.Report{ID: 15, Label: "Food wastage risk (items expiring soon)"},
		build: func(env catalogEnv) query {
			cutoff := env.now.UTC().AddDate(0, 0, env.windowDays).Format(types.DateLayout)
			return query{
				from: refListings,
				columns: []column{
					{"f.Food_Name", "Food_Name"},
					{"f.Expiry_Date", "Expiry_Date"},
					{"f.Quantity", "Quantity"},
				},
				where:   []predicate{{"DATE(f.Expiry_Date) <= DATE(?)", []any{cutoff}}},
				orderBy: []ordering{{"f.Expiry_Date", false}, {"f.Food_ID", false}},
			}
		},
	},
}

// catalogByID indexes the catalog.
var catalogByID = func() map[int]catalogEntry {
	m := make(map[int]catalogEntry, len(catalog))
	for _, e := range catalog {
		m[e.report.ID] = e
	}
	return m
}()
